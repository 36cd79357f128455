package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
	"github.com/aliskhannn/learn-scripting/internal/service"
)

// view is a rendered screen; commands send it, callbacks edit the message in place.
type view struct {
	text string
	kb   *tgbotapi.InlineKeyboardMarkup
}

func withKeyboard(text string, kb tgbotapi.InlineKeyboardMarkup) view {
	return view{text: text, kb: &kb}
}

func (h *Handler) sendView(chatID int64, v view) {
	msg := newHTMLMessage(chatID, v.text)
	if v.kb != nil {
		msg.ReplyMarkup = *v.kb
	}
	h.send(msg)
}

func (h *Handler) editView(chatID int64, messageID int, v view) {
	edit := newEditMessage(chatID, messageID, v.text)
	if v.kb != nil {
		edit.ReplyMarkup = v.kb
	}
	h.send(edit)
}

func (h *Handler) catalogView(ctx context.Context, l *service.Learner, subject entities.Subject) view {
	c := h.deps.Lessons.Catalog(ctx, subject)
	rec := l.Progress.Get(subject)
	return withKeyboard(renderCatalog(c, rec, l.Settings().DarkMode), buildCatalogKeyboard(c, rec))
}

func (h *Handler) lessonView(ctx context.Context, l *service.Learner, subject entities.Subject, id int) (view, error) {
	lesson, err := h.deps.Lessons.Lesson(ctx, subject, id)
	if err != nil {
		return view{}, err
	}

	l.OpenLesson(subject, lesson)
	rec := l.Progress.Get(subject)
	completed := rec.HasLesson(lesson.ID)
	return withKeyboard(renderLesson(subject, lesson, completed), buildLessonKeyboard(subject, lesson)), nil
}

func (h *Handler) exerciseView(ctx context.Context, l *service.Learner, subject entities.Subject, id int) (view, error) {
	lesson, err := h.deps.Lessons.Lesson(ctx, subject, id)
	if err != nil {
		return view{}, err
	}
	if lesson.Exercise == nil {
		return view{}, service.ErrNoExercise
	}

	l.OpenLesson(subject, lesson)
	return view{text: renderExercise(lesson)}, nil
}

func (h *Handler) quizView(ctx context.Context, l *service.Learner, subject entities.Subject) view {
	attempt := h.deps.Quizzes.Start(ctx, l, subject)
	return withKeyboard(renderQuiz(attempt), buildQuizKeyboard(attempt))
}

func (h *Handler) dashboardView(l *service.Learner) view {
	d := h.deps.Stats.Dashboard(l)
	return view{text: renderDashboard(d, l.Settings().DarkMode)}
}

func (h *Handler) rankingView(ctx context.Context, l *service.Learner) view {
	return view{text: renderRanking(h.deps.Stats.Ranking(ctx, l), l.Session())}
}
