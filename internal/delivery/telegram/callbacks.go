package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
	"github.com/aliskhannn/learn-scripting/internal/service"
)

// handleCallback dispatches inline keyboard presses. Screens are edited in place.
func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	defer h.answerCallback(cb.ID)

	if cb.Message == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	data := decodeCallback(cb.Data)

	var fn HandlerFunc
	switch data.Action {
	case actionLessons:
		fn = h.lessonsCallback(data, messageID)
	case actionLesson:
		fn = h.lessonCallback(data, messageID)
	case actionExercise:
		fn = h.exerciseCallback(data)
	case actionQuiz:
		fn = h.quizCallback(data)
	case actionQuizOption:
		fn = h.quizOptionCallback(data, messageID)
	case actionQuizCheck:
		fn = h.quizCheckCallback(data, messageID)
	case actionDashboard:
		fn = h.dashboardHandler()
	case actionRanking:
		fn = h.rankingHandler()
	case actionReset:
		fn = h.resetCallback(data, messageID)
	default:
		h.logger.Warn("unknown callback",
			zap.Int64("chat_id", chatID),
			zap.String("data", data.Raw),
		)
		return
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

func (h *Handler) answerCallback(id string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, "")); err != nil {
		h.logger.Debug("failed to answer callback", zap.Error(err))
	}
}

func (h *Handler) lessonsCallback(data callbackData, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		subject, ok := data.subject()
		if !ok {
			return entities.ErrUnknownSubject
		}

		l := h.deps.Learners.Get(ctx, chatID)
		h.editView(chatID, messageID, h.catalogView(ctx, l, subject))
		return nil
	}
}

func (h *Handler) lessonCallback(data callbackData, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		subject, ok := data.subject()
		if !ok {
			return entities.ErrUnknownSubject
		}
		id, ok := data.intParam(1)
		if !ok {
			return service.ErrLessonNotFound
		}

		v, err := h.lessonView(ctx, h.deps.Learners.Get(ctx, chatID), subject, id)
		if err != nil {
			return err
		}
		h.editView(chatID, messageID, v)
		return nil
	}
}

// exerciseCallback sends the exercise as a new message so the lesson stays readable.
func (h *Handler) exerciseCallback(data callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		subject, ok := data.subject()
		if !ok {
			return entities.ErrUnknownSubject
		}
		id, ok := data.intParam(1)
		if !ok {
			return service.ErrLessonNotFound
		}

		v, err := h.exerciseView(ctx, h.deps.Learners.Get(ctx, chatID), subject, id)
		if err != nil {
			return err
		}
		h.sendView(chatID, v)
		return nil
	}
}

func (h *Handler) quizCallback(data callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		subject, ok := data.subject()
		if !ok {
			return entities.ErrUnknownSubject
		}

		h.sendView(chatID, h.quizView(ctx, h.deps.Learners.Get(ctx, chatID), subject))
		return nil
	}
}

func (h *Handler) quizOptionCallback(data callbackData, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		subject, ok := data.subject()
		if !ok {
			return entities.ErrUnknownSubject
		}
		question, okQ := data.intParam(1)
		option, okO := data.intParam(2)
		if !okQ || !okO {
			return service.ErrInvalidOption
		}

		attempt, err := h.deps.Quizzes.Select(h.deps.Learners.Get(ctx, chatID), subject, question, option)
		if err != nil {
			return err
		}

		h.editView(chatID, messageID, withKeyboard(renderQuiz(attempt), buildQuizKeyboard(attempt)))
		return nil
	}
}

func (h *Handler) quizCheckCallback(data callbackData, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		subject, ok := data.subject()
		if !ok {
			return entities.ErrUnknownSubject
		}

		out, err := h.deps.Reconciler.CheckQuiz(ctx, h.deps.Learners.Get(ctx, chatID), subject)
		if err != nil {
			return err
		}

		h.editView(chatID, messageID, withKeyboard(renderQuizOutcome(out), buildQuizResultKeyboard(subject)))
		return nil
	}
}

func (h *Handler) resetCallback(data callbackData, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if len(data.Params) == 0 || data.Params[0] != resetConfirm {
			h.editView(chatID, messageID, view{text: msgResetCancelled})
			return nil
		}

		if err := h.deps.Learners.Get(ctx, chatID).Progress.Reset(ctx); err != nil {
			return err
		}
		h.editView(chatID, messageID, view{text: msgResetDone})
		return nil
	}
}
