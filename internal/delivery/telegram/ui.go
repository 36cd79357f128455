package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
	"github.com/aliskhannn/learn-scripting/internal/service"
)

// buildMainMenuKeyboard builds the keyboard shown by /start.
func buildMainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🐍 Python", buildLessonsCallback(entities.SubjectPython)),
			tgbotapi.NewInlineKeyboardButtonData("🟨 JavaScript", buildLessonsCallback(entities.SubjectJavaScript)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Python quiz", buildQuizCallback(entities.SubjectPython)),
			tgbotapi.NewInlineKeyboardButtonData("📝 JavaScript quiz", buildQuizCallback(entities.SubjectJavaScript)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Dashboard", buildDashboardCallback()),
			tgbotapi.NewInlineKeyboardButtonData("🏆 Ranking", buildRankingCallback()),
		),
	)
}

// buildSubjectKeyboard asks which course to open with action.
func buildSubjectKeyboard(action string) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, s := range entities.Subjects() {
		data := callbackData{Action: action, Params: []string{string(s)}}.encode()
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(s.Title(), data))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// buildCatalogKeyboard lists lessons, marking completed ones.
func buildCatalogKeyboard(c service.Catalog, rec entities.ProgressRecord) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(c.Lessons)+1)
	for _, lesson := range c.Lessons {
		label := fmt.Sprintf("%d. %s", lesson.ID, lesson.Title)
		if rec.HasLesson(lesson.ID) {
			label = "✅ " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildLessonCallback(c.Subject, lesson.ID)),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📝 Take the quiz", buildQuizCallback(c.Subject)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildLessonKeyboard builds keyboard for a single lesson.
func buildLessonKeyboard(subject entities.Subject, lesson entities.Lesson) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if lesson.Exercise != nil {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Exercise", buildExerciseCallback(subject, lesson.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« Lessons", buildLessonsCallback(subject)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildExerciseResultKeyboard offers the way back after a check.
func buildExerciseResultKeyboard(subject entities.Subject) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Lessons", buildLessonsCallback(subject)),
			tgbotapi.NewInlineKeyboardButtonData("📊 Dashboard", buildDashboardCallback()),
		),
	)
}

// buildQuizKeyboard has one row per question; the selected option is marked.
func buildQuizKeyboard(a service.QuizAttempt) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(a.Questions)+1)
	for qi, q := range a.Questions {
		selected, answered := a.Answers[qi]

		row := make([]tgbotapi.InlineKeyboardButton, 0, len(q.Options))
		for oi := range q.Options {
			label := fmt.Sprintf("%d%s", qi+1, optionLetter(oi))
			if answered && selected == oi {
				label = "● " + label
			}
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildQuizOptionCallback(a.Subject, qi, oi)))
		}
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✅ Check answers", buildQuizCheckCallback(a.Subject)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizResultKeyboard builds keyboard for quiz results screen.
func buildQuizResultKeyboard(subject entities.Subject) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 New attempt", buildQuizCallback(subject)),
			tgbotapi.NewInlineKeyboardButtonData("📊 Dashboard", buildDashboardCallback()),
		),
	)
}

func buildResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Yes, reset", buildResetConfirmCallback()),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", buildResetCancelCallback()),
		),
	)
}

func optionLetter(i int) string {
	return string(rune('A' + i))
}
