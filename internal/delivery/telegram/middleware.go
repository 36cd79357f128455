package telegram

import (
	"context"
	"errors"
	"html"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
	"github.com/aliskhannn/learn-scripting/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs unexpected errors and answers every error with a readable message.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			text, expected := userMessage(err)
			if !expected {
				h.logger.Error("handle error",
					zap.Int64("chat_id", chatID),
					zap.Error(err),
				)
			}
			h.sendError(chatID, text)
		}
		return nil
	}
}

// userMessage maps err to chat text; expected reports errors caused by user input.
func userMessage(err error) (text string, expected bool) {
	switch {
	case errors.Is(err, service.ErrInvalidBackup):
		return msgImportFailed, true
	case errors.Is(err, service.ErrValidation):
		return "⚠️ " + html.EscapeString(validationText(err)), true
	case errors.Is(err, entities.ErrUnknownSubject):
		return msgUnknownSubject, true
	case errors.Is(err, service.ErrCheckInFlight):
		return msgCheckInFlight, true
	case errors.Is(err, service.ErrLoginFailed):
		return msgLoginFailed, true
	case errors.Is(err, service.ErrLessonNotFound):
		return msgLessonNotFound, true
	case errors.Is(err, service.ErrNoActiveLesson):
		return msgNoActiveLesson, true
	case errors.Is(err, service.ErrNoActiveQuiz):
		return msgNoActiveQuiz, true
	case errors.Is(err, errBackupTooLarge):
		return msgBackupTooLarge, true
	case errors.Is(err, errDownload):
		return msgDownloadFailed, false
	case errors.Is(err, service.ErrFlush):
		return msgSaveFailed, false
	default:
		return msgInternalError, false
	}
}

// validationText strips the prefix shared by validation errors.
func validationText(err error) string {
	return strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": ")
}
