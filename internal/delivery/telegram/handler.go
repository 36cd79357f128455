package telegram

import (
	"context"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Deps groups the services the handler talks to.
type Deps struct {
	Learners   LearnerRegistry
	Lessons    LessonService
	Quizzes    QuizService
	Reconciler Reconciler
	Stats      StatsService
	Auth       AuthService
	Backup     BackupService
	Settings   SettingsService
	Status     ServerStatus
}

type Handler struct {
	bot    *tgbotapi.BotAPI
	logger *zap.Logger
	deps   Deps
	files  *http.Client // downloads imported backups
}

func NewHandler(bot *tgbotapi.BotAPI, logger *zap.Logger, deps Deps) *Handler {
	return &Handler{
		bot:    bot,
		logger: logger,
		deps:   deps,
		files:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Run receives updates until ctx is cancelled. Each update is handled in its
// own goroutine; Run waits for them before returning.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				h.handleUpdate(ctx, update)
			}()
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("panic while handling update",
				zap.Int("update_id", update.UpdateID),
				zap.Any("panic", r),
			)
		}
	}()

	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	m := update.Message
	h.logger.Debug("update received",
		zap.Int64("chat_id", m.Chat.ID),
		zap.Bool("command", m.IsCommand()),
	)

	if m.Document != nil {
		_ = h.withErrorHandling(h.importHandler(m.Document))(ctx, m.Chat.ID)
		return
	}

	if m.IsCommand() {
		h.handleCommand(ctx, m)
		return
	}

	// plain text answers the open exercise
	_ = h.withErrorHandling(h.answerHandler(m.Text))(ctx, m.Chat.ID)
}

func (h *Handler) sendError(chatID int64, err string) {
	msg := newHTMLMessage(chatID, err)
	h.send(msg)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
