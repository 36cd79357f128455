package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
)

const maxBackupSize = 1 << 20

var (
	errBackupTooLarge = errors.New("backup too large")
	errDownload       = errors.New("download backup")
)

// Commands lists the bot menu registered at start-up.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "lessons", Description: "List lessons (python or javascript)"},
		{Command: "quiz", Description: "Take a quiz (python or javascript)"},
		{Command: "answer", Description: "Answer the open exercise"},
		{Command: "dashboard", Description: "Show your progress"},
		{Command: "ranking", Description: "Show the leaderboard"},
		{Command: "stats", Description: "Platform statistics"},
		{Command: "status", Description: "Course server status"},
		{Command: "export", Description: "Download a backup"},
		{Command: "import", Description: "Restore a backup"},
		{Command: "reset", Description: "Erase all progress"},
		{Command: "profile", Description: "Show your account"},
		{Command: "darkmode", Description: "Toggle dark mode"},
		{Command: "help", Description: "Help"},
	}
}

func (h *Handler) handleCommand(ctx context.Context, m *tgbotapi.Message) {
	chatID := m.Chat.ID
	args := strings.Fields(m.CommandArguments())

	var fn HandlerFunc
	switch m.Command() {
	case "start":
		fn = h.startHandler()
	case "help":
		fn = h.textHandler(msgHelp)
	case "lessons":
		fn = h.lessonsHandler(args)
	case "answer":
		fn = h.answerCommandHandler(m.CommandArguments())
	case "quiz":
		fn = h.quizHandler(args)
	case "dashboard":
		fn = h.dashboardHandler()
	case "ranking":
		fn = h.rankingHandler()
	case "stats":
		fn = h.statsHandler()
	case "status":
		fn = h.statusHandler()
	case "reset":
		fn = h.resetHandler()
	case "export":
		fn = h.exportHandler()
	case "import":
		fn = h.textHandler(msgImportHint)
	case "login":
		fn = h.loginHandler(args, m.MessageID)
	case "register":
		fn = h.registerHandler(args, m.MessageID)
	case "logout":
		fn = h.logoutHandler()
	case "profile":
		fn = h.profileHandler()
	case "darkmode":
		fn = h.darkModeHandler()
	default:
		fn = h.textHandler(msgUnknownCommand)
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

func (h *Handler) textHandler(text string) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		h.send(newHTMLMessage(chatID, text))
		return nil
	}
}

func (h *Handler) startHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		// loads the learner so the first screen already reflects stored state
		h.deps.Learners.Get(ctx, chatID)
		h.sendView(chatID, withKeyboard(msgWelcome, buildMainMenuKeyboard()))
		return nil
	}
}

// subjectFromArgs resolves the course argument; ok is false when the user must choose.
func subjectFromArgs(args []string) (entities.Subject, bool, error) {
	if len(args) == 0 {
		return "", false, nil
	}
	s, err := entities.ParseSubject(args[0])
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

func (h *Handler) lessonsHandler(args []string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		subject, ok, err := subjectFromArgs(args)
		if err != nil {
			return err
		}
		if !ok {
			h.sendView(chatID, withKeyboard(msgChooseSubject, buildSubjectKeyboard(actionLessons)))
			return nil
		}

		l := h.deps.Learners.Get(ctx, chatID)
		h.sendView(chatID, h.catalogView(ctx, l, subject))
		return nil
	}
}

func (h *Handler) answerCommandHandler(answer string) HandlerFunc {
	if strings.TrimSpace(answer) == "" {
		return h.textHandler(msgUsageAnswer)
	}
	return h.answerHandler(answer)
}

// answerHandler checks answer against the exercise of the lesson opened last.
func (h *Handler) answerHandler(answer string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if strings.TrimSpace(answer) == "" {
			return nil
		}

		l := h.deps.Learners.Get(ctx, chatID)
		subject, lesson, err := l.CurrentLesson()
		if err != nil {
			return err
		}

		out, err := h.deps.Reconciler.CheckExercise(ctx, l, subject, lesson, answer)
		if err != nil {
			return err
		}

		h.sendView(chatID, withKeyboard(renderExerciseOutcome(out), buildExerciseResultKeyboard(subject)))
		return nil
	}
}

func (h *Handler) quizHandler(args []string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		subject, ok, err := subjectFromArgs(args)
		if err != nil {
			return err
		}
		if !ok {
			h.sendView(chatID, withKeyboard(msgChooseSubject, buildSubjectKeyboard(actionQuiz)))
			return nil
		}

		l := h.deps.Learners.Get(ctx, chatID)
		h.sendView(chatID, h.quizView(ctx, l, subject))
		return nil
	}
}

func (h *Handler) dashboardHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.sendView(chatID, h.dashboardView(h.deps.Learners.Get(ctx, chatID)))
		return nil
	}
}

func (h *Handler) rankingHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.sendView(chatID, h.rankingView(ctx, h.deps.Learners.Get(ctx, chatID)))
		return nil
	}
}

func (h *Handler) statsHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		report := h.deps.Stats.Stats(ctx, h.deps.Learners.Get(ctx, chatID))
		h.send(newHTMLMessage(chatID, renderStats(report)))
		return nil
	}
}

func (h *Handler) statusHandler() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		status, at := h.deps.Status.Status()
		h.send(newHTMLMessage(chatID, renderStatus(status, at)))
		return nil
	}
}

func (h *Handler) resetHandler() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		h.sendView(chatID, withKeyboard(msgResetConfirm, buildResetKeyboard()))
		return nil
	}
}

func (h *Handler) exportHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		file, err := h.deps.Backup.Export(h.deps.Learners.Get(ctx, chatID))
		if err != nil {
			return err
		}
		h.send(newBackupDocument(chatID, file))
		return nil
	}
}

// importHandler restores a backup sent as a document.
func (h *Handler) importHandler(doc *tgbotapi.Document) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if doc.FileSize > maxBackupSize {
			return errBackupTooLarge
		}

		data, err := h.download(ctx, doc.FileID)
		if err != nil {
			return err
		}

		if err := h.deps.Backup.Import(ctx, h.deps.Learners.Get(ctx, chatID), data); err != nil {
			return err
		}

		h.send(newHTMLMessage(chatID, msgImportDone))
		return nil
	}
}

func (h *Handler) download(ctx context.Context, fileID string) ([]byte, error) {
	url, err := h.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errDownload, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errDownload, err)
	}

	resp, err := h.files.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", errDownload, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBackupSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errDownload, err)
	}
	if len(data) > maxBackupSize {
		return nil, errBackupTooLarge
	}
	return data, nil
}

func (h *Handler) loginHandler(args []string, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.deleteCredentials(chatID, messageID)
		if len(args) != 2 {
			h.send(newHTMLMessage(chatID, msgUsageLogin))
			return nil
		}

		out, err := h.deps.Auth.Login(ctx, h.deps.Learners.Get(ctx, chatID), args[0], args[1])
		if err != nil {
			return err
		}

		text := fmt.Sprintf(msgLoginSuccess, esc(out.Session.Username))
		if out.Demo {
			text = msgLoginDemo
		}
		h.send(newHTMLMessage(chatID, text))
		return nil
	}
}

func (h *Handler) registerHandler(args []string, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.deleteCredentials(chatID, messageID)
		if len(args) != 4 {
			h.send(newHTMLMessage(chatID, msgUsageRegister))
			return nil
		}

		out, err := h.deps.Auth.Register(ctx, h.deps.Learners.Get(ctx, chatID), args[0], args[1], args[2], args[3])
		if err != nil {
			return err
		}

		text := fmt.Sprintf(msgRegisterDemo, esc(out.Session.Username))
		if out.Registered {
			text = fmt.Sprintf(msgRegisterSuccess, esc(args[0]), esc(args[0]))
		}
		h.send(newHTMLMessage(chatID, text))
		return nil
	}
}

// deleteCredentials removes a message that contained a password.
func (h *Handler) deleteCredentials(chatID int64, messageID int) {
	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		h.logger.Debug("could not delete credentials message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

func (h *Handler) logoutHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.deps.Auth.Logout(ctx, h.deps.Learners.Get(ctx, chatID)); err != nil {
			return err
		}
		h.send(newHTMLMessage(chatID, msgLoggedOut))
		return nil
	}
}

func (h *Handler) profileHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		l := h.deps.Learners.Get(ctx, chatID)
		h.send(newHTMLMessage(chatID, renderProfile(l.Session(), l.Settings())))
		return nil
	}
}

func (h *Handler) darkModeHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		on, err := h.deps.Settings.ToggleDarkMode(ctx, h.deps.Learners.Get(ctx, chatID))
		if err != nil {
			return err
		}

		text := msgDarkModeOff
		if on {
			text = msgDarkModeOn
		}
		h.send(newHTMLMessage(chatID, text))
		return nil
	}
}
