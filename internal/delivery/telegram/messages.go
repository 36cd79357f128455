// messages.go contains message templates for Telegram.

package telegram

// Error messages.
const (
	msgInternalError  = "Something went wrong. Please try again later."
	msgUnknownCommand = "Unknown command. Send /help to see what I can do."
	msgUnknownSubject = "Unknown course. Use <code>python</code> or <code>javascript</code>."
	msgLessonNotFound = "This lesson is no longer available."
	msgNoActiveLesson = "Open a lesson with an exercise first: /lessons"
	msgNoActiveQuiz   = "This quiz is over. Start a new one with /quiz."
	msgCheckInFlight  = "Still checking your previous answer…"
	msgLoginFailed    = "Could not log in. Check your username and password."
	msgSaveFailed     = "Your progress could not be saved. Please try again."
	msgUsageAnswer    = "Usage: <code>/answer your answer</code>"
	msgUsageLogin     = "Usage: <code>/login username password</code>"
	msgUsageRegister  = "Usage: <code>/register username email password password</code>"
	msgImportHint     = "Send me a backup file (<code>.json</code>) as a document with the caption <code>/import</code>."
	msgImportFailed   = "This file is not a valid backup. Nothing was changed."
	msgDownloadFailed = "Could not download the file. Please try again."
	msgBackupTooLarge = "The file is too large to be a backup."
)

// Informational messages.
const (
	msgWelcome = "<b>👋 Welcome to Learn Scripting!</b>\n\n" +
		"Short lessons and quizzes for <b>Python</b> and <b>JavaScript</b>.\n" +
		"Your progress is saved automatically, even when the course server is offline.\n\n" +
		"Pick a course to begin or send /help."

	msgHelp = "<b>Commands</b>\n\n" +
		"/lessons <i>python|javascript</i> - list lessons\n" +
		"/answer <i>text</i> - answer the open exercise\n" +
		"/quiz <i>python|javascript</i> - take a quiz\n" +
		"/dashboard - your progress\n" +
		"/ranking - leaderboard\n" +
		"/stats - platform statistics\n" +
		"/status - course server status\n" +
		"/reset - erase all progress\n" +
		"/export - download a backup\n" +
		"/import - restore a backup\n" +
		"/login <i>user password</i>\n" +
		"/register <i>user email password password</i>\n" +
		"/logout, /profile, /darkmode"

	msgChooseSubject   = "Choose a course:"
	msgOfflineNotice   = "<i>⚠️ Server unavailable, showing offline content.</i>"
	msgResetConfirm    = "Erase all lessons and quiz results for both courses? This cannot be undone."
	msgResetDone       = "🧹 Progress has been reset."
	msgResetCancelled  = "Reset cancelled."
	msgLoggedOut       = "You have been logged out. Your progress stays on this chat."
	msgImportDone      = "✅ Backup restored."
	msgExportCaption   = "Your Learn Scripting backup."
	msgDarkModeOn      = "🌙 Dark mode is on."
	msgDarkModeOff     = "☀️ Dark mode is off."
	msgAnswerPrompt    = "Reply with your answer, or send <code>/answer your answer</code>."
	msgQuizIncomplete  = "Answered %d of %d questions."
	msgLoginDemo       = "Logged in as a demo user."
	msgRegisterDemo    = "Server unavailable, created a demo account for <b>%s</b>."
	msgLoginSuccess    = "Logged in as <b>%s</b>."
	msgRegisterSuccess = "Account <b>%s</b> created. Log in with <code>/login %s password</code>."
)
