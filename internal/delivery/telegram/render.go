package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
	"github.com/aliskhannn/learn-scripting/internal/domain/projection"
	"github.com/aliskhannn/learn-scripting/internal/scheduler"
	"github.com/aliskhannn/learn-scripting/internal/service"
)

func renderCatalog(c service.Catalog, rec entities.ProgressRecord, dark bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>%s %s lessons</b>\n\n", subjectIcon(c.Subject), c.Subject.Title())
	fmt.Fprintf(&b, "%s\n", buildProgressBar(projection.CompletionPercent(&rec, len(c.Lessons)), progressBarLength, dark))
	fmt.Fprintf(&b, "Completed %d of %d", len(rec.CompletedLessons), len(c.Lessons))

	if len(c.Lessons) == 0 {
		b.WriteString("\n\nNo lessons yet.")
	}
	if c.Offline {
		b.WriteString("\n\n" + msgOfflineNotice)
	}
	return b.String()
}

func renderLesson(subject entities.Subject, lesson entities.Lesson, completed bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>%s Lesson %d: %s</b>", subjectIcon(subject), lesson.ID, esc(lesson.Title))
	if completed {
		b.WriteString(" ✅")
	}
	b.WriteString("\n\n")

	if lesson.Content != "" {
		b.WriteString(esc(lesson.Content) + "\n\n")
	}
	if lesson.Code != "" {
		b.WriteString("<pre>" + esc(lesson.Code) + "</pre>\n\n")
	}
	if lesson.Explanation != "" {
		b.WriteString("<i>" + esc(lesson.Explanation) + "</i>")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderExercise(lesson entities.Lesson) string {
	return fmt.Sprintf("<b>✏️ Exercise</b>\n\n%s\n\n<pre>%s</pre>\n\n%s",
		esc(lesson.Exercise.Question),
		esc(lesson.Exercise.Template),
		msgAnswerPrompt,
	)
}

func renderExerciseOutcome(out service.ExerciseOutcome) string {
	icon := "❌"
	if out.Correct {
		icon = "✅"
	}

	text := icon + " " + esc(out.Message)
	if out.Correct && !out.Recorded {
		text += "\nThis lesson was already completed."
	}
	if out.Source == entities.SourceLocal {
		text += "\n\n<i>Checked offline.</i>"
	}
	return text
}

func renderQuiz(a service.QuizAttempt) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>📝 %s quiz</b>\n", a.Subject.Title())
	for qi, q := range a.Questions {
		fmt.Fprintf(&b, "\n<b>%d. %s</b>\n", qi+1, esc(q.Question))
		for oi, opt := range q.Options {
			fmt.Fprintf(&b, "%s) %s\n", optionLetter(oi), esc(opt))
		}
	}

	b.WriteString("\n" + fmt.Sprintf(msgQuizIncomplete, len(a.Answers), len(a.Questions)))
	if a.Offline {
		b.WriteString("\n" + msgOfflineNotice)
	}
	return b.String()
}

func renderQuizOutcome(out service.QuizOutcome) string {
	var b strings.Builder
	a, r := out.Attempt, out.Result

	fmt.Fprintf(&b, "<b>📝 %s quiz: %d/%d (%d%%)</b>\n%s\n", a.Subject.Title(), r.Score, r.Total, r.Percent, esc(r.Message))

	for qi, res := range r.Results {
		icon := "❌"
		if res.Correct {
			icon = "✅"
		}
		fmt.Fprintf(&b, "\n%s %d. correct answer: %s", icon, qi+1, optionLetter(res.CorrectAnswer))
	}

	switch {
	case out.Recorded:
		b.WriteString("\n\nResult saved to your progress.")
	case !r.Passed:
		fmt.Fprintf(&b, "\n\nYou need %d%% to pass.", entities.PassPercent)
	}
	if out.Source == entities.SourceLocal {
		b.WriteString("\n<i>Checked offline.</i>")
	}
	return b.String()
}

func renderDashboard(d projection.Dashboard, dark bool) string {
	var b strings.Builder

	b.WriteString("<b>📊 Your progress</b>\n")
	for _, s := range d.Subjects {
		fmt.Fprintf(&b, "\n<b>%s %s</b>\n%s\n", subjectIcon(s.Subject), s.Subject.Title(),
			buildProgressBar(s.Percent, progressBarLength, dark))
		fmt.Fprintf(&b, "Lessons: %d of %d\n", len(s.CompletedLessons), s.CatalogSize)

		if len(s.QuizScores) == 0 {
			b.WriteString("Quizzes: none yet\n")
			continue
		}
		scores := make([]string, 0, len(s.QuizScores))
		for _, e := range s.QuizScores {
			scores = append(scores, fmt.Sprintf("%d%%", e.Percent))
		}
		fmt.Fprintf(&b, "Quizzes: %s\n", strings.Join(scores, ", "))
	}

	fmt.Fprintf(&b, "\n📚 Lessons completed: %d\n📝 Quizzes passed: %d\n🎯 Average score: %d%%",
		d.TotalLessons, d.TotalQuizzes, d.AverageScore)
	return b.String()
}

func renderRanking(r service.RankingReport, me entities.Session) string {
	var b strings.Builder

	b.WriteString("<b>🏆 Ranking</b>\n\n")
	for i, row := range r.Rows {
		line := fmt.Sprintf("%s %s - %d pts", rankBadge(i), esc(row.Username), row.Score)
		if me.IsLoggedIn && row.ID == me.ID {
			line = "<b>" + line + " (you)</b>"
		}
		b.WriteString(line + "\n")
	}

	if r.Offline {
		b.WriteString("\n" + msgOfflineNotice)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderStats(r service.StatsReport) string {
	text := fmt.Sprintf("<b>📈 Platform</b>\n\n🐍 Python lessons: %d\n🟨 JavaScript lessons: %d\n👥 Users: %d\n🔥 Active today: %d",
		r.Stats.PythonLessons, r.Stats.JavaScriptLessons, r.Stats.TotalUsers, r.Stats.ActiveToday)
	if r.Offline {
		text += "\n\n" + msgOfflineNotice
	}
	return text
}

func renderProfile(s entities.Session, prefs entities.Settings) string {
	if !s.IsLoggedIn {
		return "<b>👤 Guest</b>\n\nLog in with /login or create an account with /register."
	}

	text := fmt.Sprintf("<b>👤 %s</b>\n\nEmail: %s\nID: %d", esc(s.Username), esc(s.Email), s.ID)
	if s.Demo {
		text += "\n<i>Demo account, not known to the server.</i>"
	}
	if prefs.DarkMode {
		text += "\nDark mode: on"
	}
	return text
}

func renderStatus(status scheduler.ServerStatus, at time.Time) string {
	var icon, label string
	switch status {
	case scheduler.StatusOnline:
		icon, label = "🟢", "Online"
	case scheduler.StatusDegraded:
		icon, label = "🟡", "Degraded"
	case scheduler.StatusOffline:
		icon, label = "🔴", "Offline"
	default:
		icon, label = "⚪", "Not checked yet"
	}

	text := fmt.Sprintf("<b>%s Course server: %s</b>", icon, label)
	if !at.IsZero() {
		text += "\nLast check: " + at.UTC().Format("15:04:05 MST")
	}
	return text
}

func subjectIcon(s entities.Subject) string {
	if s == entities.SubjectJavaScript {
		return "🟨"
	}
	return "🐍"
}

func rankBadge(i int) string {
	switch i {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", i+1)
	}
}
