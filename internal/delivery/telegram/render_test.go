package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
	"github.com/aliskhannn/learn-scripting/internal/domain/projection"
	"github.com/aliskhannn/learn-scripting/internal/scheduler"
	"github.com/aliskhannn/learn-scripting/internal/service"
)

func TestRenderExerciseOutcome(t *testing.T) {
	tests := []struct {
		name    string
		out     service.ExerciseOutcome
		want    []string
		notWant []string
	}{
		{
			name: "offline wrong answer escapes the key",
			out: service.ExerciseOutcome{
				Message: "Wrong! Correct answer: <b>print</b>",
				Source:  entities.SourceLocal,
			},
			want:    []string{"❌", "&lt;b&gt;print&lt;/b&gt;", "Checked offline"},
			notWant: []string{"<b>print</b>"},
		},
		{
			name: "already completed",
			out: service.ExerciseOutcome{
				Correct: true,
				Message: "Correct answer!",
				Source:  entities.SourceRemote,
			},
			want:    []string{"✅", "already completed"},
			notWant: []string{"Checked offline"},
		},
		{
			name: "recorded",
			out: service.ExerciseOutcome{
				Correct:  true,
				Recorded: true,
				Message:  "Correct answer!",
				Source:   entities.SourceRemote,
			},
			notWant: []string{"already completed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderExerciseOutcome(tt.out)
			for _, s := range tt.want {
				if !strings.Contains(got, s) {
					t.Errorf("missing %q in %q", s, got)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(got, s) {
					t.Errorf("unexpected %q in %q", s, got)
				}
			}
		})
	}
}

func TestRenderQuizOutcome_NotPassed(t *testing.T) {
	out := service.QuizOutcome{
		Attempt: service.QuizAttempt{Subject: entities.SubjectPython},
		Result: entities.NewQuizResult(2, 3, []entities.QuestionResult{
			{Correct: true, CorrectAnswer: 0},
			{Correct: true, CorrectAnswer: 1},
			{Correct: false, CorrectAnswer: 2},
		}),
		Source: entities.SourceLocal,
	}

	got := renderQuizOutcome(out)
	for _, s := range []string{"2/3 (67%)", "correct answer: C", "You need 70%", "Checked offline"} {
		if !strings.Contains(got, s) {
			t.Errorf("missing %q in %q", s, got)
		}
	}
}

func TestRenderRanking_MarksCurrentUser(t *testing.T) {
	report := service.RankingReport{
		Rows: []entities.RankingEntry{
			{ID: 1, Username: "MasterOfCode", Score: 450},
			{ID: 7, Username: "me", Score: 10},
		},
		Offline: true,
	}

	got := renderRanking(report, entities.Session{ID: 7, Username: "me", IsLoggedIn: true})
	if !strings.Contains(got, "<b>🥈 me - 10 pts (you)</b>") {
		t.Errorf("current user not highlighted: %q", got)
	}
	if !strings.Contains(got, "🥇 MasterOfCode") {
		t.Errorf("missing leader: %q", got)
	}
	if !strings.Contains(got, msgOfflineNotice) {
		t.Errorf("missing offline notice: %q", got)
	}
}

func TestRenderDashboard(t *testing.T) {
	p := entities.Progress{
		entities.SubjectPython: &entities.ProgressRecord{
			CompletedLessons: []int{1, 2},
			QuizScores:       []entities.ScoreEntry{{Score: 3, Total: 3, Percent: 100}},
		},
		entities.SubjectJavaScript: entities.NewProgressRecord(),
	}
	d := projection.BuildDashboard(p, map[entities.Subject]int{
		entities.SubjectPython:     3,
		entities.SubjectJavaScript: 3,
	})

	got := renderDashboard(d, false)
	for _, s := range []string{"Lessons: 2 of 3", "67%", "Quizzes: 100%", "Quizzes: none yet", "Average score: 100%"} {
		if !strings.Contains(got, s) {
			t.Errorf("missing %q in %q", s, got)
		}
	}
}

func TestRenderStatus(t *testing.T) {
	if got := renderStatus(scheduler.StatusUnknown, time.Time{}); strings.Contains(got, "Last check") {
		t.Errorf("unknown status shows a check time: %q", got)
	}

	at := time.Date(2026, 1, 2, 10, 30, 0, 0, time.UTC)
	got := renderStatus(scheduler.StatusDegraded, at)
	if !strings.Contains(got, "Degraded") || !strings.Contains(got, "10:30:00") {
		t.Errorf("got %q", got)
	}
}

func TestBuildQuizKeyboard_MarksSelection(t *testing.T) {
	a := service.QuizAttempt{
		Subject: entities.SubjectPython,
		Questions: []entities.QuizQuestion{
			{Question: "q1", Options: []string{"a", "b"}, Correct: 0},
			{Question: "q2", Options: []string{"a", "b", "c"}, Correct: 2},
		},
		Answers: entities.QuizAnswers{1: 2},
	}

	kb := buildQuizKeyboard(a)
	if len(kb.InlineKeyboard) != 3 {
		t.Fatalf("rows = %d, want 3", len(kb.InlineKeyboard))
	}
	if got := kb.InlineKeyboard[1][2].Text; got != "● 2C" {
		t.Errorf("selected label = %q", got)
	}
	if got := kb.InlineKeyboard[0][0].Text; got != "1A" {
		t.Errorf("unselected label = %q", got)
	}
}
