package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
	"github.com/aliskhannn/learn-scripting/internal/gateway"
	"github.com/aliskhannn/learn-scripting/internal/storage"
)

func TestReconciler_CheckExercise(t *testing.T) {
	tests := []struct {
		name         string
		api          *stubAPI
		answer       string
		wantCorrect  bool
		wantState    entities.CheckState
		wantSource   entities.VerdictSource
		wantMessage  string
		wantRecorded bool
	}{
		{
			name:         "offline check ignores case and spaces",
			api:          &stubAPI{},
			answer:       "  Print ",
			wantCorrect:  true,
			wantState:    entities.CheckRecorded,
			wantSource:   entities.SourceLocal,
			wantMessage:  "Correct answer!",
			wantRecorded: true,
		},
		{
			name:        "offline wrong answer shows the key",
			api:         &stubAPI{},
			answer:      "echo",
			wantState:   entities.CheckFallback,
			wantSource:  entities.SourceLocal,
			wantMessage: "Wrong! Correct answer: print",
		},
		{
			name: "server error falls back",
			api: &stubAPI{checkExercise: func(entities.Subject, int, string) (gateway.ExerciseVerdict, error) {
				return gateway.ExerciseVerdict{}, &gateway.Error{Op: "check exercise", Status: 500, Err: errors.New("boom")}
			}},
			answer:      "printf",
			wantState:   entities.CheckFallback,
			wantSource:  entities.SourceLocal,
			wantMessage: "Wrong! Correct answer: print",
		},
		{
			name: "server verdict wins",
			api: &stubAPI{checkExercise: func(entities.Subject, int, string) (gateway.ExerciseVerdict, error) {
				return gateway.ExerciseVerdict{Correct: false, Message: "Not quite"}, nil
			}},
			answer:      "print",
			wantState:   entities.CheckConfirmed,
			wantSource:  entities.SourceRemote,
			wantMessage: "Not quite",
		},
		{
			name: "server confirms and progress is recorded",
			api: &stubAPI{checkExercise: func(_ entities.Subject, id int, answer string) (gateway.ExerciseVerdict, error) {
				return gateway.ExerciseVerdict{Correct: id == 1 && answer == "print", Message: "Well done!"}, nil
			}},
			answer:       " print",
			wantCorrect:  true,
			wantState:    entities.CheckRecorded,
			wantSource:   entities.SourceRemote,
			wantMessage:  "Well done!",
			wantRecorded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			l := newTestLearner(t, storage.NewMemoryStore())
			r := NewReconciler(tt.api, zap.NewNop())

			got, err := r.CheckExercise(ctx, l, entities.SubjectPython, pythonLesson(), tt.answer)
			if err != nil {
				t.Fatalf("check: %v", err)
			}

			if got.Correct != tt.wantCorrect || got.State != tt.wantState || got.Source != tt.wantSource {
				t.Errorf("outcome = %+v", got)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", got.Message, tt.wantMessage)
			}
			if got.Recorded != tt.wantRecorded {
				t.Errorf("recorded = %v, want %v", got.Recorded, tt.wantRecorded)
			}
			if got.AttemptID == "" {
				t.Error("missing attempt id")
			}

			rec := l.Progress.Get(entities.SubjectPython)
			if tt.wantRecorded != rec.HasLesson(1) {
				t.Errorf("lessons = %v", rec.CompletedLessons)
			}
		})
	}
}

func TestReconciler_CheckExerciseKeyShownVerbatim(t *testing.T) {
	lesson := pythonLesson()
	lesson.Exercise.Answer = "Console.Log"

	r := NewReconciler(&stubAPI{}, zap.NewNop())
	got, err := r.CheckExercise(context.Background(), newTestLearner(t, storage.NewMemoryStore()), entities.SubjectJavaScript, lesson, "alert")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(got.Message, "Console.Log") {
		t.Errorf("message %q does not contain the key verbatim", got.Message)
	}
}

func TestReconciler_CheckExerciseAlreadyCompleted(t *testing.T) {
	ctx := context.Background()
	l := newTestLearner(t, storage.NewMemoryStore())
	r := NewReconciler(&stubAPI{}, zap.NewNop())

	if _, err := r.CheckExercise(ctx, l, entities.SubjectPython, pythonLesson(), "print"); err != nil {
		t.Fatalf("first check: %v", err)
	}
	before := l.Progress.Get(entities.SubjectPython)

	got, err := r.CheckExercise(ctx, l, entities.SubjectPython, pythonLesson(), "print")
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if !got.Correct || got.Recorded || got.State != entities.CheckFallback {
		t.Errorf("outcome = %+v", got)
	}

	after := l.Progress.Get(entities.SubjectPython)
	if len(after.CompletedLessons) != 1 || !after.LastActive.Equal(*before.LastActive) {
		t.Errorf("record changed: %+v", after)
	}
}

func TestReconciler_CheckExerciseValidation(t *testing.T) {
	noExercise := pythonLesson()
	noExercise.Exercise = nil

	tests := []struct {
		name   string
		lesson entities.Lesson
		answer string
		want   error
	}{
		{name: "empty answer", lesson: pythonLesson(), answer: "   ", want: ErrEmptyAnswer},
		{name: "no exercise", lesson: noExercise, answer: "print", want: ErrNoExercise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &stubAPI{}
			r := NewReconciler(api, zap.NewNop())

			_, err := r.CheckExercise(context.Background(), newTestLearner(t, storage.NewMemoryStore()), entities.SubjectPython, tt.lesson, tt.answer)
			if !errors.Is(err, tt.want) || !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if api.calls.Load() != 0 {
				t.Error("validation error reached the network")
			}
		})
	}
}

func TestReconciler_CheckExerciseInFlight(t *testing.T) {
	ctx := context.Background()
	l := newTestLearner(t, storage.NewMemoryStore())

	entered := make(chan struct{})
	unblock := make(chan struct{})
	api := &stubAPI{checkExercise: func(entities.Subject, int, string) (gateway.ExerciseVerdict, error) {
		close(entered)
		<-unblock
		return gateway.ExerciseVerdict{Correct: true, Message: "ok"}, nil
	}}
	r := NewReconciler(api, zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := r.CheckExercise(ctx, l, entities.SubjectPython, pythonLesson(), "print"); err != nil {
			t.Errorf("first check: %v", err)
		}
	}()

	<-entered
	if _, err := r.CheckExercise(ctx, l, entities.SubjectPython, pythonLesson(), "print"); !errors.Is(err, ErrCheckInFlight) {
		t.Errorf("err = %v, want ErrCheckInFlight", err)
	}
	close(unblock)
	wg.Wait()

	if got := l.Progress.Get(entities.SubjectPython); len(got.CompletedLessons) != 1 {
		t.Errorf("lessons = %v", got.CompletedLessons)
	}
}

func TestReconciler_CheckExerciseFlushFailure(t *testing.T) {
	store := newFlakyStore()
	l := newTestLearner(t, store)
	store.broken.Store(true)

	r := NewReconciler(&stubAPI{}, zap.NewNop())
	if _, err := r.CheckExercise(context.Background(), l, entities.SubjectPython, pythonLesson(), "print"); !errors.Is(err, errDiskFull) {
		t.Fatalf("err = %v, want disk full", err)
	}
	if l.Progress.Get(entities.SubjectPython).HasLesson(1) {
		t.Error("lesson recorded despite failed flush")
	}
}

func threeQuestions() []entities.QuizQuestion {
	return []entities.QuizQuestion{
		{Question: "q1", Options: []string{"a", "b"}, Correct: 0},
		{Question: "q2", Options: []string{"a", "b"}, Correct: 1},
		{Question: "q3", Options: []string{"a", "b", "c"}, Correct: 2},
	}
}

// startQuiz opens a quiz on l and selects answers.
func startQuiz(t *testing.T, l *Learner, subject entities.Subject, questions []entities.QuizQuestion, answers entities.QuizAnswers) {
	t.Helper()
	l.StartQuiz(subject, questions, false)
	for q, opt := range answers {
		if err := l.SelectAnswer(subject, q, opt); err != nil {
			t.Fatalf("select %d=%d: %v", q, opt, err)
		}
	}
}

func TestReconciler_CheckQuizOffline(t *testing.T) {
	tests := []struct {
		name        string
		answers     entities.QuizAnswers
		wantPercent int
		wantPassed  bool
		wantMessage string
	}{
		{name: "two of three", answers: entities.QuizAnswers{0: 0, 1: 1, 2: 0}, wantPercent: 67, wantMessage: "Try again!"},
		{name: "all correct", answers: entities.QuizAnswers{0: 0, 1: 1, 2: 2}, wantPercent: 100, wantPassed: true, wantMessage: "Excellent!"},
		{name: "unanswered", answers: entities.QuizAnswers{}, wantPercent: 0, wantMessage: "Try again!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLearner(t, storage.NewMemoryStore())
			r := NewReconciler(&stubAPI{}, zap.NewNop())
			startQuiz(t, l, entities.SubjectPython, threeQuestions(), tt.answers)

			got, err := r.CheckQuiz(context.Background(), l, entities.SubjectPython)
			if err != nil {
				t.Fatalf("check: %v", err)
			}
			if got.Result.Percent != tt.wantPercent || got.Result.Passed != tt.wantPassed || got.Result.Message != tt.wantMessage {
				t.Errorf("result = %+v", got.Result)
			}
			if got.Source != entities.SourceLocal {
				t.Errorf("source = %q", got.Source)
			}
			if len(got.Attempt.Questions) != 3 {
				t.Errorf("attempt = %+v", got.Attempt)
			}

			scores := l.Progress.Get(entities.SubjectPython).QuizScores
			if tt.wantPassed {
				if len(scores) != 1 || scores[0].Percent != tt.wantPercent || !got.Recorded {
					t.Errorf("scores = %+v, recorded = %v", scores, got.Recorded)
				}
			} else if len(scores) != 0 || got.Recorded {
				t.Errorf("failed attempt recorded: %+v", scores)
			}
		})
	}
}

func TestReconciler_CheckQuizRemote(t *testing.T) {
	l := newTestLearner(t, storage.NewMemoryStore())
	api := &stubAPI{checkQuiz: func(entities.Subject, entities.QuizAnswers) (gateway.QuizVerdict, error) {
		return gateway.QuizVerdict{Score: 5, Total: 7, Percent: 71, Passed: true}, nil
	}}
	r := NewReconciler(api, zap.NewNop())
	startQuiz(t, l, entities.SubjectJavaScript, threeQuestions(), nil)

	got, err := r.CheckQuiz(context.Background(), l, entities.SubjectJavaScript)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if got.State != entities.CheckRecorded || got.Source != entities.SourceRemote {
		t.Errorf("outcome = %+v", got)
	}
	if got.Result.Score != 5 || got.Result.Total != 7 || got.Result.Percent != 71 || !got.Result.Passed {
		t.Errorf("result = %+v", got.Result)
	}

	scores := l.Progress.Get(entities.SubjectJavaScript).QuizScores
	if len(scores) != 1 || scores[0].Score != 5 || scores[0].Total != 7 {
		t.Errorf("scores = %+v", scores)
	}
}

func TestReconciler_CheckQuizEmpty(t *testing.T) {
	api := &stubAPI{}
	r := NewReconciler(api, zap.NewNop())
	l := newTestLearner(t, storage.NewMemoryStore())
	l.StartQuiz(entities.SubjectPython, nil, false)

	_, err := r.CheckQuiz(context.Background(), l, entities.SubjectPython)
	if !errors.Is(err, ErrEmptyQuiz) {
		t.Fatalf("err = %v, want ErrEmptyQuiz", err)
	}
	if api.calls.Load() != 0 {
		t.Error("empty quiz reached the network")
	}
}

func TestReconciler_CheckQuizWithoutAttempt(t *testing.T) {
	r := NewReconciler(&stubAPI{}, zap.NewNop())
	l := newTestLearner(t, storage.NewMemoryStore())
	startQuiz(t, l, entities.SubjectPython, threeQuestions(), nil)

	if _, err := r.CheckQuiz(context.Background(), l, entities.SubjectJavaScript); !errors.Is(err, ErrNoActiveQuiz) {
		t.Errorf("other subject: err = %v, want ErrNoActiveQuiz", err)
	}
	if _, err := l.Quiz(); err != nil {
		t.Errorf("quiz of another subject was consumed: %v", err)
	}
}

func TestReconciler_CheckQuizRecordsAttemptOnce(t *testing.T) {
	ctx := context.Background()
	l := newTestLearner(t, storage.NewMemoryStore())
	r := NewReconciler(&stubAPI{}, zap.NewNop())
	startQuiz(t, l, entities.SubjectPython, threeQuestions(), entities.QuizAnswers{0: 0, 1: 1, 2: 2})

	first, err := r.CheckQuiz(ctx, l, entities.SubjectPython)
	if err != nil || !first.Recorded {
		t.Fatalf("first check: recorded=%v err=%v", first.Recorded, err)
	}

	if _, err := r.CheckQuiz(ctx, l, entities.SubjectPython); !errors.Is(err, ErrNoActiveQuiz) {
		t.Errorf("second check: err = %v, want ErrNoActiveQuiz", err)
	}
	if n := len(l.Progress.Get(entities.SubjectPython).QuizScores); n != 1 {
		t.Errorf("scores = %d, want 1", n)
	}
}

func TestReconciler_CheckQuizConcurrentSubmit(t *testing.T) {
	ctx := context.Background()
	entered := make(chan struct{})
	release := make(chan struct{})
	api := &stubAPI{checkQuiz: func(entities.Subject, entities.QuizAnswers) (gateway.QuizVerdict, error) {
		close(entered)
		<-release
		return gateway.QuizVerdict{Score: 3, Total: 3}, nil
	}}
	r := NewReconciler(api, zap.NewNop())
	l := newTestLearner(t, storage.NewMemoryStore())
	startQuiz(t, l, entities.SubjectPython, threeQuestions(), entities.QuizAnswers{0: 0, 1: 1, 2: 2})

	done := make(chan error, 1)
	go func() {
		_, err := r.CheckQuiz(ctx, l, entities.SubjectPython)
		done <- err
	}()
	<-entered

	if _, err := r.CheckQuiz(ctx, l, entities.SubjectPython); !errors.Is(err, ErrCheckInFlight) {
		t.Errorf("concurrent check: err = %v, want ErrCheckInFlight", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first check: %v", err)
	}

	if _, err := r.CheckQuiz(ctx, l, entities.SubjectPython); !errors.Is(err, ErrNoActiveQuiz) {
		t.Errorf("check after finish: err = %v, want ErrNoActiveQuiz", err)
	}
	if n := len(l.Progress.Get(entities.SubjectPython).QuizScores); n != 1 {
		t.Errorf("scores = %d, want 1", n)
	}
}

func TestReconciler_CheckQuizFlushFailureKeepsAttempt(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	l := newTestLearner(t, store)
	r := NewReconciler(&stubAPI{}, zap.NewNop())
	startQuiz(t, l, entities.SubjectPython, threeQuestions(), entities.QuizAnswers{0: 0, 1: 1, 2: 2})

	store.broken.Store(true)
	if _, err := r.CheckQuiz(ctx, l, entities.SubjectPython); !errors.Is(err, ErrFlush) {
		t.Fatalf("err = %v, want ErrFlush", err)
	}

	store.broken.Store(false)
	got, err := r.CheckQuiz(ctx, l, entities.SubjectPython)
	if err != nil || !got.Recorded {
		t.Fatalf("retry: recorded=%v err=%v", got.Recorded, err)
	}
	if n := len(l.Progress.Get(entities.SubjectPython).QuizScores); n != 1 {
		t.Errorf("scores = %d, want 1", n)
	}
}
