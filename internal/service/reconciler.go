package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
)

// ExerciseOutcome is the verdict of one exercise check.
type ExerciseOutcome struct {
	AttemptID string
	Correct   bool
	Message   string
	State     entities.CheckState
	Source    entities.VerdictSource
	Recorded  bool // progress changed as a result of this check
}

// QuizOutcome is the verdict of one quiz check.
type QuizOutcome struct {
	AttemptID string
	Attempt   QuizAttempt
	Result    entities.QuizResult
	State     entities.CheckState
	Source    entities.VerdictSource
	Recorded  bool
}

// Reconciler asks the server for verdicts and falls back to the local answer
// keys when it cannot be reached. Each check records progress at most once.
type Reconciler struct {
	api API
	log *zap.Logger
	now func() time.Time
}

func NewReconciler(api API, log *zap.Logger) *Reconciler {
	return &Reconciler{api: api, log: log, now: time.Now}
}

// CheckExercise checks an answer to the exercise of lesson.
func (r *Reconciler) CheckExercise(
	ctx context.Context, l *Learner, subject entities.Subject, lesson entities.Lesson, answer string,
) (ExerciseOutcome, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return ExerciseOutcome{}, ErrEmptyAnswer
	}
	if lesson.Exercise == nil {
		return ExerciseOutcome{}, ErrNoExercise
	}

	release, err := l.beginCheck(fmt.Sprintf("exercise:%s:%d", subject, lesson.ID))
	if err != nil {
		return ExerciseOutcome{}, err
	}
	defer release()

	out := ExerciseOutcome{AttemptID: uuid.NewString(), State: entities.CheckSubmitted}
	log := r.log.With(
		zap.String("attempt_id", out.AttemptID),
		zap.Int64("chat_id", l.ChatID),
		zap.String("subject", string(subject)),
		zap.Int("lesson_id", lesson.ID),
	)

	verdict, err := r.api.CheckExercise(ctx, subject, lesson.ID, answer)
	if err == nil {
		out.State = entities.CheckConfirmed
		out.Correct = verdict.Correct
		out.Message = verdict.Message
		if out.Message == "" {
			out.Message = exerciseMessage(out.Correct, lesson.Exercise.Answer)
		}
	} else {
		log.Warn("exercise check offline", zap.Error(err))
		out.State = entities.CheckFallback
		out.Correct = lesson.Exercise.MatchesAnswer(answer)
		out.Message = exerciseMessage(out.Correct, lesson.Exercise.Answer)
	}
	out.Source = entities.SourceFor(out.State)

	if !out.Correct {
		return out, nil
	}

	changed, err := l.Progress.MarkLessonComplete(ctx, subject, lesson.ID)
	if err != nil {
		return out, fmt.Errorf("record lesson: %w", err)
	}
	if changed {
		out.State = entities.CheckRecorded
		out.Recorded = true
	}

	log.Info("exercise checked",
		zap.String("source", string(out.Source)),
		zap.Bool("recorded", out.Recorded),
	)
	return out, nil
}

// CheckQuiz grades the learner's quiz in progress for subject. The attempt is
// consumed by the check; only passed attempts are recorded.
func (r *Reconciler) CheckQuiz(ctx context.Context, l *Learner, subject entities.Subject) (QuizOutcome, error) {
	release, err := l.beginCheck("quiz:" + string(subject))
	if err != nil {
		return QuizOutcome{}, err
	}
	defer release()

	attempt, err := l.takeQuiz(subject)
	if err != nil {
		return QuizOutcome{}, err
	}
	if len(attempt.Questions) == 0 {
		return QuizOutcome{}, ErrEmptyQuiz
	}

	out := QuizOutcome{AttemptID: uuid.NewString(), Attempt: attempt, State: entities.CheckSubmitted}
	log := r.log.With(
		zap.String("attempt_id", out.AttemptID),
		zap.Int64("chat_id", l.ChatID),
		zap.String("subject", string(subject)),
	)

	verdict, err := r.api.CheckQuiz(ctx, subject, attempt.Answers)
	if err == nil {
		out.State = entities.CheckConfirmed
		out.Result = entities.NewQuizResult(verdict.Score, verdict.Total, verdict.Results)
	} else {
		log.Warn("quiz check offline", zap.Error(err))
		out.State = entities.CheckFallback
		out.Result = entities.GradeQuiz(attempt.Questions, attempt.Answers)
	}
	out.Source = entities.SourceFor(out.State)

	if !out.Result.Passed {
		return out, nil
	}

	entry, err := entities.NewScoreEntry(out.Result.Score, out.Result.Total, r.now())
	if err != nil {
		return out, fmt.Errorf("record quiz: %w", err)
	}
	if err := l.Progress.AppendScore(ctx, subject, entry); err != nil {
		l.restoreQuiz(attempt)
		return out, fmt.Errorf("record quiz: %w", err)
	}
	out.State = entities.CheckRecorded
	out.Recorded = true

	log.Info("quiz recorded",
		zap.String("source", string(out.Source)),
		zap.Int("percent", out.Result.Percent),
	)
	return out, nil
}

func exerciseMessage(correct bool, key string) string {
	if correct {
		return "Correct answer!"
	}
	return "Wrong! Correct answer: " + key
}
