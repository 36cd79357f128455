package telegram

import (
	"context"
	"time"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
	"github.com/aliskhannn/learn-scripting/internal/domain/projection"
	"github.com/aliskhannn/learn-scripting/internal/scheduler"
	"github.com/aliskhannn/learn-scripting/internal/service"
)

type LearnerRegistry interface {
	Get(ctx context.Context, chatID int64) *service.Learner
}

type LessonService interface {
	Catalog(ctx context.Context, subject entities.Subject) service.Catalog
	Lesson(ctx context.Context, subject entities.Subject, id int) (entities.Lesson, error)
}

type QuizService interface {
	Start(ctx context.Context, l *service.Learner, subject entities.Subject) service.QuizAttempt
	Select(l *service.Learner, subject entities.Subject, question, option int) (service.QuizAttempt, error)
}

type Reconciler interface {
	CheckExercise(ctx context.Context, l *service.Learner, subject entities.Subject, lesson entities.Lesson, answer string) (service.ExerciseOutcome, error)
	CheckQuiz(ctx context.Context, l *service.Learner, subject entities.Subject) (service.QuizOutcome, error)
}

type StatsService interface {
	Stats(ctx context.Context, l *service.Learner) service.StatsReport
	Ranking(ctx context.Context, l *service.Learner) service.RankingReport
	Dashboard(l *service.Learner) projection.Dashboard
}

type AuthService interface {
	Login(ctx context.Context, l *service.Learner, username, password string) (service.AuthOutcome, error)
	Register(ctx context.Context, l *service.Learner, username, email, password, confirm string) (service.AuthOutcome, error)
	Logout(ctx context.Context, l *service.Learner) error
}

type BackupService interface {
	Export(l *service.Learner) (service.BackupFile, error)
	Import(ctx context.Context, l *service.Learner, data []byte) error
}

type SettingsService interface {
	ToggleDarkMode(ctx context.Context, l *service.Learner) (bool, error)
}

// ServerStatus reports the last health poll.
type ServerStatus interface {
	Status() (scheduler.ServerStatus, time.Time)
}
