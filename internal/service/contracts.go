package service

import (
	"context"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
	"github.com/aliskhannn/learn-scripting/internal/gateway"
)

// API is the remote course server. *gateway.Client implements it.
type API interface {
	Health(ctx context.Context) (gateway.Health, error)
	Stats(ctx context.Context) (entities.Stats, error)
	Lessons(ctx context.Context, subject entities.Subject) ([]entities.Lesson, error)
	Quiz(ctx context.Context, subject entities.Subject) ([]entities.QuizQuestion, error)
	CheckExercise(ctx context.Context, subject entities.Subject, lessonID int, answer string) (gateway.ExerciseVerdict, error)
	CheckQuiz(ctx context.Context, subject entities.Subject, answers entities.QuizAnswers) (gateway.QuizVerdict, error)
	Login(ctx context.Context, username, password string) (gateway.AuthResult, error)
	Register(ctx context.Context, username, email, password string) (gateway.AuthResult, error)
	Ranking(ctx context.Context) ([]entities.RankingEntry, error)
}

type ProgressRepository interface {
	Get(ctx context.Context, subject entities.Subject) (*entities.ProgressRecord, error)
	SaveAll(ctx context.Context, p entities.Progress) error
}

type SessionRepository interface {
	Get(ctx context.Context) (entities.Session, error)
	Save(ctx context.Context, s entities.Session) error
	Clear(ctx context.Context) error
}

type SettingsRepository interface {
	Get(ctx context.Context) (entities.Settings, error)
	Save(ctx context.Context, s entities.Settings) error
}
