package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
	"github.com/aliskhannn/learn-scripting/internal/gateway"
	"github.com/aliskhannn/learn-scripting/internal/storage"
)

var errOffline = &gateway.Error{Op: "test", Err: errors.New("connection refused")}

// stubAPI answers with the configured funcs; unset ones behave like an unreachable server.
type stubAPI struct {
	calls atomic.Int32

	stats         func() (entities.Stats, error)
	lessons       func(entities.Subject) ([]entities.Lesson, error)
	quiz          func(entities.Subject) ([]entities.QuizQuestion, error)
	checkExercise func(entities.Subject, int, string) (gateway.ExerciseVerdict, error)
	checkQuiz     func(entities.Subject, entities.QuizAnswers) (gateway.QuizVerdict, error)
	login         func(string, string) (gateway.AuthResult, error)
	register      func(string, string, string) (gateway.AuthResult, error)
	ranking       func() ([]entities.RankingEntry, error)
}

func (s *stubAPI) Health(context.Context) (gateway.Health, error) {
	s.calls.Add(1)
	return gateway.Health{}, errOffline
}

func (s *stubAPI) Stats(context.Context) (entities.Stats, error) {
	s.calls.Add(1)
	if s.stats == nil {
		return entities.Stats{}, errOffline
	}
	return s.stats()
}

func (s *stubAPI) Lessons(_ context.Context, subject entities.Subject) ([]entities.Lesson, error) {
	s.calls.Add(1)
	if s.lessons == nil {
		return nil, errOffline
	}
	return s.lessons(subject)
}

func (s *stubAPI) Quiz(_ context.Context, subject entities.Subject) ([]entities.QuizQuestion, error) {
	s.calls.Add(1)
	if s.quiz == nil {
		return nil, errOffline
	}
	return s.quiz(subject)
}

func (s *stubAPI) CheckExercise(_ context.Context, subject entities.Subject, lessonID int, answer string) (gateway.ExerciseVerdict, error) {
	s.calls.Add(1)
	if s.checkExercise == nil {
		return gateway.ExerciseVerdict{}, errOffline
	}
	return s.checkExercise(subject, lessonID, answer)
}

func (s *stubAPI) CheckQuiz(_ context.Context, subject entities.Subject, answers entities.QuizAnswers) (gateway.QuizVerdict, error) {
	s.calls.Add(1)
	if s.checkQuiz == nil {
		return gateway.QuizVerdict{}, errOffline
	}
	return s.checkQuiz(subject, answers)
}

func (s *stubAPI) Login(_ context.Context, username, password string) (gateway.AuthResult, error) {
	s.calls.Add(1)
	if s.login == nil {
		return gateway.AuthResult{}, errOffline
	}
	return s.login(username, password)
}

func (s *stubAPI) Register(_ context.Context, username, email, password string) (gateway.AuthResult, error) {
	s.calls.Add(1)
	if s.register == nil {
		return gateway.AuthResult{}, errOffline
	}
	return s.register(username, email, password)
}

func (s *stubAPI) Ranking(context.Context) ([]entities.RankingEntry, error) {
	s.calls.Add(1)
	if s.ranking == nil {
		return nil, errOffline
	}
	return s.ranking()
}

// flakyStore fails every write while broken is set.
type flakyStore struct {
	*storage.MemoryStore
	broken atomic.Bool
	writes atomic.Int32
}

var errDiskFull = errors.New("disk full")

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: storage.NewMemoryStore()}
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if s.broken.Load() {
		return errDiskFull
	}
	s.writes.Add(1)
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *flakyStore) SetMany(ctx context.Context, values map[string][]byte) error {
	if s.broken.Load() {
		return errDiskFull
	}
	s.writes.Add(1)
	for k, v := range values {
		if err := s.MemoryStore.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}

func newTestLearner(t *testing.T, store storage.Store) *Learner {
	t.Helper()
	return NewLearnerRegistry(store, zap.NewNop()).Get(context.Background(), 42)
}

func mustBundle(t *testing.T) *Bundle {
	t.Helper()
	b, err := LoadBundle()
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	return b
}

func pythonLesson() entities.Lesson {
	return entities.Lesson{
		ID:    1,
		Title: "Printing text",
		Exercise: &entities.Exercise{
			Question: "Which function writes text to the screen?",
			Template: "___(\"Hi\")",
			Answer:   "print",
		},
	}
}
