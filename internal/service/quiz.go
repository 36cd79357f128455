package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
)

type QuizService struct {
	api    API
	bundle *Bundle
	log    *zap.Logger
}

func NewQuizService(api API, bundle *Bundle, log *zap.Logger) *QuizService {
	return &QuizService{api: api, bundle: bundle, log: log}
}

// Start loads the quiz of subject and makes it the learner's current quiz.
// Remote questions that fail validation are replaced by the bundled quiz.
func (s *QuizService) Start(ctx context.Context, l *Learner, subject entities.Subject) QuizAttempt {
	questions, offline := s.questions(ctx, subject)
	l.StartQuiz(subject, questions, offline)

	attempt, _ := l.Quiz()
	return attempt
}

// Select stores an answer of the current quiz and returns the updated attempt.
func (s *QuizService) Select(l *Learner, subject entities.Subject, question, option int) (QuizAttempt, error) {
	if err := l.SelectAnswer(subject, question, option); err != nil {
		return QuizAttempt{}, err
	}
	return l.Quiz()
}

func (s *QuizService) questions(ctx context.Context, subject entities.Subject) ([]entities.QuizQuestion, bool) {
	remote, err := s.api.Quiz(ctx, subject)
	if err == nil {
		err = entities.ValidateQuiz(remote)
	}
	if err != nil {
		s.log.Warn("quiz unavailable, using bundled quiz",
			zap.String("subject", string(subject)),
			zap.Error(err),
		)
		return s.bundle.Quizzes[subject], true
	}
	return remote, false
}
