package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
)

// Catalog is the lesson list of a subject.
type Catalog struct {
	Subject entities.Subject
	Lessons []entities.Lesson
	Offline bool // served from the bundled content
}

// Find returns the lesson with id.
func (c Catalog) Find(id int) (entities.Lesson, bool) {
	for _, l := range c.Lessons {
		if l.ID == id {
			return l, true
		}
	}
	return entities.Lesson{}, false
}

type LessonService struct {
	api    API
	bundle *Bundle
	log    *zap.Logger

	mu    sync.RWMutex
	sizes map[entities.Subject]int
}

func NewLessonService(api API, bundle *Bundle, log *zap.Logger) *LessonService {
	return &LessonService{
		api:    api,
		bundle: bundle,
		log:    log,
		sizes:  make(map[entities.Subject]int),
	}
}

// Catalog fetches the lessons of subject, falling back to the bundled ones.
func (s *LessonService) Catalog(ctx context.Context, subject entities.Subject) Catalog {
	remote, err := s.api.Lessons(ctx, subject)
	if err != nil {
		s.log.Warn("lessons unavailable, using bundled catalog",
			zap.String("subject", string(subject)),
			zap.Error(err),
		)
		c := Catalog{Subject: subject, Lessons: s.bundle.Lessons[subject], Offline: true}
		s.remember(c)
		return c
	}

	valid := make([]entities.Lesson, 0, len(remote))
	for _, lesson := range remote {
		if err := lesson.Validate(); err != nil {
			s.log.Error("dropping invalid lesson",
				zap.String("subject", string(subject)),
				zap.Int("lesson_id", lesson.ID),
				zap.Error(err),
			)
			continue
		}
		valid = append(valid, lesson)
	}

	c := Catalog{Subject: subject, Lessons: valid}
	s.remember(c)
	return c
}

// Lesson returns a single lesson of subject.
func (s *LessonService) Lesson(ctx context.Context, subject entities.Subject, id int) (entities.Lesson, error) {
	lesson, ok := s.Catalog(ctx, subject).Find(id)
	if !ok {
		return entities.Lesson{}, ErrLessonNotFound
	}
	return lesson, nil
}

// CatalogSizes returns the lesson count of every subject seen so far.
func (s *LessonService) CatalogSizes() map[entities.Subject]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[entities.Subject]int, len(s.sizes))
	for k, v := range s.sizes {
		out[k] = v
	}
	return out
}

func (s *LessonService) remember(c Catalog) {
	s.mu.Lock()
	s.sizes[c.Subject] = len(c.Lessons)
	s.mu.Unlock()
}
