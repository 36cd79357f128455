package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
	"github.com/aliskhannn/learn-scripting/internal/storage"
)

// ProgressEventKind names a progress mutation.
type ProgressEventKind string

const (
	EventLessonCompleted ProgressEventKind = "lesson_completed"
	EventScoreAppended   ProgressEventKind = "score_appended"
	EventReset           ProgressEventKind = "reset"
	EventReplaced        ProgressEventKind = "replaced"
)

// ProgressEvent is delivered to observers after a mutation has been persisted.
type ProgressEvent struct {
	Kind     ProgressEventKind
	Subject  entities.Subject // empty for reset and replace
	LessonID int
	Score    *entities.ScoreEntry
}

type ProgressObserver func(ProgressEvent)

// ProgressState is the in-memory progress of one learner with write-through persistence.
// A mutation is applied to a copy, flushed, and only then becomes visible.
type ProgressState struct {
	mu        sync.Mutex
	repo      ProgressRepository
	progress  entities.Progress
	observers []ProgressObserver
	now       func() time.Time
}

// LoadProgressState reads every subject from repo.
// A missing record starts empty; an unreadable one is logged and starts empty.
func LoadProgressState(ctx context.Context, repo ProgressRepository, log *zap.Logger) *ProgressState {
	p := entities.NewProgress()
	for _, subject := range entities.Subjects() {
		rec, err := repo.Get(ctx, subject)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				log.Warn("discarding unreadable progress record",
					zap.String("subject", string(subject)),
					zap.Error(err),
				)
			}
			continue
		}
		p[subject] = rec
	}

	return &ProgressState{
		repo:     repo,
		progress: p,
		now:      time.Now,
	}
}

// Subscribe registers an observer for persisted mutations.
func (s *ProgressState) Subscribe(fn ProgressObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Get returns a copy of the subject's record.
func (s *ProgressState) Get(subject entities.Subject) entities.ProgressRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.progress[subject]
	if !ok {
		return *entities.NewProgressRecord()
	}
	return *rec.Clone()
}

// Snapshot returns a deep copy of all records.
func (s *ProgressState) Snapshot() entities.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.Clone()
}

// MarkLessonComplete records a completed lesson.
// It reports false without writing anything when the lesson was already completed.
func (s *ProgressState) MarkLessonComplete(ctx context.Context, subject entities.Subject, lessonID int) (bool, error) {
	s.mu.Lock()

	if _, ok := s.progress[subject]; !ok {
		s.mu.Unlock()
		return false, entities.ErrUnknownSubject
	}
	if s.progress[subject].HasLesson(lessonID) {
		s.mu.Unlock()
		return false, nil
	}

	next := s.progress.Clone()
	next[subject].CompleteLesson(lessonID, s.now())

	return true, s.commit(ctx, next, ProgressEvent{
		Kind:     EventLessonCompleted,
		Subject:  subject,
		LessonID: lessonID,
	})
}

// AppendScore appends a quiz result. Every call appends.
func (s *ProgressState) AppendScore(ctx context.Context, subject entities.Subject, entry entities.ScoreEntry) error {
	s.mu.Lock()

	if _, ok := s.progress[subject]; !ok {
		s.mu.Unlock()
		return entities.ErrUnknownSubject
	}

	next := s.progress.Clone()
	next[subject].AddScore(entry)

	return s.commit(ctx, next, ProgressEvent{
		Kind:    EventScoreAppended,
		Subject: subject,
		Score:   &entry,
	})
}

// Reset empties every record and flushes immediately.
func (s *ProgressState) Reset(ctx context.Context) error {
	s.mu.Lock()
	return s.commit(ctx, entities.NewProgress(), ProgressEvent{Kind: EventReset})
}

// Replace swaps in imported progress after normalizing it. Progress with an
// invalid quiz score is rejected and nothing changes.
func (s *ProgressState) Replace(ctx context.Context, p entities.Progress) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()

	next := entities.NewProgress()
	for subject, rec := range p {
		if _, ok := next[subject]; !ok || rec == nil {
			continue
		}
		c := rec.Clone()
		c.Normalize()
		next[subject] = c
	}

	return s.commit(ctx, next, ProgressEvent{Kind: EventReplaced})
}

// commit must be called with s.mu held; it releases the lock before notifying.
func (s *ProgressState) commit(ctx context.Context, next entities.Progress, ev ProgressEvent) error {
	if err := s.repo.SaveAll(ctx, next); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrFlush, err)
	}

	s.progress = next
	observers := append([]ProgressObserver(nil), s.observers...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(ev)
	}
	return nil
}
