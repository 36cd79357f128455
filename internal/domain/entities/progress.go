package entities

import (
	"fmt"
	"slices"
	"time"
)

// ProgressRecord stores the learning progress of one subject.
type ProgressRecord struct {
	CompletedLessons []int        `json:"completedLessons"` // unique lesson ids, insertion order
	QuizScores       []ScoreEntry `json:"quizScores"`       // append-only, chronological
	LastActive       *time.Time   `json:"lastActive"`       // last lesson completion, nullable
}

// NewProgressRecord returns an empty record.
func NewProgressRecord() *ProgressRecord {
	return &ProgressRecord{
		CompletedLessons: []int{},
		QuizScores:       []ScoreEntry{},
	}
}

// HasLesson reports whether the lesson is already completed.
func (r ProgressRecord) HasLesson(lessonID int) bool {
	return slices.Contains(r.CompletedLessons, lessonID)
}

// CompleteLesson adds the lesson and updates LastActive.
// It returns false and leaves the record untouched if the lesson is already present.
func (r *ProgressRecord) CompleteLesson(lessonID int, now time.Time) bool {
	if r.HasLesson(lessonID) {
		return false
	}

	r.CompletedLessons = append(r.CompletedLessons, lessonID)
	r.LastActive = &now
	return true
}

// AddScore appends a quiz result. Every call appends.
func (r *ProgressRecord) AddScore(entry ScoreEntry) {
	r.QuizScores = append(r.QuizScores, entry)
}

// Clone returns a deep copy of the record.
func (r *ProgressRecord) Clone() *ProgressRecord {
	c := &ProgressRecord{
		CompletedLessons: append([]int{}, r.CompletedLessons...),
		QuizScores:       append([]ScoreEntry{}, r.QuizScores...),
	}
	if r.LastActive != nil {
		t := *r.LastActive
		c.LastActive = &t
	}
	return c
}

// Normalize restores the record invariants on data of unknown origin:
// nil slices become empty and duplicate lesson ids are dropped (first one wins).
func (r *ProgressRecord) Normalize() {
	if r.QuizScores == nil {
		r.QuizScores = []ScoreEntry{}
	}

	lessons := make([]int, 0, len(r.CompletedLessons))
	for _, id := range r.CompletedLessons {
		if !slices.Contains(lessons, id) {
			lessons = append(lessons, id)
		}
	}
	r.CompletedLessons = lessons
}

// Validate reports the first quiz score that breaks the ScoreEntry rules.
func (r ProgressRecord) Validate() error {
	for _, e := range r.QuizScores {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Progress maps every subject to its record.
type Progress map[Subject]*ProgressRecord

// NewProgress returns empty records for all subjects.
func NewProgress() Progress {
	p := make(Progress, len(Subjects()))
	for _, s := range Subjects() {
		p[s] = NewProgressRecord()
	}
	return p
}

// Validate checks every record.
func (p Progress) Validate() error {
	for s, rec := range p {
		if rec == nil {
			continue
		}
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("%s: %w", s, err)
		}
	}
	return nil
}

// Clone returns a deep copy; missing subjects are filled with empty records.
func (p Progress) Clone() Progress {
	c := NewProgress()
	for s, rec := range p {
		if rec != nil {
			c[s] = rec.Clone()
		}
	}
	return c
}
