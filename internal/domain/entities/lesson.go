package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidLesson    = errors.New("invalid lesson")
	ErrMissingAnswerKey = errors.New("exercise has no answer key")
)

// Lesson is a read-only unit of course content.
type Lesson struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Code        string    `json:"code"`
	Explanation string    `json:"explanation,omitempty"`
	Exercise    *Exercise `json:"exercise,omitempty"`
}

// Exercise is a fill-in question attached to a lesson.
type Exercise struct {
	Question string `json:"question"`
	Template string `json:"template"`
	Answer   string `json:"answer"` // answer key used by the offline check
}

// Validate rejects lessons that cannot be checked offline.
func (l Lesson) Validate() error {
	if l.ID <= 0 {
		return fmt.Errorf("%w: id %d", ErrInvalidLesson, l.ID)
	}
	if l.Exercise != nil && strings.TrimSpace(l.Exercise.Answer) == "" {
		return fmt.Errorf("lesson %d: %w", l.ID, ErrMissingAnswerKey)
	}
	return nil
}

// MatchesAnswer compares an answer with the key: trimmed and case-insensitive.
func (e Exercise) MatchesAnswer(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(e.Answer))
}
