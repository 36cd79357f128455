package entities

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// PassPercent is the minimal quiz percent that counts as a passed attempt.
const PassPercent = 70

var ErrInvalidScore = errors.New("invalid score")

// ScoreEntry is one recorded (passed) quiz attempt. Immutable once appended.
type ScoreEntry struct {
	Score   int       `json:"score"`   // number of correct answers
	Total   int       `json:"total"`   // number of questions, always > 0
	Percent int       `json:"percent"` // round(100*score/total)
	Date    time.Time `json:"date"`    // when the attempt was checked
}

// NewScoreEntry builds an entry and derives its percent.
func NewScoreEntry(score, total int, date time.Time) (ScoreEntry, error) {
	if total <= 0 || score < 0 || score > total {
		return ScoreEntry{}, ErrInvalidScore
	}

	return ScoreEntry{
		Score:   score,
		Total:   total,
		Percent: RoundPercent(score, total),
		Date:    date,
	}, nil
}

// Validate checks an entry of unknown origin against the NewScoreEntry rules.
func (e ScoreEntry) Validate() error {
	if e.Total <= 0 || e.Score < 0 || e.Score > e.Total {
		return fmt.Errorf("%w: %d/%d", ErrInvalidScore, e.Score, e.Total)
	}
	if e.Percent != RoundPercent(e.Score, e.Total) {
		return fmt.Errorf("%w: percent %d for %d/%d", ErrInvalidScore, e.Percent, e.Score, e.Total)
	}
	return nil
}

// Passed reports whether the attempt reaches PassPercent.
func (e ScoreEntry) Passed() bool {
	return e.Percent >= PassPercent
}

// RoundPercent returns round(100*part/whole), rounding half away from zero.
// A non-positive whole yields 0.
func RoundPercent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}
