// Package projection derives dashboard aggregates from progress.
// All functions are pure; nothing here holds state.
package projection

import (
	"math"
	"slices"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
)

// CompletionPercent returns round(100*completed/catalogSize).
// A non-positive catalog size falls back to entities.DefaultLessonsPerSubject.
func CompletionPercent(rec *entities.ProgressRecord, catalogSize int) int {
	if catalogSize <= 0 {
		catalogSize = entities.DefaultLessonsPerSubject
	}
	if rec == nil {
		return 0
	}
	return entities.RoundPercent(len(rec.CompletedLessons), catalogSize)
}

// AverageScore is the rounded mean percent of every recorded quiz, 0 if none.
func AverageScore(p entities.Progress) int {
	total, count := 0, 0
	for _, s := range entities.Subjects() {
		rec := p[s]
		if rec == nil {
			continue
		}
		for _, e := range rec.QuizScores {
			total += e.Percent
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(count)))
}

// TotalCompleted counts completed lessons across subjects.
func TotalCompleted(p entities.Progress) int {
	n := 0
	for _, s := range entities.Subjects() {
		if rec := p[s]; rec != nil {
			n += len(rec.CompletedLessons)
		}
	}
	return n
}

// TotalQuizzes counts recorded quiz attempts across subjects.
func TotalQuizzes(p entities.Progress) int {
	n := 0
	for _, s := range entities.Subjects() {
		if rec := p[s]; rec != nil {
			n += len(rec.QuizScores)
		}
	}
	return n
}

// SubjectSummary is the per-track part of the dashboard.
type SubjectSummary struct {
	Subject          entities.Subject
	CompletedLessons []int
	QuizScores       []entities.ScoreEntry
	CatalogSize      int
	Percent          int
}

// Dashboard is the complete dashboard view model.
type Dashboard struct {
	Subjects     []SubjectSummary
	TotalLessons int
	TotalQuizzes int
	AverageScore int
}

// BuildDashboard computes every aggregate in one pass.
// catalog holds known catalog sizes; missing subjects use the default.
func BuildDashboard(p entities.Progress, catalog map[entities.Subject]int) Dashboard {
	d := Dashboard{
		TotalLessons: TotalCompleted(p),
		TotalQuizzes: TotalQuizzes(p),
		AverageScore: AverageScore(p),
	}

	for _, s := range entities.Subjects() {
		rec := p[s]
		if rec == nil {
			rec = entities.NewProgressRecord()
		}
		size := catalog[s]
		if size <= 0 {
			size = entities.DefaultLessonsPerSubject
		}
		d.Subjects = append(d.Subjects, SubjectSummary{
			Subject:          s,
			CompletedLessons: rec.CompletedLessons,
			QuizScores:       rec.QuizScores,
			CatalogSize:      size,
			Percent:          CompletionPercent(rec, size),
		})
	}

	return d
}

// fallbackRanking is shown when the ranking service is unreachable.
var fallbackRanking = []entities.RankingEntry{
	{ID: 1, Username: "MasterOfCode", Score: 450},
	{ID: 2, Username: "PythonGuru", Score: 420},
	{ID: 3, Username: "JSExpert", Score: 380},
}

const (
	fallbackUserID    = 4
	fallbackUsername  = "NewUser"
	fallbackUserScore = 150
)

// FallbackRanking returns the fixed leaderboard with the current user appended
// at a fixed score, sorted by score descending. Ties keep the fixed-list order.
func FallbackRanking(session entities.Session) []entities.RankingEntry {
	me := entities.RankingEntry{
		ID:       session.ID,
		Username: session.Username,
		Score:    fallbackUserScore,
	}
	if me.ID == 0 {
		me.ID = fallbackUserID
	}
	if me.Username == "" {
		me.Username = fallbackUsername
	}

	rows := make([]entities.RankingEntry, 0, len(fallbackRanking)+1)
	rows = append(rows, fallbackRanking...)
	rows = append(rows, me)

	SortRanking(rows)
	return rows
}

// SortRanking orders rows by score descending with a stable sort.
func SortRanking(rows []entities.RankingEntry) {
	slices.SortStableFunc(rows, func(a, b entities.RankingEntry) int {
		return b.Score - a.Score
	})
}
