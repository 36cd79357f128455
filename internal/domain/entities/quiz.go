package entities

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuestion = errors.New("invalid quiz question")
	ErrEmptyQuiz       = errors.New("quiz has no questions")
)

// QuizQuestion is a multiple-choice question with an answer key.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"` // ordered choices
	Correct  int      `json:"correct"` // index into Options
}

// Validate checks that the answer key points at an existing option.
func (q QuizQuestion) Validate() error {
	if q.Question == "" || len(q.Options) == 0 {
		return fmt.Errorf("%w: empty question or options", ErrInvalidQuestion)
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return fmt.Errorf("%w: correct index %d out of range", ErrInvalidQuestion, q.Correct)
	}
	return nil
}

// ValidateQuiz validates every question of a quiz.
func ValidateQuiz(questions []QuizQuestion) error {
	if len(questions) == 0 {
		return ErrEmptyQuiz
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// QuizAnswers maps a question index to the selected option index.
// Unanswered questions are absent.
type QuizAnswers map[int]int

// QuestionResult is the verdict for a single question.
type QuestionResult struct {
	Correct       bool `json:"correct"`
	CorrectAnswer int  `json:"correct_answer"`
}

// QuizResult is the verdict for a whole quiz attempt.
type QuizResult struct {
	Score   int
	Total   int
	Percent int
	Passed  bool
	Message string
	Results []QuestionResult
}

// NewQuizResult derives percent, pass flag and message from score and total.
func NewQuizResult(score, total int, results []QuestionResult) QuizResult {
	percent := RoundPercent(score, total)
	return QuizResult{
		Score:   score,
		Total:   total,
		Percent: percent,
		Passed:  percent >= PassPercent,
		Message: QuizMessage(percent),
		Results: results,
	}
}

// QuizMessage returns the feedback line for a percent.
func QuizMessage(percent int) string {
	switch {
	case percent >= 90:
		return "Excellent!"
	case percent >= PassPercent:
		return "Good job!"
	default:
		return "Try again!"
	}
}

// GradeQuiz scores answers against the bundled answer keys.
func GradeQuiz(questions []QuizQuestion, answers QuizAnswers) QuizResult {
	score := 0
	results := make([]QuestionResult, 0, len(questions))
	for i, q := range questions {
		selected, ok := answers[i]
		correct := ok && selected == q.Correct
		if correct {
			score++
		}
		results = append(results, QuestionResult{Correct: correct, CorrectAnswer: q.Correct})
	}

	return NewQuizResult(score, len(questions), results)
}
