package gateway

import "github.com/aliskhannn/learn-scripting/internal/domain/entities"

type exerciseRequest struct {
	Language string `json:"language"`
	LessonID int    `json:"lesson_id"`
	Answer   string `json:"answer"`
}

// ExerciseVerdict is the server's decision on an exercise answer.
type ExerciseVerdict struct {
	Correct       bool   `json:"correct"`
	Message       string `json:"message"`
	CorrectAnswer string `json:"correct_answer"`
}

type quizRequest struct {
	Language string         `json:"language"`
	Answers  map[string]int `json:"answers"` // question index as string
}

// QuizVerdict is the server's decision on a quiz attempt.
type QuizVerdict struct {
	Score   int                       `json:"score"`
	Total   int                       `json:"total"`
	Percent int                       `json:"percent"`
	Passed  bool                      `json:"passed"`
	Message string                    `json:"message"`
	Results []entities.QuestionResult `json:"results"`
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// User is the account returned by login and registration.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResult is the body of /api/login and /api/register.
type AuthResult struct {
	Success bool   `json:"success"`
	User    *User  `json:"user"`
	Error   string `json:"error"`
}

// Health is the body of /api/health.
type Health struct {
	Status string `json:"status"`
}
