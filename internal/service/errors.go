package service

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every input error detected before a network call.
var ErrValidation = errors.New("validation failed")

var (
	ErrEmptyAnswer        = fmt.Errorf("%w: answer is empty", ErrValidation)
	ErrNoExercise         = fmt.Errorf("%w: lesson has no exercise", ErrValidation)
	ErrEmptyQuiz          = fmt.Errorf("%w: quiz has no questions", ErrValidation)
	ErrInvalidOption      = fmt.Errorf("%w: option out of range", ErrValidation)
	ErrMissingCredentials = fmt.Errorf("%w: username and password are required", ErrValidation)
	ErrMissingFields      = fmt.Errorf("%w: all fields are required", ErrValidation)
	ErrPasswordMismatch   = fmt.Errorf("%w: passwords do not match", ErrValidation)
	ErrPasswordTooShort   = fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	ErrInvalidBackup      = fmt.Errorf("%w: invalid backup file", ErrValidation)
)

var (
	ErrFlush          = errors.New("flush progress")
	ErrCheckInFlight  = errors.New("check already in progress")
	ErrLoginFailed    = errors.New("login failed")
	ErrLessonNotFound = errors.New("lesson not found")
	ErrNoActiveLesson = errors.New("no lesson opened")
	ErrNoActiveQuiz   = errors.New("no quiz started")
)
