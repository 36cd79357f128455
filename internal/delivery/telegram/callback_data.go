package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
)

// Callback action constants.
const (
	actionLessons    = "lessons"
	actionLesson     = "lesson"
	actionExercise   = "exercise"
	actionQuiz       = "quiz"
	actionQuizOption = "qopt"
	actionQuizCheck  = "qcheck"
	actionDashboard  = "dashboard"
	actionRanking    = "ranking"
	actionReset      = "reset"
)

const (
	resetConfirm = "confirm"
	resetCancel  = "cancel"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// subject returns the first parameter as a subject.
func (cd callbackData) subject() (entities.Subject, bool) {
	if len(cd.Params) == 0 {
		return "", false
	}
	s, err := entities.ParseSubject(cd.Params[0])
	return s, err == nil
}

// intParam returns the i-th parameter as a non-negative integer.
func (cd callbackData) intParam(i int) (int, bool) {
	if i >= len(cd.Params) {
		return 0, false
	}
	n, err := strconv.Atoi(cd.Params[i])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func buildLessonsCallback(subject entities.Subject) string {
	return callbackData{Action: actionLessons, Params: []string{string(subject)}}.encode()
}

func buildLessonCallback(subject entities.Subject, lessonID int) string {
	return callbackData{
		Action: actionLesson,
		Params: []string{string(subject), strconv.Itoa(lessonID)},
	}.encode()
}

func buildExerciseCallback(subject entities.Subject, lessonID int) string {
	return callbackData{
		Action: actionExercise,
		Params: []string{string(subject), strconv.Itoa(lessonID)},
	}.encode()
}

func buildQuizCallback(subject entities.Subject) string {
	return callbackData{Action: actionQuiz, Params: []string{string(subject)}}.encode()
}

// buildQuizOptionCallback builds callback data for selecting an option of a question.
func buildQuizOptionCallback(subject entities.Subject, question, option int) string {
	return callbackData{
		Action: actionQuizOption,
		Params: []string{string(subject), strconv.Itoa(question), strconv.Itoa(option)},
	}.encode()
}

func buildQuizCheckCallback(subject entities.Subject) string {
	return callbackData{Action: actionQuizCheck, Params: []string{string(subject)}}.encode()
}

func buildDashboardCallback() string {
	return actionDashboard
}

func buildRankingCallback() string {
	return actionRanking
}

func buildResetConfirmCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetConfirm}}.encode()
}

func buildResetCancelCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetCancel}}.encode()
}
