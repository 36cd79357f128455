package entities

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownSubject = errors.New("unknown subject")

// Subject identifies one of the fixed learning tracks.
type Subject string

const (
	SubjectPython     Subject = "python"
	SubjectJavaScript Subject = "javascript"
)

// Subjects returns the closed set of tracks in display order.
func Subjects() []Subject {
	return []Subject{SubjectPython, SubjectJavaScript}
}

// ParseSubject maps user input ("python", "JS", "javascript") to a Subject.
func ParseSubject(s string) (Subject, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "python", "py":
		return SubjectPython, nil
	case "javascript", "js":
		return SubjectJavaScript, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSubject, s)
	}
}

// StorageKey is the key under which the subject's progress record is persisted.
func (s Subject) StorageKey() string {
	return "progress_" + string(s)
}

// Title returns a human-readable track name.
func (s Subject) Title() string {
	switch s {
	case SubjectPython:
		return "Python"
	case SubjectJavaScript:
		return "JavaScript"
	default:
		return string(s)
	}
}
