package entities

import (
	"errors"
	"testing"
)

func TestParseSubject(t *testing.T) {
	for in, want := range map[string]Subject{
		"python":     SubjectPython,
		" Py ":       SubjectPython,
		"JavaScript": SubjectJavaScript,
		"js":         SubjectJavaScript,
	} {
		got, err := ParseSubject(in)
		if err != nil || got != want {
			t.Errorf("ParseSubject(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if _, err := ParseSubject("ruby"); !errors.Is(err, ErrUnknownSubject) {
		t.Errorf("err = %v, want ErrUnknownSubject", err)
	}
}

func TestStorageKey(t *testing.T) {
	if SubjectPython.StorageKey() != "progress_python" || SubjectJavaScript.StorageKey() != "progress_javascript" {
		t.Fatal("unexpected storage keys")
	}
}
