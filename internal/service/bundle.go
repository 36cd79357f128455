package service

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
)

//go:embed data/lessons.json data/quizzes.json
var bundleFS embed.FS

// Bundle is the offline course content shipped with the binary.
type Bundle struct {
	Lessons map[entities.Subject][]entities.Lesson
	Quizzes map[entities.Subject][]entities.QuizQuestion
}

// LoadBundle decodes and validates the embedded content.
// An error here is a build defect and must stop start-up.
func LoadBundle() (*Bundle, error) {
	var b Bundle

	if err := decodeBundleFile("data/lessons.json", &b.Lessons); err != nil {
		return nil, err
	}
	if err := decodeBundleFile("data/quizzes.json", &b.Quizzes); err != nil {
		return nil, err
	}

	for _, subject := range entities.Subjects() {
		lessons := b.Lessons[subject]
		if len(lessons) == 0 {
			return nil, fmt.Errorf("bundled lessons: no lessons for %s", subject)
		}
		for _, lesson := range lessons {
			if err := lesson.Validate(); err != nil {
				return nil, fmt.Errorf("bundled lessons %s: %w", subject, err)
			}
		}

		if err := entities.ValidateQuiz(b.Quizzes[subject]); err != nil {
			return nil, fmt.Errorf("bundled quiz %s: %w", subject, err)
		}
	}

	return &b, nil
}

func decodeBundleFile(name string, out any) error {
	data, err := bundleFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
