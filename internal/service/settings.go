package service

import (
	"context"
	"fmt"
)

type SettingsService struct{}

func NewSettingsService() *SettingsService {
	return &SettingsService{}
}

// ToggleDarkMode flips and persists the dark mode preference.
func (s *SettingsService) ToggleDarkMode(ctx context.Context, l *Learner) (bool, error) {
	prefs := l.Settings()
	prefs.DarkMode = !prefs.DarkMode

	if err := l.setSettings(ctx, prefs); err != nil {
		return false, fmt.Errorf("toggle dark mode: %w", err)
	}
	return prefs.DarkMode, nil
}
