package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
	"github.com/aliskhannn/learn-scripting/internal/storage"
)

type SettingsRepository struct {
	store storage.Store
}

func NewSettingsRepository(store storage.Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

// Get returns the stored settings or defaults when none were saved.
func (r *SettingsRepository) Get(ctx context.Context) (entities.Settings, error) {
	v, err := r.store.Get(ctx, keyDarkMode)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return entities.Settings{}, nil
		}
		return entities.Settings{}, fmt.Errorf("get settings: %w", err)
	}

	return entities.Settings{DarkMode: string(v) == "true"}, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s entities.Settings) error {
	if err := r.store.Set(ctx, keyDarkMode, []byte(strconv.FormatBool(s.DarkMode))); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
