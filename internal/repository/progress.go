package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
	"github.com/aliskhannn/learn-scripting/internal/storage"
)

type ProgressRepository struct {
	store storage.Store
}

func NewProgressRepository(store storage.Store) *ProgressRepository {
	return &ProgressRepository{store: store}
}

// Get reads the record of one subject.
// Returns storage.ErrNotFound if nothing was saved yet.
func (r *ProgressRepository) Get(ctx context.Context, subject entities.Subject) (*entities.ProgressRecord, error) {
	var rec entities.ProgressRecord
	if err := storage.GetJSON(ctx, r.store, subject.StorageKey(), &rec); err != nil {
		return nil, err
	}

	rec.Normalize()
	return &rec, nil
}

// Save writes the record of one subject.
func (r *ProgressRepository) Save(ctx context.Context, subject entities.Subject, rec *entities.ProgressRecord) error {
	if err := storage.SetJSON(ctx, r.store, subject.StorageKey(), rec); err != nil {
		return fmt.Errorf("save progress %s: %w", subject, err)
	}
	return nil
}

// SaveAll writes every subject in one batch.
func (r *ProgressRepository) SaveAll(ctx context.Context, p entities.Progress) error {
	values := make(map[string][]byte, len(p))
	for subject, rec := range p {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode progress %s: %w", subject, err)
		}
		values[subject.StorageKey()] = data
	}

	if err := storage.SetMany(ctx, r.store, values); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
