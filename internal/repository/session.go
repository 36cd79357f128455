package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
	"github.com/aliskhannn/learn-scripting/internal/storage"
)

// SessionRepository keeps the session as separate plain-string keys.
type SessionRepository struct {
	store storage.Store
}

func NewSessionRepository(store storage.Store) *SessionRepository {
	return &SessionRepository{store: store}
}

// Get returns the stored session; missing keys yield zero values.
func (r *SessionRepository) Get(ctx context.Context) (entities.Session, error) {
	var s entities.Session

	id, err := r.getString(ctx, keyUserID)
	if err != nil {
		return s, err
	}
	if id != "" {
		s.ID, err = strconv.ParseInt(id, 10, 64)
		if err != nil {
			return s, fmt.Errorf("parse %s: %w", keyUserID, err)
		}
	}

	if s.Username, err = r.getString(ctx, keyUsername); err != nil {
		return s, err
	}
	if s.Email, err = r.getString(ctx, keyUserEmail); err != nil {
		return s, err
	}

	loggedIn, err := r.getString(ctx, keyIsLoggedIn)
	if err != nil {
		return s, err
	}
	s.IsLoggedIn = loggedIn == "true"

	return s, nil
}

// Save writes all session keys in one batch.
func (r *SessionRepository) Save(ctx context.Context, s entities.Session) error {
	values := map[string][]byte{
		keyUserID:     []byte(strconv.FormatInt(s.ID, 10)),
		keyUsername:   []byte(s.Username),
		keyUserEmail:  []byte(s.Email),
		keyIsLoggedIn: []byte(strconv.FormatBool(s.IsLoggedIn)),
	}

	if err := storage.SetMany(ctx, r.store, values); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the identity keys and marks the client logged out.
func (r *SessionRepository) Clear(ctx context.Context) error {
	for _, key := range []string{keyUserID, keyUsername, keyUserEmail} {
		if err := r.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
	}

	if err := r.store.Set(ctx, keyIsLoggedIn, []byte("false")); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (r *SessionRepository) getString(ctx context.Context, key string) (string, error) {
	v, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return string(v), nil
}
