package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
)

// BackupFile is an exported progress document.
type BackupFile struct {
	Name string
	Data []byte
}

type BackupService struct {
	now func() time.Time
}

func NewBackupService() *BackupService {
	return &BackupService{now: time.Now}
}

// Export serializes the session and all progress.
func (s *BackupService) Export(l *Learner) (BackupFile, error) {
	now := s.now()

	session := l.Session()
	b := entities.Backup{
		User:       &session,
		Progress:   l.Progress.Snapshot(),
		ExportDate: now.UTC(),
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return BackupFile{}, fmt.Errorf("encode backup: %w", err)
	}

	return BackupFile{
		Name: "learn_scripting_backup_" + now.Format(time.DateOnly) + ".json",
		Data: data,
	}, nil
}

// Import replaces progress with the backup and restores its session.
// Nothing changes when the document is invalid.
func (s *BackupService) Import(ctx context.Context, l *Learner, data []byte) error {
	var raw struct {
		User     *entities.Session `json:"user"`
		Progress json.RawMessage   `json:"progress"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	trimmed := bytes.TrimSpace(raw.Progress)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return fmt.Errorf("%w: missing progress", ErrInvalidBackup)
	}

	var progress entities.Progress
	if err := json.Unmarshal(trimmed, &progress); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if err := progress.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	if err := l.Progress.Replace(ctx, progress); err != nil {
		return fmt.Errorf("import progress: %w", err)
	}

	if raw.User != nil {
		if err := l.setSession(ctx, *raw.User); err != nil {
			return fmt.Errorf("import session: %w", err)
		}
	}
	return nil
}
