package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"upmind/internal/modules/phase/domain"
	phaseout "upmind/internal/modules/phase/port/out"
	apperrors "upmind/internal/platform/errors"
)

type FileActiveRunStore struct {
	path string
}

func NewFileActiveRunStore(stateDir string) phaseout.ActiveRunStore {
	return &FileActiveRunStore{path: filepath.Join(stateDir, "active-phase.json")}
}

func (s *FileActiveRunStore) SaveActive(_ context.Context, run domain.ActiveRun) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create active run dir: %w", err)
	}
	payload, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal active run: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write active run: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace active run: %w", err)
	}
	return nil
}

func (s *FileActiveRunStore) LoadActive(_ context.Context) (domain.ActiveRun, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ActiveRun{}, apperrors.ErrNoActiveSession
		}
		return domain.ActiveRun{}, fmt.Errorf("read active run: %w", err)
	}
	run := domain.ActiveRun{}
	if err := json.Unmarshal(payload, &run); err != nil {
		return domain.ActiveRun{}, fmt.Errorf("decode active run: %w", err)
	}
	if run.RunID == "" {
		return domain.ActiveRun{}, apperrors.ErrNoActiveSession
	}
	return run, nil
}

func (s *FileActiveRunStore) ClearActive(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("clear active run: %w", err)
	}
	return nil
}
