package out

import (
	"context"
	"path/filepath"

	rewardout "upmind/internal/modules/reward/port/out"
	"upmind/internal/platform/markdown"
)

const ProgressNote = "Progress.md"

type VaultProgressWriter struct {
	path string
}

func NewVaultProgressWriter(vaultPath string) rewardout.ProgressWriter {
	return &VaultProgressWriter{path: filepath.Join(vaultPath, ProgressNote)}
}

func (w *VaultProgressWriter) WriteProgress(_ context.Context, generated string) (string, error) {
	if err := markdown.UpdateManagedFile(w.path, generated); err != nil {
		return "", err
	}
	return w.path, nil
}
