package out

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"upmind/internal/modules/phase/domain"
	phaseout "upmind/internal/modules/phase/port/out"
	"upmind/internal/platform/markdown"
)

const schemaVersion = 1

type runMeta struct {
	SchemaVersion int    `yaml:"schema_version"`
	Type          string `yaml:"type"`
	ID            string `yaml:"id"`
	Technique     string `yaml:"technique"`
	Activity      string `yaml:"activity"`
	Difficulty    string `yaml:"difficulty"`
	Cycles        int    `yaml:"cycles"`
	FocusMinutes  int    `yaml:"focus_minutes,omitempty"`
	StartedAt     string `yaml:"started_at"`
	EndedAt       string `yaml:"ended_at"`
	XPAwarded     int    `yaml:"xp_awarded"`
	XPCategory    string `yaml:"xp_category"`
}

type VaultNoteWriter struct {
	vaultPath string
}

func NewVaultNoteWriter(vaultPath string) phaseout.RunNoteWriter {
	return &VaultNoteWriter{vaultPath: vaultPath}
}

func (w *VaultNoteWriter) WriteRun(_ context.Context, record domain.RunRecord) (string, error) {
	tech := record.Technique
	path := markdown.DatedNotePath(filepath.Join(w.vaultPath, "sessions"), record.StartedAt, tech.Name)
	meta := runMeta{
		SchemaVersion: schemaVersion,
		Type:          "phase-session",
		ID:            record.RunID,
		Technique:     tech.ID,
		Activity:      tech.Activity,
		Difficulty:    tech.Difficulty,
		Cycles:        tech.Cycles,
		FocusMinutes:  tech.FocusMinutes,
		StartedAt:     record.StartedAt.UTC().Format(time.RFC3339),
		EndedAt:       record.EndedAt.UTC().Format(time.RFC3339),
		XPAwarded:     record.Award.XP,
		XPCategory:    record.Award.Category,
	}
	var phases []string
	for _, p := range tech.Phases {
		if p.Duration > 0 {
			phases = append(phases, fmt.Sprintf("%s %s", p.Kind, p.Duration))
		}
	}
	body := fmt.Sprintf("# %s\n\n- Cycles: %d\n- Phases: %s\n- Duration: %s\n- XP: +%d %s\n\n%s\n",
		tech.Name,
		tech.Cycles,
		strings.Join(phases, ", "),
		record.EndedAt.Sub(record.StartedAt).Round(time.Second),
		record.Award.XP,
		record.Award.Category,
		record.Award.Message,
	)
	if err := markdown.WriteNote(path, meta, body); err != nil {
		return "", err
	}
	return path, nil
}
