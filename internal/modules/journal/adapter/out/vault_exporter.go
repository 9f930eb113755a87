package out

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"upmind/internal/modules/journal/domain"
	journalout "upmind/internal/modules/journal/port/out"
	"upmind/internal/platform/markdown"
)

const titleWords = 6

type entryMeta struct {
	Type      string   `yaml:"type"`
	ID        string   `yaml:"id"`
	Mood      string   `yaml:"mood"`
	Tags      []string `yaml:"tags,omitempty"`
	CreatedAt string   `yaml:"created_at"`
}

type VaultExporter struct {
	vaultPath string
}

func NewVaultExporter(vaultPath string) journalout.EntryExporter {
	return &VaultExporter{vaultPath: vaultPath}
}

func (e *VaultExporter) Export(_ context.Context, entry domain.Entry) (string, error) {
	title := entryTitle(entry.Content)
	path := markdown.DatedNotePath(filepath.Join(e.vaultPath, "journal"), entry.CreatedAt, title)
	meta := entryMeta{
		Type:      "journal",
		ID:        entry.ID,
		Mood:      string(entry.Mood),
		Tags:      entry.Tags,
		CreatedAt: entry.CreatedAt.UTC().Format(time.RFC3339),
	}
	body := fmt.Sprintf("# %s\n\n%s\n", title, entry.Content)
	if err := markdown.WriteNote(path, meta, body); err != nil {
		return "", err
	}
	return path, nil
}

func entryTitle(content string) string {
	words := strings.Fields(content)
	if len(words) > titleWords {
		words = words[:titleWords]
	}
	if len(words) == 0 {
		return "Journal entry"
	}
	return strings.Join(words, " ")
}
