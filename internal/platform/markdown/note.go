package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"upmind/internal/platform/slug"
)

// DatedNotePath places a note under root/YYYY/MM/DD/HHMMSS-<slug>.md.
func DatedNotePath(root string, at time.Time, title string) string {
	at = at.UTC()
	dir := filepath.Join(root, at.Format("2006"), at.Format("01"), at.Format("02"))
	return filepath.Join(dir, fmt.Sprintf("%s-%s.md", at.Format("150405"), slug.Make(title)))
}

// WriteNote renders meta as frontmatter above body and writes it to path.
func WriteNote(path string, meta any, body string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create note dir: %w", err)
	}
	rendered, err := Encode(meta, body)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write note: %w", err)
	}
	return nil
}

// ReadNote decodes the note's frontmatter into meta and returns the body.
func ReadNote(path string, meta any) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read note: %w", err)
	}
	return Decode(string(raw), meta)
}
