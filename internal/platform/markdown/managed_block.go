package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	BlockStart = "<!-- upmind:start -->"
	BlockEnd   = "<!-- upmind:end -->"
)

// ReplaceManagedBlock swaps the text between the markers for generated,
// appending a fresh block when the markers are absent. Text outside the
// markers is preserved.
func ReplaceManagedBlock(body, generated string) string {
	start := strings.Index(body, BlockStart)
	end := strings.Index(body, BlockEnd)
	block := BlockStart + "\n" + strings.TrimRight(generated, "\n") + "\n" + BlockEnd

	if start >= 0 && end > start {
		end += len(BlockEnd)
		return body[:start] + block + body[end:]
	}

	if strings.TrimSpace(body) == "" {
		return block + "\n"
	}
	if strings.HasSuffix(body, "\n") {
		return body + "\n" + block + "\n"
	}
	return body + "\n\n" + block + "\n"
}

// UpdateManagedFile applies ReplaceManagedBlock to the file at path,
// creating it when missing.
func UpdateManagedFile(path, generated string) error {
	current, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	updated := ReplaceManagedBlock(string(current), generated)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
