package markdown_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upmind/internal/platform/markdown"
)

func TestWriteNoteRoundTripsFrontmatter(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 2, 25, 10, 4, 5, 0, time.UTC)
	path := markdown.DatedNotePath(t.TempDir(), at, "Box Breathing!")
	assert.True(t, strings.HasSuffix(filepath.ToSlash(path), "2026/02/25/100405-box-breathing.md"))

	type runMeta struct {
		Technique string `yaml:"technique"`
		XP        int    `yaml:"xp"`
	}
	require.NoError(t, markdown.WriteNote(path, runMeta{Technique: "box", XP: 12}, "# Box\n"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "---\ntechnique: box\nxp: 12\n---\n"))

	var got runMeta
	body, err := markdown.ReadNote(path, &got)
	require.NoError(t, err)
	assert.Equal(t, runMeta{Technique: "box", XP: 12}, got)
	assert.Contains(t, body, "# Box")
}

func TestDecodeEdgeCases(t *testing.T) {
	t.Parallel()
	var meta map[string]any
	body, err := markdown.Decode("plain", &meta)
	require.NoError(t, err)
	assert.Nil(t, meta)
	assert.Equal(t, "plain", body)

	body, err = markdown.Decode("---\r\nmood: positive\r\n---\r\nhello\r\n", &meta)
	require.NoError(t, err)
	assert.Equal(t, "positive", meta["mood"])
	assert.Equal(t, "hello\n", body)

	var empty map[string]any
	body, err = markdown.Decode("---\n---\nbody", &empty)
	require.NoError(t, err)
	assert.Equal(t, "body", body)

	body, err = markdown.Decode("---\nonly: header\n---", &empty)
	require.NoError(t, err)
	assert.Empty(t, body)

	_, err = markdown.Decode("---\nunterminated: true\n", &meta)
	require.Error(t, err)
}

func TestUpdateManagedFileKeepsSurroundingText(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "Progress.md")
	require.NoError(t, markdown.UpdateManagedFile(path, "level 1"))
	require.NoError(t, os.WriteFile(path, []byte("# Mine\n\n"+markdown.BlockStart+"\nold\n"+markdown.BlockEnd+"\n\nfooter\n"), 0o644))

	require.NoError(t, markdown.UpdateManagedFile(path, "level 2\n"))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(raw)
	assert.Contains(t, text, "# Mine")
	assert.Contains(t, text, "footer")
	assert.Contains(t, text, "level 2")
	assert.NotContains(t, text, "old")
	assert.Equal(t, 1, strings.Count(text, markdown.BlockStart))
}

func TestReplaceManagedBlockAppendsWhenMissing(t *testing.T) {
	t.Parallel()
	got := markdown.ReplaceManagedBlock("intro", "x")
	assert.Equal(t, "intro\n\n"+markdown.BlockStart+"\nx\n"+markdown.BlockEnd+"\n", got)
}
