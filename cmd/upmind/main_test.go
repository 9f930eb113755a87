package main

import (
	"bytes"
	"context"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTaskCompleteThenSummary(t *testing.T) {
	vault := t.TempDir()
	base := []string{"--vault", vault, "--storage", "file", "--log-level", "error"}

	out, err := run(t, append(base, "task", "complete", "mock-1", "--activity", "interview", "--note", "Ran a full mock interview with a friend.")...)
	require.NoError(t, err)
	assert.Contains(t, out, "+37 interview xp")

	out, err = run(t, append(base, "task", "check", "mock-1")...)
	require.NoError(t, err)
	assert.Contains(t, out, "completed=true")

	out, err = run(t, append(base, "--json", "summary")...)
	require.NoError(t, err)
	var summary struct {
		TasksToday int `json:"tasksToday"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 1, summary.TasksToday)
}

func TestResetNeedsConfirmation(t *testing.T) {
	vault := t.TempDir()
	_, err := run(t, "--vault", vault, "--storage", "memory", "reset")
	require.Error(t, err)
	out, err := run(t, "--vault", vault, "--storage", "memory", "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "all progress reset")
}

func TestQuizGenerateOffline(t *testing.T) {
	out, err := run(t, "--vault", t.TempDir(), "--storage", "memory", "quiz", "generate", "--title", "Intro to Go", "--category", "coding", "--tech", "Go")
	require.NoError(t, err)
	assert.Contains(t, out, "source: fallback")
	assert.Contains(t, out, "* D) All of the above")
}

func TestPhaseListAndIdleStatus(t *testing.T) {
	vault := t.TempDir()
	out, err := run(t, "--vault", vault, "--storage", "memory", "phase", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Box Breathing")
	assert.Contains(t, out, "pomodoro")

	_, err = run(t, "--vault", vault, "--storage", "memory", "phase", "status")
	require.Error(t, err, "no run is active")
}

func TestUnknownStorageIsRejected(t *testing.T) {
	_, err := run(t, "--vault", t.TempDir(), "--storage", "cloud", "xp", "show")
	require.Error(t, err)
}
