package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	quizout "upmind/internal/modules/quiz/adapter/out"
	"upmind/internal/modules/quiz/domain"
	apperrors "upmind/internal/platform/errors"
)

func TestPluginProviderServesQuestions(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the quizgen plugin")
	}
	binPath, checksum := buildQuizPlugin(t)
	p, err := quizout.NewPluginProvider(quizout.PluginConfig{Binary: binPath, SHA256: checksum, Timeout: 5 * time.Second}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, p.Ping(ctx))

	questions, err := p.Generate(ctx, domain.Request{
		Title: "Interview prep", TechStack: []string{"Go"}, Difficulty: domain.DifficultyIntermediate, Category: "career",
	})
	require.NoError(t, err)
	require.NoError(t, domain.ValidateQuestions(questions))
	assert.Contains(t, questions[0].Question, "Go")
}

func TestPluginProviderRejectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	bin := filepath.Join(t.TempDir(), "quizgen")
	require.NoError(t, os.WriteFile(bin, []byte("not a plugin"), 0o755))
	p, err := quizout.NewPluginProvider(quizout.PluginConfig{Binary: bin, SHA256: strings.Repeat("0", 64)}, nil)
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), domain.Request{Title: "x"})
	require.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}

func TestPluginProviderNeedsBinary(t *testing.T) {
	t.Parallel()
	_, err := quizout.NewPluginProvider(quizout.PluginConfig{}, nil)
	require.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}

func buildQuizPlugin(t *testing.T) (string, string) {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "quizgen")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/quizgen")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build quizgen plugin: %v\n%s", err, string(out))
	}
	payload, err := os.ReadFile(binPath)
	require.NoError(t, err)
	hash := sha256.Sum256(payload)
	return binPath, hex.EncodeToString(hash[:])
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
