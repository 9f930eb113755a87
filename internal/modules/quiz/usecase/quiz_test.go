package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"upmind/internal/modules/quiz/domain"
	"upmind/internal/modules/quiz/dto"
	quizout "upmind/internal/modules/quiz/port/out"
	"upmind/internal/modules/quiz/service"
	"upmind/internal/modules/quiz/usecase"
	apperrors "upmind/internal/platform/errors"
	"upmind/internal/platform/metrics"
)

type stubProvider struct {
	name      string
	questions []domain.Question
	err       error
	calls     int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Generate(context.Context, domain.Request) ([]domain.Question, error) {
	s.calls++
	return s.questions, s.err
}

func (s *stubProvider) Ping(context.Context) error { return s.err }

var validSet = []domain.Question{{
	Question:      "Which keyword starts a goroutine?",
	Options:       []string{"go", "async", "spawn", "thread"},
	CorrectAnswer: 0,
	Explanation:   "go f() runs f concurrently.",
}}

func TestGenerateUsesFirstHealthyProvider(t *testing.T) {
	t.Parallel()
	first := &stubProvider{name: "remote", questions: validSet}
	second := &stubProvider{name: "plugin", questions: validSet}
	uc := usecase.NewInteractor(service.NewQuizService([]quizout.Provider{first, second}, nil, nil))

	out, err := uc.Generate(context.Background(), dto.GenerateInput{Title: "Goroutines", Category: "coding"})
	require.NoError(t, err)
	assert.Equal(t, "remote", out.Provider)
	assert.False(t, out.Fallback)
	require.Len(t, out.Questions, 1)
	assert.Equal(t, "go", out.Questions[0].Options[0])
	assert.Equal(t, 0, second.calls)
}

func TestGenerateSkipsFailingAndMalformedProviders(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.WarnLevel)
	reg := prometheus.NewRegistry()
	broken := &stubProvider{name: "remote", err: errors.New("connection refused")}
	malformed := &stubProvider{name: "plugin", questions: []domain.Question{{Question: "?", Options: []string{"a", "b"}}}}
	uc := usecase.NewInteractor(service.NewQuizService([]quizout.Provider{broken, malformed}, zap.New(core), metrics.New(reg)))

	out, err := uc.Generate(context.Background(), dto.GenerateInput{Title: "Networking", Category: "career"})
	require.NoError(t, err)
	assert.True(t, out.Fallback)
	assert.Equal(t, service.FallbackSource, out.Provider)
	require.NotEmpty(t, out.Questions)
	assert.Contains(t, out.Questions[0].Question, "professional network")

	assert.Equal(t, 2, logs.FilterMessage("quiz provider failed").Len())
	count, err := testutil.GatherAndCount(reg, "upmind_quiz_fallbacks_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestGenerateWithoutProvidersFallsBack(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewQuizService(nil, nil, nil))
	out, err := uc.Generate(context.Background(), dto.GenerateInput{Title: "Pitching", Category: "startup", Difficulty: "advanced"})
	require.NoError(t, err)
	assert.True(t, out.Fallback)
	assert.Equal(t, 2, out.Questions[0].CorrectAnswer)
}

func TestGenerateRejectsInvalidRequest(t *testing.T) {
	t.Parallel()
	p := &stubProvider{name: "remote", questions: validSet}
	uc := usecase.NewInteractor(service.NewQuizService([]quizout.Provider{p}, nil, nil))

	_, err := uc.Generate(context.Background(), dto.GenerateInput{Title: "  "})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = uc.Generate(context.Background(), dto.GenerateInput{Title: "x", Difficulty: "impossible"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Equal(t, 0, p.calls)
}

func TestPingReportsEachProvider(t *testing.T) {
	t.Parallel()
	ok := &stubProvider{name: "remote"}
	down := &stubProvider{name: "plugin", err: errors.New("binary missing")}
	uc := usecase.NewInteractor(service.NewQuizService([]quizout.Provider{ok, down}, nil, nil))

	statuses, err := uc.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []dto.ProviderStatusOutput{
		{Provider: "remote", OK: true},
		{Provider: "plugin", OK: false, Error: "binary missing"},
	}, statuses)
}
