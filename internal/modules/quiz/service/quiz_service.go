package service

import (
	"context"

	"go.uber.org/zap"

	"upmind/internal/modules/quiz/domain"
	quizout "upmind/internal/modules/quiz/port/out"
	"upmind/internal/platform/logging"
	"upmind/internal/platform/metrics"
)

const FallbackSource = "fallback"

type Result struct {
	Source    string
	Questions []domain.Question
}

type ProviderStatus struct {
	Provider string
	Err      error
}

type QuizService struct {
	providers []quizout.Provider
	logger    *zap.Logger
	metrics   *metrics.Recorder
}

func NewQuizService(providers []quizout.Provider, logger *zap.Logger, rec *metrics.Recorder) *QuizService {
	return &QuizService{providers: providers, logger: logging.OrNop(logger).Named("quiz"), metrics: rec}
}

// Generate asks each provider in order and falls back to the local set
// when none of them returns a valid response. The request must already be
// normalized and valid.
func (s *QuizService) Generate(ctx context.Context, request domain.Request) Result {
	for _, p := range s.providers {
		if ctx.Err() != nil {
			break
		}
		questions, err := p.Generate(ctx, request)
		if err == nil {
			err = domain.ValidateQuestions(questions)
		}
		if err != nil {
			s.logger.Warn("quiz provider failed", zap.String("provider", p.Name()), zap.Error(err))
			s.metrics.QuizFallback(p.Name())
			continue
		}
		return Result{Source: p.Name(), Questions: questions}
	}
	s.logger.Debug("serving fallback questions", zap.String("category", request.Category))
	return Result{Source: FallbackSource, Questions: domain.Fallback(request)}
}

func (s *QuizService) Ping(ctx context.Context) []ProviderStatus {
	out := make([]ProviderStatus, 0, len(s.providers))
	for _, p := range s.providers {
		out = append(out, ProviderStatus{Provider: p.Name(), Err: p.Ping(ctx)})
	}
	return out
}
