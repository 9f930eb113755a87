package usecase

import (
	"context"

	"upmind/internal/modules/quiz/domain"
	"upmind/internal/modules/quiz/dto"
	quizin "upmind/internal/modules/quiz/port/in"
	"upmind/internal/modules/quiz/service"
)

type Interactor struct {
	svc *service.QuizService
}

func NewInteractor(svc *service.QuizService) quizin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Generate(ctx context.Context, input dto.GenerateInput) (dto.GenerateOutput, error) {
	request := domain.Request{
		Title:       input.Title,
		Description: input.Description,
		TechStack:   input.TechStack,
		Difficulty:  domain.Difficulty(input.Difficulty),
		Category:    input.Category,
	}.Normalize()
	if err := request.Validate(); err != nil {
		return dto.GenerateOutput{}, err
	}
	result := i.svc.Generate(ctx, request)
	questions := make([]dto.QuestionOutput, 0, len(result.Questions))
	for _, q := range result.Questions {
		questions = append(questions, dto.QuestionOutput{
			Question:      q.Question,
			Options:       append([]string(nil), q.Options...),
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}
	return dto.GenerateOutput{
		Provider:  result.Source,
		Fallback:  result.Source == service.FallbackSource,
		Questions: questions,
	}, nil
}

func (i *Interactor) Ping(ctx context.Context) ([]dto.ProviderStatusOutput, error) {
	statuses := i.svc.Ping(ctx)
	out := make([]dto.ProviderStatusOutput, 0, len(statuses))
	for _, s := range statuses {
		item := dto.ProviderStatusOutput{Provider: s.Provider, OK: s.Err == nil}
		if s.Err != nil {
			item.Error = s.Err.Error()
		}
		out = append(out, item)
	}
	return out, nil
}
