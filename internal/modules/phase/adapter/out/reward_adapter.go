package out

import (
	"context"

	"upmind/internal/modules/phase/domain"
	phaseout "upmind/internal/modules/phase/port/out"
	rewarddto "upmind/internal/modules/reward/dto"
	rewardin "upmind/internal/modules/reward/port/in"
)

type RewardAdapter struct {
	reward rewardin.Usecase
}

func NewRewardAdapter(reward rewardin.Usecase) phaseout.Rewarder {
	return &RewardAdapter{reward: reward}
}

func (a *RewardAdapter) Award(ctx context.Context, request domain.AwardRequest) (domain.AwardResult, error) {
	out, err := a.reward.AwardActivity(ctx, rewarddto.ActivityInput{
		RunID:        request.RunID,
		ActivityType: request.Activity,
		Difficulty:   request.Difficulty,
		FocusMinutes: request.FocusMinutes,
	})
	if err != nil {
		return domain.AwardResult{}, err
	}
	return domain.AwardResult{XP: out.XP, Category: out.Category, Message: out.Message}, nil
}
