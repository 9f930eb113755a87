package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	historydto "upmind/internal/modules/history/dto"
	historyin "upmind/internal/modules/history/port/in"
	journaldto "upmind/internal/modules/journal/dto"
	journalin "upmind/internal/modules/journal/port/in"
	"upmind/internal/modules/reward/domain"
	"upmind/internal/modules/reward/dto"
	rewardin "upmind/internal/modules/reward/port/in"
	rewardout "upmind/internal/modules/reward/port/out"
	streakdto "upmind/internal/modules/streak/dto"
	streakin "upmind/internal/modules/streak/port/in"
	xpdto "upmind/internal/modules/xp/dto"
	xpin "upmind/internal/modules/xp/port/in"
	"upmind/internal/platform/clock"
	apperrors "upmind/internal/platform/errors"
	"upmind/internal/platform/logging"
	"upmind/internal/platform/tx"
)

const (
	MinTaskNoteLength     = 20
	MinJournalEntryLength = 10

	journalTaskID = "journal"
)

type Dependencies struct {
	XP       xpin.Usecase
	Streak   streakin.Usecase
	History  historyin.Usecase
	Journal  journalin.Usecase
	Tx       tx.Manager
	Clock    clock.Clock
	Progress rewardout.ProgressWriter
	Logger   *zap.Logger
}

type Interactor struct {
	deps   Dependencies
	logger *zap.Logger
}

func NewInteractor(deps Dependencies) rewardin.Usecase {
	if deps.Tx == nil {
		deps.Tx = tx.NoopManager{}
	}
	if deps.Clock == nil {
		deps.Clock = clock.SystemClock{}
	}
	return &Interactor{deps: deps, logger: logging.OrNop(deps.Logger).Named("reward")}
}

func (i *Interactor) CompleteTask(ctx context.Context, input dto.CompleteTaskInput) (dto.AwardOutput, error) {
	taskID := strings.TrimSpace(input.TaskID)
	if taskID == "" {
		return dto.AwardOutput{}, fmt.Errorf("%w: task id is required", apperrors.ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(input.Note)); n < MinTaskNoteLength {
		return dto.AwardOutput{}, fmt.Errorf("%w: note needs at least %d characters, got %d", apperrors.ErrInvalidInput, MinTaskNoteLength, n)
	}
	difficulty, err := domain.ParseDifficulty(input.Difficulty)
	if err != nil {
		return dto.AwardOutput{}, err
	}
	var out dto.AwardOutput
	err = i.deps.Tx.Within(ctx, func(ctx context.Context) error {
		out, err = i.award(ctx, taskID, input.ActivityType, difficulty)
		return err
	})
	if err != nil {
		return dto.AwardOutput{}, err
	}
	return out, nil
}

func (i *Interactor) WriteJournal(ctx context.Context, input dto.WriteJournalInput) (dto.JournalAwardOutput, error) {
	content := strings.TrimSpace(input.Content)
	if n := utf8.RuneCountInString(content); n < MinJournalEntryLength {
		return dto.JournalAwardOutput{}, fmt.Errorf("%w: journal entry needs at least %d characters, got %d", apperrors.ErrInvalidInput, MinJournalEntryLength, n)
	}
	var out dto.JournalAwardOutput
	err := i.deps.Tx.Within(ctx, func(ctx context.Context) error {
		entry, err := i.deps.Journal.AddEntry(ctx, journaldto.AddEntryInput{Content: content, Mood: input.Mood, Tags: input.Tags})
		if err != nil {
			return err
		}
		award, err := i.award(ctx, journalTaskID, domain.ActivityJournal, domain.DifficultyEasy)
		if err != nil {
			return err
		}
		out = dto.JournalAwardOutput{Entry: entry, Award: award}
		return nil
	})
	if err != nil {
		return dto.JournalAwardOutput{}, err
	}
	return out, nil
}

func (i *Interactor) AwardActivity(ctx context.Context, input dto.ActivityInput) (dto.AwardOutput, error) {
	runID := strings.TrimSpace(input.RunID)
	if runID == "" {
		return dto.AwardOutput{}, fmt.Errorf("%w: run id is required", apperrors.ErrInvalidInput)
	}
	if input.FocusMinutes < 0 {
		return dto.AwardOutput{}, fmt.Errorf("%w: focus minutes must be non-negative", apperrors.ErrInvalidInput)
	}
	difficulty, err := domain.ParseDifficulty(input.Difficulty)
	if err != nil {
		return dto.AwardOutput{}, err
	}
	var out dto.AwardOutput
	err = i.deps.Tx.Within(ctx, func(ctx context.Context) error {
		out, err = i.award(ctx, runID, input.ActivityType, difficulty)
		if err != nil {
			return err
		}
		if input.FocusMinutes > 0 {
			if _, err := i.deps.Streak.CompleteSession(ctx, streakdto.CompleteSessionInput{Minutes: input.FocusMinutes}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return dto.AwardOutput{}, err
	}
	return out, nil
}

// award applies calculated XP to the ledger, then appends the history entry.
func (i *Interactor) award(ctx context.Context, taskID, activity string, difficulty domain.Difficulty) (dto.AwardOutput, error) {
	xp := domain.CalculateTaskXP(activity, difficulty)
	category := domain.XPTypeFromTask(activity)
	ledger, err := i.deps.XP.AddXP(ctx, xpdto.AddXPInput{Category: category, Amount: xp})
	if err != nil {
		return dto.AwardOutput{}, fmt.Errorf("add xp: %w", err)
	}
	if _, err := i.deps.History.CompleteTask(ctx, historydto.CompleteTaskInput{TaskID: taskID, XPEarned: xp, ActivityType: activity}); err != nil {
		return dto.AwardOutput{}, fmt.Errorf("record task: %w", err)
	}
	out := dto.AwardOutput{
		TaskID:       taskID,
		ActivityType: activity,
		Difficulty:   string(difficulty),
		Category:     category,
		XP:           xp,
		TotalXP:      ledger.TotalXP,
		Message:      domain.MotivationalMessage(xp),
	}
	if c, ok := ledger.Category(category); ok {
		out.CategoryLevel = c.Level
	}
	i.logger.Info("xp awarded",
		zap.String("task_id", taskID),
		zap.String("activity", activity),
		zap.String("category", category),
		zap.Int("xp", xp))
	return out, nil
}

func (i *Interactor) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	ledger, err := i.deps.XP.GetLedger(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	stats, err := i.deps.Streak.GetStats(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	tasksToday, err := i.deps.History.TasksCompletedToday(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	journal, err := i.deps.Journal.Streak(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	bonus := domain.CheckDailyBonus(tasksToday, stats.SessionsToday, journal.JournaledToday)
	achievements := domain.AchievementProgress(ledger.TotalXP, stats.TotalSessions, stats.CurrentStreak)

	out := dto.SummaryOutput{
		Date:           clock.DateKey(i.deps.Clock.Now()),
		Ledger:         ledger,
		Stats:          stats,
		TasksToday:     tasksToday,
		SessionsToday:  stats.SessionsToday,
		JournaledToday: journal.JournaledToday,
		JournalStreak:  journal.StreakDays,
		DailyBonus:     dto.DailyBonusOutput{HasBonus: bonus.HasBonus, BonusXP: bonus.BonusXP, Reason: bonus.Reason},
		StreakBonusXP:  domain.CalculateStreakBonus(stats.CurrentStreak),
		Achievements:   make([]dto.AchievementOutput, 0, len(achievements)),
	}
	for _, a := range achievements {
		out.Achievements = append(out.Achievements, dto.AchievementOutput{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Progress:    a.Progress,
			Unlocked:    a.Unlocked,
		})
	}
	return out, nil
}

func (i *Interactor) WriteProgressNote(ctx context.Context) (string, error) {
	if i.deps.Progress == nil {
		return "", fmt.Errorf("%w: no progress writer configured", apperrors.ErrInvalidInput)
	}
	summary, err := i.Summary(ctx)
	if err != nil {
		return "", err
	}
	return i.deps.Progress.WriteProgress(ctx, RenderSummary(summary))
}

// ResetAll clears the ledger, session stats, task history and journal in one
// transaction.
func (i *Interactor) ResetAll(ctx context.Context) error {
	err := i.deps.Tx.Within(ctx, func(ctx context.Context) error {
		if _, err := i.deps.XP.Reset(ctx); err != nil {
			return fmt.Errorf("reset xp: %w", err)
		}
		if _, err := i.deps.Streak.Reset(ctx); err != nil {
			return fmt.Errorf("reset stats: %w", err)
		}
		if err := i.deps.History.Reset(ctx); err != nil {
			return fmt.Errorf("reset tasks: %w", err)
		}
		if err := i.deps.Journal.Reset(ctx); err != nil {
			return fmt.Errorf("reset journal: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	i.logger.Info("all progress reset")
	return nil
}
