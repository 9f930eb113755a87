package dto

import (
	journaldto "upmind/internal/modules/journal/dto"
	streakdto "upmind/internal/modules/streak/dto"
	xpdto "upmind/internal/modules/xp/dto"
)

type CompleteTaskInput struct {
	TaskID       string `json:"taskId"`
	ActivityType string `json:"activityType"`
	Difficulty   string `json:"difficulty"`
	Note         string `json:"note"`
}

type WriteJournalInput struct {
	Content string   `json:"content"`
	Mood    string   `json:"mood"`
	Tags    []string `json:"tags"`
}

type ActivityInput struct {
	RunID        string `json:"runId"`
	ActivityType string `json:"activityType"`
	Difficulty   string `json:"difficulty"`
	FocusMinutes int    `json:"focusMinutes"`
}

type AwardOutput struct {
	TaskID        string `json:"taskId"`
	ActivityType  string `json:"activityType"`
	Difficulty    string `json:"difficulty"`
	Category      string `json:"category"`
	XP            int    `json:"xp"`
	CategoryLevel int    `json:"categoryLevel"`
	TotalXP       int    `json:"totalXP"`
	Message       string `json:"message"`
}

type JournalAwardOutput struct {
	Entry journaldto.EntryOutput `json:"entry"`
	Award AwardOutput            `json:"award"`
}

type DailyBonusOutput struct {
	HasBonus bool   `json:"hasBonus"`
	BonusXP  int    `json:"bonusXP"`
	Reason   string `json:"reason"`
}

type AchievementOutput struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Progress    float64 `json:"progress"`
	Unlocked    bool    `json:"unlocked"`
}

type SummaryOutput struct {
	Date           string                `json:"date"`
	Ledger         xpdto.LedgerOutput    `json:"ledger"`
	Stats          streakdto.StatsOutput `json:"stats"`
	TasksToday     int                   `json:"tasksToday"`
	SessionsToday  int                   `json:"sessionsToday"`
	JournaledToday bool                  `json:"journaledToday"`
	JournalStreak  int                   `json:"journalStreak"`
	DailyBonus     DailyBonusOutput      `json:"dailyBonus"`
	StreakBonusXP  int                   `json:"streakBonusXP"`
	Achievements   []AchievementOutput   `json:"achievements"`
}
