package domain

import (
	"fmt"
	"math"
	"strings"

	apperrors "upmind/internal/platform/errors"
)

const (
	ActivityInterview = "interview"
	ActivityMindset   = "mindset"
	ActivityRejection = "rejection"
	ActivityMiniTask  = "mini-task"
	ActivityPomodoro  = "pomodoro"
	ActivityJournal   = "journal"
	ActivityBreathing = "breathing"
)

// DefaultBaseXP applies to activity types missing from the base table.
const DefaultBaseXP = 15

var baseXP = map[string]int{
	ActivityInterview: 25,
	ActivityMindset:   15,
	ActivityRejection: 20,
	ActivityMiniTask:  30,
	ActivityPomodoro:  10,
	ActivityJournal:   5,
	ActivityBreathing: 8,
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var multipliers = map[Difficulty]float64{
	DifficultyEasy:   1,
	DifficultyMedium: 1.5,
	DifficultyHard:   2,
}

// ParseDifficulty defaults an empty value to medium.
func ParseDifficulty(raw string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(raw)))
	if d == "" {
		return DifficultyMedium, nil
	}
	if _, ok := multipliers[d]; !ok {
		return "", fmt.Errorf("%w: unknown difficulty %q", apperrors.ErrInvalidInput, raw)
	}
	return d, nil
}

func BaseXP(activity string) int {
	if xp, ok := baseXP[activity]; ok {
		return xp
	}
	return DefaultBaseXP
}

// CalculateTaskXP floors base(activity) * multiplier(difficulty). An unknown
// difficulty counts as medium.
func CalculateTaskXP(activity string, difficulty Difficulty) int {
	m, ok := multipliers[difficulty]
	if !ok {
		m = multipliers[DifficultyMedium]
	}
	return int(math.Floor(float64(BaseXP(activity)) * m))
}

// CalculateStreakBonus returns the highest tier reached; tiers do not stack.
func CalculateStreakBonus(streakDays int) int {
	switch {
	case streakDays >= 100:
		return 500
	case streakDays >= 30:
		return 200
	case streakDays >= 7:
		return 50
	default:
		return 0
	}
}

// XPTypeFromTask maps an activity onto the ledger category it feeds.
func XPTypeFromTask(activity string) string {
	switch activity {
	case ActivityInterview:
		return "interview"
	case ActivityRejection, ActivityMindset:
		return "resilience"
	default:
		return "confidence"
	}
}

func MotivationalMessage(xp int) string {
	switch {
	case xp >= 50:
		return "🔥 Incredible work! You're on fire!"
	case xp >= 30:
		return "⭐ Amazing progress! Keep crushing it!"
	case xp >= 20:
		return "💪 Nice job! You're building momentum!"
	case xp >= 10:
		return "✨ Great work! Every step counts!"
	default:
		return "🌟 Well done! You're moving forward!"
	}
}
