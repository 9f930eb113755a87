package domain

import "math"

type Achievement struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Progress    float64 `json:"progress"`
	Unlocked    bool    `json:"unlocked"`
}

type achievementRule struct {
	id          string
	title       string
	description string
	target      int
	value       func(totalXP, sessions, streak int) int
}

var achievementRules = []achievementRule{
	{
		id: "first_steps", title: "First Steps", description: "Complete your first growth task", target: 1,
		value: func(xp, _, _ int) int { return xp },
	},
	{
		id: "focus_master", title: "Focus Master", description: "Complete 10 focus sessions", target: 10,
		value: func(_, sessions, _ int) int { return sessions },
	},
	{
		id: "resilience_builder", title: "Resilience Builder", description: "Reach 400 total XP", target: 400,
		value: func(xp, _, _ int) int { return xp },
	},
	{
		id: "streak_warrior", title: "Streak Warrior", description: "Maintain a 7-day streak", target: 7,
		value: func(_, _, streak int) int { return streak },
	},
	{
		id: "xp_collector", title: "XP Collector", description: "Earn 1,000 total XP", target: 1000,
		value: func(xp, _, _ int) int { return xp },
	},
}

// AchievementProgress reports every achievement with progress clamped to
// [0, 100].
func AchievementProgress(totalXP, totalSessions, currentStreak int) []Achievement {
	out := make([]Achievement, 0, len(achievementRules))
	for _, rule := range achievementRules {
		v := rule.value(totalXP, totalSessions, currentStreak)
		progress := math.Max(0, math.Min(100, float64(v)/float64(rule.target)*100))
		out = append(out, Achievement{
			ID:          rule.id,
			Title:       rule.title,
			Description: rule.description,
			Progress:    progress,
			Unlocked:    v >= rule.target,
		})
	}
	return out
}
