package usecase

import (
	"fmt"
	"strings"

	"upmind/internal/modules/reward/dto"
)

// RenderSummary formats a summary as markdown for the progress note.
func RenderSummary(s dto.SummaryOutput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Progress for %s\n\n", s.Date)
	fmt.Fprintf(&b, "Total XP: **%s**\n\n", s.Ledger.TotalFormatted)
	b.WriteString("| Category | XP | Level | Progress |\n|---|---|---|---|\n")
	for _, c := range s.Ledger.Categories {
		fmt.Fprintf(&b, "| %s | %s | %d | %.0f%% |\n", c.Category, c.Formatted, c.Level, c.Progress)
	}
	b.WriteString("\n### Today\n\n")
	fmt.Fprintf(&b, "- Tasks completed: %d\n", s.TasksToday)
	fmt.Fprintf(&b, "- Sessions: %d\n", s.SessionsToday)
	fmt.Fprintf(&b, "- Journaled: %s\n", yesNo(s.JournaledToday))
	if s.DailyBonus.HasBonus {
		fmt.Fprintf(&b, "- %s (+%d XP)\n", s.DailyBonus.Reason, s.DailyBonus.BonusXP)
	}
	b.WriteString("\n### Streaks\n\n")
	fmt.Fprintf(&b, "- Session streak: %d days (longest %d)\n", s.Stats.CurrentStreak, s.Stats.LongestStreak)
	fmt.Fprintf(&b, "- Journal streak: %d days\n", s.JournalStreak)
	if s.StreakBonusXP > 0 {
		fmt.Fprintf(&b, "- Streak bonus tier: +%d XP\n", s.StreakBonusXP)
	}
	b.WriteString("\n### Achievements\n\n")
	for _, a := range s.Achievements {
		mark := " "
		if a.Unlocked {
			mark = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s: %s (%.0f%%)\n", mark, a.Title, a.Description, a.Progress)
	}
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
