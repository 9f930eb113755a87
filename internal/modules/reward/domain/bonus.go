package domain

const (
	PerfectDayXP = 50
	DailyGoalXP  = 25

	dailyTaskGoal = 3
)

type DailyBonus struct {
	HasBonus bool   `json:"hasBonus"`
	BonusXP  int    `json:"bonusXP"`
	Reason   string `json:"reason"`
}

// CheckDailyBonus scores three goals: three tasks, one session and a journal
// entry. All three earn the perfect-day bonus, any two the daily one.
func CheckDailyBonus(tasksToday, sessionsToday int, journaledToday bool) DailyBonus {
	met := 0
	for _, ok := range []bool{tasksToday >= dailyTaskGoal, sessionsToday >= 1, journaledToday} {
		if ok {
			met++
		}
	}
	switch {
	case met == 3:
		return DailyBonus{HasBonus: true, BonusXP: PerfectDayXP, Reason: "🎯 Perfect Day Bonus! All daily goals completed!"}
	case met >= 2:
		return DailyBonus{HasBonus: true, BonusXP: DailyGoalXP, Reason: "🎉 Daily Goal Bonus! Great consistency!"}
	default:
		return DailyBonus{}
	}
}
