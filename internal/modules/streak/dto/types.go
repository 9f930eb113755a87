package dto

type CompleteSessionInput struct {
	Minutes int `json:"minutes"`
}

type StatsOutput struct {
	CurrentStreak   int    `json:"currentStreak"`
	LongestStreak   int    `json:"longestStreak"`
	TotalSessions   int    `json:"totalSessions"`
	TotalFocusTime  int    `json:"totalFocusTime"`
	LastSessionDate string `json:"lastSessionDate,omitempty"`
	SessionsToday   int    `json:"sessionsToday"`
}
