package dto

import "time"

type AddEntryInput struct {
	Content string   `json:"content"`
	Mood    string   `json:"mood"`
	Tags    []string `json:"tags"`
}

type EntryOutput struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood"`
	CreatedAt time.Time `json:"createdAt"`
	Tags      []string  `json:"tags"`
}

type StreakOutput struct {
	StreakDays     int    `json:"streakDays"`
	TotalEntries   int    `json:"totalEntries"`
	JournaledToday bool   `json:"journaledToday"`
	Prompt         string `json:"prompt"`
}
