package dto

import "time"

type CompleteTaskInput struct {
	TaskID       string `json:"taskId"`
	XPEarned     int    `json:"xpEarned"`
	ActivityType string `json:"activityType"`
}

type EntryOutput struct {
	ID           string    `json:"id"`
	CompletedAt  time.Time `json:"completedAt"`
	XPEarned     int       `json:"xpEarned"`
	ActivityType string    `json:"activityType"`
}
