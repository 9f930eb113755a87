package domain

import "time"

// ActiveRun is the on-disk marker for the single run a vault may have.
type ActiveRun struct {
	RunID         string    `json:"run_id"`
	TechniqueID   string    `json:"technique_id"`
	TechniqueName string    `json:"technique_name"`
	StartedAt     time.Time `json:"started_at"`
	Cycle         int       `json:"cycle"`
	Cycles        int       `json:"cycles"`
	Phase         PhaseKind `json:"phase"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type AwardRequest struct {
	RunID        string
	Activity     string
	Difficulty   string
	FocusMinutes int
}

type AwardResult struct {
	XP       int
	Category string
	Message  string
}

// RunRecord describes a finished run for the session note.
type RunRecord struct {
	RunID     string
	Technique Technique
	StartedAt time.Time
	EndedAt   time.Time
	Award     AwardResult
}
