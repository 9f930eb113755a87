package dto

import "time"

type PhaseOutput struct {
	Kind    string  `json:"kind"`
	Seconds float64 `json:"seconds"`
}

type TechniqueOutput struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Activity     string        `json:"activity"`
	Difficulty   string        `json:"difficulty"`
	Cycles       int           `json:"cycles"`
	FocusMinutes int           `json:"focusMinutes"`
	TotalSeconds float64       `json:"totalSeconds"`
	Phases       []PhaseOutput `json:"phases"`
}

type StartInput struct {
	TechniqueID string `json:"techniqueId"`
}

type RunInput struct {
	TechniqueID string
	Interval    time.Duration
}

type RunOutput struct {
	RunID            string    `json:"runId"`
	TechniqueID      string    `json:"techniqueId"`
	TechniqueName    string    `json:"techniqueName"`
	Status           string    `json:"status"`
	Cycle            int       `json:"cycle"`
	Cycles           int       `json:"cycles"`
	Phase            string    `json:"phase,omitempty"`
	RemainingSeconds float64   `json:"remainingSeconds"`
	ElapsedSeconds   float64   `json:"elapsedSeconds"`
	StartedAt        time.Time `json:"startedAt"`
	// Detached is set when the run is recorded on disk but driven by
	// another process.
	Detached bool `json:"detached,omitempty"`
}

type EventOutput struct {
	Kind    string  `json:"kind"`
	Cycle   int     `json:"cycle"`
	Phase   string  `json:"phase,omitempty"`
	Seconds float64 `json:"seconds"`
}

type AwardOutput struct {
	XP       int    `json:"xp"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

type AdvanceOutput struct {
	Run       RunOutput     `json:"run"`
	Events    []EventOutput `json:"events"`
	Completed bool          `json:"completed"`
	Stopped   bool          `json:"stopped"`
	Award     *AwardOutput  `json:"award,omitempty"`
	NotePath  string        `json:"notePath,omitempty"`
}
