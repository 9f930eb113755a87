package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "upmind/internal/platform/errors"
)

type PhaseKind string

const (
	PhaseInhale    PhaseKind = "inhale"
	PhaseHold      PhaseKind = "hold"
	PhaseExhale    PhaseKind = "exhale"
	PhaseRest      PhaseKind = "rest"
	PhaseBreathing PhaseKind = "breathing"
	PhaseFocus     PhaseKind = "focus"
)

type PhaseSpec struct {
	Kind     PhaseKind     `json:"kind"`
	Duration time.Duration `json:"duration"`
}

type Technique struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Activity     string      `json:"activity"`
	Difficulty   string      `json:"difficulty"`
	Cycles       int         `json:"cycles"`
	FocusMinutes int         `json:"focusMinutes"`
	Phases       []PhaseSpec `json:"phases"`
}

func (t Technique) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: technique id is required", apperrors.ErrInvalidInput)
	}
	if t.Cycles < 1 {
		return fmt.Errorf("%w: technique %s needs at least one cycle", apperrors.ErrInvalidInput, t.ID)
	}
	if t.FocusMinutes < 0 {
		return fmt.Errorf("%w: technique %s has negative focus minutes", apperrors.ErrInvalidInput, t.ID)
	}
	positive := false
	for _, p := range t.Phases {
		if p.Duration < 0 {
			return fmt.Errorf("%w: technique %s phase %s has a negative duration", apperrors.ErrInvalidInput, t.ID, p.Kind)
		}
		if p.Duration > 0 {
			positive = true
		}
	}
	if !positive {
		return fmt.Errorf("%w: technique %s has no timed phase", apperrors.ErrInvalidInput, t.ID)
	}
	return nil
}

// CycleDuration is the length of one pass over the phases.
func (t Technique) CycleDuration() time.Duration {
	var total time.Duration
	for _, p := range t.Phases {
		total += p.Duration
	}
	return total
}

func (t Technique) TotalDuration() time.Duration {
	return t.CycleDuration() * time.Duration(t.Cycles)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// BuiltinTechniques returns a fresh copy of the default catalogue.
func BuiltinTechniques() []Technique {
	return []Technique{
		{
			ID: "478", Name: "4-7-8 Breathing", Activity: "breathing", Difficulty: "medium", Cycles: 4,
			Phases: []PhaseSpec{{PhaseInhale, seconds(4)}, {PhaseHold, seconds(7)}, {PhaseExhale, seconds(8)}},
		},
		{
			ID: "box", Name: "Box Breathing", Activity: "breathing", Difficulty: "medium", Cycles: 5,
			Phases: []PhaseSpec{{PhaseInhale, seconds(4)}, {PhaseHold, seconds(4)}, {PhaseExhale, seconds(4)}, {PhaseRest, seconds(4)}},
		},
		{
			ID: "energy", Name: "Energy Breathing", Activity: "breathing", Difficulty: "medium", Cycles: 8,
			Phases: []PhaseSpec{{PhaseInhale, seconds(2)}, {PhaseHold, 0}, {PhaseExhale, seconds(1)}},
		},
		{
			ID: "pomodoro", Name: "Pomodoro Focus", Activity: "pomodoro", Difficulty: "medium", Cycles: 1, FocusMinutes: 25,
			Phases: []PhaseSpec{{PhaseBreathing, seconds(56)}, {PhaseFocus, seconds(25 * 60)}},
		},
	}
}

// Catalog is an ordered, id-indexed set of techniques.
type Catalog struct {
	techniques []Technique
	byID       map[string]int
}

// NewCatalog validates the built-in techniques plus extra ones. Ids must be
// unique across both.
func NewCatalog(extra ...Technique) (*Catalog, error) {
	c := &Catalog{byID: map[string]int{}}
	for _, t := range append(BuiltinTechniques(), extra...) {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate technique id %q", apperrors.ErrInvalidInput, t.ID)
		}
		if t.Name == "" {
			t.Name = t.ID
		}
		if t.Difficulty == "" {
			t.Difficulty = "medium"
		}
		if t.Activity == "" {
			t.Activity = "breathing"
		}
		c.byID[t.ID] = len(c.techniques)
		c.techniques = append(c.techniques, t)
	}
	return c, nil
}

func (c *Catalog) Get(id string) (Technique, error) {
	idx, ok := c.byID[id]
	if !ok {
		return Technique{}, fmt.Errorf("%w: technique %q", apperrors.ErrNotFound, id)
	}
	return c.techniques[idx], nil
}

func (c *Catalog) List() []Technique {
	return append([]Technique(nil), c.techniques...)
}
