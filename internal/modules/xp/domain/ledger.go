package domain

import (
	"fmt"
	"strconv"

	apperrors "upmind/internal/platform/errors"
)

const XPPerLevel = 100

type Category string

const (
	Resilience Category = "resilience"
	Confidence Category = "confidence"
	Interview  Category = "interview"
)

func Categories() []Category {
	return []Category{Resilience, Confidence, Interview}
}

func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case Resilience, Confidence, Interview:
		return c, nil
	default:
		return "", fmt.Errorf("%w: unknown xp category %q", apperrors.ErrInvalidInput, s)
	}
}

type CategoryXP struct {
	Current int `json:"current"`
	Level   int `json:"level"`
}

// Ledger is the persisted XP state. Level is derived from Current and is
// recomputed on every write and after every load.
type Ledger struct {
	Resilience CategoryXP `json:"resilience"`
	Confidence CategoryXP `json:"confidence"`
	Interview  CategoryXP `json:"interview"`
	TotalXP    int        `json:"totalXP"`
}

func NewLedger() Ledger {
	l := Ledger{}
	l.Normalize()
	return l
}

func (l Ledger) Get(c Category) CategoryXP {
	switch c {
	case Resilience:
		return l.Resilience
	case Confidence:
		return l.Confidence
	case Interview:
		return l.Interview
	}
	return CategoryXP{Level: 1}
}

func (l *Ledger) slot(c Category) *CategoryXP {
	switch c {
	case Resilience:
		return &l.Resilience
	case Confidence:
		return &l.Confidence
	case Interview:
		return &l.Interview
	}
	return nil
}

func (l *Ledger) Add(c Category, amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: xp amount must be non-negative, got %d", apperrors.ErrInvalidInput, amount)
	}
	slot := l.slot(c)
	if slot == nil {
		return fmt.Errorf("%w: unknown xp category %q", apperrors.ErrInvalidInput, c)
	}
	slot.Current += amount
	slot.Level = CalculateLevel(slot.Current)
	l.TotalXP += amount
	return nil
}

// Normalize clamps negative counters and recomputes every level.
func (l *Ledger) Normalize() {
	for _, c := range Categories() {
		slot := l.slot(c)
		if slot.Current < 0 {
			slot.Current = 0
		}
		slot.Level = CalculateLevel(slot.Current)
	}
	if l.TotalXP < 0 {
		l.TotalXP = 0
	}
}

func CalculateLevel(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// XPForNextLevel is the absolute XP at which the next level begins.
func XPForNextLevel(xp int) int {
	return CalculateLevel(xp) * XPPerLevel
}

// LevelProgress is the percentage of the current level already earned.
func LevelProgress(xp int) float64 {
	if xp < 0 {
		xp = 0
	}
	floor := (CalculateLevel(xp) - 1) * XPPerLevel
	return float64(xp-floor) / XPPerLevel * 100
}

func FormatXP(xp int) string {
	if xp >= 1000 {
		return strconv.FormatFloat(float64(xp)/1000, 'f', 1, 64) + "k"
	}
	return strconv.Itoa(xp)
}
