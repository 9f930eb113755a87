package domain

import (
	"fmt"
	"strings"
	"time"

	"upmind/internal/platform/clock"
	apperrors "upmind/internal/platform/errors"
)

type Entry struct {
	ID           string    `json:"id"`
	CompletedAt  time.Time `json:"completedAt"`
	XPEarned     int       `json:"xpEarned"`
	ActivityType string    `json:"activityType"`
}

// History is append-only; entries are kept oldest first. The same id may
// appear more than once.
type History struct {
	Entries []Entry `json:"entries"`
}

func (h *History) Append(e Entry) error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: task id is required", apperrors.ErrInvalidInput)
	}
	if e.XPEarned < 0 {
		return fmt.Errorf("%w: xp earned must be non-negative", apperrors.ErrInvalidInput)
	}
	h.Entries = append(h.Entries, e)
	return nil
}

func (h History) IsCompleted(id string) bool {
	for _, e := range h.Entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// CompletedOn counts entries whose UTC date is date (YYYY-MM-DD).
func (h History) CompletedOn(date string) int {
	n := 0
	for _, e := range h.Entries {
		if clock.DateKey(e.CompletedAt) == date {
			n++
		}
	}
	return n
}

// Recent returns up to limit entries, newest first. limit <= 0 means all.
func (h History) Recent(limit int) []Entry {
	n := len(h.Entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Entry, 0, limit)
	for i := n - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, h.Entries[i])
	}
	return out
}
