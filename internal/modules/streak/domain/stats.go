package domain

import (
	"fmt"
	"time"

	"upmind/internal/platform/clock"
	apperrors "upmind/internal/platform/errors"
)

// Stats is the persisted session record. Dates are UTC calendar days.
type Stats struct {
	CurrentStreak   int    `json:"currentStreak"`
	LongestStreak   int    `json:"longestStreak"`
	TotalSessions   int    `json:"totalSessions"`
	TotalFocusTime  int    `json:"totalFocusTime"`
	LastSessionDate string `json:"lastSessionDate,omitempty"`
	SessionsToday   int    `json:"sessionsToday"`
}

// CompleteSession records one finished session at now. The streak moves at
// most once per calendar day: a second session on the same day leaves it
// alone, a session the day after the previous one extends it, and anything
// else starts a new streak at 1.
func (s *Stats) CompleteSession(now time.Time, minutes int) error {
	if minutes < 0 {
		return fmt.Errorf("%w: session minutes must be non-negative, got %d", apperrors.ErrInvalidInput, minutes)
	}
	today := clock.DateKey(now)
	prior := s.LastSessionDate

	if prior == today {
		s.SessionsToday++
	} else {
		s.SessionsToday = 1
	}
	s.TotalSessions++
	s.TotalFocusTime += minutes
	s.LastSessionDate = today

	switch prior {
	case today:
		// after ResetStreaks the first session of the day still opens a streak
		if s.CurrentStreak == 0 {
			s.CurrentStreak = 1
		}
	case clock.PreviousDateKey(now):
		s.CurrentStreak++
	default:
		s.CurrentStreak = 1
	}
	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	return nil
}

// TodaySessionCount reads a stale count from an earlier day as zero.
func (s Stats) TodaySessionCount(now time.Time) int {
	if s.LastSessionDate != clock.DateKey(now) {
		return 0
	}
	return s.SessionsToday
}

func (s *Stats) ResetStreaks() {
	s.CurrentStreak = 0
	s.LongestStreak = 0
}

// Normalize repairs snapshots that violate the counter invariants.
func (s *Stats) Normalize() {
	for _, v := range []*int{&s.CurrentStreak, &s.LongestStreak, &s.TotalSessions, &s.TotalFocusTime, &s.SessionsToday} {
		if *v < 0 {
			*v = 0
		}
	}
	if s.LongestStreak < s.CurrentStreak {
		s.LongestStreak = s.CurrentStreak
	}
}
