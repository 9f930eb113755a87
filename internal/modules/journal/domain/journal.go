package domain

import (
	"fmt"
	"strings"
	"time"

	"upmind/internal/platform/clock"
	apperrors "upmind/internal/platform/errors"
)

type Mood string

const (
	MoodPositive Mood = "positive"
	MoodNeutral  Mood = "neutral"
	MoodNegative Mood = "negative"
)

// ParseMood accepts the three moods; an empty value means neutral.
func ParseMood(raw string) (Mood, error) {
	switch Mood(strings.ToLower(strings.TrimSpace(raw))) {
	case "", MoodNeutral:
		return MoodNeutral, nil
	case MoodPositive:
		return MoodPositive, nil
	case MoodNegative:
		return MoodNegative, nil
	default:
		return "", fmt.Errorf("%w: unknown mood %q", apperrors.ErrInvalidInput, raw)
	}
}

func (m Mood) Valid() bool {
	return m == MoodPositive || m == MoodNeutral || m == MoodNegative
}

type Entry struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Mood      Mood      `json:"mood"`
	CreatedAt time.Time `json:"createdAt"`
	Tags      []string  `json:"tags"`
}

// Journal keeps entries newest first.
type Journal struct {
	Entries []Entry `json:"entries"`
}

// streakWindow bounds how far back StreakDays looks.
const streakWindow = 365

func (j *Journal) Add(e Entry) error {
	if strings.TrimSpace(e.Content) == "" {
		return fmt.Errorf("%w: journal content is empty", apperrors.ErrInvalidInput)
	}
	if !e.Mood.Valid() {
		return fmt.Errorf("%w: unknown mood %q", apperrors.ErrInvalidInput, e.Mood)
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	j.Entries = append([]Entry{e}, j.Entries...)
	return nil
}

func (j Journal) ForDate(date string) []Entry {
	out := []Entry{}
	for _, e := range j.Entries {
		if clock.DateKey(e.CreatedAt) == date {
			out = append(out, e)
		}
	}
	return out
}

func (j Journal) Find(id string) (Entry, bool) {
	for _, e := range j.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

func (j Journal) Total() int {
	return len(j.Entries)
}

// StreakDays counts consecutive days with at least one entry, walking back
// from now. A missing entry today does not break the run; any earlier gap
// does.
func (j Journal) StreakDays(now time.Time) int {
	days := make(map[string]struct{}, len(j.Entries))
	for _, e := range j.Entries {
		days[clock.DateKey(e.CreatedAt)] = struct{}{}
	}
	streak := 0
	for i := 0; i < streakWindow; i++ {
		if _, ok := days[clock.DateKey(now.AddDate(0, 0, -i))]; ok {
			streak++
			continue
		}
		if i == 0 {
			continue
		}
		break
	}
	return streak
}

var prompts = []string{
	"What's on your mind right now?",
	"How are you feeling about your progress today?",
	"What challenged you today and how did you handle it?",
	"What are you grateful for in this moment?",
	"What would make tomorrow better than today?",
	"What thoughts are taking up mental space?",
	"What small win can you celebrate today?",
	"How did you grow or learn something new recently?",
}

func Prompts() []string {
	return append([]string(nil), prompts...)
}

// PromptFor picks the writing prompt for the UTC day of year of t.
func PromptFor(t time.Time) string {
	return prompts[t.UTC().YearDay()%len(prompts)]
}
