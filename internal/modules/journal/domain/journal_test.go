package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upmind/internal/modules/journal/domain"
	apperrors "upmind/internal/platform/errors"
)

var today = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func journalOn(t *testing.T, daysAgo ...int) domain.Journal {
	t.Helper()
	j := domain.Journal{}
	for i, d := range daysAgo {
		require.NoError(t, j.Add(domain.Entry{
			ID:        string(rune('a' + i)),
			Content:   "reflecting on the day",
			Mood:      domain.MoodNeutral,
			CreatedAt: today.AddDate(0, 0, -d),
		}))
	}
	return j
}

func TestStreakDays(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		daysAgo []int
		want    int
	}{
		{name: "today and two before", daysAgo: []int{0, 1, 2}, want: 3},
		{name: "grace for today", daysAgo: []int{1, 2}, want: 2},
		{name: "gap yesterday breaks", daysAgo: []int{2}, want: 0},
		{name: "gap after run", daysAgo: []int{0, 1, 3, 4}, want: 2},
		{name: "several entries same day", daysAgo: []int{0, 0, 1}, want: 2},
		{name: "empty", want: 0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, journalOn(t, tc.daysAgo...).StreakDays(today))
		})
	}
}

func TestAddPrependsAndValidates(t *testing.T) {
	t.Parallel()
	j := journalOn(t, 2, 0)
	assert.Equal(t, "b", j.Entries[0].ID)
	assert.Equal(t, 2, j.Total())
	assert.NotNil(t, j.Entries[0].Tags)

	require.ErrorIs(t, j.Add(domain.Entry{ID: "x", Content: "   ", Mood: domain.MoodNeutral}), apperrors.ErrInvalidInput)
	require.ErrorIs(t, j.Add(domain.Entry{ID: "x", Content: "fine", Mood: "ecstatic"}), apperrors.ErrInvalidInput)
	assert.Equal(t, 2, j.Total())
}

func TestForDateAndFind(t *testing.T) {
	t.Parallel()
	j := journalOn(t, 0, 1, 0)
	assert.Len(t, j.ForDate("2026-03-10"), 2)
	assert.Len(t, j.ForDate("2026-03-09"), 1)
	assert.Empty(t, j.ForDate("2026-01-01"))

	e, ok := j.Find("b")
	require.True(t, ok)
	assert.Equal(t, "2026-03-09", e.CreatedAt.Format("2006-01-02"))
	_, ok = j.Find("zz")
	assert.False(t, ok)
}

func TestParseMood(t *testing.T) {
	t.Parallel()
	m, err := domain.ParseMood("")
	require.NoError(t, err)
	assert.Equal(t, domain.MoodNeutral, m)
	m, err = domain.ParseMood(" Positive ")
	require.NoError(t, err)
	assert.Equal(t, domain.MoodPositive, m)
	_, err = domain.ParseMood("meh")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestPromptForRotatesDaily(t *testing.T) {
	t.Parallel()
	assert.Equal(t, domain.PromptFor(today), domain.PromptFor(today.Add(3*time.Hour)))
	assert.NotEqual(t, domain.PromptFor(today), domain.PromptFor(today.AddDate(0, 0, 1)))
	assert.Contains(t, domain.Prompts(), domain.PromptFor(today))
}
