package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upmind/internal/modules/xp/domain"
	apperrors "upmind/internal/platform/errors"
)

func TestLevelTracksCurrentAfterEveryAdd(t *testing.T) {
	t.Parallel()
	for _, amount := range []int{0, 1, 99, 100, 101, 250, 1000, 12345} {
		l := domain.NewLedger()
		require.NoError(t, l.Add(domain.Resilience, amount))
		got := l.Get(domain.Resilience)
		assert.Equal(t, amount, got.Current)
		assert.Equal(t, amount/100+1, got.Level, "amount %d", amount)
	}
}

func TestAddAccumulatesTotalAcrossCategories(t *testing.T) {
	t.Parallel()
	l := domain.NewLedger()
	require.NoError(t, l.Add(domain.Confidence, 60))
	require.NoError(t, l.Add(domain.Confidence, 60))
	require.NoError(t, l.Add(domain.Interview, 25))

	assert.Equal(t, domain.CategoryXP{Current: 120, Level: 2}, l.Confidence)
	assert.Equal(t, domain.CategoryXP{Current: 25, Level: 1}, l.Interview)
	assert.Equal(t, domain.CategoryXP{Current: 0, Level: 1}, l.Resilience)
	assert.Equal(t, 145, l.TotalXP)
}

func TestAddRejectsNegativeAmountsAndUnknownCategories(t *testing.T) {
	t.Parallel()
	l := domain.NewLedger()
	require.ErrorIs(t, l.Add(domain.Confidence, -1), apperrors.ErrInvalidInput)
	require.ErrorIs(t, l.Add(domain.Category("wisdom"), 5), apperrors.ErrInvalidInput)
	assert.Equal(t, domain.NewLedger(), l, "rejected adds must not change state")

	_, err := domain.ParseCategory("wisdom")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	c, err := domain.ParseCategory("interview")
	require.NoError(t, err)
	assert.Equal(t, domain.Interview, c)
}

func TestNormalizeRecomputesStaleLevels(t *testing.T) {
	t.Parallel()
	l := domain.Ledger{
		Resilience: domain.CategoryXP{Current: 350, Level: 1},
		Confidence: domain.CategoryXP{Current: -20, Level: 9},
		TotalXP:    330,
	}
	l.Normalize()
	assert.Equal(t, 4, l.Resilience.Level)
	assert.Equal(t, domain.CategoryXP{Current: 0, Level: 1}, l.Confidence)
	assert.Equal(t, 1, l.Interview.Level)
}

func TestLevelFormulas(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, domain.CalculateLevel(0))
	assert.Equal(t, 1, domain.CalculateLevel(99))
	assert.Equal(t, 2, domain.CalculateLevel(100))
	assert.Equal(t, 100, domain.XPForNextLevel(0))
	assert.Equal(t, 300, domain.XPForNextLevel(250))
	assert.InDelta(t, 50.0, domain.LevelProgress(250), 1e-9)
	assert.InDelta(t, 0.0, domain.LevelProgress(300), 1e-9)
}

func TestFormatXP(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "999", domain.FormatXP(999))
	assert.Equal(t, "1.0k", domain.FormatXP(1000))
	assert.Equal(t, "1.2k", domain.FormatXP(1234))
	assert.Equal(t, "12.5k", domain.FormatXP(12500))
}
