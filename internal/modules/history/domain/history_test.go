package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upmind/internal/modules/history/domain"
	apperrors "upmind/internal/platform/errors"
)

func TestAppendIsNotIdempotent(t *testing.T) {
	t.Parallel()
	h := domain.History{}
	at := time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)
	require.NoError(t, h.Append(domain.Entry{ID: "journal", CompletedAt: at, XPEarned: 5, ActivityType: "journal"}))
	assert.True(t, h.IsCompleted("journal"))
	require.NoError(t, h.Append(domain.Entry{ID: "journal", CompletedAt: at.Add(time.Minute), XPEarned: 5, ActivityType: "journal"}))

	assert.Len(t, h.Entries, 2)
	assert.False(t, h.IsCompleted("interview-1"))
}

func TestAppendValidates(t *testing.T) {
	t.Parallel()
	h := domain.History{}
	require.ErrorIs(t, h.Append(domain.Entry{ID: "  "}), apperrors.ErrInvalidInput)
	require.ErrorIs(t, h.Append(domain.Entry{ID: "x", XPEarned: -1}), apperrors.ErrInvalidInput)
	assert.Empty(t, h.Entries)
}

func TestCompletedOnAndRecent(t *testing.T) {
	t.Parallel()
	h := domain.History{}
	base := time.Date(2026, 2, 25, 23, 30, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, h.Append(domain.Entry{ID: id, CompletedAt: base.Add(time.Duration(i) * 20 * time.Minute)}))
	}
	assert.Equal(t, 2, h.CompletedOn("2026-02-25"))
	assert.Equal(t, 1, h.CompletedOn("2026-02-26"))

	recent := h.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].ID)
	assert.Equal(t, "b", recent[1].ID)
	assert.Len(t, h.Recent(0), 3)
}
