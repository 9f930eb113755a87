package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upmind/internal/platform/clock"
)

func TestDateKeysUseUTCCalendarDays(t *testing.T) {
	t.Parallel()
	offset := time.FixedZone("UTC+9", 9*3600)
	local := time.Date(2026, 3, 1, 2, 0, 0, 0, offset)

	assert.Equal(t, "2026-02-28", clock.DateKey(local))
	assert.Equal(t, "2026-02-27", clock.PreviousDateKey(local))

	parsed, err := clock.ParseDateKey("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-28", clock.PreviousDateKey(parsed))
}
