package timezone

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUTC(t *testing.T) {
	t.Run("plain conversion", func(t *testing.T) {
		got, err := ToUTC(WallClock{Year: 2026, Month: time.June, Day: 15, Hour: 14, Minute: 0}, "America/New_York")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.June, 15, 18, 0, 0, 0, time.UTC), got)
	})

	t.Run("spring forward gap maps to transition boundary", func(t *testing.T) {
		// 2026-03-08 02:30 never happens in New York; clocks jump
		// from 02:00 EST to 03:00 EDT.
		got, err := ToUTC(WallClock{Year: 2026, Month: time.March, Day: 8, Hour: 2, Minute: 30}, "America/New_York")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.March, 8, 7, 0, 0, 0, time.UTC), got)
	})

	t.Run("fall back ambiguity picks earlier instant", func(t *testing.T) {
		// 2026-11-01 01:30 happens twice in New York. The earlier
		// occurrence is still EDT (UTC-4).
		got, err := ToUTC(WallClock{Year: 2026, Month: time.November, Day: 1, Hour: 1, Minute: 30}, "America/New_York")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.November, 1, 5, 30, 0, 0, time.UTC), got)
	})

	t.Run("unknown zone", func(t *testing.T) {
		_, err := ToUTC(WallClock{Year: 2026, Month: time.June, Day: 15}, "America/Atlantis")
		assert.True(t, errors.Is(err, ErrInvalidTimezone))
	})

	t.Run("empty zone", func(t *testing.T) {
		_, err := ToUTC(WallClock{Year: 2026, Month: time.June, Day: 15}, "")
		assert.True(t, errors.Is(err, ErrInvalidTimezone))
	})
}

func TestRoundTrip(t *testing.T) {
	// toUtc(toZoned(instant, zone), zone) == instant for instants that
	// are neither ambiguous nor in a gap.
	zones := []string{"America/New_York", "Europe/Berlin", "Asia/Tokyo", "UTC"}
	instants := []time.Time{
		time.Date(2026, time.January, 10, 9, 15, 0, 0, time.UTC),
		time.Date(2026, time.June, 21, 23, 45, 0, 0, time.UTC),
		time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
	}

	for _, zone := range zones {
		for _, instant := range instants {
			local, err := ToLocal(instant, zone)
			require.NoError(t, err)

			back, err := ToUTC(Wall(local), zone)
			require.NoError(t, err)
			assert.True(t, back.Equal(instant), "zone %s instant %s came back as %s", zone, instant, back)
		}
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 30, m)

	_, _, err = ParseClock("9:30am")
	assert.Error(t, err)

	_, _, err = ParseClock("25:00")
	assert.Error(t, err)
}
