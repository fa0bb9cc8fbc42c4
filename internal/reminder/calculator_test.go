package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFireTimes(t *testing.T) {
	start := time.Date(2026, time.April, 10, 15, 0, 0, 0, time.UTC)

	t.Run("one fire time per offset", func(t *testing.T) {
		got := FireTimes(start, []int{10, 60, 1440})

		require.Len(t, got, 3)
		assert.Equal(t, start.Add(-10*time.Minute), got[0])
		assert.Equal(t, start.Add(-time.Hour), got[1])
		assert.Equal(t, start.Add(-24*time.Hour), got[2])
	})

	t.Run("zero offset fires at start", func(t *testing.T) {
		got := FireTimes(start, []int{0})
		require.Len(t, got, 1)
		assert.Equal(t, start, got[0])
	})

	t.Run("past fire times are still returned", func(t *testing.T) {
		soon := time.Now().UTC().Add(5 * time.Minute)
		got := FireTimes(soon, []int{60})
		require.Len(t, got, 1)
		assert.True(t, got[0].Before(time.Now()))
	})

	t.Run("no offsets", func(t *testing.T) {
		assert.Nil(t, FireTimes(start, nil))
	})

	t.Run("result is utc", func(t *testing.T) {
		loc, err := time.LoadLocation("Asia/Tokyo")
		require.NoError(t, err)

		got := FireTimes(start.In(loc), []int{30})
		require.Len(t, got, 1)
		assert.Equal(t, time.UTC, got[0].Location())
		assert.True(t, got[0].Equal(start.Add(-30*time.Minute)))
	})
}
