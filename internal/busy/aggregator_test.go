package busy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEvents struct {
	intervals []Interval
}

func (s stubEvents) BusyIntervals(_ context.Context, _ string, _, _ time.Time) ([]Interval, error) {
	return s.intervals, nil
}

type stubSnapshots struct {
	snaps []Snapshot
}

func (s stubSnapshots) Snapshots(_ context.Context, _ string) ([]Snapshot, error) {
	return s.snaps, nil
}

func TestAggregate(t *testing.T) {
	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	from := at(9, 0)
	to := at(17, 0)

	newAggregator := func(events []Interval, snaps []Snapshot) *Aggregator {
		a := NewAggregator(stubEvents{intervals: events}, stubSnapshots{snaps: snaps}, 30*time.Minute)
		a.now = func() time.Time { return now }
		return a
	}

	t.Run("merges local and integration intervals", func(t *testing.T) {
		a := newAggregator(
			[]Interval{{Start: at(10, 0), End: at(11, 0), Source: SourceLocal}},
			[]Snapshot{{
				IntegrationID: "g-1",
				Connected:     true,
				SyncedAt:      now,
				Intervals:     []Interval{{Start: at(11, 0), End: at(12, 0), Source: "g-1"}},
			}},
		)

		got, err := a.Aggregate(context.Background(), "owner-1", from, to)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, at(10, 0), got[0].Start)
		assert.Equal(t, at(12, 0), got[0].End)
	})

	t.Run("excludes disconnected integrations", func(t *testing.T) {
		a := newAggregator(nil, []Snapshot{{
			IntegrationID: "g-1",
			Connected:     false,
			SyncedAt:      now,
			Intervals:     []Interval{{Start: at(11, 0), End: at(12, 0)}},
		}})

		got, err := a.Aggregate(context.Background(), "owner-1", from, to)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("excludes stale snapshots", func(t *testing.T) {
		a := newAggregator(nil, []Snapshot{{
			IntegrationID: "g-1",
			Connected:     true,
			SyncedAt:      now.Add(-time.Hour),
			Intervals:     []Interval{{Start: at(11, 0), End: at(12, 0)}},
		}})

		got, err := a.Aggregate(context.Background(), "owner-1", from, to)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("clips to requested range", func(t *testing.T) {
		a := newAggregator(
			[]Interval{{Start: at(8, 0), End: at(10, 0), Source: SourceLocal}},
			nil,
		)

		got, err := a.Aggregate(context.Background(), "owner-1", from, to)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, at(9, 0), got[0].Start)
	})

	t.Run("idempotent", func(t *testing.T) {
		a := newAggregator(
			[]Interval{
				{Start: at(14, 0), End: at(15, 0), Source: SourceLocal},
				{Start: at(10, 0), End: at(10, 30), Source: SourceLocal},
			},
			nil,
		)

		first, err := a.Aggregate(context.Background(), "owner-1", from, to)
		require.NoError(t, err)
		second, err := a.Aggregate(context.Background(), "owner-1", from, to)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("empty range", func(t *testing.T) {
		a := newAggregator([]Interval{{Start: at(10, 0), End: at(11, 0)}}, nil)

		got, err := a.Aggregate(context.Background(), "owner-1", to, from)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
