package availability

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/bookinglink"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/busy"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/owner"
)

type stubLinks struct {
	link *bookinglink.Link
}

func (s *stubLinks) Resolve(_ context.Context, idOrSlug string) (*bookinglink.Link, error) {
	if idOrSlug == s.link.ID || idOrSlug == s.link.Slug {
		return s.link, nil
	}
	return nil, bookinglink.ErrNotFound
}

func (s *stubLinks) Create(context.Context, string, *bookinglink.Link) (*bookinglink.Link, error) {
	return nil, bookinglink.ErrNotFound
}

func (s *stubLinks) GetByID(context.Context, string, string) (*bookinglink.Link, error) {
	return nil, bookinglink.ErrNotFound
}

func (s *stubLinks) List(context.Context, string) ([]bookinglink.Link, error) { return nil, nil }

func (s *stubLinks) Update(context.Context, string, *bookinglink.Link) (*bookinglink.Link, error) {
	return nil, bookinglink.ErrNotFound
}

func (s *stubLinks) Delete(context.Context, string, string) error { return bookinglink.ErrNotFound }

// countingOwners counts repository reads so tests can observe cache hits.
type countingOwners struct {
	owner *owner.Owner
	hours owner.WeeklyHours
	reads int
}

func (c *countingOwners) GetByID(context.Context, string) (*owner.Owner, error) {
	return c.owner, nil
}

func (c *countingOwners) GetWorkingHours(context.Context, string) (owner.WeeklyHours, error) {
	c.reads++
	return c.hours, nil
}

type stubEvents struct{}

func (stubEvents) BusyIntervals(context.Context, string, time.Time, time.Time) ([]busy.Interval, error) {
	return nil, nil
}

type stubSnapshots struct{}

func (stubSnapshots) Snapshots(context.Context, string) ([]busy.Snapshot, error) { return nil, nil }

func TestComputeSlots(t *testing.T) {
	ctx := context.Background()
	dayFrom := time.Date(2026, time.March, 2, 5, 0, 0, 0, time.UTC)
	dayTo := dayFrom.Add(24 * time.Hour)

	newFixture := func(cache Cache) (*bookinglink.Link, *countingOwners, Service) {
		link := &bookinglink.Link{
			ID:                  "link-1",
			OwnerID:             "owner-1",
			Slug:                "intro",
			SlotDurationMinutes: 30,
			Active:              true,
		}
		owners := &countingOwners{
			owner: &owner.Owner{ID: "owner-1", Timezone: "America/New_York"},
			hours: mondayHours("09:00", "17:00"),
		}
		aggregator := busy.NewAggregator(stubEvents{}, stubSnapshots{}, 0)
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		return link, owners, NewService(&stubLinks{link: link}, owners, aggregator, cache, logger)
	}

	t.Run("resolves by slug and computes", func(t *testing.T) {
		link, _, svc := newFixture(NewNoopCache())

		gotLink, slots, err := svc.ComputeSlots(ctx, "intro", dayFrom, dayTo)
		require.NoError(t, err)
		assert.Equal(t, link.ID, gotLink.ID)
		assert.Len(t, slots, 16)
	})

	t.Run("second call is served from cache", func(t *testing.T) {
		_, owners, svc := newFixture(NewLRUCache(16, time.Minute))

		_, first, err := svc.ComputeSlots(ctx, "intro", dayFrom, dayTo)
		require.NoError(t, err)
		_, second, err := svc.ComputeSlots(ctx, "intro", dayFrom, dayTo)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, owners.reads)
	})

	t.Run("invalidation forces recompute", func(t *testing.T) {
		_, owners, svc := newFixture(NewLRUCache(16, time.Minute))

		_, _, err := svc.ComputeSlots(ctx, "intro", dayFrom, dayTo)
		require.NoError(t, err)

		svc.InvalidateOwner(ctx, "owner-1")

		_, _, err = svc.ComputeSlots(ctx, "intro", dayFrom, dayTo)
		require.NoError(t, err)
		assert.Equal(t, 2, owners.reads)
	})

	t.Run("inactive link is not found", func(t *testing.T) {
		link, _, svc := newFixture(NewNoopCache())
		link.Active = false

		_, _, err := svc.ComputeSlots(ctx, "intro", dayFrom, dayTo)
		assert.ErrorIs(t, err, bookinglink.ErrNotFound)
	})

	t.Run("range clamped to link validity", func(t *testing.T) {
		link, _, svc := newFixture(NewNoopCache())
		// Only the afternoon is valid.
		validFrom := nyUTC(13, 0)
		link.ValidFrom = &validFrom

		_, slots, err := svc.ComputeSlots(ctx, "intro", dayFrom, dayTo)
		require.NoError(t, err)
		require.NotEmpty(t, slots)
		assert.False(t, slots[0].Start.Before(validFrom))
	})

	t.Run("empty clamped range yields no slots", func(t *testing.T) {
		link, _, svc := newFixture(NewNoopCache())
		validTo := dayFrom.Add(-24 * time.Hour)
		link.ValidTo = &validTo

		_, slots, err := svc.ComputeSlots(ctx, "intro", dayFrom, dayTo)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})
}

func TestIsBookable(t *testing.T) {
	ctx := context.Background()

	link := &bookinglink.Link{
		ID:                  "link-1",
		OwnerID:             "owner-1",
		Slug:                "intro",
		SlotDurationMinutes: 30,
		Active:              true,
	}
	owners := &countingOwners{
		owner: &owner.Owner{ID: "owner-1", Timezone: "America/New_York"},
		hours: mondayHours("09:00", "17:00"),
	}
	aggregator := busy.NewAggregator(stubEvents{}, stubSnapshots{}, 0)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(&stubLinks{link: link}, owners, aggregator, NewNoopCache(), logger)

	t.Run("aligned slot inside hours", func(t *testing.T) {
		ok, err := svc.IsBookable(ctx, link, nyUTC(9, 0), nyUTC(9, 30))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong duration", func(t *testing.T) {
		ok, err := svc.IsBookable(ctx, link, nyUTC(9, 0), nyUTC(10, 0))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("misaligned start", func(t *testing.T) {
		ok, err := svc.IsBookable(ctx, link, nyUTC(9, 10), nyUTC(9, 40))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("outside working hours", func(t *testing.T) {
		ok, err := svc.IsBookable(ctx, link, nyUTC(18, 0), nyUTC(18, 30))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("late slot on a 25-hour fall-back day", func(t *testing.T) {
		var hours owner.WeeklyHours
		for i := range hours {
			hours[i].Weekday = time.Weekday(i)
		}
		hours[time.Sunday] = owner.DayHours{Weekday: time.Sunday, Enabled: true, Start: "09:00", End: "23:59"}
		owners := &countingOwners{
			owner: &owner.Owner{ID: "owner-1", Timezone: "America/New_York"},
			hours: hours,
		}
		svc := NewService(&stubLinks{link: link}, owners, aggregator, NewNoopCache(), logger)

		// 2026-11-01 is the America/New_York fall-back Sunday. 23:00
		// local is EST, 2026-11-02 04:00 UTC, past dayStart+24h.
		start := time.Date(2026, time.November, 2, 4, 0, 0, 0, time.UTC)
		ok, err := svc.IsBookable(ctx, link, start, start.Add(30*time.Minute))
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
