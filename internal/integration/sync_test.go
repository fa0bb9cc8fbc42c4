package integration

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/busy"
)

type memoryRepo struct {
	integrations map[string]*CalendarIntegration
	snapshots    map[string][]busy.Interval
	syncedAt     map[string]time.Time
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		integrations: make(map[string]*CalendarIntegration),
		snapshots:    make(map[string][]busy.Interval),
		syncedAt:     make(map[string]time.Time),
	}
}

func (r *memoryRepo) Create(_ context.Context, integ *CalendarIntegration) error {
	r.integrations[integ.ID] = integ
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*CalendarIntegration, error) {
	integ, ok := r.integrations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return integ, nil
}

func (r *memoryRepo) ListByOwner(_ context.Context, ownerID string) ([]CalendarIntegration, error) {
	var out []CalendarIntegration
	for _, integ := range r.integrations {
		if integ.OwnerID == ownerID {
			out = append(out, *integ)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListConnected(context.Context) ([]CalendarIntegration, error) {
	var out []CalendarIntegration
	for _, integ := range r.integrations {
		if integ.Connected {
			out = append(out, *integ)
		}
	}
	return out, nil
}

func (r *memoryRepo) UpdateToken(_ context.Context, id string, token *oauth2.Token) error {
	integ, ok := r.integrations[id]
	if !ok {
		return ErrNotFound
	}
	integ.Token = token
	return nil
}

func (r *memoryRepo) SetConnected(_ context.Context, id string, connected bool) error {
	integ, ok := r.integrations[id]
	if !ok {
		return ErrNotFound
	}
	integ.Connected = connected
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, ownerID, id string) error {
	integ, ok := r.integrations[id]
	if !ok || integ.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(r.integrations, id)
	return nil
}

func (r *memoryRepo) ReplaceSnapshot(_ context.Context, id string, intervals []busy.Interval, syncedAt time.Time) error {
	r.snapshots[id] = intervals
	r.syncedAt[id] = syncedAt
	return nil
}

func (r *memoryRepo) Snapshots(_ context.Context, ownerID string) ([]busy.Snapshot, error) {
	var out []busy.Snapshot
	for _, integ := range r.integrations {
		if integ.OwnerID != ownerID {
			continue
		}
		out = append(out, busy.Snapshot{
			IntegrationID: integ.ID,
			Connected:     integ.Connected,
			SyncedAt:      r.syncedAt[integ.ID],
			Intervals:     r.snapshots[integ.ID],
		})
	}
	return out, nil
}

type stubFetcher struct {
	intervals []busy.Interval
	err       error
	calls     int
}

func (f *stubFetcher) FetchBusy(context.Context, *CalendarIntegration, time.Time, time.Time) ([]busy.Interval, error) {
	f.calls++
	return f.intervals, f.err
}

type recordingInvalidator struct {
	owners []string
}

func (r *recordingInvalidator) InvalidateOwner(_ context.Context, ownerID string) {
	r.owners = append(r.owners, ownerID)
}

func TestSyncAll(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	window := busy.Interval{
		Start: time.Date(2026, time.March, 2, 15, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 2, 16, 0, 0, 0, time.UTC),
	}

	t.Run("refreshes snapshot and invalidates cache", func(t *testing.T) {
		repo := newMemoryRepo()
		require.NoError(t, repo.Create(ctx, &CalendarIntegration{
			ID: "int-1", OwnerID: "owner-1", Provider: ProviderGoogle, Connected: true,
		}))

		fetcher := &stubFetcher{intervals: []busy.Interval{window}}
		invalidator := &recordingInvalidator{}
		syncer := NewSyncer(repo,
			map[Provider]BusyFetcher{ProviderGoogle: fetcher},
			invalidator, time.Minute, 24*time.Hour, logger)

		syncer.SyncAll(ctx)

		assert.Equal(t, 1, fetcher.calls)
		assert.Equal(t, []busy.Interval{window}, repo.snapshots["int-1"])
		assert.False(t, repo.syncedAt["int-1"].IsZero())
		assert.Equal(t, []string{"owner-1"}, invalidator.owners)
	})

	t.Run("skips disconnected integrations", func(t *testing.T) {
		repo := newMemoryRepo()
		require.NoError(t, repo.Create(ctx, &CalendarIntegration{
			ID: "int-1", OwnerID: "owner-1", Provider: ProviderGoogle, Connected: false,
		}))

		fetcher := &stubFetcher{}
		syncer := NewSyncer(repo,
			map[Provider]BusyFetcher{ProviderGoogle: fetcher},
			&recordingInvalidator{}, time.Minute, 24*time.Hour, logger)

		syncer.SyncAll(ctx)
		assert.Zero(t, fetcher.calls)
	})

	t.Run("fetch failure leaves old snapshot and keeps going", func(t *testing.T) {
		repo := newMemoryRepo()
		require.NoError(t, repo.Create(ctx, &CalendarIntegration{
			ID: "int-1", OwnerID: "owner-1", Provider: ProviderGoogle, Connected: true,
		}))
		require.NoError(t, repo.Create(ctx, &CalendarIntegration{
			ID: "int-2", OwnerID: "owner-2", Provider: ProviderGoogle, Connected: true,
		}))
		repo.snapshots["int-1"] = []busy.Interval{window}

		failing := &stubFetcher{err: errors.New("rate limited")}
		invalidator := &recordingInvalidator{}
		syncer := NewSyncer(repo,
			map[Provider]BusyFetcher{ProviderGoogle: failing},
			invalidator, time.Minute, 24*time.Hour, logger)

		syncer.SyncAll(ctx)

		assert.Equal(t, []busy.Interval{window}, repo.snapshots["int-1"])
		assert.Equal(t, 2, failing.calls)
		assert.Empty(t, invalidator.owners)
	})

	t.Run("unknown provider is an error not a panic", func(t *testing.T) {
		repo := newMemoryRepo()
		require.NoError(t, repo.Create(ctx, &CalendarIntegration{
			ID: "int-1", OwnerID: "owner-1", Provider: "outlook", Connected: true,
		}))

		syncer := NewSyncer(repo, map[Provider]BusyFetcher{},
			&recordingInvalidator{}, time.Minute, 24*time.Hour, logger)

		assert.NotPanics(t, func() { syncer.SyncAll(ctx) })
	})
}
