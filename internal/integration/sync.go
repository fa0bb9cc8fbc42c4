package integration

import (
	"context"
	"log/slog"
	"time"
)

// SlotCacheInvalidator drops cached slot sets after a snapshot refresh
// changes an owner's busy state.
type SlotCacheInvalidator interface {
	InvalidateOwner(ctx context.Context, ownerID string)
}

// Syncer periodically refreshes every connected integration's busy
// snapshot. Failures are logged and skipped; a broken provider degrades
// accuracy for one owner, it never stops the worker.
type Syncer struct {
	repo     Repository
	fetchers map[Provider]BusyFetcher
	slots    SlotCacheInvalidator
	interval time.Duration
	horizon  time.Duration
	logger   *slog.Logger
}

func NewSyncer(repo Repository, fetchers map[Provider]BusyFetcher, slots SlotCacheInvalidator, interval, horizon time.Duration, logger *slog.Logger) *Syncer {
	return &Syncer{
		repo:     repo,
		fetchers: fetchers,
		slots:    slots,
		interval: interval,
		horizon:  horizon,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled, syncing once immediately and then
// on every tick.
func (s *Syncer) Run(ctx context.Context) {
	s.logger.Info("calendar sync worker started", "interval", s.interval.String())

	s.SyncAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("calendar sync worker stopped")
			return
		case <-ticker.C:
			s.SyncAll(ctx)
		}
	}
}

// SyncAll refreshes every connected integration once.
func (s *Syncer) SyncAll(ctx context.Context) {
	integrations, err := s.repo.ListConnected(ctx)
	if err != nil {
		s.logger.Error("list connected integrations", "error", err)
		return
	}

	for i := range integrations {
		integ := &integrations[i]
		if err := s.syncOne(ctx, integ); err != nil {
			s.logger.Error("sync integration",
				"integration_id", integ.ID,
				"owner_id", integ.OwnerID,
				"provider", integ.Provider,
				"error", err,
			)
			continue
		}
		s.slots.InvalidateOwner(ctx, integ.OwnerID)
	}
}

func (s *Syncer) syncOne(ctx context.Context, integ *CalendarIntegration) error {
	fetcher, ok := s.fetchers[integ.Provider]
	if !ok {
		return ErrInvalidProvider
	}

	now := time.Now().UTC()
	intervals, err := fetcher.FetchBusy(ctx, integ, now, now.Add(s.horizon))
	if err != nil {
		return err
	}
	if err := s.repo.ReplaceSnapshot(ctx, integ.ID, intervals, now); err != nil {
		return err
	}

	s.logger.Debug("integration snapshot refreshed",
		"integration_id", integ.ID,
		"intervals", len(intervals),
	)
	return nil
}
