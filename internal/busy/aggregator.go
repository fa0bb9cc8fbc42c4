package busy

import (
	"context"
	"fmt"
	"time"
)

// EventSource supplies busy intervals from the owner's local events.
type EventSource interface {
	BusyIntervals(ctx context.Context, ownerID string, from, to time.Time) ([]Interval, error)
}

// Snapshot is the last materialized busy state of one calendar integration.
// The aggregator never performs live provider calls; it only reads snapshots
// that the sync worker refreshed out of band.
type Snapshot struct {
	IntegrationID string
	Connected     bool
	SyncedAt      time.Time
	Intervals     []Interval
}

// SnapshotSource supplies the current snapshots for an owner's integrations.
type SnapshotSource interface {
	Snapshots(ctx context.Context, ownerID string) ([]Snapshot, error)
}

// Aggregator merges an owner's local events and integration snapshots into
// one authoritative busy set.
type Aggregator struct {
	events    EventSource
	snapshots SnapshotSource
	staleness time.Duration
	now       func() time.Time
}

func NewAggregator(events EventSource, snapshots SnapshotSource, staleness time.Duration) *Aggregator {
	return &Aggregator{
		events:    events,
		snapshots: snapshots,
		staleness: staleness,
		now:       time.Now,
	}
}

// Aggregate returns the owner's busy intervals intersecting [from, to),
// clipped to that range, sorted by start and fully coalesced. Downstream slot
// generation and conflict checks rely on the output being merged and ordered.
//
// Disconnected integrations and snapshots older than the staleness threshold
// are silently excluded: degraded accuracy, not an error.
func (a *Aggregator) Aggregate(ctx context.Context, ownerID string, from, to time.Time) ([]Interval, error) {
	if !from.Before(to) {
		return nil, nil
	}

	local, err := a.events.BusyIntervals(ctx, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load local busy intervals failed: %w", err)
	}

	collected := Clip(local, from, to)

	snaps, err := a.snapshots.Snapshots(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load integration snapshots failed: %w", err)
	}

	cutoff := a.now().Add(-a.staleness)
	for _, snap := range snaps {
		if !snap.Connected {
			continue
		}
		if a.staleness > 0 && snap.SyncedAt.Before(cutoff) {
			continue
		}
		collected = append(collected, Clip(snap.Intervals, from, to)...)
	}

	return Merge(collected), nil
}
