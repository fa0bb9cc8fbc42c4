package availability

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/bookinglink"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/busy"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/owner"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/timezone"
)

// OwnerStore is the slice of the owner repository availability needs.
type OwnerStore interface {
	GetByID(ctx context.Context, id string) (*owner.Owner, error)
	GetWorkingHours(ctx context.Context, ownerID string) (owner.WeeklyHours, error)
}

type Service interface {
	// ComputeSlots resolves a booking link by id or slug and returns
	// every offerable slot in [from, to), ascending.
	ComputeSlots(ctx context.Context, idOrSlug string, from, to time.Time) (*bookinglink.Link, []Slot, error)

	// IsBookable reports whether [start, end) is currently one of the
	// link's offerable slots.
	IsBookable(ctx context.Context, link *bookinglink.Link, start, end time.Time) (bool, error)

	// InvalidateOwner drops all cached slot sets for an owner. Called
	// after any mutation that changes the owner's busy state or hours.
	InvalidateOwner(ctx context.Context, ownerID string)
}

type service struct {
	links      bookinglink.Service
	owners     OwnerStore
	aggregator *busy.Aggregator
	cache      Cache
	logger     *slog.Logger
}

func NewService(links bookinglink.Service, owners OwnerStore, aggregator *busy.Aggregator, cache Cache, logger *slog.Logger) Service {
	return &service{
		links:      links,
		owners:     owners,
		aggregator: aggregator,
		cache:      cache,
		logger:     logger,
	}
}

func (s *service) ComputeSlots(ctx context.Context, idOrSlug string, from, to time.Time) (*bookinglink.Link, []Slot, error) {
	link, err := s.links.Resolve(ctx, idOrSlug)
	if err != nil {
		return nil, nil, err
	}
	if !link.Active {
		return nil, nil, bookinglink.ErrNotFound
	}

	from, to = clampToValidity(link, from, to)
	if !from.Before(to) {
		return link, []Slot{}, nil
	}

	key := cacheKey(link.OwnerID, link.ID, from, to)
	if slots, ok := s.cache.Get(ctx, key); ok {
		return link, slots, nil
	}

	slots, err := s.compute(ctx, link, from, to)
	if err != nil {
		return nil, nil, err
	}
	s.cache.Set(ctx, key, slots)
	return link, slots, nil
}

func (s *service) IsBookable(ctx context.Context, link *bookinglink.Link, start, end time.Time) (bool, error) {
	if end.Sub(start) != link.SlotDuration() {
		return false, nil
	}
	if !link.ValidAt(start) {
		return false, nil
	}

	own, err := s.owners.GetByID(ctx, link.OwnerID)
	if err != nil {
		return false, err
	}
	loc, err := timezone.LoadLocation(own.Timezone)
	if err != nil {
		return false, err
	}

	// Recompute just the owner-timezone day containing the requested
	// start. The day ends at the next local midnight, not start+24h,
	// so DST transition days keep their full 23 or 25 hours. Lazy
	// iteration stops at the first match.
	local := start.In(loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).UTC()
	dayEnd := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc).UTC()

	seq, err := s.slotSeq(ctx, link, own, dayStart, dayEnd)
	if err != nil {
		return false, err
	}
	for slot := range seq {
		if slot.Start.Equal(start) && slot.End.Equal(end) {
			return true, nil
		}
		if slot.Start.After(start) {
			break
		}
	}
	return false, nil
}

func (s *service) InvalidateOwner(ctx context.Context, ownerID string) {
	s.cache.InvalidateOwner(ctx, ownerID)
	s.logger.Debug("slot cache invalidated", "owner_id", ownerID)
}

func (s *service) compute(ctx context.Context, link *bookinglink.Link, from, to time.Time) ([]Slot, error) {
	own, err := s.owners.GetByID(ctx, link.OwnerID)
	if err != nil {
		return nil, err
	}
	seq, err := s.slotSeq(ctx, link, own, from, to)
	if err != nil {
		return nil, err
	}
	slots := make([]Slot, 0)
	for slot := range seq {
		slots = append(slots, slot)
	}
	return slots, nil
}

func (s *service) slotSeq(ctx context.Context, link *bookinglink.Link, own *owner.Owner, from, to time.Time) (iter.Seq[Slot], error) {
	hours, err := s.owners.GetWorkingHours(ctx, own.ID)
	if err != nil {
		return nil, err
	}
	busySet, err := s.aggregator.Aggregate(ctx, own.ID, from, to)
	if err != nil {
		return nil, err
	}
	return Slots(Params{
		Timezone: own.Timezone,
		Hours:    hours,
		Duration: link.SlotDuration(),
		Buffer:   link.Buffer(),
		From:     from,
		To:       to,
		Busy:     busySet,
	})
}

func clampToValidity(link *bookinglink.Link, from, to time.Time) (time.Time, time.Time) {
	if link.ValidFrom != nil && from.Before(*link.ValidFrom) {
		from = *link.ValidFrom
	}
	if link.ValidTo != nil && to.After(*link.ValidTo) {
		to = *link.ValidTo
	}
	return from, to
}
