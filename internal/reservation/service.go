package reservation

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/availability"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/bookinglink"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/busy"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/event"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/owner"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/pkg/apperror"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/reminder"
)

var (
	// ErrConflict means the requested interval collides with busy time.
	ErrConflict = apperror.New(http.StatusConflict, "requested time is no longer available")
	// ErrOutOfWindow means the interval is not one of the link's
	// offerable slots (outside working hours, validity, or alignment).
	ErrOutOfWindow = apperror.New(http.StatusUnprocessableEntity, "requested time is outside the bookable window")
)

// Reminders for visitor bookings fire a fixed half hour before start.
const defaultReminderOffsetMinutes = 30

type Request struct {
	Start        time.Time
	End          time.Time
	VisitorName  string
	VisitorEmail string
}

type OwnerStore interface {
	GetByID(ctx context.Context, id string) (*owner.Owner, error)
}

type Service interface {
	// Reserve validates the requested slot against current busy state
	// and, if free, commits it as a new event. Exactly one of two
	// concurrent overlapping reserves for the same owner can succeed.
	Reserve(ctx context.Context, idOrSlug string, req Request) (*event.Event, error)
}

type service struct {
	links      bookinglink.Service
	owners     OwnerStore
	slots      availability.Service
	aggregator *busy.Aggregator
	events     event.Repository
	dispatcher reminder.Dispatcher
	locks      ownerLocks
	logger     *slog.Logger
}

func NewService(
	links bookinglink.Service,
	owners OwnerStore,
	slots availability.Service,
	aggregator *busy.Aggregator,
	events event.Repository,
	dispatcher reminder.Dispatcher,
	logger *slog.Logger,
) Service {
	return &service{
		links:      links,
		owners:     owners,
		slots:      slots,
		aggregator: aggregator,
		events:     events,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (s *service) Reserve(ctx context.Context, idOrSlug string, req Request) (*event.Event, error) {
	link, err := s.links.Resolve(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	if !link.ValidAt(req.Start) {
		return nil, ErrOutOfWindow
	}

	unlock := s.locks.lock(link.OwnerID)
	defer unlock()

	// Busy-state check first so a just-taken slot reports a conflict
	// rather than a window violation. This also covers integration
	// intervals, which the database overlap recheck cannot see.
	busySet, err := s.aggregator.Aggregate(ctx, link.OwnerID, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	if busy.Overlaps(busySet, req.Start, req.End) {
		return nil, ErrConflict
	}

	bookable, err := s.slots.IsBookable(ctx, link, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	if !bookable {
		return nil, ErrOutOfWindow
	}

	own, err := s.owners.GetByID(ctx, link.OwnerID)
	if err != nil {
		return nil, err
	}

	ev := &event.Event{
		OwnerID:         link.OwnerID,
		Title:           link.Name + " with " + req.VisitorName,
		StartUTC:        req.Start.UTC(),
		EndUTC:          req.End.UTC(),
		DisplayTimezone: own.Timezone,
		ReminderOffsets: []int{defaultReminderOffsetMinutes},
		VisitorName:     req.VisitorName,
		VisitorEmail:    req.VisitorEmail,
	}
	if err := s.events.CreateReserved(ctx, ev); err != nil {
		if errors.Is(err, event.ErrTimeConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.slots.InvalidateOwner(ctx, link.OwnerID)
	for _, fireAt := range reminder.FireTimes(ev.StartUTC, ev.ReminderOffsets) {
		if err := s.dispatcher.Dispatch(ctx, ev.ID, fireAt, reminder.ChannelEmail); err != nil {
			s.logger.Error("dispatch reminder", "event_id", ev.ID, "error", err)
		}
	}

	s.logger.Info("slot reserved",
		"owner_id", link.OwnerID,
		"link_id", link.ID,
		"event_id", ev.ID,
		"start", ev.StartUTC,
	)
	return ev, nil
}
