package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/reminder"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/timezone"
)

// SlotCacheInvalidator drops cached slot computations when the owner's busy
// state changes. Satisfied by the availability service.
type SlotCacheInvalidator interface {
	InvalidateOwner(ctx context.Context, ownerID string)
}

type CreateRequest struct {
	Title           string
	StartUTC        time.Time
	EndUTC          time.Time
	DisplayTimezone string
	Recurrence      string
	ReminderOffsets []int
	VisitorName     string
	VisitorEmail    string
}

type UpdateRequest struct {
	Title           *string
	StartUTC        *time.Time
	EndUTC          *time.Time
	DisplayTimezone *string
	ReminderOffsets *[]int
}

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Event, error)
	GetByID(ctx context.Context, ownerID, id string) (*Event, error)
	List(ctx context.Context, ownerID string, filter Filter) ([]*Event, int, error)
	Update(ctx context.Context, ownerID, id string, req UpdateRequest) (*Event, error)
	Cancel(ctx context.Context, ownerID, id string) error
}

type service struct {
	repo       Repository
	slots      SlotCacheInvalidator
	dispatcher reminder.Dispatcher
	logger     *slog.Logger
}

func NewService(repo Repository, slots SlotCacheInvalidator, dispatcher reminder.Dispatcher, logger *slog.Logger) Service {
	return &service{
		repo:       repo,
		slots:      slots,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func validate(start, end time.Time, tz string, offsets []int) error {
	if !start.Before(end) {
		return ErrInvalidTimeRange
	}
	if tz != "" {
		if _, err := timezone.LoadLocation(tz); err != nil {
			return err
		}
	}
	for _, offset := range offsets {
		if offset < 0 {
			return ErrNegativeOffset
		}
	}
	return nil
}

// Create records a manually entered event. Owners may double-book themselves
// here on purpose; the conflict-checked path is the reservation flow.
func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Event, error) {
	if err := validate(req.StartUTC, req.EndUTC, req.DisplayTimezone, req.ReminderOffsets); err != nil {
		return nil, err
	}

	e := &Event{
		OwnerID:         ownerID,
		Title:           req.Title,
		StartUTC:        req.StartUTC.UTC(),
		EndUTC:          req.EndUTC.UTC(),
		DisplayTimezone: req.DisplayTimezone,
		Recurrence:      req.Recurrence,
		ReminderOffsets: req.ReminderOffsets,
		VisitorName:     req.VisitorName,
		VisitorEmail:    req.VisitorEmail,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, e)
	return e, nil
}

func (s *service) GetByID(ctx context.Context, ownerID, id string) (*Event, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

func (s *service) List(ctx context.Context, ownerID string, filter Filter) ([]*Event, int, error) {
	return s.repo.List(ctx, ownerID, filter)
}

func (s *service) Update(ctx context.Context, ownerID, id string, req UpdateRequest) (*Event, error) {
	e, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.StartUTC != nil {
		e.StartUTC = req.StartUTC.UTC()
	}
	if req.EndUTC != nil {
		e.EndUTC = req.EndUTC.UTC()
	}
	if req.DisplayTimezone != nil {
		e.DisplayTimezone = *req.DisplayTimezone
	}
	if req.ReminderOffsets != nil {
		e.ReminderOffsets = *req.ReminderOffsets
	}

	if err := validate(e.StartUTC, e.EndUTC, e.DisplayTimezone, e.ReminderOffsets); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, e)
	return e, nil
}

func (s *service) Cancel(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	if s.slots != nil {
		s.slots.InvalidateOwner(ctx, ownerID)
	}
	return nil
}

// afterMutation invalidates stale slot caches and hands the event's reminder
// schedule to the notification collaborator. Dispatch failures degrade
// reminders, never the booking itself.
func (s *service) afterMutation(ctx context.Context, e *Event) {
	if s.slots != nil {
		s.slots.InvalidateOwner(ctx, e.OwnerID)
	}

	for _, fireAt := range reminder.FireTimes(e.StartUTC, e.ReminderOffsets) {
		if err := s.dispatcher.Dispatch(ctx, e.ID, fireAt, reminder.ChannelEmail); err != nil {
			s.logger.Error("reminder dispatch failed", "event_id", e.ID, "err", err)
		}
	}
}
