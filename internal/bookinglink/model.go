package bookinglink

import (
	"net/http"
	"time"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "booking link not found")
	ErrSlugTaken       = apperror.New(http.StatusConflict, "slug already in use")
	ErrInvalidDuration = apperror.New(http.StatusUnprocessableEntity, "slot duration must be positive")
	ErrInvalidBuffer   = apperror.New(http.StatusUnprocessableEntity, "buffer must not be negative")
	ErrInvalidValidity = apperror.New(http.StatusUnprocessableEntity, "valid_from must be before valid_to")
)

// Link is a shareable booking page configuration. Visitors use it to
// browse open slots and reserve one without authenticating.
type Link struct {
	ID                  string
	OwnerID             string
	Name                string
	Slug                string
	SlotDurationMinutes int
	BufferMinutes       int
	ValidFrom           *time.Time
	ValidTo             *time.Time
	Active              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// SlotDuration returns the slot length as a duration.
func (l *Link) SlotDuration() time.Duration {
	return time.Duration(l.SlotDurationMinutes) * time.Minute
}

// Buffer returns the padding applied around busy intervals.
func (l *Link) Buffer() time.Duration {
	return time.Duration(l.BufferMinutes) * time.Minute
}

// ValidAt reports whether the link accepts bookings that start at t.
func (l *Link) ValidAt(t time.Time) bool {
	if !l.Active {
		return false
	}
	if l.ValidFrom != nil && t.Before(*l.ValidFrom) {
		return false
	}
	if l.ValidTo != nil && !t.Before(*l.ValidTo) {
		return false
	}
	return true
}

func (l *Link) validate() error {
	if l.SlotDurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if l.BufferMinutes < 0 {
		return ErrInvalidBuffer
	}
	if l.ValidFrom != nil && l.ValidTo != nil && !l.ValidFrom.Before(*l.ValidTo) {
		return ErrInvalidValidity
	}
	return nil
}
