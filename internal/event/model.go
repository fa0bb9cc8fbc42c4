package event

import (
	"net/http"
	"time"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "event not found")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "time range already busy")
	ErrNegativeOffset   = apperror.New(http.StatusBadRequest, "reminder offsets must be non-negative")
)

// Event is an owner-scoped appointment. It owns one busy interval and zero or
// more derived reminder fire-times.
type Event struct {
	ID              string
	OwnerID         string
	Title           string
	StartUTC        time.Time
	EndUTC          time.Time
	DisplayTimezone string

	// External provider linkage, set when the event mirrors a synced
	// calendar entry.
	Provider        string
	ProviderEventID string

	// Opaque recurrence marker. Expansion is not performed here.
	Recurrence string

	// Minutes before start at which reminders fire.
	ReminderOffsets []int

	// Visitor contact info when the event was created by a booking.
	VisitorName  string
	VisitorEmail string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing events.
type Filter struct {
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}
