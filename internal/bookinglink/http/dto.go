package http

import (
	"time"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/availability"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/bookinglink"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/event"
)

type CreateLinkRequest struct {
	Name                string     `json:"name" binding:"required"`
	Slug                string     `json:"slug"`
	SlotDurationMinutes int        `json:"slot_duration_minutes" binding:"required,min=1"`
	BufferMinutes       int        `json:"buffer_minutes" binding:"min=0"`
	ValidFrom           *time.Time `json:"valid_from"`
	ValidTo             *time.Time `json:"valid_to"`
	Active              *bool      `json:"active"`
}

type LinkResponse struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Slug                string     `json:"slug"`
	SlotDurationMinutes int        `json:"slot_duration_minutes"`
	BufferMinutes       int        `json:"buffer_minutes"`
	ValidFrom           *time.Time `json:"valid_from,omitempty"`
	ValidTo             *time.Time `json:"valid_to,omitempty"`
	Active              bool       `json:"active"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func NewLinkResponse(l *bookinglink.Link) LinkResponse {
	return LinkResponse{
		ID:                  l.ID,
		Name:                l.Name,
		Slug:                l.Slug,
		SlotDurationMinutes: l.SlotDurationMinutes,
		BufferMinutes:       l.BufferMinutes,
		ValidFrom:           l.ValidFrom,
		ValidTo:             l.ValidTo,
		Active:              l.Active,
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}
}

type ListSlotsRequest struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

type SlotsResponse struct {
	LinkID string              `json:"link_id"`
	Slots  []availability.Slot `json:"slots"`
}

type CreateBookingRequest struct {
	Start        time.Time `json:"start" binding:"required"`
	End          time.Time `json:"end" binding:"required"`
	VisitorName  string    `json:"visitor_name" binding:"required"`
	VisitorEmail string    `json:"visitor_email" binding:"required,email"`
}

type BookingResponse struct {
	EventID string    `json:"event_id"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

func NewBookingResponse(ev *event.Event) BookingResponse {
	return BookingResponse{
		EventID: ev.ID,
		Start:   ev.StartUTC,
		End:     ev.EndUTC,
	}
}
