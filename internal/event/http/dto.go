package http

import (
	"time"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/event"
)

// ListEventsRequest defines query parameters for listing events.
type ListEventsRequest struct {
	From     *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To       *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Page     int        `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

type CreateEventRequest struct {
	Title           string    `json:"title" binding:"required"`
	StartUTC        time.Time `json:"start_utc" binding:"required"`
	EndUTC          time.Time `json:"end_utc" binding:"required"`
	DisplayTimezone string    `json:"display_timezone" binding:"required"`
	Recurrence      string    `json:"recurrence"`
	ReminderOffsets []int     `json:"reminder_offsets"`
}

type UpdateEventRequest struct {
	Title           *string    `json:"title"`
	StartUTC        *time.Time `json:"start_utc"`
	EndUTC          *time.Time `json:"end_utc"`
	DisplayTimezone *string    `json:"display_timezone"`
	ReminderOffsets *[]int     `json:"reminder_offsets"`
}

type EventResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	StartUTC        time.Time `json:"start_utc"`
	EndUTC          time.Time `json:"end_utc"`
	DisplayTimezone string    `json:"display_timezone"`
	Recurrence      string    `json:"recurrence,omitempty"`
	ReminderOffsets []int     `json:"reminder_offsets"`
	VisitorName     string    `json:"visitor_name,omitempty"`
	VisitorEmail    string    `json:"visitor_email,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewEventResponse(e *event.Event) EventResponse {
	offsets := e.ReminderOffsets
	if offsets == nil {
		offsets = make([]int, 0)
	}
	return EventResponse{
		ID:              e.ID,
		Title:           e.Title,
		StartUTC:        e.StartUTC,
		EndUTC:          e.EndUTC,
		DisplayTimezone: e.DisplayTimezone,
		Recurrence:      e.Recurrence,
		ReminderOffsets: offsets,
		VisitorName:     e.VisitorName,
		VisitorEmail:    e.VisitorEmail,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}
