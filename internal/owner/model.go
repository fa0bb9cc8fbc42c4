package owner

import (
	"net/http"
	"time"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/pkg/apperror"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/timezone"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "owner not found")
	ErrEmailTaken       = apperror.New(http.StatusConflict, "email already registered")
	ErrInvalidLogin     = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrEmailRequired    = apperror.New(http.StatusBadRequest, "email is required")
	ErrPasswordTooShort = apperror.New(http.StatusBadRequest, "password must be at least 8 characters")
	ErrInvalidDayWindow = apperror.New(http.StatusBadRequest, "working hours start must be before end")
	ErrDuplicateWeekday = apperror.New(http.StatusBadRequest, "duplicate weekday in working hours")
)

// Owner is a user who publishes bookable time.
type Owner struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  string
	Timezone     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DayHours is one weekday's bookable window, interpreted in the owner's
// stored timezone. Disabled days contribute no slots.
type DayHours struct {
	Weekday time.Weekday
	Enabled bool
	Start   string // "15:04" wall clock
	End     string
}

// WeeklyHours holds one entry per weekday, indexed by time.Weekday
// (Sunday = 0).
type WeeklyHours [7]DayHours

// Validate checks that every enabled day has a parseable window with
// start strictly before end.
func (w WeeklyHours) Validate() error {
	for _, day := range w {
		if !day.Enabled {
			continue
		}
		sh, sm, err := timezone.ParseClock(day.Start)
		if err != nil {
			return err
		}
		eh, em, err := timezone.ParseClock(day.End)
		if err != nil {
			return err
		}
		if sh*60+sm >= eh*60+em {
			return ErrInvalidDayWindow
		}
	}
	return nil
}
