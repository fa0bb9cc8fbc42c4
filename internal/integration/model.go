package integration

import (
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "calendar integration not found")
	ErrAlreadyExists   = apperror.New(http.StatusConflict, "calendar integration already connected")
	ErrInvalidProvider = apperror.New(http.StatusUnprocessableEntity, "unsupported calendar provider")
)

// Provider is a closed enumeration of supported external calendars.
type Provider string

const ProviderGoogle Provider = "google"

func (p Provider) Valid() bool {
	return p == ProviderGoogle
}

// CalendarIntegration is one connected external calendar. The engine
// only ever consumes the cached snapshot; the sync worker refreshes it
// out of band.
type CalendarIntegration struct {
	ID           string
	OwnerID      string
	Provider     Provider
	Connected    bool
	Token        *oauth2.Token
	LastSyncedAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
