package http

import (
	"time"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/integration"
)

type IntegrationResponse struct {
	ID           string     `json:"id"`
	Provider     string     `json:"provider"`
	Connected    bool       `json:"connected"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func NewIntegrationResponse(i *integration.CalendarIntegration) IntegrationResponse {
	return IntegrationResponse{
		ID:           i.ID,
		Provider:     string(i.Provider),
		Connected:    i.Connected,
		LastSyncedAt: i.LastSyncedAt,
		CreatedAt:    i.CreatedAt,
	}
}

type ConnectResponse struct {
	AuthURL string `json:"auth_url"`
}

type CallbackRequest struct {
	Code  string `form:"code" binding:"required"`
	State string `form:"state" binding:"required,uuid"`
}
