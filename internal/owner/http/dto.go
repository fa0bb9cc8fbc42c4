package http

import (
	"time"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/owner"
)

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required"`
	Timezone    string `json:"timezone" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	Owner       OwnerResponse `json:"owner"`
}

type UpdateOwnerRequest struct {
	DisplayName *string `json:"display_name"`
	Timezone    *string `json:"timezone"`
}

type OwnerResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Timezone    string    `json:"timezone"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewOwnerResponse(o *owner.Owner) OwnerResponse {
	return OwnerResponse{
		ID:          o.ID,
		Email:       o.Email,
		DisplayName: o.DisplayName,
		Timezone:    o.Timezone,
		CreatedAt:   o.CreatedAt,
	}
}

type DayHoursDTO struct {
	Weekday int    `json:"weekday" binding:"min=0,max=6"`
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

type SetWorkingHoursRequest struct {
	Days []DayHoursDTO `json:"days" binding:"required,max=7,dive"`
}

type WorkingHoursResponse struct {
	Days []DayHoursDTO `json:"days"`
}

func NewWorkingHoursResponse(hours owner.WeeklyHours) WorkingHoursResponse {
	days := make([]DayHoursDTO, 0, len(hours))
	for _, day := range hours {
		days = append(days, DayHoursDTO{
			Weekday: int(day.Weekday),
			Enabled: day.Enabled,
			Start:   day.Start,
			End:     day.End,
		})
	}
	return WorkingHoursResponse{Days: days}
}
