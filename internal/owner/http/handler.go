package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/auth"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/owner"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/pkg/response"
)

type Handler struct {
	service    owner.Service
	jwtManager *auth.JWTManager
}

func NewHandler(service owner.Service, jwtManager *auth.JWTManager) *Handler {
	return &Handler{service: service, jwtManager: jwtManager}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.service.Register(c.Request.Context(), owner.RegisterRequest{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Timezone:    req.Timezone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewOwnerResponse(o))
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(o.ID, o.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		Owner:       NewOwnerResponse(o),
	})
}

func (h *Handler) Me(c *gin.Context) {
	ownerID, err := auth.GetOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewOwnerResponse(o))
}

func (h *Handler) UpdateMe(c *gin.Context) {
	ownerID, err := auth.GetOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req UpdateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.service.Update(c.Request.Context(), ownerID, owner.UpdateRequest{
		DisplayName: req.DisplayName,
		Timezone:    req.Timezone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewOwnerResponse(o))
}

func (h *Handler) GetWorkingHours(c *gin.Context) {
	ownerID, err := auth.GetOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	hours, err := h.service.GetWorkingHours(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewWorkingHoursResponse(hours))
}

func (h *Handler) SetWorkingHours(c *gin.Context) {
	ownerID, err := auth.GetOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req SetWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var hours owner.WeeklyHours
	for i := range hours {
		hours[i].Weekday = time.Weekday(i)
	}
	seen := [7]bool{}
	for _, day := range req.Days {
		if seen[day.Weekday] {
			response.Error(c, owner.ErrDuplicateWeekday)
			return
		}
		seen[day.Weekday] = true
		hours[day.Weekday] = owner.DayHours{
			Weekday: time.Weekday(day.Weekday),
			Enabled: day.Enabled,
			Start:   day.Start,
			End:     day.End,
		}
	}

	if err := h.service.SetWorkingHours(c.Request.Context(), ownerID, hours); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewWorkingHoursResponse(hours))
}
