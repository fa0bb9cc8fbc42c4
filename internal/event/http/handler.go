package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/auth"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/event"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/pkg/request"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/pkg/response"
)

type Handler struct {
	service event.Service
}

func NewHandler(service event.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	ownerID, err := auth.GetOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	ev, err := h.service.Create(c.Request.Context(), ownerID, event.CreateRequest{
		Title:           req.Title,
		StartUTC:        req.StartUTC,
		EndUTC:          req.EndUTC,
		DisplayTimezone: req.DisplayTimezone,
		Recurrence:      req.Recurrence,
		ReminderOffsets: req.ReminderOffsets,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewEventResponse(ev))
}

func (h *Handler) Get(c *gin.Context) {
	ownerID, err := auth.GetOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, err)
		return
	}

	ev, err := h.service.GetByID(c.Request.Context(), ownerID, req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewEventResponse(ev))
}

func (h *Handler) List(c *gin.Context) {
	ownerID, err := auth.GetOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req ListEventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	events, total, err := h.service.List(c.Request.Context(), ownerID, event.Filter{
		From:     req.From,
		To:       req.To,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]EventResponse, 0, len(events))
	for i := range events {
		items = append(items, NewEventResponse(events[i]))
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	ownerID, err := auth.GetOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, err)
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	ev, err := h.service.Update(c.Request.Context(), ownerID, uri.ID, event.UpdateRequest{
		Title:           req.Title,
		StartUTC:        req.StartUTC,
		EndUTC:          req.EndUTC,
		DisplayTimezone: req.DisplayTimezone,
		ReminderOffsets: req.ReminderOffsets,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewEventResponse(ev))
}

func (h *Handler) Cancel(c *gin.Context) {
	ownerID, err := auth.GetOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Cancel(c.Request.Context(), ownerID, req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
