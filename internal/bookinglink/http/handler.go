package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/auth"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/availability"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/bookinglink"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/pkg/request"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/pkg/response"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/reservation"
)

type Handler struct {
	links        bookinglink.Service
	slots        availability.Service
	reservations reservation.Service
}

func NewHandler(links bookinglink.Service, slots availability.Service, reservations reservation.Service) *Handler {
	return &Handler{links: links, slots: slots, reservations: reservations}
}

func (h *Handler) Create(c *gin.Context) {
	ownerID, err := auth.GetOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	link, err := h.links.Create(c.Request.Context(), ownerID, linkFromRequest(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewLinkResponse(link))
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

	link, err := h.links.GetByID(c.Request.Context(), ownerID, req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewLinkResponse(link))
}

func (h *Handler) List(c *gin.Context) {
	ownerID, err := auth.GetOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	links, err := h.links.List(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]LinkResponse, 0, len(links))
	for i := range links {
		items = append(items, NewLinkResponse(&links[i]))
	}
	c.JSON(http.StatusOK, items)
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

	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	link := linkFromRequest(&req)
	link.ID = uri.ID
	link, err = h.links.Update(c.Request.Context(), ownerID, link)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewLinkResponse(link))
}

func (h *Handler) Delete(c *gin.Context) {
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

	if err := h.links.Delete(c.Request.Context(), ownerID, req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Slots is the public slot listing endpoint. The id segment accepts a
// link id or slug.
func (h *Handler) Slots(c *gin.Context) {
	var req ListSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	link, slots, err := h.slots.ComputeSlots(c.Request.Context(), c.Param("id"), req.From.UTC(), req.To.UTC())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, SlotsResponse{LinkID: link.ID, Slots: slots})
}

// Book is the public reservation endpoint.
func (h *Handler) Book(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	ev, err := h.reservations.Reserve(c.Request.Context(), c.Param("id"), reservation.Request{
		Start:        req.Start.UTC(),
		End:          req.End.UTC(),
		VisitorName:  req.VisitorName,
		VisitorEmail: req.VisitorEmail,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(ev))
}

func linkFromRequest(req *CreateLinkRequest) *bookinglink.Link {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return &bookinglink.Link{
		Name:                req.Name,
		Slug:                req.Slug,
		SlotDurationMinutes: req.SlotDurationMinutes,
		BufferMinutes:       req.BufferMinutes,
		ValidFrom:           req.ValidFrom,
		ValidTo:             req.ValidTo,
		Active:              active,
	}
}
