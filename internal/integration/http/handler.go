package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/auth"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/integration"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/pkg/request"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/pkg/response"
)

type Handler struct {
	service integration.Service
}

func NewHandler(service integration.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Connect(c *gin.Context) {
	ownerID, err := auth.GetOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	url, err := h.service.BeginConnect(c.Request.Context(), ownerID, integration.Provider(c.Param("provider")))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, ConnectResponse{AuthURL: url})
}

// Callback handles the provider's OAuth redirect. The state parameter
// carries the owner id set when the consent flow began.
func (h *Handler) Callback(c *gin.Context) {
	var req CallbackRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	integ, err := h.service.CompleteConnect(c.Request.Context(), req.State, integration.Provider(c.Param("provider")), req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewIntegrationResponse(integ))
}

func (h *Handler) List(c *gin.Context) {
	ownerID, err := auth.GetOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	integrations, err := h.service.List(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]IntegrationResponse, 0, len(integrations))
	for i := range integrations {
		items = append(items, NewIntegrationResponse(&integrations[i]))
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Disconnect(c *gin.Context) {
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

	if err := h.service.Disconnect(c.Request.Context(), ownerID, req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
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

	if err := h.service.Delete(c.Request.Context(), ownerID, req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
