package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/auth"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/pkg/request"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/pkg/response"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/routing"
)

type Handler struct {
	service routing.Service
}

func NewHandler(service routing.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	ownerID, err := auth.GetOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	form, err := h.service.Create(c.Request.Context(), ownerID, req.ToForm())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, form)
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

	form, err := h.service.GetByID(c.Request.Context(), ownerID, req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *Handler) List(c *gin.Context) {
	ownerID, err := auth.GetOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	forms, err := h.service.List(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, forms)
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

	var req FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	form := req.ToForm()
	form.ID = uri.ID
	form, err = h.service.Update(c.Request.Context(), ownerID, form)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
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

// Submit is the public, unauthenticated evaluation endpoint.
func (h *Handler) Submit(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, err)
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	action, err := h.service.Submit(c.Request.Context(), uri.ID, routing.Answers(req.Answers))
	if err != nil {
		var validationErr *routing.ValidationError
		if errors.As(err, &validationErr) {
			response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "required question not answered", map[string]string{
				"question_id": validationErr.QuestionID,
			})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, SubmitResponse{Action: action})
}
