package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bavobbr/dmon-scheduler/internal/service"
	appErrors "github.com/bavobbr/dmon-scheduler/pkg/errors"
	"github.com/bavobbr/dmon-scheduler/pkg/response"
)

// TrainerHandler handles trainer roster endpoints.
type TrainerHandler struct {
	service *service.TrainerService
}

// NewTrainerHandler constructs a trainer handler.
func NewTrainerHandler(svc *service.TrainerService) *TrainerHandler {
	return &TrainerHandler{service: svc}
}

// List returns all trainers.
func (h *TrainerHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List(c.Request.Context()))
}

// Get returns one trainer by id.
func (h *TrainerHandler) Get(c *gin.Context) {
	trainer, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trainer)
}

// Create adds a trainer.
func (h *TrainerHandler) Create(c *gin.Context) {
	var req service.CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	trainer, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, trainer)
}

// Update modifies a trainer.
func (h *TrainerHandler) Update(c *gin.Context) {
	var req service.UpdateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	trainer, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trainer)
}

// Delete removes a trainer.
func (h *TrainerHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
