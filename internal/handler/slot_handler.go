package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bavobbr/dmon-scheduler/internal/service"
	appErrors "github.com/bavobbr/dmon-scheduler/pkg/errors"
	"github.com/bavobbr/dmon-scheduler/pkg/response"
)

// SlotHandler exposes the time-slot selection grid: discrete toggles, paint
// gestures and the field capacity.
type SlotHandler struct {
	service *service.SlotService
}

// NewSlotHandler constructs a slot handler.
func NewSlotHandler(svc *service.SlotService) *SlotHandler {
	return &SlotHandler{service: svc}
}

// Grid returns the current selection grid.
func (h *SlotHandler) Grid(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Grid(c.Request.Context()))
}

// Toggle flips one cell of the grid.
func (h *SlotHandler) Toggle(c *gin.Context) {
	h.applyCell(c, h.service.Toggle)
}

// GestureStart begins a paint gesture on a cell.
func (h *SlotHandler) GestureStart(c *gin.Context) {
	h.applyCell(c, h.service.BeginPaint)
}

// GestureEnter applies the active gesture to a cell the pointer entered.
func (h *SlotHandler) GestureEnter(c *gin.Context) {
	h.applyCell(c, h.service.PaintCell)
}

// GestureEnd finishes the active gesture.
func (h *SlotHandler) GestureEnd(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.EndPaint(c.Request.Context()))
}

// SetCapacity updates the field capacity.
func (h *SlotHandler) SetCapacity(c *gin.Context) {
	var req service.CapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	grid, err := h.service.SetCapacity(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid)
}

type cellOp func(ctx context.Context, req service.CellRequest) (service.SlotGrid, error)

func (h *SlotHandler) applyCell(c *gin.Context, op cellOp) {
	var req service.CellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	grid, err := op(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid)
}
