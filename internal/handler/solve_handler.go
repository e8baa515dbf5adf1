package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bavobbr/dmon-scheduler/internal/service"
	"github.com/bavobbr/dmon-scheduler/pkg/response"
)

// SolveHandler drives the solve job lifecycle and serves the agenda views.
type SolveHandler struct {
	service *service.SolveService
}

// NewSolveHandler constructs a solve handler.
func NewSolveHandler(svc *service.SolveService) *SolveHandler {
	return &SolveHandler{service: svc}
}

// Start submits the current working set as a new solve job.
func (h *SolveHandler) Start(c *gin.Context) {
	jobID, err := h.service.Start(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, gin.H{"jobId": jobID})
}

// Stop cancels the active job and returns the resulting snapshot.
func (h *SolveHandler) Stop(c *gin.Context) {
	snap, err := h.service.Stop(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap)
}

// Snapshot returns the currently published job state.
func (h *SolveHandler) Snapshot(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Snapshot(c.Request.Context()))
}

// Agenda returns the annotated weekly grid for the current snapshot.
func (h *SolveHandler) Agenda(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Agenda(c.Request.Context()))
}

// ExportAgenda downloads the agenda as CSV or PDF.
func (h *SolveHandler) ExportAgenda(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	raw, contentType, filename, err := h.service.ExportAgenda(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, raw)
}
