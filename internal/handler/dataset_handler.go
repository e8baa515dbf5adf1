package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bavobbr/dmon-scheduler/internal/service"
	appErrors "github.com/bavobbr/dmon-scheduler/pkg/errors"
	"github.com/bavobbr/dmon-scheduler/pkg/response"
)

// DatasetHandler handles dataset document export and import.
type DatasetHandler struct {
	service *service.DatasetService
}

// NewDatasetHandler constructs a dataset handler.
func NewDatasetHandler(svc *service.DatasetService) *DatasetHandler {
	return &DatasetHandler{service: svc}
}

// Get returns the current working set.
func (h *DatasetHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Snapshot(c.Request.Context()))
}

// Export downloads the working set as a dated JSON document.
func (h *DatasetHandler) Export(c *gin.Context) {
	raw, filename, err := h.service.Export(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", raw)
}

// Import destructively replaces the working set from an uploaded document.
func (h *DatasetHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read dataset document"))
		return
	}
	ds, err := h.service.Import(c.Request.Context(), raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ds)
}
