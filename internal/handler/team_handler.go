package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bavobbr/dmon-scheduler/internal/service"
	appErrors "github.com/bavobbr/dmon-scheduler/pkg/errors"
	"github.com/bavobbr/dmon-scheduler/pkg/response"
)

// TeamHandler handles team roster endpoints.
type TeamHandler struct {
	service *service.TeamService
}

// NewTeamHandler constructs a team handler.
func NewTeamHandler(svc *service.TeamService) *TeamHandler {
	return &TeamHandler{service: svc}
}

// List returns all teams.
func (h *TeamHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List(c.Request.Context()))
}

// Get returns one team by id.
func (h *TeamHandler) Get(c *gin.Context) {
	team, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, team)
}

// Create adds a team.
func (h *TeamHandler) Create(c *gin.Context) {
	var req service.TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	team, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, team)
}

// Update modifies a team.
func (h *TeamHandler) Update(c *gin.Context) {
	var req service.TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	team, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, team)
}

// Delete removes a team.
func (h *TeamHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
