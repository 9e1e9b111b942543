package handlers

import (
	"net/http"

	"calmwave/models"
	"calmwave/services/checkin"
	"calmwave/utils"

	"github.com/gin-gonic/gin"
)

type CheckInHandler struct {
	CheckIns checkin.CheckInService
}

func NewCheckInHandler(svc checkin.CheckInService) *CheckInHandler {
	return &CheckInHandler{CheckIns: svc}
}

func (h *CheckInHandler) RecordHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var in models.CheckInInput
	if !bindJSON(c, &in) {
		return
	}
	out, err := h.CheckIns.Record(c.Request.Context(), s, in)
	if err != nil {
		utils.RespondError(c, "Failed to record check-in", err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// RecentHandler supports ?limit=.
func (h *CheckInHandler) RecentHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	list, err := h.CheckIns.Recent(c.Request.Context(), s, queryInt(c, "limit"))
	if err != nil {
		utils.RespondError(c, "Failed to load check-ins", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CheckInHandler) DashboardHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	d, err := h.CheckIns.Dashboard(c.Request.Context(), s, queryInt(c, "limit"))
	if err != nil {
		utils.RespondError(c, "Failed to build dashboard", err)
		return
	}
	c.JSON(http.StatusOK, d)
}
