package handlers

import (
	"net/http"

	"calmwave/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency health snapshot. Before the first check it reports ok.
func HealthHandler(c *gin.Context) {
	h := utils.GetHealthStatus()
	healthy := h.Mongo || h.CheckedAt.IsZero()
	for _, ok := range h.Redis {
		healthy = healthy && ok
	}
	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": h})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": h})
}
