package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"airemote/internal/metrics"
)

// SystemHandler reports host facts and resource usage.
type SystemHandler struct{}

// NewSystemHandler creates a new SystemHandler instance.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// Info returns a snapshot of the host.
// GET /api/system
func (h *SystemHandler) Info(c *gin.Context) {
	info, err := metrics.Collect(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, info)
}
