package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"airemote/internal/core"
	"airemote/internal/models"
)

// ExecuteHandler handles command submissions from the widget.
type ExecuteHandler struct {
	core       *core.Core
	pathPrefix string
	timeout    timeoutFunc
}

type timeoutFunc func(parent context.Context) (context.Context, context.CancelFunc)

// NewExecuteHandler creates a new ExecuteHandler instance. timeout bounds
// how long a single request may execute before it is abandoned.
func NewExecuteHandler(c *core.Core, pathPrefix string, timeout timeoutFunc) *ExecuteHandler {
	return &ExecuteHandler{
		core:       c,
		pathPrefix: pathPrefix,
		timeout:    timeout,
	}
}

// Execute runs one command to completion and reports the outcome in the
// widget's wire format. The response resolves only once execution
// finishes; the page shows "Executing..." until then.
func (h *ExecuteHandler) Execute(c *gin.Context) {
	var req models.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ExecuteResponse{
			Status:  "error",
			Message: "Please enter a command",
		})
		return
	}

	// The widget validates emptiness client-side; anything that bypasses
	// it gets the same answer here.
	if strings.TrimSpace(req.Command) == "" {
		c.JSON(http.StatusBadRequest, models.ExecuteResponse{
			Status:  "error",
			Message: "Please enter a command",
		})
		return
	}

	ctx, cancel := h.timeout(c.Request.Context())
	defer cancel()

	result, err := h.core.Execute(ctx, req.Command)
	if err != nil {
		log.Printf("[Execute] Request failed before running: %v", err)
		c.JSON(http.StatusInternalServerError, models.ExecuteResponse{
			Status:  "error",
			Message: "Error: " + err.Error(),
		})
		return
	}

	status := "error"
	if result.Status == models.StatusSuccess {
		status = "success"
	}

	c.JSON(http.StatusOK, models.ExecuteResponse{
		Status:    status,
		Message:   result.Message,
		RequestID: result.ID,
		StreamURL: h.pathPrefix + "/api/requests/" + result.ID + "/stream",
	})
}
