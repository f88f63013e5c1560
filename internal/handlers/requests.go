package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"airemote/internal/services"
)

// RequestHandler serves the persisted request history.
type RequestHandler struct {
	history *services.HistoryService
}

// NewRequestHandler creates a new RequestHandler instance.
func NewRequestHandler(history *services.HistoryService) *RequestHandler {
	return &RequestHandler{history: history}
}

// List lists recent requests, newest first.
func (h *RequestHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	requests, err := h.history.GetRequests(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// Get retrieves a request by ID.
func (h *RequestHandler) Get(c *gin.Context) {
	id := c.Param("id")

	req, err := h.history.GetRequestByID(id)
	if err != nil {
		if err == services.ErrRequestNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, req)
}
