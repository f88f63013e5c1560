package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"airemote/internal/core"
	"airemote/internal/models"
	"airemote/internal/services"
)

// StreamHandler pushes live execution status over a websocket, the server
// side of the page's progress display.
type StreamHandler struct {
	core     *core.Core
	history  *services.HistoryService
	upgrader websocket.Upgrader
}

// NewStreamHandler creates a new StreamHandler instance.
func NewStreamHandler(c *core.Core, history *services.HistoryService) *StreamHandler {
	return &StreamHandler{
		core:    c,
		history: history,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The page is served from the same host; phones on the LAN
			// connect by IP, so origin checks are not useful here.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

type streamEvent struct {
	Type    string `json:"type"`              // "status" or "complete"
	Message string `json:"message,omitempty"` // justification text
	Status  string `json:"status,omitempty"`  // terminal status
}

// Stream upgrades to a websocket and relays status lines for a request
// until it completes.
func (h *StreamHandler) Stream(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.history.GetRequestByID(id); err != nil {
		if err == services.ErrRequestNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[Stream] Upgrade failed: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	// Subscribe before checking for completion. A request finishing
	// between the check and the subscription would leave the channel
	// outside the broadcast set, parked open forever.
	ch := h.core.Subscribe(id)
	defer h.core.Unsubscribe(id, ch)

	req, err := h.history.GetRequestByID(id)
	if err != nil {
		return
	}
	if req.Status == models.StatusSuccess || req.Status == models.StatusFailed {
		_ = conn.WriteJSON(streamEvent{Type: "complete", Status: string(req.Status), Message: req.Message})
		return
	}

	for line := range ch {
		var event streamEvent
		switch {
		case strings.HasPrefix(line, "status:"):
			event = streamEvent{Type: "status", Message: strings.TrimPrefix(line, "status:")}
		case strings.HasPrefix(line, "complete:"):
			event = streamEvent{Type: "complete", Status: strings.TrimPrefix(line, "complete:")}
		default:
			continue
		}

		if err := conn.WriteJSON(event); err != nil {
			return
		}
		if event.Type == "complete" {
			return
		}
	}
}
