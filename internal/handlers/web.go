package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"airemote/internal/assets"
)

// WebHandler serves the embedded mobile page.
type WebHandler struct{}

// NewWebHandler creates a new WebHandler instance.
func NewWebHandler() *WebHandler {
	return &WebHandler{}
}

// Index serves the command submission page.
func (h *WebHandler) Index(c *gin.Context) {
	page, err := assets.EmbeddedFiles.ReadFile("web/index.html")
	if err != nil {
		c.String(http.StatusInternalServerError, "page unavailable")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
