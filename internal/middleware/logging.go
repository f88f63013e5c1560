package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one line per request: method, path, client, status and
// how long the command side took to resolve.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		// Captured before c.Next: handlers may rewrite the URL.
		path := c.Request.URL.Path

		c.Next()

		log.Printf("[HTTP] %s %s from %s -> %d in %v",
			c.Request.Method,
			path,
			c.ClientIP(),
			c.Writer.Status(),
			time.Since(start),
		)
	}
}
