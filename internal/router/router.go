// Package router wires the HTTP routes onto a gin engine.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"airemote/internal/config"
	"airemote/internal/core"
	"airemote/internal/handlers"
	"airemote/internal/middleware"
	"airemote/internal/services"
	"airemote/internal/version"
)

func New(cfg *config.Config, c *core.Core, history *services.HistoryService) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.BodySizeLimit(cfg.Limits.BodyBytes))

	timeout := func(parent context.Context) (context.Context, context.CancelFunc) {
		return context.WithTimeout(parent, cfg.Execution.GetRequestTimeout())
	}

	executeHandler := handlers.NewExecuteHandler(c, cfg.Server.PathPrefix, timeout)
	requestHandler := handlers.NewRequestHandler(history)
	streamHandler := handlers.NewStreamHandler(c, history)
	systemHandler := handlers.NewSystemHandler()
	webHandler := handlers.NewWebHandler()

	prefix := r.Group(cfg.Server.PathPrefix)

	prefix.GET("/", webHandler.Index)

	executeLimiter := middleware.NewRateLimiter(cfg.Limits.ExecutePerMinute, time.Minute)
	prefix.POST("/execute", executeLimiter.Middleware(), executeHandler.Execute)

	api := prefix.Group("/api")
	{
		api.GET("/version", func(c *gin.Context) {
			c.JSON(http.StatusOK, version.Info())
		})

		api.GET("/requests", requestHandler.List)
		api.GET("/requests/:id", requestHandler.Get)
		api.GET("/requests/:id/stream", streamHandler.Stream)
		api.GET("/system", systemHandler.Info)
	}

	// Redirect root to path prefix (only if prefix is not empty)
	if cfg.Server.PathPrefix != "" && cfg.Server.PathPrefix != "/" {
		r.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusFound, cfg.Server.PathPrefix+"/")
		})
	}

	return r
}
