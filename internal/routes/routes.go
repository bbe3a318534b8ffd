// Package routes wires the HTTP handlers onto the router.
package routes

import (
	"github.com/fajarjulyana/VideoStreamPro/internal/handlers"

	"github.com/gin-gonic/gin"
)

// AppHandlers bundles every route-owning handler.
type AppHandlers struct {
	Video   *handlers.VideoHandler
	Comment *handlers.CommentHandler
	Stream  *handlers.StreamHandler
}

// RegisterRoutes mounts all handlers under /api.
func RegisterRoutes(router *gin.Engine, h *AppHandlers) {
	api := router.Group("/api")
	{
		h.Video.RegisterRoutes(api)
		h.Comment.RegisterRoutes(api)
		h.Stream.RegisterRoutes(api)
	}
}
