package routes

import (
	"github.com/gin-gonic/gin"

	"rental_admin/internal/controllers"
)

func WebSocketRoutes(r *gin.Engine, h *controllers.Handler, requireSession gin.HandlerFunc) {
	wsRoutes := r.Group("/ws")
	wsRoutes.Use(requireSession)
	{
		wsRoutes.GET("/events", h.Events)
	}
}
