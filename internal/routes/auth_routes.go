package routes

import (
	"github.com/gin-gonic/gin"

	"rental_admin/internal/controllers"
)

func AuthRoutes(r *gin.Engine, h *controllers.Handler, requireSession gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.GET("/me", requireSession, h.Me)
		auth.POST("/logout", requireSession, h.Logout)
	}
}
