package routes

import (
	"net/http"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"rental_admin/internal/controllers"
)

// SetupRouter wires every route of the console. requireSession guards all
// routes except login and the operational endpoints.
func SetupRouter(h *controllers.Handler, requireSession gin.HandlerFunc, metrics http.Handler) *gin.Engine {
	r := gin.New()

	// Recovery middleware
	r.Use(gin.Recovery())

	// Request logging middleware
	r.Use(ginlog.SetLogger(
		ginlog.WithSkipPath([]string{"/healthz", "/metrics"}),
		ginlog.WithUTC(true),
	))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics))

	AuthRoutes(r, h, requireSession)
	AdminRoutes(r, h, requireSession)
	VehicleRoutes(r, h, requireSession)
	WebSocketRoutes(r, h, requireSession)

	return r
}
