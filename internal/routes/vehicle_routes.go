package routes

import (
	"github.com/gin-gonic/gin"

	"rental_admin/internal/controllers"
)

func VehicleRoutes(r *gin.Engine, h *controllers.Handler, requireSession gin.HandlerFunc) {
	vehicle := r.Group("/admin/vehicles")
	vehicle.Use(requireSession)
	{
		vehicle.GET("", h.ListVehicles)
		vehicle.GET("/export", h.ExportVehicles)
		vehicle.POST("", h.CreateVehicle)
		vehicle.GET("/:id", h.GetVehicle)
		vehicle.PUT("/:id", h.UpdateVehicle)
		vehicle.DELETE("/:id", h.DeleteVehicle)
	}
}
