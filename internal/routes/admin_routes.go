package routes

import (
	"github.com/gin-gonic/gin"

	"rental_admin/internal/controllers"
)

func AdminRoutes(r *gin.Engine, h *controllers.Handler, requireSession gin.HandlerFunc) {
	admin := r.Group("/admin")
	admin.Use(requireSession)
	{
		admin.GET("/dashboard", h.Dashboard)

		admin.GET("/users", h.ListUsers)
		admin.GET("/users/export", h.ExportUsers)
		admin.GET("/users/:id", h.GetUser)
		admin.PUT("/users/:id", h.UpdateUser)
		admin.DELETE("/users/:id", h.DeleteUser)

		admin.GET("/staff", h.ListStaff)
		admin.GET("/staff/export", h.ExportStaff)
		admin.POST("/staff", h.CreateStaff)
		admin.GET("/staff/:id", h.GetStaff)
		admin.PUT("/staff/:id", h.UpdateStaff)
		admin.DELETE("/staff/:id", h.DeleteStaff)

		admin.GET("/bookings", h.ListBookings)
		admin.GET("/bookings/export", h.ExportBookings)
		admin.GET("/bookings/:id", h.GetBooking)
		admin.PUT("/bookings/:id", h.UpdateBooking)
		admin.DELETE("/bookings/:id", h.DeleteBooking)

		admin.GET("/banners", h.ListBanners)
		admin.POST("/banners", h.CreateBanner)
		admin.PUT("/banners/:id", h.UpdateBanner)
		admin.DELETE("/banners/:id", h.DeleteBanner)

		admin.GET("/notifications", h.ListNotifications)
		admin.DELETE("/notifications/:id", h.DeleteNotification)

		admin.GET("/settings/profile", h.GetProfile)
		admin.PUT("/settings/profile", h.UpdateProfile)
	}
}
