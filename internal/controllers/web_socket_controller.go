package controllers

import (
	"github.com/gin-gonic/gin"

	"rental_admin/internal/middleware"
)

// Events upgrades to a WebSocket that receives a {screen, action, id}
// message whenever the same admin changes a list from any tab.
//
// @Router /ws/events [get]
// @Param token query string true "console token"
func (h *Handler) Events(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)
	h.hub.Serve(c.Writer, c.Request, s.AdminID)
}
