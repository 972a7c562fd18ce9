package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rental_admin/internal/apiclient"
	"rental_admin/internal/middleware"
)

type profileInput struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Mobile          string `json:"mobile" binding:"required"`
	Password        string `json:"password" binding:"omitempty,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"eqfield=Password"`
}

// GetProfile returns the logged-in admin's upstream profile.
func (h *Handler) GetProfile(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)
	profile, err := h.client(c).GetAdminProfile(c.Request.Context(), s.AdminID)
	if err != nil {
		respondError(c, err, "Failed to fetch admin profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": profile})
}

// UpdateProfile saves the settings form. The password is only sent when
// set and is never kept in the session.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var input profileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile input: " + err.Error()})
		return
	}

	s, _ := middleware.CurrentSession(c)
	update := apiclient.AdminUpdate{
		Name:            input.Name,
		Email:           input.Email,
		Mobile:          input.Mobile,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
	}
	if err := h.client(c).UpdateAdminProfile(c.Request.Context(), s.AdminID, update); err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}

	s.Name = input.Name
	s.Email = input.Email
	s.Mobile = input.Mobile
	if err := h.sessions.Update(c.Request.Context(), s); err != nil {
		logrus.WithError(err).WithField("session_id", s.ID).Warn("Profile saved but session refresh failed")
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "admin": s})
}
