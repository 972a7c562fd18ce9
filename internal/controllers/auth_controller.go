package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rental_admin/internal/apiclient"
	"rental_admin/internal/middleware"
	"rental_admin/internal/session"
)

type loginInput struct {
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Admin     session.Session `json:"admin"`
}

// Login authenticates against the rental API and opens a console session.
// The upstream token stays on the server; the client gets a console token.
func (h *Handler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.api.Login(c.Request.Context(), input.Mobile, input.Password)
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
			logrus.WithField("mobile", input.Mobile).Warn("Admin login rejected")
			msg := apiErr.Message
			if msg == "" {
				msg = "invalid credentials"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		respondError(c, err, "Login failed")
		return
	}

	s, err := h.sessions.Create(c.Request.Context(), session.Session{
		AdminID: res.Admin.ID,
		Mobile:  res.Admin.Mobile,
		Email:   res.Admin.Email,
		Name:    res.Admin.Name,
		Token:   res.Token,
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to create admin session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	token, err := h.tokens.Generate(s.ID, s.ExpiresAt)
	if err != nil {
		logrus.WithError(err).Error("Failed to sign session token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: token, ExpiresAt: s.ExpiresAt, Admin: s})
}

// Logout ends the session and forgets its list state.
func (h *Handler) Logout(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)
	if err := h.sessions.Destroy(c.Request.Context(), s.ID); err != nil {
		logrus.WithError(err).WithField("session_id", s.ID).Error("Failed to destroy session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) Me(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)
	c.JSON(http.StatusOK, gin.H{"admin": s})
}
