package controllers

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"rental_admin/internal/apiclient"
	"rental_admin/internal/events"
	"rental_admin/internal/listing"
	"rental_admin/internal/metrics"
	"rental_admin/internal/middleware"
	"rental_admin/internal/session"
)

// Handler serves the admin console API on behalf of logged-in admins.
type Handler struct {
	api         *apiclient.Client
	sessions    *session.Manager
	tokens      *middleware.TokenIssuer
	views       *listing.Registry
	hub         *events.Hub
	metrics     *metrics.Metrics
	exportLimit int
}

type Deps struct {
	API         *apiclient.Client
	Sessions    *session.Manager
	Tokens      *middleware.TokenIssuer
	Views       *listing.Registry
	Hub         *events.Hub
	Metrics     *metrics.Metrics
	ExportLimit int
}

func NewHandler(d Deps) *Handler {
	if d.Views == nil {
		d.Views = listing.NewRegistry()
	}
	if d.ExportLimit < 1 {
		d.ExportLimit = 1
	}
	return &Handler{
		api:         d.API,
		sessions:    d.Sessions,
		tokens:      d.Tokens,
		views:       d.Views,
		hub:         d.Hub,
		metrics:     d.Metrics,
		exportLimit: d.ExportLimit,
	}
}

// client returns the rental API client authenticated as the session's admin.
func (h *Handler) client(c *gin.Context) *apiclient.Client {
	s, _ := middleware.CurrentSession(c)
	return h.api.WithToken(s.Token)
}

func (h *Handler) publish(c *gin.Context, screen, action, id string) {
	s, _ := middleware.CurrentSession(c)
	h.hub.Publish(events.Event{AdminID: s.AdminID, Screen: screen, Action: action, ID: id})
}

// statusFor maps an upstream failure onto the status the console returns.
func statusFor(err error) int {
	var apiErr *apiclient.APIError
	var netErr net.Error
	switch {
	case errors.As(err, &apiErr):
		switch apiErr.Status {
		case http.StatusNotFound, http.StatusUnauthorized:
			return apiErr.Status
		}
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// respondError logs err and answers with the upstream message when there is
// one, otherwise with msg.
func respondError(c *gin.Context, err error, msg string) {
	status := statusFor(err)
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		msg = apiErr.Message
	}
	logrus.WithError(err).WithFields(logrus.Fields{
		"path":   c.FullPath(),
		"status": status,
	}).Error(msg)
	c.JSON(status, gin.H{"error": msg})
}

// objectIDParam reads and validates the :id path parameter. It writes a 400
// and returns false when the id is not a 24-hex object id.
func objectIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return "", false
	}
	return id, true
}

// confirmed enforces the explicit delete confirmation. It writes a 428 and
// returns false when ?confirm=true is missing.
func confirmed(c *gin.Context) bool {
	if cast.ToBool(c.Query("confirm")) {
		return true
	}
	c.JSON(http.StatusPreconditionRequired, gin.H{"error": "deletion must be confirmed with confirm=true"})
	return false
}
