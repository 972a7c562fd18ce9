package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rental_admin/internal/apiclient"
	"rental_admin/internal/events"
	"rental_admin/internal/models"
	"rental_admin/internal/screens"
)

var bookingResource = resource[models.Booking]{
	screen: screens.BookingScreen,
	label:  "Booking",
	list: func(ctx context.Context, api *apiclient.Client) ([]models.Booking, error) {
		return api.ListBookings(ctx)
	},
	detail: func(ctx context.Context, api *apiclient.Client, id string) (models.Booking, error) {
		return api.GetBooking(ctx, id)
	},
	remove: func(ctx context.Context, api *apiclient.Client, id string) error {
		return api.DeleteBooking(ctx, id)
	},
	enrich: true,
}

type bookingInput struct {
	Status        string `json:"status" binding:"required,oneof=pending confirmed active completed cancelled"`
	PaymentStatus string `json:"paymentStatus" binding:"required,oneof=Paid Pending"`
}

func (h *Handler) ListBookings(c *gin.Context) { serveList(h, c, bookingResource) }
func (h *Handler) ExportBookings(c *gin.Context) { serveExport(h, c, bookingResource) }
func (h *Handler) GetBooking(c *gin.Context) { serveDetail(h, c, bookingResource) }
func (h *Handler) DeleteBooking(c *gin.Context) { serveDelete(h, c, bookingResource) }

// UpdateBooking sets the booking status and then the payment status. The API
// offers no way to change both atomically, so when the second call fails the
// list is refetched to show what the server actually holds and the response
// reports the partial update.
func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := objectIDParam(c)
	if !ok {
		return
	}
	var input bookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking input: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	api := h.client(c)
	v := bookingResource.view(h, c)
	match := bookingResource.screen.Matches(id)

	if err := api.UpdateBookingStatus(ctx, id, input.Status); err != nil {
		respondError(c, err, "Failed to update booking status")
		return
	}

	if err := api.UpdatePaymentStatus(ctx, id, input.PaymentStatus); err != nil {
		logrus.WithError(err).WithField("booking_id", id).Error("Booking status saved but payment status update failed")
		if rerr := bookingResource.refetch(h, c, v); rerr != nil {
			logrus.WithError(rerr).WithField("booking_id", id).Warn("Booking list refresh failed, patching status only")
			v.Patch(match, func(b models.Booking) models.Booking {
				b.Status = input.Status
				return b
			})
		}
		h.publish(c, screens.Bookings, events.ActionUpdated, id)

		msg := "Failed to update payment status"
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
		body := gin.H{
			"error":   msg,
			"partial": true,
			"applied": []string{"status"},
			"failed":  []string{"paymentStatus"},
		}
		if item, found := v.Find(match); found {
			body["item"] = bookingResource.screen.Rows([]models.Booking{item})[0]
		}
		c.JSON(statusFor(err), body)
		return
	}

	if err := bookingResource.refetch(h, c, v); err != nil {
		logrus.WithError(err).WithField("booking_id", id).Warn("Booking list refresh failed, patching row locally")
		v.Patch(match, func(b models.Booking) models.Booking {
			b.Status = input.Status
			b.PaymentStatus = input.PaymentStatus
			return b
		})
	}
	h.publish(c, screens.Bookings, events.ActionUpdated, id)
	respondRow(c, bookingResource, v, id, "Booking updated successfully")
}
