package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"rental_admin/internal/apiclient"
	"rental_admin/internal/models"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found passes through", &apiclient.APIError{Status: http.StatusNotFound}, http.StatusNotFound},
		{"unauthorized passes through", &apiclient.APIError{Status: http.StatusUnauthorized}, http.StatusUnauthorized},
		{"upstream 500", &apiclient.APIError{Status: http.StatusInternalServerError}, http.StatusBadGateway},
		{"upstream 400", fmt.Errorf("saving: %w", &apiclient.APIError{Status: http.StatusBadRequest}), http.StatusBadGateway},
		{"malformed", fmt.Errorf("%w: bad json", apiclient.ErrMalformedResponse), http.StatusBadGateway},
		{"deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"net timeout", fmt.Errorf("get: %w", timeoutErr{}), http.StatusGatewayTimeout},
		{"transport", errors.New("connection refused"), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestBuildDashboard(t *testing.T) {
	bookings := make([]models.Booking, 12)
	for i := range bookings {
		bookings[i] = models.Booking{ID: fmt.Sprintf("%024x", i), Status: models.BookingPending, PaymentStatus: "pending"}
	}
	bookings[0].Status = models.BookingCompleted
	bookings[0].PaymentStatus = "PAID"
	bookings[1].PaymentStatus = ""

	d := buildDashboard(
		[]models.User{{ID: "u1"}, {ID: "u2"}},
		[]models.Vehicle{{RunningStatus: models.RunningAvailable}, {}},
		bookings,
		nil,
		9,
	)

	assert.Equal(t, 2, d.Counts.Users)
	assert.Equal(t, 2, d.Counts.Vehicles)
	assert.Equal(t, 12, d.Counts.Bookings)
	assert.Equal(t, 0, d.Counts.Staff)
	assert.Equal(t, 1, d.Payments.Paid)
	assert.Equal(t, 10, d.Payments.Pending)
	assert.Equal(t, map[string]int{"pending": 11, "completed": 1}, d.BookingStatus)
	assert.Equal(t, map[string]int{"Available": 1}, d.RunningStatus)
	assert.Equal(t, []int{2, 2, 12}, d.Charts.Overview.Data)
	assert.Equal(t, []int{1, 10}, d.Charts.Payments.Data)

	// Only the first ten bookings are recent; page 9 clamps to the last page.
	assert.Equal(t, 2, d.Recent.TotalPages)
	assert.Equal(t, 2, d.Recent.Page)
	assert.Len(t, d.Recent.Items, 5)
}

func TestBuildDashboard_Empty(t *testing.T) {
	d := buildDashboard(nil, nil, nil, nil, 1)
	assert.Zero(t, d.Counts.Bookings)
	assert.Empty(t, d.Recent.Items)
	assert.Equal(t, 1, d.Recent.Page)
}
