package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api", 5*time.Second)
}

func TestListUsers_UnwrapsEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/allusers", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = io.WriteString(w, `{"users":[{"_id":"u1","name":"Asha"},{"id":"u2","name":"Ravi"}]}`)
	})

	users, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].ID)
	assert.Equal(t, "u2", users[1].ID)
	assert.Equal(t, "Ravi", users[1].Name)
}

func TestList_MissingEnvelopeKeyIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	staff, err := c.ListStaff(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, staff)
	assert.Empty(t, staff)
}

func TestList_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[1,2,3]`)
	})

	_, err := c.ListVehicles(context.Background())
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestList_BadNumberFallsBackToZero(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"cars":[{"_id":"c1","seats":5,"pricePerDay":"2500"},{"_id":"c2","seats":"7+1","pricePerDay":"n/a"}]}`)
	})

	cars, err := c.ListVehicles(context.Background())
	require.NoError(t, err)
	require.Len(t, cars, 2)
	assert.Equal(t, 5.0, cars[0].Seats.Float())
	assert.Equal(t, 2500.0, cars[0].PricePerDay.Float())
	assert.Zero(t, cars[1].Seats.Float())
	assert.Zero(t, cars[1].PricePerDay.Float())
}

func TestGetOne_MissingKeyIsMalformed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"message":"ok"}`)
	})

	_, err := c.GetBooking(context.Background(), "65f0c0ffee0000000000b001")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestAPIError_CarriesUpstreamMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Staff not found"}`)
	})

	err := c.DeleteStaff(context.Background(), "abc")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Staff not found", apiErr.Message)
	assert.True(t, IsNotFound(err))
}

func TestAPIError_FallsBackToStatusText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.DeleteBanner(context.Background(), "abc")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}

func TestWithToken_SetsBearerHeader(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `{"notifications":[]}`)
	})

	_, err := c.WithToken("tok-123").ListNotifications(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", got)

	_, err = c.ListNotifications(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "9876543210", body["mobile"])
		assert.Equal(t, "secret", body["password"])
		_, _ = io.WriteString(w, `{"admin":{"_id":"a1","name":"Root","email":"root@example.com","mobile":"9876543210"},"token":"up-tok"}`)
	})

	res, err := c.Login(context.Background(), "9876543210", "secret")
	require.NoError(t, err)
	assert.Equal(t, "a1", res.Admin.ID)
	assert.Equal(t, "up-tok", res.Token)
}

func TestUpdateBookingStatusAndPayment(t *testing.T) {
	var calls []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, r.Method+" "+r.URL.Path+" "+strings.TrimSpace(string(body)))
		_, _ = io.WriteString(w, `{}`)
	})

	require.NoError(t, c.UpdateBookingStatus(context.Background(), "b1", "confirmed"))
	require.NoError(t, c.UpdatePaymentStatus(context.Background(), "b1", "Paid"))
	assert.Equal(t, []string{
		`PUT /api/admin/statusbookings/b1 {"status":"confirmed"}`,
		`PUT /api/admin/payment-status/b1 {"paymentStatus":"Paid"}`,
	}, calls)
}

func TestMultipartUpload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/car/add-cars", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Swift", r.FormValue("carName"))
		files := r.MultipartForm.File["carImage"]
		require.Len(t, files, 1)
		assert.Equal(t, "front.jpg", files[0].Filename)
		_, _ = io.WriteString(w, `{}`)
	})

	err := c.AddVehicle(context.Background(), Form{
		Fields: map[string][]string{"carName": {"Swift"}},
		Files:  []FormFile{{Field: "carImage", Filename: "front.jpg", Content: strings.NewReader("jpeg")}},
	})
	require.NoError(t, err)
}

func TestContextCancellation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.ListBookings(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimitRespectsContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"banners":[]}`)
	})
	limited := New(c.baseURL, time.Second, WithRateLimit(0.001))

	// First call consumes the burst token, the second would wait ~17 minutes.
	_, err := limited.ListBanners(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = limited.ListBanners(ctx)
	assert.Error(t, err)
}
