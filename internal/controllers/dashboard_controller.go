package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"rental_admin/internal/listing"
	"rental_admin/internal/models"
	"rental_admin/internal/screens"
)

const (
	recentBookings        = 10
	recentBookingsPerPage = 5
)

type chartSeries struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

type dashboardPayload struct {
	Counts struct {
		Users    int `json:"users"`
		Vehicles int `json:"vehicles"`
		Bookings int `json:"bookings"`
		Staff    int `json:"staff"`
	} `json:"counts"`
	Payments struct {
		Paid    int `json:"paid"`
		Pending int `json:"pending"`
	} `json:"payments"`
	BookingStatus map[string]int `json:"bookingStatus"`
	RunningStatus map[string]int `json:"runningStatus"`
	Charts        struct {
		Overview chartSeries `json:"overview"`
		Payments chartSeries `json:"payments"`
	} `json:"charts"`
	Recent struct {
		Items      []any            `json:"items"`
		Page       int              `json:"page"`
		TotalPages int              `json:"totalPages"`
		Controls   listing.Controls `json:"controls"`
	} `json:"recentBookings"`
}

// Dashboard loads users, vehicles, bookings and staff concurrently. Nothing
// is rendered unless all four succeed.
func (h *Handler) Dashboard(c *gin.Context) {
	page := 1
	if raw, ok := c.GetQuery("page"); ok {
		p, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a number"})
			return
		}
		page = p
	}

	api := h.client(c)
	var (
		users    []models.User
		vehicles []models.Vehicle
		bookings []models.Booking
		staff    []models.Staff
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		users, err = api.ListUsers(ctx)
		return err
	})
	g.Go(func() (err error) {
		vehicles, err = api.ListVehicles(ctx)
		return err
	})
	g.Go(func() (err error) {
		bookings, err = api.ListBookings(ctx)
		return err
	})
	g.Go(func() (err error) {
		staff, err = api.ListStaff(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(c, err, "Failed to load dashboard data")
		return
	}

	c.JSON(http.StatusOK, buildDashboard(users, vehicles, bookings, staff, page))
}

func buildDashboard(users []models.User, vehicles []models.Vehicle, bookings []models.Booking, staff []models.Staff, page int) dashboardPayload {
	var d dashboardPayload
	d.Counts.Users = len(users)
	d.Counts.Vehicles = len(vehicles)
	d.Counts.Bookings = len(bookings)
	d.Counts.Staff = len(staff)

	d.BookingStatus = map[string]int{}
	for _, b := range bookings {
		switch strings.ToLower(b.PaymentStatus) {
		case "paid":
			d.Payments.Paid++
		case "pending":
			d.Payments.Pending++
		}
		if b.Status != "" {
			d.BookingStatus[b.Status]++
		}
	}

	d.RunningStatus = map[string]int{}
	for _, v := range vehicles {
		if v.RunningStatus != "" {
			d.RunningStatus[v.RunningStatus]++
		}
	}

	d.Charts.Overview = chartSeries{
		Labels: []string{"Users", "Vehicles", "Bookings"},
		Data:   []int{d.Counts.Users, d.Counts.Vehicles, d.Counts.Bookings},
	}
	d.Charts.Payments = chartSeries{
		Labels: []string{"Paid", "Pending"},
		Data:   []int{d.Payments.Paid, d.Payments.Pending},
	}

	recent := bookings[:min(len(bookings), recentBookings)]
	total := listing.TotalPages(len(recent), recentBookingsPerPage)
	page = listing.Clamp(page, total)
	d.Recent.Items = screens.BookingScreen.Rows(listing.Page(recent, page, recentBookingsPerPage))
	d.Recent.Page = page
	d.Recent.TotalPages = total
	d.Recent.Controls = listing.BuildControls(page, total)
	return d
}
