package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"rental_admin/internal/models"
)

func idPath(format, id string) string {
	return fmt.Sprintf(format, url.PathEscape(id))
}

// LoginResult is the body of POST /admin/login.
type LoginResult struct {
	Admin models.AdminProfile `json:"admin"`
	Token string              `json:"token"`
}

func (c *Client) Login(ctx context.Context, mobile, password string) (LoginResult, error) {
	payload := map[string]string{"mobile": mobile}
	if password != "" {
		payload["password"] = password
	}
	data, err := c.doJSON(ctx, "admin.login", http.MethodPost, "/admin/login", payload)
	if err != nil {
		return LoginResult{}, err
	}
	var res LoginResult
	if err := json.Unmarshal(data, &res); err != nil {
		return LoginResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if res.Token == "" {
		return LoginResult{}, fmt.Errorf("%w: login response has no token", ErrMalformedResponse)
	}
	return res, nil
}

// --- admin profile ---

func (c *Client) GetAdminProfile(ctx context.Context, id string) (models.AdminProfile, error) {
	return getOne[models.AdminProfile](ctx, c, "admin.profile", idPath("/admin/profileadmin/%s", id), "admin")
}

// AdminUpdate is the settings form. Password is omitted when empty.
type AdminUpdate struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Mobile          string `json:"mobile"`
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

func (c *Client) UpdateAdminProfile(ctx context.Context, id string, in AdminUpdate) error {
	_, err := c.doJSON(ctx, "admin.update", http.MethodPut, idPath("/admin/updateadmin/%s", id), in)
	return err
}

// --- users ---

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	return getList[models.User](ctx, c, "users.list", "/admin/allusers", "users")
}

func (c *Client) GetUser(ctx context.Context, id string) (models.User, error) {
	return getOne[models.User](ctx, c, "users.get", idPath("/users/get-user/%s", id), "user")
}

type UserUpdate struct {
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Mobile       string            `json:"mobile"`
	ProfileImage string            `json:"profileImage,omitempty"`
	Documents    *models.Documents `json:"documents,omitempty"`
}

func (c *Client) UpdateUser(ctx context.Context, id string, in UserUpdate) error {
	_, err := c.doJSON(ctx, "users.update", http.MethodPut, idPath("/admin/updateuser/%s", id), in)
	return err
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.doJSON(ctx, "users.delete", http.MethodDelete, idPath("/admin/deleteuser/%s", id), nil)
	return err
}

// --- staff ---

func (c *Client) ListStaff(ctx context.Context) ([]models.Staff, error) {
	return getList[models.Staff](ctx, c, "staff.list", "/admin/getallstaffs", "staff")
}

type StaffInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
	Address      string `json:"address"`
	ProfileImage string `json:"profileImage"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	CreatedBy    string `json:"createdBy"`
}

func (c *Client) AddStaff(ctx context.Context, in StaffInput) error {
	_, err := c.doJSON(ctx, "staff.add", http.MethodPost, "/admin/addstaff", in)
	return err
}

func (c *Client) UpdateStaff(ctx context.Context, id string, in StaffInput) error {
	_, err := c.doJSON(ctx, "staff.update", http.MethodPut, idPath("/admin/updatestaff/%s", id), in)
	return err
}

func (c *Client) DeleteStaff(ctx context.Context, id string) error {
	_, err := c.doJSON(ctx, "staff.delete", http.MethodDelete, idPath("/admin/deletestaff/%s", id), nil)
	return err
}

// --- vehicles ---

func (c *Client) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return getList[models.Vehicle](ctx, c, "cars.list", "/car/get-cars", "cars")
}

func (c *Client) GetVehicle(ctx context.Context, id string) (models.Vehicle, error) {
	return getOne[models.Vehicle](ctx, c, "cars.get", idPath("/car/getcar/%s", id), "car")
}

// AddVehicle posts the vehicle form with carImage and carDocs file parts.
func (c *Client) AddVehicle(ctx context.Context, form Form) error {
	_, err := c.doForm(ctx, "cars.add", http.MethodPost, "/car/add-cars", form)
	return err
}

func (c *Client) UpdateVehicle(ctx context.Context, id string, form Form) error {
	_, err := c.doForm(ctx, "cars.update", http.MethodPut, idPath("/car/updatecar/%s", id), form)
	return err
}

func (c *Client) DeleteVehicle(ctx context.Context, id string) error {
	_, err := c.doJSON(ctx, "cars.delete", http.MethodDelete, idPath("/car/deletecar/%s", id), nil)
	return err
}

// --- bookings ---

func (c *Client) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return getList[models.Booking](ctx, c, "bookings.list", "/staff/allbookings", "bookings")
}

func (c *Client) GetBooking(ctx context.Context, id string) (models.Booking, error) {
	return getOne[models.Booking](ctx, c, "bookings.get", idPath("/staff/singlebooking/%s", id), "booking")
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id, status string) error {
	_, err := c.doJSON(ctx, "bookings.status", http.MethodPut, idPath("/admin/statusbookings/%s", id),
		map[string]string{"status": status})
	return err
}

func (c *Client) UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error {
	_, err := c.doJSON(ctx, "bookings.payment", http.MethodPut, idPath("/admin/payment-status/%s", id),
		map[string]string{"paymentStatus": paymentStatus})
	return err
}

func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	_, err := c.doJSON(ctx, "bookings.delete", http.MethodDelete, idPath("/admin/deletebooking/%s", id), nil)
	return err
}

// --- banners ---

func (c *Client) ListBanners(ctx context.Context) ([]models.Banner, error) {
	return getList[models.Banner](ctx, c, "banners.list", "/car/allbanner", "banners")
}

func (c *Client) CreateBanner(ctx context.Context, form Form) error {
	_, err := c.doForm(ctx, "banners.create", http.MethodPost, "/car/bannercreate", form)
	return err
}

func (c *Client) UpdateBanner(ctx context.Context, id string, form Form) error {
	_, err := c.doForm(ctx, "banners.update", http.MethodPut, idPath("/car/updatebanner/%s", id), form)
	return err
}

func (c *Client) DeleteBanner(ctx context.Context, id string) error {
	_, err := c.doJSON(ctx, "banners.delete", http.MethodDelete, idPath("/car/deletebanner/%s", id), nil)
	return err
}

// --- notifications ---

func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	return getList[models.Notification](ctx, c, "notifications.list", "/admin/allnotifications", "notifications")
}

func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	_, err := c.doJSON(ctx, "notifications.delete", http.MethodDelete, idPath("/admin/deletenotification/%s", id), nil)
	return err
}
