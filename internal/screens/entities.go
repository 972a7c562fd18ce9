package screens

import (
	"encoding/json"
	"strings"
	"time"

	"rental_admin/internal/export"
	"rental_admin/internal/listing"
	"rental_admin/internal/models"
)

func num(n models.Number) string { return n.String() }

// at parses an API timestamp; unparseable values sort as the zero time.
func at(s string) time.Time {
	t, _ := models.ParseTime(s)
	return t
}

// --- users ---

type UserRow struct {
	models.User
	AadharBadge  string `json:"aadharBadge"`
	LicenseBadge string `json:"licenseBadge"`
}

var UserScreen = Screen[models.User]{
	Name: Users,
	List: listing.Config[models.User]{
		PageSize:     10,
		DefaultField: "name",
		Filters: map[string]listing.Extractor[models.User]{
			"name":   func(u models.User) string { return u.Name },
			"email":  func(u models.User) string { return u.Email },
			"mobile": func(u models.User) string { return u.Mobile },
		},
		Sorts: map[string]listing.Compare[models.User]{
			"name":  listing.ByString(func(u models.User) string { return u.Name }),
			"email": listing.ByString(func(u models.User) string { return u.Email }),
		},
	},
	Sheet: &export.Sheet[models.User]{
		Name:        "Users",
		File:        "Users.xlsx",
		Placeholder: "N/A",
		Columns: []export.Column[models.User]{
			{Header: "ID", Width: 26, Value: func(u models.User) string { return u.ID }},
			{Header: "Name", Width: 25, Value: func(u models.User) string { return u.Name }},
			{Header: "Email", Width: 30, Value: func(u models.User) string { return u.Email }},
			{Header: "Mobile", Width: 15, Value: func(u models.User) string { return u.Mobile }},
			{Header: "Aadhar Status", Width: 15, Value: models.User.AadharStatus},
			{Header: "License Status", Width: 15, Value: models.User.LicenseStatus},
			{Header: "Total Bookings", Width: 15, Value: func(u models.User) string {
				if len(u.MyBookings) == 0 {
					return ""
				}
				return models.Number(len(u.MyBookings)).String()
			}},
			{Header: "Wallet Amount", Width: 15, Value: func(u models.User) string { return num(u.TotalWalletAmount) }},
			{Header: "Profile Image", Width: 40, Value: func(u models.User) string { return u.ProfileImage }},
		},
	},
	Key: func(u models.User) string { return u.ID },
	Present: func(u models.User) any {
		return UserRow{
			User:         u,
			AadharBadge:  models.DocumentBadge(u.AadharStatus()),
			LicenseBadge: models.DocumentBadge(u.LicenseStatus()),
		}
	},
}

// --- staff ---

type StaffRow struct {
	models.Staff
	RoleBadge   string `json:"roleBadge"`
	StatusBadge string `json:"statusBadge"`
}

var StaffScreen = Screen[models.Staff]{
	Name: Staff,
	List: listing.Config[models.Staff]{
		PageSize:     10,
		DefaultField: "name",
		Filters: map[string]listing.Extractor[models.Staff]{
			"name":   func(s models.Staff) string { return s.Name },
			"email":  func(s models.Staff) string { return s.Email },
			"mobile": func(s models.Staff) string { return s.Mobile },
			"role":   func(s models.Staff) string { return s.Role },
			"status": func(s models.Staff) string { return s.Status },
		},
		Sorts: map[string]listing.Compare[models.Staff]{
			"name":   listing.ByString(func(s models.Staff) string { return s.Name }),
			"role":   listing.ByString(func(s models.Staff) string { return s.Role }),
			"status": listing.ByString(func(s models.Staff) string { return s.Status }),
		},
	},
	Sheet: &export.Sheet[models.Staff]{
		Name:        "StaffList",
		File:        "StaffList.xlsx",
		Placeholder: "-",
		Columns: []export.Column[models.Staff]{
			{Header: "ID", Width: 20, Value: func(s models.Staff) string { return s.ID }},
			{Header: "Name", Width: 25, Value: func(s models.Staff) string { return s.Name }},
			{Header: "Email", Width: 30, Value: func(s models.Staff) string { return s.Email }},
			{Header: "Mobile", Width: 15, Value: func(s models.Staff) string { return s.Mobile }},
			{Header: "Address", Width: 30, Value: func(s models.Staff) string { return s.Address }},
			{Header: "Role", Width: 15, Value: func(s models.Staff) string { return s.Role }},
			{Header: "Status", Width: 15, Value: func(s models.Staff) string { return s.Status }},
			{Header: "Profile Image", Width: 40, Value: func(s models.Staff) string { return s.ProfileImage }},
		},
	},
	Key: func(s models.Staff) string { return s.ID },
	Present: func(s models.Staff) any {
		return StaffRow{
			Staff:       s,
			RoleBadge:   models.StaffRoleBadge(s.Role),
			StatusBadge: models.StaffStatusBadge(s.Status),
		}
	},
}

// --- vehicles ---

type VehicleRow struct {
	models.Vehicle
	StatusBadge        string          `json:"statusBadge"`
	RunningStatusBadge string          `json:"runningStatusBadge"`
	BranchLatLng       string          `json:"branchLatLng,omitempty"`
	BranchLocation     json.RawMessage `json:"branchLocation,omitempty"`
}

var VehicleScreen = Screen[models.Vehicle]{
	Name: Vehicles,
	List: listing.Config[models.Vehicle]{
		PageSize:     10,
		DefaultField: "carName",
		Filters: map[string]listing.Extractor[models.Vehicle]{
			"carName":       func(v models.Vehicle) string { return v.CarName },
			"model":         func(v models.Vehicle) string { return v.Model },
			"vehicleNumber": func(v models.Vehicle) string { return v.VehicleNumber },
			"location":      func(v models.Vehicle) string { return v.Location },
			"type":          func(v models.Vehicle) string { return v.Type },
			"fuel":          func(v models.Vehicle) string { return v.Fuel },
			"status":        func(v models.Vehicle) string { return v.Status },
			"runningStatus": func(v models.Vehicle) string { return v.RunningStatus },
		},
		Sorts: map[string]listing.Compare[models.Vehicle]{
			"carName":      listing.ByString(func(v models.Vehicle) string { return v.CarName }),
			"year":         listing.ByNumber(func(v models.Vehicle) float64 { return v.Year.Float() }),
			"pricePerHour": listing.ByNumber(func(v models.Vehicle) float64 { return v.PricePerHour.Float() }),
			"pricePerDay":  listing.ByNumber(func(v models.Vehicle) float64 { return v.PricePerDay.Float() }),
			"seats":        listing.ByNumber(func(v models.Vehicle) float64 { return v.Seats.Float() }),
		},
	},
	Sheet: &export.Sheet[models.Vehicle]{
		Name:        "Vehicles",
		File:        "Vehicles.xlsx",
		Placeholder: "-",
		Columns: []export.Column[models.Vehicle]{
			{Header: "ID", Width: 26, Value: func(v models.Vehicle) string { return v.ID }},
			{Header: "Car Name", Width: 20, Value: func(v models.Vehicle) string { return v.CarName }},
			{Header: "Model", Width: 15, Value: func(v models.Vehicle) string { return v.Model }},
			{Header: "Year", Width: 8, Value: func(v models.Vehicle) string { return num(v.Year) }},
			{Header: "Vehicle Number", Width: 18, Value: func(v models.Vehicle) string { return v.VehicleNumber }},
			{Header: "Price/Hour", Width: 12, Value: func(v models.Vehicle) string { return num(v.PricePerHour) }},
			{Header: "Price/Day", Width: 12, Value: func(v models.Vehicle) string { return num(v.PricePerDay) }},
			{Header: "Fuel", Width: 10, Value: func(v models.Vehicle) string { return v.Fuel }},
			{Header: "Seats", Width: 8, Value: func(v models.Vehicle) string { return num(v.Seats) }},
			{Header: "Type", Width: 12, Value: func(v models.Vehicle) string { return v.Type }},
			{Header: "Location", Width: 20, Value: func(v models.Vehicle) string { return v.Location }},
			{Header: "Branch", Width: 20, Value: models.Vehicle.BranchName},
			{Header: "Branch Coordinates", Width: 24, Value: models.Vehicle.BranchLatLng},
			{Header: "Status", Width: 12, Value: func(v models.Vehicle) string { return v.Status }},
			{Header: "Running Status", Width: 15, Value: func(v models.Vehicle) string { return v.RunningStatus }},
		},
	},
	Key: func(v models.Vehicle) string { return v.ID },
	Present: func(v models.Vehicle) any {
		row := VehicleRow{
			Vehicle:            v,
			StatusBadge:        models.VehicleStatusBadge(v.Status),
			RunningStatusBadge: models.RunningStatusBadge(v.RunningStatus),
			BranchLatLng:       v.BranchLatLng(),
		}
		if loc, err := v.BranchGeoJSON(); err == nil && loc != "" {
			row.BranchLocation = json.RawMessage(loc)
		}
		return row
	},
}

// --- bookings ---

type BookingRow struct {
	models.Booking
	StatusBadge        string `json:"statusBadge"`
	PaymentStatusBadge string `json:"paymentStatusBadge"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
}

func bookingUser(b models.Booking) string { return b.User.Name }
func bookingCar(b models.Booking) string  { return b.Car.CarName }
func bookingDate(b models.Booking) string { return export.FormatDate(b.RentalStartDate) }

var BookingScreen = Screen[models.Booking]{
	Name: Bookings,
	List: listing.Config[models.Booking]{
		PageSize:     10,
		DefaultField: "user",
		Filters: map[string]listing.Extractor[models.Booking]{
			"user":           bookingUser,
			"car":            bookingCar,
			"status":         func(b models.Booking) string { return b.Status },
			"paymentStatus":  func(b models.Booking) string { return b.PaymentStatus },
			"pickupLocation": func(b models.Booking) string { return b.PickupLocation },
			"date":           bookingDate,
		},
		Sorts: map[string]listing.Compare[models.Booking]{
			"rentalStartDate": listing.ByTime(func(b models.Booking) time.Time { return at(b.RentalStartDate) }),
			"totalPrice":      listing.ByNumber(func(b models.Booking) float64 { return b.TotalPrice.Float() }),
			"status":          listing.ByString(func(b models.Booking) string { return b.Status }),
		},
	},
	Sheet: &export.Sheet[models.Booking]{
		Name:        "Bookings",
		File:        "Bookings.xlsx",
		Placeholder: "N/A",
		Columns: []export.Column[models.Booking]{
			{Header: "Booking ID", Width: 26, Value: func(b models.Booking) string { return b.ID }},
			{Header: "User Name", Width: 22, Value: bookingUser},
			{Header: "User Email", Width: 28, Value: func(b models.Booking) string { return b.User.Email }},
			{Header: "User Mobile", Width: 15, Value: func(b models.Booking) string { return b.User.Mobile }},
			{Header: "Car", Width: 20, Value: bookingCar},
			{Header: "Vehicle Number", Width: 18, Value: func(b models.Booking) string { return b.Car.VehicleNumber }},
			{Header: "Start Date", Width: 12, Value: bookingDate},
			{Header: "End Date", Width: 12, Value: func(b models.Booking) string { return export.FormatDate(b.RentalEndDate) }},
			{Header: "From", Width: 10, Value: func(b models.Booking) string { return b.From }},
			{Header: "To", Width: 10, Value: func(b models.Booking) string { return b.To }},
			{Header: "Pickup Location", Width: 25, Value: func(b models.Booking) string { return b.PickupLocation }},
			{Header: "Total Price", Width: 12, Value: func(b models.Booking) string { return num(b.TotalPrice) }},
			{Header: "Status", Width: 12, Value: func(b models.Booking) string { return b.Status }},
			{Header: "Payment Status", Width: 15, Value: func(b models.Booking) string { return b.PaymentStatus }},
			{Header: "Transaction ID", Width: 24, Value: func(b models.Booking) string { return b.TransactionID }},
			{Header: "Deposit Proof", Width: 40, Value: func(b models.Booking) string { return strings.Join(b.DepositeProof, ", ") }},
		},
	},
	Key: func(b models.Booking) string { return b.ID },
	Present: func(b models.Booking) any {
		return BookingRow{
			Booking:            b,
			StatusBadge:        models.BookingStatusBadge(b.Status),
			PaymentStatusBadge: models.PaymentStatusBadge(b.PaymentStatus),
			StartDate:          bookingDate(b),
			EndDate:            export.FormatDate(b.RentalEndDate),
		}
	},
}

// --- notifications ---

var NotificationScreen = Screen[models.Notification]{
	Name: Notifications,
	List: listing.Config[models.Notification]{
		PageSize:     10,
		DefaultField: "message",
		Filters: map[string]listing.Extractor[models.Notification]{
			"message": func(n models.Notification) string { return n.Message },
			"type":    func(n models.Notification) string { return n.Type },
		},
		Sorts: map[string]listing.Compare[models.Notification]{
			"createdAt": listing.ByTime(func(n models.Notification) time.Time { return at(n.CreatedAt) }),
		},
	},
	Key: func(n models.Notification) string { return n.ID },
}

// --- banners ---

var BannerScreen = Screen[models.Banner]{
	Name: Banners,
	List: listing.Config[models.Banner]{
		PageSize: 5,
		Sorts: map[string]listing.Compare[models.Banner]{
			"createdAt": listing.ByTime(func(b models.Banner) time.Time { return at(b.CreatedAt) }),
		},
	},
	Key: func(b models.Banner) string { return b.ID },
}
