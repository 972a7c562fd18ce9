package models

import (
	"bytes"
	"encoding/json"
)

// Booking statuses and payment statuses. The two are independent.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingActive    = "active"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"

	PaymentPaid    = "Paid"
	PaymentPending = "Pending"
)

// UserRef is a booking's userId: either a bare id or the populated user.
type UserRef struct {
	ID     string `json:"_id,omitempty"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Mobile string `json:"mobile,omitempty"`
}

func (r *UserRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	type alias UserRef
	return json.Unmarshal(data, (*alias)(r))
}

// CarRef is the vehicle snapshot embedded in a booking, or a bare id.
type CarRef struct {
	ID            string   `json:"_id,omitempty"`
	CarName       string   `json:"carName,omitempty"`
	Model         string   `json:"model,omitempty"`
	VehicleNumber string   `json:"vehicleNumber,omitempty"`
	PricePerHour  Number   `json:"pricePerHour,omitempty"`
	PricePerDay   Number   `json:"pricePerDay,omitempty"`
	CarImage      []string `json:"carImage,omitempty"`
}

func (r *CarRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	type alias CarRef
	return json.Unmarshal(data, (*alias)(r))
}

type Booking struct {
	ID                    string   `json:"_id"`
	User                  UserRef  `json:"userId"`
	Car                   CarRef   `json:"car"`
	RentalStartDate       string   `json:"rentalStartDate,omitempty"`
	RentalEndDate         string   `json:"rentalEndDate,omitempty"`
	From                  string   `json:"from,omitempty"`
	To                    string   `json:"to,omitempty"`
	TotalPrice            Number   `json:"totalPrice,omitempty"`
	PickupLocation        string   `json:"pickupLocation,omitempty"`
	Status                string   `json:"status"`
	PaymentStatus         string   `json:"paymentStatus"`
	OTP                   Text     `json:"otp,omitempty"`
	ReturnOTP             Text     `json:"returnOTP,omitempty"`
	TransactionID         string   `json:"transactionId,omitempty"`
	DepositeProof         []string `json:"depositeProof,omitempty"`
	CarImagesBeforePickup []string `json:"carImagesBeforePickup,omitempty"`
	CarReturnImages       []string `json:"carReturnImages,omitempty"`
}
