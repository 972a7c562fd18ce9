package models

import "encoding/json"

// Document approval states.
const (
	DocumentPending  = "pending"
	DocumentApproved = "approved"
	DocumentRejected = "rejected"
)

// Document is one uploaded KYC document of a customer.
type Document struct {
	Status string `json:"status,omitempty"`
	URL    string `json:"url,omitempty"`
}

type Documents struct {
	AadharCard     *Document `json:"aadharCard,omitempty"`
	DrivingLicense *Document `json:"drivingLicense,omitempty"`
}

// User is a rental customer as returned by /admin/allusers and
// /users/get-user/{id}. List rows omit documents, bookings and wallet.
type User struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	Mobile            string            `json:"mobile"`
	ProfileImage      string            `json:"profileImage,omitempty"`
	Documents         *Documents        `json:"documents,omitempty"`
	MyBookings        []json.RawMessage `json:"myBookings,omitempty"`
	Wallet            []json.RawMessage `json:"wallet,omitempty"`
	TotalWalletAmount Number            `json:"totalWalletAmount,omitempty"`
}

// UnmarshalJSON fills ID from _id when the API omits the id alias.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := &struct {
		MongoID string `json:"_id"`
		*alias
	}{alias: (*alias)(u)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// AadharStatus returns the Aadhaar document status, or "" when absent.
func (u User) AadharStatus() string {
	if u.Documents == nil || u.Documents.AadharCard == nil {
		return ""
	}
	return u.Documents.AadharCard.Status
}

// LicenseStatus returns the driving licence document status, or "".
func (u User) LicenseStatus() string {
	if u.Documents == nil || u.Documents.DrivingLicense == nil {
		return ""
	}
	return u.Documents.DrivingLicense.Status
}
