package models

// Staff roles and statuses.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"

	StaffActive   = "active"
	StaffInactive = "inactive"
)

type Staff struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
	Address      string `json:"address,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	Role         string `json:"role"`
	Status       string `json:"status"`
}
