package models

import "time"

// AdminProfile is the upstream admin account.
type AdminProfile struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

// AdminSession is created on login and destroyed on logout or expiry.
// Token is the upstream API token and never leaves the server.
type AdminSession struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	AdminID   string    `gorm:"index" json:"adminId"`
	Mobile    string    `json:"mobile"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `gorm:"index" json:"expiresAt"`
}

func (AdminSession) TableName() string { return "admin_sessions" }

func (s AdminSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
