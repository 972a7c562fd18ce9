package models

// Banner is a set of promotional images shown in the customer app.
type Banner struct {
	ID        string   `json:"_id"`
	Images    []string `json:"images"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

// Notification is a read-only system message.
type Notification struct {
	ID        string `json:"_id"`
	Message   string `json:"message"`
	Type      string `json:"type,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}
