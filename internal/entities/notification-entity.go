package entities

import "time"

const (
	NotificationNewOrder   = "new_order"
	NotificationNewFile    = "new_file"
	NotificationSavRequest = "sav_request"
	NotificationNewMessage = "new_message"
)

// Notification is one routed domain event. UserID set means it targets that
// client; UserID nil means it is visible to all staff.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	OrderID   *string   `json:"order_id,omitempty"`
	UserID    *string   `json:"user_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
