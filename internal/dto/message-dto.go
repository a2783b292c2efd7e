package dto

// CreateMessageDTO carries a chat message from a client. The transcript
// itself is stored elsewhere; this backend only routes the notification.
type CreateMessageDTO struct {
	Message string `json:"message" validate:"required"`
}
