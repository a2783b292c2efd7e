package dto

import "tuning-portal/internal/entities"

type CreateOrderDTO struct {
	ServiceID string `json:"service_id" validate:"required"`
}

type UpdateOrderStatusDTO struct {
	Status        string `json:"status" validate:"required"`
	AdminNotes    string `json:"admin_notes"`
	PaymentStatus string `json:"payment_status"`
}

// UploadResultDTO is the response body of both upload endpoints.
type UploadResultDTO struct {
	FileID      string `json:"file_id"`
	Filename    string `json:"filename"`
	VersionType string `json:"version_type"`
	Notes       string `json:"notes,omitempty"`
}

// ClientSummaryDTO enriches admin order listings with who ordered.
type ClientSummaryDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
}

type AdminOrderDTO struct {
	entities.Order
	Client *ClientSummaryDTO `json:"client,omitempty"`
}
