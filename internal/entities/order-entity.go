package entities

import "time"

// Order statuses. Transitions are driven by services.OrderLifecycle; an
// administrator may force any of them at any time.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Payment axis, independent from the order status.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

var OrderStatuses = map[string]bool{
	OrderStatusPending:    true,
	OrderStatusProcessing: true,
	OrderStatusCompleted:  true,
	OrderStatusCancelled:  true,
}

var PaymentStatuses = map[string]bool{
	PaymentStatusUnpaid: true,
	PaymentStatusPaid:   true,
}

// Order is one purchased tuning-service instance. ServiceName and Price are
// snapshots of the catalog entry at order time; later catalog edits must not
// change them.
type Order struct {
	ID              string        `json:"id"`
	OrderNumber     string        `json:"order_number"`
	UserID          string        `json:"user_id"`
	ServiceID       string        `json:"service_id"`
	ServiceName     string        `json:"service_name"`
	Price           float64       `json:"price"`
	Status          string        `json:"status"`
	PaymentStatus   string        `json:"payment_status"`
	Immatriculation string        `json:"immatriculation,omitempty"`
	ClientNotes     string        `json:"client_notes,omitempty"`
	AdminNotes      string        `json:"admin_notes,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	CompletedAt     *time.Time    `json:"completed_at"`
	CancelledAt     *time.Time    `json:"cancelled_at"`
	Files           []FileVersion `json:"files"`

	// RowVersion backs the optimistic-concurrency check on every update.
	// It is not part of the wire format.
	RowVersion int64 `json:"-"`
}

// IsTerminal reports whether the order left the active pipeline.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}
