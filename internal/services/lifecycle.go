package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tuning-portal/internal/entities"
	apperrors "tuning-portal/pkg/errors"
)

// OrderLifecycle owns the status machine: pending -> processing ->
// completed, with cancelled reachable from anywhere. Administrative
// overrides are never rejected; only the derived fields (terminal
// timestamps, price zeroing) carry the business semantics. completed_at and
// cancelled_at are audit marks, stamped once and never cleared.
type OrderLifecycle struct {
	now func() time.Time
}

func NewOrderLifecycle() *OrderLifecycle {
	return &OrderLifecycle{now: time.Now}
}

// NewOrder builds a pending order snapshotting the catalog entry.
func (l *OrderLifecycle) NewOrder(user *entities.User, svc *entities.Service) *entities.Order {
	id := uuid.New().String()
	now := l.now().UTC()
	return &entities.Order{
		ID:            id,
		OrderNumber:   orderNumber(now, id),
		UserID:        user.ID,
		ServiceID:     svc.ID,
		ServiceName:   svc.Name,
		Price:         svc.Price,
		Status:        entities.OrderStatusPending,
		PaymentStatus: entities.PaymentStatusUnpaid,
		CreatedAt:     now,
		Files:         []entities.FileVersion{},
	}
}

// ReceiveClientFile marks that work can start. Re-uploads while processing
// are a no-op, and a forced terminal status is left alone.
func (l *OrderLifecycle) ReceiveClientFile(o *entities.Order) {
	if o.Status == entities.OrderStatusPending {
		o.Status = entities.OrderStatusProcessing
	}
}

// ReceiveStaffDeliverable applies the effect of a staff upload: v1..v3
// complete the order, a SAV fix puts it back into processing without
// touching the completion mark.
func (l *OrderLifecycle) ReceiveStaffDeliverable(o *entities.Order, versionType string) {
	if versionType == entities.VersionTypeSav {
		o.Status = entities.OrderStatusProcessing
		return
	}
	o.Status = entities.OrderStatusCompleted
	l.stampCompleted(o)
}

// SetStatus is the unguarded administrative override.
func (l *OrderLifecycle) SetStatus(o *entities.Order, status string) error {
	if !entities.OrderStatuses[status] {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, status)
	}
	o.Status = status
	switch status {
	case entities.OrderStatusCompleted:
		l.stampCompleted(o)
	case entities.OrderStatusCancelled:
		l.stampCancelled(o)
	}
	return nil
}

// Cancel is irreversible and the only transition that mutates the price.
// Calling it on an already cancelled order changes nothing.
func (l *OrderLifecycle) Cancel(o *entities.Order) {
	o.Status = entities.OrderStatusCancelled
	o.Price = 0
	l.stampCancelled(o)
}

func (l *OrderLifecycle) stampCompleted(o *entities.Order) {
	if o.CompletedAt == nil {
		t := l.now().UTC()
		o.CompletedAt = &t
	}
}

func (l *OrderLifecycle) stampCancelled(o *entities.Order) {
	if o.CancelledAt == nil {
		t := l.now().UTC()
		o.CancelledAt = &t
	}
}

// orderNumber renders the human-readable code, e.g. DMR-20260901-3F2A9B1C.
func orderNumber(t time.Time, id string) string {
	suffix := strings.ToUpper(strings.SplitN(id, "-", 2)[0])
	return fmt.Sprintf("DMR-%s-%s", t.Format("20060102"), suffix)
}
