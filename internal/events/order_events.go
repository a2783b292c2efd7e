package events

import "tuning-portal/internal/entities"

const (
	OrderCreatedName       = "order.created"
	StaffFileDeliveredName = "order.file.delivered"
	SavRequestedName       = "order.sav.requested"
	ClientMessageSentName  = "chat.message.sent"
)

// OrderCreatedEvent fires after an order is persisted.
type OrderCreatedEvent struct {
	Order entities.Order
	Actor entities.User
}

func (e OrderCreatedEvent) Name() string { return OrderCreatedName }

// StaffFileDeliveredEvent fires after staff attach a deliverable (v1..v3)
// or a SAV fix to an order.
type StaffFileDeliveredEvent struct {
	Order       entities.Order
	VersionType string
}

func (e StaffFileDeliveredEvent) Name() string { return StaffFileDeliveredName }

// SavRequestedEvent fires when a client asks for after-sales service.
type SavRequestedEvent struct {
	Order entities.Order
	Actor entities.User
}

func (e SavRequestedEvent) Name() string { return SavRequestedName }

// ClientMessageSentEvent fires when a client sends a chat message.
type ClientMessageSentEvent struct {
	Sender entities.User
	Text   string
}

func (e ClientMessageSentEvent) Name() string { return ClientMessageSentName }
