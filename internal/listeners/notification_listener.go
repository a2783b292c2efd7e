package listeners

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tuning-portal/internal/entities"
	"tuning-portal/internal/events"
	"tuning-portal/internal/repositories"
	"tuning-portal/pkg/eventbus"
)

const messagePreviewLen = 50

// NotificationListener turns domain events into Notification records. Routing
// itself is a pure function of the event; persistence happens in Handle.
type NotificationListener struct {
	notificationRepo repositories.NotificationRepositoryInterface
	logger           *zap.Logger
}

func NewNotificationListener(
	notificationRepo repositories.NotificationRepositoryInterface,
	logger *zap.Logger,
) *NotificationListener {
	return &NotificationListener{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Register subscribes the listener to every event it routes.
func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.OrderCreatedName, l.Handle)
	bus.Subscribe(events.StaffFileDeliveredName, l.Handle)
	bus.Subscribe(events.SavRequestedName, l.Handle)
	bus.Subscribe(events.ClientMessageSentName, l.Handle)
}

func (l *NotificationListener) Handle(ctx context.Context, event eventbus.Event) error {
	for _, n := range l.route(event) {
		if err := l.notificationRepo.Create(ctx, &n); err != nil {
			l.logger.Error("failed to persist notification",
				zap.String("event", event.Name()),
				zap.String("type", n.Type),
				zap.Error(err),
			)
			return err
		}
	}
	return nil
}

// route decides the audience and renders the message text. A nil UserID means
// the notification is visible to all staff.
func (l *NotificationListener) route(event eventbus.Event) []entities.Notification {
	switch e := event.(type) {
	case events.OrderCreatedEvent:
		return []entities.Notification{l.build(
			entities.NotificationNewOrder,
			"Nouvelle commande",
			fmt.Sprintf("Nouvelle commande de %s : %s", e.Actor.FullName(), e.Order.ServiceName),
			&e.Order.ID,
			nil,
		)}

	case events.StaffFileDeliveredEvent:
		label := orderLabel(e.Order)
		var title, message string
		if e.VersionType == entities.VersionTypeSav {
			title = "Fichier SAV disponible"
			message = fmt.Sprintf("Votre fichier SAV est disponible : %s", label)
		} else {
			title = "Nouveau fichier disponible"
			message = fmt.Sprintf("Une nouvelle version (%s) de votre fichier est disponible : %s", e.VersionType, label)
		}
		clientID := e.Order.UserID
		return []entities.Notification{l.build(
			entities.NotificationNewFile,
			title,
			message,
			&e.Order.ID,
			&clientID,
		)}

	case events.SavRequestedEvent:
		return []entities.Notification{l.build(
			entities.NotificationSavRequest,
			"Demande SAV",
			fmt.Sprintf("Demande SAV de %s pour %s", e.Actor.FullName(), orderLabel(e.Order)),
			&e.Order.ID,
			nil,
		)}

	case events.ClientMessageSentEvent:
		return []entities.Notification{l.build(
			entities.NotificationNewMessage,
			"Nouveau message",
			fmt.Sprintf("%s : %s", e.Sender.FullName(), truncate(e.Text, messagePreviewLen)),
			nil,
			nil,
		)}
	}

	l.logger.Warn("unroutable event", zap.String("event", event.Name()))
	return nil
}

func (l *NotificationListener) build(ntype, title, message string, orderID, userID *string) entities.Notification {
	return entities.Notification{
		ID:        uuid.New().String(),
		Type:      ntype,
		Title:     title,
		Message:   message,
		OrderID:   orderID,
		UserID:    userID,
		IsRead:    false,
		CreatedAt: time.Now().UTC(),
	}
}

// orderLabel names the order the way clients know it: plate plus service when
// the immatriculation was mined, otherwise just the service.
func orderLabel(o entities.Order) string {
	if o.Immatriculation != "" {
		return o.Immatriculation + " - " + o.ServiceName
	}
	return o.ServiceName
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
