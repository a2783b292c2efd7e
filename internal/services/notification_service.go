package services

import (
	"context"

	"go.uber.org/zap"

	"tuning-portal/internal/entities"
	"tuning-portal/internal/events"
	"tuning-portal/internal/repositories"
	"tuning-portal/pkg/eventbus"
)

type NotificationServiceInterface interface {
	GetUserNotifications(ctx context.Context, userID string) ([]entities.Notification, error)
	GetStaffNotifications(ctx context.Context) ([]entities.Notification, error)
	MarkUserNotificationRead(ctx context.Context, id, userID string) error
	MarkStaffNotificationRead(ctx context.Context, id string) error
	DeleteUserNotification(ctx context.Context, id, userID string) error
	DeleteStaffNotification(ctx context.Context, id string) error
	DeleteAllStaffNotifications(ctx context.Context) error
	RelayClientMessage(ctx context.Context, userID, text string) error
}

// NotificationService exposes each audience's visible notification set and
// relays client chat messages into the staff feed. The transcript itself is
// stored by the chat module, not here.
type NotificationService struct {
	notificationRepo repositories.NotificationRepositoryInterface
	userRepo         repositories.UserRepositoryInterface
	bus              *eventbus.Bus
	logger           *zap.Logger
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) NotificationServiceInterface {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		bus:              bus,
		logger:           logger,
	}
}

func (s *NotificationService) GetUserNotifications(ctx context.Context, userID string) ([]entities.Notification, error) {
	return s.notificationRepo.FindByUser(ctx, userID)
}

func (s *NotificationService) GetStaffNotifications(ctx context.Context) ([]entities.Notification, error) {
	return s.notificationRepo.FindStaff(ctx)
}

func (s *NotificationService) MarkUserNotificationRead(ctx context.Context, id, userID string) error {
	return s.notificationRepo.MarkRead(ctx, id, &userID)
}

func (s *NotificationService) MarkStaffNotificationRead(ctx context.Context, id string) error {
	return s.notificationRepo.MarkRead(ctx, id, nil)
}

func (s *NotificationService) DeleteUserNotification(ctx context.Context, id, userID string) error {
	return s.notificationRepo.Delete(ctx, id, &userID)
}

func (s *NotificationService) DeleteStaffNotification(ctx context.Context, id string) error {
	return s.notificationRepo.Delete(ctx, id, nil)
}

func (s *NotificationService) DeleteAllStaffNotifications(ctx context.Context) error {
	return s.notificationRepo.DeleteStaffAll(ctx)
}

func (s *NotificationService) RelayClientMessage(ctx context.Context, userID, text string) error {
	sender, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	s.bus.Publish(ctx, events.ClientMessageSentEvent{Sender: *sender, Text: text})
	return nil
}
