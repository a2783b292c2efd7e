package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"tuning-portal/internal/dto"
	"tuning-portal/internal/entities"
	"tuning-portal/internal/events"
	"tuning-portal/internal/repositories"
	apperrors "tuning-portal/pkg/errors"
	"tuning-portal/pkg/eventbus"
	"tuning-portal/pkg/filestorage"
)

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, userID string, data dto.CreateOrderDTO) (*entities.Order, error)
	GetUserOrders(ctx context.Context, userID string) ([]entities.Order, error)
	GetAllOrders(ctx context.Context) ([]entities.Order, error)
	GetActiveOrders(ctx context.Context) ([]dto.AdminOrderDTO, error)
	UploadClientFile(ctx context.Context, orderID, userID string, payload []byte, filename, notes string) (*entities.FileVersion, error)
	UploadStaffFile(ctx context.Context, orderID, staffID string, payload []byte, filename, versionType, notes string) (*entities.FileVersion, error)
	RequestSav(ctx context.Context, orderID, userID string) error
	SetStatus(ctx context.Context, orderID string, data dto.UpdateOrderStatusDTO) error
	CancelOrder(ctx context.Context, orderID string) error
	Download(ctx context.Context, orderID, requesterID string, staff bool, fileID string) (io.ReadCloser, *entities.FileVersion, error)
}

// OrderService is the facade over the lifecycle, the file-version ledger and
// the notification routing. Every write is one read-modify-write guarded by
// the repository's row-version check.
type OrderService struct {
	orderRepo   repositories.OrderRepositoryInterface
	serviceRepo repositories.ServiceRepositoryInterface
	userRepo    repositories.UserRepositoryInterface
	fileStorage filestorage.FileStorageInterface
	lifecycle   *OrderLifecycle
	ledger      *FileVersionLedger
	bus         *eventbus.Bus
	logger      *zap.Logger
}

func NewOrderService(
	orderRepo repositories.OrderRepositoryInterface,
	serviceRepo repositories.ServiceRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	lifecycle *OrderLifecycle,
	ledger *FileVersionLedger,
	bus *eventbus.Bus,
	logger *zap.Logger,
) OrderServiceInterface {
	return &OrderService{
		orderRepo:   orderRepo,
		serviceRepo: serviceRepo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
		lifecycle:   lifecycle,
		ledger:      ledger,
		bus:         bus,
		logger:      logger,
	}
}

func (s *OrderService) CreateOrder(ctx context.Context, userID string, data dto.CreateOrderDTO) (*entities.Order, error) {
	svc, err := s.serviceRepo.FindService(ctx, data.ServiceID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	order := s.lifecycle.NewOrder(user, svc)
	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		s.logger.Error("failed to create order", zap.String("userID", userID), zap.Error(err))
		return nil, err
	}

	s.bus.Publish(ctx, events.OrderCreatedEvent{Order: *order, Actor: *user})
	return order, nil
}

func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]entities.Order, error) {
	return s.orderRepo.GetOrdersByUser(ctx, userID)
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]entities.Order, error) {
	return s.orderRepo.GetOrders(ctx)
}

// GetActiveOrders returns the staff work board: every order not yet
// completed or cancelled, enriched with who ordered it.
func (s *OrderService) GetActiveOrders(ctx context.Context) ([]dto.AdminOrderDTO, error) {
	orders, err := s.orderRepo.GetActiveOrders(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.UserID)
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]dto.AdminOrderDTO, 0, len(orders))
	for _, o := range orders {
		item := dto.AdminOrderDTO{Order: o}
		if u, ok := users[o.UserID]; ok {
			item.Client = &dto.ClientSummaryDTO{
				ID:        u.ID,
				FirstName: u.FirstName,
				LastName:  u.LastName,
				Email:     u.Email,
				Phone:     u.Phone,
				Company:   u.Company,
			}
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *OrderService) UploadClientFile(ctx context.Context, orderID, userID string, payload []byte, filename, notes string) (*entities.FileVersion, error) {
	order, err := s.findOwnedOrder(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	fv, err := s.storeVersion(ctx, order, userID, payload, filename, entities.VersionTypeOriginal, notes, func(o *entities.Order) {
		o.ClientNotes = notes
		s.lifecycle.ReceiveClientFile(o)
	})
	if err != nil {
		return nil, err
	}
	return fv, nil
}

func (s *OrderService) UploadStaffFile(ctx context.Context, orderID, staffID string, payload []byte, filename, versionType, notes string) (*entities.FileVersion, error) {
	// Staff deliverables use the v1..v3/sav tags; "original" is reserved for
	// the client's initial upload.
	if !entities.StaffDeliverableTypes[versionType] {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidVersionType, versionType)
	}

	order, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	fv, err := s.storeVersion(ctx, order, staffID, payload, filename, versionType, notes, func(o *entities.Order) {
		s.lifecycle.ReceiveStaffDeliverable(o, versionType)
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.StaffFileDeliveredEvent{Order: *order, VersionType: versionType})
	return fv, nil
}

// storeVersion is the shared upload path: validate, write the blob, append
// to the ledger, apply the lifecycle transition, persist atomically. If the
// persist fails after the blob write, the blob is removed best-effort so it
// does not linger unreferenced.
func (s *OrderService) storeVersion(
	ctx context.Context,
	order *entities.Order,
	uploaderID string,
	payload []byte,
	filename, versionType, notes string,
	transition func(*entities.Order),
) (*entities.FileVersion, error) {
	if err := s.ledger.Validate(versionType, int64(len(payload))); err != nil {
		return nil, err
	}

	blobID, err := s.fileStorage.Put(payload, filename)
	if err != nil {
		s.logger.Error("blob write failed", zap.String("orderID", order.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	fv := entities.FileVersion{
		FileID:      blobID,
		Filename:    filename,
		VersionType: versionType,
		UploadedBy:  uploaderID,
		UploadedAt:  time.Now().UTC(),
		Notes:       notes,
	}
	s.ledger.Append(order, fv)
	transition(order)

	if err := s.orderRepo.UpdateOrderWithFile(ctx, order, &fv); err != nil {
		if delErr := s.fileStorage.Delete(blobID); delErr != nil {
			s.logger.Warn("failed to clean up orphaned blob",
				zap.String("blobID", blobID), zap.Error(delErr))
		}
		return nil, err
	}
	return &fv, nil
}

func (s *OrderService) RequestSav(ctx context.Context, orderID, userID string) error {
	order, err := s.findOwnedOrder(ctx, orderID, userID)
	if err != nil {
		return err
	}
	actor, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	s.bus.Publish(ctx, events.SavRequestedEvent{Order: *order, Actor: *actor})
	return nil
}

func (s *OrderService) SetStatus(ctx context.Context, orderID string, data dto.UpdateOrderStatusDTO) error {
	order, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if err := s.lifecycle.SetStatus(order, data.Status); err != nil {
		return err
	}
	if data.AdminNotes != "" {
		order.AdminNotes = data.AdminNotes
	}
	if data.PaymentStatus != "" {
		if !entities.PaymentStatuses[data.PaymentStatus] {
			return fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, data.PaymentStatus)
		}
		order.PaymentStatus = data.PaymentStatus
	}

	return s.orderRepo.UpdateOrder(ctx, order)
}

func (s *OrderService) CancelOrder(ctx context.Context, orderID string) error {
	order, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return err
	}

	s.lifecycle.Cancel(order)
	return s.orderRepo.UpdateOrder(ctx, order)
}

// Download resolves the file against the order's ledger, never against the
// blob store directly: a blob id outside the ledger is NotFound even when
// the blob itself exists.
func (s *OrderService) Download(ctx context.Context, orderID, requesterID string, staff bool, fileID string) (io.ReadCloser, *entities.FileVersion, error) {
	var order *entities.Order
	var err error
	if staff {
		order, err = s.orderRepo.FindOrder(ctx, orderID)
	} else {
		order, err = s.findOwnedOrder(ctx, orderID, requesterID)
	}
	if err != nil {
		return nil, nil, err
	}

	for i := range order.Files {
		if order.Files[i].FileID == fileID {
			reader, err := s.fileStorage.Get(fileID)
			if err != nil {
				s.logger.Error("blob read failed", zap.String("fileID", fileID), zap.Error(err))
				return nil, nil, fmt.Errorf("failed to read file: %w", err)
			}
			return reader, &order.Files[i], nil
		}
	}
	return nil, nil, apperrors.ErrNotFound
}

// findOwnedOrder hides ownership failures behind NotFound so non-owners
// cannot probe for order existence.
func (s *OrderService) findOwnedOrder(ctx context.Context, orderID, userID string) (*entities.Order, error) {
	order, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return order, nil
}
