package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"tuning-portal/internal/entities"
	apperrors "tuning-portal/pkg/errors"
)

const (
	notificationTable  = "notifications"
	notificationFields = `id, type, title, message, order_id, user_id, is_read, created_at`
)

// NotificationRepositoryInterface persists routed notifications. A nil
// userID scopes an operation to the staff feed (user_id IS NULL rows).
type NotificationRepositoryInterface interface {
	Create(ctx context.Context, n *entities.Notification) error
	FindByUser(ctx context.Context, userID string) ([]entities.Notification, error)
	FindStaff(ctx context.Context) ([]entities.Notification, error)
	MarkRead(ctx context.Context, id string, userID *string) error
	Delete(ctx context.Context, id string, userID *string) error
	DeleteStaffAll(ctx context.Context) error
}

type NotificationRepository struct {
	storage *pgxpool.Pool
}

func NewNotificationRepository(storage *pgxpool.Pool) NotificationRepositoryInterface {
	return &NotificationRepository{storage: storage}
}

func (r *NotificationRepository) Create(ctx context.Context, n *entities.Notification) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		notificationTable, notificationFields)

	_, err := r.storage.Exec(ctx, query,
		n.ID, n.Type, n.Title, n.Message, n.OrderID, n.UserID, n.IsRead, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) FindByUser(ctx context.Context, userID string) ([]entities.Notification, error) {
	return r.list(ctx, sq.Eq{"user_id": userID})
}

func (r *NotificationRepository) FindStaff(ctx context.Context) ([]entities.Notification, error) {
	return r.list(ctx, sq.Eq{"user_id": nil})
}

func (r *NotificationRepository) list(ctx context.Context, where sq.Eq) ([]entities.Notification, error) {
	query, args, err := psql.Select(notificationFields).
		From(notificationTable).
		Where(where).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]entities.Notification, 0)
	for rows.Next() {
		var n entities.Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Message,
			&n.OrderID, &n.UserID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string, userID *string) error {
	query, args, err := psql.Update(notificationTable).
		Set("is_read", true).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id string, userID *string) error {
	query, args, err := psql.Delete(notificationTable).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) DeleteStaffAll(ctx context.Context) error {
	query, args, err := psql.Delete(notificationTable).Where(sq.Eq{"user_id": nil}).ToSql()
	if err != nil {
		return err
	}
	if _, err := r.storage.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete staff notifications: %w", err)
	}
	return nil
}
