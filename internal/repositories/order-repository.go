package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"tuning-portal/internal/entities"
	apperrors "tuning-portal/pkg/errors"
)

const (
	orderTable  = "orders"
	orderFields = `id, order_number, user_id, service_id, service_name, price, status, payment_status,
		immatriculation, client_notes, admin_notes, created_at, completed_at, cancelled_at, row_version`

	orderFileTable  = "order_files"
	orderFileFields = `order_id, file_id, filename, version_type, uploaded_by, uploaded_at, notes`
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type OrderRepositoryInterface interface {
	CreateOrder(ctx context.Context, order *entities.Order) error
	FindOrder(ctx context.Context, id string) (*entities.Order, error)
	GetOrdersByUser(ctx context.Context, userID string) ([]entities.Order, error)
	GetOrders(ctx context.Context) ([]entities.Order, error)
	GetActiveOrders(ctx context.Context) ([]entities.Order, error)
	// UpdateOrder persists the order's mutable fields. The write is guarded
	// by the row version: a concurrent writer makes it fail with ErrConflict.
	UpdateOrder(ctx context.Context, order *entities.Order) error
	// UpdateOrderWithFile additionally appends one ledger row, atomically
	// with the guarded order update.
	UpdateOrderWithFile(ctx context.Context, order *entities.Order, fv *entities.FileVersion) error
}

type OrderRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOrderRepository(storage *pgxpool.Pool, logger *zap.Logger) OrderRepositoryInterface {
	return &OrderRepository{
		storage: storage,
		logger:  logger,
	}
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order *entities.Order) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`, orderTable, orderFields)

	_, err := r.storage.Exec(ctx, query,
		order.ID, order.OrderNumber, order.UserID, order.ServiceID, order.ServiceName,
		order.Price, order.Status, order.PaymentStatus, order.Immatriculation,
		order.ClientNotes, order.AdminNotes, order.CreatedAt, order.CompletedAt,
		order.CancelledAt, order.RowVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *OrderRepository) FindOrder(ctx context.Context, id string) (*entities.Order, error) {
	query, args, err := psql.Select(orderFields).From(orderTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	order, err := r.scanOrder(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	files, err := r.loadFiles(ctx, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.Files = files[order.ID]
	if order.Files == nil {
		order.Files = []entities.FileVersion{}
	}
	return order, nil
}

func (r *OrderRepository) GetOrdersByUser(ctx context.Context, userID string) ([]entities.Order, error) {
	return r.list(ctx, sq.Eq{"user_id": userID})
}

func (r *OrderRepository) GetOrders(ctx context.Context) ([]entities.Order, error) {
	return r.list(ctx, nil)
}

func (r *OrderRepository) GetActiveOrders(ctx context.Context) ([]entities.Order, error) {
	return r.list(ctx, sq.NotEq{"status": []string{
		entities.OrderStatusCompleted,
		entities.OrderStatusCancelled,
	}})
}

func (r *OrderRepository) list(ctx context.Context, where interface{}) ([]entities.Order, error) {
	builder := psql.Select(orderFields).From(orderTable).OrderBy("created_at DESC")
	if where != nil {
		builder = builder.Where(where)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	ids := make([]string, 0)
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, *order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	files, err := r.loadFiles(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Files = files[orders[i].ID]
		if orders[i].Files == nil {
			orders[i].Files = []entities.FileVersion{}
		}
	}
	return orders, nil
}

func (r *OrderRepository) UpdateOrder(ctx context.Context, order *entities.Order) error {
	tag, err := r.storage.Exec(ctx, orderUpdateQuery, orderUpdateArgs(order)...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	order.RowVersion++
	return nil
}

func (r *OrderRepository) UpdateOrderWithFile(ctx context.Context, order *entities.Order, fv *entities.FileVersion) error {
	tx, err := r.storage.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, orderUpdateQuery, orderUpdateArgs(order)...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	fileInsert := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		orderFileTable, orderFileFields)
	if _, err := tx.Exec(ctx, fileInsert,
		order.ID, fv.FileID, fv.Filename, fv.VersionType, fv.UploadedBy, fv.UploadedAt, fv.Notes,
	); err != nil {
		return fmt.Errorf("failed to append file version: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order update: %w", err)
	}
	order.RowVersion++
	return nil
}

// Compare-and-swap on row_version: zero rows affected means a concurrent
// writer won the race.
const orderUpdateQuery = `UPDATE orders SET
		service_name = $1, price = $2, status = $3, payment_status = $4,
		immatriculation = $5, client_notes = $6, admin_notes = $7,
		completed_at = $8, cancelled_at = $9, row_version = row_version + 1
	WHERE id = $10 AND row_version = $11`

func orderUpdateArgs(order *entities.Order) []interface{} {
	return []interface{}{
		order.ServiceName, order.Price, order.Status, order.PaymentStatus,
		order.Immatriculation, order.ClientNotes, order.AdminNotes,
		order.CompletedAt, order.CancelledAt,
		order.ID, order.RowVersion,
	}
}

func (r *OrderRepository) scanOrder(row pgx.Row) (*entities.Order, error) {
	var order entities.Order
	err := row.Scan(
		&order.ID, &order.OrderNumber, &order.UserID, &order.ServiceID, &order.ServiceName,
		&order.Price, &order.Status, &order.PaymentStatus, &order.Immatriculation,
		&order.ClientNotes, &order.AdminNotes, &order.CreatedAt, &order.CompletedAt,
		&order.CancelledAt, &order.RowVersion,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// loadFiles fetches the append-only ledger rows for the given orders, in
// insertion order.
func (r *OrderRepository) loadFiles(ctx context.Context, orderIDs []string) (map[string][]entities.FileVersion, error) {
	result := make(map[string][]entities.FileVersion, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	query, args, err := psql.Select(orderFileFields).
		From(orderFileTable).
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load order files: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var fv entities.FileVersion
		if err := rows.Scan(&orderID, &fv.FileID, &fv.Filename, &fv.VersionType,
			&fv.UploadedBy, &fv.UploadedAt, &fv.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan file version: %w", err)
		}
		result[orderID] = append(result[orderID], fv)
	}
	return result, rows.Err()
}
