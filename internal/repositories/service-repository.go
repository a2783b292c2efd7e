package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tuning-portal/internal/entities"
	apperrors "tuning-portal/pkg/errors"
)

const (
	serviceTable  = "services"
	serviceFields = `id, name, price, description, is_active`
)

type ServiceRepositoryInterface interface {
	GetActiveServices(ctx context.Context) ([]entities.Service, error)
	FindService(ctx context.Context, id string) (*entities.Service, error)
}

type ServiceRepository struct {
	storage *pgxpool.Pool
}

func NewServiceRepository(storage *pgxpool.Pool) ServiceRepositoryInterface {
	return &ServiceRepository{storage: storage}
}

func (r *ServiceRepository) GetActiveServices(ctx context.Context) ([]entities.Service, error) {
	query, args, err := psql.Select(serviceFields).
		From(serviceTable).
		Where(sq.Eq{"is_active": true}).
		OrderBy("price ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	services := make([]entities.Service, 0)
	for rows.Next() {
		var s entities.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.Description, &s.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *ServiceRepository) FindService(ctx context.Context, id string) (*entities.Service, error) {
	query, args, err := psql.Select(serviceFields).From(serviceTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var s entities.Service
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&s.ID, &s.Name, &s.Price, &s.Description, &s.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan service: %w", err)
	}
	return &s, nil
}
