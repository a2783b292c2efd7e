package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"tuning-portal/internal/entities"
	"tuning-portal/internal/repositories"
)

const (
	catalogCacheKey = "catalog:services"
	catalogCacheTTL = 10 * time.Minute
)

type CatalogServiceInterface interface {
	GetServices(ctx context.Context) ([]entities.Service, error)
}

// CatalogService serves the read-only service catalog, with the list cached
// in redis. The catalog is seeded by migration and never written here, so
// the cache needs no invalidation beyond its TTL.
type CatalogService struct {
	serviceRepo repositories.ServiceRepositoryInterface
	cacheRepo   repositories.CacheRepositoryInterface
	logger      *zap.Logger
}

func NewCatalogService(
	serviceRepo repositories.ServiceRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) CatalogServiceInterface {
	return &CatalogService{
		serviceRepo: serviceRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

func (s *CatalogService) GetServices(ctx context.Context) ([]entities.Service, error) {
	if cached, err := s.cacheRepo.Get(ctx, catalogCacheKey); err == nil && cached != "" {
		var services []entities.Service
		if err := json.Unmarshal([]byte(cached), &services); err == nil {
			return services, nil
		}
		s.logger.Warn("invalid catalog cache entry, refetching")
	}

	services, err := s.serviceRepo.GetActiveServices(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(services); err == nil {
		if err := s.cacheRepo.Set(ctx, catalogCacheKey, payload, catalogCacheTTL); err != nil {
			s.logger.Warn("failed to cache catalog", zap.Error(err))
		}
	}
	return services, nil
}
