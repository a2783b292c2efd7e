package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tuning-portal/internal/services"
	"tuning-portal/pkg/utils"
)

type CatalogController struct {
	catalogService services.CatalogServiceInterface
	logger         *zap.Logger
}

func NewCatalogController(catalogService services.CatalogServiceInterface, logger *zap.Logger) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		logger:         logger,
	}
}

func (c *CatalogController) GetServices(ctx echo.Context) error {
	services, err := c.catalogService.GetServices(ctx.Request().Context())
	if err != nil {
		c.logger.Error("failed to load catalog", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, services, "Successfully", http.StatusOK)
}
