package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tuning-portal/internal/services"
	"tuning-portal/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{
		reportService: reportService,
		logger:        logger,
	}
}

// ExportOrders streams the full order book as an xlsx workbook.
func (c *ReportController) ExportOrders(ctx echo.Context) error {
	f, err := c.reportService.BuildOrdersWorkbook(ctx.Request().Context())
	if err != nil {
		c.logger.Error("failed to build orders workbook", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	filename := fmt.Sprintf("commandes-%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	ctx.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().WriteHeader(http.StatusOK)

	if err := f.Write(ctx.Response().Writer); err != nil {
		c.logger.Error("failed to stream workbook", zap.Error(err))
		return err
	}
	return nil
}
