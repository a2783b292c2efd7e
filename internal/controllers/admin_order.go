package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tuning-portal/internal/dto"
	"tuning-portal/internal/services"
	"tuning-portal/pkg/utils"
)

// AdminOrderController handles the staff-facing order endpoints.
type AdminOrderController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewAdminOrderController(orderService services.OrderServiceInterface, logger *zap.Logger) *AdminOrderController {
	return &AdminOrderController{
		orderService: orderService,
		logger:       logger,
	}
}

func (c *AdminOrderController) GetOrders(ctx echo.Context) error {
	orders, err := c.orderService.GetAllOrders(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, orders, "Successfully", http.StatusOK)
}

// GetActiveOrders is the staff work board: every order still in the
// pipeline, with a summary of the ordering client.
func (c *AdminOrderController) GetActiveOrders(ctx echo.Context) error {
	orders, err := c.orderService.GetActiveOrders(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, orders, "Successfully", http.StatusOK)
}

func (c *AdminOrderController) SetStatus(ctx echo.Context) error {
	var payload dto.UpdateOrderStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.orderService.SetStatus(ctx.Request().Context(), ctx.Param("id"), payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Order status updated", http.StatusOK)
}

func (c *AdminOrderController) CancelOrder(ctx echo.Context) error {
	if err := c.orderService.CancelOrder(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Order cancelled", http.StatusOK)
}

func (c *AdminOrderController) UploadFile(ctx echo.Context) error {
	staffID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	payload, filename, err := readUpload(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	versionType := ctx.FormValue("version_type")
	notes := ctx.FormValue("notes")

	fv, err := c.orderService.UploadStaffFile(ctx.Request().Context(),
		ctx.Param("id"), staffID, payload, filename, versionType, notes)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, dto.UploadResultDTO{
		FileID:      fv.FileID,
		Filename:    fv.Filename,
		VersionType: fv.VersionType,
		Notes:       fv.Notes,
	}, "File uploaded successfully", http.StatusOK)
}

func (c *AdminOrderController) DownloadFile(ctx echo.Context) error {
	staffID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	reader, fv, err := c.orderService.Download(ctx.Request().Context(),
		ctx.Param("id"), staffID, true, ctx.Param("fileId"))
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	defer reader.Close()

	return streamFile(ctx, reader, fv.Filename)
}
