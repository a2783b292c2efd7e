package controllers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tuning-portal/internal/dto"
	"tuning-portal/internal/services"
	apperrors "tuning-portal/pkg/errors"
	"tuning-portal/pkg/utils"
)

// OrderController handles the client-facing order endpoints.
type OrderController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewOrderController(orderService services.OrderServiceInterface, logger *zap.Logger) *OrderController {
	return &OrderController{
		orderService: orderService,
		logger:       logger,
	}
}

func (c *OrderController) CreateOrder(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.CreateOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.CreateOrder(ctx.Request().Context(), userID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Order created", http.StatusOK)
}

func (c *OrderController) GetOrders(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	orders, err := c.orderService.GetUserOrders(ctx.Request().Context(), userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, orders, "Successfully", http.StatusOK)
}

func (c *OrderController) UploadFile(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	payload, filename, err := readUpload(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	notes := ctx.FormValue("notes")

	fv, err := c.orderService.UploadClientFile(ctx.Request().Context(),
		ctx.Param("id"), userID, payload, filename, notes)
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

func (c *OrderController) DownloadFile(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	reader, fv, err := c.orderService.Download(ctx.Request().Context(),
		ctx.Param("id"), userID, false, ctx.Param("fileId"))
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	defer reader.Close()

	return streamFile(ctx, reader, fv.Filename)
}

func (c *OrderController) RequestSav(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.orderService.RequestSav(ctx.Request().Context(), ctx.Param("id"), userID); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "SAV request registered", http.StatusOK)
}

// readUpload buffers the multipart file fully; the request body itself is
// bounded by the body-limit middleware, the domain cap is checked by the
// ledger before any blob write.
func readUpload(ctx echo.Context) ([]byte, string, error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, "", apperrors.NewHttpError(http.StatusBadRequest, "file is missing", apperrors.ErrBadRequest)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, "", apperrors.NewHttpError(http.StatusBadRequest, "failed to read file", err)
	}
	defer src.Close()

	payload, err := io.ReadAll(src)
	if err != nil {
		return nil, "", apperrors.NewHttpError(http.StatusBadRequest, "failed to read file", err)
	}
	return payload, fileHeader.Filename, nil
}

func streamFile(ctx echo.Context, reader io.Reader, filename string) error {
	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	return ctx.Stream(http.StatusOK, "application/octet-stream", reader)
}
