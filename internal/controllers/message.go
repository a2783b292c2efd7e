package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tuning-portal/internal/dto"
	"tuning-portal/internal/services"
	"tuning-portal/pkg/utils"
)

// MessageController relays client chat messages into the staff notification
// feed. Transcript storage belongs to the chat module, not this backend.
type MessageController struct {
	notificationService services.NotificationServiceInterface
	logger              *zap.Logger
}

func NewMessageController(
	notificationService services.NotificationServiceInterface,
	logger *zap.Logger,
) *MessageController {
	return &MessageController{
		notificationService: notificationService,
		logger:              logger,
	}
}

func (c *MessageController) SendMessage(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.CreateMessageDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.notificationService.RelayClientMessage(ctx.Request().Context(), userID, payload.Message); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Message sent", http.StatusOK)
}
