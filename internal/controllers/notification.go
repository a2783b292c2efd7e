package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tuning-portal/internal/services"
	"tuning-portal/pkg/utils"
)

type NotificationController struct {
	notificationService services.NotificationServiceInterface
	logger              *zap.Logger
}

func NewNotificationController(
	notificationService services.NotificationServiceInterface,
	logger *zap.Logger,
) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		logger:              logger,
	}
}

// Client feed: notifications targeted at the authenticated user.

func (c *NotificationController) GetClientNotifications(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	notifications, err := c.notificationService.GetUserNotifications(ctx.Request().Context(), userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, notifications, "Successfully", http.StatusOK)
}

func (c *NotificationController) MarkClientNotificationRead(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.notificationService.MarkUserNotificationRead(ctx.Request().Context(), ctx.Param("id"), userID); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Notification marked as read", http.StatusOK)
}

func (c *NotificationController) DeleteClientNotification(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.notificationService.DeleteUserNotification(ctx.Request().Context(), ctx.Param("id"), userID); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Notification deleted", http.StatusOK)
}

// Staff feed: notifications with no target user, visible to all staff.

func (c *NotificationController) GetStaffNotifications(ctx echo.Context) error {
	notifications, err := c.notificationService.GetStaffNotifications(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, notifications, "Successfully", http.StatusOK)
}

func (c *NotificationController) MarkStaffNotificationRead(ctx echo.Context) error {
	if err := c.notificationService.MarkStaffNotificationRead(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Notification marked as read", http.StatusOK)
}

func (c *NotificationController) DeleteStaffNotification(ctx echo.Context) error {
	if err := c.notificationService.DeleteStaffNotification(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Notification deleted", http.StatusOK)
}

func (c *NotificationController) DeleteAllStaffNotifications(ctx echo.Context) error {
	if err := c.notificationService.DeleteAllStaffNotifications(ctx.Request().Context()); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "All notifications deleted", http.StatusOK)
}
