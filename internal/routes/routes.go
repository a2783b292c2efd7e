package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tuning-portal/internal/controllers"
	"tuning-portal/internal/listeners"
	"tuning-portal/internal/repositories"
	"tuning-portal/internal/services"
	"tuning-portal/pkg/config"
	"tuning-portal/pkg/eventbus"
	"tuning-portal/pkg/filestorage"
	"tuning-portal/pkg/middleware"
	"tuning-portal/pkg/service"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.BasePath)
	if err != nil {
		logger.Fatal("failed to create file storage", zap.Error(err))
	}
	bus := eventbus.New(logger)

	// Repositories.
	userRepo := repositories.NewUserRepository(dbConn)
	serviceRepo := repositories.NewServiceRepository(dbConn)
	orderRepo := repositories.NewOrderRepository(dbConn, logger)
	notificationRepo := repositories.NewNotificationRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// Listeners.
	notificationListener := listeners.NewNotificationListener(notificationRepo, logger)
	notificationListener.Register(bus)

	// Services.
	authService := services.NewAuthService(userRepo, jwtSvc, logger)
	catalogService := services.NewCatalogService(serviceRepo, cacheRepo, logger)
	lifecycle := services.NewOrderLifecycle()
	ledger := services.NewFileVersionLedger(cfg.Upload.MaxFileSize)
	orderService := services.NewOrderService(
		orderRepo, serviceRepo, userRepo, fileStorage, lifecycle, ledger, bus, logger,
	)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, bus, logger)
	reportService := services.NewReportService(orderRepo, userRepo, logger)

	// Controllers.
	authCtrl := controllers.NewAuthController(authService, logger)
	catalogCtrl := controllers.NewCatalogController(catalogService, logger)
	orderCtrl := controllers.NewOrderController(orderService, logger)
	adminOrderCtrl := controllers.NewAdminOrderController(orderService, logger)
	notificationCtrl := controllers.NewNotificationController(notificationService, logger)
	messageCtrl := controllers.NewMessageController(notificationService, logger)
	reportCtrl := controllers.NewReportController(reportService, logger)

	// Public routes.
	api.POST("/auth/login", authCtrl.Login)
	api.GET("/services", catalogCtrl.GetServices)

	// Authenticated client routes.
	secure := api.Group("", authMW.Auth)
	secure.GET("/auth/me", authCtrl.Me)
	secure.POST("/orders", orderCtrl.CreateOrder)
	secure.GET("/orders", orderCtrl.GetOrders)
	secure.POST("/orders/:id/upload", orderCtrl.UploadFile)
	secure.GET("/orders/:id/download/:fileId", orderCtrl.DownloadFile)
	secure.POST("/orders/:id/sav-request", orderCtrl.RequestSav)
	secure.POST("/messages", messageCtrl.SendMessage)
	secure.GET("/client/notifications", notificationCtrl.GetClientNotifications)
	secure.PUT("/client/notifications/:id/read", notificationCtrl.MarkClientNotificationRead)
	secure.DELETE("/client/notifications/:id", notificationCtrl.DeleteClientNotification)

	// Staff routes.
	admin := secure.Group("/admin", authMW.RequireAdmin)
	admin.GET("/orders", adminOrderCtrl.GetOrders)
	admin.GET("/orders/pending", adminOrderCtrl.GetActiveOrders)
	admin.GET("/orders/export", reportCtrl.ExportOrders)
	admin.PUT("/orders/:id/status", adminOrderCtrl.SetStatus)
	admin.PUT("/orders/:id/cancel", adminOrderCtrl.CancelOrder)
	admin.POST("/orders/:id/upload", adminOrderCtrl.UploadFile)
	admin.GET("/orders/:id/download/:fileId", adminOrderCtrl.DownloadFile)
	admin.GET("/notifications", notificationCtrl.GetStaffNotifications)
	admin.PUT("/notifications/:id/read", notificationCtrl.MarkStaffNotificationRead)
	admin.DELETE("/notifications/:id", notificationCtrl.DeleteStaffNotification)
	admin.DELETE("/notifications", notificationCtrl.DeleteAllStaffNotifications)
}
