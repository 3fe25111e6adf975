package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotel-management-backend/internal/cache"
	"hotel-management-backend/internal/config"
	"hotel-management-backend/internal/database"
	"hotel-management-backend/internal/handler"
	"hotel-management-backend/internal/middleware"
	"hotel-management-backend/internal/repository"
	"hotel-management-backend/internal/service"
	"hotel-management-backend/pkg/logger"
	"hotel-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration and logging
	cfg := config.LoadConfig()
	logger.Init(cfg.Log.Level, cfg.Log.File)
	logger.Get().Info("Configuration loaded successfully")

	// 2. Initialize JWT utilities with config
	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 3. Initialize database connection
	db := database.Connect(cfg)

	// 4. Initialize statistics cache (optional, nil when disabled)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	statsCache := cache.NewStatsCache(ctx, cfg.Redis.URL, cfg.Redis.StatsTTL)

	// 5. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	userHotelRepo := repository.NewUserHotelRepo(db)
	hotelRepo := repository.NewHotelRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	reportRepo := repository.NewReportRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// 6. Initialize services
	authService := service.NewAuthService(userRepo, auditRepo)
	roomService := service.NewRoomService(roomRepo, hotelRepo, bookingRepo, auditRepo, statsCache)
	queryService := service.NewRoomQueryService(roomRepo, hotelRepo, statsCache)
	hotelService := service.NewHotelService(hotelRepo, roomRepo, userHotelRepo, auditRepo, statsCache)
	bookingService := service.NewBookingService(bookingRepo)
	inventoryService := service.NewInventoryService(inventoryRepo, auditRepo)
	reportService := service.NewReportService(reportRepo, roomRepo, auditRepo)
	sweepService := service.NewSweepService(roomService, cfg.Sweep.Interval)

	// 7. Start the booking sweep in a goroutine
	if cfg.Sweep.Enabled {
		go sweepService.Start(ctx)
	} else {
		logger.Get().Info("Booking sweep disabled")
	}

	// 8. Setup Gin
	gin.SetMode(cfg.Server.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg))

	// 9. Register handlers
	authHandler := handler.NewAuthHandler(authService)
	roomHandler := handler.NewRoomHandler(roomService, queryService, sweepService)
	hotelHandler := handler.NewHotelHandler(hotelService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	reportHandler := handler.NewReportHandler(reportService)
	auditHandler := handler.NewAuditHandler(auditRepo)
	accessControl := middleware.NewAccessControlMiddleware(userHotelRepo, roomRepo)

	// 10. Define routes
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "hotel-management-backend",
		})
	})

	// Auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/register", middleware.AuthMiddleware(), middleware.RequireAdmin(), authHandler.Register)
	}

	// Public browse and booking routes: guests search and book without an
	// account.
	rooms := r.Group("/rooms")
	{
		rooms.GET("", roomHandler.ListRooms)
		rooms.GET("/search", roomHandler.SearchRooms)
		rooms.GET("/statistics", roomHandler.RoomStatistics)
		rooms.GET("/:id", roomHandler.GetRoom)
		rooms.POST("/:id/book", roomHandler.BookRoom)
	}

	// Staff room lifecycle routes
	roomOps := r.Group("/rooms")
	roomOps.Use(middleware.AuthMiddleware(), accessControl.CheckRoomAccess())
	{
		roomOps.POST("/:id/cancel", roomHandler.CancelBooking)
		roomOps.POST("/:id/checkout", roomHandler.CheckoutRoom)
		roomOps.POST("/:id/maintenance", roomHandler.SetMaintenance)
		roomOps.DELETE("/:id/maintenance", roomHandler.ClearMaintenance)
		roomOps.POST("/:id/clean", roomHandler.CompleteCleaning)
	}

	// Admin room management routes
	roomAdmin := r.Group("/rooms")
	roomAdmin.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		roomAdmin.POST("", roomHandler.CreateRoom)
		roomAdmin.PUT("/bulk-update", roomHandler.BulkUpdateRooms)
		roomAdmin.PUT("/:id", roomHandler.UpdateRoom)
		roomAdmin.DELETE("/:id", roomHandler.DeleteRoom)
		roomAdmin.POST("/sweep", roomHandler.RunSweep)
	}

	// Hotel routes
	hotels := r.Group("/hotels")
	{
		hotels.GET("/:id/rooms", roomHandler.ListRoomsByHotel)

		authed := hotels.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.GET("", hotelHandler.ListHotels)
			authed.GET("/:id", accessControl.CheckHotelAccess(), hotelHandler.GetHotel)

			admin := authed.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("", hotelHandler.CreateHotel)
				admin.PUT("/:id", hotelHandler.UpdateHotel)
				admin.DELETE("/:id", hotelHandler.DeleteHotel)
				admin.POST("/:id/staff", hotelHandler.AssignStaff)
				admin.DELETE("/:id/staff", hotelHandler.RevokeStaff)
			}
		}
	}

	// Booking history routes (staff)
	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthMiddleware())
	{
		bookings.GET("", bookingHandler.ListBookings)
		bookings.GET("/:reference", bookingHandler.GetBooking)
	}

	// Inventory routes (admin manages, staff reads)
	inventory := r.Group("/inventory")
	inventory.Use(middleware.AuthMiddleware())
	{
		inventory.GET("", inventoryHandler.ListItems)
		inventory.GET("/:id", inventoryHandler.GetItem)

		admin := inventory.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("", inventoryHandler.CreateItem)
			admin.PUT("/:id", inventoryHandler.UpdateItem)
			admin.DELETE("/:id", inventoryHandler.DeleteItem)
		}
	}

	// Report routes (admin only)
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		reports.GET("", reportHandler.ListReports)
		reports.GET("/:id", reportHandler.GetReport)
		reports.POST("", reportHandler.CreateReport)
		reports.POST("/occupancy", reportHandler.GenerateOccupancyReport)
		reports.DELETE("/:id", reportHandler.DeleteReport)
	}

	// Audit log routes (admin only)
	audit := r.Group("/audit")
	audit.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		audit.GET("", auditHandler.ListAuditLogs)
	}

	// 11. Setup graceful shutdown
	srv := newServer(cfg.Server.Port, r)
	go func() {
		logger.Get().Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Get().Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Get().Info("Shutting down server...")

	// Stop the sweep, then drain in-flight requests before exiting.
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Get().Errorf("Forced shutdown: %v", err)
	}

	logger.Get().Info("Server exited")
}

// newServer builds the HTTP server so shutdown can drain in-flight
// requests instead of killing the listener.
func newServer(port string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
