package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"ouveo-backend/internal/auth"
	"ouveo-backend/internal/cache"
	"ouveo-backend/internal/config"
	"ouveo-backend/internal/database"
	"ouveo-backend/internal/db"
	"ouveo-backend/internal/handlers"
	"ouveo-backend/internal/health"
	h "ouveo-backend/internal/http"
	"ouveo-backend/internal/middleware"
	"ouveo-backend/internal/monitoring"
	"ouveo-backend/internal/repositories"
	"ouveo-backend/internal/services"
	"ouveo-backend/internal/storage"
	"ouveo-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "override HTTP port from config")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional, server degrades gracefully without it)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable, continuing without it: %v", err)
	}

	// Run embedded schema migrations
	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migrator.RunMigrations(migrateCtx); err != nil {
		cancel()
		log.Fatalf("Migration failed: %v", err)
	}
	cancel()

	healthChecker := health.NewHealthChecker(pool)

	// Start monitoring server on a separate port
	monitoringServer := monitoring.NewMonitoringServer(pool, cfg.Server.MonitoringPort)
	go monitoringServer.Start()

	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	serviceRepo := repositories.NewServiceRepository(pool)
	bookingRepo := repositories.NewBookingRepository(pool)
	missionRepo := repositories.NewMissionRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	portfolioRepo := repositories.NewPortfolioRepository(pool)
	messageRepo := repositories.NewMessageRepository(pool)
	reportRepo := repositories.NewReportRepository(pool)
	analyticsRepo := repositories.NewAnalyticsRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize upload storage (local dir, optional S3 mirror)
	uploadStore, err := storage.NewUploadStore(cfg)
	if err != nil {
		log.Fatalf("Upload storage init failed: %v", err)
	}
	uploadHelper := handlers.NewUploadHelper(uploadStore)

	// Initialize services
	userService := services.NewUserService(userRepo, jwtManager)
	catalogService := services.NewCatalogService(serviceRepo)
	missionService := services.NewMissionService(missionRepo)
	bookingService := services.NewBookingService(bookingRepo, serviceRepo, missionService)
	invoiceService := services.NewInvoiceService(invoiceRepo, missionRepo, bookingRepo)
	invoicePDFService := services.NewInvoicePDFService(invoiceService)
	paymentService := services.NewPaymentService(cfg, paymentRepo, invoiceRepo, invoiceService)
	portfolioService := services.NewPortfolioService(portfolioRepo)
	messageService := services.NewMessageService(messageRepo)
	reportService := services.NewReportService(reportRepo, userRepo)
	analyticsService := services.NewAnalyticsService(analyticsRepo, userRepo, serviceRepo, bookingRepo, reportRepo, invoiceRepo)

	// Collect analytics snapshots in the background
	analyticsService.Start(1 * time.Hour)
	defer analyticsService.Stop()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService, uploadHelper)
	serviceHandler := handlers.NewServiceHandler(catalogService, uploadHelper)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	missionHandler := handlers.NewMissionHandler(missionService, uploadHelper)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, invoicePDFService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService, uploadHelper)
	messageHandler := handlers.NewMessageHandler(messageService)
	reportHandler := handlers.NewReportHandler(reportService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, bookingService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		authHandler,
		userHandler,
		serviceHandler,
		bookingHandler,
		missionHandler,
		invoiceHandler,
		paymentHandler,
		portfolioHandler,
		messageHandler,
		reportHandler,
		analyticsHandler,
		healthHandler,
		authMiddleware,
		uploadStore.Dir(),
	)

	// Wrap with panic recovery, metrics and CORS middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
