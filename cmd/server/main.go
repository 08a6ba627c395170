package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "tenantportal-backend/internal/api/http"
	"tenantportal-backend/internal/config"
	"tenantportal-backend/internal/gateway"
	"tenantportal-backend/internal/logger"
	"tenantportal-backend/internal/repository/postgres"
	"tenantportal-backend/internal/security"
	"tenantportal-backend/internal/service"
	"tenantportal-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Tenant Portal Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Hour)

	// Initialize Storage Service
	storageService, err := storage.NewLocalStorageService(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	logger.Info("Using local attachment storage", "upload_dir", cfg.Storage.UploadDir)

	// Initialize Payment Gateway
	paystack := gateway.NewPaystackClient(cfg.Paystack.SecretKey, cfg.Paystack.BaseURL)

	// Initialize Services
	emailSvc := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
		cfg.Frontend.BaseURL,
	)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	tenantSvc := service.NewTenantService(store.UserRepository, store.LeaseRepository, store.PaymentRepository)
	adminSvc := service.NewAdminService(
		store.UserRepository,
		store.PropertyRepository,
		store.LeaseRepository,
		store.PaymentRepository,
		emailSvc,
	)
	paymentSvc := service.NewPaymentService(
		store.PaymentRepository,
		store.TransactionRepository,
		store.UserRepository,
		paystack,
		emailSvc,
		cfg.Paystack.CallbackURL,
	)
	calendarSvc := service.NewCalendarService(store.EventRepository)
	maintenanceSvc := service.NewMaintenanceService(
		store.MaintenanceRepository,
		store.LeaseRepository,
		store.EventRepository,
		storageService,
		cfg.Storage.AllowedTypes,
	)

	// Initialize HTTP handlers
	handlers := &httpapi.Handlers{
		Auth:        httpapi.NewAuthHandler(authSvc),
		Tenant:      httpapi.NewTenantHandler(tenantSvc),
		Admin:       httpapi.NewAdminHandler(adminSvc),
		Payment:     httpapi.NewPaymentHandler(paymentSvc, paystack),
		Calendar:    httpapi.NewCalendarHandler(calendarSvc),
		Maintenance: httpapi.NewMaintenanceHandler(maintenanceSvc, cfg.Storage.MaxFileSize),
	}

	router := httpapi.NewRouter(handlers, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := server.ListenAndServe(); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
