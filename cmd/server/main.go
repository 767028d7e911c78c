package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "brickvest-backend/internal/api/http"
	"brickvest-backend/internal/config"
	"brickvest-backend/internal/logger"
	"brickvest-backend/internal/repository/postgres"
	"brickvest-backend/internal/security"
	"brickvest-backend/internal/service"

	_ "github.com/lib/pq"
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
	logger.Info("Starting Brickvest Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.From, cfg.SendGrid.FromName)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	propertySvc := service.NewPropertyService(store.PropertyRepository, store.UserRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	offeringSvc := service.NewOfferingService(
		store.OfferingRepository,
		store.PropertyRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
	)

	// Initialize HTTP handlers
	mw := httpapi.NewMiddleware(tokenManager)
	authHandler := httpapi.NewAuthHandler(authSvc)
	offeringHandler := httpapi.NewOfferingHandler(offeringSvc)
	propertyHandler := httpapi.NewPropertyHandler(propertySvc)
	notificationHandler := httpapi.NewNotificationHandler(noteSvc)

	router := httpapi.NewRouter(mw, authHandler, offeringHandler, propertyHandler, notificationHandler)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
