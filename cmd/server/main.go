package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "github.com/Krishnakantdwivedi2006/saikisan-backend/internal/api/http"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/config"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/logger"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/repository/postgres"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/security"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting SaiKisan Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.VehicleRepository,
		store.ImplementRepository,
		store.ReservationRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
	)
	vehicleSvc := service.NewVehicleService(store.VehicleRepository)
	implementSvc := service.NewImplementService(store.ImplementRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Bookings:      bookingSvc,
		Vehicles:      vehicleSvc,
		Implements:    implementSvc,
		Notifications: noteSvc,
		Tokens:        tokenManager,
	})

	addr := cfg.GetServerAddress()
	logger.Info("HTTP server listening", "address", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("HTTP server failed", "error", err)
		log.Fatalf("HTTP server failed: %v", err)
	}
}
