package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/config"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/jobs"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/logger"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/repository/postgres"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/scheduler"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'expire-stale-requests')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting SaiKisan Cronjob Runner...", "log_level", cfg.Log.Level)

	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	jobServices := &jobs.Services{
		Booking: bookingSvc,
		Email:   emailSvc,
	}

	jobRunner := jobs.NewJobRunner(db, store, jobServices, cfg)

	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "expire-stale-requests":
		jobRunner.ExpireStaleBookingRequests()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - expire-stale-requests\n")
		os.Exit(1)
	}
}
