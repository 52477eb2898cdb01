package jobs

import (
	"database/sql"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/config"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/logger"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/repository/postgres"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs.
type JobRunner struct {
	db       *sql.DB
	store    *postgres.Store
	services *Services
	config   *config.Config
}

// Services holds the service dependencies jobs need.
type Services struct {
	Booking service.BookingService
	Email   service.EmailService
}

func NewJobRunner(db *sql.DB, store *postgres.Store, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:       db,
		store:    store,
		services: services,
		config:   cfg,
	}
}

// Config exposes the loaded configuration for schedule registration.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery so one bad run
// cannot take the scheduler down.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
