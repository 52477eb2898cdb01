package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/jobs"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/logger"
)

// Scheduler manages cron job scheduling.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// UTC with seconds precision; schedule specs are six-field.
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	_, err := s.cron.AddFunc(cfg.ExpireStaleRequests, s.jobs.ExpireStaleBookingRequests)
	if err != nil {
		logger.Error("Failed to register ExpireStaleBookingRequests job", "error", err)
	}
}

// Start begins executing scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Scheduler stopped")
}
