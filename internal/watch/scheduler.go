package watch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler wraps gocron for periodic full refreshes in watch mode, covering
// graph drift fsnotify cannot see (e.g. changes on network mounts).
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a new scheduler instance.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

// SchedulePeriodicRefresh registers the refresh action at the given interval.
// Returns the job ID for diagnostics.
func (s *Scheduler) SchedulePeriodicRefresh(interval time.Duration, refresh func()) (string, error) {
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(refresh),
		gocron.WithName("periodic-refresh"),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create periodic refresh job: %w", err)
	}
	return job.ID().String(), nil
}

// Start begins the scheduler.
func (s *Scheduler) Start(_ context.Context) {
	slog.Info("Starting refresh scheduler")
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop(_ context.Context) error {
	slog.Info("Stopping refresh scheduler")
	return s.scheduler.Shutdown()
}
