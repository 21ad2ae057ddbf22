package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/RisaRezaei/temperature-timeseries/internal/extract"
)

// Scheduler periodically re-runs the extraction so exports track the archive
// as new frames land.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *extract.Service
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. A zero interval disables scheduling.
func New(service *extract.Service, interval, timeout time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		slog.Info("scheduler: no interval configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 1
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		slog.Info("scheduler: running extraction job")

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if run, err := s.service.Extract(ctx); err != nil {
			slog.Error("scheduler: extraction failed", "run", run.ID, "error", err)
		} else {
			slog.Info("scheduler: extraction completed", "run", run.ID, "exportJob", run.ExportJobID)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
