package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Cycle is the unit of work the scheduler triggers once per day.
type Cycle interface {
	RunCycle(ctx context.Context) error
}

// Scheduler owns a single daily cron entry. It is constructed, started and
// stopped by the process entry point; there is no package-level instance.
type Scheduler struct {
	cron   *cron.Cron
	logger zerolog.Logger
}

// NewDaily schedules cycle to run every day at the given hour, local time.
func NewDaily(hour int, cycle Cycle, logger zerolog.Logger) (*Scheduler, error) {
	if hour < 0 || hour > 23 {
		return nil, fmt.Errorf("notify hour must be between 0 and 23, got %d", hour)
	}

	log := logger.With().Str("component", "scheduler").Logger()
	c := cron.New()
	if _, err := c.AddFunc(dailySpec(hour), func() {
		if err := cycle.RunCycle(context.Background()); err != nil {
			// A failed cycle is skipped; the next one stays scheduled.
			log.Error().Err(err).Msg("notification cycle failed")
		}
	}); err != nil {
		return nil, fmt.Errorf("add daily entry: %w", err)
	}

	return &Scheduler{cron: c, logger: log}, nil
}

func dailySpec(hour int) string {
	return fmt.Sprintf("0 %d * * *", hour)
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Msg("scheduler started")
}

// Stop halts scheduling and waits for an in-flight cycle to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("scheduler stopped")
}
