// Package scheduler drives automatic sweeps: on an interval it checks whether
// today is a sweep day and, if so, sweeps every eligible user.
package scheduler

import (
	"context"
	"time"

	"paisa/internal/logger"
	"paisa/internal/services"
)

// Scheduler ticks at a fixed interval and runs due sweeps on each tick.
type Scheduler struct {
	sweepService services.SweepServicer
	interval     time.Duration
	now          func() time.Time
}

// New creates a Scheduler ticking at the given interval.
func New(sweepService services.SweepServicer, interval time.Duration) *Scheduler {
	return &Scheduler{
		sweepService: sweepService,
		interval:     interval,
		now:          time.Now,
	}
}

// Start runs the tick loop until ctx is cancelled. It blocks; run it in its
// own goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	logger.Get().Infow("sweep scheduler started", "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Get().Infow("sweep scheduler stopped")
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// tick executes one scheduler cycle. Errors are logged, never fatal; the next
// tick gets a fresh chance.
func (s *Scheduler) tick() {
	start := s.now()
	result, err := s.sweepService.RunDue(start)
	if err != nil {
		logger.Get().Errorw("sweep cycle failed", "error", err)
		return
	}
	if result.UsersChecked == 0 {
		return
	}

	logger.Get().Infow("sweep cycle completed",
		"users_checked", result.UsersChecked,
		"swept", result.Swept,
		"skipped", result.Skipped,
		"failures", result.Failures,
		"orders_placed", result.OrdersPlaced,
		"invested", result.Invested,
		"duration", time.Since(start).String(),
	)
}
