// Package schedule runs the aggregation pass on a fixed interval.
package schedule

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"careertracker/internal/fetch"
)

// Scheduler wraps robfig/cron around the fetch runner.
type Scheduler struct {
	cron   *cron.Cron
	runner *fetch.Runner
	spec   string
	logger *zap.Logger
}

// New creates a scheduler firing every intervalHours hours.
func New(runner *fetch.Runner, intervalHours int, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		runner: runner,
		spec:   fmt.Sprintf("@every %dh", intervalHours),
		logger: logger,
	}
}

// Start registers the job and kicks off one pass immediately so postings are
// populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.runOnce(ctx) }); err != nil {
		return fmt.Errorf("registering cron job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("spec", s.spec))

	go s.runOnce(ctx)

	return nil
}

// Stop halts the cron loop. A pass already in flight finishes on its own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if _, err := s.runner.Run(ctx); err != nil {
		s.logger.Error("scheduled pass failed", zap.Error(err))
	}
}
