package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// jobTimeout bounds a single maintenance run
const jobTimeout = time.Minute

// SessionCloser ends study sessions left open for too long
type SessionCloser interface {
	CloseStaleSessions(ctx context.Context, maxAge time.Duration) (int64, error)
}

// Scheduler manages periodic maintenance tasks
type Scheduler struct {
	scheduler  *gocron.Scheduler
	closer     SessionCloser
	staleAfter time.Duration
	logger     *zap.Logger
}

// New creates a new scheduler instance
func New(closer SessionCloser, staleAfter time.Duration, loc *time.Location, logger *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	s := gocron.NewScheduler(loc)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler:  s,
		closer:     closer,
		staleAfter: staleAfter,
		logger:     logger,
	}
}

// Start schedules the stale session sweep every interval and runs it once
// immediately. It does not block.
func (s *Scheduler) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("invalid maintenance interval: %s", interval)
	}

	if _, err := s.scheduler.Every(interval).Do(s.closeStaleSessions); err != nil {
		return fmt.Errorf("failed to schedule session cleanup: %w", err)
	}

	s.scheduler.StartAsync()
	s.logger.Info("Scheduler started",
		zap.Duration("interval", interval),
		zap.Duration("stale_after", s.staleAfter),
	)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) closeStaleSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.closer.CloseStaleSessions(ctx, s.staleAfter); err != nil {
		s.logger.Warn("Scheduled session cleanup failed", zap.Error(err))
	}
}
