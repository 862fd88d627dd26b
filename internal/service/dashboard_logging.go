package service

import (
	"context"
	"time"

	"langportal/internal/domain"

	"go.uber.org/zap"
)

// LoggedDashboard logs timing and failures of another DashboardProvider
type LoggedDashboard struct {
	next   DashboardProvider
	logger *zap.Logger
}

// NewLoggedDashboard wraps next with logging
func NewLoggedDashboard(next DashboardProvider, logger *zap.Logger) *LoggedDashboard {
	return &LoggedDashboard{next: next, logger: logger}
}

// Stats delegates to the wrapped provider
func (d *LoggedDashboard) Stats(ctx context.Context) (domain.DashboardStats, error) {
	start := time.Now()
	d.logger.Debug("Calculating dashboard stats")

	stats, err := d.next.Stats(ctx)
	duration := time.Since(start)
	if err != nil {
		d.logger.Error("Failed to calculate dashboard stats",
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return stats, err
	}

	d.logger.Info("Dashboard stats calculated",
		zap.Duration("duration", duration),
		zap.Int("total_vocabulary", stats.TotalVocabulary),
		zap.Int("total_sessions", stats.TotalSessions),
	)
	return stats, nil
}
