package service

import (
	"context"
	"time"

	"langportal/internal/repository"

	"go.uber.org/zap"
)

// MaintenanceService handles periodic housekeeping of the store
type MaintenanceService struct {
	studyRepo repository.StudyRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(studyRepo repository.StudyRepository, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{
		studyRepo: studyRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// CloseStaleSessions ends sessions left open for longer than maxAge
func (s *MaintenanceService) CloseStaleSessions(ctx context.Context, maxAge time.Duration) (int64, error) {
	now := s.now()

	s.logger.Info("Closing stale study sessions", zap.Duration("max_age", maxAge))

	closed, err := s.studyRepo.CloseStaleSessions(ctx, now.Add(-maxAge), now)
	if err != nil {
		s.logger.Error("Failed to close stale sessions", zap.Error(err))
		return 0, err
	}

	s.logger.Info("Stale session cleanup completed", zap.Int64("closed", closed))
	return closed, nil
}
