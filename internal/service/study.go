package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"langportal/internal/domain"
	"langportal/internal/repository"

	"go.uber.org/zap"
)

// StudyService runs study sessions and records review outcomes
type StudyService struct {
	studyRepo repository.StudyRepository
	groupRepo repository.GroupRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewStudyService creates a new study service
func NewStudyService(studyRepo repository.StudyRepository, groupRepo repository.GroupRepository, logger *zap.Logger) *StudyService {
	return &StudyService{
		studyRepo: studyRepo,
		groupRepo: groupRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// StartSession opens a session of the named activity, creating the group and activity on first use
func (s *StudyService) StartSession(ctx context.Context, groupName, activityName string) (int64, error) {
	group, err := ensureGroup(ctx, s.groupRepo, groupName)
	if err != nil {
		return 0, err
	}

	activity, err := s.studyRepo.FindActivity(ctx, group.ID, activityName)
	if err != nil {
		return 0, err
	}
	if activity == nil {
		activity, err = s.createActivity(ctx, group.ID, activityName)
		if err != nil {
			return 0, err
		}
	}

	sessionID, err := s.studyRepo.CreateSession(ctx, activity.ID, s.now())
	if err != nil {
		return 0, err
	}

	s.logger.Info("Study session started",
		zap.Int64("session_id", sessionID),
		zap.String("group", group.Name),
		zap.String("activity", activityName),
	)
	return sessionID, nil
}

// createActivity adds an activity to a group, picking up one created concurrently
func (s *StudyService) createActivity(ctx context.Context, groupID int64, name string) (*domain.StudyActivity, error) {
	activity := &domain.StudyActivity{GroupID: groupID, Name: name}
	err := s.studyRepo.CreateActivity(ctx, activity)
	if err == nil {
		return activity, nil
	}
	if !errors.Is(err, domain.ErrConstraintViolation) {
		return nil, err
	}

	existing, findErr := s.studyRepo.FindActivity(ctx, groupID, name)
	if findErr != nil {
		return nil, findErr
	}
	if existing == nil {
		return nil, err
	}
	return existing, nil
}

// ListActivities returns all study activities ordered by name
func (s *StudyService) ListActivities(ctx context.Context) ([]domain.StudyActivity, error) {
	return s.studyRepo.ListActivities(ctx)
}

// RecordReview stores one answer of a session
func (s *StudyService) RecordReview(ctx context.Context, sessionID, wordID int64, correct bool) error {
	return s.studyRepo.AddReviewItem(ctx, &domain.ReviewItem{
		SessionID: sessionID,
		WordID:    wordID,
		IsCorrect: correct,
		CreatedAt: s.now(),
	})
}

// FinishSession closes a session and returns its answers
func (s *StudyService) FinishSession(ctx context.Context, sessionID int64) ([]domain.ReviewItem, error) {
	if err := s.studyRepo.EndSession(ctx, sessionID, s.now()); err != nil {
		return nil, err
	}
	return s.studyRepo.SessionReviewItems(ctx, sessionID)
}

// RecentSession returns the latest session summary, or nil when nothing was studied
func (s *StudyService) RecentSession(ctx context.Context) (*domain.SessionSummary, error) {
	return s.studyRepo.RecentSession(ctx)
}

// CheckAnswer compares an answer with the word's meaning ignoring case and spacing.
// Any of the comma or semicolon separated meanings is accepted.
func CheckAnswer(word *domain.Word, answer string) bool {
	given := normalizeAnswer(answer)
	if given == "" {
		return false
	}

	for _, meaning := range strings.FieldsFunc(word.Meaning, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		if normalizeAnswer(meaning) == given {
			return true
		}
	}
	return false
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
