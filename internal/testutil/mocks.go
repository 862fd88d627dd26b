package testutil

import (
	"context"
	"time"

	"langportal/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureUserExists(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockWordRepository is a mock for WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) CreateWord(ctx context.Context, word *domain.Word) error {
	args := m.Called(ctx, word)
	return args.Error(0)
}

func (m *MockWordRepository) GetWord(ctx context.Context, wordID int64) (*domain.Word, error) {
	args := m.Called(ctx, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordRepository) UpdateWord(ctx context.Context, word *domain.Word) error {
	args := m.Called(ctx, word)
	return args.Error(0)
}

func (m *MockWordRepository) DeleteWord(ctx context.Context, wordID int64) error {
	args := m.Called(ctx, wordID)
	return args.Error(0)
}

func (m *MockWordRepository) ListWords(ctx context.Context, query domain.WordQuery) ([]domain.WordWithStats, int, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.WordWithStats), args.Int(1), args.Error(2)
}

func (m *MockWordRepository) GetRandomWord(ctx context.Context) (*domain.Word, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

// MockGroupRepository is a mock for GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) CreateGroup(ctx context.Context, name string) (*domain.Group, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) GetGroupByName(ctx context.Context, name string) (*domain.Group, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) ListGroups(ctx context.Context) ([]domain.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}

func (m *MockGroupRepository) AddWord(ctx context.Context, groupID, wordID int64) error {
	args := m.Called(ctx, groupID, wordID)
	return args.Error(0)
}

func (m *MockGroupRepository) RemoveWord(ctx context.Context, groupID, wordID int64) error {
	args := m.Called(ctx, groupID, wordID)
	return args.Error(0)
}

func (m *MockGroupRepository) GroupWords(ctx context.Context, groupID int64) ([]domain.Word, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Word), args.Error(1)
}

// MockStudyRepository is a mock for StudyRepository
type MockStudyRepository struct {
	mock.Mock
}

func (m *MockStudyRepository) CreateActivity(ctx context.Context, activity *domain.StudyActivity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockStudyRepository) FindActivity(ctx context.Context, groupID int64, name string) (*domain.StudyActivity, error) {
	args := m.Called(ctx, groupID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudyActivity), args.Error(1)
}

func (m *MockStudyRepository) ListActivities(ctx context.Context) ([]domain.StudyActivity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudyActivity), args.Error(1)
}

func (m *MockStudyRepository) CreateSession(ctx context.Context, activityID int64, startedAt time.Time) (int64, error) {
	args := m.Called(ctx, activityID, startedAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStudyRepository) EndSession(ctx context.Context, sessionID int64, endedAt time.Time) error {
	args := m.Called(ctx, sessionID, endedAt)
	return args.Error(0)
}

func (m *MockStudyRepository) AddReviewItem(ctx context.Context, item *domain.ReviewItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStudyRepository) SessionReviewItems(ctx context.Context, sessionID int64) ([]domain.ReviewItem, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReviewItem), args.Error(1)
}

func (m *MockStudyRepository) RecentSession(ctx context.Context) (*domain.SessionSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionSummary), args.Error(1)
}

func (m *MockStudyRepository) CloseStaleSessions(ctx context.Context, startedBefore, endedAt time.Time) (int64, error) {
	args := m.Called(ctx, startedBefore, endedAt)
	return args.Get(0).(int64), args.Error(1)
}

// MockStatsRepository is a mock for StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) DashboardSnapshot(ctx context.Context) (domain.StatsSnapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.StatsSnapshot), args.Error(1)
}

func (m *MockStatsRepository) Counts(ctx context.Context) (domain.StoreCounts, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.StoreCounts), args.Error(1)
}

// MockDashboardProvider is a mock for service.DashboardProvider
type MockDashboardProvider struct {
	mock.Mock
}

func (m *MockDashboardProvider) Stats(ctx context.Context) (domain.DashboardStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.DashboardStats), args.Error(1)
}
