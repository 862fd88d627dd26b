package repository

import (
	"context"
	"time"

	"langportal/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	IsAuthorized(ctx context.Context, userID int64) (bool, error)
	AuthorizeUser(ctx context.Context, userID int64) error
	EnsureUserExists(ctx context.Context, userID int64) error
}

// WordRepository defines word data operations
type WordRepository interface {
	CreateWord(ctx context.Context, word *domain.Word) error
	GetWord(ctx context.Context, wordID int64) (*domain.Word, error)
	UpdateWord(ctx context.Context, word *domain.Word) error
	DeleteWord(ctx context.Context, wordID int64) error
	ListWords(ctx context.Context, query domain.WordQuery) ([]domain.WordWithStats, int, error)
	GetRandomWord(ctx context.Context) (*domain.Word, error)
}

// GroupRepository defines group data operations
type GroupRepository interface {
	CreateGroup(ctx context.Context, name string) (*domain.Group, error)
	GetGroupByName(ctx context.Context, name string) (*domain.Group, error)
	ListGroups(ctx context.Context) ([]domain.Group, error)
	AddWord(ctx context.Context, groupID, wordID int64) error
	RemoveWord(ctx context.Context, groupID, wordID int64) error
	GroupWords(ctx context.Context, groupID int64) ([]domain.Word, error)
}

// StudyRepository defines study activity, session and review operations
type StudyRepository interface {
	CreateActivity(ctx context.Context, activity *domain.StudyActivity) error
	FindActivity(ctx context.Context, groupID int64, name string) (*domain.StudyActivity, error)
	ListActivities(ctx context.Context) ([]domain.StudyActivity, error)
	CreateSession(ctx context.Context, activityID int64, startedAt time.Time) (int64, error)
	EndSession(ctx context.Context, sessionID int64, endedAt time.Time) error
	AddReviewItem(ctx context.Context, item *domain.ReviewItem) error
	SessionReviewItems(ctx context.Context, sessionID int64) ([]domain.ReviewItem, error)
	RecentSession(ctx context.Context) (*domain.SessionSummary, error)
	CloseStaleSessions(ctx context.Context, startedBefore, endedAt time.Time) (int64, error)
}

// StatsRepository defines read-only aggregate queries
type StatsRepository interface {
	DashboardSnapshot(ctx context.Context) (domain.StatsSnapshot, error)
	Counts(ctx context.Context) (domain.StoreCounts, error)
}
