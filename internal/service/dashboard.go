package service

import (
	"context"
	"time"

	"langportal/internal/domain"
	"langportal/internal/repository"
)

// activityWindowDays is how far back sessions count toward the dashboard
const activityWindowDays = 30

// DashboardProvider returns the dashboard summary
type DashboardProvider interface {
	Stats(ctx context.Context) (domain.DashboardStats, error)
}

// DashboardService computes dashboard statistics from a store snapshot
type DashboardService struct {
	statsRepo repository.StatsRepository
	loc       *time.Location
	now       func() time.Time
}

// NewDashboardService creates a dashboard service counting calendar days in loc
func NewDashboardService(statsRepo repository.StatsRepository, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{
		statsRepo: statsRepo,
		loc:       loc,
		now:       time.Now,
	}
}

// Stats reads a snapshot and computes the dashboard. Storage failures are
// returned as is so callers can tell unavailable from corrupt.
func (s *DashboardService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	snap, err := s.statsRepo.DashboardSnapshot(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	return ComputeDashboardStats(snap, s.now().In(s.loc)), nil
}

// ComputeDashboardStats derives the dashboard from a snapshot as of now.
// Calendar days are taken in now's location.
func ComputeDashboardStats(snap domain.StatsSnapshot, now time.Time) domain.DashboardStats {
	stats := domain.DashboardStats{
		TotalVocabulary: snap.TotalWords,
	}

	var reviews, correct int
	for _, tally := range snap.Reviews {
		if tally.Total <= 0 {
			continue
		}
		stats.TotalWordsStudied++
		if tally.Mastered() {
			stats.MasteredWords++
		}
		reviews += tally.Total
		correct += tally.Correct
	}
	if reviews > 0 {
		stats.SuccessRate = float64(correct) / float64(reviews)
	}

	windowStart := startOfDay(now).AddDate(0, 0, -activityWindowDays)
	groups := make(map[int64]struct{})
	starts := make([]time.Time, 0, len(snap.Sessions))
	for _, session := range snap.Sessions {
		starts = append(starts, session.StartedAt)
		if session.GroupID == nil || session.StartedAt.Before(windowStart) {
			continue
		}
		stats.TotalSessions++
		groups[*session.GroupID] = struct{}{}
	}
	stats.ActiveGroups = len(groups)
	stats.CurrentStreak = currentStreak(domain.GroupByDay(starts, now.Location()))

	return stats
}

// currentStreak counts consecutive days back from the most recent one.
// days must be distinct and sorted newest first.
func currentStreak(days []domain.Day) int {
	if len(days) == 0 {
		return 0
	}

	streak := 1
	expected := days[0].Previous()
	for _, day := range days[1:] {
		if !day.Date.Equal(expected) {
			break
		}
		streak++
		expected = day.Previous()
	}
	return streak
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
