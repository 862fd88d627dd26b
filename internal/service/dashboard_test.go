package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"langportal/internal/domain"
	"langportal/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

func sessionAt(t time.Time, groupID int64) domain.SessionStart {
	return domain.SessionStart{StartedAt: t, GroupID: testutil.Int64Ptr(groupID)}
}

func TestComputeDashboardStats_VocabularyAndMastery(t *testing.T) {
	snap := domain.StatsSnapshot{
		TotalWords: 3,
		Reviews: []domain.WordTally{
			{WordID: 1, Total: 3, Correct: 3},
			{WordID: 2, Total: 1, Correct: 0},
		},
	}

	stats := ComputeDashboardStats(snap, testNow)

	assert.Equal(t, 3, stats.TotalVocabulary)
	assert.Equal(t, 2, stats.TotalWordsStudied)
	assert.Equal(t, 1, stats.MasteredWords)
	assert.Equal(t, 0.75, stats.SuccessRate)
}

func TestComputeDashboardStats_EmptyStore(t *testing.T) {
	stats := ComputeDashboardStats(domain.StatsSnapshot{}, testNow)
	assert.Equal(t, domain.DashboardStats{}, stats)
	assert.Equal(t, 0.0, stats.SuccessRate)
}

func TestComputeDashboardStats_MasteryThreshold(t *testing.T) {
	tests := []struct {
		name     string
		tally    domain.WordTally
		mastered int
	}{
		{"exactly 80 percent", domain.WordTally{WordID: 1, Total: 5, Correct: 4}, 1},
		{"just below", domain.WordTally{WordID: 1, Total: 9, Correct: 7}, 0},
		{"all wrong", domain.WordTally{WordID: 1, Total: 4, Correct: 0}, 0},
		{"single correct", domain.WordTally{WordID: 1, Total: 1, Correct: 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := ComputeDashboardStats(domain.StatsSnapshot{
				TotalWords: 1,
				Reviews:    []domain.WordTally{tt.tally},
			}, testNow)
			assert.Equal(t, 1, stats.TotalWordsStudied)
			assert.Equal(t, tt.mastered, stats.MasteredWords)
		})
	}
}

func TestComputeDashboardStats_Streak(t *testing.T) {
	day := func(offset int) time.Time {
		return testNow.AddDate(0, 0, -offset)
	}

	tests := []struct {
		name     string
		sessions []domain.SessionStart
		expected int
	}{
		{
			name:     "no sessions",
			expected: 0,
		},
		{
			name:     "today, yesterday and the day before",
			sessions: []domain.SessionStart{sessionAt(day(0), 1), sessionAt(day(1), 1), sessionAt(day(2), 1)},
			expected: 3,
		},
		{
			name: "gap before an older session",
			sessions: []domain.SessionStart{
				sessionAt(day(0), 1), sessionAt(day(1), 1), sessionAt(day(2), 1), sessionAt(day(4), 1),
			},
			expected: 3,
		},
		{
			name:     "several sessions on one day",
			sessions: []domain.SessionStart{sessionAt(day(0), 1), sessionAt(day(0).Add(-time.Hour), 2)},
			expected: 1,
		},
		{
			name:     "run starts at the most recent day",
			sessions: []domain.SessionStart{sessionAt(day(10), 1), sessionAt(day(11), 1)},
			expected: 2,
		},
		{
			name:     "unordered input",
			sessions: []domain.SessionStart{sessionAt(day(2), 1), sessionAt(day(0), 1), sessionAt(day(1), 1)},
			expected: 3,
		},
		{
			name:     "sessions without a group still count",
			sessions: []domain.SessionStart{{StartedAt: day(0)}, {StartedAt: day(1)}},
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := ComputeDashboardStats(domain.StatsSnapshot{Sessions: tt.sessions}, testNow)
			assert.Equal(t, tt.expected, stats.CurrentStreak)
		})
	}
}

func TestComputeDashboardStats_StreakUsesLocalCalendar(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// one UTC day, two consecutive Tokyo days
	sessions := []domain.SessionStart{
		sessionAt(time.Date(2024, 6, 14, 0, 30, 0, 0, time.UTC), 1),
		sessionAt(time.Date(2024, 6, 14, 16, 30, 0, 0, time.UTC), 1),
	}
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, tokyo)

	assert.Equal(t, 2, ComputeDashboardStats(domain.StatsSnapshot{Sessions: sessions}, now).CurrentStreak)
	assert.Equal(t, 1, ComputeDashboardStats(domain.StatsSnapshot{Sessions: sessions}, now.UTC()).CurrentStreak)
}

func TestComputeDashboardStats_ActivityWindow(t *testing.T) {
	windowStart := time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC)
	snap := domain.StatsSnapshot{
		Sessions: []domain.SessionStart{
			sessionAt(testNow, 1),
			sessionAt(testNow.AddDate(0, 0, -3), 2),
			sessionAt(windowStart, 3),
			sessionAt(windowStart.Add(-time.Second), 4),
			{StartedAt: testNow},
		},
	}

	stats := ComputeDashboardStats(snap, testNow)

	assert.Equal(t, 3, stats.TotalSessions)
	assert.Equal(t, 3, stats.ActiveGroups)
}

func TestComputeDashboardStats_ActiveGroupsDistinct(t *testing.T) {
	snap := domain.StatsSnapshot{
		Sessions: []domain.SessionStart{
			sessionAt(testNow, 1),
			sessionAt(testNow.Add(-time.Hour), 1),
			sessionAt(testNow.Add(-2*time.Hour), 2),
		},
	}

	stats := ComputeDashboardStats(snap, testNow)

	assert.Equal(t, 3, stats.TotalSessions)
	assert.Equal(t, 2, stats.ActiveGroups)
}

func TestComputeDashboardStats_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		t.Run(fmt.Sprintf("case %d", i), func(t *testing.T) {
			snap := randomSnapshot(rng)

			stats := ComputeDashboardStats(snap, testNow)

			assert.GreaterOrEqual(t, stats.SuccessRate, 0.0)
			assert.LessOrEqual(t, stats.SuccessRate, 1.0)
			assert.LessOrEqual(t, stats.MasteredWords, stats.TotalWordsStudied)
			assert.LessOrEqual(t, stats.TotalWordsStudied, stats.TotalVocabulary)
			assert.LessOrEqual(t, stats.ActiveGroups, stats.TotalSessions)
			if len(snap.Sessions) == 0 {
				assert.Zero(t, stats.CurrentStreak)
			}
			if len(snap.Reviews) == 0 {
				assert.Zero(t, stats.SuccessRate)
				assert.Zero(t, stats.MasteredWords)
			}
			assert.Equal(t, stats, ComputeDashboardStats(snap, testNow))
		})
	}
}

func randomSnapshot(rng *rand.Rand) domain.StatsSnapshot {
	snap := domain.StatsSnapshot{TotalWords: rng.Intn(20)}

	for id := 1; id <= snap.TotalWords; id++ {
		if rng.Intn(2) == 0 {
			continue
		}
		total := 1 + rng.Intn(10)
		snap.Reviews = append(snap.Reviews, domain.WordTally{
			WordID:  int64(id),
			Total:   total,
			Correct: rng.Intn(total + 1),
		})
	}

	for n := rng.Intn(15); n > 0; n-- {
		started := testNow.Add(-time.Duration(rng.Intn(60*24)) * time.Hour)
		if rng.Intn(5) == 0 {
			snap.Sessions = append(snap.Sessions, domain.SessionStart{StartedAt: started})
			continue
		}
		snap.Sessions = append(snap.Sessions, sessionAt(started, int64(1+rng.Intn(4))))
	}

	return snap
}

func TestDashboardService_Stats(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	snap := domain.StatsSnapshot{
		TotalWords: 2,
		Reviews:    []domain.WordTally{{WordID: 1, Total: 2, Correct: 1}},
		Sessions:   []domain.SessionStart{sessionAt(testNow, 1)},
	}

	mockRepo := new(testutil.MockStatsRepository)
	mockRepo.On("DashboardSnapshot", context.Background()).Return(snap, nil)

	service := NewDashboardService(mockRepo, tokyo)
	service.now = func() time.Time { return testNow }

	stats, err := service.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DashboardStats{
		TotalVocabulary:   2,
		TotalWordsStudied: 1,
		MasteredWords:     0,
		SuccessRate:       0.5,
		TotalSessions:     1,
		ActiveGroups:      1,
		CurrentStreak:     1,
	}, stats)
	mockRepo.AssertExpectations(t)
}

func TestDashboardService_StorageFailure(t *testing.T) {
	tests := []struct {
		name string
		kind error
	}{
		{"unavailable", domain.ErrStorageUnavailable},
		{"corrupt", domain.ErrStorageCorrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storageErr := &domain.StorageError{Kind: tt.kind, Op: "word tallies", Err: errors.New("boom")}

			mockRepo := new(testutil.MockStatsRepository)
			mockRepo.On("DashboardSnapshot", context.Background()).Return(domain.StatsSnapshot{}, storageErr)

			stats, err := NewDashboardService(mockRepo, nil).Stats(context.Background())

			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, domain.DashboardStats{}, stats)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestLoggedDashboard_Stats(t *testing.T) {
	want := domain.DashboardStats{TotalVocabulary: 5}

	next := new(testutil.MockDashboardProvider)
	next.On("Stats", context.Background()).Return(want, nil).Once()
	next.On("Stats", context.Background()).Return(domain.DashboardStats{}, domain.ErrStorageUnavailable).Once()

	logged := NewLoggedDashboard(next, testutil.NewTestLogger())

	stats, err := logged.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, stats)

	_, err = logged.Stats(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	next.AssertExpectations(t)
}
