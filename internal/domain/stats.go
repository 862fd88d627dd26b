package domain

import "time"

// DashboardStats is the flat summary shown on the dashboard
type DashboardStats struct {
	TotalVocabulary   int     `json:"total_vocabulary"`
	TotalWordsStudied int     `json:"total_words_studied"`
	MasteredWords     int     `json:"mastered_words"`
	SuccessRate       float64 `json:"success_rate"`
	TotalSessions     int     `json:"total_sessions"`
	ActiveGroups      int     `json:"active_groups"`
	CurrentStreak     int     `json:"current_streak"`
}

// WordTally counts review outcomes for one word
type WordTally struct {
	WordID  int64 `db:"word_id"`
	Total   int   `db:"total"`
	Correct int   `db:"correct"`
}

// Mastered reports whether at least 80% of the word's reviews were correct
func (t WordTally) Mastered() bool {
	return t.Total > 0 && t.Correct*5 >= t.Total*4
}

// SessionStart is a session's start time and the group of its activity.
// GroupID is nil when the activity or group no longer resolves.
type SessionStart struct {
	StartedAt time.Time `db:"start_time"`
	GroupID   *int64    `db:"group_id"`
}

// StatsSnapshot is the raw input of the dashboard computation
type StatsSnapshot struct {
	TotalWords int
	Reviews    []WordTally
	Sessions   []SessionStart
}

// StoreCounts holds row counts of the main tables
type StoreCounts struct {
	TotalWords    int `db:"total_words" json:"total_words"`
	TotalSessions int `db:"total_sessions" json:"total_sessions"`
	TotalReviews  int `db:"total_reviews" json:"total_reviews"`
}
