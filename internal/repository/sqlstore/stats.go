package sqlstore

import (
	"context"

	"langportal/internal/domain"

	"github.com/jmoiron/sqlx"
)

// StatsRepo implements repository.StatsRepository
type StatsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new stats repository
func NewStatsRepo(db *sqlx.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// DashboardSnapshot reads everything the dashboard computation needs in one transaction.
// Reviews of words that no longer exist are left out.
func (r *StatsRepo) DashboardSnapshot(ctx context.Context) (domain.StatsSnapshot, error) {
	var snap domain.StatsSnapshot

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return snap, wrapErr("begin snapshot", err)
	}
	defer tx.Rollback()

	if err := tx.GetContext(ctx, &snap.TotalWords, `SELECT COUNT(*) FROM words`); err != nil {
		return domain.StatsSnapshot{}, wrapErr("count words", err)
	}

	snap.Reviews, err = r.wordTallies(ctx, tx)
	if err != nil {
		return domain.StatsSnapshot{}, err
	}

	snap.Sessions, err = r.sessionStarts(ctx, tx)
	if err != nil {
		return domain.StatsSnapshot{}, err
	}

	return snap, nil
}

func (r *StatsRepo) wordTallies(ctx context.Context, tx *sqlx.Tx) ([]domain.WordTally, error) {
	query := `
		SELECT
			wri.word_id,
			COUNT(*) AS total,
			SUM(CASE WHEN wri.is_correct THEN 1 ELSE 0 END) AS correct
		FROM word_review_items wri
		JOIN words w ON w.word_id = wri.word_id
		GROUP BY wri.word_id
	`
	rows, err := tx.QueryxContext(ctx, query)
	if err != nil {
		return nil, wrapErr("word tallies", err)
	}
	defer rows.Close()

	var tallies []domain.WordTally
	for rows.Next() {
		var t domain.WordTally
		if err := rows.StructScan(&t); err != nil {
			return nil, scanErr("scan word tally", err)
		}
		tallies = append(tallies, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("word tallies", err)
	}

	return tallies, nil
}

func (r *StatsRepo) sessionStarts(ctx context.Context, tx *sqlx.Tx) ([]domain.SessionStart, error) {
	query := `
		SELECT ss.start_time, g.group_id
		FROM study_sessions ss
		LEFT JOIN study_activities sa ON ss.study_activity_id = sa.study_activity_id
		LEFT JOIN groups g ON sa.group_id = g.group_id
		ORDER BY ss.start_time DESC
	`
	rows, err := tx.QueryxContext(ctx, query)
	if err != nil {
		return nil, wrapErr("session starts", err)
	}
	defer rows.Close()

	var starts []domain.SessionStart
	for rows.Next() {
		var s domain.SessionStart
		if err := rows.StructScan(&s); err != nil {
			return nil, scanErr("scan session start", err)
		}
		starts = append(starts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("session starts", err)
	}

	return starts, nil
}

// Counts returns row counts of words, sessions and reviews
func (r *StatsRepo) Counts(ctx context.Context) (domain.StoreCounts, error) {
	var c domain.StoreCounts
	query := `
		SELECT
			(SELECT COUNT(*) FROM words) AS total_words,
			(SELECT COUNT(*) FROM study_sessions) AS total_sessions,
			(SELECT COUNT(*) FROM word_review_items) AS total_reviews
	`
	if err := r.db.GetContext(ctx, &c, query); err != nil {
		return domain.StoreCounts{}, wrapErr("counts", err)
	}
	return c, nil
}
