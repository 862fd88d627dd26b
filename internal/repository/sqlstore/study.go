package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"langportal/internal/domain"

	"github.com/jmoiron/sqlx"
)

// StudyRepo implements repository.StudyRepository
type StudyRepo struct {
	db *sqlx.DB
}

// NewStudyRepo creates a new study repository
func NewStudyRepo(db *sqlx.DB) *StudyRepo {
	return &StudyRepo{db: db}
}

// CreateActivity inserts a study activity and fills in its ID
func (r *StudyRepo) CreateActivity(ctx context.Context, activity *domain.StudyActivity) error {
	query := r.db.Rebind(`
		INSERT INTO study_activities (group_id, name)
		VALUES (?, ?)
		RETURNING study_activity_id
	`)
	err := r.db.QueryRowxContext(ctx, query, activity.GroupID, activity.Name).Scan(&activity.ID)
	return wrapErr("create activity", err)
}

// FindActivity returns the named activity of a group, or nil when absent
func (r *StudyRepo) FindActivity(ctx context.Context, groupID int64, name string) (*domain.StudyActivity, error) {
	var a domain.StudyActivity
	query := r.db.Rebind(`
		SELECT study_activity_id, group_id, name
		FROM study_activities
		WHERE group_id = ? AND name = ?
	`)
	err := r.db.GetContext(ctx, &a, query, groupID, name)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("find activity", err)
	}

	return &a, nil
}

// ListActivities returns all activities ordered by name
func (r *StudyRepo) ListActivities(ctx context.Context) ([]domain.StudyActivity, error) {
	activities := []domain.StudyActivity{}
	query := `SELECT study_activity_id, group_id, name FROM study_activities ORDER BY name`
	if err := r.db.SelectContext(ctx, &activities, query); err != nil {
		return nil, wrapErr("list activities", err)
	}
	return activities, nil
}

// CreateSession starts a session of an activity
func (r *StudyRepo) CreateSession(ctx context.Context, activityID int64, startedAt time.Time) (int64, error) {
	var id int64
	query := r.db.Rebind(`
		INSERT INTO study_sessions (study_activity_id, start_time)
		VALUES (?, ?)
		RETURNING study_session_id
	`)
	if err := r.db.QueryRowxContext(ctx, query, activityID, startedAt.UTC()).Scan(&id); err != nil {
		return 0, wrapErr("create session", err)
	}
	return id, nil
}

// EndSession sets the end time of a session
func (r *StudyRepo) EndSession(ctx context.Context, sessionID int64, endedAt time.Time) error {
	query := r.db.Rebind(`UPDATE study_sessions SET end_time = ? WHERE study_session_id = ?`)
	res, err := r.db.ExecContext(ctx, query, endedAt.UTC(), sessionID)
	if err != nil {
		return wrapErr("end session", err)
	}
	return expectAffected("end session", res)
}

// AddReviewItem records a review outcome and fills in its ID
func (r *StudyRepo) AddReviewItem(ctx context.Context, item *domain.ReviewItem) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	query := r.db.Rebind(`
		INSERT INTO word_review_items (study_session_id, word_id, is_correct, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING word_review_item_id
	`)
	err := r.db.QueryRowxContext(ctx, query,
		item.SessionID, item.WordID, item.IsCorrect, item.CreatedAt.UTC(),
	).Scan(&item.ID)
	return wrapErr("add review item", err)
}

// SessionReviewItems returns the review outcomes of a session in insertion order
func (r *StudyRepo) SessionReviewItems(ctx context.Context, sessionID int64) ([]domain.ReviewItem, error) {
	items := []domain.ReviewItem{}
	query := r.db.Rebind(`
		SELECT word_review_item_id, study_session_id, word_id, is_correct, created_at
		FROM word_review_items
		WHERE study_session_id = ?
		ORDER BY word_review_item_id
	`)
	if err := r.db.SelectContext(ctx, &items, query, sessionID); err != nil {
		return nil, wrapErr("session review items", err)
	}
	return items, nil
}

// RecentSession returns the latest session with its outcome counts, or nil when there are none
func (r *StudyRepo) RecentSession(ctx context.Context) (*domain.SessionSummary, error) {
	var s domain.SessionSummary
	query := `
		SELECT
			ss.study_session_id AS id,
			sa.group_id,
			sa.name AS activity_name,
			ss.start_time AS created_at,
			COALESCE(SUM(CASE WHEN wri.is_correct THEN 1 ELSE 0 END), 0) AS correct_count,
			COALESCE(SUM(CASE WHEN NOT wri.is_correct THEN 1 ELSE 0 END), 0) AS wrong_count
		FROM study_sessions ss
		JOIN study_activities sa ON ss.study_activity_id = sa.study_activity_id
		LEFT JOIN word_review_items wri ON ss.study_session_id = wri.study_session_id
		GROUP BY ss.study_session_id, sa.group_id, sa.name, ss.start_time
		ORDER BY ss.start_time DESC, ss.study_session_id DESC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &s, query)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("recent session", err)
	}

	return &s, nil
}

// CloseStaleSessions ends every open session that started before the cutoff
func (r *StudyRepo) CloseStaleSessions(ctx context.Context, startedBefore, endedAt time.Time) (int64, error) {
	query := r.db.Rebind(`
		UPDATE study_sessions
		SET end_time = ?
		WHERE end_time IS NULL AND start_time < ?
	`)
	res, err := r.db.ExecContext(ctx, query, endedAt.UTC(), startedBefore.UTC())
	if err != nil {
		return 0, wrapErr("close stale sessions", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrapErr("close stale sessions", err)
	}
	return n, nil
}
