package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// IsAuthorized checks if user is authorized
func (r *UserRepo) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	var authorized bool
	query := r.db.Rebind(`SELECT authorized FROM users WHERE user_id = ?`)
	err := r.db.QueryRowxContext(ctx, query, userID).Scan(&authorized)

	if errors.Is(err, sql.ErrNoRows) {
		// User doesn't exist yet
		return false, nil
	}
	if err != nil {
		return false, wrapErr("is authorized", err)
	}

	return authorized, nil
}

// AuthorizeUser marks user as authorized
func (r *UserRepo) AuthorizeUser(ctx context.Context, userID int64) error {
	query := r.db.Rebind(`
		INSERT INTO users (user_id, authorized)
		VALUES (?, TRUE)
		ON CONFLICT (user_id)
		DO UPDATE SET authorized = TRUE
	`)
	_, err := r.db.ExecContext(ctx, query, userID)
	return wrapErr("authorize user", err)
}

// EnsureUserExists creates user if not exists
func (r *UserRepo) EnsureUserExists(ctx context.Context, userID int64) error {
	query := r.db.Rebind(`
		INSERT INTO users (user_id, authorized)
		VALUES (?, FALSE)
		ON CONFLICT (user_id) DO NOTHING
	`)
	_, err := r.db.ExecContext(ctx, query, userID)
	return wrapErr("ensure user exists", err)
}
