package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"langportal/internal/domain"
	"langportal/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockDB wraps sqlmock in a postgres flavoured sqlx handle
func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestUserRepo_IsAuthorized(t *testing.T) {
	tests := []struct {
		name          string
		userID        int64
		mockRows      *sqlmock.Rows
		mockError     error
		expectedAuth  bool
		expectedError error
	}{
		{
			name:         "authorized user",
			userID:       123,
			mockRows:     sqlmock.NewRows([]string{"authorized"}).AddRow(true),
			expectedAuth: true,
		},
		{
			name:         "unauthorized user",
			userID:       456,
			mockRows:     sqlmock.NewRows([]string{"authorized"}).AddRow(false),
			expectedAuth: false,
		},
		{
			name:         "user not exists",
			userID:       789,
			mockError:    sql.ErrNoRows,
			expectedAuth: false,
		},
		{
			name:          "connection lost",
			userID:        123,
			mockError:     sql.ErrConnDone,
			expectedError: domain.ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewUserRepo(db)

			query := "SELECT authorized FROM users WHERE user_id = \\$1"

			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(tt.userID).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(tt.userID).WillReturnRows(tt.mockRows)
			}

			authorized, err := repo.IsAuthorized(context.Background(), tt.userID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedAuth, authorized)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_AuthorizeUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	userID := int64(123)

	// Only userID is a parameter, TRUE is a SQL constant
	mock.ExpectExec("INSERT INTO users").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.AuthorizeUser(context.Background(), userID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_EnsureUserExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	userID := int64(123)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(userID).
		WillReturnError(errors.New("boom"))

	err := repo.EnsureUserExists(context.Background(), userID)

	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "ensure user exists", storageErr.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_SQLite(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo(testutil.NewSQLiteDB(t))

	authorized, err := repo.IsAuthorized(ctx, 42)
	require.NoError(t, err)
	assert.False(t, authorized)

	require.NoError(t, repo.EnsureUserExists(ctx, 42))
	require.NoError(t, repo.EnsureUserExists(ctx, 42))

	authorized, err = repo.IsAuthorized(ctx, 42)
	require.NoError(t, err)
	assert.False(t, authorized)

	require.NoError(t, repo.AuthorizeUser(ctx, 42))

	authorized, err = repo.IsAuthorized(ctx, 42)
	require.NoError(t, err)
	assert.True(t, authorized)
}
