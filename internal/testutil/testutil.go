package testutil

import (
	"testing"
	"time"

	"langportal/internal/database"
	"langportal/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewSQLiteDB opens a migrated in-memory database closed at test cleanup
func NewSQLiteDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.OpenMemory(NewTestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// NewTestUser creates a test user
func NewTestUser(userID int64, authorized bool) *domain.User {
	return &domain.User{
		UserID:     userID,
		Authorized: authorized,
		CreatedAt:  time.Now(),
	}
}

// NewTestWord creates a test word
func NewTestWord(id int64, text, meaning string) *domain.Word {
	return &domain.Word{
		ID:              id,
		Text:            text,
		Transliteration: text,
		Meaning:         meaning,
		PartOfSpeech:    "noun",
		CreatedAt:       time.Now().UTC(),
	}
}

// Int64Ptr returns a pointer to v
func Int64Ptr(v int64) *int64 {
	return &v
}
