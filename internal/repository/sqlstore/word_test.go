package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"langportal/internal/domain"
	"langportal/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wordRowColumns = []string{
	"word_id", "word_text", "transliteration", "meaning", "part_of_speech",
	"origin", "example_sentence", "created_at",
}

func TestWordRepo_CreateWord(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWordRepo(db)

	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	word := &domain.Word{
		Text:            "नमस्ते",
		Transliteration: "namaste",
		Meaning:         "hello",
		PartOfSpeech:    "interjection",
		CreatedAt:       created,
	}

	mock.ExpectQuery("INSERT INTO words .* RETURNING word_id").
		WithArgs("नमस्ते", "namaste", "hello", "interjection", nil, nil, created).
		WillReturnRows(sqlmock.NewRows([]string{"word_id"}).AddRow(7))

	err := repo.CreateWord(context.Background(), word)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), word.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_GetWord(t *testing.T) {
	tests := []struct {
		name         string
		mockRows     *sqlmock.Rows
		mockError    error
		wantErr      bool
		wantNotFound bool
	}{
		{
			name: "word found",
			mockRows: sqlmock.NewRows(wordRowColumns).
				AddRow(1, "पानी", "paani", "water", "noun", nil, nil, time.Now()),
		},
		{
			name:         "word missing",
			mockError:    sql.ErrNoRows,
			wantErr:      true,
			wantNotFound: true,
		},
		{
			name: "scan error",
			mockRows: sqlmock.NewRows(wordRowColumns).
				AddRow("invalid", "पानी", "paani", "water", "noun", nil, nil, time.Now()),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewWordRepo(db)

			query := "SELECT .* FROM words w WHERE w.word_id = \\$1"
			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(int64(1)).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(int64(1)).WillReturnRows(tt.mockRows)
			}

			word, err := repo.GetWord(context.Background(), 1)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, word)
				assert.Equal(t, tt.wantNotFound, errors.Is(err, domain.ErrNotFound))
			} else {
				require.NoError(t, err)
				assert.Equal(t, "water", word.Meaning)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWordRepo_UpdateWord_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWordRepo(db)

	mock.ExpectExec("UPDATE words").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateWord(context.Background(), testutil.NewTestWord(99, "x", "y"))

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_ListWords_Query(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWordRepo(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM words w WHERE LOWER").
		WithArgs("%wat%", "%wat%", "%wat%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rowColumns := append(append([]string{}, wordRowColumns...), "correct_count", "wrong_count")
	mock.ExpectQuery("ORDER BY correct_count DESC, w.word_id ASC\\s+LIMIT \\$4 OFFSET \\$5").
		WithArgs("%wat%", "%wat%", "%wat%", 10, 10).
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow(1, "पानी", "paani", "water", "noun", nil, nil, time.Now(), 3, 1))

	words, total, err := repo.ListWords(context.Background(), domain.WordQuery{
		Search:    "WAT",
		SortBy:    "correct_count",
		SortOrder: "desc",
		Page:      2,
		PageSize:  10,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, words, 1)
	assert.Equal(t, 3, words[0].CorrectCount)
	assert.Equal(t, 1, words[0].WrongCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		sortBy    string
		sortOrder string
		expected  string
	}{
		{"", "", "w.word_text ASC, w.word_id ASC"},
		{"meaning", "DESC", "w.meaning DESC, w.word_id ASC"},
		{"wrong_count", "asc", "wrong_count ASC, w.word_id ASC"},
		{"word_text; DROP TABLE words", "desc", "w.word_text DESC, w.word_id ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			assert.Equal(t, tt.expected, orderClause(tt.sortBy, tt.sortOrder))
		})
	}
}

func TestWordRepo_SQLite(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	repo := NewWordRepo(db)
	study := NewStudyRepo(db)
	groups := NewGroupRepo(db)

	random, err := repo.GetRandomWord(ctx)
	require.NoError(t, err)
	assert.Nil(t, random)

	origin := "Sanskrit"
	water := &domain.Word{Text: "पानी", Transliteration: "paani", Meaning: "water", PartOfSpeech: "noun", Origin: &origin}
	fire := &domain.Word{Text: "आग", Transliteration: "aag", Meaning: "fire", PartOfSpeech: "noun"}
	require.NoError(t, repo.CreateWord(ctx, water))
	require.NoError(t, repo.CreateWord(ctx, fire))
	assert.NotZero(t, water.ID)
	assert.NotEqual(t, water.ID, fire.ID)

	got, err := repo.GetWord(ctx, water.ID)
	require.NoError(t, err)
	assert.Equal(t, "paani", got.Transliteration)
	require.NotNil(t, got.Origin)
	assert.Equal(t, "Sanskrit", *got.Origin)
	assert.Nil(t, got.ExampleSentence)

	group, err := groups.CreateGroup(ctx, "Basics")
	require.NoError(t, err)
	activity := &domain.StudyActivity{GroupID: group.ID, Name: "Flashcards"}
	require.NoError(t, study.CreateActivity(ctx, activity))
	sessionID, err := study.CreateSession(ctx, activity.ID, time.Now())
	require.NoError(t, err)
	for _, correct := range []bool{true, true, false} {
		require.NoError(t, study.AddReviewItem(ctx, &domain.ReviewItem{SessionID: sessionID, WordID: water.ID, IsCorrect: correct}))
	}

	words, total, err := repo.ListWords(ctx, domain.WordQuery{PageSize: 10, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, words, 2)
	// word text ascending: आग sorts before पानी
	assert.Equal(t, "fire", words[0].Meaning)
	assert.Equal(t, 0, words[0].CorrectCount)
	assert.Equal(t, 2, words[1].CorrectCount)
	assert.Equal(t, 1, words[1].WrongCount)

	words, total, err = repo.ListWords(ctx, domain.WordQuery{Search: "PAA", PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, words, 1)
	assert.Equal(t, water.ID, words[0].ID)

	words, total, err = repo.ListWords(ctx, domain.WordQuery{PageSize: 1, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, words, 1)
	assert.Equal(t, water.ID, words[0].ID)

	water.Meaning = "water, aqua"
	require.NoError(t, repo.UpdateWord(ctx, water))
	got, err = repo.GetWord(ctx, water.ID)
	require.NoError(t, err)
	assert.Equal(t, "water, aqua", got.Meaning)

	random, err = repo.GetRandomWord(ctx)
	require.NoError(t, err)
	require.NotNil(t, random)

	require.NoError(t, repo.DeleteWord(ctx, water.ID))
	assert.ErrorIs(t, repo.DeleteWord(ctx, water.ID), domain.ErrNotFound)

	_, err = repo.GetWord(ctx, water.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	items, err := study.SessionReviewItems(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
