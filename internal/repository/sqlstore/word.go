package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"langportal/internal/domain"

	"github.com/jmoiron/sqlx"
)

const wordColumns = `w.word_id, w.word_text, w.transliteration, w.meaning, w.part_of_speech,
		w.origin, w.example_sentence, w.created_at`

// sortColumns whitelists the columns a word list may be ordered by
var sortColumns = map[string]string{
	"word_id":         "w.word_id",
	"word_text":       "w.word_text",
	"transliteration": "w.transliteration",
	"meaning":         "w.meaning",
	"part_of_speech":  "w.part_of_speech",
	"correct_count":   "correct_count",
	"wrong_count":     "wrong_count",
}

// WordRepo implements repository.WordRepository
type WordRepo struct {
	db *sqlx.DB
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *sqlx.DB) *WordRepo {
	return &WordRepo{db: db}
}

// CreateWord inserts a word and fills in its ID
func (r *WordRepo) CreateWord(ctx context.Context, word *domain.Word) error {
	if word.CreatedAt.IsZero() {
		word.CreatedAt = time.Now().UTC()
	}

	query := r.db.Rebind(`
		INSERT INTO words (word_text, transliteration, meaning, part_of_speech, origin, example_sentence, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING word_id
	`)
	err := r.db.QueryRowxContext(ctx, query,
		word.Text, word.Transliteration, word.Meaning, word.PartOfSpeech,
		word.Origin, word.ExampleSentence, word.CreatedAt.UTC(),
	).Scan(&word.ID)
	return wrapErr("create word", err)
}

// GetWord returns a word by ID or domain.ErrNotFound
func (r *WordRepo) GetWord(ctx context.Context, wordID int64) (*domain.Word, error) {
	var w domain.Word
	query := r.db.Rebind(`SELECT ` + wordColumns + ` FROM words w WHERE w.word_id = ?`)
	if err := r.db.GetContext(ctx, &w, query, wordID); err != nil {
		return nil, wrapErr("get word", err)
	}
	return &w, nil
}

// UpdateWord overwrites the editable fields of a word
func (r *WordRepo) UpdateWord(ctx context.Context, word *domain.Word) error {
	query := r.db.Rebind(`
		UPDATE words
		SET word_text = ?, transliteration = ?, meaning = ?, part_of_speech = ?, origin = ?, example_sentence = ?
		WHERE word_id = ?
	`)
	res, err := r.db.ExecContext(ctx, query,
		word.Text, word.Transliteration, word.Meaning, word.PartOfSpeech,
		word.Origin, word.ExampleSentence, word.ID,
	)
	if err != nil {
		return wrapErr("update word", err)
	}
	return expectAffected("update word", res)
}

// DeleteWord removes a word; its reviews and group links cascade
func (r *WordRepo) DeleteWord(ctx context.Context, wordID int64) error {
	query := r.db.Rebind(`DELETE FROM words WHERE word_id = ?`)
	res, err := r.db.ExecContext(ctx, query, wordID)
	if err != nil {
		return wrapErr("delete word", err)
	}
	return expectAffected("delete word", res)
}

// ListWords returns a page of words with their review counts and the total number of matches
func (r *WordRepo) ListWords(ctx context.Context, q domain.WordQuery) ([]domain.WordWithStats, int, error) {
	where := ""
	var args []interface{}
	if q.Search != "" {
		where = ` WHERE LOWER(w.word_text) LIKE ? OR LOWER(w.transliteration) LIKE ? OR LOWER(w.meaning) LIKE ?`
		pattern := "%" + strings.ToLower(q.Search) + "%"
		args = append(args, pattern, pattern, pattern)
	}

	var total int
	countQuery := r.db.Rebind(`SELECT COUNT(*) FROM words w` + where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, wrapErr("count words", err)
	}

	query := r.db.Rebind(`
		SELECT ` + wordColumns + `,
			COALESCE(SUM(CASE WHEN wri.is_correct THEN 1 ELSE 0 END), 0) AS correct_count,
			COALESCE(SUM(CASE WHEN NOT wri.is_correct THEN 1 ELSE 0 END), 0) AS wrong_count
		FROM words w
		LEFT JOIN word_review_items wri ON w.word_id = wri.word_id` + where + `
		GROUP BY w.word_id
		ORDER BY ` + orderClause(q.SortBy, q.SortOrder) + `
		LIMIT ? OFFSET ?
	`)
	args = append(args, q.PageSize, q.Offset())

	words := []domain.WordWithStats{}
	if err := r.db.SelectContext(ctx, &words, query, args...); err != nil {
		return nil, 0, wrapErr("list words", err)
	}

	return words, total, nil
}

// GetRandomWord returns a random word, or nil when there are none
func (r *WordRepo) GetRandomWord(ctx context.Context) (*domain.Word, error) {
	var w domain.Word
	query := `SELECT ` + wordColumns + ` FROM words w ORDER BY RANDOM() LIMIT 1`
	err := r.db.GetContext(ctx, &w, query)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("get random word", err)
	}

	return &w, nil
}

// orderClause builds a safe ORDER BY from user input, falling back to word text ascending
func orderClause(sortBy, sortOrder string) string {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = sortColumns["word_text"]
	}

	direction := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		direction = "DESC"
	}

	return fmt.Sprintf("%s %s, w.word_id ASC", column, direction)
}

func expectAffected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr(op, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
