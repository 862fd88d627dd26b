package sqlstore

import (
	"context"

	"langportal/internal/domain"

	"github.com/jmoiron/sqlx"
)

// GroupRepo implements repository.GroupRepository
type GroupRepo struct {
	db *sqlx.DB
}

// NewGroupRepo creates a new group repository
func NewGroupRepo(db *sqlx.DB) *GroupRepo {
	return &GroupRepo{db: db}
}

// CreateGroup inserts a group with a unique name
func (r *GroupRepo) CreateGroup(ctx context.Context, name string) (*domain.Group, error) {
	g := domain.Group{Name: name}
	query := r.db.Rebind(`INSERT INTO groups (group_name) VALUES (?) RETURNING group_id`)
	if err := r.db.QueryRowxContext(ctx, query, name).Scan(&g.ID); err != nil {
		return nil, wrapErr("create group", err)
	}
	return &g, nil
}

// GetGroupByName returns a group or domain.ErrNotFound
func (r *GroupRepo) GetGroupByName(ctx context.Context, name string) (*domain.Group, error) {
	var g domain.Group
	query := r.db.Rebind(`SELECT group_id, group_name FROM groups WHERE group_name = ?`)
	if err := r.db.GetContext(ctx, &g, query, name); err != nil {
		return nil, wrapErr("get group", err)
	}
	return &g, nil
}

// ListGroups returns all groups ordered by name
func (r *GroupRepo) ListGroups(ctx context.Context) ([]domain.Group, error) {
	groups := []domain.Group{}
	query := `SELECT group_id, group_name FROM groups ORDER BY group_name`
	if err := r.db.SelectContext(ctx, &groups, query); err != nil {
		return nil, wrapErr("list groups", err)
	}
	return groups, nil
}

// AddWord links a word to a group; linking twice is a no-op
func (r *GroupRepo) AddWord(ctx context.Context, groupID, wordID int64) error {
	query := r.db.Rebind(`
		INSERT INTO words_groups (word_id, group_id)
		VALUES (?, ?)
		ON CONFLICT (word_id, group_id) DO NOTHING
	`)
	_, err := r.db.ExecContext(ctx, query, wordID, groupID)
	return wrapErr("add word to group", err)
}

// RemoveWord unlinks a word from a group
func (r *GroupRepo) RemoveWord(ctx context.Context, groupID, wordID int64) error {
	query := r.db.Rebind(`DELETE FROM words_groups WHERE group_id = ? AND word_id = ?`)
	res, err := r.db.ExecContext(ctx, query, groupID, wordID)
	if err != nil {
		return wrapErr("remove word from group", err)
	}
	return expectAffected("remove word from group", res)
}

// GroupWords returns the words of a group
func (r *GroupRepo) GroupWords(ctx context.Context, groupID int64) ([]domain.Word, error) {
	words := []domain.Word{}
	query := r.db.Rebind(`
		SELECT ` + wordColumns + `
		FROM words w
		JOIN words_groups wg ON w.word_id = wg.word_id
		WHERE wg.group_id = ?
		ORDER BY w.word_text
	`)
	if err := r.db.SelectContext(ctx, &words, query, groupID); err != nil {
		return nil, wrapErr("group words", err)
	}
	return words, nil
}
