package sqlstore

import (
	"context"
	"testing"

	"langportal/internal/domain"
	"langportal/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRepo_GetGroupByName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGroupRepo(db)

	mock.ExpectQuery("SELECT group_id, group_name FROM groups WHERE group_name = \\$1").
		WithArgs("Basics").
		WillReturnRows(sqlmock.NewRows([]string{"group_id", "group_name"}))

	group, err := repo.GetGroupByName(context.Background(), "Basics")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, group)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupRepo_SQLite(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	groups := NewGroupRepo(db)
	words := NewWordRepo(db)

	basics, err := groups.CreateGroup(ctx, "Basics")
	require.NoError(t, err)
	_, err = groups.CreateGroup(ctx, "Animals")
	require.NoError(t, err)

	_, err = groups.CreateGroup(ctx, "Basics")
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)

	found, err := groups.GetGroupByName(ctx, "Basics")
	require.NoError(t, err)
	assert.Equal(t, basics, found)

	all, err := groups.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Animals", all[0].Name)

	water := testutil.NewTestWord(0, "पानी", "water")
	require.NoError(t, words.CreateWord(ctx, water))

	require.NoError(t, groups.AddWord(ctx, basics.ID, water.ID))
	require.NoError(t, groups.AddWord(ctx, basics.ID, water.ID))

	members, err := groups.GroupWords(ctx, basics.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, water.ID, members[0].ID)

	require.NoError(t, groups.RemoveWord(ctx, basics.ID, water.ID))
	assert.ErrorIs(t, groups.RemoveWord(ctx, basics.ID, water.ID), domain.ErrNotFound)

	members, err = groups.GroupWords(ctx, basics.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}
