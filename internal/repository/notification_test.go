package repository

import (
	"context"
	"testing"

	"feedflow/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The sqlmock tests pin the repository to the postgres dialect; patterns are
// kept loose so GORM's exact clause ordering is not load-bearing.

func TestNotificationRepository_MarkManyRead_Mock(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "notifications" SET "read"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	updated, err := repo.MarkManyRead(ctx, []uint{1, 2})
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkManyRead_EmptyInput(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewNotificationRepository(db)

	// No ids, no SQL.
	updated, err := repo.MarkManyRead(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_UnreadCount_Mock(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications"`).
		WithArgs(7, false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.UnreadCount(context.Background(), 7)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_SQLite(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	actor := seedUser(t, db, "actor")
	recipient := seedUser(t, db, "recipient")

	first := models.NewLikeNotification(actor.ID, recipient.ID, 1)
	require.NoError(t, repo.Create(ctx, first))
	second := models.NewFollowNotification(actor.ID, recipient.ID)
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.ListByRecipient(ctx, recipient.ID, NotificationQuery{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, actor.Username, list[0].Actor.Username)

	marked, err := repo.SetRead(ctx, first.ID, true)
	require.NoError(t, err)
	assert.True(t, marked.Read)

	unreadOnly, err := repo.ListByRecipient(ctx, recipient.ID, NotificationQuery{Limit: 10, UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, unreadOnly, 1)
	assert.Equal(t, second.ID, unreadOnly[0].ID)

	affected, err := repo.MarkAllRead(ctx, recipient.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	deleted, err := repo.DeleteMany(ctx, []uint{first.ID, second.ID, 999})
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)
}
