package service

import (
	"context"
	"testing"

	"feedflow/internal/models"
	"feedflow/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifications_ListAndFilter(t *testing.T) {
	db := setupServiceTestDB(t)
	userRepo, _, _ := newTestRepos(db)
	svc := NewNotificationService(repository.NewNotificationRepository(db), userRepo)
	ctx := context.Background()

	actor := createTestUser(t, db, "actor")
	recipient := createTestUser(t, db, "recipient")

	require.NoError(t, db.Create(models.NewFollowNotification(actor.ID, recipient.ID)).Error)
	liked := models.NewLikeNotification(actor.ID, recipient.ID, 1)
	liked.Read = true
	require.NoError(t, db.Create(liked).Error)

	all, err := svc.ListNotifications(ctx, ListNotificationsInput{RecipientID: recipient.ID})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	unread, err := svc.ListNotifications(ctx, ListNotificationsInput{
		RecipientID: recipient.ID,
		UnreadOnly:  true,
	})
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, models.NotificationTypeFollow, unread[0].Type)

	// The actor's own inbox is untouched.
	actorInbox, err := svc.ListNotifications(ctx, ListNotificationsInput{RecipientID: actor.ID})
	require.NoError(t, err)
	assert.Empty(t, actorInbox)
}

func TestNotifications_ReadTransitionsAreReversible(t *testing.T) {
	db := setupServiceTestDB(t)
	userRepo, _, _ := newTestRepos(db)
	svc := NewNotificationService(repository.NewNotificationRepository(db), userRepo)
	ctx := context.Background()

	actor := createTestUser(t, db, "actor")
	recipient := createTestUser(t, db, "recipient")

	n := models.NewFollowNotification(actor.ID, recipient.ID)
	require.NoError(t, db.Create(n).Error)

	read, err := svc.SetRead(ctx, n.ID, true)
	require.NoError(t, err)
	assert.True(t, read.Read)

	unread, err := svc.SetRead(ctx, n.ID, false)
	require.NoError(t, err)
	assert.False(t, unread.Read)

	count, err := svc.UnreadCount(ctx, recipient.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	_, err = svc.SetRead(ctx, 999, true)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestNotifications_BulkOperations(t *testing.T) {
	db := setupServiceTestDB(t)
	userRepo, _, _ := newTestRepos(db)
	svc := NewNotificationService(repository.NewNotificationRepository(db), userRepo)
	ctx := context.Background()

	actor := createTestUser(t, db, "actor")
	recipient := createTestUser(t, db, "recipient")

	var ids []uint
	for i := 0; i < 4; i++ {
		n := models.NewLikeNotification(actor.ID, recipient.ID, uint(i+1))
		require.NoError(t, db.Create(n).Error)
		ids = append(ids, n.ID)
	}

	updated, err := svc.MarkManyRead(ctx, ids[:2])
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated)

	count, err := svc.UnreadCount(ctx, recipient.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	updated, err = svc.MarkAllRead(ctx, recipient.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated)

	deleted, err := svc.DeleteMany(ctx, ids)
	require.NoError(t, err)
	assert.EqualValues(t, 4, deleted)

	all, err := svc.ListNotifications(ctx, ListNotificationsInput{RecipientID: recipient.ID})
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = svc.MarkManyRead(ctx, nil)
	assert.True(t, models.IsCode(err, models.CodeValidation))
	_, err = svc.DeleteMany(ctx, nil)
	assert.True(t, models.IsCode(err, models.CodeValidation))
}

func TestNotifications_GroupedByKind(t *testing.T) {
	db := setupServiceTestDB(t)
	userRepo, _, _ := newTestRepos(db)
	svc := NewNotificationService(repository.NewNotificationRepository(db), userRepo)
	ctx := context.Background()

	actor := createTestUser(t, db, "actor")
	recipient := createTestUser(t, db, "recipient")

	require.NoError(t, db.Create(models.NewLikeNotification(actor.ID, recipient.ID, 1)).Error)
	require.NoError(t, db.Create(models.NewLikeNotification(actor.ID, recipient.ID, 2)).Error)
	require.NoError(t, db.Create(models.NewCommentNotification(actor.ID, recipient.ID, 1, "nice")).Error)
	require.NoError(t, db.Create(models.NewFollowNotification(actor.ID, recipient.ID)).Error)
	require.NoError(t, db.Create(models.NewMentionNotification(actor.ID, recipient.ID, 1, "@you")).Error)
	require.NoError(t, db.Create(models.NewMessageNotification(actor.ID, recipient.ID, 1, "hey")).Error)

	groups, err := svc.GroupedNotifications(ctx, ListNotificationsInput{RecipientID: recipient.ID})
	require.NoError(t, err)
	assert.Len(t, groups.Likes, 2)
	assert.Len(t, groups.Comments, 1)
	assert.Len(t, groups.Follows, 1)
	assert.Len(t, groups.Mentions, 1)
	assert.Len(t, groups.Messages, 1)
}

func TestNotifications_UnknownRecipient(t *testing.T) {
	db := setupServiceTestDB(t)
	userRepo, _, _ := newTestRepos(db)
	svc := NewNotificationService(repository.NewNotificationRepository(db), userRepo)
	ctx := context.Background()

	_, err := svc.ListNotifications(ctx, ListNotificationsInput{RecipientID: 999})
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	_, err = svc.UnreadCount(ctx, 999)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
