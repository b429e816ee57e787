package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"feedflow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost_Validation(t *testing.T) {
	db := setupServiceTestDB(t)
	userRepo, postRepo, _ := newTestRepos(db)
	svc := NewPostService(db, postRepo, userRepo)
	ctx := context.Background()

	author := createTestUser(t, db, "author")

	_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: author.ID, Content: "   "})
	assert.True(t, models.IsCode(err, models.CodeValidation))

	_, err = svc.CreatePost(ctx, CreatePostInput{
		AuthorID: author.ID,
		Content:  strings.Repeat("x", models.MaxPostContentLen+1),
	})
	assert.True(t, models.IsCode(err, models.CodeValidation))

	_, err = svc.CreatePost(ctx, CreatePostInput{AuthorID: 999, Content: "hello"})
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	// Media-only posts are legal.
	post, err := svc.CreatePost(ctx, CreatePostInput{
		AuthorID:  author.ID,
		MediaURLs: []string{"https://example.com/a.png"},
	})
	require.NoError(t, err)
	assert.Empty(t, post.Content)
	assert.Len(t, post.MediaURLs, 1)
}

func TestToggleLike_IsItsOwnInverse(t *testing.T) {
	db := setupServiceTestDB(t)
	userRepo, postRepo, _ := newTestRepos(db)
	svc := NewPostService(db, postRepo, userRepo)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	viewer := createTestUser(t, db, "viewer")
	post := createTestPost(t, db, author.ID, "likeable", time.Now())

	liked, err := svc.ToggleLike(ctx, post.ID, viewer.ID)
	require.NoError(t, err)
	assert.True(t, liked.Liked)
	assert.Equal(t, 1, liked.LikesCount)

	unliked, err := svc.ToggleLike(ctx, post.ID, viewer.ID)
	require.NoError(t, err)
	assert.False(t, unliked.Liked)
	assert.Equal(t, 0, unliked.LikesCount)

	// Toggle state is per viewer.
	other := createTestUser(t, db, "other")
	_, err = svc.ToggleLike(ctx, post.ID, other.ID)
	require.NoError(t, err)
	fromViewer, err := svc.GetPost(ctx, post.ID, viewer.ID)
	require.NoError(t, err)
	assert.False(t, fromViewer.Liked)
	assert.Equal(t, 1, fromViewer.LikesCount)
}

func TestToggleLike_NotifiesAuthorOnFirstLikeOnly(t *testing.T) {
	db := setupServiceTestDB(t)
	userRepo, postRepo, _ := newTestRepos(db)
	svc := NewPostService(db, postRepo, userRepo)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	viewer := createTestUser(t, db, "viewer")
	post := createTestPost(t, db, author.ID, "likeable", time.Now())

	_, err := svc.ToggleLike(ctx, post.ID, viewer.ID)
	require.NoError(t, err)

	var notifications []models.Notification
	require.NoError(t, db.Where("type = ?", models.NotificationTypeLike).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, author.ID, notifications[0].RecipientID)
	assert.Equal(t, viewer.ID, notifications[0].ActorID)
	assert.Equal(t, post.ID, notifications[0].EntityID)
}

func TestToggleLike_OwnPostDoesNotNotify(t *testing.T) {
	db := setupServiceTestDB(t)
	userRepo, postRepo, _ := newTestRepos(db)
	svc := NewPostService(db, postRepo, userRepo)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author.ID, "self-liked", time.Now())

	liked, err := svc.ToggleLike(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, liked.Liked)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRecordShare_MonotonicCounter(t *testing.T) {
	db := setupServiceTestDB(t)
	userRepo, postRepo, _ := newTestRepos(db)
	svc := NewPostService(db, postRepo, userRepo)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	viewer := createTestUser(t, db, "viewer")
	post := createTestPost(t, db, author.ID, "shareable", time.Now())

	shared, err := svc.RecordShare(ctx, post.ID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, shared.ShareCount)

	shared, err = svc.RecordShare(ctx, post.ID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, shared.ShareCount)
}

func TestDeletePost_RemovesFromReads(t *testing.T) {
	db := setupServiceTestDB(t)
	userRepo, postRepo, _ := newTestRepos(db)
	svc := NewPostService(db, postRepo, userRepo)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author.ID, "doomed", time.Now())

	require.NoError(t, svc.DeletePost(ctx, post.ID))

	_, err := svc.GetPost(ctx, post.ID, 0)
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	err = svc.DeletePost(ctx, post.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
