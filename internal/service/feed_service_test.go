package service

import (
	"context"
	"testing"
	"time"

	"feedflow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowingFeed_FallsBackToGlobalWhenFollowingNobody(t *testing.T) {
	db := setupServiceTestDB(t)
	_, postRepo, followRepo := newTestRepos(db)
	svc := NewFeedService(postRepo, followRepo)
	ctx := context.Background()

	viewer := createTestUser(t, db, "loner")
	author := createTestUser(t, db, "author")
	now := time.Now()
	createTestPost(t, db, author.ID, "first", now.Add(-2*time.Hour))
	createTestPost(t, db, author.ID, "second", now.Add(-time.Hour))

	posts, err := svc.FollowingFeed(ctx, viewer.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].Content)
	assert.Equal(t, "first", posts[1].Content)
}

func TestFollowingFeed_SupplementsSparseFeedWithSuggestions(t *testing.T) {
	db := setupServiceTestDB(t)
	_, postRepo, followRepo := newTestRepos(db)
	svc := NewFeedService(postRepo, followRepo)
	ctx := context.Background()

	viewer := createTestUser(t, db, "viewer")
	followed := createTestUser(t, db, "followed")
	stranger := createTestUser(t, db, "stranger")
	require.NoError(t, db.Create(&models.Follow{FollowerID: viewer.ID, FolloweeID: followed.ID}).Error)

	now := time.Now()
	// Two followed posts, below the blend threshold of five.
	createTestPost(t, db, followed.ID, "followed-old", now.Add(-3*time.Hour))
	createTestPost(t, db, followed.ID, "followed-new", now.Add(-time.Hour))
	// Suggested candidates from a non-followed author.
	createTestPost(t, db, stranger.ID, "suggested-mid", now.Add(-2*time.Hour))
	// The viewer's own post must never appear as a suggestion.
	createTestPost(t, db, viewer.ID, "own-post", now)

	posts, err := svc.FollowingFeed(ctx, viewer.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	// Union sorted by timestamp desc before pagination.
	assert.Equal(t, "followed-new", posts[0].Content)
	assert.Equal(t, "suggested-mid", posts[1].Content)
	assert.Equal(t, "followed-old", posts[2].Content)
}

func TestFollowingFeed_NoSupplementWhenEnoughFollowedPosts(t *testing.T) {
	db := setupServiceTestDB(t)
	_, postRepo, followRepo := newTestRepos(db)
	svc := NewFeedService(postRepo, followRepo)
	ctx := context.Background()

	viewer := createTestUser(t, db, "viewer")
	followed := createTestUser(t, db, "followed")
	stranger := createTestUser(t, db, "stranger")
	require.NoError(t, db.Create(&models.Follow{FollowerID: viewer.ID, FolloweeID: followed.ID}).Error)

	now := time.Now()
	for i := 0; i < 6; i++ {
		createTestPost(t, db, followed.ID, "followed", now.Add(-time.Duration(i)*time.Hour))
	}
	createTestPost(t, db, stranger.ID, "stranger-post", now)

	posts, err := svc.FollowingFeed(ctx, viewer.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, posts, 6)
	for _, p := range posts {
		assert.Equal(t, followed.ID, p.AuthorID)
	}
}

func TestFollowingFeed_BlendPagination(t *testing.T) {
	db := setupServiceTestDB(t)
	_, postRepo, followRepo := newTestRepos(db)
	svc := NewFeedService(postRepo, followRepo)
	ctx := context.Background()

	viewer := createTestUser(t, db, "viewer")
	followed := createTestUser(t, db, "followed")
	stranger := createTestUser(t, db, "stranger")
	require.NoError(t, db.Create(&models.Follow{FollowerID: viewer.ID, FolloweeID: followed.ID}).Error)

	now := time.Now()
	createTestPost(t, db, followed.ID, "f1", now.Add(-1*time.Hour))
	createTestPost(t, db, stranger.ID, "s1", now.Add(-2*time.Hour))
	createTestPost(t, db, stranger.ID, "s2", now.Add(-3*time.Hour))

	page1, err := svc.FollowingFeed(ctx, viewer.ID, 1, 2)
	require.NoError(t, err)
	page2, err := svc.FollowingFeed(ctx, viewer.ID, 2, 2)
	require.NoError(t, err)
	page3, err := svc.FollowingFeed(ctx, viewer.ID, 3, 2)
	require.NoError(t, err)

	require.Len(t, page1, 2)
	require.Len(t, page2, 1)
	assert.Empty(t, page3)
	assert.Equal(t, "f1", page1[0].Content)
	assert.Equal(t, "s1", page1[1].Content)
	assert.Equal(t, "s2", page2[0].Content)
}

func TestGlobalFeed_OrderAndPagination(t *testing.T) {
	db := setupServiceTestDB(t)
	_, postRepo, followRepo := newTestRepos(db)
	svc := NewFeedService(postRepo, followRepo)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	now := time.Now()
	for i := 0; i < 5; i++ {
		createTestPost(t, db, author.ID, "post", now.Add(-time.Duration(i)*time.Minute))
	}

	page1, err := svc.GlobalFeed(ctx, 0, 1, 3)
	require.NoError(t, err)
	page2, err := svc.GlobalFeed(ctx, 0, 2, 3)
	require.NoError(t, err)

	assert.Len(t, page1, 3)
	assert.Len(t, page2, 2)
	// Newest first across the page boundary.
	assert.True(t, page1[2].CreatedAt.After(page2[0].CreatedAt))
}

func TestTrending_RanksByEngagementThenRecency(t *testing.T) {
	db := setupServiceTestDB(t)
	_, postRepo, followRepo := newTestRepos(db)
	svc := NewFeedService(postRepo, followRepo)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	fans := []*models.User{
		createTestUser(t, db, "fan1"),
		createTestUser(t, db, "fan2"),
		createTestUser(t, db, "fan3"),
	}

	now := time.Now()
	quiet := createTestPost(t, db, author.ID, "quiet", now)
	popular := createTestPost(t, db, author.ID, "popular", now.Add(-2*time.Hour))
	commented := createTestPost(t, db, author.ID, "commented", now.Add(-time.Hour))

	for _, fan := range fans {
		require.NoError(t, db.Create(&models.Like{UserID: fan.ID, PostID: popular.ID}).Error)
	}
	require.NoError(t, db.Create(&models.Like{UserID: fans[0].ID, PostID: commented.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{PostID: commented.ID, AuthorID: fans[1].ID, Content: "nice"}).Error)

	posts, err := svc.Trending(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, popular.ID, posts[0].ID)
	assert.Equal(t, commented.ID, posts[1].ID)
	assert.Equal(t, quiet.ID, posts[2].ID)
	assert.Equal(t, 3, posts[0].EngagementScore())
	assert.Equal(t, 2, posts[1].EngagementScore())
}

func TestTrending_RecencyBreaksTies(t *testing.T) {
	db := setupServiceTestDB(t)
	_, postRepo, followRepo := newTestRepos(db)
	svc := NewFeedService(postRepo, followRepo)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	now := time.Now()
	older := createTestPost(t, db, author.ID, "older", now.Add(-time.Hour))
	newer := createTestPost(t, db, author.ID, "newer", now)

	posts, err := svc.Trending(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, newer.ID, posts[0].ID)
	assert.Equal(t, older.ID, posts[1].ID)
}

func TestListFeed_Validation(t *testing.T) {
	db := setupServiceTestDB(t)
	_, postRepo, followRepo := newTestRepos(db)
	svc := NewFeedService(postRepo, followRepo)
	ctx := context.Background()

	_, err := svc.ListFeed(ctx, ListFeedInput{Mode: "bogus"})
	assert.True(t, models.IsCode(err, models.CodeValidation))

	_, err = svc.ListFeed(ctx, ListFeedInput{Mode: FeedModeFollowing})
	assert.True(t, models.IsCode(err, models.CodeValidation))

	_, err = svc.ListFeed(ctx, ListFeedInput{Mode: FeedModeAuthor})
	assert.True(t, models.IsCode(err, models.CodeValidation))
}

func TestGlobalFeed_ExposesViewerLikeState(t *testing.T) {
	db := setupServiceTestDB(t)
	_, postRepo, followRepo := newTestRepos(db)
	svc := NewFeedService(postRepo, followRepo)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	viewer := createTestUser(t, db, "viewer")
	post := createTestPost(t, db, author.ID, "liked-one", time.Now())
	require.NoError(t, db.Create(&models.Like{UserID: viewer.ID, PostID: post.ID}).Error)

	posts, err := svc.GlobalFeed(ctx, viewer.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.True(t, posts[0].Liked)
	assert.Equal(t, 1, posts[0].LikesCount)

	anonymous, err := svc.GlobalFeed(ctx, 0, 1, 10)
	require.NoError(t, err)
	require.Len(t, anonymous, 1)
	assert.False(t, anonymous[0].Liked)
}
