package service

import (
	"context"
	"testing"

	"feedflow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollow_SetSemantics(t *testing.T) {
	db := setupServiceTestDB(t)
	userRepo, _, followRepo := newTestRepos(db)
	svc := NewFollowService(db, followRepo, userRepo)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))
	// Re-following is a no-op, not an error.
	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	var edges int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&edges).Error)
	assert.EqualValues(t, 1, edges)

	// Exactly one follow notification despite the repeat call, addressed to
	// the followee, attributed to the follower, and initially unread.
	var notifications []models.Notification
	require.NoError(t, db.Where("type = ?", models.NotificationTypeFollow).
		Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, alice.ID, notifications[0].ActorID)
	assert.Equal(t, bob.ID, notifications[0].RecipientID)
	assert.False(t, notifications[0].Read)

	following, err := svc.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)
}

func TestFollow_SelfFollowRejected(t *testing.T) {
	db := setupServiceTestDB(t)
	userRepo, _, followRepo := newTestRepos(db)
	svc := NewFollowService(db, followRepo, userRepo)

	alice := createTestUser(t, db, "alice")

	err := svc.Follow(context.Background(), alice.ID, alice.ID)
	assert.True(t, models.IsCode(err, models.CodeInvalidOperation))
}

func TestFollow_UnknownFolloweeRejected(t *testing.T) {
	db := setupServiceTestDB(t)
	userRepo, _, followRepo := newTestRepos(db)
	svc := NewFollowService(db, followRepo, userRepo)

	alice := createTestUser(t, db, "alice")

	err := svc.Follow(context.Background(), alice.ID, 999)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestUnfollow_MissingEdgeIsNoop(t *testing.T) {
	db := setupServiceTestDB(t)
	userRepo, _, followRepo := newTestRepos(db)
	svc := NewFollowService(db, followRepo, userRepo)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))

	following, err := svc.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollow_DerivedCountsMatchEdges(t *testing.T) {
	db := setupServiceTestDB(t)
	userRepo, _, followRepo := newTestRepos(db)
	svc := NewFollowService(db, followRepo, userRepo)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, svc.Follow(ctx, carol.ID, bob.ID))
	require.NoError(t, svc.Follow(ctx, bob.ID, alice.ID))

	bobLoaded, err := userRepo.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, bobLoaded.FollowersCount)
	assert.Equal(t, 1, bobLoaded.FollowingCount)

	followers, err := svc.Followers(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	following, err := svc.Following(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, alice.ID, following[0].ID)
}

func TestFollow_UnfollowRefollowRecreatesEdge(t *testing.T) {
	db := setupServiceTestDB(t)
	userRepo, _, followRepo := newTestRepos(db)
	svc := NewFollowService(db, followRepo, userRepo)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))
	// The unique edge index must not block a re-follow after an unfollow.
	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	following, err := svc.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)
}
