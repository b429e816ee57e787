package service

import (
	"context"

	"feedflow/internal/cache"
	"feedflow/internal/models"
	"feedflow/internal/observability"
	"feedflow/internal/repository"

	"gorm.io/gorm"
)

// FollowService maintains the follow graph. Edge writes and their follow
// notification land in a single transaction so the two effects cannot drift.
type FollowService struct {
	db         *gorm.DB
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(db *gorm.DB, followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{db: db, followRepo: followRepo, userRepo: userRepo}
}

// Follow adds the (follower, followee) edge. Self-follows are rejected;
// following an already-followed user is a no-op on the edge set and does not
// produce a second notification (set semantics).
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewInvalidOperationError("Cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}

	exists, err := s.followRepo.Exists(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		edge := &models.Follow{FollowerID: followerID, FolloweeID: followeeID}
		if err := tx.Create(edge).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Create(models.NewFollowNotification(followerID, followeeID)).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	observability.NotificationsCreated.WithLabelValues(string(models.NotificationTypeFollow)).Inc()
	// Derived counts changed for both endpoints.
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followeeID)
	return nil
}

// Unfollow removes the edge if present; a missing edge is not an error.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	res := s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected > 0 {
		cache.InvalidateUser(ctx, followerID)
		cache.InvalidateUser(ctx, followeeID)
	}
	return nil
}

// IsFollowing is an edge membership test.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followeeID)
}

// Following lists the users userID follows.
func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userID)
}

// Followers lists the users following userID.
func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID)
}
