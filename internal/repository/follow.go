package repository

import (
	"context"

	"feedflow/internal/models"

	"gorm.io/gorm"
)

// FollowRepository maintains the directed follow edge set.
type FollowRepository interface {
	Exists(ctx context.Context, followerID, followeeID uint) (bool, error)
	// FollowingIDs returns the ids of every user followerID follows.
	FollowingIDs(ctx context.Context, followerID uint) ([]uint, error)
	// Following returns the users followerID follows, with derived counts.
	Following(ctx context.Context, followerID uint) ([]models.User, error)
	// Followers returns the users following followeeID, with derived counts.
	// The reverse lookup runs over the indexed followee_id column.
	Followers(ctx context.Context, followeeID uint) ([]models.User, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) FollowingIDs(ctx context.Context, followerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *followRepository) Following(ctx context.Context, followerID uint) ([]models.User, error) {
	var users []models.User
	err := applyUserDetails(r.db.WithContext(ctx)).
		Joins("JOIN follows f ON f.followee_id = users.id").
		Where("f.follower_id = ?", followerID).
		Order("f.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) Followers(ctx context.Context, followeeID uint) ([]models.User, error) {
	var users []models.User
	err := applyUserDetails(r.db.WithContext(ctx)).
		Joins("JOIN follows f ON f.follower_id = users.id").
		Where("f.followee_id = ?", followeeID).
		Order("f.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
