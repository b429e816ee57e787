package service

import (
	"context"
	"strings"

	"feedflow/internal/cache"
	"feedflow/internal/models"
	"feedflow/internal/observability"
	"feedflow/internal/repository"

	"gorm.io/gorm"
)

// PostService owns post lifecycle and the engagement ledger: toggled likes,
// derived comment counts and the share counter.
type PostService struct {
	db       *gorm.DB
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type CreatePostInput struct {
	AuthorID  uint
	Content   string
	MediaURLs []string
}

// NewPostService returns a new PostService.
func NewPostService(db *gorm.DB, postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{db: db, postRepo: postRepo, userRepo: userRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" && len(in.MediaURLs) == 0 {
		return nil, models.NewValidationError("Post needs content or media")
	}
	if len(content) > models.MaxPostContentLen {
		return nil, models.NewValidationError("Content too long (max 5000 characters)")
	}
	if _, err := s.userRepo.GetByID(ctx, in.AuthorID); err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID:  in.AuthorID,
		Content:   content,
		MediaURLs: in.MediaURLs,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	cache.InvalidateFeeds(ctx)
	return s.postRepo.GetByID(ctx, post.ID, in.AuthorID)
}

func (s *PostService) GetPost(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, viewerID)
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id)
	cache.InvalidateFeeds(ctx)
	return nil
}

// ToggleLike flips the viewer's like on the post in one transaction: the like
// row is inserted or deleted and, on a first-time like of someone else's
// post, the like notification lands with it. Calling it twice restores the
// pre-call state.
func (s *PostService) ToggleLike(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		lookup := tx.Where("user_id = ? AND post_id = ?", viewerID, postID).First(&existing)
		if lookup.Error == nil {
			return tx.Delete(&existing).Error
		}
		if lookup.Error != gorm.ErrRecordNotFound {
			return lookup.Error
		}

		if err := tx.Create(&models.Like{UserID: viewerID, PostID: postID}).Error; err != nil {
			return err
		}
		if post.AuthorID != viewerID {
			if err := tx.Create(models.NewLikeNotification(viewerID, post.AuthorID, postID)).Error; err != nil {
				return err
			}
			observability.NotificationsCreated.WithLabelValues(string(models.NotificationTypeLike)).Inc()
		}
		return nil
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.EngagementEvents.WithLabelValues("like_toggle").Inc()
	cache.InvalidatePost(ctx, postID)
	return s.postRepo.GetByID(ctx, postID, viewerID)
}

// RecordShare bumps the share counter; there is no unshare.
func (s *PostService) RecordShare(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, viewerID); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		Update("share_count", gorm.Expr("share_count + 1")).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.EngagementEvents.WithLabelValues("share").Inc()
	cache.InvalidatePost(ctx, postID)
	return s.postRepo.GetByID(ctx, postID, viewerID)
}

// IsLiked reports the viewer-relative like state for a post.
func (s *PostService) IsLiked(ctx context.Context, postID, viewerID uint) (bool, error) {
	return s.postRepo.IsLiked(ctx, viewerID, postID)
}
