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

// CommentService owns comment lifecycle. A post's comment count is derived
// from the comments table, so creating a comment increments it atomically by
// construction; the comment notification is written in the same transaction.
type CommentService struct {
	db          *gorm.DB
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	PostID   uint
	AuthorID uint
	Content  string
}

type UpdateCommentInput struct {
	CommentID uint
	AuthorID  uint
	Content   string
}

// NewCommentService returns a new CommentService.
func NewCommentService(db *gorm.DB, commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{db: db, commentRepo: commentRepo, postRepo: postRepo}
}

// notificationPreview truncates comment bodies for notification display.
func notificationPreview(content string) string {
	const maxPreviewLen = 100
	if len(content) <= maxPreviewLen {
		return content
	}
	return content[:maxPreviewLen] + "..."
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > models.MaxCommentContentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID, 0)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   in.PostID,
		AuthorID: in.AuthorID,
		Content:  content,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if post.AuthorID != in.AuthorID {
			n := models.NewCommentNotification(in.AuthorID, post.AuthorID, in.PostID, notificationPreview(content))
			if err := tx.Create(n).Error; err != nil {
				return err
			}
			observability.NotificationsCreated.WithLabelValues(string(models.NotificationTypeComment)).Inc()
		}
		return nil
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.EngagementEvents.WithLabelValues("comment").Inc()
	cache.InvalidatePost(ctx, in.PostID)
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

// UpdateComment edits the body; the original timestamp is preserved.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > models.MaxCommentContentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != in.AuthorID {
		return nil, models.NewInvalidOperationError("Only the author can edit a comment")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) DeleteComment(ctx context.Context, commentID, requesterID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != requesterID {
		return models.NewInvalidOperationError("Only the author can delete a comment")
	}
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}
	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}
