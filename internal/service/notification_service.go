package service

import (
	"context"

	"feedflow/internal/models"
	"feedflow/internal/repository"

	"github.com/samber/lo"
)

// NotificationService reads and mutates a recipient's notification inbox.
// Notifications are created by the engagement services inside the
// transactions that produce them; this service never creates its own.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

// ListNotificationsInput filters a recipient's inbox.
type ListNotificationsInput struct {
	RecipientID uint
	Page        int
	PageSize    int
	UnreadOnly  bool
}

// NotificationGroups buckets an inbox by kind for the client's tabbed view.
type NotificationGroups struct {
	Likes    []*models.Notification `json:"likes"`
	Comments []*models.Notification `json:"comments"`
	Follows  []*models.Notification `json:"follows"`
	Mentions []*models.Notification `json:"mentions"`
	Messages []*models.Notification `json:"messages"`
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository, userRepo repository.UserRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo, userRepo: userRepo}
}

func (s *NotificationService) ListNotifications(ctx context.Context, in ListNotificationsInput) ([]*models.Notification, error) {
	if _, err := s.userRepo.GetByID(ctx, in.RecipientID); err != nil {
		return nil, err
	}
	page, pageSize := normalizePage(in.Page, in.PageSize)
	return s.notificationRepo.ListByRecipient(ctx, in.RecipientID, repository.NotificationQuery{
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
		UnreadOnly: in.UnreadOnly,
	})
}

// GroupedNotifications splits the recipient's inbox into per-kind buckets.
// Ordering within a bucket is the inbox ordering, newest first.
func (s *NotificationService) GroupedNotifications(ctx context.Context, in ListNotificationsInput) (*NotificationGroups, error) {
	notifications, err := s.ListNotifications(ctx, in)
	if err != nil {
		return nil, err
	}

	byType := lo.GroupBy(notifications, func(n *models.Notification) models.NotificationType {
		return n.Type
	})
	return &NotificationGroups{
		Likes:    byType[models.NotificationTypeLike],
		Comments: byType[models.NotificationTypeComment],
		Follows:  byType[models.NotificationTypeFollow],
		Mentions: byType[models.NotificationTypeMention],
		Messages: byType[models.NotificationTypeMessage],
	}, nil
}

// SetRead flips one notification's read flag; both directions are legal.
func (s *NotificationService) SetRead(ctx context.Context, id uint, read bool) (*models.Notification, error) {
	return s.notificationRepo.SetRead(ctx, id, read)
}

// MarkAllRead marks every unread notification for the recipient and reports
// how many were affected.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uint) (int64, error) {
	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		return 0, err
	}
	return s.notificationRepo.MarkAllRead(ctx, recipientID)
}

// MarkManyRead marks the given notifications read. Unknown ids are skipped.
func (s *NotificationService) MarkManyRead(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, models.NewValidationError("No notification ids given")
	}
	return s.notificationRepo.MarkManyRead(ctx, ids)
}

// DeleteMany removes the given notifications. Deletion is terminal.
func (s *NotificationService) DeleteMany(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, models.NewValidationError("No notification ids given")
	}
	return s.notificationRepo.DeleteMany(ctx, ids)
}

// UnreadCount reports the recipient's unread badge count.
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		return 0, err
	}
	return s.notificationRepo.UnreadCount(ctx, recipientID)
}
