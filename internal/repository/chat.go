package repository

import (
	"context"
	"errors"

	"feedflow/internal/models"

	"gorm.io/gorm"
)

// ChatRepository defines the interface for conversation and message data operations
type ChatRepository interface {
	CreateConversation(ctx context.Context, conv *models.Conversation) error
	GetConversationByID(ctx context.Context, id uint) (*models.Conversation, error)
	// GetConversationByPair looks up the conversation for an unordered
	// participant pair, nil when none exists.
	GetConversationByPair(ctx context.Context, userA, userB uint) (*models.Conversation, error)
	ListConversationsForUser(ctx context.Context, userID uint) ([]*models.Conversation, error)
	GetMessageByID(ctx context.Context, id uint) (*models.Message, error)
	ListMessages(ctx context.Context, conversationID uint) ([]*models.Message, error)
	MarkMessageRead(ctx context.Context, messageID, userID uint) error
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	conv.UserAID, conv.UserBID = models.NormalizePair(conv.UserAID, conv.UserBID)
	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *chatRepository) GetConversationByID(ctx context.Context, id uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.WithContext(ctx).
		Preload("UserA").
		Preload("UserB").
		First(&conv, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Conversation", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &conv, nil
}

func (r *chatRepository) GetConversationByPair(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	a, b := models.NormalizePair(userA, userB)
	var conv models.Conversation
	err := r.db.WithContext(ctx).
		Where("user_a_id = ? AND user_b_id = ?", a, b).
		First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // no conversation for this pair yet
		}
		return nil, models.NewInternalError(err)
	}
	return &conv, nil
}

// ListConversationsForUser returns the viewer's threads newest-activity first,
// each with the viewer-relative unread count derived from message_reads.
func (r *chatRepository) ListConversationsForUser(ctx context.Context, userID uint) ([]*models.Conversation, error) {
	var convs []*models.Conversation
	err := r.db.WithContext(ctx).
		Select("conversations.*, "+
			"(SELECT COUNT(*) FROM messages m WHERE m.conversation_id = conversations.id "+
			"AND NOT EXISTS (SELECT 1 FROM message_reads mr WHERE mr.message_id = m.id AND mr.user_id = ?)) AS unread_count", userID).
		Preload("UserA").
		Preload("UserB").
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("last_message_time DESC").
		Find(&convs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return convs, nil
}

func (r *chatRepository) GetMessageByID(ctx context.Context, id uint) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).First(&msg, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewInternalError(err)
	}
	if err := r.loadReadBy(ctx, []*models.Message{&msg}); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *chatRepository) ListMessages(ctx context.Context, conversationID uint) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.loadReadBy(ctx, messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkMessageRead records a read receipt; repeated acknowledgements are no-ops.
func (r *chatRepository) MarkMessageRead(ctx context.Context, messageID, userID uint) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.MessageRead{}).
		Where("message_id = ? AND user_id = ?", messageID, userID).
		Count(&count).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	if count > 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&models.MessageRead{MessageID: messageID, UserID: userID}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *chatRepository) loadReadBy(ctx context.Context, messages []*models.Message) error {
	if len(messages) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}

	var reads []models.MessageRead
	if err := r.db.WithContext(ctx).Where("message_id IN ?", ids).Find(&reads).Error; err != nil {
		return models.NewInternalError(err)
	}

	byMessage := make(map[uint][]uint, len(messages))
	for _, read := range reads {
		byMessage[read.MessageID] = append(byMessage[read.MessageID], read.UserID)
	}
	for _, m := range messages {
		m.ReadBy = byMessage[m.ID]
	}
	return nil
}
