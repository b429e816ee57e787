package service

import (
	"context"
	"strings"
	"time"

	"feedflow/internal/models"
	"feedflow/internal/observability"
	"feedflow/internal/repository"

	"gorm.io/gorm"
)

// ChatService owns direct-message conversations. A participant pair has at
// most one conversation; sending a message also stamps the thread's
// last-activity fields and notifies the other participant, all in one
// transaction.
type ChatService struct {
	db       *gorm.DB
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
}

type SendMessageInput struct {
	ConversationID uint
	SenderID       uint
	Content        string
}

// NewChatService returns a new ChatService.
func NewChatService(db *gorm.DB, chatRepo repository.ChatRepository, userRepo repository.UserRepository) *ChatService {
	return &ChatService{db: db, chatRepo: chatRepo, userRepo: userRepo}
}

// OpenConversation creates the conversation for a participant pair. Opening
// a second conversation for the same pair is rejected; use GetOrOpen for the
// lenient form.
func (s *ChatService) OpenConversation(ctx context.Context, initiatorID, otherID uint) (*models.Conversation, error) {
	if initiatorID == otherID {
		return nil, models.NewInvalidOperationError("Cannot start a conversation with yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, otherID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, initiatorID); err != nil {
		return nil, err
	}

	existing, err := s.chatRepo.GetConversationByPair(ctx, initiatorID, otherID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewInvalidOperationError("A conversation between these users already exists")
	}

	conv := &models.Conversation{UserAID: initiatorID, UserBID: otherID}
	if err := s.chatRepo.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}
	return s.chatRepo.GetConversationByID(ctx, conv.ID)
}

// GetOrOpen returns the pair's conversation, creating it when absent.
func (s *ChatService) GetOrOpen(ctx context.Context, initiatorID, otherID uint) (*models.Conversation, error) {
	if initiatorID == otherID {
		return nil, models.NewInvalidOperationError("Cannot start a conversation with yourself")
	}
	existing, err := s.chatRepo.GetConversationByPair(ctx, initiatorID, otherID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.chatRepo.GetConversationByID(ctx, existing.ID)
	}
	return s.OpenConversation(ctx, initiatorID, otherID)
}

// ListConversations returns the viewer's threads newest-activity first with
// viewer-relative unread counts.
func (s *ChatService) ListConversations(ctx context.Context, viewerID uint) ([]*models.Conversation, error) {
	if _, err := s.userRepo.GetByID(ctx, viewerID); err != nil {
		return nil, err
	}
	return s.chatRepo.ListConversationsForUser(ctx, viewerID)
}

// GetConversation returns one thread, participants only.
func (s *ChatService) GetConversation(ctx context.Context, conversationID, viewerID uint) (*models.Conversation, error) {
	conv, err := s.chatRepo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(viewerID) {
		return nil, models.NewInvalidOperationError("Not a participant in this conversation")
	}
	return conv, nil
}

// SendMessage appends a message to the thread. The sender's own read receipt,
// the conversation's last-activity stamp and the recipient's message
// notification are written in the same transaction as the message itself.
func (s *ChatService) SendMessage(ctx context.Context, in SendMessageInput) (*models.Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Message content is required")
	}
	if len(content) > models.MaxMessageContentLen {
		return nil, models.NewValidationError("Message too long (max 4000 characters)")
	}

	conv, err := s.chatRepo.GetConversationByID(ctx, in.ConversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(in.SenderID) {
		return nil, models.NewInvalidOperationError("Not a participant in this conversation")
	}
	recipientID := conv.OtherParticipant(in.SenderID)

	msg := &models.Message{
		ConversationID: in.ConversationID,
		SenderID:       in.SenderID,
		Content:        content,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		// The sender has read their own message by definition.
		if err := tx.Create(&models.MessageRead{MessageID: msg.ID, UserID: in.SenderID}).Error; err != nil {
			return err
		}
		err := tx.Model(&models.Conversation{}).
			Where("id = ?", conv.ID).
			Updates(map[string]any{
				"last_message":      notificationPreview(content),
				"last_message_time": time.Now(),
			}).Error
		if err != nil {
			return err
		}
		n := models.NewMessageNotification(in.SenderID, recipientID, conv.ID, notificationPreview(content))
		if err := tx.Create(n).Error; err != nil {
			return err
		}
		observability.NotificationsCreated.WithLabelValues(string(models.NotificationTypeMessage)).Inc()
		return nil
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.EngagementEvents.WithLabelValues("message").Inc()
	return s.chatRepo.GetMessageByID(ctx, msg.ID)
}

// ListMessages returns the thread's messages oldest first, participants only.
func (s *ChatService) ListMessages(ctx context.Context, conversationID, viewerID uint) ([]*models.Message, error) {
	conv, err := s.chatRepo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(viewerID) {
		return nil, models.NewInvalidOperationError("Not a participant in this conversation")
	}
	return s.chatRepo.ListMessages(ctx, conversationID)
}

// MarkMessageRead records the viewer's read receipt for one message.
// Repeated acknowledgements are no-ops.
func (s *ChatService) MarkMessageRead(ctx context.Context, messageID, viewerID uint) error {
	msg, err := s.chatRepo.GetMessageByID(ctx, messageID)
	if err != nil {
		return err
	}
	conv, err := s.chatRepo.GetConversationByID(ctx, msg.ConversationID)
	if err != nil {
		return err
	}
	if !conv.HasParticipant(viewerID) {
		return models.NewInvalidOperationError("Not a participant in this conversation")
	}
	return s.chatRepo.MarkMessageRead(ctx, messageID, viewerID)
}
