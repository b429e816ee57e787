package models

import (
	"time"

	"gorm.io/gorm"
)

// NotificationType identifies the event kind a notification records.
type NotificationType string

const (
	NotificationTypeLike    NotificationType = "like"
	NotificationTypeComment NotificationType = "comment"
	NotificationTypeFollow  NotificationType = "follow"
	NotificationTypeMention NotificationType = "mention"
	NotificationTypeMessage NotificationType = "message"
)

// Valid reports whether t is one of the five known notification kinds.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeLike, NotificationTypeComment, NotificationTypeFollow,
		NotificationTypeMention, NotificationTypeMessage:
		return true
	}
	return false
}

// Referenced entity kinds for Notification.TargetType.
const (
	NotificationTargetPost         = "post"
	NotificationTargetComment      = "comment"
	NotificationTargetUser         = "user"
	NotificationTargetConversation = "conversation"
)

// Notification records an actor→recipient event. Read/unread transitions are
// reversible; deletion is terminal.
type Notification struct {
	ID      uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	Type    NotificationType `gorm:"type:varchar(20);not null;index" json:"type"`
	ActorID uint             `gorm:"not null" json:"actor_id"`
	Actor   User             `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	// RecipientID is the user the notification is addressed to.
	RecipientID uint `gorm:"not null;index" json:"recipient_id"`
	// TargetType and EntityID point at the entity the event concerns.
	TargetType string         `gorm:"type:varchar(20)" json:"target_type"`
	EntityID   uint           `json:"entity_id"`
	Preview    string         `json:"preview,omitempty"`
	Read       bool           `gorm:"not null;default:false;index" json:"read"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// Typed constructors keep each notification kind carrying exactly the fields
// it needs instead of callers assembling loosely-typed records.

// NewLikeNotification records actorID liking recipientID's post.
func NewLikeNotification(actorID, recipientID, postID uint) *Notification {
	return &Notification{
		Type:        NotificationTypeLike,
		ActorID:     actorID,
		RecipientID: recipientID,
		TargetType:  NotificationTargetPost,
		EntityID:    postID,
	}
}

// NewCommentNotification records actorID commenting on recipientID's post.
func NewCommentNotification(actorID, recipientID, postID uint, preview string) *Notification {
	return &Notification{
		Type:        NotificationTypeComment,
		ActorID:     actorID,
		RecipientID: recipientID,
		TargetType:  NotificationTargetPost,
		EntityID:    postID,
		Preview:     preview,
	}
}

// NewFollowNotification records actorID starting to follow recipientID.
func NewFollowNotification(actorID, recipientID uint) *Notification {
	return &Notification{
		Type:        NotificationTypeFollow,
		ActorID:     actorID,
		RecipientID: recipientID,
		TargetType:  NotificationTargetUser,
		EntityID:    actorID,
	}
}

// NewMentionNotification records actorID mentioning recipientID in a post.
func NewMentionNotification(actorID, recipientID, postID uint, preview string) *Notification {
	return &Notification{
		Type:        NotificationTypeMention,
		ActorID:     actorID,
		RecipientID: recipientID,
		TargetType:  NotificationTargetPost,
		EntityID:    postID,
		Preview:     preview,
	}
}

// NewMessageNotification records actorID sending recipientID a direct message.
func NewMessageNotification(actorID, recipientID, conversationID uint, preview string) *Notification {
	return &Notification{
		Type:        NotificationTypeMessage,
		ActorID:     actorID,
		RecipientID: recipientID,
		TargetType:  NotificationTargetConversation,
		EntityID:    conversationID,
		Preview:     preview,
	}
}
