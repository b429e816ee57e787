package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxMessageContentLen bounds message body length.
const MaxMessageContentLen = 4000

// Conversation is a direct-message thread between exactly two users.
// The pair is stored normalized (UserAID < UserBID) and uniquely indexed so
// at most one conversation exists per unordered participant pair.
type Conversation struct {
	ID      uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserAID uint `gorm:"not null;uniqueIndex:idx_conversation_pair" json:"user_a_id"`
	UserBID uint `gorm:"not null;uniqueIndex:idx_conversation_pair" json:"user_b_id"`
	// LastMessage and LastMessageTime are a denormalized cache of the most
	// recent message, refreshed in the same transaction as the send.
	LastMessage     string     `json:"last_message"`
	LastMessageTime *time.Time `json:"last_message_time,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	UserA User `gorm:"foreignKey:UserAID" json:"user_a,omitempty"`
	UserB User `gorm:"foreignKey:UserBID" json:"user_b,omitempty"`
	// UnreadCount is viewer-relative; computed at query time
	UnreadCount int       `gorm:"-" json:"unread_count"`
	Messages    []Message `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

// NormalizePair returns the unordered pair (a, b) with the lower id first.
func NormalizePair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// HasParticipant reports whether userID is one of the two participants.
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.UserAID == userID || c.UserBID == userID
}

// OtherParticipant returns the participant that is not userID.
func (c *Conversation) OtherParticipant(userID uint) uint {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}

// Message is a single message inside a conversation.
type Message struct {
	ID             uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID uint          `gorm:"not null;index" json:"conversation_id"`
	Conversation   *Conversation `gorm:"foreignKey:ConversationID" json:"conversation,omitempty"`
	SenderID       uint          `gorm:"not null;index" json:"sender_id"`
	Sender         *User         `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Content        string        `gorm:"type:text;not null" json:"content"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	// ReadBy holds the ids of users that acknowledged this message; the
	// sender's row is written at send time so senderID is always present.
	ReadBy []uint `gorm:"-" json:"read_by"`
}

// MessageRead is the read receipt join table backing Message.ReadBy.
type MessageRead struct {
	MessageID uint      `gorm:"primaryKey" json:"message_id"`
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	ReadAt    time.Time `gorm:"autoCreateTime" json:"read_at"`
}
