package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxCommentContentLen bounds comment body length.
const MaxCommentContentLen = 2000

// Comment represents a comment on a post.
type Comment struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    uint           `gorm:"not null;index" json:"post_id"`
	Post      Post           `gorm:"foreignKey:PostID" json:"post,omitempty"`
	AuthorID  uint           `gorm:"not null" json:"author_id"`
	Author    User           `gorm:"foreignKey:AuthorID" json:"author"`
	Content   string         `gorm:"not null" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
