package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxPostContentLen bounds post body length.
const MaxPostContentLen = 5000

// Post is a feed entry authored by a user.
type Post struct {
	ID        uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	AuthorID  uint     `gorm:"not null;index" json:"author_id"`
	Author    User     `gorm:"foreignKey:AuthorID" json:"author"`
	Content   string   `json:"content"`
	MediaURLs []string `gorm:"serializer:json" json:"media_urls,omitempty"`
	// ShareCount is the only counter stored on the row; likes and comments
	// are derived from their authoritative tables at query time.
	ShareCount int `gorm:"not null;default:0" json:"share_count"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"-" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"-" json:"comments_count"`
	// Liked indicates whether the requesting viewer liked this post (computed)
	Liked     bool           `gorm:"-" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// EngagementScore is the trending rank input: likes + comments.
func (p *Post) EngagementScore() int {
	return p.LikesCount + p.CommentsCount
}
