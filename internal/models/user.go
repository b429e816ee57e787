// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a member of the FeedFlow network.
type User struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username       string `gorm:"unique;not null" json:"username"`
	DisplayName    string `gorm:"not null" json:"display_name"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profile_picture"`
	// FollowingCount is not persisted; derived from the follows table at query time
	FollowingCount int `gorm:"-" json:"following_count"`
	// FollowersCount is not persisted; derived from the follows table at query time
	FollowersCount int            `gorm:"-" json:"followers_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Posts          []Post         `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}
