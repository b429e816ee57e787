package models

import "time"

// Follow is a directed edge meaning "follower sees followee's posts in their
// personalized feed". The (follower, followee) pair is unique and the edge
// set never contains self-pairs. Rows are hard-deleted on unfollow so a
// re-follow never collides with the unique index.
type Follow struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_followee;index" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follower_followee;index" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followee User `gorm:"foreignKey:FolloweeID" json:"followee,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
