package cache

import (
	"context"
	"fmt"
	"time"
)

// TTLs per cached shape. Feed pages churn quickly, user profiles less so.
const (
	UserTTL     = 5 * time.Minute
	PostTTL     = time.Minute
	FeedTTL     = 15 * time.Second
	TrendingTTL = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf("post:%d", postID)
}

// GlobalFeedKey caches a single page of the global feed for anonymous viewers.
func GlobalFeedKey(page, pageSize int) string {
	return fmt.Sprintf("feed:global:%d:%d", page, pageSize)
}

func TrendingKey(limit int) string {
	return fmt.Sprintf("feed:trending:%d", limit)
}

// Invalidate removes a single key, best-effort.
func Invalidate(ctx context.Context, key string) {
	if client == nil {
		return
	}
	client.Del(ctx, key)
}

// InvalidateUser drops the cached profile for a user.
func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidatePost drops the cached record for a post.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidateFeeds drops every cached feed page. Called on post writes; the
// key space is small enough that a scan is fine.
func InvalidateFeeds(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "feed:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
