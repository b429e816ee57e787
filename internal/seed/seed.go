package seed

import (
	"fmt"
	"log"
	"time"

	"feedflow/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// MaxDays spreads post timestamps over the given number of days back.
	MaxDays int
	// RandSeed fixes the generator for reproducible data; zero means
	// time-based.
	RandSeed int64
}

func (o Options) randSeed() int64 {
	if o.RandSeed != 0 {
		return o.RandSeed
	}
	return time.Now().UnixNano()
}

// DefaultOptions is the demo dataset created at startup when
// SEED_DEMO_DATA is enabled.
func DefaultOptions() Options {
	return Options{NumUsers: 12, NumPosts: 60, MaxDays: 30}
}

// Seed populates the database with demo data: users, a follow mesh, posts
// with engagement, conversations and the notifications those events produce.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	if err := createFollowMesh(f, users); err != nil {
		return fmt.Errorf("failed to create follow graph: %w", err)
	}

	posts, err := createPosts(f, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := createEngagement(f, users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	if err := createConversations(f, users); err != nil {
		return fmt.Errorf("failed to create conversations: %w", err)
	}

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	tables := []string{
		"message_reads", "messages", "conversations", "notifications",
		"likes", "comments", "follows", "posts", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// createFollowMesh gives every user a handful of follows so the following
// feed has something to compose. The last user is left unconnected to
// exercise the suggested-posts fallback.
func createFollowMesh(f *Factory, users []*models.User) error {
	if len(users) < 2 {
		return nil
	}
	for _, follower := range users[:len(users)-1] {
		edges := f.rand.Intn(4) + 1
		for j := 0; j < edges; j++ {
			followee := users[f.rand.Intn(len(users))]
			if followee.ID == follower.ID {
				continue
			}
			if err := f.CreateFollow(follower, followee); err != nil {
				return err
			}
		}
	}
	return nil
}

func createPosts(f *Factory, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[f.rand.Intn(len(users))]
		posts = append(posts, f.BuildPost(author))
	}
	if err := f.CreatePostsBatch(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func createEngagement(f *Factory, users []*models.User, posts []*models.Post) error {
	likes, comments := 0, 0
	for _, post := range posts {
		for _, user := range users {
			if f.rand.Intn(4) == 0 {
				if err := f.CreateLike(post, user); err != nil {
					return err
				}
				likes++
			}
		}
		commentCount := f.rand.Intn(3)
		for i := 0; i < commentCount; i++ {
			commenter := users[f.rand.Intn(len(users))]
			if _, err := f.CreateComment(post, commenter); err != nil {
				return err
			}
			comments++
		}
	}
	log.Printf("✓ %d likes and %d comments created", likes, comments)
	return nil
}

func createConversations(f *Factory, users []*models.User) error {
	if len(users) < 2 {
		return nil
	}
	// A few threads between distinct neighbouring pairs; the pair-uniqueness
	// constraint forbids a second thread for the same two users.
	count := len(users) / 3
	if count == 0 {
		count = 1
	}
	created := 0
	for i := 0; i < count && i*2+1 < len(users); i++ {
		a, b := users[i*2], users[i*2+1]
		if _, err := f.CreateConversation(a, b, f.rand.Intn(6)+2); err != nil {
			return err
		}
		created++
	}
	log.Printf("✓ %d conversations created", created)
	return nil
}
