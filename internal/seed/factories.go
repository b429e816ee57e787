// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"feedflow/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and by tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(opts.randSeed())
	return &Factory{db: db, opts: opts, rand: rand.New(rand.NewSource(opts.randSeed()))}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:       gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		DisplayName:    gofakeit.Name(),
		Bio:            gofakeit.Sentence(10),
		ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post with a realistic created_at spread but does
// not persist it. Useful for batching.
func (f *Factory) BuildPost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		AuthorID: author.ID,
		Content:  gofakeit.Paragraph(1, 3, 5, "\n"),
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 30
	}
	daysBack := f.rand.Intn(maxDays)
	hoursBack := f.rand.Intn(24)
	minsBack := f.rand.Intn(60)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)

	// Roughly a third of posts carry media.
	if f.rand.Intn(3) == 0 {
		post.MediaURLs = []string{
			fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		}
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost persists a single generated post.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(author, overrides...)
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment persists a generated comment and its notification, mirroring
// what the comment service does at runtime.
func (f *Factory) CreateComment(post *models.Post, author *models.User) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: author.ID,
		Content:  gofakeit.Sentence(f.rand.Intn(12) + 3),
	}
	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if post.AuthorID != author.ID {
			n := models.NewCommentNotification(author.ID, post.AuthorID, post.ID, comment.Content)
			n.Read = f.rand.Intn(2) == 0
			return tx.Create(n).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like and its notification. Duplicate pairs are
// skipped silently so callers can sample pairs freely.
func (f *Factory) CreateLike(post *models.Post, user *models.User) error {
	var count int64
	if err := f.db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", user.ID, post.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error; err != nil {
			return err
		}
		if post.AuthorID != user.ID {
			n := models.NewLikeNotification(user.ID, post.AuthorID, post.ID)
			n.Read = f.rand.Intn(2) == 0
			return tx.Create(n).Error
		}
		return nil
	})
}

// CreateFollow persists a follow edge and its notification. Self-follows and
// duplicate edges are skipped.
func (f *Factory) CreateFollow(follower, followee *models.User) error {
	if follower.ID == followee.ID {
		return nil
	}
	var count int64
	if err := f.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", follower.ID, followee.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return f.db.Transaction(func(tx *gorm.DB) error {
		edge := &models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}
		if err := tx.Create(edge).Error; err != nil {
			return err
		}
		n := models.NewFollowNotification(follower.ID, followee.ID)
		n.Read = f.rand.Intn(2) == 0
		return tx.Create(n).Error
	})
}

// CreateConversation opens a thread between two users and fills it with a
// short exchange, maintaining the sender-read invariant and the thread's
// last-activity stamp.
func (f *Factory) CreateConversation(a, b *models.User, messageCount int) (*models.Conversation, error) {
	userA, userB := models.NormalizePair(a.ID, b.ID)
	conv := &models.Conversation{UserAID: userA, UserBID: userB}
	if err := f.db.Create(conv).Error; err != nil {
		return nil, err
	}

	participants := []uint{a.ID, b.ID}
	var lastContent string
	var lastTime time.Time
	base := time.Now().Add(-time.Duration(f.rand.Intn(72)+1) * time.Hour)

	for i := 0; i < messageCount; i++ {
		senderID := participants[i%2]
		recipientID := participants[(i+1)%2]
		content := gofakeit.Sentence(f.rand.Intn(10) + 2)
		createdAt := base.Add(time.Duration(i) * time.Minute)

		err := f.db.Transaction(func(tx *gorm.DB) error {
			msg := &models.Message{
				ConversationID: conv.ID,
				SenderID:       senderID,
				Content:        content,
				CreatedAt:      createdAt,
			}
			if err := tx.Create(msg).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.MessageRead{MessageID: msg.ID, UserID: senderID}).Error; err != nil {
				return err
			}
			n := models.NewMessageNotification(senderID, recipientID, conv.ID, content)
			n.Read = f.rand.Intn(2) == 0
			return tx.Create(n).Error
		})
		if err != nil {
			return nil, err
		}
		lastContent = content
		lastTime = createdAt
	}

	if messageCount > 0 {
		err := f.db.Model(&models.Conversation{}).
			Where("id = ?", conv.ID).
			Updates(map[string]any{
				"last_message":      lastContent,
				"last_message_time": lastTime,
			}).Error
		if err != nil {
			return nil, err
		}
	}
	return conv, nil
}
