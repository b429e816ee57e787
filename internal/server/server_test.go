package server

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"feedflow/internal/database"
	"feedflow/internal/models"
	"feedflow/internal/repository"
	"feedflow/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer builds a Server over an in-memory database without touching
// the Prometheus registry, which tolerates only one registration per process.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	s := &Server{
		db:               db,
		userRepo:         repository.NewUserRepository(db),
		postRepo:         repository.NewPostRepository(db),
		commentRepo:      repository.NewCommentRepository(db),
		followRepo:       repository.NewFollowRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
		chatRepo:         repository.NewChatRepository(db),
	}
	s.userService = service.NewUserService(s.userRepo)
	s.postService = service.NewPostService(db, s.postRepo, s.userRepo)
	s.commentService = service.NewCommentService(db, s.commentRepo, s.postRepo)
	s.followService = service.NewFollowService(db, s.followRepo, s.userRepo)
	s.feedService = service.NewFeedService(s.postRepo, s.followRepo)
	s.notificationService = service.NewNotificationService(s.notificationRepo, s.userRepo)
	s.chatService = service.NewChatService(db, s.chatRepo, s.userRepo)

	app := fiber.New()
	app.Use(s.ViewerMiddleware())
	s.SetupRoutes(app)
	return s, app, db
}

func seedHandlerUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, DisplayName: username}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedHandlerPost(t *testing.T, db *gorm.DB, authorID uint, content string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{AuthorID: authorID, Content: content, CreatedAt: createdAt}
	require.NoError(t, db.Create(post).Error)
	return post
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, dest), "body: %s", body)
}
