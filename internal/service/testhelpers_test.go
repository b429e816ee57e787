package service

import (
	"testing"
	"time"

	"feedflow/internal/database"
	"feedflow/internal/models"
	"feedflow/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, DisplayName: username}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, authorID uint, content string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{AuthorID: authorID, Content: content, CreatedAt: createdAt}
	require.NoError(t, db.Create(post).Error)
	return post
}

func newTestRepos(db *gorm.DB) (repository.UserRepository, repository.PostRepository, repository.FollowRepository) {
	return repository.NewUserRepository(db), repository.NewPostRepository(db), repository.NewFollowRepository(db)
}
