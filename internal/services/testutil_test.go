package services

import (
	"testing"

	"inkstream/internal/auth"
	"inkstream/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{
		ID:       uuid.New(),
		Username: username,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user %q: %v", username, err)
	}
	return user
}

func createTestModerator(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{
		ID:          uuid.New(),
		Username:    username,
		IsActive:    true,
		IsSuperuser: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test moderator %q: %v", username, err)
	}
	return user
}

func createTestTopic(t *testing.T, db *gorm.DB, name string) models.Topic {
	t.Helper()

	topic := models.Topic{
		ID:          uuid.New(),
		Name:        name,
		Description: "Articles about " + name,
		IsActive:    true,
	}
	if err := db.Create(&topic).Error; err != nil {
		t.Fatalf("Failed to create test topic %q: %v", name, err)
	}
	return topic
}

func createTestArticle(t *testing.T, db *gorm.DB, author models.User, status string, topics ...models.Topic) models.Article {
	t.Helper()

	article := models.Article{
		ID:       uuid.New(),
		AuthorID: author.ID,
		Title:    "Test article by " + author.Username,
		Content:  "Some **Markdown** content for testing.",
		Status:   status,
	}
	for i := range topics {
		article.Topics = append(article.Topics, &topics[i])
	}
	if err := db.Create(&article).Error; err != nil {
		t.Fatalf("Failed to create test article: %v", err)
	}
	return article
}

func principalFor(user models.User) *auth.Principal {
	return &auth.Principal{
		UserID:      user.ID,
		Username:    user.Username,
		IsActive:    user.IsActive,
		IsSuperuser: user.IsSuperuser,
	}
}
