package services

import (
	"errors"
	"testing"

	"inkstream/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestApplyPreferenceKeepsSetsDisjoint(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecommendationsService(db)

	user := createTestUser(t, db, "reader")
	topic := createTestTopic(t, db, "databases")

	if err := service.ApplyPreference(user.ID, &topic.ID, nil); err != nil {
		t.Fatalf("ApplyPreference(more) failed: %v", err)
	}

	more, err := service.MoreTopicIDs(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{topic.ID}, more)

	less, err := service.LessTopicIDs(user.ID)
	assert.NoError(t, err)
	assert.Empty(t, less)

	// Moving to "less" leaves "more"
	if err := service.ApplyPreference(user.ID, nil, &topic.ID); err != nil {
		t.Fatalf("ApplyPreference(less) failed: %v", err)
	}

	more, _ = service.MoreTopicIDs(user.ID)
	less, _ = service.LessTopicIDs(user.ID)
	assert.Empty(t, more)
	assert.Equal(t, []uuid.UUID{topic.ID}, less)

	// Re-applying the same preference is a no-op
	if err := service.ApplyPreference(user.ID, nil, &topic.ID); err != nil {
		t.Fatalf("ApplyPreference(less) repeat failed: %v", err)
	}
	less, _ = service.LessTopicIDs(user.ID)
	assert.Len(t, less, 1)
}

func TestApplyPreferenceRequiresInput(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecommendationsService(db)
	user := createTestUser(t, db, "reader")

	err := service.ApplyPreference(user.ID, nil, nil)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation with no topic ids, got %v", err)
	}
}

func TestApplyPreferenceInactiveTopic(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecommendationsService(db)

	user := createTestUser(t, db, "reader")
	topic := createTestTopic(t, db, "retired")
	db.Model(&topic).UpdateColumn("is_active", false)

	err := service.ApplyPreference(user.ID, &topic.ID, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for inactive topic, got %v", err)
	}
}

func TestApplyArticlePreferenceMovesAllTopics(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecommendationsService(db)

	author := createTestUser(t, db, "author")
	user := createTestUser(t, db, "reader")
	golang := createTestTopic(t, db, "golang")
	writing := createTestTopic(t, db, "writing")
	article := createTestArticle(t, db, author, models.StatusPublish, golang, writing)

	if err := service.ApplyArticlePreference(user.ID, nil, &article.ID); err != nil {
		t.Fatalf("ApplyArticlePreference(less) failed: %v", err)
	}

	less, err := service.LessTopicIDs(user.ID)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{golang.ID, writing.ID}, less)

	// Article-level positive feedback pulls every topic back out
	if err := service.ApplyArticlePreference(user.ID, &article.ID, nil); err != nil {
		t.Fatalf("ApplyArticlePreference(more) failed: %v", err)
	}

	more, _ := service.MoreTopicIDs(user.ID)
	less, _ = service.LessTopicIDs(user.ID)
	assert.ElementsMatch(t, []uuid.UUID{golang.ID, writing.ID}, more)
	assert.Empty(t, less)
}

func TestApplyArticlePreferenceRequiresPublished(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecommendationsService(db)

	author := createTestUser(t, db, "author")
	user := createTestUser(t, db, "reader")
	topic := createTestTopic(t, db, "golang")
	pending := createTestArticle(t, db, author, models.StatusPending, topic)

	err := service.ApplyArticlePreference(user.ID, &pending.ID, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unpublished article, got %v", err)
	}
}

func TestImplicitPreferenceOverridesLess(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecommendationsService(db)

	author := createTestUser(t, db, "author")
	user := createTestUser(t, db, "reader")
	topic := createTestTopic(t, db, "distributed")
	article := createTestArticle(t, db, author, models.StatusPublish, topic)

	if err := service.ApplyPreference(user.ID, nil, &topic.ID); err != nil {
		t.Fatalf("ApplyPreference(less) failed: %v", err)
	}

	// Engaging with the article is a positive signal that wins over the
	// earlier explicit "less"
	if err := service.ApplyImplicitPreference(user.ID, article.ID); err != nil {
		t.Fatalf("ApplyImplicitPreference failed: %v", err)
	}

	more, _ := service.MoreTopicIDs(user.ID)
	less, _ := service.LessTopicIDs(user.ID)
	assert.Contains(t, more, topic.ID)
	assert.Empty(t, less)
}

func TestTopicIDsEmptyWithoutRecord(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecommendationsService(db)
	user := createTestUser(t, db, "reader")

	more, err := service.MoreTopicIDs(user.ID)
	if err != nil {
		t.Fatalf("MoreTopicIDs failed: %v", err)
	}
	if len(more) != 0 {
		t.Errorf("Expected empty more set for fresh user, got %d entries", len(more))
	}
}
