package services

import (
	"errors"
	"testing"

	"inkstream/internal/models"

	"github.com/google/uuid"
)

func TestListTopicsDefault(t *testing.T) {
	db := setupTestDB(t)
	service := NewTopicsService(db)

	createTestTopic(t, db, "writing")
	createTestTopic(t, db, "golang")
	retired := createTestTopic(t, db, "retired")
	db.Model(&retired).UpdateColumn("is_active", false)

	topics, err := service.ListTopics(nil, TopicQuery{Limit: 20})
	if err != nil {
		t.Fatalf("ListTopics failed: %v", err)
	}

	if len(topics) != 2 {
		t.Fatalf("Expected 2 active topics, got %d", len(topics))
	}
	if topics[0].Name != "golang" || topics[1].Name != "writing" {
		t.Errorf("Expected topics ordered by name, got %q, %q", topics[0].Name, topics[1].Name)
	}
}

func TestListTopicsFollowed(t *testing.T) {
	db := setupTestDB(t)
	service := NewTopicsService(db)

	alice := createTestUser(t, db, "alice")
	golang := createTestTopic(t, db, "golang")
	createTestTopic(t, db, "writing")

	follow := models.TopicFollow{ID: uuid.New(), UserID: alice.ID, TopicID: golang.ID}
	if err := db.Create(&follow).Error; err != nil {
		t.Fatalf("Failed to create topic follow: %v", err)
	}

	topics, err := service.ListTopics(&alice.ID, TopicQuery{Followed: true, Limit: 20})
	if err != nil {
		t.Fatalf("ListTopics followed failed: %v", err)
	}
	if len(topics) != 1 || topics[0].ID != golang.ID {
		t.Errorf("Expected only the followed topic, got %d topics", len(topics))
	}

	// The followed filter needs a user
	_, err = service.ListTopics(nil, TopicQuery{Followed: true, Limit: 20})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation without a user, got %v", err)
	}
}

func TestListTopicsPopular(t *testing.T) {
	db := setupTestDB(t)
	service := NewTopicsService(db)

	golang := createTestTopic(t, db, "golang")
	writing := createTestTopic(t, db, "writing")
	createTestTopic(t, db, "niche")

	for i := 0; i < 3; i++ {
		follower := createTestUser(t, db, "golang-fan-"+string(rune('a'+i)))
		db.Create(&models.TopicFollow{ID: uuid.New(), UserID: follower.ID, TopicID: golang.ID})
	}
	loner := createTestUser(t, db, "writing-fan")
	db.Create(&models.TopicFollow{ID: uuid.New(), UserID: loner.ID, TopicID: writing.ID})

	topics, err := service.ListTopics(nil, TopicQuery{Popular: true})
	if err != nil {
		t.Fatalf("ListTopics popular failed: %v", err)
	}
	if len(topics) != 3 {
		t.Fatalf("Expected 3 topics, got %d", len(topics))
	}
	if topics[0].ID != golang.ID {
		t.Errorf("Expected most-followed topic first, got %q", topics[0].Name)
	}
	if topics[1].ID != writing.ID {
		t.Errorf("Expected second most-followed topic next, got %q", topics[1].Name)
	}
}

func TestCreateTopicRequiresSuperuser(t *testing.T) {
	db := setupTestDB(t)
	service := NewTopicsService(db)

	_, err := service.CreateTopic("golang", "The Go programming language", false)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("Expected ErrPermissionDenied, got %v", err)
	}

	topic, err := service.CreateTopic("golang", "The Go programming language", true)
	if err != nil {
		t.Fatalf("CreateTopic failed: %v", err)
	}
	if !topic.IsActive {
		t.Error("Expected new topic to be active")
	}

	_, err = service.CreateTopic("", "", true)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for empty name, got %v", err)
	}
}

func TestDeactivateTopic(t *testing.T) {
	db := setupTestDB(t)
	service := NewTopicsService(db)

	topic := createTestTopic(t, db, "golang")

	if err := service.DeactivateTopic(topic.ID, false); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("Expected ErrPermissionDenied, got %v", err)
	}

	if err := service.DeactivateTopic(topic.ID, true); err != nil {
		t.Fatalf("DeactivateTopic failed: %v", err)
	}

	if _, err := service.GetTopic(topic.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected deactivated topic hidden, got %v", err)
	}

	// Deactivating twice misses the row
	if err := service.DeactivateTopic(topic.ID, true); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on repeat deactivation, got %v", err)
	}
}
