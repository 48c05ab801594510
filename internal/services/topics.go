package services

import (
	"fmt"

	"inkstream/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TopicsService serves the shared topic catalog. Topic mutation is a
// moderator concern; readers only list and filter.
type TopicsService struct {
	db *gorm.DB
}

// NewTopicsService creates a new TopicsService
func NewTopicsService(db *gorm.DB) *TopicsService {
	return &TopicsService{db: db}
}

// TopicQuery selects which slice of the catalog to return.
type TopicQuery struct {
	// Followed restricts to topics the user follows. Requires an
	// authenticated user.
	Followed bool
	// Popular returns the most-followed active topics.
	Popular bool
	Limit   int
	Offset  int
}

// popularTopicsLimit caps the popular-topics listing.
const popularTopicsLimit = 5

// ListTopics returns active topics per the query.
func (s *TopicsService) ListTopics(userID *uuid.UUID, q TopicQuery) ([]models.Topic, error) {
	var topics []models.Topic

	switch {
	case q.Followed:
		if userID == nil {
			return nil, fmt.Errorf("%w: followed filter requires authentication", ErrValidation)
		}
		err := s.db.Model(&models.Topic{}).
			Joins("JOIN topic_follows ON topic_follows.topic_id = topics.id").
			Where("topic_follows.user_id = ? AND topics.is_active = ?", *userID, true).
			Order("topic_follows.created_at DESC").
			Limit(q.Limit).
			Offset(q.Offset).
			Find(&topics).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list followed topics: %w", err)
		}

	case q.Popular:
		err := s.db.Model(&models.Topic{}).
			Select("topics.*, COUNT(topic_follows.id) AS followers_count").
			Joins("LEFT JOIN topic_follows ON topic_follows.topic_id = topics.id").
			Where("topics.is_active = ?", true).
			Group("topics.id").
			Order("followers_count DESC").
			Limit(popularTopicsLimit).
			Find(&topics).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list popular topics: %w", err)
		}

	default:
		err := s.db.Where("is_active = ?", true).
			Order("name ASC").
			Limit(q.Limit).
			Offset(q.Offset).
			Find(&topics).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list topics: %w", err)
		}
	}

	return topics, nil
}

// GetTopic returns an active topic by id.
func (s *TopicsService) GetTopic(id uuid.UUID) (*models.Topic, error) {
	return activeTopic(s.db, id)
}

// CreateTopic adds a topic to the catalog. Superuser only; exposed for
// the seeding and admin paths.
func (s *TopicsService) CreateTopic(name, description string, isSuperuser bool) (*models.Topic, error) {
	if !isSuperuser {
		return nil, ErrPermissionDenied
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	topic := models.Topic{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		IsActive:    true,
	}
	if err := s.db.Create(&topic).Error; err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}
	return &topic, nil
}

// DeactivateTopic soft-deletes a topic: it stops accepting new
// associations but historical ones persist. Superuser only.
func (s *TopicsService) DeactivateTopic(id uuid.UUID, isSuperuser bool) error {
	if !isSuperuser {
		return ErrPermissionDenied
	}

	result := s.db.Model(&models.Topic{}).
		Where("id = ? AND is_active = ?", id, true).
		UpdateColumn("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate topic: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
