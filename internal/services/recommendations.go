package services

import (
	"fmt"

	"inkstream/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecommendationsService owns the per-user preference model: two
// disjoint sets of "more" and "less" topics that shape feed
// composition. Every mutation runs inside one transaction so the
// disjointness invariant holds under concurrent updates.
type RecommendationsService struct {
	db *gorm.DB
}

// NewRecommendationsService creates a new RecommendationsService
func NewRecommendationsService(db *gorm.DB) *RecommendationsService {
	return &RecommendationsService{db: db}
}

// ApplyPreference records explicit topic-level feedback. Either or
// both topic ids may be given; each topic moves to the named set and
// leaves the opposite one. Re-applying is a no-op.
func (s *RecommendationsService) ApplyPreference(userID uuid.UUID, moreTopicID, lessTopicID *uuid.UUID) error {
	if moreTopicID == nil && lessTopicID == nil {
		return fmt.Errorf("%w: no preference given", ErrValidation)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		rec, err := getOrCreateRecommendation(tx, userID)
		if err != nil {
			return err
		}

		if moreTopicID != nil {
			topic, err := activeTopic(tx, *moreTopicID)
			if err != nil {
				return err
			}
			if err := moveTopic(tx, rec, topic, true); err != nil {
				return err
			}
		}
		if lessTopicID != nil {
			topic, err := activeTopic(tx, *lessTopicID)
			if err != nil {
				return err
			}
			if err := moveTopic(tx, rec, topic, false); err != nil {
				return err
			}
		}
		return nil
	})
}

// ApplyArticlePreference records article-level feedback: all topics of
// the referenced published article move to the named set at once.
func (s *RecommendationsService) ApplyArticlePreference(userID uuid.UUID, moreArticleID, lessArticleID *uuid.UUID) error {
	if moreArticleID == nil && lessArticleID == nil {
		return fmt.Errorf("%w: no preference given", ErrValidation)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		rec, err := getOrCreateRecommendation(tx, userID)
		if err != nil {
			return err
		}

		if moreArticleID != nil {
			if err := moveArticleTopics(tx, rec, *moreArticleID, true); err != nil {
				return err
			}
		}
		if lessArticleID != nil {
			if err := moveArticleTopics(tx, rec, *lessArticleID, false); err != nil {
				return err
			}
		}
		return nil
	})
}

// ApplyImplicitPreference feeds passive engagement (favoriting or
// reading an article) into the model. Implicit signals only ever add
// to "more"; negative affinity requires explicit feedback.
func (s *RecommendationsService) ApplyImplicitPreference(userID, articleID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		rec, err := getOrCreateRecommendation(tx, userID)
		if err != nil {
			return err
		}
		return moveArticleTopics(tx, rec, articleID, true)
	})
}

// MoreTopicIDs returns the user's "more" set. An absent recommendation
// record is an empty set.
func (s *RecommendationsService) MoreTopicIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	return s.topicIDs(userID, "recommendation_more_topics")
}

// LessTopicIDs returns the user's "less" set.
func (s *RecommendationsService) LessTopicIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	return s.topicIDs(userID, "recommendation_less_topics")
}

func (s *RecommendationsService) topicIDs(userID uuid.UUID, joinTable string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.Table(joinTable).
		Joins(fmt.Sprintf("JOIN recommendations ON recommendations.id = %s.recommendation_id", joinTable)).
		Where("recommendations.user_id = ?", userID).
		Pluck(fmt.Sprintf("%s.topic_id", joinTable), &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load preference topics: %w", err)
	}
	return ids, nil
}

// getOrCreateRecommendation fetches the user's singleton preference
// record, creating it on first use.
func getOrCreateRecommendation(tx *gorm.DB, userID uuid.UUID) (*models.Recommendation, error) {
	var rec models.Recommendation
	err := tx.Where("user_id = ?", userID).First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		rec = models.Recommendation{
			ID:     uuid.New(),
			UserID: userID,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return nil, fmt.Errorf("failed to create recommendation record: %w", err)
		}
		return &rec, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendation record: %w", err)
	}
	return &rec, nil
}

// moveTopic places a topic into one preference set and removes it from
// the other. Appending an already-present topic is a no-op.
func moveTopic(tx *gorm.DB, rec *models.Recommendation, topic *models.Topic, more bool) error {
	from, to := "MoreTopics", "LessTopics"
	if more {
		from, to = to, from
	}
	if err := tx.Model(rec).Association(from).Delete(topic); err != nil {
		return fmt.Errorf("failed to remove topic from %s: %w", from, err)
	}
	if err := tx.Model(rec).Association(to).Append(topic); err != nil {
		return fmt.Errorf("failed to add topic to %s: %w", to, err)
	}
	return nil
}

// moveArticleTopics moves every topic of a published article into the
// named set.
func moveArticleTopics(tx *gorm.DB, rec *models.Recommendation, articleID uuid.UUID, more bool) error {
	var article models.Article
	err := tx.Preload("Topics").
		Where("id = ? AND status = ?", articleID, models.StatusPublish).
		First(&article).Error
	if err != nil {
		return translateNotFound(err)
	}

	for _, topic := range article.Topics {
		if err := moveTopic(tx, rec, topic, more); err != nil {
			return err
		}
	}
	return nil
}

// activeTopic resolves a topic id to an active topic.
func activeTopic(tx *gorm.DB, id uuid.UUID) (*models.Topic, error) {
	var topic models.Topic
	err := tx.Where("id = ? AND is_active = ?", id, true).First(&topic).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &topic, nil
}
