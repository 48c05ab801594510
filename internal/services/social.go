package services

import (
	"fmt"

	"inkstream/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SocialService handles follow edges between users and between users
// and topics. Follow operations are toggles: a second call removes the
// edge the first one created.
type SocialService struct {
	db            *gorm.DB
	notifications *NotificationsService
}

// NewSocialService creates a new SocialService
func NewSocialService(db *gorm.DB, notifications *NotificationsService) *SocialService {
	return &SocialService{
		db:            db,
		notifications: notifications,
	}
}

// FollowResult reports the state of the edge after a toggle.
type FollowResult struct {
	Following bool `json:"following"`
}

// ToggleFollow follows the target user, or unfollows when the edge
// already exists. A first-time follow fans out a notification to the
// followee. Self-follow is rejected.
func (s *SocialService) ToggleFollow(followerID, followeeID uuid.UUID) (*FollowResult, error) {
	if followerID == followeeID {
		return nil, fmt.Errorf("%w: cannot follow yourself", ErrValidation)
	}

	var follower, followee models.User
	if err := s.db.Where("id = ? AND is_active = ?", followeeID, true).First(&followee).Error; err != nil {
		return nil, translateNotFound(err)
	}
	if err := s.db.Where("id = ?", followerID).First(&follower).Error; err != nil {
		return nil, translateNotFound(err)
	}

	var result FollowResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var edge models.Follow
		err := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			First(&edge).Error
		if err == nil {
			if err := tx.Delete(&edge).Error; err != nil {
				return fmt.Errorf("failed to unfollow: %w", err)
			}
			result.Following = false
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to load follow edge: %w", err)
		}

		edge = models.Follow{
			ID:         uuid.New(),
			FollowerID: followerID,
			FolloweeID: followeeID,
		}
		if err := tx.Create(&edge).Error; err != nil {
			return fmt.Errorf("failed to follow: %w", err)
		}
		result.Following = true

		message := fmt.Sprintf("%s started following you.", follower.Username)
		return s.notifications.notifyTx(tx, followeeID, message)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ToggleTopicFollow follows an active topic, or unfollows when the
// edge already exists.
func (s *SocialService) ToggleTopicFollow(userID, topicID uuid.UUID) (*FollowResult, error) {
	if _, err := activeTopic(s.db, topicID); err != nil {
		return nil, err
	}

	var result FollowResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var edge models.TopicFollow
		err := tx.Where("user_id = ? AND topic_id = ?", userID, topicID).First(&edge).Error
		if err == nil {
			if err := tx.Delete(&edge).Error; err != nil {
				return fmt.Errorf("failed to unfollow topic: %w", err)
			}
			result.Following = false
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to load topic follow edge: %w", err)
		}

		edge = models.TopicFollow{
			ID:      uuid.New(),
			UserID:  userID,
			TopicID: topicID,
		}
		if err := tx.Create(&edge).Error; err != nil {
			return fmt.Errorf("failed to follow topic: %w", err)
		}
		result.Following = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Followers lists the active users following the given user.
func (s *SocialService) Followers(userID uuid.UUID, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := s.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ? AND users.is_active = ?", userID, true).
		Order("follows.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	return users, nil
}

// Following lists the active users the given user follows.
func (s *SocialService) Following(userID uuid.UUID, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := s.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ? AND users.is_active = ?", userID, true).
		Order("follows.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	return users, nil
}
