package services

import (
	"errors"
	"fmt"

	"inkstream/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EngagementConfig holds tunables for the engagement ledger.
type EngagementConfig struct {
	ClapCap int // maximum claps per user per article
}

// DefaultEngagementConfig returns the production engagement settings.
func DefaultEngagementConfig() EngagementConfig {
	return EngagementConfig{
		ClapCap: 50,
	}
}

// EngagementService handles claps, favorites and pins on published
// articles.
type EngagementService struct {
	db              *gorm.DB
	config          EngagementConfig
	recommendations *RecommendationsService
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(db *gorm.DB, config EngagementConfig, recommendations *RecommendationsService) *EngagementService {
	return &EngagementService{
		db:              db,
		config:          config,
		recommendations: recommendations,
	}
}

// AddClap increments the caller's clap counter on a published article.
// The counter saturates at the configured cap; clapping at the cap
// succeeds without changing the count. The increment is a conditional
// UPDATE so concurrent claps never push the counter past the cap.
func (s *EngagementService) AddClap(userID, articleID uuid.UUID) (*models.Clap, error) {
	if err := s.requirePublished(articleID); err != nil {
		return nil, err
	}

	var clap models.Clap
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND article_id = ?", userID, articleID).First(&clap).Error
		if err == gorm.ErrRecordNotFound {
			clap = models.Clap{
				ID:        uuid.New(),
				UserID:    userID,
				ArticleID: articleID,
			}
			if err := tx.Create(&clap).Error; err != nil {
				return fmt.Errorf("failed to create clap: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to load clap: %w", err)
		}

		if err := tx.Model(&models.Clap{}).
			Where("id = ? AND count < ?", clap.ID, s.config.ClapCap).
			UpdateColumn("count", gorm.Expr("count + 1")).Error; err != nil {
			return fmt.Errorf("failed to increment clap: %w", err)
		}

		return tx.Where("id = ?", clap.ID).First(&clap).Error
	})
	if err != nil {
		return nil, err
	}
	return &clap, nil
}

// RemoveClap deletes the caller's clap row, resetting their claps on
// the article to zero.
func (s *EngagementService) RemoveClap(userID, articleID uuid.UUID) error {
	if err := s.requirePublished(articleID); err != nil {
		return err
	}

	result := s.db.Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&models.Clap{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove clap: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddFavorite marks a published article as the caller's favorite.
// Duplicate creates are rejected. A successful create feeds the
// article's topics into the caller's preference model.
func (s *EngagementService) AddFavorite(userID, articleID uuid.UUID) (*models.Favorite, error) {
	if err := s.requirePublished(articleID); err != nil {
		return nil, err
	}

	favorite := models.Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		ArticleID: articleID,
	}
	result := s.db.Where("user_id = ? AND article_id = ?", userID, articleID).
		FirstOrCreate(&favorite)
	if result.Error != nil {
		// A concurrent create can slip in between the read and the
		// insert; the unique index reports it as a duplicate
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrAlreadyExists
	}

	// Favoriting is an implicit positive signal
	if err := s.recommendations.ApplyImplicitPreference(userID, articleID); err != nil {
		return nil, err
	}
	return &favorite, nil
}

// RemoveFavorite removes the caller's favorite.
func (s *EngagementService) RemoveFavorite(userID, articleID uuid.UUID) error {
	return s.removeEdge(userID, articleID, &models.Favorite{})
}

// AddPin pins a published article for the caller. Duplicate pins are
// rejected.
func (s *EngagementService) AddPin(userID, articleID uuid.UUID) (*models.Pin, error) {
	if err := s.requirePublished(articleID); err != nil {
		return nil, err
	}

	pin := models.Pin{
		ID:        uuid.New(),
		UserID:    userID,
		ArticleID: articleID,
	}
	result := s.db.Where("user_id = ? AND article_id = ?", userID, articleID).
		FirstOrCreate(&pin)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create pin: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrAlreadyExists
	}
	return &pin, nil
}

// RemovePin removes the caller's pin.
func (s *EngagementService) RemovePin(userID, articleID uuid.UUID) error {
	return s.removeEdge(userID, articleID, &models.Pin{})
}

// removeEdge deletes a (user, article) existence row, failing with
// ErrNotFound when the row is absent.
func (s *EngagementService) removeEdge(userID, articleID uuid.UUID, model interface{}) error {
	if err := s.requirePublished(articleID); err != nil {
		return err
	}

	result := s.db.Where("user_id = ? AND article_id = ?", userID, articleID).Delete(model)
	if result.Error != nil {
		return fmt.Errorf("failed to delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// requirePublished resolves the article and hides anything that is not
// published. Engagement actions only target published articles.
func (s *EngagementService) requirePublished(articleID uuid.UUID) error {
	var article models.Article
	err := s.db.Select("id").
		Where("id = ? AND status = ?", articleID, models.StatusPublish).
		First(&article).Error
	return translateNotFound(err)
}
