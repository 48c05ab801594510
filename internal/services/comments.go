package services

import (
	"fmt"

	"inkstream/internal/auth"
	"inkstream/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentsService handles threaded comments on published articles.
// Threads are exactly two tiers: top-level comments and their replies.
type CommentsService struct {
	db *gorm.DB
}

// NewCommentsService creates a new CommentsService
func NewCommentsService(db *gorm.DB) *CommentsService {
	return &CommentsService{db: db}
}

// CreateComment adds a comment to a published article. A reply's
// parent must be a top-level comment on the same article.
func (s *CommentsService) CreateComment(userID, articleID uuid.UUID, parentID *uuid.UUID, content string) (*models.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	var article models.Article
	err := s.db.Select("id").
		Where("id = ? AND status = ?", articleID, models.StatusPublish).
		First(&article).Error
	if err != nil {
		return nil, translateNotFound(err)
	}

	if parentID != nil {
		var parent models.Comment
		if err := s.db.Where("id = ?", *parentID).First(&parent).Error; err != nil {
			return nil, translateNotFound(err)
		}
		if parent.ParentID != nil {
			return nil, fmt.Errorf("%w: replies cannot nest deeper than one level", ErrValidation)
		}
		if parent.ArticleID != articleID {
			return nil, fmt.Errorf("%w: parent comment belongs to another article", ErrValidation)
		}
	}

	comment := models.Comment{
		ID:        uuid.New(),
		ArticleID: articleID,
		UserID:    userID,
		ParentID:  parentID,
		Content:   content,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	if err := s.db.Preload("User").Where("id = ?", comment.ID).First(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	return &comment, nil
}

// ListArticleComments returns the article's top-level comments, each
// carrying its replies, oldest first. Comments on unpublished articles
// are visible only to the article's author and superusers, matching
// the article detail view.
func (s *CommentsService) ListArticleComments(articleID uuid.UUID, principal *auth.Principal) ([]models.Comment, error) {
	var article models.Article
	if err := s.db.Select("id, author_id, status").
		Where("id = ?", articleID).
		First(&article).Error; err != nil {
		return nil, translateNotFound(err)
	}
	if !article.IsPublished() {
		if principal == nil || (article.AuthorID != principal.UserID && !principal.IsSuperuser) {
			return nil, ErrNotFound
		}
	}

	var comments []models.Comment
	err := s.db.Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Replies.User").
		Where("article_id = ? AND parent_id IS NULL", articleID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// UpdateComment edits a comment's content. Owner or superuser only.
func (s *CommentsService) UpdateComment(id uuid.UUID, principal *auth.Principal, content string) (*models.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	var comment models.Comment
	if err := s.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, translateNotFound(err)
	}
	if comment.UserID != principal.UserID && !principal.IsSuperuser {
		return nil, ErrPermissionDenied
	}

	if err := s.db.Model(&comment).Update("content", content).Error; err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return &comment, nil
}

// DeleteComment removes a comment and, for top-level comments, its
// replies. Owner or superuser only.
func (s *CommentsService) DeleteComment(id uuid.UUID, principal *auth.Principal) error {
	var comment models.Comment
	if err := s.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return translateNotFound(err)
	}
	if comment.UserID != principal.UserID && !principal.IsSuperuser {
		return ErrPermissionDenied
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if comment.ParentID == nil {
			if err := tx.Where("parent_id = ?", comment.ID).Delete(&models.Comment{}).Error; err != nil {
				return fmt.Errorf("failed to delete replies: %w", err)
			}
		}
		if err := tx.Delete(&comment).Error; err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		return nil
	})
}
