package services

import (
	"errors"
	"fmt"

	"inkstream/internal/auth"
	"inkstream/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArticlesService handles the article store: creation, updates, status
// lifecycle and retrieval side effects.
type ArticlesService struct {
	db              *gorm.DB
	recommendations *RecommendationsService
}

// NewArticlesService creates a new ArticlesService
func NewArticlesService(db *gorm.DB, recommendations *RecommendationsService) *ArticlesService {
	return &ArticlesService{
		db:              db,
		recommendations: recommendations,
	}
}

// ArticleInput holds the author-writable fields of an article.
// TopicIDs, when non-nil, replaces the full topic set.
type ArticleInput struct {
	Title     string      `json:"title"`
	Summary   string      `json:"summary"`
	Content   string      `json:"content"`
	Thumbnail string      `json:"thumbnail"`
	TopicIDs  []uuid.UUID `json:"topic_ids"`
}

// CreateArticle creates an article in pending status. Every referenced
// topic must exist and be active.
func (s *ArticlesService) CreateArticle(authorID uuid.UUID, input ArticleInput) (*models.Article, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(input.TopicIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one topic is required", ErrValidation)
	}

	var article models.Article
	err := s.db.Transaction(func(tx *gorm.DB) error {
		topics, err := resolveActiveTopics(tx, input.TopicIDs)
		if err != nil {
			return err
		}

		article = models.Article{
			ID:        uuid.New(),
			AuthorID:  authorID,
			Title:     input.Title,
			Summary:   input.Summary,
			Content:   input.Content,
			Thumbnail: input.Thumbnail,
			Status:    models.StatusPending,
		}
		if err := tx.Create(&article).Error; err != nil {
			return fmt.Errorf("failed to create article: %w", err)
		}
		if err := tx.Model(&article).Association("Topics").Replace(topics); err != nil {
			return fmt.Errorf("failed to attach topics: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadArticle(article.ID)
}

// UpdateArticle applies author-only field updates. A non-nil TopicIDs
// replaces the article's entire topic set; it is not incremental.
func (s *ArticlesService) UpdateArticle(id uuid.UUID, principal *auth.Principal, input ArticleInput) (*models.Article, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.Where("id = ?", id).First(&article).Error; err != nil {
			return translateNotFound(err)
		}
		if article.AuthorID != principal.UserID && !principal.IsSuperuser {
			return ErrPermissionDenied
		}

		updates := map[string]interface{}{}
		if input.Title != "" {
			updates["title"] = input.Title
		}
		if input.Summary != "" {
			updates["summary"] = input.Summary
		}
		if input.Content != "" {
			updates["content"] = input.Content
		}
		if input.Thumbnail != "" {
			updates["thumbnail"] = input.Thumbnail
		}
		if len(updates) > 0 {
			if err := tx.Model(&article).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update article: %w", err)
			}
		}

		if input.TopicIDs != nil {
			topics, err := resolveActiveTopics(tx, input.TopicIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&article).Association("Topics").Replace(topics); err != nil {
				return fmt.Errorf("failed to replace topics: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadArticle(id)
}

// allowedTransitions maps a status target to whether an author (as
// opposed to a superuser) may request it. Publishing stays with
// moderation.
var allowedTransitions = map[string]bool{
	models.StatusArchive: true,
	models.StatusTrash:   true,
	models.StatusPublish: false,
	models.StatusPrivate: true,
}

// TransitionStatus moves an article to a target status. Archive and
// trash are author-or-superuser; publish is superuser only.
func (s *ArticlesService) TransitionStatus(id uuid.UUID, principal *auth.Principal, target string) error {
	authorAllowed, known := allowedTransitions[target]
	if !known {
		return fmt.Errorf("%w: invalid status target %q", ErrValidation, target)
	}

	var article models.Article
	if err := s.db.Where("id = ?", id).First(&article).Error; err != nil {
		return translateNotFound(err)
	}

	isAuthor := article.AuthorID == principal.UserID
	switch {
	case principal.IsSuperuser:
	case isAuthor && authorAllowed:
	default:
		return ErrPermissionDenied
	}

	if err := s.db.Model(&article).UpdateColumn("status", target).Error; err != nil {
		return fmt.Errorf("failed to transition status: %w", err)
	}
	return nil
}

// GetArticle retrieves an article's detail view. Non-owners only see
// published articles. Retrieval by an authenticated reader increments
// the view counter, upserts a reading-history row and, on first read,
// feeds the article's topics into the reader's preference model.
// Counters are at-least-once under concurrent requests.
func (s *ArticlesService) GetArticle(id uuid.UUID, principal *auth.Principal) (*models.Article, error) {
	article, err := s.loadArticle(id)
	if err != nil {
		return nil, err
	}

	if !article.IsPublished() {
		if principal == nil || (article.AuthorID != principal.UserID && !principal.IsSuperuser) {
			return nil, ErrNotFound
		}
		return article, nil
	}

	if err := s.db.Model(&models.Article{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error; err != nil {
		return nil, fmt.Errorf("failed to increment views count: %w", err)
	}
	article.ViewsCount++

	if principal != nil {
		history := models.ReadingHistory{
			ID:        uuid.New(),
			UserID:    principal.UserID,
			ArticleID: id,
		}
		result := s.db.Where("user_id = ? AND article_id = ?", principal.UserID, id).
			FirstOrCreate(&history)
		switch {
		case errors.Is(result.Error, gorm.ErrDuplicatedKey):
			// A concurrent request recorded the first read already
		case result.Error != nil:
			return nil, fmt.Errorf("failed to record reading history: %w", result.Error)
		case result.RowsAffected > 0:
			// First read of this article by this user
			if err := s.recommendations.ApplyImplicitPreference(principal.UserID, id); err != nil {
				return nil, err
			}
		}
	}

	return article, nil
}

// IncrementReads bumps the reads counter of a published article.
func (s *ArticlesService) IncrementReads(id uuid.UUID) error {
	result := s.db.Model(&models.Article{}).
		Where("id = ? AND status = ?", id, models.StatusPublish).
		UpdateColumn("reads_count", gorm.Expr("reads_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to increment reads count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ArticleAggregates holds the display counters attached to an article.
type ArticleAggregates struct {
	CommentsCount int64 `json:"comments_count"`
	ClapsCount    int64 `json:"claps_count"`
}

// Aggregates returns comment and clap totals for one article.
func (s *ArticlesService) Aggregates(articleID uuid.UUID) (*ArticleAggregates, error) {
	var agg ArticleAggregates
	if err := s.db.Model(&models.Comment{}).
		Where("article_id = ?", articleID).
		Count(&agg.CommentsCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	var total *int64
	if err := s.db.Model(&models.Clap{}).
		Select("SUM(count)").
		Where("article_id = ?", articleID).
		Scan(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to sum claps: %w", err)
	}
	if total != nil {
		agg.ClapsCount = *total
	}
	return &agg, nil
}

// ListUserFavorites returns the published articles a user favorited,
// newest favorite first.
func (s *ArticlesService) ListUserFavorites(userID uuid.UUID, limit, offset int) ([]models.Article, error) {
	return s.listJoined(userID, "favorites", limit, offset)
}

// ListReadingHistory returns the published articles a user has read,
// most recent first.
func (s *ArticlesService) ListReadingHistory(userID uuid.UUID, limit, offset int) ([]models.Article, error) {
	return s.listJoined(userID, "reading_history", limit, offset)
}

// ListPinnedArticles returns the articles a user pinned.
func (s *ArticlesService) ListPinnedArticles(userID uuid.UUID, limit, offset int) ([]models.Article, error) {
	return s.listJoined(userID, "pins", limit, offset)
}

// listJoined lists published articles through a (user, article) edge
// table, ordered by edge recency.
func (s *ArticlesService) listJoined(userID uuid.UUID, edgeTable string, limit, offset int) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.Model(&models.Article{}).
		Preload("Author").
		Preload("Topics").
		Joins(fmt.Sprintf("JOIN %s ON %s.article_id = articles.id", edgeTable, edgeTable)).
		Where(fmt.Sprintf("%s.user_id = ?", edgeTable), userID).
		Where("articles.status = ?", models.StatusPublish).
		Order(fmt.Sprintf("%s.created_at DESC", edgeTable)).
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list articles via %s: %w", edgeTable, err)
	}
	return articles, nil
}

// PopularAuthor pairs a user with the total reads over their published
// articles.
type PopularAuthor struct {
	models.User
	TotalReads int64 `json:"total_reads"`
}

// PopularAuthors returns the top authors by accumulated reads of their
// published articles.
func (s *ArticlesService) PopularAuthors(limit int) ([]PopularAuthor, error) {
	var authors []PopularAuthor
	err := s.db.Model(&models.User{}).
		Select("users.*, COALESCE(SUM(articles.reads_count), 0) AS total_reads").
		Joins("JOIN articles ON articles.author_id = users.id AND articles.status = ?", models.StatusPublish).
		Where("users.is_active = ?", true).
		Group("users.id").
		Order("total_reads DESC").
		Limit(limit).
		Find(&authors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list popular authors: %w", err)
	}
	return authors, nil
}

// loadArticle fetches an article with its author and topics.
func (s *ArticlesService) loadArticle(id uuid.UUID) (*models.Article, error) {
	var article models.Article
	err := s.db.Preload("Author").Preload("Topics").
		Where("id = ?", id).
		First(&article).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &article, nil
}

// resolveActiveTopics loads the given topics and rejects the request
// when any id is unknown or inactive.
func resolveActiveTopics(tx *gorm.DB, ids []uuid.UUID) ([]*models.Topic, error) {
	var topics []*models.Topic
	if err := tx.Where("id IN ? AND is_active = ?", ids, true).Find(&topics).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve topics: %w", err)
	}
	if len(topics) != len(uniqueIDs(ids)) {
		return nil, fmt.Errorf("%w: invalid topic reference", ErrValidation)
	}
	return topics, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// translateNotFound maps gorm's record-not-found to the service error
// taxonomy.
func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
