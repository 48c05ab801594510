// Package feeds computes the filtered, ordered article list shown to a
// reader: published articles shaped by the reader's topic preferences
// and the request's filters.
package feeds

import (
	"fmt"
	"strings"
	"time"

	"inkstream/internal/models"
	"inkstream/internal/render"
	"inkstream/internal/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedService composes article feeds.
type FeedService struct {
	db              *gorm.DB
	recommendations *services.RecommendationsService
}

// NewFeedService creates a new feed service
func NewFeedService(db *gorm.DB, recommendations *services.RecommendationsService) *FeedService {
	return &FeedService{
		db:              db,
		recommendations: recommendations,
	}
}

// FeedQuery holds the composable feed filters.
type FeedQuery struct {
	// Top orders by view count and caps the candidate set to N.
	Top int
	// TopicID restricts to articles tagged with the topic.
	TopicID *uuid.UUID
	// Recommend restricts to articles tagged with at least one of the
	// reader's "more" topics. With an empty "more" set the feed falls
	// back to the default candidate set instead of narrowing to zero.
	Recommend bool
	// Search is a case-insensitive substring match over title, summary,
	// content, topic name and topic description. OR across fields.
	Search string
	Limit  int
	Page   int
}

// FeedItem is one article entry in a feed response.
type FeedItem struct {
	ID            uuid.UUID      `json:"id"`
	Author        Author         `json:"author"`
	Title         string         `json:"title"`
	Summary       string         `json:"summary"`
	Excerpt       string         `json:"excerpt"`
	Thumbnail     string         `json:"thumbnail"`
	Status        string         `json:"status"`
	ViewsCount    int            `json:"views_count"`
	ReadsCount    int            `json:"reads_count"`
	Topics        []models.Topic `json:"topics"`
	CommentsCount int64          `json:"comments_count"`
	ClapsCount    int64          `json:"claps_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Author is the simplified user representation carried by feed items.
type Author struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Avatar      string    `json:"avatar"`
}

// FeedMeta contains pagination metadata about the feed.
type FeedMeta struct {
	TotalItems int64 `json:"total_items"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
}

// FeedResponse is the structure returned by feed endpoints.
type FeedResponse struct {
	Items []FeedItem `json:"items"`
	Meta  FeedMeta   `json:"meta"`
}

// GetFeed computes the feed for a reader. userID is nil for anonymous
// requests, which see the unpersonalized published set.
func (fs *FeedService) GetFeed(userID *uuid.UUID, q FeedQuery) (*FeedResponse, error) {
	query := fs.db.Model(&models.Article{}).
		Where("articles.status = ?", models.StatusPublish)

	if userID != nil {
		lessIDs, err := fs.recommendations.LessTopicIDs(*userID)
		if err != nil {
			return nil, err
		}
		if len(lessIDs) > 0 {
			// Exclude anything tagged with a less-preferred topic
			query = query.Where("articles.id NOT IN (?)", fs.topicMembership(lessIDs))
		}

		if q.Recommend {
			moreIDs, err := fs.recommendations.MoreTopicIDs(*userID)
			if err != nil {
				return nil, err
			}
			if len(moreIDs) > 0 {
				query = query.Where("articles.id IN (?)", fs.topicMembership(moreIDs))
			}
		}
	}

	if q.TopicID != nil {
		query = query.Where("articles.id IN (?)", fs.topicMembership([]uuid.UUID{*q.TopicID}))
	}

	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		topicMatches := fs.db.Table("article_topics").
			Select("article_topics.article_id").
			Joins("JOIN topics ON topics.id = article_topics.topic_id").
			Where("LOWER(topics.name) LIKE ? OR LOWER(topics.description) LIKE ?", pattern, pattern)
		query = query.Where(
			"LOWER(articles.title) LIKE ? OR LOWER(articles.summary) LIKE ? OR LOWER(articles.content) LIKE ? OR articles.id IN (?)",
			pattern, pattern, pattern, topicMatches,
		)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	var (
		articles []models.Article
		total    int64
	)
	if q.Top > 0 {
		// Bounded candidate set: load the top N, then slice the page
		err := query.Order("articles.views_count DESC").
			Limit(q.Top).
			Preload("Author").Preload("Topics").
			Find(&articles).Error
		if err != nil {
			return nil, fmt.Errorf("failed to query feed: %w", err)
		}
		total = int64(len(articles))
		articles = paginate(articles, limit, page)
	} else {
		if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
			return nil, fmt.Errorf("failed to count feed: %w", err)
		}
		err := query.Order("articles.created_at DESC").
			Limit(limit).
			Offset((page - 1) * limit).
			Preload("Author").Preload("Topics").
			Find(&articles).Error
		if err != nil {
			return nil, fmt.Errorf("failed to query feed: %w", err)
		}
	}

	items, err := fs.buildItems(articles)
	if err != nil {
		return nil, err
	}

	return &FeedResponse{
		Items: items,
		Meta: FeedMeta{
			TotalItems: total,
			Page:       page,
			PerPage:    limit,
		},
	}, nil
}

// topicMembership returns a subquery of article ids tagged with any of
// the given topics. Membership via subquery keeps the outer result set
// free of join duplicates.
func (fs *FeedService) topicMembership(topicIDs []uuid.UUID) *gorm.DB {
	return fs.db.Table("article_topics").
		Select("article_topics.article_id").
		Where("article_topics.topic_id IN ?", topicIDs)
}

// buildItems attaches aggregate counters to the page of articles with
// two grouped queries instead of per-article lookups.
func (fs *FeedService) buildItems(articles []models.Article) ([]FeedItem, error) {
	items := make([]FeedItem, 0, len(articles))
	if len(articles) == 0 {
		return items, nil
	}

	ids := make([]uuid.UUID, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}

	type countRow struct {
		ArticleID uuid.UUID
		Total     int64
	}

	var commentCounts []countRow
	err := fs.db.Model(&models.Comment{}).
		Select("article_id, COUNT(*) AS total").
		Where("article_id IN ?", ids).
		Group("article_id").
		Find(&commentCounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	var clapSums []countRow
	err = fs.db.Model(&models.Clap{}).
		Select("article_id, SUM(count) AS total").
		Where("article_id IN ?", ids).
		Group("article_id").
		Find(&clapSums).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum claps: %w", err)
	}

	comments := make(map[uuid.UUID]int64, len(commentCounts))
	for _, row := range commentCounts {
		comments[row.ArticleID] = row.Total
	}
	claps := make(map[uuid.UUID]int64, len(clapSums))
	for _, row := range clapSums {
		claps[row.ArticleID] = row.Total
	}

	for _, article := range articles {
		topics := make([]models.Topic, 0, len(article.Topics))
		for _, t := range article.Topics {
			topics = append(topics, *t)
		}

		excerpt := article.Summary
		if excerpt == "" {
			excerpt = render.Excerpt(article.Content, 280)
		}

		items = append(items, FeedItem{
			ID: article.ID,
			Author: Author{
				ID:          article.Author.ID,
				Username:    article.Author.Username,
				DisplayName: article.Author.DisplayName,
				Avatar:      article.Author.Avatar,
			},
			Title:         article.Title,
			Summary:       article.Summary,
			Excerpt:       excerpt,
			Thumbnail:     article.Thumbnail,
			Status:        article.Status,
			ViewsCount:    article.ViewsCount,
			ReadsCount:    article.ReadsCount,
			Topics:        topics,
			CommentsCount: comments[article.ID],
			ClapsCount:    claps[article.ID],
			CreatedAt:     article.CreatedAt,
			UpdatedAt:     article.UpdatedAt,
		})
	}
	return items, nil
}

// paginate slices the candidate set. The candidate set is already
// bounded (top-N) or ordered; page numbering starts at 1.
func paginate(articles []models.Article, limit, page int) []models.Article {
	if limit <= 0 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(articles) {
		return nil
	}
	end := start + limit
	if end > len(articles) {
		end = len(articles)
	}
	return articles[start:end]
}
