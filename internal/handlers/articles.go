package handlers

import (
	"net/http"
	"strconv"

	"inkstream/internal/auth"
	"inkstream/internal/feeds"
	"inkstream/internal/models"
	"inkstream/internal/render"
	"inkstream/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArticlesHandler handles HTTP requests for articles and the feed.
type ArticlesHandler struct {
	articles *services.ArticlesService
	feed     *feeds.FeedService
}

// NewArticlesHandler creates a new articles handler
func NewArticlesHandler(db *gorm.DB, recommendations *services.RecommendationsService) *ArticlesHandler {
	return &ArticlesHandler{
		articles: services.NewArticlesService(db, recommendations),
		feed:     feeds.NewFeedService(db, recommendations),
	}
}

// ListArticles handles GET /api/articles: the feed, with composable
// top/topic/is_recommend/search filters.
func (h *ArticlesHandler) ListArticles(c *gin.Context) {
	limit, page, _ := parsePagination(c)

	query := feeds.FeedQuery{
		Search: c.Query("search"),
		Limit:  limit,
		Page:   page,
	}
	if top, err := strconv.Atoi(c.Query("top")); err == nil && top > 0 {
		query.Top = top
	}
	if topicID, err := uuid.Parse(c.Query("topic")); err == nil {
		query.TopicID = &topicID
	}
	query.Recommend = c.Query("is_recommend") == "true"

	var userID *uuid.UUID
	if principal := auth.PrincipalFrom(c); principal != nil {
		userID = &principal.UserID
	}

	response, err := h.feed.GetFeed(userID, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// CreateArticle handles POST /api/articles.
func (h *ArticlesHandler) CreateArticle(c *gin.Context) {
	principal := auth.RequirePrincipal(c)
	if principal == nil {
		return
	}

	var input services.ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	article, err := h.articles.CreateArticle(principal.UserID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// GetArticle handles GET /api/articles/:id, the detail view with its
// view-count and reading-history side effects.
func (h *ArticlesHandler) GetArticle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	article, err := h.articles.GetArticle(id, auth.PrincipalFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	aggregates, err := h.articles.Aggregates(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"article":        article,
		"content_html":   render.HTML(article.Content),
		"comments_count": aggregates.CommentsCount,
		"claps_count":    aggregates.ClapsCount,
	})
}

// UpdateArticle handles PATCH /api/articles/:id.
func (h *ArticlesHandler) UpdateArticle(c *gin.Context) {
	principal := auth.RequirePrincipal(c)
	if principal == nil {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input services.ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	article, err := h.articles.UpdateArticle(id, principal, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// DeleteArticle handles DELETE /api/articles/:id. Deletion is a soft
// transition to trash, never a hard delete.
func (h *ArticlesHandler) DeleteArticle(c *gin.Context) {
	h.transition(c, models.StatusTrash, http.StatusNoContent)
}

// ArchiveArticle handles POST /api/articles/:id/archive.
func (h *ArticlesHandler) ArchiveArticle(c *gin.Context) {
	h.transition(c, models.StatusArchive, http.StatusOK)
}

// PublishArticle handles POST /api/articles/:id/publish (moderation).
func (h *ArticlesHandler) PublishArticle(c *gin.Context) {
	h.transition(c, models.StatusPublish, http.StatusOK)
}

func (h *ArticlesHandler) transition(c *gin.Context, target string, successStatus int) {
	principal := auth.RequirePrincipal(c)
	if principal == nil {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.articles.TransitionStatus(id, principal, target); err != nil {
		respondError(c, err)
		return
	}
	if successStatus == http.StatusNoContent {
		c.Status(successStatus)
		return
	}
	c.JSON(successStatus, gin.H{"detail": "Article moved to " + target})
}

// ReadArticle handles POST /api/articles/:id/read.
func (h *ArticlesHandler) ReadArticle(c *gin.Context) {
	if auth.RequirePrincipal(c) == nil {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.articles.IncrementReads(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Read recorded"})
}

// ListFavorites handles GET /api/users/favorites.
func (h *ArticlesHandler) ListFavorites(c *gin.Context) {
	h.listForUser(c, h.articles.ListUserFavorites)
}

// ListReadingHistory handles GET /api/users/reading-history.
func (h *ArticlesHandler) ListReadingHistory(c *gin.Context) {
	h.listForUser(c, h.articles.ListReadingHistory)
}

// ListPinned handles GET /api/users/pinned.
func (h *ArticlesHandler) ListPinned(c *gin.Context) {
	h.listForUser(c, h.articles.ListPinnedArticles)
}

func (h *ArticlesHandler) listForUser(c *gin.Context, list func(uuid.UUID, int, int) ([]models.Article, error)) {
	principal := auth.RequirePrincipal(c)
	if principal == nil {
		return
	}
	limit, _, offset := parsePagination(c)

	articles, err := list(principal.UserID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// PopularAuthors handles GET /api/authors/popular.
func (h *ArticlesHandler) PopularAuthors(c *gin.Context) {
	authors, err := h.articles.PopularAuthors(5)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"authors": authors})
}

// HealthCheck handles GET /health.
func (h *ArticlesHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "inkstream",
	})
}
