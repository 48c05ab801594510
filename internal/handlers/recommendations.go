package handlers

import (
	"net/http"

	"inkstream/internal/auth"
	"inkstream/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RecommendationsHandler handles explicit preference feedback.
type RecommendationsHandler struct {
	recommendations *services.RecommendationsService
}

// NewRecommendationsHandler creates a new recommendations handler
func NewRecommendationsHandler(recommendations *services.RecommendationsService) *RecommendationsHandler {
	return &RecommendationsHandler{recommendations: recommendations}
}

// recommendRequest accepts topic-level feedback, article-level
// feedback, or a mix.
type recommendRequest struct {
	MoreTopicID   *uuid.UUID `json:"more_topic_id"`
	LessTopicID   *uuid.UUID `json:"less_topic_id"`
	MoreArticleID *uuid.UUID `json:"more_article_id"`
	LessArticleID *uuid.UUID `json:"less_article_id"`
}

// Recommend handles POST /api/users/recommend.
func (h *RecommendationsHandler) Recommend(c *gin.Context) {
	principal := auth.RequirePrincipal(c)
	if principal == nil {
		return
	}

	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.MoreTopicID != nil || req.LessTopicID != nil {
		if err := h.recommendations.ApplyPreference(principal.UserID, req.MoreTopicID, req.LessTopicID); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.MoreArticleID != nil || req.LessArticleID != nil {
		if err := h.recommendations.ApplyArticlePreference(principal.UserID, req.MoreArticleID, req.LessArticleID); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.MoreTopicID == nil && req.LessTopicID == nil && req.MoreArticleID == nil && req.LessArticleID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No preference given"})
		return
	}

	c.Status(http.StatusNoContent)
}
