package handlers

import (
	"net/http"

	"inkstream/internal/auth"
	"inkstream/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EngagementHandler handles claps, favorites, pins and reports.
type EngagementHandler struct {
	engagement *services.EngagementService
	moderation *services.ModerationService
}

// NewEngagementHandler creates a new engagement handler
func NewEngagementHandler(db *gorm.DB, engagementConfig services.EngagementConfig, moderationConfig services.ModerationConfig, recommendations *services.RecommendationsService) *EngagementHandler {
	return &EngagementHandler{
		engagement: services.NewEngagementService(db, engagementConfig, recommendations),
		moderation: services.NewModerationService(db, moderationConfig),
	}
}

// Clap handles POST /api/articles/:id/clap.
func (h *EngagementHandler) Clap(c *gin.Context) {
	principal := auth.RequirePrincipal(c)
	if principal == nil {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	clap, err := h.engagement.AddClap(principal.UserID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, clap)
}

// Unclap handles DELETE /api/articles/:id/clap.
func (h *EngagementHandler) Unclap(c *gin.Context) {
	principal := auth.RequirePrincipal(c)
	if principal == nil {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.engagement.RemoveClap(principal.UserID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Favorite handles POST /api/articles/:id/favorite.
func (h *EngagementHandler) Favorite(c *gin.Context) {
	principal := auth.RequirePrincipal(c)
	if principal == nil {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	favorite, err := h.engagement.AddFavorite(principal.UserID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, favorite)
}

// Unfavorite handles DELETE /api/articles/:id/favorite.
func (h *EngagementHandler) Unfavorite(c *gin.Context) {
	principal := auth.RequirePrincipal(c)
	if principal == nil {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.engagement.RemoveFavorite(principal.UserID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PinArticle handles POST /api/articles/:id/pin.
func (h *EngagementHandler) PinArticle(c *gin.Context) {
	principal := auth.RequirePrincipal(c)
	if principal == nil {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	pin, err := h.engagement.AddPin(principal.UserID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pin)
}

// UnpinArticle handles DELETE /api/articles/:id/pin.
func (h *EngagementHandler) UnpinArticle(c *gin.Context) {
	principal := auth.RequirePrincipal(c)
	if principal == nil {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.engagement.RemovePin(principal.UserID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Report handles POST /api/articles/:id/report. The response
// distinguishes a submitted report from one that removed the article.
func (h *EngagementHandler) Report(c *gin.Context) {
	principal := auth.RequirePrincipal(c)
	if principal == nil {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	outcome, err := h.moderation.ReportArticle(principal.UserID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	if outcome.Removed {
		c.JSON(http.StatusOK, gin.H{"detail": "Article removed after multiple reports"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"detail": "Report submitted"})
}
