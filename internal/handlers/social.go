package handlers

import (
	"net/http"

	"inkstream/internal/auth"
	"inkstream/internal/models"
	"inkstream/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SocialHandler handles follow edges and the topic catalog.
type SocialHandler struct {
	social *services.SocialService
	topics *services.TopicsService
}

// NewSocialHandler creates a new social handler
func NewSocialHandler(db *gorm.DB, notifications *services.NotificationsService) *SocialHandler {
	return &SocialHandler{
		social: services.NewSocialService(db, notifications),
		topics: services.NewTopicsService(db),
	}
}

// FollowUser handles PATCH /api/users/:id/follow. Toggle semantics.
func (h *SocialHandler) FollowUser(c *gin.Context) {
	principal := auth.RequirePrincipal(c)
	if principal == nil {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.social.ToggleFollow(principal.UserID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// FollowTopic handles PATCH /api/topics/:id/follow. Toggle semantics.
func (h *SocialHandler) FollowTopic(c *gin.Context) {
	principal := auth.RequirePrincipal(c)
	if principal == nil {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.social.ToggleTopicFollow(principal.UserID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Followers handles GET /api/users/:id/followers.
func (h *SocialHandler) Followers(c *gin.Context) {
	h.listUsers(c, h.social.Followers)
}

// Following handles GET /api/users/:id/following.
func (h *SocialHandler) Following(c *gin.Context) {
	h.listUsers(c, h.social.Following)
}

func (h *SocialHandler) listUsers(c *gin.Context, list func(uuid.UUID, int, int) ([]models.User, error)) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	limit, _, offset := parsePagination(c)

	users, err := list(id, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// ListTopics handles GET /api/topics with followed/is_recommend
// filters.
func (h *SocialHandler) ListTopics(c *gin.Context) {
	limit, _, offset := parsePagination(c)

	query := services.TopicQuery{
		Followed: c.Query("followed") == "true",
		Popular:  c.Query("is_recommend") == "true",
		Limit:    limit,
		Offset:   offset,
	}

	var userID *uuid.UUID
	if principal := auth.PrincipalFrom(c); principal != nil {
		userID = &principal.UserID
	}

	topics, err := h.topics.ListTopics(userID, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}
