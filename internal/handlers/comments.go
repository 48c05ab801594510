package handlers

import (
	"net/http"

	"inkstream/internal/auth"
	"inkstream/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentsHandler handles article comments.
type CommentsHandler struct {
	comments *services.CommentsService
}

// NewCommentsHandler creates a new comments handler
func NewCommentsHandler(db *gorm.DB) *CommentsHandler {
	return &CommentsHandler{
		comments: services.NewCommentsService(db),
	}
}

type commentRequest struct {
	ParentID *uuid.UUID `json:"parent_id"`
	Content  string     `json:"content"`
}

// CreateComment handles POST /api/articles/:id/comments.
func (h *CommentsHandler) CreateComment(c *gin.Context) {
	principal := auth.RequirePrincipal(c)
	if principal == nil {
		return
	}
	articleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	comment, err := h.comments.CreateComment(principal.UserID, articleID, req.ParentID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ListComments handles GET /api/articles/:id/comments.
func (h *CommentsHandler) ListComments(c *gin.Context) {
	articleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	comments, err := h.comments.ListArticleComments(articleID, auth.PrincipalFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// UpdateComment handles PATCH /api/comments/:id.
func (h *CommentsHandler) UpdateComment(c *gin.Context) {
	principal := auth.RequirePrincipal(c)
	if principal == nil {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	comment, err := h.comments.UpdateComment(id, principal, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment handles DELETE /api/comments/:id.
func (h *CommentsHandler) DeleteComment(c *gin.Context) {
	principal := auth.RequirePrincipal(c)
	if principal == nil {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.comments.DeleteComment(id, principal); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
