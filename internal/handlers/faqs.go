package handlers

import (
	"net/http"

	"inkstream/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FAQHandler serves the public FAQ list.
type FAQHandler struct {
	db *gorm.DB
}

// NewFAQHandler creates a new FAQ handler
func NewFAQHandler(db *gorm.DB) *FAQHandler {
	return &FAQHandler{db: db}
}

// ListFAQs handles GET /api/faqs.
func (h *FAQHandler) ListFAQs(c *gin.Context) {
	var faqs []models.FAQ
	if err := h.db.Order("created_at ASC").Find(&faqs).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"faqs": faqs})
}
