// Package handlers exposes the core services over the HTTP API.
package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"inkstream/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// parsePagination reads limit/page query parameters with sane bounds.
func parsePagination(c *gin.Context) (limit, page, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))

	if limit > 100 {
		limit = 100
	}
	if limit < 1 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}

	offset = (page - 1) * limit
	return limit, page, offset
}

// parseIDParam parses the :id path parameter as a UUID, responding 400
// on failure.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps the service error taxonomy to HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
	case errors.Is(err, services.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Already exists"})
	case errors.Is(err, services.ErrAlreadyReported):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Article already reported"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		// The error text can carry SQL fragments; keep it server-side
		log.Printf("internal error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
