package auth

import (
	"net/http"

	"inkstream/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// principalKey is the gin context key the middleware stores the
// resolved Principal under.
const principalKey = "principal"

// Middleware resolves the Authorization header to a Principal and
// stores it in the request context. Requests without a valid token
// continue unauthenticated; handlers that require auth call
// RequirePrincipal.
func Middleware(db *gorm.DB, verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := verifier.ValidateToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		var user models.User
		if err := db.Where("id = ? AND is_active = ?", userID, true).First(&user).Error; err != nil {
			c.Next()
			return
		}

		c.Set(principalKey, &Principal{
			UserID:      user.ID,
			Username:    user.Username,
			IsActive:    user.IsActive,
			IsSuperuser: user.IsSuperuser,
		})
		c.Next()
	}
}

// PrincipalFrom returns the request's Principal, or nil when the
// request is unauthenticated.
func PrincipalFrom(c *gin.Context) *Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, ok := v.(*Principal)
	if !ok {
		return nil
	}
	return p
}

// RequirePrincipal returns the request's Principal or aborts with 401.
func RequirePrincipal(c *gin.Context) *Principal {
	p := PrincipalFrom(c)
	if p == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return nil
	}
	return p
}
