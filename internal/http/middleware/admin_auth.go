package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/greenstep-az/ecorewards-backend/internal/service"
)

// AdminAuth validates the JWT access token on admin routes.
func AdminAuth(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		adminID, username, role, err := tokens.Parse(raw)
		if err != nil || adminID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextAdminIDKey, adminID)
		c.Set(ContextUsernameKey, username)
		c.Set(ContextRoleKey, role)
		c.Next()
	}
}
