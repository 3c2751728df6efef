package middleware

import (
	"net/http"
	"strings"

	"github.com/Freeeeeet/slot_swapper/internal/auth"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey    = "user_id"
	userEmailKey = "user_email"
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// RequireAuth проверяет bearer токен. Нет токена: 401, неверный токен: 403.
func RequireAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}

		claims, err := parser.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(userIDKey, claims.ID)
		c.Set(userEmailKey, claims.Email)
		c.Next()
	}
}

// UserID возвращает id пользователя, установленный RequireAuth
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
