package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rmg-labs/incident-service/internal/service"
	"github.com/sirupsen/logrus"
)

// userIDKey - ключ, под которым middleware кладет ID пользователя в контекст Gin
const userIDKey = "user_id"

// SessionAuthMiddleware - middleware для аутентификации по сессионному токену.
// Принимает заголовок Authorization в форматах "Bearer <token>" и "Token <token>".
func SessionAuthMiddleware(userService service.UserService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			log.Warn("Session token missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication credentials were not provided"})
			return
		}

		userID, err := userService.Authenticate(c.Request.Context(), token)
		if err != nil {
			log.Warn("Invalid session token provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	for _, prefix := range []string{"Bearer ", "Token "} {
		if strings.HasPrefix(authHeader, prefix) {
			return strings.TrimPrefix(authHeader, prefix)
		}
	}
	return ""
}

// currentUserID возвращает ID аутентифицированного пользователя из контекста
func currentUserID(c *gin.Context) int64 {
	id, _ := c.Get(userIDKey)
	userID, _ := id.(int64)
	return userID
}
