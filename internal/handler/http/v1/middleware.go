package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDHeader - заголовок, по которому запрос можно сопоставить с логами
const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware присваивает каждому запросу идентификатор.
// Идентификатор клиента сохраняется, если он передан в заголовке.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Set(requestIDHeader, requestID)
		c.Next()
	}
}
