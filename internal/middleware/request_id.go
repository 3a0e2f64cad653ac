package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the Gin context key (and response header, prefixed X-)
// carrying the per-request correlation id.
const RequestIDKey = "request_id"

// RequestID assigns each request a correlation id, honoring a client-supplied
// X-Request-ID header so upstream proxies can trace calls end to end.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
