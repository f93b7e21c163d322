package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userIDKey = "user_id"

// GatewayIdentity requires the authenticated caller's id forwarded by the
// upstream gateway in X-User-ID. Token verification happens at the gateway;
// this service only consumes the resulting identity.
func GatewayIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("X-User-ID")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":  "UNAUTHORIZED",
				"error": "missing caller identity",
			})
			return
		}

		userID, err := uuid.Parse(header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":  "UNAUTHORIZED",
				"error": "malformed caller identity",
			})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the caller identity GatewayIdentity stored on the context.
// Handlers behind the middleware use this instead of trusting ids from the
// request body or query string.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
