package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paisa/internal/uuid"
)

// userIDKey is the context key handlers read the scoped user ID from.
const userIDKey = "userID"

// UserScope returns a Gin middleware that scopes the request to the user
// asserted by the upstream gateway in the X-User-ID header. The service does
// no authentication of its own; it trusts the gateway-verified identity and
// only validates that the header carries a well-formed UUID.
func UserScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": gin.H{"code": "UNAUTHORIZED", "message": "Missing X-User-ID header"}})
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": gin.H{"code": "UNAUTHORIZED", "message": "Malformed X-User-ID header"}})
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}
