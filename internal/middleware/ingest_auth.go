package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// IngestAuth returns a Gin middleware that validates the X-Ingest-Secret
// header presented by the statement-ingestion pipeline against the configured
// shared secret, using a constant-time compare.
func IngestAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				gin.H{"error": gin.H{"code": "INGEST_NOT_CONFIGURED", "message": "Ingestion endpoints are not configured"}})
			return
		}
		presented := c.GetHeader("X-Ingest-Secret")
		if subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": gin.H{"code": "INVALID_INGEST_SECRET", "message": "Invalid or missing ingest secret"}})
			return
		}
		c.Next()
	}
}
