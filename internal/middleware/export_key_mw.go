package middleware

import (
	"net/http"

	"student_intake/internal/utils"

	"github.com/gin-gonic/gin"
)

const ExportKeyHeader = "X-Export-Key"

// ExportKeyMiddleware guards the drain endpoint with a shared key checked
// against a bcrypt hash. An empty hash leaves the route open.
func ExportKeyMiddleware(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" {
			c.Next()
			return
		}

		key := c.GetHeader(ExportKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ExportKeyHeader + " header required"})
			return
		}
		if !utils.CheckSecretHash(key, keyHash) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			return
		}

		c.Next()
	}
}
