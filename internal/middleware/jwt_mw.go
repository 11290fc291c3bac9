package middleware

import (
	"net/http"
	"strings"

	"student_intake/internal/metrics"
	"student_intake/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const AuthTokenKey = "authToken"

// JWTAuthMiddleware rejects requests without a valid bearer token and stores
// the decoded token under AuthTokenKey.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, "Authorization header required")
			return
		}

		res := jwtUtil.Decode(tokenString)
		if !res.Valid() {
			metrics.TokenRejections.WithLabelValues(res.Status.String()).Inc()
			logger.Debug("bearer token rejected", zap.Stringer("status", res.Status), zap.Error(res.Err))
			unauthorized(c, "Token inválido ou expirado.")
			return
		}

		c.Set(AuthTokenKey, res)
		c.Next()
	}
}

// AuthToken returns the token stored by JWTAuthMiddleware
func AuthToken(c *gin.Context) (utils.TokenResult, bool) {
	v, exists := c.Get(AuthTokenKey)
	if !exists {
		return utils.TokenResult{}, false
	}
	res, ok := v.(utils.TokenResult)
	return res, ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
