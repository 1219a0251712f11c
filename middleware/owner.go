package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/cyphera/delegatable/constants"
	"github.com/cyphera/delegatable/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OwnerOnlyMiddleware gates the administrative surface (publisher set and
// authority-wide revocation) behind the single owner key. Constant-time
// comparison so the key cannot be probed byte by byte.
func OwnerOnlyMiddleware(ownerKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ownerKey == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "administrative surface is not configured",
			})
			return
		}

		provided := c.GetHeader(constants.OwnerKeyHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(ownerKey)) != 1 {
			if logger.Log != nil {
				logger.Log.Warn("Rejected unauthorized admin request",
					zap.String("path", c.Request.URL.Path),
					zap.String("client_ip", c.ClientIP()),
				)
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "owner authorization required",
			})
			return
		}

		c.Next()
	}
}
