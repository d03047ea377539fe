package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// wildcardOrigin は全オリジンを許可する指定。
const wildcardOrigin = "*"

// CORS は指定されたオリジンからのクロスオリジンリクエストを許可するGinミドルウェアを返す。
// allowedOriginsに "*" を含めると全オリジンを許可する。
func CORS(allowedOrigins []string) gin.HandlerFunc {
	originsSet := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originsSet[o] = struct{}{}
	}
	_, allowAll := originsSet[wildcardOrigin]

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := originsSet[origin]; origin != "" && (ok || allowAll) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, "+HeaderRequestID)
			c.Header("Access-Control-Expose-Headers", HeaderRequestID)
			c.Header("Access-Control-Max-Age", "86400")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
