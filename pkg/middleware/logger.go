package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
)

// Logger はリクエストごとにアクセスログを出力するGinミドルウェアを返す。
func Logger(logger logr.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		kvs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
			"request_id", GetRequestID(c),
		}
		if len(c.Errors) > 0 {
			kvs = append(kvs, "errors", c.Errors.String())
		}
		logger.Info("request", kvs...)
	}
}
