package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
)

// InternalErrorMessage は500応答で返す汎用エラーメッセージ。
// 内部の詳細はクライアントに返さずログにのみ出力する。
const InternalErrorMessage = "Internal server error."

// Recovery はパニックからの回復を行うGinミドルウェアを返す。
// パニック値をログに出力し、500エラーを返す。
func Recovery(logger logr.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err, ok := r.(error)
				if !ok {
					err = fmt.Errorf("%v", r)
				}
				logger.Error(err, "recovered from panic",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": InternalErrorMessage,
				})
			}
		}()
		c.Next()
	}
}
