package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID はリクエストIDを運ぶHTTPヘッダー。
const HeaderRequestID = "X-Request-ID"

// contextKeyRequestID はGinコンテキストにリクエストIDを格納するキー。
const contextKeyRequestID = "request_id"

// maxRequestIDLength はクライアントから受け入れるリクエストIDの最大長。
const maxRequestIDLength = 128

// RequestID はリクエストIDを付与するGinミドルウェアを返す。
// クライアントがX-Request-IDを送ってきた場合はそれを引き継ぎ、
// 無ければUUIDを生成する。IDはレスポンスヘッダーにも設定する。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set(contextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID はGinコンテキストからリクエストIDを取得する。
// RequestIDミドルウェアが適用されていない場合は空文字列を返す。
func GetRequestID(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}
