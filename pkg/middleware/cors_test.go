package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// TestCORS はCORSミドルウェアを検証する。
func TestCORS(t *testing.T) {
	t.Parallel()

	newRouter := func(origins []string, called *bool) *gin.Engine {
		router := gin.New()
		router.Use(CORS(origins))
		handler := func(c *gin.Context) {
			if called != nil {
				*called = true
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		}
		router.GET("/test", handler)
		router.OPTIONS("/test", handler)
		return router
	}

	do := func(router *gin.Engine, method, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/test", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("許可されたオリジンからのリクエストにCORSヘッダーが設定されること", func(t *testing.T) {
		t.Parallel()

		w := do(newRouter([]string{"http://localhost:3000", "https://example.com"}, nil), http.MethodGet, "https://example.com")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Authorization, Content-Type, X-Request-ID", w.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "X-Request-ID", w.Header().Get("Access-Control-Expose-Headers"))
		assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("許可されていないオリジンにはCORSヘッダーが設定されないこと", func(t *testing.T) {
		t.Parallel()

		w := do(newRouter([]string{"http://localhost:3000"}, nil), http.MethodGet, "https://evil.com")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("ワイルドカード指定で任意のオリジンを許可すること", func(t *testing.T) {
		t.Parallel()

		w := do(newRouter([]string{"*"}, nil), http.MethodGet, "https://anywhere.example")

		assert.Equal(t, "https://anywhere.example", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Originヘッダーが無いリクエストにはCORSヘッダーが設定されないこと", func(t *testing.T) {
		t.Parallel()

		w := do(newRouter([]string{"*"}, nil), http.MethodGet, "")

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("OPTIONSリクエストで204が返りハンドラが呼ばれないこと", func(t *testing.T) {
		t.Parallel()

		called := false
		w := do(newRouter([]string{"http://localhost:3000"}, &called), http.MethodOptions, "http://localhost:3000")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.False(t, called)
	})

	t.Run("GETリクエストではハンドラが実行されること", func(t *testing.T) {
		t.Parallel()

		called := false
		do(newRouter([]string{"http://localhost:3000"}, &called), http.MethodGet, "http://localhost:3000")

		assert.True(t, called)
	})
}
