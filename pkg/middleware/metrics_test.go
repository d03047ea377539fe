package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// TestMetrics はMetricsミドルウェアを検証する。
func TestMetrics(t *testing.T) {
	t.Parallel()

	t.Run("ルート定義とステータスでリクエスト数を数えること", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Metrics())
		router.GET("/metrics-test/:key", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		for _, key := range []string{"a", "b", "c"} {
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics-test/"+key, nil))
		}

		got := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, "/metrics-test/:key", "200"))
		assert.Equal(t, float64(3), got)
	})

	t.Run("一致しないルートはunmatchedとして数えること", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Metrics())

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/nowhere", nil))

		got := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodDelete, unmatchedRoute, "404"))
		assert.GreaterOrEqual(t, got, float64(1))
	})
}
