package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration)
}

// unmatchedRoute はルーティングに一致しなかったリクエストのラベル値。
// パスをそのままラベルにするとカーディナリティが際限なく増えるため丸める。
const unmatchedRoute = "unmatched"

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kvgateway",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by method, route and status code",
	}, []string{"method", "route", "status"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "kvgateway",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Metrics はリクエスト数とレイテンシをPrometheusに記録するGinミドルウェアを返す。
// routeラベルには実際のパスではなくルート定義（例: /get/:key）を使う。
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
