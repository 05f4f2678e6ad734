package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "farmlink",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "farmlink",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	Checkouts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "farmlink",
		Name:      "checkouts_total",
		Help:      "Checkout attempts by outcome.",
	}, []string{"outcome"})

	SaleNotifications = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "farmlink",
		Name:      "sale_notifications_total",
		Help:      "Sale notifications written for farmers.",
	})

	AIFlows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "farmlink",
		Name:      "ai_flow_requests_total",
		Help:      "AI flow invocations by flow and outcome.",
	}, []string{"flow", "outcome"})
)

func Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(ctx.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
