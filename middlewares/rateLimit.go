package middlewares

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit allows each client IP up to requests calls per window.
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	return func(ctx *gin.Context) {
		clientIP := ctx.ClientIP()

		mu.Lock()
		limiter, exists := limiters[clientIP]
		if !exists {
			limiter = rate.NewLimiter(rate.Every(window/time.Duration(requests)), requests)
			limiters[clientIP] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			slog.Warn("Rate limit exceeded", "ip", clientIP, "method", ctx.Request.Method, "path", ctx.Request.URL.Path)
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Rate limit exceeded, try again later"})
			return
		}
		ctx.Next()
	}
}
