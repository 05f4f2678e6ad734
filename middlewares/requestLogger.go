package middlewares

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		attrs := []any{
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", ctx.Writer.Status(),
			"latency", time.Since(start).String(),
			"ip", ctx.ClientIP(),
		}
		if len(ctx.Errors) > 0 {
			attrs = append(attrs, "errors", ctx.Errors.String())
		}
		if ctx.Writer.Status() >= 500 {
			slog.Error("request", attrs...)
			return
		}
		slog.Info("request", attrs...)
	}
}
