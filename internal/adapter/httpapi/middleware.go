package httpapi

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"command-logger/internal/domain/ports"
)

const bearerPrefix = "Bearer "

// RequestObserver receives one call per served request.
type RequestObserver interface {
	ObserveRequest(path, method string, status int, elapsed time.Duration)
}

// RequireBearer rejects requests whose Authorization header is not "Bearer <secret>".
// An empty secret disables the check.
func RequireBearer(secret string) gin.HandlerFunc {
	if secret == "" {
		return func(c *gin.Context) { c.Next() }
	}

	expected := []byte(bearerPrefix + secret)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader("Authorization"))
		if subtle.ConstantTimeCompare(got, expected) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
			return
		}
		c.Next()
	}
}

// RequestLogger logs every request after it is served.
func RequestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"status", status,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
			"latency", time.Since(start).String(),
		}

		ctx := c.Request.Context()
		switch {
		case status >= http.StatusInternalServerError:
			logger.Error(ctx, "http request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn(ctx, "http request", fields...)
		default:
			logger.Info(ctx, "http request", fields...)
		}
	}
}

// Recovery converts panics into the JSON error body instead of dropping the connection.
func Recovery(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error(c.Request.Context(), "http recovery from panic",
					"error", rec,
					"path", c.Request.URL.Path,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:   "unexpected error",
					Details: fmt.Sprint(rec),
				})
			}
		}()
		c.Next()
	}
}

// Metrics reports each request to observer, labelled with the route pattern.
func Metrics(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		observer.ObserveRequest(path, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
