package site

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/focus-blog/focus/internal/logging"
)

const requestIDHeader = "X-Request-ID"

// requestLogger tags each request with a correlation ID and logs its outcome.
func requestLogger(base *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(requestIDHeader, requestID)

		ctx := logging.ContextWithLogger(c.Request.Context(), base)
		ctx = logging.ContextWithRequestID(ctx, requestID)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		entry := logging.LoggerFromContext(ctx).WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("Request failed")
			return
		}
		entry.Info("Request completed")
	}
}

// recoverer turns a panicking handler into a 500 response logged through logrus.
func recoverer() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		ctx := c.Request.Context()
		logging.LoggerFromContext(ctx).WithFields(logrus.Fields{
			"panic":      fmt.Sprint(recovered),
			"request_id": logging.RequestIDFromContext(ctx),
			"path":       c.Request.URL.Path,
		}).Error("Panic in request handler")
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}
