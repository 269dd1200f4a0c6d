package middleware

import (
	"time"

	"stagecast/pkg/logger"
	"stagecast/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggingMiddleware stamps each request with a request id and logs it
// on completion with the id attached for correlation.
func RequestLoggingMiddleware(ctxLogger *logger.ContextLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = utils.GenerateRequestID()
		}

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		ctxLogger.LogRequest(ctx, c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start).Milliseconds())
	}
}
