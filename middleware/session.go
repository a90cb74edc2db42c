package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hotel-manager/constants"
	"hotel-manager/services/logger"
)

// RequestID reuses the caller's X-Request-ID or generates one, and echoes it back
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(constants.ContextRequestID, requestID)
		c.Writer.Header().Set(constants.HeaderRequestID, requestID)

		c.Next()
	}
}

// RequestLogger logs one line per request plus any errors handlers attached with c.Error
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		requestID := c.GetString(constants.ContextRequestID)
		log.Info("%s %s %d %s request_id=%s", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start), requestID)
		for _, e := range c.Errors {
			log.Error("request_id=%s %v", requestID, e.Err)
		}
	}
}
