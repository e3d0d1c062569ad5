package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/papilo-topato/AccountsManagerApplication/internal/models"
	"github.com/papilo-topato/AccountsManagerApplication/internal/utils"
)

// RequestIDMiddleware tags every request with a unique id, echoed in the
// X-Request-ID response header and available to log lines downstream.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("requestId", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// LoggerMiddleware logs one line per request with status and duration.
func LoggerMiddleware(logger *utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		requestID, _ := c.Get("requestId")
		logger.Info("%s %s -> %d (%s) [%v]",
			c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), requestID, time.Since(start))
	}
}

// RecoveryMiddleware catches panics from handlers, writes them to the
// persistent log, and answers with a generic failure instead of killing
// the process.
func RecoveryMiddleware(logger *utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Panic(r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
					Status:  "error",
					Code:    "INTERNAL",
					Message: "Operation failed",
				})
			}
		}()
		c.Next()
	}
}
