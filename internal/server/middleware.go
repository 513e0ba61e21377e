package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// requestLogger returns a Gin middleware that records every inbound
// request: method, path and the client identifier on entry, then status
// and duration on completion. Each request gets a generated id tying the
// two log lines together.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		start := time.Now()

		log.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("client", c.GetHeader("User-Agent")).
			Msg("request received")

		c.Next()

		log.Info().
			Str("request_id", requestID).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	}
}
