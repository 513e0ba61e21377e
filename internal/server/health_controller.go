package server

import (
	"time"

	"github.com/gin-gonic/gin"
)

// getHealthHandler returns the liveness handler. It never touches the
// card source, so it reports healthy even when storage is unreachable.
func (s *Server) getHealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
