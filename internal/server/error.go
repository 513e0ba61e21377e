package server

import (
	"errors"
	"net/http"

	"github.com/Soham407/TapCard/internal/artifact"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// jsonError writes a structured JSON error response. kind is the short
// error class ("Not Found", "Internal Server Error"), message the
// human-readable detail. Messages must never carry credentials or
// internal stack detail.
func jsonError(c *gin.Context, status int, kind string, message string) {
	c.JSON(status, gin.H{
		"error":   kind,
		"message": message,
	})
}

// respondCardError is the single place where card resolution and
// streaming failures become HTTP responses. Transport errors mean the
// status line is already sent: the connection is torn down so the client
// reads a broken stream instead of mistaking the truncated body for a
// complete card. Writing a second response would corrupt the stream.
func respondCardError(c *gin.Context, name string, err error) {
	switch {
	case errors.Is(err, artifact.ErrTransport):
		log.Error().Err(err).Str("card", name).Msg("card: stream aborted mid-response")
		c.Abort()
		// net/http treats this panic as a connection abort without a
		// stack trace; the recovery middleware re-raises it.
		panic(http.ErrAbortHandler)
	case errors.Is(err, artifact.ErrNotFound):
		jsonError(c, http.StatusNotFound, "Not Found", "card '"+name+"' does not exist")
	case errors.Is(err, artifact.ErrConfiguration):
		log.Error().Err(err).Str("card", name).Msg("card: source not configured")
		jsonError(c, http.StatusInternalServerError, "Internal Server Error", "card source is not configured")
	default:
		log.Error().Err(err).Str("card", name).Msg("card: delivery failed")
		jsonError(c, http.StatusInternalServerError, "Internal Server Error", "card could not be delivered")
	}
}
