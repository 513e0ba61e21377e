package server

import (
	"net/http"

	"github.com/Soham407/TapCard/internal/artifact"
	"github.com/Soham407/TapCard/internal/device"
	"github.com/gin-gonic/gin"
)

// tapHandler returns the legacy single-card handler.
// GET /tap
//
// Serves the configured default card. When TAP_REDIRECT is set the
// endpoint 302-redirects to the named-card route instead, for
// deployments that want one canonical card URL.
func (s *Server) tapHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.Options.TapRedirect {
			c.Redirect(http.StatusFound, "/tap/"+s.Options.DefaultCard)
			return
		}
		s.serveCard(c, s.Options.DefaultCard)
	}
}

// cardHandler returns the dynamic card handler.
// GET /tap/:name
//
// Returns:
//   - 200 with the card bytes; header scheme depends on the client's
//     delivery category
//   - 404 when the name is invalid or the card does not exist
//   - 500 when the source is unconfigured or unavailable
func (s *Server) cardHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.serveCard(c, c.Param("name"))
	}
}

// serveCard runs the classify → resolve → stream pipeline for one card.
func (s *Server) serveCard(c *gin.Context, name string) {
	// Card names become file paths and object keys, so traversal-style
	// names are rejected up front. Invalid names answer 404 exactly like
	// missing cards.
	if !artifact.ValidName(name) {
		jsonError(c, http.StatusNotFound, "Not Found", "card '"+name+"' does not exist")
		return
	}

	req := artifact.Request{
		Name:     name,
		Category: device.Classify(c.GetHeader("User-Agent")),
	}

	source, err := s.Resolver.Resolve(c.Request.Context(), name)
	if err != nil {
		respondCardError(c, name, err)
		return
	}

	if err := s.Streamer.Stream(c.Request.Context(), c.Writer, source, req); err != nil {
		respondCardError(c, name, err)
		return
	}
}
