package server

import (
	"net/http"

	"github.com/Soham407/TapCard/internal/util"
	"github.com/gin-gonic/gin"
)

// endpointMap is the endpoint description advertised by the service
// descriptor. availableEndpoints is the flat listing used in 404 bodies.
var endpointMap = gin.H{
	"GET /":             "service descriptor",
	"GET /health":       "liveness probe",
	"GET /tap":          "default contact card",
	"GET /tap/:name":    "named contact card",
	"GET /tap/:name/qr": "QR code for a card's tap URL",
	"GET /admin":        "admin page",
}

var availableEndpoints = []string{
	"GET /",
	"GET /health",
	"GET /tap",
	"GET /tap/:name",
	"GET /tap/:name/qr",
	"GET /admin",
}

func (s *Server) rootHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":      "TapCard",
			"version":   util.Version,
			"commit":    util.Commit,
			"endpoints": endpointMap,
		})
	}
}

func (s *Server) noRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":              "Not Found",
			"message":            "no such endpoint: " + c.Request.URL.Path,
			"availableEndpoints": availableEndpoints,
		})
	}
}
