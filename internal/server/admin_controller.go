package server

import (
	"net/http"

	"github.com/Soham407/TapCard/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// adminHandler serves the embedded admin page. The page is a single
// static asset with no server-side logic behind it.
func (s *Server) adminHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := web.AdminPage()
		if err != nil {
			log.Error().Err(err).Msg("admin: embedded page missing")
			jsonError(c, http.StatusInternalServerError, "Internal Server Error", "admin page unavailable")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	}
}
