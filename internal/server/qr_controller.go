package server

import (
	"net/http"
	"strings"

	"github.com/Soham407/TapCard/internal/artifact"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	qrcode "github.com/skip2/go-qrcode"
)

// qrHandler returns the QR code handler.
// GET /tap/:name/qr
//
// Encodes the card's tap URL as a PNG QR code so a card can be shared
// with devices that cannot read the NFC tag.
func (s *Server) qrHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		if !artifact.ValidName(name) {
			jsonError(c, http.StatusNotFound, "Not Found", "card '"+name+"' does not exist")
			return
		}

		tapURL := strings.TrimSuffix(s.Options.BaseURL, "/") + "/tap/" + name
		png, err := qrcode.Encode(tapURL, qrcode.Medium, 256)
		if err != nil {
			log.Error().Err(err).Str("card", name).Msg("qr: encoding failed")
			jsonError(c, http.StatusInternalServerError, "Internal Server Error", "QR code generation failed")
			return
		}

		c.Data(http.StatusOK, "image/png", png)
	}
}
