package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

//go:embed all:html
var webRoot embed.FS

// RegisterStaticFiles mounts the embedded assets under /static. The
// admin page is read from the same embedded tree via AdminPage.
func RegisterStaticFiles(engine *gin.Engine) {
	sub, err := fs.Sub(webRoot, "html")
	if err != nil {
		log.Fatal().Err(err).Msg("embedded assets missing from binary")
	}
	engine.StaticFS("/static", http.FS(sub))
	log.Info().Msg("embedded assets mounted at /static")
}

// AdminPage returns the embedded admin page bytes.
func AdminPage() ([]byte, error) {
	return webRoot.ReadFile("html/admin.html")
}
