package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Soham407/TapCard/internal/artifact"
	"github.com/Soham407/TapCard/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ServerOptions struct {
	DevMode bool
	Port    int

	// DefaultCard is the card name served by the legacy /tap endpoint.
	DefaultCard string
	// TapRedirect makes /tap redirect to /tap/{DefaultCard} instead of
	// streaming the card directly.
	TapRedirect bool
	// BaseURL is the externally reachable base URL, used to build the
	// tap URLs encoded into QR codes.
	BaseURL string

	Resolver artifact.Resolver
	Streamer *artifact.Streamer
}

type Server struct {
	Options    *ServerOptions
	Engine     *gin.Engine
	HttpServer *http.Server
	Resolver   artifact.Resolver
	Streamer   *artifact.Streamer
}

func NewServer(options *ServerOptions) (*Server, error) {
	if options == nil {
		return nil, fmt.Errorf("server options cannot be nil")
	}
	if options.Resolver == nil {
		return nil, fmt.Errorf("server options Resolver cannot be nil")
	}
	if options.Streamer == nil {
		return nil, fmt.Errorf("server options Streamer cannot be nil")
	}

	server := &Server{
		Options:  options,
		Resolver: options.Resolver,
		Streamer: options.Streamer,
	}

	if !server.Options.DevMode {
		log.Info().Msg("Running Gin in production mode")
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Info().Msg("Running Gin in development mode")
	}

	engine := gin.New()
	server.Engine = engine
	server.Engine.Use(requestLogger())
	server.Engine.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		// Deliberate aborts (mid-stream failures) must reach net/http,
		// which closes the connection without writing anything further.
		if err == http.ErrAbortHandler {
			panic(err)
		}
		log.Error().Interface("panic", err).Str("path", c.Request.URL.Path).Msg("recovered from panic")
		jsonError(c, http.StatusInternalServerError, "Internal Server Error", "unexpected internal error")
	}))

	server.HttpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", options.Port),
		Handler: engine,
	}

	return server, nil
}

func (s *Server) RegisterRoutes() error {
	// Informational routes
	s.Engine.GET("/", s.rootHandler())
	s.Engine.GET("/health", s.getHealthHandler())

	// Card delivery routes
	s.Engine.GET("/tap", s.tapHandler())
	s.Engine.GET("/tap/:name", s.cardHandler())
	s.Engine.GET("/tap/:name/qr", s.qrHandler())

	// Admin page is a single static asset, delivered as-is
	s.Engine.GET("/admin", s.adminHandler())
	web.RegisterStaticFiles(s.Engine)

	s.Engine.NoRoute(s.noRouteHandler())
	return nil
}

func (s *Server) Run() error {
	if err := s.HttpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) {
	s.HttpServer.Shutdown(ctx)
}
