package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Soham407/TapCard/internal/artifact"
	"github.com/Soham407/TapCard/internal/server"
	"github.com/Soham407/TapCard/internal/util"
	"github.com/mxcd/go-config/config"
	"github.com/rs/zerolog/log"
)

const fetchTimeout = 10 * time.Second

func main() {
	if err := util.InitConfig(); err != nil {
		log.Panic().Err(err).Msg("error initializing config")
	}
	config.Print()

	if err := util.InitLogger(); err != nil {
		log.Panic().Err(err).Msg("error initializing logger")
	}

	// Config is read once here into an explicit struct; resolvers and
	// handlers never reach into ambient config state.
	resolver, err := artifact.NewResolver(config.Get().String("CARD_SOURCE"), artifact.Config{
		Dir:           config.Get().String("CARD_DIR"),
		Endpoint:      config.Get().String("S3_ENDPOINT"),
		AccessKey:     config.Get().String("S3_ACCESS_KEY"),
		SecretKey:     config.Get().String("S3_SECRET_KEY"),
		Bucket:        config.Get().String("S3_BUCKET"),
		PublicBucket:  config.Get().Bool("S3_PUBLIC_BUCKET"),
		UseSSL:        config.Get().Bool("S3_USE_SSL"),
		RemoteBaseURL: config.Get().String("REMOTE_BASE_URL"),
	})
	if err != nil {
		log.Panic().Err(err).Msg("error initializing card resolver")
	}

	s, err := server.NewServer(&server.ServerOptions{
		DevMode:     config.Get().Bool("DEV"),
		Port:        config.Get().Int("PORT"),
		DefaultCard: config.Get().String("DEFAULT_CARD"),
		TapRedirect: config.Get().Bool("TAP_REDIRECT"),
		BaseURL:     config.Get().String("BASE_URL"),
		Resolver:    resolver,
		Streamer:    artifact.NewStreamer(fetchTimeout),
	})
	if err != nil {
		log.Panic().Err(err).Msg("error initializing server")
	}

	if err := s.RegisterRoutes(); err != nil {
		log.Panic().Err(err).Msg("error registering routes")
	}

	// Start server in a goroutine so we can listen for shutdown signals
	go func() {
		if err := s.Run(); err != nil {
			log.Panic().Err(err).Msg("error running server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down, waiting for in-flight requests")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.Shutdown(ctx)
	log.Info().Msg("server stopped")
}
