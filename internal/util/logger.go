package util

import (
	"fmt"
	"os"
	"time"

	"github.com/mxcd/go-config/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global zerolog logger from the LOG_LEVEL and
// DEV config values. In dev mode, output goes through a human-readable
// console writer instead of JSON.
func InitLogger() error {
	levelString := config.Get().String("LOG_LEVEL")
	level, err := zerolog.ParseLevel(levelString)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelString, err)
	}
	zerolog.SetGlobalLevel(level)

	if config.Get().Bool("DEV") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	return nil
}
