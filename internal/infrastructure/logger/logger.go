package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"minecrox-server/services/pack-api/internal/config"
)

// New builds the process-wide zerolog logger. Development gets a console
// writer; everything else emits JSON.
func New(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Environment == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Logger()
}
