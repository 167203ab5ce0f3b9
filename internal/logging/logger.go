package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/edvin/insightcrm/internal/config"
)

// NewLogger creates a structured JSON zerolog.Logger on stdout tagged with
// the service name. An unparseable LOG_LEVEL falls back to info.
func NewLogger(cfg *config.Config) zerolog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg *config.Config) zerolog.Logger {
	ctx := zerolog.New(w).With().Timestamp()

	if cfg.ServiceName != "" {
		ctx = ctx.Str("service", cfg.ServiceName)
	}
	if cfg.DevMode {
		ctx = ctx.Bool("dev_mode", true)
	}

	logger := ctx.Logger()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	return logger.Level(level)
}
