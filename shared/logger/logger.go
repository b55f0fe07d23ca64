package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the application logger.
type Options struct {
	Level       string
	Environment string
	Service     string
	Output      io.Writer
}

// New builds a zerolog logger. Outside production it writes human readable
// console output; in production it writes JSON lines.
func New(opts Options) *zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	if opts.Environment != "production" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}

	logger := ctx.Logger()
	return &logger
}
