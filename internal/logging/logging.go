// Package logging configures the global zerolog logger for the CLI.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls the global logger setup.
type Options struct {
	// Level is one of debug, info, warn, error.
	Level string

	// Format is "console" for human-readable output or "json".
	Format string

	// NoColor disables color in console output.
	NoColor bool
}

// InitDefault sets up a console logger at info level. It is used
// before flags are parsed so early failures are still readable.
func InitDefault() {
	Init(nil)
}

// Init configures the global logger. A nil opts means defaults.
func Init(opts *Options) {
	if opts == nil {
		opts = &Options{}
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err == nil {
			level = parsed
		}
	}

	logger := zerolog.New(os.Stderr)
	if opts.Format != "json" {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			NoColor:    opts.NoColor,
			TimeFormat: time.Kitchen,
		})
	}

	log.Logger = logger.Level(level).With().Timestamp().Logger()
}
