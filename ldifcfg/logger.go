package ldifcfg

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// NewLogger returns a *zerolog.Logger writing to stderr: a human-readable
// zerolog.ConsoleWriter when stderr is attached to a terminal, plain JSON
// otherwise — the same has-a-tty decision zerolog.ConsoleWriter's own
// example makes, checked here with github.com/mattn/go-isatty.
func NewLogger(verbose bool) *zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	var w = os.Stderr
	var logger zerolog.Logger
	if isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd()) {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).Level(level).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	}
	return &logger
}
