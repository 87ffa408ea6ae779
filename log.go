package quickswipe

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds a console logger for the given verbosity:
// 0 warn, 1 info, 2 debug, 3+ trace. Debug and above include the caller.
func NewLogger(w io.Writer, verbosity int) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case verbosity >= 3:
		level = zerolog.TraceLevel
	case verbosity == 2:
		level = zerolog.DebugLevel
	case verbosity == 1:
		level = zerolog.InfoLevel
	}

	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}
