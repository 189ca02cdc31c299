// Package tlog is a thin wrapper around zerolog, in the leveled,
// writer-configurable shape the example pack's daemons use (see
// _examples/btcq-org-qbtc/cmd/bifrost/main.go), without forcing a
// logger on call sites that don't pass one: the zero value logs
// nowhere.
package tlog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the structured logger threaded through component options.
// The zero value is a no-op logger, matching the crypto core's default
// of staying silent unless a caller opts in.
type Logger struct {
	l zerolog.Logger
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return Logger{l: zerolog.Nop()}
}

// New returns a Logger writing timestamped JSON lines to w at the given
// level ("debug", "info", "warn", "error"); an unrecognized level falls
// back to info.
func New(w io.Writer, level string) Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return Logger{l: zerolog.New(w).Level(lvl).With().Timestamp().Logger()}
}

func (l Logger) Debug() *zerolog.Event { return l.l.Debug() }
func (l Logger) Info() *zerolog.Event  { return l.l.Info() }
func (l Logger) Warn() *zerolog.Event  { return l.l.Warn() }
func (l Logger) Error() *zerolog.Event { return l.l.Error() }
