// SPDX-License-Identifier: Unlicense OR MIT

// Package log is the compositor's shared structured logger, used from
// every other package for its error-handling. It wraps
// github.com/rs/zerolog rather than the standard library's log
// package, matching the logger choice recorded in DESIGN.md's pack
// survey (itsManjeet-exp's go.mod lists zerolog among the loggers it
// benchmarks against x/exp/slog).
package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
	With().Timestamp().Logger()

// SetDebug raises the global level to Debug, matching the -d/--debug
// CLI flag's effect: debug mode logs every key event, hit-test,
// animation start/end, and arrange call.
func SetDebug(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// with attaches kv pairs (alternating key, value) to an event.
func with(e *zerolog.Event, kv []any) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		e = e.Interface(key, kv[i+1])
	}
	return e
}

// Debug logs a debug-level message with structured key/value fields.
func Debug(msg string, kv ...any) {
	with(logger.Debug(), kv).Msg(msg)
}

// Info logs an info-level message with structured key/value fields.
func Info(msg string, kv ...any) {
	with(logger.Info(), kv).Msg(msg)
}

// Warn logs a warn-level message with structured key/value fields,
// used throughout for the "logged, operation skipped" error kind.
func Warn(msg string, kv ...any) {
	with(logger.Warn(), kv).Msg(msg)
}

// Error logs an error-level message with structured key/value fields,
// used for fatal init errors before os.Exit(1).
func Error(msg string, kv ...any) {
	with(logger.Error(), kv).Msg(msg)
}
