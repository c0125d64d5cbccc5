/*
Package diag is the process-wide diagnostic sink for errors that have nowhere else to go.

Handler failures in a notification broadcaster are routed to its error handlers.
When a broadcaster has no error handlers, or an error handler itself panics, the error is sent here instead and logged with [log/slog].

The sink is available from process start and needs no teardown.
The first call to [Logger] or [Report] builds the default logger from the environment (see [Config]) unless [SetLogger] was called first.
*/
package diag

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

const reportMessage = "unhandled notification error"

var (
	sink     atomic.Pointer[slog.Logger]
	fallback *slog.Logger
	initOnce sync.Once
)

func defaultLogger() *slog.Logger {
	initOnce.Do(func() {
		cfg, err := LoadConfig()
		if err != nil {
			cfg = DefaultConfig()
		}
		fallback = NewLogger(cfg, os.Stderr)
		if err != nil {
			fallback.Warn("Invalid diagnostics configuration, using defaults", "error", err)
		}
	})
	return fallback
}

// Logger returns the current diagnostic [slog.Logger].
func Logger() *slog.Logger {
	if l := sink.Load(); l != nil {
		return l
	}
	return defaultLogger()
}

// SetLogger replaces the diagnostic sink.
// Passing nil restores the environment-configured default.
// This is a global setting, so it affects every broadcaster in the process.
func SetLogger(logger *slog.Logger) {
	sink.Store(logger)
}

// Report sends an error to the diagnostic sink at error level.
// Additional attrs are passed to [slog.Logger.Error] as key-value pairs or [slog.Attr].
func Report(err error, attrs ...any) {
	if err == nil {
		return
	}
	args := make([]any, 0, len(attrs)+2)
	args = append(args, "error", err)
	args = append(args, attrs...)
	Logger().Error(reportMessage, args...)
}

// NewLogger creates a diagnostic logger writing to w, as described by cfg.
func NewLogger(cfg Config, w io.Writer) *slog.Logger {
	if cfg.Disabled || w == nil {
		w = io.Discard
	}
	opts := &slog.HandlerOptions{
		Level: cfg.Level,
	}
	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("component", "observe")
}
