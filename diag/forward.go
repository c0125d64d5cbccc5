package diag

import (
	"context"
	"errors"
	"log/slog"
)

var _ slog.Handler = (*fanout)(nil)

// fanout passes every record to all of its handlers.
type fanout struct {
	handlers []slog.Handler
}

func (f *fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *fanout) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range f.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		errs = append(errs, h.Handle(ctx, record.Clone()))
	}
	return errors.Join(errs...)
}

func (f *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler {
		return h.WithAttrs(attrs)
	})
}

func (f *fanout) WithGroup(name string) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler {
		return h.WithGroup(name)
	})
}

func (f *fanout) each(fn func(h slog.Handler) slog.Handler) *fanout {
	handlers := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		handlers[i] = fn(h)
	}
	return &fanout{handlers: handlers}
}

// MergeHandlers creates a [slog.Handler] that passes each record to every given handler.
// Nil handlers are ignored.
func MergeHandlers(a, b slog.Handler, others ...slog.Handler) slog.Handler {
	f := new(fanout)
	for _, h := range append([]slog.Handler{a, b}, others...) {
		if h != nil {
			f.handlers = append(f.handlers, h)
		}
	}
	return f
}

// Forward sends diagnostics to handler in addition to the environment-configured logger.
// This is useful for embedding applications that want diagnostics in their own logs without losing the default output.
// Calling [SetLogger] afterward replaces both.
func Forward(handler slog.Handler, others ...slog.Handler) {
	SetLogger(slog.New(MergeHandlers(defaultLogger().Handler(), handler, others...)))
}
