package logging

import (
	"context"
	"errors"
	"log/slog"
)

// Fanout returns a handler that forwards each record to every leg that
// accepts its level. A failing leg (the store handler during a database
// outage) never blocks the others, so stdout keeps the record either way.
func Fanout(legs ...slog.Handler) slog.Handler {
	return fanoutHandler(legs)
}

type fanoutHandler []slog.Handler

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	legs := make(fanoutHandler, len(f))
	for i, h := range f {
		legs[i] = h.WithAttrs(attrs)
	}
	return legs
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	legs := make(fanoutHandler, len(f))
	for i, h := range f {
		legs[i] = h.WithGroup(name)
	}
	return legs
}
