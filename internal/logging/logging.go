// Package logging holds the process-wide structured logger.
//
// Nothing is logged until Set is called; cmd/pixel-pirates installs a text
// handler on stderr at startup.
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// Set replaces the logger. Passing nil silences logging again.
func Set(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// L returns the current logger. Safe for concurrent use.
func L() *slog.Logger {
	return loggerPtr.Load()
}

// For returns the current logger tagged with a component name.
func For(component string) *slog.Logger {
	return L().With("component", component)
}
