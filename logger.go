// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package aspect

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/aspect/input"
	"github.com/gogpu/aspect/trace"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. SetLogger may be called from any
// goroutine while the render thread logs.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for aspect and its sub-packages. By
// default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used by aspect:
//   - [slog.LevelDebug]: classifier transitions and traced frames
//   - [slog.LevelInfo]: device negotiation, hook installation
//   - [slog.LevelWarn]: failed hooks, capture errors
//
// Example:
//
//	aspect.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	trace.SetLogger(l)
	input.SetLogger(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
