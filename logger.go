package xrframe

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/xrframe/swapchain"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for xrframe and its sub-packages.
// By default, xrframe produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior.
//
// Log levels used by xrframe:
//   - [slog.LevelDebug]: per-frame diagnostics (display times, acquired images)
//   - [slog.LevelInfo]: lifecycle events (scheduler created, shutdown)
//   - [slog.LevelWarn]: non-success compositor results that do not stop the frame
//   - [slog.LevelError]: a failed wait on an acquired image
//
// Example:
//
//	xrframe.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	swapchain.SetLogger(l)
}

// Logger returns the current logger used by xrframe.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
