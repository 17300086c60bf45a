package xrframe

import (
	"log/slog"

	"github.com/gogpu/xrframe/compositor"
)

// Warning is a non-fatal compositor failure observed during a frame.
type Warning struct {
	// Frame is the 1-based number of the frame the failure belongs to.
	Frame uint64

	// Op is the compositor call that failed.
	Op compositor.Op

	// View is the view index for per-view calls, or -1.
	View int

	// Err describes the failure. For compositor results it is a
	// *compositor.ResultError.
	Err error
}

// WarningHandler receives warnings on the render thread.
// It must not call back into the FrameScheduler.
type WarningHandler func(Warning)

// Hooks are platform callbacks run by the FrameScheduler.
// Nil fields are skipped.
type Hooks struct {
	// BeginFrame runs at the start of BeginFrame, before the frame wait.
	BeginFrame func()

	// EndFrame runs at the end of EndFrame, after submission.
	EndFrame func()

	// PostFrame runs from FrameScheduler.PostFrame.
	PostFrame func()
}

func logWarning(w Warning) {
	Logger().Warn("xrframe: compositor warning",
		slog.Uint64("frame", w.Frame),
		slog.String("op", w.Op.String()),
		slog.Int("view", w.View),
		slog.Any("err", w.Err))
}

func runHook(f func()) {
	if f != nil {
		f()
	}
}
