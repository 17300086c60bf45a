package xrframe

import "errors"

var (
	// ErrInvalidState is returned when a frame operation is called in a
	// stage that does not allow it. The scheduler state is unchanged.
	ErrInvalidState = errors.New("xrframe: operation invalid in current frame stage")

	// ErrPoseResolve is returned by BeginFrame when the SpaceResolver fails
	// or returns the wrong number of views. The frame is still open and
	// EndFrame must be called.
	ErrPoseResolve = errors.New("xrframe: view pose resolution failed")

	// ErrViewOutOfRange is returned for a view index outside [0, NumViews).
	ErrViewOutOfRange = errors.New("xrframe: view index out of range")

	// ErrNilSession is returned by NewFrameScheduler for a nil session.
	ErrNilSession = errors.New("xrframe: nil compositor session")

	// ErrNilResolver is returned by NewFrameScheduler for a nil resolver.
	ErrNilResolver = errors.New("xrframe: nil space resolver")

	// ErrShutdown is returned by frame operations after Shutdown.
	ErrShutdown = errors.New("xrframe: scheduler shut down")
)
