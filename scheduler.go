package xrframe

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/xrframe/composition"
	"github.com/gogpu/xrframe/compositor"
	"github.com/gogpu/xrframe/swapchain"
)

// FrameStage is the position of the FrameScheduler in the frame protocol.
type FrameStage uint8

const (
	// StateIdle is the stage before the first frame.
	StateIdle FrameStage = iota

	// StateWaited is the stage after the compositor granted a frame.
	StateWaited

	// StateBegan is the stage after the frame was begun.
	StateBegan

	// StateRendering is the stage after the first AcquireView of the frame.
	StateRendering

	// StateEnded is the stage after the frame was submitted.
	StateEnded
)

// String returns the stage name.
func (s FrameStage) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateWaited:
		return "Waited"
	case StateBegan:
		return "Began"
	case StateRendering:
		return "Rendering"
	case StateEnded:
		return "Ended"
	default:
		return fmt.Sprintf("FrameStage(%d)", s)
	}
}

// Stats counts frame loop events since the scheduler was created.
type Stats struct {
	// Frames is the number of BeginFrame calls that opened a frame.
	Frames uint64

	// Discarded is the number of frames the compositor discarded at begin.
	Discarded uint64

	// Warnings is the number of warnings delivered to the WarningHandler.
	Warnings uint64

	// ForcedReleases is the number of views EndFrame had to release.
	ForcedReleases uint64

	// SkippedViews is the number of AcquireView calls that produced no
	// layer entry: the acquire was refused or poses were unavailable.
	SkippedViews uint64
}

// benignResults lists, per compositor call, the non-success results that
// are expected in normal operation and dropped silently. afterDiscard
// entries only apply in a frame whose begin was discarded.
//
// Matching is by exact result. Extend the table only for results a
// compositor is documented to return in a healthy frame loop.
var benignResults = [...]struct {
	op           compositor.Op
	result       compositor.Result
	afterDiscard bool
}{
	{op: compositor.OpBeginFrame, result: compositor.FrameDiscarded},
	{op: compositor.OpEndFrame, result: compositor.ErrorValidationFailure, afterDiscard: true},
}

// FrameScheduler runs the per-frame protocol against a compositor session.
//
// The zero value is not usable; create one with NewFrameScheduler.
// FrameScheduler is not safe for concurrent use: every call must come from
// the render thread, in program order.
type FrameScheduler struct {
	session  compositor.Session
	resolver SpaceResolver
	views    *swapchain.Manager
	layers   *composition.LayerBuilder
	opts     options

	stage     FrameStage
	frame     uint64
	state     compositor.FrameState
	viewCount int

	// poses is indexed by view index and refreshed once per BeginFrame.
	poses      []compositor.View
	posesValid bool
	discarded  bool

	layerSet []compositor.Layer
	endInfo  compositor.FrameEndInfo

	stats  Stats
	closed bool
}

// NewFrameScheduler creates a scheduler driving session, with one view per
// descriptor. All views are active until InitViews selects fewer.
func NewFrameScheduler(session compositor.Session, resolver SpaceResolver, descs []swapchain.ViewDescriptor, opts ...Option) (*FrameScheduler, error) {
	if session == nil {
		return nil, ErrNilSession
	}
	if resolver == nil {
		return nil, ErrNilResolver
	}
	views, err := swapchain.NewManager(session, descs)
	if err != nil {
		return nil, fmt.Errorf("xrframe: %w", err)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &FrameScheduler{
		session:  session,
		resolver: resolver,
		views:    views,
		layers:   composition.NewLayerBuilder(),
		opts:     o,
		layerSet: make([]compositor.Layer, 0, 1),
	}
	switch {
	case o.spaceSet:
		s.layers.SetSpace(o.space)
	default:
		if ls, ok := resolver.(LayerSpacer); ok {
			s.layers.SetSpace(ls.LayerSpace())
		}
	}
	if err := s.InitViews(views.NumViews()); err != nil {
		return nil, err
	}

	Logger().Info("xrframe: scheduler created",
		slog.Int("views", views.NumViews()),
		slog.String("blend", o.blendMode.String()))
	return s, nil
}

// InitViews sets the number of active views to n, in [1, total views].
// Views at index n and above are neither posed nor submitted.
// It is valid only between frames.
func (s *FrameScheduler) InitViews(n int) error {
	if s.closed {
		return ErrShutdown
	}
	if s.stage != StateIdle && s.stage != StateEnded {
		return fmt.Errorf("%w: InitViews in stage %v", ErrInvalidState, s.stage)
	}
	if n < 1 || n > s.views.NumViews() {
		return fmt.Errorf("%w: %d active views of %d", ErrViewOutOfRange, n, s.views.NumViews())
	}
	if n != len(s.poses) {
		s.poses = make([]compositor.View, n)
	}
	s.viewCount = n
	s.posesValid = false
	return nil
}

// NumViews returns the number of active views.
func (s *FrameScheduler) NumViews() int { return s.viewCount }

// View returns the swapchain view at index i, or nil if i is out of range.
func (s *FrameScheduler) View(i int) *swapchain.View { return s.views.View(i) }

// Stage returns the current frame stage.
func (s *FrameScheduler) Stage() FrameStage { return s.stage }

// FrameState returns the compositor frame state of the current frame.
func (s *FrameScheduler) FrameState() compositor.FrameState { return s.state }

// PredictedDisplayTime returns the display time the compositor predicted
// for the current frame.
func (s *FrameScheduler) PredictedDisplayTime() compositor.Time {
	return s.state.PredictedDisplayTime
}

// ShouldRender reports whether the compositor wants content this frame.
func (s *FrameScheduler) ShouldRender() bool { return s.state.ShouldRender }

// Stats returns a snapshot of the frame loop counters.
func (s *FrameScheduler) Stats() Stats { return s.stats }

// Device returns the device set with WithDevice, or nil.
func (s *FrameScheduler) Device() *Device { return s.opts.device }

// ViewPose returns the pose of view i resolved for the current frame.
func (s *FrameScheduler) ViewPose(i int) (compositor.Pose, error) {
	if i < 0 || i >= s.viewCount {
		return compositor.Pose{}, fmt.Errorf("%w: %d of %d", ErrViewOutOfRange, i, s.viewCount)
	}
	return s.poses[i].Pose, nil
}

// ViewFov returns the field of view of view i resolved for the current frame.
func (s *FrameScheduler) ViewFov(i int) (compositor.Fov, error) {
	if i < 0 || i >= s.viewCount {
		return compositor.Fov{}, fmt.Errorf("%w: %d of %d", ErrViewOutOfRange, i, s.viewCount)
	}
	return s.poses[i].Fov, nil
}

// BeginFrame waits for the compositor to grant a frame, begins it, and
// resolves the view poses for its predicted display time.
//
// Once BeginFrame passes the stage check the frame is open and EndFrame
// must be called, even when BeginFrame returns ErrPoseResolve. Non-success
// compositor results are reported as warnings, not errors. When the frame
// wait fails the previous display time is kept and ShouldRender is false.
func (s *FrameScheduler) BeginFrame() error {
	if s.closed {
		return ErrShutdown
	}
	if s.stage != StateIdle && s.stage != StateEnded {
		return fmt.Errorf("%w: BeginFrame in stage %v", ErrInvalidState, s.stage)
	}

	runHook(s.opts.hooks.BeginFrame)

	s.layerSet = s.layerSet[:0]
	s.layers.Reset(s.viewCount)
	s.posesValid = false
	s.discarded = false
	s.frame++
	s.stats.Frames++

	state, r := s.session.WaitFrame()
	if r.Succeeded() {
		s.state = state
	} else {
		s.state.ShouldRender = false
	}
	s.check(compositor.OpWaitFrame, -1, r)
	s.stage = StateWaited

	r = s.session.BeginFrame()
	if r == compositor.FrameDiscarded {
		s.discarded = true
		s.stats.Discarded++
	}
	s.check(compositor.OpBeginFrame, -1, r)
	s.stage = StateBegan

	Logger().Debug("xrframe: frame begun",
		slog.Uint64("frame", s.frame),
		slog.Int64("display_time", int64(s.state.PredictedDisplayTime)),
		slog.Bool("should_render", s.state.ShouldRender),
		slog.Bool("discarded", s.discarded))

	views, err := s.resolver.ResolvePoses(s.state.PredictedDisplayTime, s.viewCount)
	if err != nil {
		return fmt.Errorf("%w: frame %d: %w", ErrPoseResolve, s.frame, err)
	}
	if len(views) != s.viewCount {
		return fmt.Errorf("%w: frame %d: got %d views, want %d", ErrPoseResolve, s.frame, len(views), s.viewCount)
	}
	copy(s.poses, views)
	s.posesValid = true
	return nil
}

// AcquireView acquires the swapchain image of view i and waits until it
// is writable, then records the view in the frame's projection layer.
//
// A refused acquire is a warning: the view is left out of the layer and
// AcquireView returns nil. A failed wait on an acquired image returns an
// error matching swapchain.ErrImageWaitFailed; the frame cannot make
// progress, but EndFrame must still be called to release the image.
func (s *FrameScheduler) AcquireView(i int) error {
	if err := s.checkViewOp("AcquireView", i); err != nil {
		return err
	}
	s.stage = StateRendering

	acquired, err := s.views.Acquire(i)
	if !acquired {
		if errors.Is(err, swapchain.ErrAlreadyAcquired) {
			return err
		}
		s.warn(compositor.OpAcquireImage, i, err)
		s.stats.SkippedViews++
		return nil
	}
	if err != nil {
		return err
	}

	if !s.posesValid {
		s.stats.SkippedViews++
		Logger().Debug("xrframe: no pose for view, skipping layer entry",
			slog.Uint64("frame", s.frame), slog.Int("view", i))
		return nil
	}
	v := s.views.View(i)
	return s.layers.Record(i, compositor.ProjectionView{
		Pose: s.poses[i].Pose,
		Fov:  s.poses[i].Fov,
		SubImage: compositor.SwapchainSubImage{
			Swapchain: v.Handle(),
			ImageRect: v.ImageRect(),
		},
	})
}

// ReleaseView releases the image of view i once rendering into it is
// done. Releasing a view that holds no image does nothing. A rejected
// release is a warning; the view stays acquired and EndFrame retries it.
func (s *FrameScheduler) ReleaseView(i int) error {
	if err := s.checkViewOp("ReleaseView", i); err != nil {
		return err
	}
	if err := s.views.Release(i); err != nil {
		s.warn(compositor.OpReleaseImage, i, err)
	}
	return nil
}

// EndFrame releases every view still holding an image, then submits the
// frame's projection layer with the predicted display time of the frame.
//
// The submission always carries exactly one projection layer, possibly
// with zero views. Non-success compositor results are warnings.
func (s *FrameScheduler) EndFrame() error {
	if s.closed {
		return ErrShutdown
	}
	if s.stage != StateBegan && s.stage != StateRendering {
		return fmt.Errorf("%w: EndFrame in stage %v", ErrInvalidState, s.stage)
	}

	s.releaseAll()

	s.layerSet = append(s.layerSet[:0], s.layers.Finalize())
	s.endInfo = compositor.FrameEndInfo{
		DisplayTime: s.state.PredictedDisplayTime,
		BlendMode:   s.opts.blendMode,
		Layers:      s.layerSet,
	}
	r := s.session.EndFrame(&s.endInfo)
	s.check(compositor.OpEndFrame, -1, r)
	s.stage = StateEnded

	Logger().Debug("xrframe: frame ended",
		slog.Uint64("frame", s.frame),
		slog.Int("views", s.layers.Len()),
		slog.String("result", r.String()))

	runHook(s.opts.hooks.EndFrame)
	return nil
}

// PostFrame runs the post-frame hook. It is valid only after EndFrame.
func (s *FrameScheduler) PostFrame() error {
	if s.stage != StateEnded {
		return fmt.Errorf("%w: PostFrame in stage %v", ErrInvalidState, s.stage)
	}
	runHook(s.opts.hooks.PostFrame)
	return nil
}

// Shutdown releases every acquired image, drops per-frame state and shuts
// down the device set with WithDevice. An open frame is not submitted.
// Later frame operations return ErrShutdown.
func (s *FrameScheduler) Shutdown() {
	if s.closed {
		return
	}
	s.releaseAll()
	s.layers.Reset(0)
	s.layerSet = s.layerSet[:0]
	s.poses = nil
	s.posesValid = false
	s.stage = StateIdle
	s.closed = true
	if s.opts.device != nil {
		s.opts.device.Shutdown()
	}
	Logger().Info("xrframe: scheduler shut down", slog.Uint64("frames", s.stats.Frames))
}

// releaseAll releases every view still holding an image, once each.
func (s *FrameScheduler) releaseAll() {
	n := s.views.ReleaseAll(func(i int, err error) {
		s.warn(compositor.OpReleaseImage, i, err)
	})
	s.stats.ForcedReleases += uint64(n) //nolint:gosec // G115: count is non-negative
}

func (s *FrameScheduler) checkViewOp(op string, i int) error {
	if s.closed {
		return ErrShutdown
	}
	if s.stage != StateBegan && s.stage != StateRendering {
		return fmt.Errorf("%w: %s in stage %v", ErrInvalidState, op, s.stage)
	}
	if i < 0 || i >= s.viewCount {
		return fmt.Errorf("%w: %d of %d", ErrViewOutOfRange, i, s.viewCount)
	}
	return nil
}

// check reports r as a warning unless it is Success or benign.
func (s *FrameScheduler) check(op compositor.Op, view int, r compositor.Result) {
	if r == compositor.Success || s.benign(op, r) {
		return
	}
	s.warn(op, view, r.Err(op))
}

func (s *FrameScheduler) benign(op compositor.Op, r compositor.Result) bool {
	for _, b := range benignResults {
		if b.op == op && b.result == r && (!b.afterDiscard || s.discarded) {
			return true
		}
	}
	return false
}

func (s *FrameScheduler) warn(op compositor.Op, view int, err error) {
	s.stats.Warnings++
	s.opts.warn(Warning{Frame: s.frame, Op: op, View: view, Err: err})
}
