// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sim

import (
	"errors"
	"fmt"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/xrframe/compositor"
	"github.com/gogpu/xrframe/swapchain"
)

// sessionCounter is the global monotonic counter for session serials.
var sessionCounter atomix.Uint32

// nextSerial returns the next monotonically increasing session serial.
func nextSerial() uint32 {
	return sessionCounter.Add(1)
}

// Submission is a recorded EndFrame call that the compositor accepted.
type Submission struct {
	// Frame is the 1-based number of the WaitFrame the submission belongs to.
	Frame uint64

	DisplayTime compositor.Time
	BlendMode   compositor.EnvironmentBlendMode
	LayerCount  int

	// Views is a copy of the projection layer's views, if any.
	Views []compositor.ProjectionView
}

// faultKey selects which calls an injected result applies to.
// A zero swapchain matches calls on any swapchain.
type faultKey struct {
	op compositor.Op
	sc compositor.SwapchainHandle
}

// Session is a simulated compositor session. It implements
// compositor.Session and is not safe for concurrent use.
type Session struct {
	serial     uint32
	nextHandle atomix.Uint32

	cfg     Config
	format  gputypes.TextureFormat
	adapter gpucontext.AdapterInfo
	started time.Time

	frame          uint64
	predicted      compositor.Time
	shouldRender   bool
	waited         bool
	began          bool
	discardPending bool

	rings       map[compositor.SwapchainHandle]*imageRing
	faults      map[faultKey][]compositor.Result
	calls       map[compositor.Op]int
	submissions []Submission
}

// NewSession creates a simulated session bound to the host device.
// The device's surface format becomes the swapchain image format; a
// headless provider falls back to RGBA8UnormSrgb.
func NewSession(provider gpucontext.DeviceProvider, cfg Config) (*Session, error) {
	if provider == nil {
		return nil, errors.New("sim: nil device provider")
	}
	cfg.Validate()

	format := provider.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatRGBA8UnormSrgb
	}

	return &Session{
		serial:       nextSerial(),
		cfg:          cfg,
		format:       format,
		adapter:      provider.AdapterInfo(),
		started:      time.Now(),
		predicted:    cfg.StartTime,
		shouldRender: true,
		rings:        make(map[compositor.SwapchainHandle]*imageRing),
		faults:       make(map[faultKey][]compositor.Result),
		calls:        make(map[compositor.Op]int),
	}, nil
}

// Serial returns the serial number of this session.
func (s *Session) Serial() uint32 { return s.serial }

// Format returns the swapchain image format.
func (s *Session) Format() gputypes.TextureFormat { return s.format }

// AdapterInfo returns the adapter metadata of the bound device.
func (s *Session) AdapterInfo() gpucontext.AdapterInfo { return s.adapter }

// Config returns the validated configuration.
func (s *Session) Config() Config { return s.cfg }

// CreateSwapchain creates a swapchain with Config.ImageCount images.
func (s *Session) CreateSwapchain(width, height uint32) (compositor.SwapchainHandle, error) {
	if width == 0 || height == 0 {
		return 0, fmt.Errorf("sim: invalid swapchain size %dx%d", width, height)
	}
	h := compositor.SwapchainHandle(uint64(s.serial)<<32 | uint64(s.nextHandle.Add(1)))
	s.rings[h] = newImageRing(width, height, s.cfg.ImageCount, s.cfg.ImageReadyPolls)
	return h, nil
}

// ViewDescriptors creates one swapchain per view and describes them for
// swapchain.NewManager.
func (s *Session) ViewDescriptors(views int, width, height uint32) ([]swapchain.ViewDescriptor, error) {
	if views < 1 {
		return nil, fmt.Errorf("sim: invalid view count %d", views)
	}
	descs := make([]swapchain.ViewDescriptor, views)
	for i := range descs {
		h, err := s.CreateSwapchain(width, height)
		if err != nil {
			return nil, err
		}
		descs[i] = swapchain.ViewDescriptor{Handle: h, Width: width, Height: height, Format: s.format}
	}
	return descs, nil
}

// MirrorSurfaceConfiguration returns the surface configuration of a
// desktop window mirroring one view in the given blend mode.
func (s *Session) MirrorSurfaceConfiguration(mode compositor.EnvironmentBlendMode, width, height uint32) gputypes.SurfaceConfiguration {
	return gputypes.SurfaceConfiguration{
		Usage:                      gputypes.TextureUsageRenderAttachment,
		Format:                     s.format,
		Width:                      width,
		Height:                     height,
		PresentMode:                gputypes.PresentModeFifo,
		DesiredMaximumFrameLatency: 2,
		AlphaMode:                  mode.AlphaMode(),
	}
}

// SetShouldRender sets the ShouldRender flag returned by later WaitFrame calls.
func (s *Session) SetShouldRender(v bool) { s.shouldRender = v }

// Inject queues results returned, one per call, by the next calls of op
// instead of the simulated outcome.
func (s *Session) Inject(op compositor.Op, results ...compositor.Result) {
	s.InjectSwapchain(op, 0, results...)
}

// InjectSwapchain is like Inject but only applies to calls on sc.
func (s *Session) InjectSwapchain(op compositor.Op, sc compositor.SwapchainHandle, results ...compositor.Result) {
	k := faultKey{op: op, sc: sc}
	s.faults[k] = append(s.faults[k], results...)
}

// takeFault pops the next injected result for op on sc.
func (s *Session) takeFault(op compositor.Op, sc compositor.SwapchainHandle) (compositor.Result, bool) {
	for _, k := range [...]faultKey{{op: op, sc: sc}, {op: op}} {
		if q := s.faults[k]; len(q) > 0 {
			s.faults[k] = q[1:]
			return q[0], true
		}
		if sc == 0 {
			break
		}
	}
	return 0, false
}

// Calls returns how many times op was called.
func (s *Session) Calls(op compositor.Op) int { return s.calls[op] }

// FrameCount returns the number of frames granted by WaitFrame.
func (s *Session) FrameCount() uint64 { return s.frame }

// Submissions returns the accepted EndFrame submissions in order.
func (s *Session) Submissions() []Submission { return s.submissions }

// HeldImages returns how many swapchains currently hold an acquired image.
func (s *Session) HeldImages() int {
	n := 0
	for _, r := range s.rings {
		if r.holding {
			n++
		}
	}
	return n
}

// WaitFrame implements compositor.Session.
//
// An injected failure leaves the clock untouched. An injected success
// code such as SessionLossPending is returned with the next frame state.
func (s *Session) WaitFrame() (compositor.FrameState, compositor.Result) {
	s.calls[compositor.OpWaitFrame]++
	r, injected := s.takeFault(compositor.OpWaitFrame, 0)
	if injected && !r.Succeeded() {
		return compositor.FrameState{}, r
	}
	if !injected {
		r = compositor.Success
	}

	s.frame++
	s.predicted = s.cfg.StartTime + compositor.Time(s.frame)*compositor.Time(s.cfg.DisplayPeriod)
	s.waited = true

	if s.cfg.Realtime {
		target := s.started.Add(time.Duration(s.frame) * time.Duration(s.cfg.DisplayPeriod))
		if d := time.Until(target); d > 0 {
			time.Sleep(d)
		}
	}

	return compositor.FrameState{
		PredictedDisplayTime:   s.predicted,
		PredictedDisplayPeriod: s.cfg.DisplayPeriod,
		ShouldRender:           s.shouldRender,
	}, r
}

// BeginFrame implements compositor.Session.
//
// Beginning a frame while the previous one is still open discards the
// previous frame and returns FrameDiscarded.
func (s *Session) BeginFrame() compositor.Result {
	s.calls[compositor.OpBeginFrame]++
	r, injected := s.takeFault(compositor.OpBeginFrame, 0)
	if !injected {
		switch {
		case !s.waited:
			r = compositor.ErrorCallOrderInvalid
		case s.began:
			r = compositor.FrameDiscarded
		default:
			r = compositor.Success
		}
	}
	if r.Succeeded() {
		s.waited = false
		s.began = true
	}
	if r == compositor.FrameDiscarded {
		s.discardPending = true
	}
	return r
}

// EndFrame implements compositor.Session.
//
// A frame whose BeginFrame reported FrameDiscarded ends with
// ErrorValidationFailure. Accepted submissions are recorded.
func (s *Session) EndFrame(info *compositor.FrameEndInfo) compositor.Result {
	s.calls[compositor.OpEndFrame]++
	if r, ok := s.takeFault(compositor.OpEndFrame, 0); ok {
		s.closeFrame()
		return r
	}
	if !s.began {
		return compositor.ErrorCallOrderInvalid
	}
	if s.discardPending {
		s.closeFrame()
		return compositor.ErrorValidationFailure
	}
	defer s.closeFrame()

	if r := s.validate(info); r != compositor.Success {
		return r
	}

	sub := Submission{
		Frame:       s.frame,
		DisplayTime: info.DisplayTime,
		BlendMode:   info.BlendMode,
		LayerCount:  len(info.Layers),
	}
	for _, l := range info.Layers {
		if pl, ok := l.(*compositor.ProjectionLayer); ok {
			sub.Views = append(sub.Views, pl.Views...)
		}
	}
	s.submissions = append(s.submissions, sub)
	return compositor.Success
}

// validate checks an EndFrame submission against the session state.
func (s *Session) validate(info *compositor.FrameEndInfo) compositor.Result {
	if info == nil {
		return compositor.ErrorValidationFailure
	}
	if info.DisplayTime != s.predicted {
		return compositor.ErrorTimeInvalid
	}
	if !s.cfg.supportsBlendMode(info.BlendMode) {
		return compositor.ErrorEnvironmentBlendModeUnsupported
	}
	for _, l := range info.Layers {
		pl, ok := l.(*compositor.ProjectionLayer)
		if !ok {
			continue
		}
		for _, v := range pl.Views {
			ring, ok := s.rings[v.SubImage.Swapchain]
			if !ok {
				return compositor.ErrorHandleInvalid
			}
			if ring.holding || !ring.releasedInFrame {
				return compositor.ErrorLayerInvalid
			}
			if !ring.contains(v.SubImage.ImageRect) {
				return compositor.ErrorSwapchainRectInvalid
			}
		}
	}
	return compositor.Success
}

// closeFrame ends the open frame. Images must be released again in the
// next frame before they can be submitted.
func (s *Session) closeFrame() {
	s.began = false
	s.discardPending = false
	for _, r := range s.rings {
		r.releasedInFrame = false
	}
}

// AcquireImage implements compositor.Session.
func (s *Session) AcquireImage(sc compositor.SwapchainHandle) (uint32, compositor.Result) {
	s.calls[compositor.OpAcquireImage]++
	ring, ok := s.rings[sc]
	if !ok {
		return 0, compositor.ErrorHandleInvalid
	}
	if r, ok := s.takeFault(compositor.OpAcquireImage, sc); ok {
		return 0, r
	}
	return ring.acquire()
}

// WaitImage implements compositor.Session. The wait polls the image with
// adaptive backoff until it is writable or the timeout elapses.
func (s *Session) WaitImage(sc compositor.SwapchainHandle, timeout compositor.Duration) compositor.Result {
	s.calls[compositor.OpWaitImage]++
	ring, ok := s.rings[sc]
	if !ok {
		return compositor.ErrorHandleInvalid
	}
	if r, ok := s.takeFault(compositor.OpWaitImage, sc); ok {
		return r
	}
	if !ring.holding {
		return compositor.ErrorCallOrderInvalid
	}

	start := time.Now()
	var bo iox.Backoff
	for {
		err := ring.poll()
		if err == nil {
			break
		}
		if !iox.IsWouldBlock(err) {
			return compositor.ErrorRuntimeFailure
		}
		if timeout != compositor.InfiniteDuration && time.Since(start) >= time.Duration(timeout) {
			return compositor.TimeoutExpired
		}
		bo.Wait()
	}
	return compositor.Success
}

// ReleaseImage implements compositor.Session.
func (s *Session) ReleaseImage(sc compositor.SwapchainHandle) compositor.Result {
	s.calls[compositor.OpReleaseImage]++
	ring, ok := s.rings[sc]
	if !ok {
		return compositor.ErrorHandleInvalid
	}
	if r, ok := s.takeFault(compositor.OpReleaseImage, sc); ok {
		return r
	}
	return ring.release()
}

// Ensure Session implements compositor.Session.
var _ compositor.Session = (*Session)(nil)
