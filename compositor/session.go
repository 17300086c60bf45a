// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

// Session is the capability interface to a running compositor session.
//
// The host application implements Session over its compositor binding and
// passes it to xrframe. All calls are made from a single render thread in
// protocol order; implementations need not be safe for concurrent use.
//
// Example implementation over a native binding:
//
//	type nativeSession struct {
//	    handle C.XrSession
//	}
//
//	func (s *nativeSession) BeginFrame() compositor.Result {
//	    return compositor.Result(C.xrBeginFrame(s.handle, &beginInfo))
//	}
type Session interface {
	// WaitFrame blocks until the compositor grants the next frame and
	// returns its timing state.
	WaitFrame() (FrameState, Result)

	// BeginFrame opens the frame granted by the last WaitFrame.
	// FrameDiscarded is a success: the previous frame was dropped.
	BeginFrame() Result

	// EndFrame submits the frame's layers for display.
	EndFrame(info *FrameEndInfo) Result

	// AcquireImage acquires the next image of the swapchain and returns its
	// index in the swapchain's image array.
	AcquireImage(sc SwapchainHandle) (uint32, Result)

	// WaitImage blocks until the acquired image is ready for writing, or
	// until timeout elapses. InfiniteDuration never times out.
	WaitImage(sc SwapchainHandle, timeout Duration) Result

	// ReleaseImage hands the written image back to the compositor.
	ReleaseImage(sc SwapchainHandle) Result
}
