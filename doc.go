// Package xrframe drives the per-frame synchronization between an
// application's render loop and an immersive compositor.
//
// # Overview
//
// Every displayed frame follows the same protocol: wait until the
// compositor grants a frame, begin it, acquire and wait on one swapchain
// image per view, render, release the images, and submit a projection
// layer stamped with the compositor's predicted display time.
// FrameScheduler owns that protocol and its state machine:
//
//	Idle → Waited → Began → Rendering → Ended
//
// The compositor itself, the swapchains and pose tracking are supplied
// by the host as capabilities: a compositor.Session, per-view
// swapchain.ViewDescriptor values and a SpaceResolver.
//
// # Quick Start
//
//	sched, err := xrframe.NewFrameScheduler(session, resolver, descs,
//	    xrframe.WithBlendMode(compositor.BlendModeOpaque))
//	if err != nil {
//	    return err
//	}
//	for running {
//	    if err := sched.BeginFrame(); err != nil && !errors.Is(err, xrframe.ErrPoseResolve) {
//	        return err
//	    }
//	    for i := range sched.NumViews() {
//	        if err := sched.AcquireView(i); err != nil {
//	            _ = sched.EndFrame() // image wait failed
//	            return err
//	        }
//	        if sched.ShouldRender() {
//	            // render view i
//	        }
//	        _ = sched.ReleaseView(i)
//	    }
//	    if err := sched.EndFrame(); err != nil {
//	        return err
//	    }
//	}
//
// EndFrame must be called after every BeginFrame, whatever BeginFrame
// returned. When ShouldRender is false only the rendering is skipped:
// every view is still acquired and released. Views still acquired at
// EndFrame are released there.
//
// # Errors
//
// Compositor results are classified per call. Benign results (a frame the
// compositor discarded) are counted and dropped. Soft failures (one view
// could not be acquired) leave the view out of the submitted layer. Other
// non-success results are reported to the WarningHandler. Only a failed
// wait on an acquired image is fatal: AcquireView returns an error
// matching swapchain.ErrImageWaitFailed.
//
// # Packages
//
//   - compositor: result codes, frame and layer types, the Session interface
//   - swapchain: per-view acquire, wait and release bookkeeping
//   - composition: per-frame projection layer assembly
//   - compositor/sim: a deterministic software compositor for tests and demos
//
// # Logging
//
// xrframe is silent by default. Call SetLogger to enable structured
// logging through log/slog.
package xrframe
