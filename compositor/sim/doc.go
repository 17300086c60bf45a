// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package sim provides a deterministic software compositor.
//
// Session implements compositor.Session without a headset: a virtual
// display clock advances by one display period per WaitFrame, swapchain
// images rotate through bounded lock-free rings, and every EndFrame
// submission is validated and recorded. Results can be injected per
// operation to reproduce compositor failure modes (discarded frames,
// refused acquires, stuck image waits).
//
// Space is a matching SpaceResolver that produces a gently swaying
// stereo head pose as a pure function of display time.
//
// Typical use:
//
//	sess, _ := sim.NewSession(xrframe.NullDeviceHandle{}, sim.DefaultConfig())
//	descs, _ := sess.ViewDescriptors(2, 1440, 1584)
//	sched, _ := xrframe.NewFrameScheduler(sess, sim.NewSpace(), descs)
package sim
