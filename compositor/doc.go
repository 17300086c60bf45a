// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package compositor defines the vocabulary shared between xrframe and an
// immersive compositor: the Session capability interface, frame timing
// state, view poses, projection layers, and the compositor result codes.
//
// The compositor is always external. xrframe RECEIVES a Session from the
// host application (an OpenXR binding, a remote runtime, or the simulated
// compositor in package sim) and never creates or destroys one.
//
// # Call sequence
//
// One frame is a strict sequence on a single thread:
//
//	WaitFrame -> BeginFrame -> (AcquireImage -> WaitImage -> ReleaseImage) x views -> EndFrame
//
// WaitFrame and WaitImage with InfiniteDuration are the only blocking calls.
//
// # Results
//
// Every operation returns a Result. Non-negative results are successes,
// some of which carry a qualifier (FrameDiscarded, TimeoutExpired).
// Negative results are errors. Use Result.Err to turn a result into an
// error value that carries the failing operation.
package compositor
