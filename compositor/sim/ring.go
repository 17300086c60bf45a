// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sim

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"

	"github.com/gogpu/xrframe/compositor"
)

// ringCapacity bounds the free-image queue of every swapchain.
// Config.Validate clamps ImageCount to it.
const ringCapacity = 8

// imageRing is the image rotation of one simulated swapchain.
//
// Free image indices live in a bounded SPSC queue: AcquireImage dequeues
// the oldest free image and ReleaseImage enqueues it again. At most one
// image is held at a time.
type imageRing struct {
	width  uint32
	height uint32
	count  int

	free lfq.SPSC[uint32]

	holding    bool
	held       uint32
	pollsLeft  int
	readyPolls int

	// releasedInFrame is set by release and cleared when the frame closes.
	releasedInFrame bool
}

// newImageRing creates a ring with count free images.
func newImageRing(width, height uint32, count, readyPolls int) *imageRing {
	r := &imageRing{
		width:      width,
		height:     height,
		count:      count,
		readyPolls: readyPolls,
	}
	r.free.Init(ringCapacity)
	for i := 0; i < count; i++ {
		idx := uint32(i) //nolint:gosec // G115: count is a small image count
		_ = r.free.Enqueue(&idx)
	}
	return r
}

// acquire takes the next free image.
func (r *imageRing) acquire() (uint32, compositor.Result) {
	if r.holding {
		return 0, compositor.ErrorCallOrderInvalid
	}
	idx, err := r.free.Dequeue()
	if err != nil {
		return 0, compositor.ErrorCallOrderInvalid
	}
	r.holding = true
	r.held = idx
	r.pollsLeft = r.readyPolls
	return idx, compositor.Success
}

// poll reports whether the held image is writable.
// It returns iox.ErrWouldBlock while the simulated GPU still owns it.
func (r *imageRing) poll() error {
	if r.pollsLeft > 0 {
		r.pollsLeft--
		return iox.ErrWouldBlock
	}
	return nil
}

// release returns the held image to the free queue.
func (r *imageRing) release() compositor.Result {
	if !r.holding {
		return compositor.ErrorCallOrderInvalid
	}
	idx := r.held
	if err := r.free.Enqueue(&idx); err != nil {
		return compositor.ErrorRuntimeFailure
	}
	r.holding = false
	r.releasedInFrame = true
	return compositor.Success
}

// contains reports whether rect lies inside the image.
func (r *imageRing) contains(rect compositor.Rect2D) bool {
	if rect.Offset.X < 0 || rect.Offset.Y < 0 || rect.Extent.Width <= 0 || rect.Extent.Height <= 0 {
		return false
	}
	return int64(rect.Offset.X)+int64(rect.Extent.Width) <= int64(r.width) &&
		int64(rect.Offset.Y)+int64(rect.Extent.Height) <= int64(r.height)
}
