// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package swapchain

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/xrframe/compositor"
)

// ViewDescriptor describes the swapchain backing one view.
// Swapchains are created by the host; the descriptor only carries what the
// frame loop needs to acquire images and describe them in a layer.
type ViewDescriptor struct {
	// Handle is the compositor swapchain for this view. Must be non-zero.
	Handle compositor.SwapchainHandle

	// Width is the image width in pixels. Must be non-zero.
	Width uint32

	// Height is the image height in pixels. Must be non-zero.
	Height uint32

	// Format is the image pixel format.
	Format gputypes.TextureFormat
}

// View is the acquisition state of one view's swapchain.
//
// A View is acquired at most once between releases. Only Manager mutates it.
type View struct {
	handle           compositor.SwapchainHandle
	width            uint32
	height           uint32
	format           gputypes.TextureFormat
	acquired         bool
	activeImageIndex uint32
}

// Handle returns the swapchain handle.
func (v *View) Handle() compositor.SwapchainHandle { return v.handle }

// Width returns the image width in pixels.
func (v *View) Width() uint32 { return v.width }

// Height returns the image height in pixels.
func (v *View) Height() uint32 { return v.height }

// Format returns the image pixel format.
func (v *View) Format() gputypes.TextureFormat { return v.format }

// Extent returns the image size as a single-layer extent.
func (v *View) Extent() gputypes.Extent3D {
	return gputypes.NewExtent2D(v.width, v.height)
}

// IsAcquired reports whether an image is currently acquired.
func (v *View) IsAcquired() bool { return v.acquired }

// ActiveImageIndex returns the index of the image returned by the last
// successful acquire. It is meaningful only while IsAcquired is true.
func (v *View) ActiveImageIndex() uint32 { return v.activeImageIndex }

// ImageRect returns the full-image rectangle used as the layer sub-image.
func (v *View) ImageRect() compositor.Rect2D {
	//nolint:gosec // G115: swapchain sizes are far below MaxInt32
	return compositor.Rect2D{
		Offset: compositor.Offset2D{X: 0, Y: 0},
		Extent: compositor.Extent2D{Width: int32(v.width), Height: int32(v.height)},
	}
}
