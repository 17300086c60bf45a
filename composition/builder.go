// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package composition accumulates the per-view entries of a frame's
// projection layer and assembles the layer submitted at frame end.
package composition

import (
	"fmt"

	"github.com/gogpu/xrframe/compositor"
)

// LayerBuilder records one ProjectionView per view index during a frame
// and finalizes them into a single projection layer.
//
// Storage is a pair of arenas indexed by view index. They are reallocated
// only when the view count changes, so a steady-state frame loop does not
// allocate. LayerBuilder is not safe for concurrent use.
type LayerBuilder struct {
	viewCount int
	views     []compositor.ProjectionView
	written   []bool
	n         int

	// packed holds the finalized views in view-index order, without holes.
	packed []compositor.ProjectionView
	layer  compositor.ProjectionLayer
}

// NewLayerBuilder creates an empty builder.
func NewLayerBuilder() *LayerBuilder {
	return &LayerBuilder{}
}

// SetSpace sets the reference space of the finalized layer.
func (b *LayerBuilder) SetSpace(space compositor.SpaceHandle) {
	b.layer.Space = space
}

// Space returns the reference space of the finalized layer.
func (b *LayerBuilder) Space() compositor.SpaceHandle {
	return b.layer.Space
}

// Reset forgets all recorded views and sets the active view count for the
// next frame. Arenas are resized lazily by Record.
func (b *LayerBuilder) Reset(viewCount int) {
	if viewCount < 0 {
		viewCount = 0
	}
	b.viewCount = viewCount
	clear(b.written)
	b.n = 0
	b.layer.Views = nil
}

// Record stores v as the entry for viewIndex, replacing any earlier entry
// for the same index this frame.
func (b *LayerBuilder) Record(viewIndex int, v compositor.ProjectionView) error {
	if viewIndex < 0 || viewIndex >= b.viewCount {
		return fmt.Errorf("composition: view index %d out of range [0, %d)", viewIndex, b.viewCount)
	}
	if len(b.views) != b.viewCount {
		b.resize()
	}
	if !b.written[viewIndex] {
		b.written[viewIndex] = true
		b.n++
	}
	b.views[viewIndex] = v
	return nil
}

// resize reallocates the arenas for the active view count.
func (b *LayerBuilder) resize() {
	b.views = make([]compositor.ProjectionView, b.viewCount)
	b.written = make([]bool, b.viewCount)
	b.packed = make([]compositor.ProjectionView, 0, b.viewCount)
	b.n = 0
}

// Written reports whether viewIndex has an entry this frame.
func (b *LayerBuilder) Written(viewIndex int) bool {
	if viewIndex < 0 || viewIndex >= len(b.written) {
		return false
	}
	return b.written[viewIndex]
}

// Len returns the number of views recorded this frame.
func (b *LayerBuilder) Len() int {
	return b.n
}

// Finalize returns the frame's projection layer. Its Views hold exactly
// the recorded entries in view-index order; views that were never recorded
// are absent. With nothing recorded the layer has zero views.
//
// The returned layer is owned by the builder and valid until the next
// Reset or Finalize.
func (b *LayerBuilder) Finalize() *compositor.ProjectionLayer {
	b.packed = b.packed[:0]
	for i, ok := range b.written {
		if ok {
			b.packed = append(b.packed, b.views[i])
		}
	}
	b.layer.Views = b.packed
	return &b.layer
}
