// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package composition

import (
	"testing"

	"github.com/gogpu/xrframe/compositor"
)

func projectionView(sc compositor.SwapchainHandle) compositor.ProjectionView {
	return compositor.ProjectionView{
		Pose: compositor.IdentityPose(),
		Fov:  compositor.Fov{AngleLeft: -0.8, AngleRight: 0.8, AngleUp: 0.8, AngleDown: -0.8},
		SubImage: compositor.SwapchainSubImage{
			Swapchain: sc,
			ImageRect: compositor.Rect2D{Extent: compositor.Extent2D{Width: 64, Height: 32}},
		},
	}
}

func TestLayerBuilderEmpty(t *testing.T) {
	b := NewLayerBuilder()
	b.Reset(2)

	layer := b.Finalize()
	if layer == nil {
		t.Fatal("Finalize() = nil, want a layer with zero views")
	}
	if len(layer.Views) != 0 {
		t.Errorf("len(Views) = %d, want 0", len(layer.Views))
	}
	if layer.LayerType() != compositor.LayerTypeProjection {
		t.Errorf("LayerType() = %v, want Projection", layer.LayerType())
	}
}

func TestLayerBuilderRecord(t *testing.T) {
	b := NewLayerBuilder()
	b.SetSpace(7)
	b.Reset(2)

	if err := b.Record(1, projectionView(21)); err != nil {
		t.Fatalf("Record(1) error = %v", err)
	}
	if err := b.Record(0, projectionView(20)); err != nil {
		t.Fatalf("Record(0) error = %v", err)
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}

	layer := b.Finalize()
	if layer.Space != 7 {
		t.Errorf("Space = %d, want 7", layer.Space)
	}
	if len(layer.Views) != 2 {
		t.Fatalf("len(Views) = %d, want 2", len(layer.Views))
	}
	// Views come out in view-index order regardless of record order.
	if layer.Views[0].SubImage.Swapchain != 20 || layer.Views[1].SubImage.Swapchain != 21 {
		t.Errorf("Views swapchains = %d, %d; want 20, 21",
			layer.Views[0].SubImage.Swapchain, layer.Views[1].SubImage.Swapchain)
	}
}

func TestLayerBuilderSkippedView(t *testing.T) {
	b := NewLayerBuilder()
	b.Reset(2)

	if err := b.Record(0, projectionView(20)); err != nil {
		t.Fatalf("Record(0) error = %v", err)
	}
	if !b.Written(0) || b.Written(1) {
		t.Errorf("Written = %v, %v; want true, false", b.Written(0), b.Written(1))
	}

	layer := b.Finalize()
	if len(layer.Views) != 1 {
		t.Fatalf("len(Views) = %d, want 1", len(layer.Views))
	}
	if layer.Views[0].SubImage.Swapchain != 20 {
		t.Errorf("Views[0] swapchain = %d, want 20", layer.Views[0].SubImage.Swapchain)
	}
}

func TestLayerBuilderRecordTwiceOverwrites(t *testing.T) {
	b := NewLayerBuilder()
	b.Reset(1)

	_ = b.Record(0, projectionView(1))
	_ = b.Record(0, projectionView(2))

	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
	if got := b.Finalize().Views[0].SubImage.Swapchain; got != 2 {
		t.Errorf("swapchain = %d, want 2", got)
	}
}

func TestLayerBuilderOutOfRange(t *testing.T) {
	b := NewLayerBuilder()
	b.Reset(2)

	for _, i := range []int{-1, 2, 10} {
		if err := b.Record(i, projectionView(1)); err == nil {
			t.Errorf("Record(%d) should fail", i)
		}
	}
	if b.Written(-1) || b.Written(5) {
		t.Error("Written() out of range should be false")
	}
}

func TestLayerBuilderResetClears(t *testing.T) {
	b := NewLayerBuilder()
	b.Reset(2)
	_ = b.Record(0, projectionView(1))
	_ = b.Record(1, projectionView(2))
	_ = b.Finalize()

	b.Reset(2)
	if b.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", b.Len())
	}
	if b.Written(0) || b.Written(1) {
		t.Error("Written() after Reset should be false")
	}
	if n := len(b.Finalize().Views); n != 0 {
		t.Errorf("len(Views) after Reset = %d, want 0", n)
	}
}

func TestLayerBuilderArenaReuse(t *testing.T) {
	b := NewLayerBuilder()
	b.Reset(2)
	_ = b.Record(0, projectionView(1))
	first := &b.views[0]

	b.Reset(2)
	_ = b.Record(0, projectionView(2))
	if &b.views[0] != first {
		t.Error("arena reallocated although the view count did not change")
	}

	b.Reset(3)
	_ = b.Record(2, projectionView(3))
	if len(b.views) != 3 {
		t.Errorf("arena length = %d, want 3 after view count change", len(b.views))
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}

func TestLayerBuilderSteadyStateAllocs(t *testing.T) {
	b := NewLayerBuilder()
	b.Reset(2)
	_ = b.Record(0, projectionView(1))
	_ = b.Record(1, projectionView(2))
	_ = b.Finalize()

	allocs := testing.AllocsPerRun(100, func() {
		b.Reset(2)
		_ = b.Record(0, projectionView(1))
		_ = b.Record(1, projectionView(2))
		_ = b.Finalize()
	})
	if allocs != 0 {
		t.Errorf("steady-state frame allocates %v times, want 0", allocs)
	}
}
