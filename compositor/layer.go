// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

// LayerType identifies the kind of a composition layer.
type LayerType uint8

const (
	// LayerTypeProjection is a layer of per-view perspective-projected images.
	LayerTypeProjection LayerType = iota + 1

	// LayerTypeQuad is a flat quad placed in a reference space.
	LayerTypeQuad
)

// String returns the layer type name.
func (t LayerType) String() string {
	switch t {
	case LayerTypeProjection:
		return "Projection"
	case LayerTypeQuad:
		return "Quad"
	default:
		return "Unknown"
	}
}

// Layer is a composition layer header submitted with EndFrame.
type Layer interface {
	LayerType() LayerType
}

// ProjectionLayer holds one ProjectionView per rendered view.
// A layer with zero views is valid and means nothing was rendered.
type ProjectionLayer struct {
	// Space is the reference space the view poses are expressed in.
	Space SpaceHandle

	// Views are the per-view entries in view-index order.
	Views []ProjectionView
}

// LayerType implements Layer.
func (*ProjectionLayer) LayerType() LayerType { return LayerTypeProjection }

// QuadLayer is a flat image placed in space.
// xrframe never submits one; it exists so compositors can switch on the
// full set of layer kinds.
type QuadLayer struct {
	Space    SpaceHandle
	Pose     Pose
	SubImage SwapchainSubImage
	Width    float32
	Height   float32
}

// LayerType implements Layer.
func (*QuadLayer) LayerType() LayerType { return LayerTypeQuad }

// FrameEndInfo is the submission made by EndFrame.
type FrameEndInfo struct {
	// DisplayTime must equal the PredictedDisplayTime of the frame's FrameState.
	DisplayTime Time

	// BlendMode is the environment blend mode of the owning instance.
	BlendMode EnvironmentBlendMode

	// Layers are composited back to front.
	Layers []Layer
}

// Ensure layer types implement Layer.
var (
	_ Layer = (*ProjectionLayer)(nil)
	_ Layer = (*QuadLayer)(nil)
)
