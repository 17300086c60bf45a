// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Time is an opaque compositor timestamp in nanoseconds.
// Values come from the compositor and are monotonically non-decreasing.
// xrframe never synthesizes or adjusts a Time.
type Time int64

// Duration is a compositor duration in nanoseconds.
type Duration int64

// InfiniteDuration makes a wait block until the resource is available.
const InfiniteDuration Duration = math.MaxInt64

// FrameState is produced once per frame by WaitFrame.
type FrameState struct {
	// PredictedDisplayTime is when the frame being built is expected to be
	// displayed. It is echoed verbatim into FrameEndInfo.DisplayTime.
	PredictedDisplayTime Time

	// PredictedDisplayPeriod is the predicted interval between displayed frames.
	PredictedDisplayPeriod Duration

	// ShouldRender reports whether the application should render content.
	// When false, the acquire/release/end sequence must still run.
	ShouldRender bool
}

// SwapchainHandle is an opaque handle to one compositor swapchain.
// The zero value is not a valid handle.
type SwapchainHandle uint64

// SpaceHandle is an opaque handle to a compositor reference space.
type SpaceHandle uint64

// Pose is a rigid transform in a reference space.
type Pose struct {
	// Orientation is a unit quaternion stored as (x, y, z, w).
	Orientation f32.Vec4

	// Position is a translation in meters.
	Position f32.Vec3
}

// IdentityPose returns the pose with no rotation and no translation.
func IdentityPose() Pose {
	return Pose{Orientation: f32.Vec4{0, 0, 0, 1}}
}

// Fov is an asymmetric field of view. Angles are in radians;
// left and down are typically negative.
type Fov struct {
	AngleLeft  float32
	AngleRight float32
	AngleUp    float32
	AngleDown  float32
}

// View is the pose and field of view of one eye or camera at a given time.
type View struct {
	Pose Pose
	Fov  Fov
}

// Offset2D is an integer pixel offset.
type Offset2D struct {
	X, Y int32
}

// Extent2D is an integer pixel size.
type Extent2D struct {
	Width, Height int32
}

// Rect2D is an integer pixel rectangle.
type Rect2D struct {
	Offset Offset2D
	Extent Extent2D
}

// SwapchainSubImage references the region of a swapchain image that holds
// a view's content.
type SwapchainSubImage struct {
	Swapchain       SwapchainHandle
	ImageRect       Rect2D
	ImageArrayIndex uint32
}

// ProjectionView is the per-view entry of a ProjectionLayer.
type ProjectionView struct {
	Pose     Pose
	Fov      Fov
	SubImage SwapchainSubImage
}
