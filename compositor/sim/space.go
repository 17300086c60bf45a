// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sim

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/xrframe/compositor"
)

// ErrSpaceUnavailable is returned by Space.ResolvePoses while tracking is lost.
var ErrSpaceUnavailable = errors.New("sim: space unavailable")

// Space resolves view poses of a head that sways about the vertical axis.
// Poses are a pure function of the display time.
type Space struct {
	// Handle is the reference space of the returned poses.
	Handle compositor.SpaceHandle

	// IPD is the distance between adjacent views in meters.
	IPD float32

	// EyeHeight is the height of the views above the floor in meters.
	EyeHeight float32

	// SwayAmplitude is the peak yaw in radians.
	SwayAmplitude float32

	// SwayPeriod is the duration of one full sway.
	SwayPeriod compositor.Duration

	// HalfFov is the symmetric half field of view in radians.
	HalfFov float32

	// TrackingLost makes ResolvePoses fail with ErrSpaceUnavailable.
	TrackingLost bool

	views []compositor.View
}

// NewSpace returns a space with typical headset parameters.
func NewSpace() *Space {
	return &Space{
		Handle:        1,
		IPD:           0.063,
		EyeHeight:     1.6,
		SwayAmplitude: 0.1,
		SwayPeriod:    4_000_000_000,
		HalfFov:       0.8,
	}
}

// LayerSpace returns the space the poses are expressed in.
func (s *Space) LayerSpace() compositor.SpaceHandle { return s.Handle }

// ResolvePoses returns viewCount views at time t, spread symmetrically
// around the head center along the head's local X axis.
//
// The returned slice is reused by the next call.
func (s *Space) ResolvePoses(t compositor.Time, viewCount int) ([]compositor.View, error) {
	if s.TrackingLost {
		return nil, ErrSpaceUnavailable
	}
	if viewCount < 1 {
		return nil, fmt.Errorf("sim: invalid view count %d", viewCount)
	}

	yaw := float32(0)
	if s.SwayPeriod > 0 {
		phase := float64(t%compositor.Time(s.SwayPeriod)) / float64(s.SwayPeriod)
		yaw = s.SwayAmplitude * float32(math.Sin(2*math.Pi*phase))
	}
	sinHalf, cosHalf := math.Sincos(float64(yaw) / 2)
	orientation := f32.Vec4{0, float32(sinHalf), 0, float32(cosHalf)}
	right := f32.Vec3{float32(math.Cos(float64(yaw))), 0, -float32(math.Sin(float64(yaw)))}

	if cap(s.views) < viewCount {
		s.views = make([]compositor.View, viewCount)
	}
	s.views = s.views[:viewCount]

	center := float32(viewCount-1) / 2
	for i := range s.views {
		offset := (float32(i) - center) * s.IPD
		s.views[i] = compositor.View{
			Pose: compositor.Pose{
				Orientation: orientation,
				Position:    f32.Vec3{right[0] * offset, s.EyeHeight, right[2] * offset},
			},
			Fov: compositor.Fov{
				AngleLeft:  -s.HalfFov,
				AngleRight: s.HalfFov,
				AngleUp:    s.HalfFov,
				AngleDown:  -s.HalfFov,
			},
		}
	}
	return s.views, nil
}
