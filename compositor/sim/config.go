// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sim

import (
	"slices"

	"github.com/gogpu/xrframe/compositor"
)

// Config holds the behavior of a simulated compositor session.
type Config struct {
	// DisplayPeriod is the interval between predicted display times.
	DisplayPeriod compositor.Duration

	// StartTime is the predicted display time of frame zero.
	// The first WaitFrame returns StartTime + DisplayPeriod.
	StartTime compositor.Time

	// ImageCount is the number of images in each swapchain, at most 8.
	ImageCount int

	// ImageReadyPolls is how many readiness polls an acquired image needs
	// before it becomes writable. Zero means immediately writable.
	ImageReadyPolls int

	// BlendModes lists the supported environment blend modes.
	BlendModes []compositor.EnvironmentBlendMode

	// Realtime makes WaitFrame sleep until the wall-clock time of the
	// predicted frame, measured from session creation.
	Realtime bool
}

// DefaultConfig returns a 90 Hz opaque headset configuration.
func DefaultConfig() Config {
	return Config{
		DisplayPeriod:   11_111_111,
		StartTime:       1_000_000_000,
		ImageCount:      3,
		ImageReadyPolls: 0,
		BlendModes:      []compositor.EnvironmentBlendMode{compositor.BlendModeOpaque},
		Realtime:        false,
	}
}

// Validate clamps values to usable ranges.
func (c *Config) Validate() {
	if c.DisplayPeriod <= 0 {
		c.DisplayPeriod = 11_111_111
	}
	if c.StartTime < 0 {
		c.StartTime = 0
	}
	if c.ImageCount < 1 {
		c.ImageCount = 3
	}
	if c.ImageCount > ringCapacity {
		c.ImageCount = ringCapacity
	}
	if c.ImageReadyPolls < 0 {
		c.ImageReadyPolls = 0
	}
	if len(c.BlendModes) == 0 {
		c.BlendModes = []compositor.EnvironmentBlendMode{compositor.BlendModeOpaque}
	}
}

// supportsBlendMode reports whether m is listed in BlendModes.
func (c *Config) supportsBlendMode(m compositor.EnvironmentBlendMode) bool {
	return slices.Contains(c.BlendModes, m)
}
