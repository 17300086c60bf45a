// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import "github.com/gogpu/gputypes"

// EnvironmentBlendMode specifies how rendered content is combined with the
// real-world environment by the display.
type EnvironmentBlendMode uint32

const (
	// BlendModeOpaque replaces the environment (VR headsets).
	BlendModeOpaque EnvironmentBlendMode = 1

	// BlendModeAdditive adds rendered light to the environment
	// (optical see-through displays).
	BlendModeAdditive EnvironmentBlendMode = 2

	// BlendModeAlphaBlend blends rendered content over camera passthrough
	// using the image's alpha channel.
	BlendModeAlphaBlend EnvironmentBlendMode = 3
)

// String returns the blend mode name.
func (m EnvironmentBlendMode) String() string {
	switch m {
	case BlendModeOpaque:
		return "Opaque"
	case BlendModeAdditive:
		return "Additive"
	case BlendModeAlphaBlend:
		return "AlphaBlend"
	default:
		return "Unknown"
	}
}

// AlphaMode returns the surface alpha mode that previews this blend mode
// correctly on a desktop mirror window. Additive displays ignore alpha.
func (m EnvironmentBlendMode) AlphaMode() gputypes.CompositeAlphaMode {
	switch m {
	case BlendModeAlphaBlend:
		return gputypes.CompositeAlphaModePremultiplied
	case BlendModeOpaque, BlendModeAdditive:
		return gputypes.CompositeAlphaModeOpaque
	default:
		return gputypes.CompositeAlphaModeAuto
	}
}
