// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestResultSucceeded(t *testing.T) {
	tests := []struct {
		r    Result
		want bool
	}{
		{Success, true},
		{TimeoutExpired, true},
		{FrameDiscarded, true},
		{SessionNotFocused, true},
		{ErrorValidationFailure, false},
		{ErrorSessionLost, false},
		{ErrorCallOrderInvalid, false},
	}
	for _, tt := range tests {
		if got := tt.r.Succeeded(); got != tt.want {
			t.Errorf("%v.Succeeded() = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestResultString(t *testing.T) {
	if got := FrameDiscarded.String(); got != "FrameDiscarded" {
		t.Errorf("FrameDiscarded.String() = %q", got)
	}
	if got := ErrorValidationFailure.String(); got != "ErrorValidationFailure" {
		t.Errorf("ErrorValidationFailure.String() = %q", got)
	}
	if got := Result(-999).String(); got != "Result(-999)" {
		t.Errorf("Result(-999).String() = %q, want Result(-999)", got)
	}
}

func TestResultErr(t *testing.T) {
	if err := Success.Err(OpBeginFrame); err != nil {
		t.Errorf("Success.Err() = %v, want nil", err)
	}

	err := FrameDiscarded.Err(OpBeginFrame)
	var re *ResultError
	if !errors.As(err, &re) {
		t.Fatalf("FrameDiscarded.Err() = %T, want *ResultError", err)
	}
	if re.Op != OpBeginFrame || re.Result != FrameDiscarded {
		t.Errorf("ResultError = {%v %v}, want {BeginFrame FrameDiscarded}", re.Op, re.Result)
	}
	if got, want := err.Error(), "compositor: BeginFrame: FrameDiscarded"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestOpString(t *testing.T) {
	ops := map[Op]string{
		OpWaitFrame:    "WaitFrame",
		OpBeginFrame:   "BeginFrame",
		OpEndFrame:     "EndFrame",
		OpAcquireImage: "AcquireImage",
		OpWaitImage:    "WaitImage",
		OpReleaseImage: "ReleaseImage",
	}
	for op, want := range ops {
		if got := op.String(); got != want {
			t.Errorf("Op(%d).String() = %q, want %q", op, got, want)
		}
	}
}

func TestBlendModeAlphaMode(t *testing.T) {
	tests := []struct {
		mode EnvironmentBlendMode
		want gputypes.CompositeAlphaMode
	}{
		{BlendModeOpaque, gputypes.CompositeAlphaModeOpaque},
		{BlendModeAdditive, gputypes.CompositeAlphaModeOpaque},
		{BlendModeAlphaBlend, gputypes.CompositeAlphaModePremultiplied},
		{EnvironmentBlendMode(0), gputypes.CompositeAlphaModeAuto},
	}
	for _, tt := range tests {
		if got := tt.mode.AlphaMode(); got != tt.want {
			t.Errorf("%v.AlphaMode() = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestProjectionLayerType(t *testing.T) {
	var l Layer = &ProjectionLayer{}
	if l.LayerType() != LayerTypeProjection {
		t.Errorf("LayerType() = %v, want Projection", l.LayerType())
	}
	if LayerTypeQuad.String() != "Quad" {
		t.Errorf("LayerTypeQuad.String() = %q", LayerTypeQuad.String())
	}
}

func TestIdentityPose(t *testing.T) {
	p := IdentityPose()
	if p.Orientation[3] != 1 {
		t.Errorf("Orientation.w = %v, want 1", p.Orientation[3])
	}
	for i := 0; i < 3; i++ {
		if p.Orientation[i] != 0 || p.Position[i] != 0 {
			t.Errorf("IdentityPose component %d not zero: %v %v", i, p.Orientation, p.Position)
		}
	}
}
