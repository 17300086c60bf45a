package main

import (
	"errors"
	"testing"

	"github.com/gogpu/xrframe"
	"github.com/gogpu/xrframe/compositor"
	"github.com/gogpu/xrframe/compositor/sim"
	"github.com/gogpu/xrframe/swapchain"
)

func newDemoScheduler(t *testing.T, views int) (*sim.Session, *xrframe.FrameScheduler) {
	t.Helper()
	session, err := sim.NewSession(xrframe.NullDeviceHandle{}, sim.DefaultConfig())
	if err != nil {
		t.Fatalf("sim.NewSession() error = %v", err)
	}
	descs, err := session.ViewDescriptors(views, 64, 64)
	if err != nil {
		t.Fatalf("ViewDescriptors() error = %v", err)
	}
	sched, err := xrframe.NewFrameScheduler(session, sim.NewSpace(), descs)
	if err != nil {
		t.Fatalf("NewFrameScheduler() error = %v", err)
	}
	return session, sched
}

func TestRunFrameCyclesViewsWithoutRendering(t *testing.T) {
	session, sched := newDemoScheduler(t, 2)
	session.SetShouldRender(false)

	if err := runFrame(sched); err != nil {
		t.Fatalf("runFrame() = %v", err)
	}

	tests := []struct {
		op   compositor.Op
		want int
	}{
		{compositor.OpAcquireImage, 2},
		{compositor.OpWaitImage, 2},
		{compositor.OpReleaseImage, 2},
		{compositor.OpEndFrame, 1},
	}
	for _, tt := range tests {
		if got := session.Calls(tt.op); got != tt.want {
			t.Errorf("%v calls = %d, want %d", tt.op, got, tt.want)
		}
	}
	if got := sched.Stats().ForcedReleases; got != 0 {
		t.Errorf("ForcedReleases = %d, want 0", got)
	}
}

func TestRunFrameEndsFrameOnImageWaitFailure(t *testing.T) {
	session, sched := newDemoScheduler(t, 2)
	session.InjectSwapchain(compositor.OpWaitImage, sched.View(0).Handle(), compositor.ErrorRuntimeFailure)

	err := runFrame(sched)
	if !errors.Is(err, swapchain.ErrImageWaitFailed) {
		t.Fatalf("runFrame() = %v, want ErrImageWaitFailed", err)
	}
	if got := session.Calls(compositor.OpEndFrame); got != 1 {
		t.Errorf("EndFrame calls = %d, want 1", got)
	}
	if session.HeldImages() != 0 {
		t.Errorf("HeldImages() = %d, want 0", session.HeldImages())
	}
	if sched.Stage() != xrframe.StateEnded {
		t.Errorf("Stage() = %v, want Ended", sched.Stage())
	}
}

func TestParseBlendMode(t *testing.T) {
	tests := []struct {
		in   string
		want compositor.EnvironmentBlendMode
	}{
		{"opaque", compositor.BlendModeOpaque},
		{"additive", compositor.BlendModeAdditive},
		{"alpha", compositor.BlendModeAlphaBlend},
	}
	for _, tt := range tests {
		got, err := parseBlendMode(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("parseBlendMode(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := parseBlendMode("bogus"); err == nil {
		t.Error("parseBlendMode(bogus) should fail")
	}
}
