// Command xrdemo runs the xrframe frame loop against the simulated compositor.
package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/xrframe"
	"github.com/gogpu/xrframe/compositor"
	"github.com/gogpu/xrframe/compositor/sim"
)

func main() {
	var (
		frames       = flag.Int("frames", 90, "number of frames to run")
		views        = flag.Int("views", 2, "number of views")
		width        = flag.Uint("width", 1440, "per-view image width")
		height       = flag.Uint("height", 1584, "per-view image height")
		blend        = flag.String("blend", "opaque", "environment blend mode: opaque, additive or alpha")
		realtime     = flag.Bool("realtime", false, "pace frames to the simulated display clock")
		discardEvery = flag.Int("discard-every", 0, "discard every Nth frame at begin (0 disables)")
		failEvery    = flag.Int("fail-every", 0, "refuse the last view's image every Nth frame (0 disables)")
		verbose      = flag.Bool("v", false, "log per-frame diagnostics")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	xrframe.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	mode, err := parseBlendMode(*blend)
	if err != nil {
		log.Fatal(err)
	}

	dev, err := xrframe.NewDevice(xrframe.NullDeviceHandle{})
	if err != nil {
		log.Fatalf("Failed to bind device: %v", err)
	}
	binding, err := dev.GraphicsBinding(xrframe.QueueClassGraphics)
	if err != nil {
		log.Fatalf("Failed to get graphics binding: %v", err)
	}

	cfg := sim.DefaultConfig()
	cfg.Realtime = *realtime
	cfg.BlendModes = []compositor.EnvironmentBlendMode{
		compositor.BlendModeOpaque, compositor.BlendModeAdditive, compositor.BlendModeAlphaBlend,
	}
	session, err := sim.NewSession(dev.Handle(), cfg)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}
	descs, err := session.ViewDescriptors(*views, uint32(*width), uint32(*height)) //nolint:gosec // G115: flag-sized image
	if err != nil {
		log.Fatalf("Failed to create swapchains: %v", err)
	}

	sched, err := xrframe.NewFrameScheduler(session, sim.NewSpace(), descs,
		xrframe.WithBlendMode(mode),
		xrframe.WithDevice(dev))
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	defer sched.Shutdown()

	last := descs[len(descs)-1].Handle
	for f := 1; f <= *frames; f++ {
		if *discardEvery > 0 && f%*discardEvery == 0 {
			session.Inject(compositor.OpBeginFrame, compositor.FrameDiscarded)
		}
		if *failEvery > 0 && f%*failEvery == 0 {
			session.InjectSwapchain(compositor.OpAcquireImage, last, compositor.ErrorRuntimeFailure)
		}
		if err := runFrame(sched); err != nil {
			log.Fatalf("Frame %d: %v", f, err)
		}
	}

	mirror := session.MirrorSurfaceConfiguration(mode, uint32(*width), uint32(*height)) //nolint:gosec // G115: flag-sized image
	st := sched.Stats()
	log.Printf("Adapter %q, format %v, mirror alpha mode %v\n",
		binding.AdapterInfo.Name, session.Format(), mirror.AlphaMode)
	log.Printf("Ran %d frames: %d submitted, %d discarded, %d warnings, %d forced releases, %d skipped views\n",
		st.Frames, len(session.Submissions()), st.Discarded, st.Warnings, st.ForcedReleases, st.SkippedViews)
}

// runFrame runs one frame. Every view is acquired and released even when
// the compositor does not want content; only the rendering is skipped.
// Only a failed image wait is fatal.
func runFrame(sched *xrframe.FrameScheduler) error {
	if err := sched.BeginFrame(); err != nil && !errors.Is(err, xrframe.ErrPoseResolve) {
		return err
	}
	for i := range sched.NumViews() {
		if err := sched.AcquireView(i); err != nil {
			_ = sched.EndFrame()
			return err
		}
		if sched.ShouldRender() {
			renderView(sched, i)
		}
		_ = sched.ReleaseView(i)
	}
	if err := sched.EndFrame(); err != nil {
		return err
	}
	return sched.PostFrame()
}

// renderView stands in for drawing into the acquired image of view i.
func renderView(sched *xrframe.FrameScheduler, i int) {
	v := sched.View(i)
	ext := v.Extent()
	xrframe.Logger().Debug("xrdemo: render view",
		slog.Int("view", i),
		slog.Uint64("image", uint64(v.ActiveImageIndex())),
		slog.Uint64("width", uint64(ext.Width)),
		slog.Uint64("height", uint64(ext.Height)))
}

func parseBlendMode(s string) (compositor.EnvironmentBlendMode, error) {
	switch s {
	case "opaque":
		return compositor.BlendModeOpaque, nil
	case "additive":
		return compositor.BlendModeAdditive, nil
	case "alpha":
		return compositor.BlendModeAlphaBlend, nil
	default:
		return 0, errors.New("unknown blend mode " + s)
	}
}
