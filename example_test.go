package xrframe_test

import (
	"errors"
	"fmt"

	"github.com/gogpu/xrframe"
	"github.com/gogpu/xrframe/compositor"
	"github.com/gogpu/xrframe/compositor/sim"
)

func Example() {
	session, err := sim.NewSession(xrframe.NullDeviceHandle{}, sim.DefaultConfig())
	if err != nil {
		fmt.Println(err)
		return
	}
	descs, err := session.ViewDescriptors(2, 1440, 1584)
	if err != nil {
		fmt.Println(err)
		return
	}
	sched, err := xrframe.NewFrameScheduler(session, sim.NewSpace(), descs,
		xrframe.WithBlendMode(compositor.BlendModeOpaque))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer sched.Shutdown()

	rendered := 0
	for range 3 {
		if err := sched.BeginFrame(); err != nil && !errors.Is(err, xrframe.ErrPoseResolve) {
			fmt.Println(err)
			return
		}
		for i := range sched.NumViews() {
			if err := sched.AcquireView(i); err != nil {
				_ = sched.EndFrame()
				fmt.Println(err)
				return
			}
			if sched.ShouldRender() {
				rendered++ // render view i
			}
			_ = sched.ReleaseView(i)
		}
		if err := sched.EndFrame(); err != nil {
			fmt.Println(err)
			return
		}
	}

	for _, sub := range session.Submissions() {
		fmt.Printf("frame %d: %d views at %d\n", sub.Frame, len(sub.Views), sub.DisplayTime)
	}
	fmt.Printf("rendered %d views\n", rendered)
	// Output:
	// frame 1: 2 views at 1011111111
	// frame 2: 2 views at 1022222222
	// frame 3: 2 views at 1033333333
	// rendered 6 views
}

func ExampleWithWarningHandler() {
	session, _ := sim.NewSession(xrframe.NullDeviceHandle{}, sim.DefaultConfig())
	descs, _ := session.ViewDescriptors(1, 64, 64)
	sched, _ := xrframe.NewFrameScheduler(session, sim.NewSpace(), descs,
		xrframe.WithWarningHandler(func(w xrframe.Warning) {
			fmt.Printf("frame %d: %s failed: %v\n", w.Frame, w.Op, w.Err)
		}))

	session.Inject(compositor.OpEndFrame, compositor.ErrorSessionLost)
	_ = sched.BeginFrame()
	_ = sched.EndFrame()
	// Output:
	// frame 1: EndFrame failed: compositor: EndFrame: ErrorSessionLost
}
