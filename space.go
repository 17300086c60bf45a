package xrframe

import "github.com/gogpu/xrframe/compositor"

// SpaceResolver resolves the pose and field of view of every view for a
// predicted display time.
//
// ResolvePoses is called exactly once per BeginFrame and must return
// exactly viewCount entries, in view order. The scheduler copies the
// result, so implementations may reuse the returned slice.
type SpaceResolver interface {
	ResolvePoses(t compositor.Time, viewCount int) ([]compositor.View, error)
}

// LayerSpacer is implemented by resolvers that know the reference space
// their poses are expressed in.
type LayerSpacer interface {
	LayerSpace() compositor.SpaceHandle
}
