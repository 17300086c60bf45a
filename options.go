package xrframe

import "github.com/gogpu/xrframe/compositor"

// Option configures a FrameScheduler during creation.
//
// Example:
//
//	sched, err := xrframe.NewFrameScheduler(session, resolver, descs,
//	    xrframe.WithBlendMode(compositor.BlendModeAlphaBlend),
//	    xrframe.WithWarningHandler(func(w xrframe.Warning) { metrics.Inc(w.Op) }))
type Option func(*options)

// options holds optional configuration for FrameScheduler creation.
type options struct {
	blendMode compositor.EnvironmentBlendMode
	warn      WarningHandler
	hooks     Hooks
	device    *Device
	space     compositor.SpaceHandle
	spaceSet  bool
}

// defaultOptions returns the default scheduler options.
func defaultOptions() options {
	return options{
		blendMode: compositor.BlendModeOpaque,
		warn:      logWarning,
	}
}

// WithBlendMode sets the environment blend mode submitted with every frame.
// The default is compositor.BlendModeOpaque.
func WithBlendMode(m compositor.EnvironmentBlendMode) Option {
	return func(o *options) {
		o.blendMode = m
	}
}

// WithWarningHandler sets the function receiving non-fatal compositor
// results. The default logs them at warn level on the package logger.
// A nil handler restores the default.
func WithWarningHandler(h WarningHandler) Option {
	return func(o *options) {
		if h == nil {
			h = logWarning
		}
		o.warn = h
	}
}

// WithHooks sets the platform hooks run around each frame.
func WithHooks(h Hooks) Option {
	return func(o *options) {
		o.hooks = h
	}
}

// WithDevice attaches the device the session was created on.
// The scheduler shuts it down in Shutdown.
func WithDevice(d *Device) Option {
	return func(o *options) {
		o.device = d
	}
}

// WithLayerSpace sets the reference space of the submitted projection
// layer. Without it, a SpaceResolver that implements LayerSpacer supplies
// the space.
func WithLayerSpace(s compositor.SpaceHandle) Option {
	return func(o *options) {
		o.space = s
		o.spaceSet = true
	}
}
