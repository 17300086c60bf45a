// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package swapchain

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/xrframe/compositor"
)

var (
	// ErrNoViews is returned by NewManager when no views are described.
	ErrNoViews = errors.New("swapchain: no views")

	// ErrInvalidDescriptor is returned by NewManager for a zero handle or size.
	ErrInvalidDescriptor = errors.New("swapchain: invalid view descriptor")

	// ErrViewOutOfRange is returned for a view index outside [0, NumViews).
	ErrViewOutOfRange = errors.New("swapchain: view index out of range")

	// ErrAlreadyAcquired is returned by Acquire for a view that holds an
	// image. No compositor call is made.
	ErrAlreadyAcquired = errors.New("swapchain: image already acquired")

	// ErrImageWaitFailed marks a failed wait on a successfully acquired
	// image. The image will never become writable, so the frame cannot
	// make progress. The view stays acquired and must still be released.
	ErrImageWaitFailed = errors.New("swapchain: wait on acquired image failed")
)

// Manager owns the per-view swapchain state and mediates
// acquire, wait and release against the compositor.
//
// The view count is fixed at construction. Manager is not safe for
// concurrent use; all calls come from the render thread.
type Manager struct {
	session compositor.Session
	views   []View
}

// NewManager creates a manager with one View per descriptor, in view order.
func NewManager(session compositor.Session, descs []ViewDescriptor) (*Manager, error) {
	if session == nil {
		return nil, errors.New("swapchain: nil session")
	}
	if len(descs) == 0 {
		return nil, ErrNoViews
	}
	views := make([]View, len(descs))
	for i, d := range descs {
		if d.Handle == 0 || d.Width == 0 || d.Height == 0 {
			return nil, fmt.Errorf("%w: view %d: handle=%d size=%dx%d",
				ErrInvalidDescriptor, i, d.Handle, d.Width, d.Height)
		}
		views[i] = View{
			handle: d.Handle,
			width:  d.Width,
			height: d.Height,
			format: d.Format,
		}
	}
	return &Manager{session: session, views: views}, nil
}

// NumViews returns the number of views.
func (m *Manager) NumViews() int {
	return len(m.views)
}

// View returns the view at index i, or nil if i is out of range.
// The returned pointer stays valid for the manager's lifetime.
func (m *Manager) View(i int) *View {
	if i < 0 || i >= len(m.views) {
		return nil
	}
	return &m.views[i]
}

// AcquiredCount returns how many views currently hold an image.
func (m *Manager) AcquiredCount() int {
	n := 0
	for i := range m.views {
		if m.views[i].acquired {
			n++
		}
	}
	return n
}

// Acquire acquires the next image of view i and waits until it is writable.
//
// The wait has no timeout: the compositor guarantees eventual availability.
// The wait is issued even when the acquire failed, matching the compositor
// call pattern; its result only matters after a successful acquire.
//
// Results:
//   - (true, nil): the image is acquired and writable.
//   - (false, err): the acquire was refused; the view is unchanged.
//     err is a *compositor.ResultError or ErrAlreadyAcquired.
//   - (true, err): the acquire succeeded but the wait failed. err wraps
//     ErrImageWaitFailed and must be treated as fatal for the frame.
func (m *Manager) Acquire(i int) (bool, error) {
	v := m.View(i)
	if v == nil {
		return false, fmt.Errorf("%w: %d of %d", ErrViewOutOfRange, i, len(m.views))
	}
	if v.acquired {
		return false, fmt.Errorf("%w: view %d", ErrAlreadyAcquired, i)
	}

	index, r := m.session.AcquireImage(v.handle)
	v.acquired = r == compositor.Success
	var acquireErr error
	if v.acquired {
		v.activeImageIndex = index
	} else {
		acquireErr = fmt.Errorf("swapchain: view %d: %w", i, r.Err(compositor.OpAcquireImage))
	}

	wr := m.session.WaitImage(v.handle, compositor.InfiniteDuration)
	if !v.acquired {
		return false, acquireErr
	}
	if wr != compositor.Success {
		slogger().Error("swapchain: image wait failed",
			slog.Int("view", i), slog.String("result", wr.String()))
		return true, fmt.Errorf("%w: view %d: %w", ErrImageWaitFailed, i, wr.Err(compositor.OpWaitImage))
	}

	slogger().Debug("swapchain: acquired",
		slog.Int("view", i), slog.Uint64("image", uint64(index)))
	return true, nil
}

// Release releases the image held by view i.
//
// Release is a no-op returning nil when the view holds no image, so
// end-of-frame cleanup never double-releases. When the compositor rejects
// the release the view stays acquired and the *compositor.ResultError is
// returned.
func (m *Manager) Release(i int) error {
	v := m.View(i)
	if v == nil {
		return fmt.Errorf("%w: %d of %d", ErrViewOutOfRange, i, len(m.views))
	}
	if !v.acquired {
		return nil
	}
	if r := m.session.ReleaseImage(v.handle); r != compositor.Success {
		return fmt.Errorf("swapchain: view %d: %w", i, r.Err(compositor.OpReleaseImage))
	}
	v.acquired = false
	slogger().Debug("swapchain: released", slog.Int("view", i))
	return nil
}

// ReleaseAll releases every acquired view once and returns how many
// releases succeeded. A view whose release fails stays acquired and is
// passed to onFailure, which may be nil.
func (m *Manager) ReleaseAll(onFailure func(view int, err error)) int {
	released := 0
	for i := range m.views {
		if !m.views[i].acquired {
			continue
		}
		if err := m.Release(i); err != nil {
			if onFailure != nil {
				onFailure(i, err)
			}
			continue
		}
		released++
	}
	return released
}
