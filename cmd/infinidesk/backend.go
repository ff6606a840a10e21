// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"errors"

	"github.com/ThatOtherAndrew/Infinidesk/internal/backend"
)

// errNoBackend is returned by newBackend until a real Wayland
// compositor backend is wired in. Implementing the wl_compositor/
// xdg-shell/wlr-layer-shell protocol plumbing and a GPU render pass is
// explicitly out of scope: internal/backend is the seam a production
// build would satisfy the same way friedelschoen-ctxmenu/wayland.go
// wraps a generated protocol binding, translating its callbacks into
// backend.LifecycleEvent/PointerEvent/KeyEvent values and exposing a
// GPU RenderPass over BeginFrame.
var errNoBackend = errors.New("infinidesk: no backend.Backend implementation is wired into this build")

// newBackend constructs the production backend.Backend. internal/backend/fake
// exists only for tests (see its package doc); it is never constructed here,
// since shipping a headless fake as the production backend would silently
// render nothing rather than fail loudly on an unimplemented seam.
func newBackend() (backend.Backend, error) {
	return nil, errNoBackend
}
