// SPDX-License-Identifier: Unlicense OR MIT

// Package backend defines the collaborator surface treated as external:
// Wayland protocol plumbing (surface lifecycle, buffer commits, damage,
// keymaps, seat capabilities), XDG-shell and layer-shell event
// delivery, and the GPU render pass. The compositor core in the
// sibling internal/ packages is written only against these interfaces;
// internal/backend/fake implements them for tests.
//
// A production implementation would hold the generated protocol
// bindings the way friedelschoen-ctxmenu/wayland.go does (a
// github.com/rajveermalviya/go-wayland connection plus its generated
// proto package) and translate their callbacks into the Event values
// defined here — see DESIGN.md's "Wayland protocol boundary" section
// for why that generated package is not imported directly in this tree.
package backend

import (
	"image"

	"gioui.org/f32"
)

// Color is a straight (non-premultiplied) RGBA color in [0,1].
type Color struct {
	R, G, B, A float32
}

// Filter selects the texture sampling filter a RenderPass uses for
// DrawTexture: nearest when the composited content is already at
// native resolution (scale 1, buffer scale 1), bilinear otherwise.
type Filter uint8

const (
	FilterNearest Filter = iota
	FilterBilinear
)

// Texture is an opaque handle to client (or offscreen) pixel content.
// Bounds is the buffer size in physical pixels.
type Texture interface {
	Bounds() image.Point
}

// RenderPass is the minimal primitive set a compositor framework
// exposes: textured and solid-colour rectangles, submitted once per
// frame. Coordinates are physical output pixels.
type RenderPass interface {
	// FillRect paints color over dst, premultiplied-alpha blended.
	FillRect(dst image.Rectangle, color Color)
	// DrawTexture blits the src region of tex into dst, premultiplied-
	// alpha blended, using filter. A non-positive dst or a zero-sized
	// tex is a caller error; implementations skip it rather than
	// panicking.
	DrawTexture(tex Texture, src, dst image.Rectangle, filter Filter)
	// Submit finalises and presents the frame.
	Submit() error
}

// ButtonID mirrors the wl_pointer button codes used in practice by
// Wayland seats (BTN_LEFT=0x110 and friends), kept here as a named type
// rather than bare uint32 so call sites read as button identifiers.
type ButtonID uint32

const (
	ButtonLeft   ButtonID = 0x110
	ButtonRight  ButtonID = 0x111
	ButtonMiddle ButtonID = 0x112
)

// AxisSource distinguishes scroll-wheel notches from continuous
// trackpad/touch scroll, mirroring wl_pointer.axis_source.
type AxisSource uint8

const (
	AxisSourceWheel AxisSource = iota
	AxisSourceFinger
	AxisSourceContinuous
)

// Modifier is a bitmask of held keyboard modifiers, shaped like the
// modifier bitmasks wl_keyboard.modifiers delivers.
type Modifier uint32

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Keysym is an X keysym value; keymap handling is scoped down to a
// modifier bitmask plus symbol rather than a full XKB keymap.
type Keysym uint32

// CursorShape selects the seat's cursor image.
type CursorShape uint8

const (
	CursorDefault CursorShape = iota
	CursorMove
	CursorCrosshair
)

// Seat is the pointer/keyboard collaborator. Methods are calls the
// compositor core makes outward (forwarding events to clients, setting
// cursor shape); inbound events (press, motion, key) arrive as Event
// values through the Backend's event channel instead, since the core
// needs to arbitrate them before deciding whether to forward them here.
type Seat interface {
	// PointerEnter/PointerLeave/PointerMotion notify the client surface
	// under the cursor, in surface-local coordinates.
	PointerEnter(win ToplevelHandle, surfaceLocal f32.Point)
	PointerLeave(win ToplevelHandle)
	PointerMotion(win ToplevelHandle, surfaceLocal f32.Point)
	// PointerButton forwards a button event to the given window, or to
	// no window (passthrough to empty canvas) if win is nil.
	PointerButton(win ToplevelHandle, button ButtonID, pressed bool)
	// PointerAxis forwards a scroll event to win.
	PointerAxis(win ToplevelHandle, source AxisSource, dx, dy float32)
	// KeyboardKey forwards a key event to the currently focused window.
	KeyboardKey(sym Keysym, mods Modifier, pressed bool)
	// SetKeyboardFocus transfers keyboard focus to win (nil clears it).
	SetKeyboardFocus(win ToplevelHandle)
	SetCursor(shape CursorShape)
}

// ToplevelHandle is the non-owning handle a View holds into the
// protocol-plumbing layer for one mapped xdg_toplevel.
type ToplevelHandle interface {
	AppID() string
	Title() string
	// Configure proposes a size to the client; 0,0 requests the
	// client's preferred size (the initial-commit case).
	Configure(width, height int)
	Close()
	// GeometryOffset is the client-reported (geo_x, geo_y) content
	// rectangle offset within the surface buffer.
	GeometryOffset() (x, y int)
	// ContentSize is the last-committed content rectangle size.
	ContentSize() (w, h int)
	// Texture is the client's current committed buffer, or nil if it
	// has not committed a buffer yet.
	Texture() Texture
	// SourceBox is the viewporter-protocol source crop rectangle for
	// Texture, or a zero Rectangle to mean "the full buffer".
	SourceBox() image.Rectangle
	BufferScale() int
	// WalkSurfaces visits the window's surface subtree (subsurfaces and
	// popups), yielding each surface and its position relative to the
	// toplevel's origin, for frame-done delivery and hit-test
	// refinement.
	WalkSurfaces(visit func(rel image.Point, isPopup bool))
}

// LayerSurfaceHandle is the non-owning handle to one mapped layer-shell
// surface.
type LayerSurfaceHandle interface {
	Layer() Layer
	Anchor() Anchor
	Margins() (top, right, bottom, left int)
	DesiredSize() (w, h int)
	ExclusiveZone() int
	Texture() Texture
	SourceBox() image.Rectangle
	Configure(x, y, w, h int)
	// ConfiguredRect is the screen-space rectangle assigned by the most
	// recent Configure call, read back by the composition pipeline.
	ConfiguredRect() image.Rectangle
	// Destroy rejects the surface with a protocol error: used when a
	// new layer surface arrives with no output to assign it to (no
	// output exists at all), since there is then nowhere to arrange it.
	Destroy()
}

// Layer is the target layer-shell z-level.
type Layer uint8

const (
	LayerBackground Layer = iota
	LayerBottom
	LayerTop
	LayerOverlay
)

// Anchor is the edge-anchor bitmask, shaped like
// zwlr_layer_surface_v1.anchor.
type Anchor uint8

const (
	AnchorTop Anchor = 1 << iota
	AnchorBottom
	AnchorLeft
	AnchorRight
)

// OutputHandle represents one physical monitor.
type OutputHandle interface {
	Name() string
	// PhysicalSize is the output resolution in physical pixels.
	PhysicalSize() image.Point
	// HiDPIScale is the output's configured scale factor.
	HiDPIScale() float32
	// FrameDone delivers the "frame done" callback, timestamped at
	// timestampMS, to every mapped surface on this output (views,
	// their subsurfaces/popups, and layer surfaces).
	FrameDone(timestampMS int64)
}

// LifecycleEvent is a backend-delivered protocol lifecycle
// notification: new toplevel/layer-surface, map, unmap, commit.
type LifecycleEvent interface {
	implementsLifecycleEvent()
}

type NewToplevelEvent struct{ Handle ToplevelHandle }
type MapEvent struct{ Handle ToplevelHandle }
type UnmapEvent struct{ Handle ToplevelHandle }
type CommitEvent struct{ Handle ToplevelHandle }
type NewLayerSurfaceEvent struct {
	Handle LayerSurfaceHandle
	Output OutputHandle
}
type LayerSurfaceCommitEvent struct{ Handle LayerSurfaceHandle }
type LayerSurfaceDestroyEvent struct{ Handle LayerSurfaceHandle }
type NewOutputEvent struct{ Output OutputHandle }
type OutputGeometryChangeEvent struct{ Output OutputHandle }

func (NewToplevelEvent) implementsLifecycleEvent()         {}
func (MapEvent) implementsLifecycleEvent()                 {}
func (UnmapEvent) implementsLifecycleEvent()                {}
func (CommitEvent) implementsLifecycleEvent()               {}
func (NewLayerSurfaceEvent) implementsLifecycleEvent()       {}
func (LayerSurfaceCommitEvent) implementsLifecycleEvent()    {}
func (LayerSurfaceDestroyEvent) implementsLifecycleEvent()   {}
func (NewOutputEvent) implementsLifecycleEvent()             {}
func (OutputGeometryChangeEvent) implementsLifecycleEvent()  {}

// PointerEventKind distinguishes the inbound pointer events the input
// state machine arbitrates.
type PointerEventKind uint8

const (
	PointerMotionEvent PointerEventKind = iota
	PointerButtonEvent
	PointerAxisEvent
)

// PointerEvent is one inbound pointer event, in screen space.
type PointerEvent struct {
	Kind     PointerEventKind
	Position f32.Point
	Button   ButtonID
	Pressed  bool
	AxisDX   float32
	AxisDY   float32
	Source   AxisSource
	Mods     Modifier
}

// KeyEvent is one inbound keyboard event.
type KeyEvent struct {
	Sym     Keysym
	Mods    Modifier
	Pressed bool
}

// Backend is the top-level collaborator the event loop (internal/server)
// drives: one Go channel per callback source (output frame timer, seat
// event channel, backend lifecycle channel, ...), mirroring how the
// underlying Wayland event loop dispatches callbacks. A production
// implementation would populate these channels from the generated
// protocol bindings' callbacks (see DESIGN.md's "Wayland protocol
// boundary"); tests drive the server against internal/backend/fake's
// in-memory implementation.
type Backend interface {
	// Lifecycle delivers new/map/unmap/commit notifications for
	// toplevels, layer surfaces, and outputs.
	Lifecycle() <-chan LifecycleEvent
	// Pointer delivers inbound pointer motion/button/axis events, in
	// screen space.
	Pointer() <-chan PointerEvent
	// Key delivers inbound keyboard events.
	Key() <-chan KeyEvent
	// FrameRequests delivers one value per output whenever that
	// output's frame timer fires, driving the composition pipeline.
	FrameRequests() <-chan OutputHandle
	// Outputs returns the currently known outputs.
	Outputs() []OutputHandle
	// Seat returns the seat collaborator events are forwarded through.
	Seat() Seat
	// BeginFrame acquires a RenderPass for out. A returned error means
	// the caller should log it, skip this frame entirely, and let the
	// next frame event retry rather than retrying synchronously.
	BeginFrame(out OutputHandle) (RenderPass, error)
	// Close releases backend resources (display, sockets, allocator);
	// called once during clean shutdown.
	Close() error
}
