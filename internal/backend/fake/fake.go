// SPDX-License-Identifier: Unlicense OR MIT

// Package fake implements internal/backend's interfaces in memory, with
// no real GPU or Wayland socket, recording calls for assertions. It is
// the collaborator every _test.go in this tree drives the compositor
// with, mirroring gioui-gio's gpu/headless pattern of a headless
// backend used from tests in place of a mocking framework.
package fake

import (
	"image"

	"gioui.org/f32"

	"github.com/ThatOtherAndrew/Infinidesk/internal/backend"
)

// Texture is a fake pixel buffer of a fixed size.
type Texture struct {
	Size image.Point
}

func (t *Texture) Bounds() image.Point { return t.Size }

// Toplevel is a fake xdg_toplevel.
type Toplevel struct {
	AppIDValue   string
	TitleValue   string
	GeoX, GeoY   int
	W, H         int
	Tex          backend.Texture
	Source       image.Rectangle
	Scale        int
	Subsurfaces  []image.Point

	Configured   []image.Point
	Closed       bool
}

func (t *Toplevel) AppID() string            { return t.AppIDValue }
func (t *Toplevel) Title() string            { return t.TitleValue }
func (t *Toplevel) GeometryOffset() (int, int) { return t.GeoX, t.GeoY }
func (t *Toplevel) ContentSize() (int, int)    { return t.W, t.H }
func (t *Toplevel) Texture() backend.Texture   { return t.Tex }
func (t *Toplevel) SourceBox() image.Rectangle { return t.Source }
func (t *Toplevel) BufferScale() int           { return t.Scale }
func (t *Toplevel) Configure(w, h int) {
	t.Configured = append(t.Configured, image.Pt(w, h))
}
func (t *Toplevel) Close() { t.Closed = true }
func (t *Toplevel) WalkSurfaces(visit func(image.Point, bool)) {
	for _, p := range t.Subsurfaces {
		visit(p, false)
	}
}

// LayerSurface is a fake zwlr_layer_surface_v1.
type LayerSurface struct {
	LayerValue     backend.Layer
	AnchorValue    backend.Anchor
	MarginT, MarginR, MarginB, MarginL int
	DesiredW, DesiredH                 int
	Exclusive                          int
	Tex                                backend.Texture
	Source                             image.Rectangle

	ConfiguredX, ConfiguredY, ConfiguredW, ConfiguredH int
	Destroyed                                          bool
}

func (l *LayerSurface) Layer() backend.Layer  { return l.LayerValue }
func (l *LayerSurface) Anchor() backend.Anchor { return l.AnchorValue }
func (l *LayerSurface) Margins() (int, int, int, int) {
	return l.MarginT, l.MarginR, l.MarginB, l.MarginL
}
func (l *LayerSurface) DesiredSize() (int, int)    { return l.DesiredW, l.DesiredH }
func (l *LayerSurface) ExclusiveZone() int          { return l.Exclusive }
func (l *LayerSurface) Texture() backend.Texture    { return l.Tex }
func (l *LayerSurface) SourceBox() image.Rectangle  { return l.Source }
func (l *LayerSurface) Configure(x, y, w, h int) {
	l.ConfiguredX, l.ConfiguredY, l.ConfiguredW, l.ConfiguredH = x, y, w, h
}
func (l *LayerSurface) ConfiguredRect() image.Rectangle {
	return image.Rect(l.ConfiguredX, l.ConfiguredY, l.ConfiguredX+l.ConfiguredW, l.ConfiguredY+l.ConfiguredH)
}
func (l *LayerSurface) Destroy() { l.Destroyed = true }

// Output is a fake physical monitor.
type Output struct {
	NameValue    string
	Size         image.Point
	Scale        float32
	FrameDoneLog []int64
}

func (o *Output) Name() string            { return o.NameValue }
func (o *Output) PhysicalSize() image.Point { return o.Size }
func (o *Output) HiDPIScale() float32      { return o.Scale }
func (o *Output) FrameDone(timestampMS int64) {
	o.FrameDoneLog = append(o.FrameDoneLog, timestampMS)
}

// Seat records every call made to it.
type Seat struct {
	Entered, Left   []backend.ToplevelHandle
	Motions         []f32.Point
	Buttons         []ButtonCall
	Axes            []AxisCall
	Keys            []KeyCall
	KeyboardFocus   backend.ToplevelHandle
	Cursor          backend.CursorShape
}

type ButtonCall struct {
	Win     backend.ToplevelHandle
	Button  backend.ButtonID
	Pressed bool
}

type AxisCall struct {
	Win    backend.ToplevelHandle
	Source backend.AxisSource
	DX, DY float32
}

type KeyCall struct {
	Sym     backend.Keysym
	Mods    backend.Modifier
	Pressed bool
}

func (s *Seat) PointerEnter(win backend.ToplevelHandle, _ f32.Point) {
	s.Entered = append(s.Entered, win)
}
func (s *Seat) PointerLeave(win backend.ToplevelHandle) {
	s.Left = append(s.Left, win)
}
func (s *Seat) PointerMotion(_ backend.ToplevelHandle, p f32.Point) {
	s.Motions = append(s.Motions, p)
}
func (s *Seat) PointerButton(win backend.ToplevelHandle, b backend.ButtonID, pressed bool) {
	s.Buttons = append(s.Buttons, ButtonCall{win, b, pressed})
}
func (s *Seat) PointerAxis(win backend.ToplevelHandle, src backend.AxisSource, dx, dy float32) {
	s.Axes = append(s.Axes, AxisCall{win, src, dx, dy})
}
func (s *Seat) KeyboardKey(sym backend.Keysym, mods backend.Modifier, pressed bool) {
	s.Keys = append(s.Keys, KeyCall{sym, mods, pressed})
}
func (s *Seat) SetKeyboardFocus(win backend.ToplevelHandle) { s.KeyboardFocus = win }
func (s *Seat) SetCursor(shape backend.CursorShape)          { s.Cursor = shape }

// RenderPass records every draw call made to it in order, mimicking the
// op-list style render pass gioui.org/op records operations into before
// a single Submit/Frame call, but with plain Go slices instead of an
// encoded op stream, since there is no GPU backend in scope here.
type RenderPass struct {
	Fills    []FillCall
	Textures []TextureCall
	Submits  int
	SubmitErr error
}

type FillCall struct {
	Dst   image.Rectangle
	Color backend.Color
}

type TextureCall struct {
	Tex    backend.Texture
	Src    image.Rectangle
	Dst    image.Rectangle
	Filter backend.Filter
}

func (r *RenderPass) FillRect(dst image.Rectangle, color backend.Color) {
	r.Fills = append(r.Fills, FillCall{dst, color})
}

func (r *RenderPass) DrawTexture(tex backend.Texture, src, dst image.Rectangle, filter backend.Filter) {
	if tex == nil || dst.Dx() <= 0 || dst.Dy() <= 0 {
		return
	}
	if b := tex.Bounds(); b.X <= 0 || b.Y <= 0 {
		return
	}
	r.Textures = append(r.Textures, TextureCall{tex, src, dst, filter})
}

func (r *RenderPass) Submit() error {
	r.Submits++
	return r.SubmitErr
}

// Backend is a fake backend.Backend: the test drives the server by
// sending values into the exported channel fields directly, mirroring
// the single-channel-per-callback-source shape of the real event loop.
type Backend struct {
	LifecycleCh     chan backend.LifecycleEvent
	PointerCh       chan backend.PointerEvent
	KeyCh           chan backend.KeyEvent
	FrameRequestsCh chan backend.OutputHandle

	OutputList []backend.OutputHandle
	SeatValue  backend.Seat

	// BeginFrameErr, if set, is returned by BeginFrame instead of a pass,
	// simulating a render-pass acquisition failure.
	BeginFrameErr error
	Passes        []*RenderPass

	Closed bool
}

// NewBackend returns a Backend with buffered channels, ready to be
// driven from a test.
func NewBackend() *Backend {
	return &Backend{
		LifecycleCh:     make(chan backend.LifecycleEvent, 16),
		PointerCh:       make(chan backend.PointerEvent, 16),
		KeyCh:           make(chan backend.KeyEvent, 16),
		FrameRequestsCh: make(chan backend.OutputHandle, 16),
		SeatValue:       &Seat{},
	}
}

func (b *Backend) Lifecycle() <-chan backend.LifecycleEvent  { return b.LifecycleCh }
func (b *Backend) Pointer() <-chan backend.PointerEvent       { return b.PointerCh }
func (b *Backend) Key() <-chan backend.KeyEvent               { return b.KeyCh }
func (b *Backend) FrameRequests() <-chan backend.OutputHandle { return b.FrameRequestsCh }
func (b *Backend) Outputs() []backend.OutputHandle            { return b.OutputList }
func (b *Backend) Seat() backend.Seat                         { return b.SeatValue }
func (b *Backend) Close() error                                { b.Closed = true; return nil }

func (b *Backend) BeginFrame(out backend.OutputHandle) (backend.RenderPass, error) {
	if b.BeginFrameErr != nil {
		return nil, b.BeginFrameErr
	}
	p := &RenderPass{}
	b.Passes = append(b.Passes, p)
	return p, nil
}
