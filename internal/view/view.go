// SPDX-License-Identifier: Unlicense OR MIT

// Package view implements toplevel windows placed on the canvas: their
// geometry, z-order, focus policy, and map/focus animations.
package view

import (
	"fmt"
	"image"

	"gioui.org/f32"
	"golang.org/x/exp/slices"

	"github.com/ThatOtherAndrew/Infinidesk/internal/anim"
	"github.com/ThatOtherAndrew/Infinidesk/internal/backend"
)

const (
	MapDurationMS   = 200
	FocusDurationMS = 200

	mapScaleStart = 0.9
	mapScaleEnd   = 1.0
)

// ID is a stable per-process view identifier.
type ID uint64

// View is one mapped toplevel window positioned in canvas space.
type View struct {
	ID ID

	// Position is the canvas-space top-left of the content rectangle.
	Position f32.Point
	// GeoOffset is the cached (geo_x, geo_y) content offset within the
	// client's surface buffer, non-zero for CSD/shadow-drawing clients.
	GeoOffset image.Point

	Focused bool

	FocusAnim focusAnimation
	MapAnim   mapAnimation

	isMoving  bool
	moveGrab  f32.Point // canvas-space cursor position at grab time
	moveStart f32.Point // view Position at grab time

	// lastTexture is reserved for a future unmap exit-animation that
	// caches the last-rendered frame; unused this release.
	lastTexture backend.Texture

	Toplevel backend.ToplevelHandle
}

// mapAnimation is the view's map-in progress plus a direction flag
// distinguishing an animation that is about to remove the view.
type mapAnimation struct {
	anim.Progress
	AnimatingOut bool
}

// focusAnimation is the view's focus-border progress plus a direction
// flag: AnimatingOut is true for the view losing focus (border fades
// Focused -> Unfocused as progress advances) and false for the view
// gaining it (Unfocused -> Focused), mirroring mapAnimation's
// AnimatingOut. Without this, both views animated by the same
// Start(nowMS, ...) call would be indistinguishable and the losing
// view's border would visibly ramp the wrong way.
type focusAnimation struct {
	anim.Progress
	AnimatingOut bool
}

// New constructs a View for a freshly created toplevel. The view is not
// yet positioned or map-animating; call BeginMap once the client maps.
func New(id ID, toplevel backend.ToplevelHandle) *View {
	v := &View{ID: id, Toplevel: toplevel}
	v.FocusAnim.Label = fmt.Sprintf("view.focus(%d)", id)
	v.MapAnim.Progress.Label = fmt.Sprintf("view.map(%d)", id)
	return v
}

// BeginMap starts the map-in animation and positions the view's centre
// at centreCanvas — the caller converts the owning output's current
// usable-area centre to canvas units first, so a newly mapped window
// appears clear of any panels or docks.
func (v *View) BeginMap(nowMS int64, centreCanvas f32.Point) {
	w, h := v.Toplevel.ContentSize()
	v.Position = f32.Point{
		X: centreCanvas.X - float32(w)/2,
		Y: centreCanvas.Y - float32(h)/2,
	}
	v.MapAnim.AnimatingOut = false
	v.MapAnim.Start(nowMS, MapDurationMS)
}

// EndMap clears the map animation immediately. There is no exit
// animation on unmap in this release.
func (v *View) EndMap() {
	v.MapAnim.Progress = anim.Progress{}
}

// MapScale returns the current map-in scale factor, interpolating
// mapScaleStart -> mapScaleEnd about the view's centre.
func (v *View) MapScale() float32 {
	if !v.MapAnim.Active && v.MapAnim.Value == 0 {
		return mapScaleEnd
	}
	return anim.LerpF32(mapScaleStart, mapScaleEnd, v.MapAnim.Value)
}

// MapOpacity returns the current map-in opacity, 0 -> 1.
func (v *View) MapOpacity() float32 {
	if !v.MapAnim.Active && v.MapAnim.Value == 0 {
		return 1
	}
	return float32(v.MapAnim.Value)
}

// UpdateAnimations advances the view's focus and map animations to
// nowMS.
func (v *View) UpdateAnimations(nowMS int64) {
	v.FocusAnim.Tick(nowMS)
	v.MapAnim.Tick(nowMS)
}

// Animating reports whether either animation needs another frame.
func (v *View) Animating() bool {
	return anim.Any(&v.FocusAnim.Progress, &v.MapAnim.Progress)
}

// BeginMove records the grab anchor (cursorCanvas) and the view
// position at grab time.
func (v *View) BeginMove(cursorCanvas f32.Point) {
	v.isMoving = true
	v.moveGrab = cursorCanvas
	v.moveStart = v.Position
}

// UpdateMove applies the delta between the current cursor and the grab
// anchor (both canvas units) to the grab-time position.
func (v *View) UpdateMove(cursorCanvas f32.Point) {
	if !v.isMoving {
		return
	}
	delta := cursorCanvas.Sub(v.moveGrab)
	v.Position = v.moveStart.Add(delta)
}

// EndMove ends the move gesture. Idempotent.
func (v *View) EndMove() {
	v.isMoving = false
}

// Moving reports whether a move gesture is in progress.
func (v *View) Moving() bool {
	return v.isMoving
}

// ContentRect returns the canvas-space content rectangle.
func (v *View) ContentRect() f32.Rectangle {
	w, h := v.Toplevel.ContentSize()
	return f32.Rectangle{
		Min: v.Position,
		Max: v.Position.Add(f32.Point{X: float32(w), Y: float32(h)}),
	}
}

// Centre returns the canvas-space centre of the content rectangle.
func (v *View) Centre() f32.Point {
	r := v.ContentRect()
	return f32.Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// OnCommit recomputes the cached geometry offset on a client commit,
// returning whether the scene position needs recomputing because the
// offset changed since the last commit.
func (v *View) OnCommit() (geometryChanged bool) {
	x, y := v.Toplevel.GeometryOffset()
	next := image.Pt(x, y)
	if next == v.GeoOffset {
		return false
	}
	v.GeoOffset = next
	return true
}

// List is the server's ordered view z-stack: index 0 is the top of the
// stack. Focus does not reorder the list, so the head is the focused
// view only when the focused view has also been raised (click-to-focus,
// move, switcher confirm); focus-follows-mouse leaves the order alone.
// All mutation goes through List's methods — modeled on
// golang.org/x/exp/slices' Insert/Delete rather than raw index
// arithmetic, since there is no embedded-list node to splice the way an
// intrusive linked list would.
type List struct {
	views []*View
}

// Views returns the current z-stack, head first. The returned slice
// must not be mutated by the caller; it is a live view into the list.
func (l *List) Views() []*View {
	return l.views
}

// Len reports the number of views.
func (l *List) Len() int {
	return len(l.views)
}

// Head returns the top-of-stack view, or nil if the list is empty.
func (l *List) Head() *View {
	if len(l.views) == 0 {
		return nil
	}
	return l.views[0]
}

// Create inserts a newly constructed view at the head of the list.
func (l *List) Create(v *View) {
	l.views = slices.Insert(l.views, 0, v)
}

// Destroy removes v from the list. A no-op if v is not present.
func (l *List) Destroy(v *View) {
	i := slices.IndexFunc(l.views, func(o *View) bool { return o == v })
	if i < 0 {
		return
	}
	l.views = slices.Delete(l.views, i, i+1)
}

// Raise moves v to the head of the list. Rendering order (the scene
// node z-order) is a composition-pipeline concern that reads this list
// directly each frame, so raising here is sufficient — raise is kept
// deliberately separate from Focus rather than a second, independent
// ordering that would need to stay in sync with it.
func (l *List) Raise(v *View) {
	i := slices.IndexFunc(l.views, func(o *View) bool { return o == v })
	if i <= 0 {
		return
	}
	l.views = slices.Delete(l.views, i, i+1)
	l.views = slices.Insert(l.views, 0, v)
}

// Focused returns the currently focused view, or nil.
func (l *List) Focused() *View {
	for _, o := range l.views {
		if o.Focused {
			return o
		}
	}
	return nil
}

// Focus sets v as the focused view, starting the focus-in/out
// animations for v and the previously focused view, and transfers
// keyboard focus via seat. It does not raise v: focus and raise are
// independently callable (focus-follows-mouse calls only Focus;
// click-to-focus calls both).
//
// Focus(v) is idempotent: if v's client surface is already focused,
// this is a no-op, so calling it twice in a row starts exactly one
// animation.
func (l *List) Focus(nowMS int64, v *View, seat backend.Seat) {
	prev := l.Focused()
	if prev == v {
		return
	}
	if prev != nil {
		prev.Focused = false
		prev.FocusAnim.AnimatingOut = true
		prev.FocusAnim.Start(nowMS, FocusDurationMS)
	}
	v.Focused = true
	v.FocusAnim.AnimatingOut = false
	v.FocusAnim.Start(nowMS, FocusDurationMS)
	seat.SetKeyboardFocus(v.Toplevel)
}
