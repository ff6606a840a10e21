// SPDX-License-Identifier: Unlicense OR MIT

// Package canvas implements the infinite pannable, zoomable 2D surface
// views and strokes are placed on, and the transform algebra tying
// canvas space to screen space.
package canvas

import (
	"gioui.org/f32"

	"github.com/ThatOtherAndrew/Infinidesk/internal/anim"
)

const (
	MinScale = 0.1
	MaxScale = 4.0

	// ZoomNotchFactor is the scale multiplier applied per scroll notch.
	ZoomNotchFactor = 1.03

	// SnapDurationMS is the default viewport snap animation duration.
	SnapDurationMS = 800
)

// Canvas is the process-wide viewport over the unbounded canvas space.
// Construct it with New: the zero value has Scale 0, which the
// transforms divide by.
type Canvas struct {
	Viewport f32.Point
	Scale    float32

	snap    anim.Progress
	snapSrc f32.Point
	snapDst f32.Point

	panActive   bool
	panCursor   f32.Point
	panViewport f32.Point
}

// New returns a Canvas positioned at the origin with unit scale.
func New() *Canvas {
	c := &Canvas{Scale: 1}
	c.snap.Label = "canvas.snap"
	return c
}

func clampScale(s float32) float32 {
	switch {
	case s < MinScale:
		return MinScale
	case s > MaxScale:
		return MaxScale
	default:
		return s
	}
}

// ToScreen converts a canvas-space point to screen space:
// screen = (canvas - viewport) * scale.
func (c *Canvas) ToScreen(p f32.Point) f32.Point {
	return p.Sub(c.Viewport).Mul(c.Scale)
}

// ToCanvas converts a screen-space point to canvas space, the exact
// inverse of ToScreen.
func (c *Canvas) ToCanvas(p f32.Point) f32.Point {
	return p.Mul(1 / c.Scale).Add(c.Viewport)
}

// ToScreenRect converts a canvas-space rectangle to screen space.
func (c *Canvas) ToScreenRect(r f32.Rectangle) f32.Rectangle {
	return f32.Rectangle{Min: c.ToScreen(r.Min), Max: c.ToScreen(r.Max)}
}

// PanBegin records the viewport and cursor position at the start of a
// motion-driven pan gesture (canvas-pan pointer mode). Scroll-pan
// gestures do not use it; they go through PanDelta.
func (c *Canvas) PanBegin(cursorScreen f32.Point) {
	c.panActive = true
	c.panCursor = cursorScreen
	c.panViewport = c.Viewport
}

// PanUpdate moves the viewport so the canvas point under cursorScreen
// at gesture start stays under the current cursor position.
func (c *Canvas) PanUpdate(cursorScreen f32.Point) {
	if !c.panActive {
		return
	}
	delta := cursorScreen.Sub(c.panCursor)
	c.Viewport = c.panViewport.Sub(delta.Mul(1 / c.Scale))
}

// PanEnd ends the gesture. Idempotent: calling it when no gesture is
// active is a no-op.
func (c *Canvas) PanEnd() {
	c.panActive = false
}

// PanDelta applies a scroll-wheel pan: delta (screen pixels) divided by
// scale, added directly to the viewport. Used for both the initial
// scroll-pan gesture event and every subsequent one; unlike PanUpdate it
// is not gesture-relative, since scroll deltas are already incremental.
func (c *Canvas) PanDelta(dx, dy float32) {
	c.Viewport.X += dx / c.Scale
	c.Viewport.Y += dy / c.Scale
}

// Zoom multiplies the scale by factor, keeping focusScreen (a
// screen-space point, typically the cursor) fixed on screen: the canvas
// point currently under focusScreen is computed first, the new clamped
// scale applied, then the viewport is recomputed so that same canvas
// point maps back to focusScreen.
//
// If the clamp leaves scale unchanged (already saturated at a bound),
// Zoom is a no-op — applying the viewport formula with an unchanged
// scale would otherwise silently perturb the viewport by float error.
func (c *Canvas) Zoom(factor float32, focusScreen f32.Point) {
	canvasFocus := c.ToCanvas(focusScreen)
	newScale := clampScale(c.Scale * factor)
	if newScale == c.Scale {
		return
	}
	c.Scale = newScale
	c.Viewport = canvasFocus.Sub(focusScreen.Mul(1 / c.Scale))
}

// ViewportCentre returns the canvas-space point at the centre of an
// outW x outH output.
func (c *Canvas) ViewportCentre(outW, outH float32) f32.Point {
	return c.ToCanvas(f32.Point{X: outW / 2, Y: outH / 2})
}

// SnapTo begins an animated pan so that targetCanvasCentre ends up at
// the centre of an outW x outH output: viewport = centre -
// screen_centre/scale. Setting viewport = centre directly would only
// be correct when scale == 1 and the output has zero size, so the
// screen-centre term is never dropped.
func (c *Canvas) SnapTo(nowMS int64, targetCanvasCentre f32.Point, outW, outH float32) {
	screenCentre := f32.Point{X: outW / 2, Y: outH / 2}
	dst := targetCanvasCentre.Sub(screenCentre.Mul(1 / c.Scale))
	c.snapSrc = c.Viewport
	c.snapDst = dst
	c.snap.Start(nowMS, SnapDurationMS)
}

// Snapping reports whether a snap animation is in progress.
func (c *Canvas) Snapping() bool {
	return c.snap.Active
}

// Tick advances the snap animation, if any, to nowMS.
func (c *Canvas) Tick(nowMS int64) {
	if !c.snap.Active {
		return
	}
	still := c.snap.Tick(nowMS)
	t := c.snap.Value
	c.Viewport = f32.Point{
		X: anim.LerpF32(c.snapSrc.X, c.snapDst.X, t),
		Y: anim.LerpF32(c.snapSrc.Y, c.snapDst.Y, t),
	}
	if !still {
		c.Viewport = c.snapDst
	}
}

// Animating reports whether the canvas has an in-progress animation
// that requires another frame to be scheduled.
func (c *Canvas) Animating() bool {
	return anim.Any(&c.snap)
}
