// SPDX-License-Identifier: Unlicense OR MIT

// Package compose implements the per-frame composition pipeline: a
// fixed 14-step frame order, the per-view rendering contract, and the
// CPU rasterisation of rounded corners and borders that bypasses the
// scene graph gio's op/clip package would otherwise provide (see
// op/clip/shapes.go, which this package adapts the corner-radius
// parameterisation of but not its Bezier-path mechanism, since the
// frame order here fixes a per-row circle rasterisation instead).
package compose

import (
	"image"
	"math"

	"gioui.org/f32"

	"github.com/ThatOtherAndrew/Infinidesk/internal/annotate"
	"github.com/ThatOtherAndrew/Infinidesk/internal/backend"
	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/layershell"
	"github.com/ThatOtherAndrew/Infinidesk/internal/log"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
)

// BackgroundColor is the clear colour for step 3 of the frame.
var BackgroundColor = backend.Color{R: 0.18, G: 0.18, B: 0.18, A: 1}

// UnfocusedBorder and FocusedBorder are the border colours the view
// focus animation interpolates between as its progress advances.
var (
	UnfocusedBorder = backend.Color{R: 0.3, G: 0.3, B: 0.32, A: 1}
	FocusedBorder   = backend.Color{R: 0.35, G: 0.55, B: 0.95, A: 1}
)

const (
	// CornerRadius is the view content's rounded-corner radius before
	// the per-view combined scale (canvas scale x output HiDPI scale x
	// map-in scale) is applied; the rendered radius in physical pixels
	// is CornerRadius times that scale.
	CornerRadius = 10
	// BorderWidth is the rounded border's thickness, scaled by the same
	// per-view combined scale as CornerRadius.
	BorderWidth = 3

	// drawPanelHeight is the screen-space height of the drawing-mode UI
	// panel rendered by step 11.
	drawPanelHeight = 48
)

var drawPanelColor = backend.Color{R: 0.12, G: 0.12, B: 0.14, A: 0.92}

// Overlay is satisfied by the spatial switcher: a single hook the
// composition pipeline calls unconditionally, letting it decide
// whether it has anything to draw.
type Overlay interface {
	Active() bool
	Render(pass backend.RenderPass, screenW, screenH int)
}

// Frame renders one output's frame, following a fixed 14-step order.
// overlay may be nil if no switcher is wired.
func Frame(
	pass backend.RenderPass,
	nowMS int64,
	output backend.OutputHandle,
	lsOutput *layershell.Output,
	cv *canvas.Canvas,
	views *view.List,
	ann *annotate.Model,
	overlay Overlay,
) error {
	// Step 1: advance animations.
	cv.Tick(nowMS)
	for _, v := range views.Views() {
		v.UpdateAnimations(nowMS)
	}

	os := output.HiDPIScale()
	size := output.PhysicalSize()
	screen := image.Rectangle{Max: size}

	// Step 2 (begin) is the caller's responsibility: pass is already
	// acquired. Step 3: clear to background colour.
	pass.FillRect(screen, BackgroundColor)

	// Steps 4-5: background and bottom layer-shell surfaces.
	renderLayer(pass, lsOutput, backend.LayerBackground)
	renderLayer(pass, lsOutput, backend.LayerBottom)

	// Step 6: views back-to-front (reverse z-order; head is frontmost).
	stack := views.Views()
	for i := len(stack) - 1; i >= 0; i-- {
		renderView(pass, stack[i], cv, os)
	}

	// Step 7: popups, same reverse order, on top of all views. The
	// backend boundary does not expose per-subsurface textures (only
	// WalkSurfaces' relative positions, used for hit-testing and
	// frame-done), so there is nothing further to rasterise here beyond
	// what step 6 already drew from each toplevel's committed buffer.
	for i := len(stack) - 1; i >= 0; i-- {
		stack[i].Toplevel.WalkSurfaces(func(image.Point, bool) {})
	}

	// Steps 8-9: top and overlay layer-shell surfaces.
	renderLayer(pass, lsOutput, backend.LayerTop)
	renderLayer(pass, lsOutput, backend.LayerOverlay)

	// Step 10: annotation strokes, world-space.
	renderStrokes(pass, ann, cv, os)

	// Step 11: drawing-mode UI panel, screen space.
	if ann.DrawingMode {
		pass.FillRect(image.Rect(0, 0, size.X, drawPanelHeight), drawPanelColor)
	}

	// Step 12: switcher overlay, centred in screen space.
	if overlay != nil && overlay.Active() {
		overlay.Render(pass, size.X, size.Y)
	}

	// Step 13: submit.
	if err := pass.Submit(); err != nil {
		return err
	}

	// Step 14: frame-done to every mapped surface.
	output.FrameDone(nowMS)
	return nil
}

func renderLayer(pass backend.RenderPass, lsOutput *layershell.Output, layer backend.Layer) {
	if lsOutput == nil {
		return
	}
	for _, ls := range lsOutput.Layer(layer) {
		tex := ls.Texture()
		dst := ls.ConfiguredRect()
		if tex == nil || dst.Dx() <= 0 || dst.Dy() <= 0 {
			continue
		}
		src := ls.SourceBox()
		if src.Empty() {
			log.Debug("compose: layer surface has no viewporter source box, using full buffer")
			src = image.Rectangle{Max: tex.Bounds()}
		}
		pass.DrawTexture(tex, src, dst, backend.FilterBilinear)
	}
}

// renderView draws one view's content, corner mask, and border.
func renderView(pass backend.RenderPass, v *view.View, cv *canvas.Canvas, os float32) {
	tex := v.Toplevel.Texture()
	if tex == nil {
		log.Debug("compose: view has no committed texture, skipping", "view_id", v.ID)
		return
	}
	bounds := tex.Bounds()
	if bounds.X <= 0 || bounds.Y <= 0 {
		log.Warn("compose: view texture has zero-sized buffer, skipping", "view_id", v.ID, "bounds", bounds)
		return
	}

	contentW, contentH := v.Toplevel.ContentSize()
	cs := cv.Scale
	animScale := v.MapScale()
	c := cs * os * animScale

	w := roundf(float32(contentW) * c)
	h := roundf(float32(contentH) * c)
	if w <= 0 || h <= 0 {
		return
	}
	fullW := roundf(float32(contentW) * os * cs)
	fullH := roundf(float32(contentH) * os * cs)
	offX := (fullW - w) / 2
	offY := (fullH - h) / 2

	topLeft := cv.ToScreen(v.Position)
	physX := roundf(topLeft.X*os) + offX
	physY := roundf(topLeft.Y*os) + offY
	dst := image.Rect(physX, physY, physX+w, physY+h)
	if dst.Dx() <= 0 || dst.Dy() <= 0 {
		log.Debug("compose: view destination rectangle is non-positive, skipping", "view_id", v.ID, "dst", dst)
		return
	}

	src := v.Toplevel.SourceBox()
	if src.Empty() {
		log.Debug("compose: view has no viewporter source box, using full buffer", "view_id", v.ID)
		src = image.Rectangle{Max: bounds}
	}
	bufferScale := v.Toplevel.BufferScale()
	if bufferScale <= 0 {
		log.Warn("compose: view has invalid buffer scale, defaulting to 1", "view_id", v.ID, "buffer_scale", bufferScale)
		bufferScale = 1
	}
	filter := backend.FilterBilinear
	if c == 1 && bufferScale == 1 {
		filter = backend.FilterNearest
	}

	// (a) textured content.
	pass.DrawTexture(tex, src, dst, filter)

	// (b) background-coloured corner masks.
	radius := int(roundf(CornerRadius * c))
	if radius > 0 {
		maskCorners(pass, dst, radius, BackgroundColor)
	}

	// (c) rounded border, drawn last so the client texture never
	// occludes it.
	borderColor := focusBorderColor(v)
	borderWidth := int(roundf(BorderWidth * c))
	if radius > 0 && borderWidth > 0 {
		drawRoundedBorder(pass, dst, radius, borderWidth, borderColor)
	}
}

func renderStrokes(pass backend.RenderPass, ann *annotate.Model, cv *canvas.Canvas, os float32) {
	const stepPx = 2
	lineWidth := float32(4) // canvas units; matches a typical default pen width

	draw := func(s annotate.Stroke) {
		sq := lineWidth * cv.Scale * os
		if sq < 1 {
			sq = 1
		}
		half := sq / 2
		for i := 0; i+1 < len(s.Points); i++ {
			a := cv.ToScreen(s.Points[i])
			b := cv.ToScreen(s.Points[i+1])
			dist := float32(math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y)))
			steps := int(dist/stepPx) + 1
			for k := 0; k <= steps; k++ {
				t := float32(k) / float32(steps)
				p := f32.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
				p = p.Mul(os)
				cx, cy := roundf(p.X), roundf(p.Y)
				dst := image.Rect(cx-int(half), cy-int(half), cx+int(half), cy+int(half))
				if dst.Dx() > 0 && dst.Dy() > 0 {
					pass.FillRect(dst, colorOf(s.Color))
				}
			}
		}
	}

	for _, s := range ann.Committed() {
		draw(s)
	}
	if cur := ann.Current(); cur != nil {
		draw(*cur)
	}
}

func roundf(v float32) int {
	return int(math.Round(float64(v)))
}

func lerpColor(a, b backend.Color, t float64) backend.Color {
	f := float32(t)
	return backend.Color{
		R: a.R + (b.R-a.R)*f,
		G: a.G + (b.G-a.G)*f,
		B: a.B + (b.B-a.B)*f,
		A: a.A + (b.A-a.A)*f,
	}
}

// focusBorderColor interpolates the view's border colour along its
// focus animation. AnimatingOut means v just lost focus, so the border
// fades Focused -> Unfocused as progress advances; gaining focus fades
// the other way.
func focusBorderColor(v *view.View) backend.Color {
	from, to := UnfocusedBorder, FocusedBorder
	if v.FocusAnim.AnimatingOut {
		from, to = FocusedBorder, UnfocusedBorder
	}
	return lerpColor(from, to, v.FocusAnim.Value)
}
