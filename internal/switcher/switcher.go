// SPDX-License-Identifier: Unlicense OR MIT

// Package switcher implements the spatial alt-tab overlay: cycling
// through the server's z-stack and, on confirm, panning the viewport so
// the selected view's centre lands on screen centre.
package switcher

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/ThatOtherAndrew/Infinidesk/internal/backend"
	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
)

// panelColor, entryColor, selColor, and labelColor are the overlay's
// panel background, unselected/selected entry fill, and per-entry
// label colour.
var (
	panelColor = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x22, A: 0xe8}
	entryColor = color.NRGBA{R: 0x3a, G: 0x3a, B: 0x42, A: 0xff}
	selColor   = color.NRGBA{R: 0x59, G: 0x8c, B: 0xf2, A: 0xff}
	labelColor = color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf2, A: 0xff}
)

const (
	entryW      = 160
	entryH      = 100
	entryGap    = 16
	panelPad    = 20
	labelPadX   = 10
	labelBaseDY = 16 // distance from an entry's bottom edge to the label baseline
)

// overlayTexture adapts an image.RGBA to backend.Texture so the cached
// bitmap can be blitted through the same RenderPass.DrawTexture path
// every other textured draw uses.
type overlayTexture struct {
	img *image.RGBA
}

func (t *overlayTexture) Bounds() image.Point { return t.img.Rect.Size() }

// Switcher is the spatial alt-tab state: active/inactive, the currently
// selected view, and a dirty offscreen-bitmap cache.
type Switcher struct {
	active   bool
	views    []*view.View
	selected int

	dirty   bool
	cache   *overlayTexture
}

// New returns an inactive Switcher.
func New() *Switcher {
	return &Switcher{}
}

// Active reports whether the switcher overlay should be drawn, also
// satisfying internal/compose.Overlay.
func (s *Switcher) Active() bool {
	return s.active
}

// Activate enters the switcher over the given z-stack snapshot. If
// fewer than two views are present, activation is refused — with only
// zero or one view there is nothing to switch to. On activation the
// second view in z-order is selected (the first being already
// focused).
func (s *Switcher) Activate(views []*view.View) {
	if len(views) < 2 {
		return
	}
	s.active = true
	s.views = append([]*view.View(nil), views...)
	s.selected = 1
	s.dirty = true
}

// Cancel deactivates the switcher with no focus change.
func (s *Switcher) Cancel() {
	s.deactivate()
}

// Next selects the following view in z-order, wrapping around.
func (s *Switcher) Next() {
	if !s.active || len(s.views) == 0 {
		return
	}
	s.selected = (s.selected + 1) % len(s.views)
	s.dirty = true
}

// Prev selects the preceding view in z-order, wrapping around.
func (s *Switcher) Prev() {
	if !s.active || len(s.views) == 0 {
		return
	}
	s.selected = (s.selected - 1 + len(s.views)) % len(s.views)
	s.dirty = true
}

// Selected returns the currently highlighted view, or nil if inactive.
func (s *Switcher) Selected() *view.View {
	if !s.active || s.selected < 0 || s.selected >= len(s.views) {
		return nil
	}
	return s.views[s.selected]
}

// Confirm snaps the viewport (via cv.SnapTo) so the selected view's
// centre lands on screen centre, focuses and raises it, then
// deactivates the switcher. A no-op if the switcher is inactive.
func (s *Switcher) Confirm(nowMS int64, cv *canvas.Canvas, list *view.List, seat backend.Seat, outW, outH float32) {
	sel := s.Selected()
	if sel == nil {
		s.deactivate()
		return
	}
	cv.SnapTo(nowMS, sel.Centre(), outW, outH)
	list.Focus(nowMS, sel, seat)
	list.Raise(sel)
	s.deactivate()
}

func (s *Switcher) deactivate() {
	s.active = false
	s.views = nil
	s.selected = 0
	s.dirty = false
	s.cache = nil // release the cached overlay bitmap once the switcher deactivates
}

// Render rasterises (if dirty) the overlay bitmap at physical
// resolution and blits it once, centred in screen space.
func (s *Switcher) Render(pass backend.RenderPass, screenW, screenH int) {
	if !s.active || len(s.views) == 0 {
		return
	}
	if s.dirty || s.cache == nil {
		s.cache = &overlayTexture{img: rasterise(s.views, s.selected)}
		s.dirty = false
	}

	size := s.cache.Bounds()
	x := (screenW - size.X) / 2
	y := (screenH - size.Y) / 2
	dst := image.Rect(x, y, x+size.X, y+size.Y)
	pass.DrawTexture(s.cache, image.Rectangle{Max: size}, dst, backend.FilterBilinear)
}

// rasterise draws the panel (a plain rectangle; its corners are not
// rounded) and one entry rectangle per view,
// highlighting the selected index and labelling each entry with its
// title (falling back to its app id), into an offscreen RGBA bitmap
// using golang.org/x/image/draw for the panel/entry fills and
// drawLabel (golang.org/x/image/font, backed by the bundled Go Regular
// face) for the glyphs, the way a CPU-composited overlay bitmap is
// built without a GPU shader collaborator in scope.
func rasterise(views []*view.View, selected int) *image.RGBA {
	n := len(views)
	w := panelPad*2 + n*entryW + (n-1)*entryGap
	h := panelPad*2 + entryH
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	draw.Draw(img, img.Bounds(), &image.Uniform{C: panelColor}, image.Point{}, draw.Src)

	for i, v := range views {
		ex := panelPad + i*(entryW+entryGap)
		r := image.Rect(ex, panelPad, ex+entryW, panelPad+entryH)
		c := entryColor
		if i == selected {
			c = selColor
		}
		draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)

		label := v.Toplevel.Title()
		if label == "" {
			label = v.Toplevel.AppID()
		}
		drawLabel(img, label, r.Min.X+labelPadX, r.Max.Y-labelBaseDY, entryW-2*labelPadX, labelColor)
	}

	return img
}
