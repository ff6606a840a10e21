// SPDX-License-Identifier: Unlicense OR MIT

// Package layershell implements the layer-shell arrangement algorithm:
// computing each layer surface's position and the resulting usable area
// new windows are centred in.
package layershell

import (
	"image"

	"golang.org/x/exp/slices"

	"github.com/ThatOtherAndrew/Infinidesk/internal/backend"
	"github.com/ThatOtherAndrew/Infinidesk/internal/log"
)

// orderedLayers is the fixed back-to-front processing order.
var orderedLayers = [...]backend.Layer{
	backend.LayerBackground,
	backend.LayerBottom,
	backend.LayerTop,
	backend.LayerOverlay,
}

// ClampLayer clamps an out-of-range layer index to LayerTop: a layer
// surface assigned to an unknown layer index is treated as top rather
// than rejected.
func ClampLayer(l backend.Layer) backend.Layer {
	switch l {
	case backend.LayerBackground, backend.LayerBottom, backend.LayerTop, backend.LayerOverlay:
		return l
	default:
		log.Warn("layershell: unknown layer index, clamping to top", "layer", l)
		return backend.LayerTop
	}
}

// Output holds one physical output's four ordered per-layer sequences
// of layer surfaces and the arranger's computed usable area.
type Output struct {
	Handle backend.OutputHandle

	layers [4]([]backend.LayerSurfaceHandle)

	UsableArea image.Rectangle
}

func layerIndex(l backend.Layer) int {
	switch l {
	case backend.LayerBackground:
		return 0
	case backend.LayerBottom:
		return 1
	case backend.LayerTop:
		return 2
	default:
		return 3
	}
}

// Add appends a layer surface to its (clamped) layer's ordered
// sequence.
func (o *Output) Add(ls backend.LayerSurfaceHandle) {
	i := layerIndex(ClampLayer(ls.Layer()))
	o.layers[i] = append(o.layers[i], ls)
}

// Remove deletes a layer surface from whichever layer it is in.
func (o *Output) Remove(ls backend.LayerSurfaceHandle) {
	for i := range o.layers {
		idx := slices.Index(o.layers[i], ls)
		if idx >= 0 {
			o.layers[i] = slices.Delete(o.layers[i], idx, idx+1)
			return
		}
	}
}

// Layer returns the ordered sequence of surfaces assigned to l, for the
// composition pipeline's per-layer render steps.
func (o *Output) Layer(l backend.Layer) []backend.LayerSurfaceHandle {
	return o.layers[layerIndex(l)]
}

// FullArea returns the output's effective screen-space rectangle.
func FullArea(h backend.OutputHandle) image.Rectangle {
	return image.Rectangle{Max: h.PhysicalSize()}
}

// Arrange recomputes every layer surface's position and the resulting
// usable area: layers are processed in fixed order, each surface's
// position is derived from its anchor+margins within the current full
// area, and a positive exclusive zone shrinks the usable area along
// the anchored edge.
func (o *Output) Arrange() {
	log.Debug("layershell: arrange", "output", o.Handle.Name(), "full_area", FullArea(o.Handle))
	full := FullArea(o.Handle)
	usable := full

	for _, layer := range orderedLayers {
		for _, ls := range o.Layer(layer) {
			x, y, w, h := placement(ls, full)
			ls.Configure(x, y, w, h)

			if zone := ls.ExclusiveZone(); zone > 0 {
				usable = shrink(usable, ls.Anchor(), zone)
			}
		}
	}

	o.UsableArea = usable
	log.Debug("layershell: arrange done", "output", o.Handle.Name(), "usable_area", usable)
}

// placement computes a layer surface's screen-space position and size
// from its anchor bitmask, margins, and desired size, within area.
func placement(ls backend.LayerSurfaceHandle, area image.Rectangle) (x, y, w, h int) {
	top, right, bottom, left := ls.Margins()
	w, h = ls.DesiredSize()
	a := ls.Anchor()

	anchoredH := a&backend.AnchorLeft != 0 && a&backend.AnchorRight != 0
	anchoredV := a&backend.AnchorTop != 0 && a&backend.AnchorBottom != 0

	if anchoredH {
		w = area.Dx() - left - right
	}
	if anchoredV {
		h = area.Dy() - top - bottom
	}

	switch {
	case a&backend.AnchorLeft != 0:
		x = area.Min.X + left
	case a&backend.AnchorRight != 0:
		x = area.Max.X - right - w
	default:
		x = area.Min.X + (area.Dx()-w)/2
	}

	switch {
	case a&backend.AnchorTop != 0:
		y = area.Min.Y + top
	case a&backend.AnchorBottom != 0:
		y = area.Max.Y - bottom - h
	default:
		y = area.Min.Y + (area.Dy()-h)/2
	}

	return x, y, w, h
}

// shrink reduces area by zone pixels along the one edge a layer
// surface's anchors imply: an edge is implied when it is anchored and
// its opposite edge is not (a full-width top bar anchored
// top+left+right shrinks the top edge). Top and bottom are checked
// before left and right. A surface with no such edge (anchored to
// top+bottom only, left+right only, all four edges, or none) leaves
// area unchanged.
func shrink(area image.Rectangle, a backend.Anchor, zone int) image.Rectangle {
	switch {
	case a&backend.AnchorTop != 0 && a&backend.AnchorBottom == 0:
		area.Min.Y += zone
	case a&backend.AnchorBottom != 0 && a&backend.AnchorTop == 0:
		area.Max.Y -= zone
	case a&backend.AnchorLeft != 0 && a&backend.AnchorRight == 0:
		area.Min.X += zone
	case a&backend.AnchorRight != 0 && a&backend.AnchorLeft == 0:
		area.Max.X -= zone
	}
	return area
}

// NewOutput returns an Output wrapping an empty Arrange()-initialised
// state for h, with usable area starting out equal to the full area.
func NewOutput(h backend.OutputHandle) *Output {
	o := &Output{Handle: h}
	o.UsableArea = FullArea(h)
	return o
}
