// SPDX-License-Identifier: Unlicense OR MIT

package compose

import (
	"image"
	"image/color"
	"math"

	"github.com/ThatOtherAndrew/Infinidesk/internal/backend"
)

// circleHalfWidth returns the horizontal half-width of a circle of
// radius r at vertical distance dy from its centre, or 0 if dy is
// outside the circle.
func circleHalfWidth(r, dy float64) float64 {
	v := r*r - dy*dy
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}

// maskCorners paints color over the four corners of dst that lie
// outside a circle of the given radius, visually rounding dst's
// content without clipping the underlying texture. Implemented as a
// per-row rectangle emission: for each row within radius of a corner,
// the mask span is the part of that row outside the corner circle's
// horizontal extent.
func maskCorners(pass backend.RenderPass, dst image.Rectangle, radius int, color backend.Color) {
	radius = clampRadius(radius, dst)
	left, top, right, bottom := dst.Min.X, dst.Min.Y, dst.Max.X, dst.Max.Y
	R := float64(radius)

	for r := 0; r < radius; r++ {
		dy := R - float64(r) - 0.5
		outer := int(math.Round(circleHalfWidth(R, dy)))

		fill(pass, left, top+r, left+radius-outer, top+r+1, color)
		fill(pass, right-radius+outer, top+r, right, top+r+1, color)
		fill(pass, left, bottom-r-1, left+radius-outer, bottom-r, color)
		fill(pass, right-radius+outer, bottom-r-1, right, bottom-r, color)
	}
}

// drawRoundedBorder paints a border of the given width and color
// around dst with rounded corners of the given radius: straight
// rectangles along the four edges, and for each corner a per-row
// annulus span between the outer circle (radius) and the inner circle
// (radius-width).
func drawRoundedBorder(pass backend.RenderPass, dst image.Rectangle, radius, width int, color backend.Color) {
	radius = clampRadius(radius, dst)
	if width > radius {
		width = radius
	}
	left, top, right, bottom := dst.Min.X, dst.Min.Y, dst.Max.X, dst.Max.Y

	fill(pass, left+radius, top, right-radius, top+width, color)
	fill(pass, left+radius, bottom-width, right-radius, bottom, color)
	fill(pass, left, top+radius, left+width, bottom-radius, color)
	fill(pass, right-width, top+radius, right, bottom-radius, color)

	R := float64(radius)
	innerR := R - float64(width)
	for r := 0; r < radius; r++ {
		dy := R - float64(r) - 0.5
		outer := int(math.Round(circleHalfWidth(R, dy)))
		inner := int(math.Round(circleHalfWidth(innerR, dy)))

		fill(pass, left+radius-outer, top+r, left+radius-inner, top+r+1, color)
		fill(pass, right-radius+inner, top+r, right-radius+outer, top+r+1, color)
		fill(pass, left+radius-outer, bottom-r-1, left+radius-inner, bottom-r, color)
		fill(pass, right-radius+inner, bottom-r-1, right-radius+outer, bottom-r, color)
	}
}

func clampRadius(radius int, dst image.Rectangle) int {
	if m := dst.Dx() / 2; radius > m {
		radius = m
	}
	if m := dst.Dy() / 2; radius > m {
		radius = m
	}
	if radius < 0 {
		radius = 0
	}
	return radius
}

func fill(pass backend.RenderPass, x0, y0, x1, y1 int, c backend.Color) {
	r := image.Rect(x0, y0, x1, y1)
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return
	}
	pass.FillRect(r, c)
}

// colorOf converts a straight image/color.NRGBA stroke colour to the
// backend's straight-alpha Color.
func colorOf(c color.NRGBA) backend.Color {
	return backend.Color{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}
