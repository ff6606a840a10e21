// SPDX-License-Identifier: Unlicense OR MIT

// Package gather implements the centroid-based window clustering
// operation: pulling scattered views towards their shared centre while
// keeping each view's edge at least Gap away from that centre. Views
// are moved independently, so two gathered views can still overlap.
package gather

import (
	"math"

	"gioui.org/f32"

	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
)

// Gap is the minimum canvas-unit clearance left between a gathered
// view's edge (along its direction from the centroid) and the centroid.
const Gap = 20

// epsilon is the near-coincident-with-centroid threshold below which a
// view is left exactly where it is: it's acceptable for a cluster of
// nearly-coincident windows to remain coincident rather than divide by
// a near-zero distance.
const epsilon = 1e-6

// Run applies the gather algorithm to every view in views, then
// enqueues a viewport snap (via cv.SnapTo) so the new centroid sits at
// the centre of an outW x outH output. Zero views is a no-op; one view
// is not moved but the viewport still snaps to it.
func Run(nowMS int64, views []*view.View, cv *canvas.Canvas, outW, outH float32) {
	if len(views) == 0 {
		return
	}

	centroid := centreOf(views)

	for _, v := range views {
		r := v.ContentRect()
		w, h := r.Dx(), r.Dy()
		moveOne(v, centroid, w, h)
	}

	newCentroid := centreOf(views)
	cv.SnapTo(nowMS, newCentroid, outW, outH)
}

// centreOf returns the mean of every view's content-rectangle centre.
func centreOf(views []*view.View) f32.Point {
	var sum f32.Point
	for _, v := range views {
		sum = sum.Add(v.Centre())
	}
	n := float32(len(views))
	return f32.Point{X: sum.X / n, Y: sum.Y / n}
}

// moveOne repositions v along the centroid->v direction: vector
// V = centre - C, distance d = |V|, unit
// direction u = V/d, edge distance e = min(w/2/|u.x|, h/2/|u.y|) (with
// infinity where a component is ~0), minimum allowed distance
// m = e + Gap, new distance d' = max(d*0.5, m), or 0 if d < epsilon.
func moveOne(v *view.View, centroid f32.Point, w, h float32) {
	centre := v.Centre()
	vec := centre.Sub(centroid)
	d := float32(math.Hypot(float64(vec.X), float64(vec.Y)))

	if d < epsilon {
		return
	}

	u := f32.Point{X: vec.X / d, Y: vec.Y / d}

	e := edgeDistance(u, w, h)
	m := e + Gap
	newD := d * 0.5
	if newD < m {
		newD = m
	}

	newCentre := centroid.Add(f32.Point{X: u.X * newD, Y: u.Y * newD})
	delta := newCentre.Sub(centre)
	v.Position = v.Position.Add(delta)
}

// edgeDistance returns the distance from a rectangle's centre to its
// edge along unit direction u, or +Inf if a component of u is
// negligible.
func edgeDistance(u f32.Point, w, h float32) float32 {
	const near = 1e-6
	ex := float32(math.Inf(1))
	ey := float32(math.Inf(1))
	if absf(u.X) > near {
		ex = (w / 2) / absf(u.X)
	}
	if absf(u.Y) > near {
		ey = (h / 2) / absf(u.Y)
	}
	if ex < ey {
		return ex
	}
	return ey
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
