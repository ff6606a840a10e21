// SPDX-License-Identifier: Unlicense OR MIT

package gather

import (
	"math"
	"testing"

	"gioui.org/f32"

	"github.com/ThatOtherAndrew/Infinidesk/internal/backend/fake"
	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
)

func approxEq(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func newView(id view.ID, x, y float32, w, h int) *view.View {
	v := view.New(id, &fake.Toplevel{W: w, H: h})
	v.Position = f32.Point{X: x, Y: y}
	return v
}

func TestRunZeroViews(t *testing.T) {
	cv := canvas.New()
	Run(0, nil, cv, 1920, 1080)
	if cv.Viewport != (f32.Point{}) || cv.Scale != 1 {
		t.Fatalf("zero views should be a no-op, got viewport=%v scale=%v", cv.Viewport, cv.Scale)
	}
}

func TestRunOneView(t *testing.T) {
	cv := canvas.New()
	v := newView(1, 100, 100, 200, 200)
	before := v.Position

	Run(0, []*view.View{v}, cv, 1920, 1080)

	if v.Position != before {
		t.Fatalf("single view must not move, got %v want %v", v.Position, before)
	}
	if !cv.Snapping() {
		t.Fatal("single view gather should still enqueue a viewport snap")
	}
}

// TestRunTwoViews covers two 200x200 views 1000px apart on X, gap 20,
// whose centroid sits at (600,100).
func TestRunTwoViews(t *testing.T) {
	cv := canvas.New()
	v1 := newView(1, 0, 0, 200, 200)
	v2 := newView(2, 1000, 0, 200, 200)

	centroidBefore := centreOf([]*view.View{v1, v2})
	const tol = 0.01
	if !approxEq(centroidBefore.X, 600, tol) || !approxEq(centroidBefore.Y, 100, tol) {
		t.Fatalf("centroid = %v, want (600,100)", centroidBefore)
	}

	Run(0, []*view.View{v1, v2}, cv, 1920, 1080)

	// d = 500, e = 100, m = 120, d' = max(250, 120) = 250.
	if !approxEq(v2.Position.X, 750, tol) || !approxEq(v2.Position.Y, 0, tol) {
		t.Fatalf("v2 position = %v, want (750,0)", v2.Position)
	}
	if !approxEq(v1.Position.X, 250, tol) || !approxEq(v1.Position.Y, 0, tol) {
		t.Fatalf("v1 position = %v, want (250,0)", v1.Position)
	}

	// The centroid is unchanged by a symmetric gather, so the viewport
	// should snap to the same point computed above.
	centroidAfter := centreOf([]*view.View{v1, v2})
	if !approxEq(centroidAfter.X, 600, tol) || !approxEq(centroidAfter.Y, 100, tol) {
		t.Fatalf("post-gather centroid = %v, want unchanged (600,100)", centroidAfter)
	}
}

func TestRunNearCoincidentLeftUnmoved(t *testing.T) {
	cv := canvas.New()
	v1 := newView(1, 500, 500, 100, 100)
	v2 := newView(2, 500, 500, 100, 100)
	before1, before2 := v1.Position, v2.Position

	Run(0, []*view.View{v1, v2}, cv, 1920, 1080)

	if v1.Position != before1 || v2.Position != before2 {
		t.Fatalf("near-coincident views should be left unmoved rather than divide by a near-zero distance")
	}
}
