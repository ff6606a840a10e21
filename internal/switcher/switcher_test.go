// SPDX-License-Identifier: Unlicense OR MIT

package switcher

import (
	"testing"

	"gioui.org/f32"

	"github.com/ThatOtherAndrew/Infinidesk/internal/backend"
	fakebackend "github.com/ThatOtherAndrew/Infinidesk/internal/backend/fake"
	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
)

func newView(id view.ID, x, y float32, w, h int) *view.View {
	v := view.New(id, &fakebackend.Toplevel{W: w, H: h})
	v.Position = f32.Point{X: x, Y: y}
	return v
}

func TestActivateRequiresTwoViews(t *testing.T) {
	s := New()
	s.Activate([]*view.View{newView(1, 0, 0, 10, 10)})
	if s.Active() {
		t.Fatal("activating with a single view must not activate the switcher")
	}

	s2 := New()
	s2.Activate(nil)
	if s2.Active() {
		t.Fatal("activating with zero views must not activate the switcher")
	}
}

func TestActivateSelectsSecondView(t *testing.T) {
	v1 := newView(1, 0, 0, 10, 10)
	v2 := newView(2, 0, 0, 10, 10)
	v3 := newView(3, 0, 0, 10, 10)
	s := New()
	s.Activate([]*view.View{v1, v2, v3})
	if !s.Active() {
		t.Fatal("expected switcher to activate with 3 views")
	}
	if s.Selected() != v2 {
		t.Fatalf("expected second view selected, got %v", s.Selected())
	}
}

func TestNextPrevWrapAround(t *testing.T) {
	v1 := newView(1, 0, 0, 10, 10)
	v2 := newView(2, 0, 0, 10, 10)
	s := New()
	s.Activate([]*view.View{v1, v2})

	s.Next()
	if s.Selected() != v1 {
		t.Fatalf("Next from index 1 of 2 should wrap to index 0")
	}
	s.Prev()
	if s.Selected() != v2 {
		t.Fatalf("Prev from index 0 should wrap to index 1")
	}
}

func TestConfirmSnapsAndFocuses(t *testing.T) {
	v1 := newView(1, 0, 0, 200, 200)
	v2 := newView(2, 1000, 1000, 200, 200)
	var list view.List
	list.Create(v1)
	list.Create(v2)
	list.Focus(0, v2, &fakebackend.Seat{})
	list.Raise(v2)

	cv := canvas.New()
	seat := &fakebackend.Seat{}
	s := New()
	s.Activate(list.Views()) // head is v2 (focused); selects v1

	s.Confirm(1000, cv, &list, seat, 1920, 1080)

	if s.Active() {
		t.Fatal("switcher should deactivate after Confirm")
	}
	if !v1.Focused {
		t.Fatal("Confirm should focus the selected view")
	}
	if list.Head() != v1 {
		t.Fatal("Confirm should raise the selected view")
	}
	if !cv.Snapping() {
		t.Fatal("Confirm should enqueue a viewport snap")
	}
}

func TestCancelDoesNotChangeFocus(t *testing.T) {
	v1 := newView(1, 0, 0, 10, 10)
	v2 := newView(2, 0, 0, 10, 10)
	var list view.List
	list.Create(v1)
	list.Create(v2)
	seat := &fakebackend.Seat{}
	list.Focus(0, v2, seat)

	s := New()
	s.Activate(list.Views())
	s.Cancel()

	if s.Active() {
		t.Fatal("Cancel should deactivate the switcher")
	}
	if !v2.Focused || v1.Focused {
		t.Fatal("Cancel must not change focus")
	}
}

func TestRenderBlitsCenteredTexture(t *testing.T) {
	v1 := newView(1, 0, 0, 10, 10)
	v2 := newView(2, 0, 0, 10, 10)
	s := New()
	s.Activate([]*view.View{v1, v2})

	pass := &fakebackend.RenderPass{}
	s.Render(pass, 1920, 1080)

	if len(pass.Textures) != 1 {
		t.Fatalf("expected exactly one textured draw, got %d", len(pass.Textures))
	}
	dst := pass.Textures[0].Dst
	cx := (dst.Min.X + dst.Max.X) / 2
	cy := (dst.Min.Y + dst.Max.Y) / 2
	if cx != 1920/2 || cy != 1080/2 {
		t.Fatalf("overlay not centred: centre=(%d,%d)", cx, cy)
	}
}

var _ backend.RenderPass = (*fakebackend.RenderPass)(nil)
