// SPDX-License-Identifier: Unlicense OR MIT

package view

import (
	"image"
	"testing"

	"gioui.org/f32"

	"github.com/ThatOtherAndrew/Infinidesk/internal/backend"
)

// fakeToplevel is the minimal backend.ToplevelHandle a view test needs.
type fakeToplevel struct {
	w, h int
}

func (f *fakeToplevel) AppID() string                { return "test" }
func (f *fakeToplevel) Title() string                 { return "test" }
func (f *fakeToplevel) Configure(w, h int)             {}
func (f *fakeToplevel) Close()                         {}
func (f *fakeToplevel) GeometryOffset() (int, int)     { return 0, 0 }
func (f *fakeToplevel) ContentSize() (int, int)        { return f.w, f.h }
func (f *fakeToplevel) Texture() backend.Texture       { return nil }
func (f *fakeToplevel) SourceBox() image.Rectangle     { return image.Rectangle{} }
func (f *fakeToplevel) BufferScale() int               { return 1 }
func (f *fakeToplevel) WalkSurfaces(visit func(image.Point, bool)) {}

type fakeSeat struct {
	focused backend.ToplevelHandle
}

func (s *fakeSeat) PointerEnter(backend.ToplevelHandle, f32.Point)                  {}
func (s *fakeSeat) PointerLeave(backend.ToplevelHandle)                            {}
func (s *fakeSeat) PointerMotion(backend.ToplevelHandle, f32.Point)                 {}
func (s *fakeSeat) PointerButton(backend.ToplevelHandle, backend.ButtonID, bool)    {}
func (s *fakeSeat) PointerAxis(backend.ToplevelHandle, backend.AxisSource, float32, float32) {}
func (s *fakeSeat) KeyboardKey(backend.Keysym, backend.Modifier, bool)              {}
func (s *fakeSeat) SetKeyboardFocus(win backend.ToplevelHandle)                     { s.focused = win }
func (s *fakeSeat) SetCursor(backend.CursorShape)                                   {}

func TestMapCentringScenario(t *testing.T) {
	top := &fakeToplevel{w: 800, h: 600}
	v := New(1, top)

	usableCentreCanvas := f32.Point{X: 1920.0 / 2, Y: 1080.0 / 2}
	v.BeginMap(0, usableCentreCanvas)

	want := f32.Point{X: 560, Y: 240}
	if v.Position != want {
		t.Fatalf("position = %v, want %v", v.Position, want)
	}
	gotCentre := v.Centre()
	wantCentre := f32.Point{X: 960, Y: 540}
	if gotCentre != wantCentre {
		t.Fatalf("centre = %v, want %v", gotCentre, wantCentre)
	}
}

func TestFocusSwitchesExactlyOneAnimation(t *testing.T) {
	top1 := &fakeToplevel{w: 100, h: 100}
	top2 := &fakeToplevel{w: 100, h: 100}
	v1, v2 := New(1, top1), New(2, top2)
	var l List
	l.Create(v1)
	l.Create(v2)

	seat := &fakeSeat{}
	l.Focus(1000, v1, seat)
	if !v1.Focused || v1.FocusAnim.StartMS != 1000 {
		t.Fatalf("v1 should be focused with anim started at 1000")
	}

	l.Focus(2000, v2, seat)
	if v1.Focused {
		t.Fatalf("v1.Focused should be false after focusing v2")
	}
	if !v2.Focused {
		t.Fatalf("v2.Focused should be true")
	}
	if v1.FocusAnim.StartMS != 2000 || v2.FocusAnim.StartMS != 2000 {
		t.Fatalf("both animations should start at the same timestamp as the Focus call")
	}
	if !v1.FocusAnim.AnimatingOut {
		t.Fatalf("v1 lost focus, its animation should run in the 'out' direction")
	}
	if v2.FocusAnim.AnimatingOut {
		t.Fatalf("v2 gained focus, its animation should run in the 'in' direction")
	}
	if seat.focused != top2 {
		t.Fatalf("keyboard focus should follow to v2's toplevel")
	}
}

func TestFocusTwiceInSuccessionIsIdempotent(t *testing.T) {
	top := &fakeToplevel{w: 10, h: 10}
	v := New(1, top)
	var l List
	l.Create(v)
	seat := &fakeSeat{}

	l.Focus(100, v, seat)
	startMS := v.FocusAnim.StartMS
	l.Focus(200, v, seat) // same view already focused: must be a no-op
	if v.FocusAnim.StartMS != startMS {
		t.Fatalf("second Focus call on the same view restarted the animation")
	}
}

func TestRaiseIsSeparateFromFocus(t *testing.T) {
	top1 := &fakeToplevel{w: 10, h: 10}
	top2 := &fakeToplevel{w: 10, h: 10}
	v1, v2 := New(1, top1), New(2, top2)
	var l List
	l.Create(v1) // head: v1
	l.Create(v2) // head: v2

	seat := &fakeSeat{}
	l.Focus(0, v1, seat) // focus-follows-mouse: no raise
	if l.Head() != v2 {
		t.Fatalf("head should remain v2 after Focus without Raise")
	}
	l.Raise(v1)
	if l.Head() != v1 {
		t.Fatalf("head should be v1 after Raise")
	}
}

func TestHeadIsAlwaysFocusedViewInvariant(t *testing.T) {
	tops := []*fakeToplevel{{w: 1, h: 1}, {w: 1, h: 1}, {w: 1, h: 1}}
	var l List
	views := make([]*View, len(tops))
	for i, top := range tops {
		views[i] = New(ID(i), top)
		l.Create(views[i])
	}
	seat := &fakeSeat{}
	// Click-to-focus always calls both Focus and Raise together.
	l.Focus(0, views[2], seat)
	l.Raise(views[2])
	if l.Head() != l.Focused() {
		t.Fatalf("head %v != focused %v", l.Head(), l.Focused())
	}
}
