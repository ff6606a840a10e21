// SPDX-License-Identifier: Unlicense OR MIT

// Package input implements the pointer/keyboard state machine: mode
// arbitration (passthrough/move/pan/draw), scroll-pan vs. client-scroll
// arbitration, hit-testing, and focus-follows-mouse.
package input

import (
	"image/color"

	"gioui.org/f32"

	"github.com/ThatOtherAndrew/Infinidesk/internal/annotate"
	"github.com/ThatOtherAndrew/Infinidesk/internal/backend"
	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/config"
	"github.com/ThatOtherAndrew/Infinidesk/internal/gather"
	"github.com/ThatOtherAndrew/Infinidesk/internal/log"
	"github.com/ThatOtherAndrew/Infinidesk/internal/switcher"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
)

// Mode is the pointer's current interaction mode. Resize is reserved:
// it is named among the pointer modes but has no operations defined
// for it in this release.
type Mode uint8

const (
	ModePassthrough Mode = iota
	ModeMove
	ModePan
	ModeDraw
	ModeResize
)

// ScrollPanTimeoutMS is the inactivity timeout that ends a scroll-pan
// gesture.
const ScrollPanTimeoutMS = 100

// HandleScroll reads canvas.ZoomNotchFactor directly rather than keeping
// a local copy of the zoom factor that could drift from it.

// Runner executes the two actions that reach outside the input state
// machine's own dependencies: spawning an external process and
// terminating the event loop. Everything else in the closed action set
// (CloseWindow, ToggleDrawing, ClearDrawings, Undo, Redo, Gather,
// Switcher) is handled directly against the dependencies State already
// holds.
type Runner interface {
	Exec(command string)
	Exit()
}

// State is the input state machine. It holds non-owning references to
// every component a pointer/keyboard event may need to mutate; the
// server constructs one State per seat.
type State struct {
	Mode Mode

	cv    *canvas.Canvas
	views *view.List
	ann   *annotate.Model
	sw    *switcher.Switcher
	seat  backend.Seat

	keybinds map[config.Chord]config.Action
	runner   Runner

	// dragModifier is the configured "window-drag" modifier; super by
	// default.
	dragModifier backend.Modifier

	// mods is the most recently observed modifier bitmask, tracked
	// per-key so the window-drag modifier boolean is always available
	// to the pointer path.
	mods backend.Modifier

	grabbedView *view.View

	scrollPanActive     bool
	scrollPanDeadlineMS int64

	hoveredSwatch int

	outW, outH float32
}

// New returns a passthrough-mode State wired to cv/views/ann/sw/seat,
// dispatching the given keybind table and using runner for Exec/Exit.
func New(cv *canvas.Canvas, views *view.List, ann *annotate.Model, sw *switcher.Switcher, seat backend.Seat, keybinds map[config.Chord]config.Action, runner Runner) *State {
	return &State{
		cv:            cv,
		views:         views,
		ann:           ann,
		sw:            sw,
		seat:          seat,
		keybinds:      keybinds,
		runner:        runner,
		dragModifier:  backend.ModSuper,
		hoveredSwatch: -1,
	}
}

// SetOutputSize records the current output dimensions, consulted by
// Gather and Switcher confirmation for the viewport-snap screen centre.
func (s *State) SetOutputSize(w, h float32) {
	s.outW, s.outH = w, h
}

// HitTest tests views front-to-back (List.Views is already head-first,
// i.e. frontmost-first) against screen-space rendered bounds: a view
// is considered hit when the screen cursor lies within its rendered
// bounds.
func (s *State) HitTest(screen f32.Point) (*view.View, bool) {
	for _, v := range s.views.Views() {
		r := s.cv.ToScreenRect(v.ContentRect())
		if screen.X >= r.Min.X && screen.X < r.Max.X && screen.Y >= r.Min.Y && screen.Y < r.Max.Y {
			log.Debug("input: hit-test hit", "screen", screen, "view_id", v.ID)
			return v, true
		}
	}
	log.Debug("input: hit-test miss", "screen", screen)
	return nil, false
}

// surfaceLocal inverts the combined transform and adds back the
// geometry offset, so the surface tree walker can resolve subsurfaces
// and popups from the result.
func (s *State) surfaceLocal(v *view.View, screen f32.Point) f32.Point {
	canvasPt := s.cv.ToCanvas(screen)
	rel := canvasPt.Sub(v.Position)
	return rel.Add(f32.Point{X: float32(v.GeoOffset.X), Y: float32(v.GeoOffset.Y)})
}

// HandleKey matches a key press against the keybind table (modifier
// bitmask equality, key-symbol equality); on match the bound action
// runs and the key is not forwarded, otherwise it is forwarded to the
// seat. Modifier state is updated on every call, press or release, so
// it stays current for HandleButton/HandleScroll.
func (s *State) HandleKey(nowMS int64, sym backend.Keysym, mods backend.Modifier, pressed bool) {
	log.Debug("input: key event", "sym", sym, "mods", mods, "pressed", pressed)
	s.mods = mods

	if pressed {
		if action, ok := s.keybinds[config.Chord{Mods: mods, Sym: sym}]; ok {
			log.Debug("input: keybind matched", "sym", sym, "mods", mods)
			s.dispatch(nowMS, action)
			return
		}
	}
	s.seat.KeyboardKey(sym, mods, pressed)
}

func (s *State) dispatch(nowMS int64, a config.Action) {
	switch a.Kind {
	case config.ActionExec:
		if s.runner != nil {
			s.runner.Exec(a.Command)
		}
	case config.ActionCloseWindow:
		if v := s.views.Focused(); v != nil {
			v.Toplevel.Close()
		}
	case config.ActionExit:
		if s.runner != nil {
			s.runner.Exit()
		}
	case config.ActionToggleDrawing:
		s.ann.DrawingMode = !s.ann.DrawingMode
	case config.ActionClearDrawings:
		s.ann.Clear()
	case config.ActionUndo:
		s.ann.Undo()
	case config.ActionRedo:
		s.ann.Redo()
	case config.ActionGather:
		gather.Run(nowMS, s.views.Views(), s.cv, s.outW, s.outH)
	case config.ActionSwitcher:
		if s.sw.Active() {
			s.sw.Confirm(nowMS, s.cv, s.views, s.seat, s.outW, s.outH)
		} else {
			s.sw.Activate(s.views.Views())
		}
	}
}

// HandleButton arbitrates a pointer button event against the
// button-press table. Release ends whatever gesture the matching press
// started.
func (s *State) HandleButton(nowMS int64, button backend.ButtonID, pos f32.Point, pressed bool) {
	if !pressed {
		s.endGesture(button)
		return
	}
	s.beginGesture(nowMS, button, pos)
}

func (s *State) beginGesture(nowMS int64, button backend.ButtonID, pos f32.Point) {
	if s.ann.DrawingMode {
		if c, ok := uiButtonAt(pos); ok {
			s.ann.Color = c
			return
		}
		if button == backend.ButtonLeft {
			s.Mode = ModeDraw
			s.ann.BeginStroke(s.cv.ToCanvas(pos))
			return
		}
	}

	v, hit := s.HitTest(pos)

	if s.mods&s.dragModifier != 0 && button == backend.ButtonLeft && hit {
		s.Mode = ModeMove
		s.grabbedView = v
		s.views.Focus(nowMS, v, s.seat)
		s.views.Raise(v)
		v.BeginMove(s.cv.ToCanvas(pos))
		return
	}
	if s.mods&s.dragModifier != 0 && button == backend.ButtonRight {
		s.Mode = ModePan
		s.cv.PanBegin(pos)
		return
	}

	// Plain click: focus and raise any hit view, always forward the
	// button to the client.
	var win backend.ToplevelHandle
	if hit {
		s.views.Focus(nowMS, v, s.seat)
		s.views.Raise(v)
		win = v.Toplevel
	}
	s.seat.PointerButton(win, button, true)
}

func (s *State) endGesture(button backend.ButtonID) {
	switch s.Mode {
	case ModeMove:
		if s.grabbedView != nil {
			s.grabbedView.EndMove()
		}
		s.grabbedView = nil
		s.Mode = ModePassthrough
	case ModePan:
		s.cv.PanEnd()
		s.Mode = ModePassthrough
	case ModeDraw:
		s.ann.EndStroke()
		s.Mode = ModePassthrough
	default:
		s.seat.PointerButton(nil, button, false)
	}
}

// HandleMotion dispatches a pointer motion event by current mode.
func (s *State) HandleMotion(nowMS int64, pos f32.Point) {
	switch s.Mode {
	case ModeMove:
		if s.grabbedView != nil {
			s.grabbedView.UpdateMove(s.cv.ToCanvas(pos))
		}
	case ModePan:
		s.cv.PanUpdate(pos)
	case ModeDraw:
		s.ann.AddPoint(s.cv.ToCanvas(pos))
	default:
		s.handlePassthroughMotion(nowMS, pos)
	}
}

func (s *State) handlePassthroughMotion(nowMS int64, pos f32.Point) {
	if s.ann.DrawingMode {
		if _, ok := uiButtonAt(pos); ok {
			s.hoveredSwatch = swatchIndexAt(pos)
		} else {
			s.hoveredSwatch = -1
		}
	}

	v, hit := s.HitTest(pos)
	if !hit {
		s.seat.PointerLeave(nil)
		s.seat.SetCursor(backend.CursorDefault)
		return
	}

	local := s.surfaceLocal(v, pos)
	s.seat.PointerEnter(v.Toplevel, local)
	s.seat.PointerMotion(v.Toplevel, local)

	// Focus-follows-mouse (no raise), suppressed while a scroll-pan
	// gesture is active to avoid stealing focus mid-navigation.
	if !s.scrollPanActive {
		s.views.Focus(nowMS, v, s.seat)
	}
}

// HandleScroll arbitrates a scroll/axis event: the window-drag
// modifier zooms, an in-progress scroll-pan gesture keeps panning
// regardless of what's under the cursor, otherwise a view under the
// cursor gets the forwarded axis event and empty canvas starts a new
// scroll-pan gesture.
func (s *State) HandleScroll(nowMS int64, pos f32.Point, source backend.AxisSource, dx, dy float32) {
	if s.mods&s.dragModifier != 0 {
		factor := float32(canvas.ZoomNotchFactor)
		if dy < 0 {
			factor = 1 / factor
		}
		s.cv.Zoom(factor, pos)
		return
	}

	if s.scrollPanActive {
		s.cv.PanDelta(dx, dy)
		s.scrollPanDeadlineMS = nowMS + ScrollPanTimeoutMS
		return
	}

	if v, hit := s.HitTest(pos); hit {
		s.seat.PointerAxis(v.Toplevel, source, dx, dy)
		return
	}

	s.scrollPanActive = true
	s.scrollPanDeadlineMS = nowMS + ScrollPanTimeoutMS
	s.cv.PanDelta(dx, dy)
}

// Tick expires the scroll-pan gesture's inactivity timer. The server
// calls this before handling each pointer event and before composing
// each frame, replacing a dedicated event-loop timer with the same
// monotonic clock that already drives the animation tick.
func (s *State) Tick(nowMS int64) {
	if s.scrollPanActive && nowMS >= s.scrollPanDeadlineMS {
		s.scrollPanActive = false
	}
}

// OnViewUnmap cancels any interactive gesture grabbing v: cursor mode
// resets to Passthrough, grabbed_view is cleared, and move_end runs if
// a move gesture was in progress.
func (s *State) OnViewUnmap(v *view.View) {
	if s.grabbedView != v {
		return
	}
	v.EndMove()
	s.grabbedView = nil
	s.Mode = ModePassthrough
}

// uiButtonAt reports the preset colour under screen-space point p, if
// any, for the drawing-mode colour-picker panel.
func uiButtonAt(p f32.Point) (color.NRGBA, bool) {
	i := swatchIndexAt(p)
	if i < 0 {
		return color.NRGBA{}, false
	}
	return presetColors[i], true
}

func swatchIndexAt(p f32.Point) int {
	for i := range presetColors {
		r := swatchRect(i)
		if p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y {
			return i
		}
	}
	return -1
}

const (
	swatchSize = 32
	swatchGap  = 8
	swatchX0   = 8
	swatchY0   = 8
)

func swatchRect(i int) f32.Rectangle {
	x := float32(swatchX0 + i*(swatchSize+swatchGap))
	return f32.Rectangle{
		Min: f32.Point{X: x, Y: swatchY0},
		Max: f32.Point{X: x + swatchSize, Y: swatchY0 + swatchSize},
	}
}

var presetColors = []color.NRGBA{
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	{R: 0xff, A: 0xff},
	{G: 0xff, A: 0xff},
	{B: 0xff, A: 0xff},
	{A: 0xff},
}
