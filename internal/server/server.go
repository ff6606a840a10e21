// SPDX-License-Identifier: Unlicense OR MIT

// Package server wires every compositor component together behind a
// single-threaded, cooperative event loop: one goroutine select-looping
// over one channel per callback source, with no suspension points
// inside a callback.
package server

import (
	"time"

	"gioui.org/f32"

	"github.com/ThatOtherAndrew/Infinidesk/internal/annotate"
	"github.com/ThatOtherAndrew/Infinidesk/internal/backend"
	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/compose"
	"github.com/ThatOtherAndrew/Infinidesk/internal/config"
	"github.com/ThatOtherAndrew/Infinidesk/internal/input"
	"github.com/ThatOtherAndrew/Infinidesk/internal/layershell"
	"github.com/ThatOtherAndrew/Infinidesk/internal/log"
	"github.com/ThatOtherAndrew/Infinidesk/internal/switcher"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
)

// Clock returns the current time in monotonic milliseconds. Tests
// inject a deterministic clock; production uses wallClock.
type Clock func() int64

func wallClock() int64 {
	return time.Now().UnixMilli()
}

// outputEntry bundles one output's layer-shell arrangement state with
// its backend handle.
type outputEntry struct {
	handle   backend.OutputHandle
	ls       *layershell.Output
	primary  bool
}

// Server owns every piece of mutable compositor state and is the sole
// mutator of all of it: the view list and canvas are exclusively
// server-owned.
type Server struct {
	be    backend.Backend
	cfg   *config.Config
	clock Clock

	canvas *canvas.Canvas
	views  *view.List
	ann    *annotate.Model
	sw     *switcher.Switcher
	input  *input.State

	outputs    map[backend.OutputHandle]*outputEntry
	viewsByTop map[backend.ToplevelHandle]*view.View

	nextViewID view.ID

	// exitCh carries the Exit signal into the event-loop goroutine.
	// Exit() may be called from a different goroutine (main's SIGINT/
	// SIGTERM handler), so termination is a channel send rather than a
	// plain bool Run's select loop would read unsynchronised.
	exitCh chan struct{}
}

// New constructs a Server for backend be with the given configuration.
// The returned Server is not yet running; call Run to enter the event
// loop.
func New(be backend.Backend, cfg *config.Config) *Server {
	s := &Server{
		be:         be,
		cfg:        cfg,
		clock:      wallClock,
		canvas:     canvas.New(),
		views:      &view.List{},
		ann:        annotate.NewModel(),
		sw:         switcher.New(),
		outputs:    make(map[backend.OutputHandle]*outputEntry),
		viewsByTop: make(map[backend.ToplevelHandle]*view.View),
		exitCh:     make(chan struct{}, 1),
	}
	s.input = input.New(s.canvas, s.views, s.ann, s.sw, be.Seat(), cfg.Keybinds, s)

	for _, out := range be.Outputs() {
		s.addOutput(out)
	}
	return s
}

func (s *Server) addOutput(h backend.OutputHandle) {
	entry := &outputEntry{handle: h, ls: layershell.NewOutput(h)}
	entry.primary = len(s.outputs) == 0
	s.outputs[h] = entry
	size := h.PhysicalSize()
	s.input.SetOutputSize(float32(size.X), float32(size.Y))
}

func (s *Server) primaryOutput() *outputEntry {
	for _, e := range s.outputs {
		if e.primary {
			return e
		}
	}
	for _, e := range s.outputs {
		return e
	}
	return nil
}

// Run enters the single-threaded event loop, returning when Exit is
// invoked (via a bound keybind action or the signal handler) or when
// any one of the backend's event channels is closed. Steps within a single callback never suspend: every case
// body below runs to completion before the next select iteration.
func (s *Server) Run() error {
	log.Info("server: starting event loop")
	for {
		select {
		case <-s.exitCh:
			return nil
		case ev, ok := <-s.be.Lifecycle():
			if !ok {
				return nil
			}
			s.handleLifecycle(ev)
		case ev, ok := <-s.be.Pointer():
			if !ok {
				return nil
			}
			s.handlePointer(ev)
		case ev, ok := <-s.be.Key():
			if !ok {
				return nil
			}
			s.input.HandleKey(s.clock(), ev.Sym, ev.Mods, ev.Pressed)
		case out, ok := <-s.be.FrameRequests():
			if !ok {
				return nil
			}
			s.renderFrame(out)
		}
	}
}

func (s *Server) handlePointer(ev backend.PointerEvent) {
	now := s.clock()
	s.input.Tick(now)
	switch ev.Kind {
	case backend.PointerMotionEvent:
		s.input.HandleMotion(now, ev.Position)
	case backend.PointerButtonEvent:
		s.input.HandleButton(now, ev.Button, ev.Position, ev.Pressed)
	case backend.PointerAxisEvent:
		s.input.HandleScroll(now, ev.Position, ev.Source, ev.AxisDX, ev.AxisDY)
	}
}

func (s *Server) handleLifecycle(ev backend.LifecycleEvent) {
	switch e := ev.(type) {
	case backend.NewOutputEvent:
		s.addOutput(e.Output)
	case backend.OutputGeometryChangeEvent:
		if entry, ok := s.outputs[e.Output]; ok {
			entry.ls.Arrange()
		}
	case backend.NewToplevelEvent:
		s.onNewToplevel(e.Handle)
	case backend.MapEvent:
		s.onMap(e.Handle)
	case backend.UnmapEvent:
		s.onUnmap(e.Handle)
	case backend.CommitEvent:
		s.onCommit(e.Handle)
	case backend.NewLayerSurfaceEvent:
		s.onNewLayerSurface(e.Handle, e.Output)
	case backend.LayerSurfaceCommitEvent:
		s.onLayerSurfaceCommit(e.Handle)
	case backend.LayerSurfaceDestroyEvent:
		s.onLayerSurfaceDestroy(e.Handle)
	}
}

func (s *Server) onNewToplevel(h backend.ToplevelHandle) {
	s.nextViewID++
	v := view.New(s.nextViewID, h)
	s.views.Create(v)
	s.viewsByTop[h] = v
}

// onMap positions the view's centre at the centre of the owning
// output's usable area, converted to canvas units.
func (s *Server) onMap(h backend.ToplevelHandle) {
	v, ok := s.viewsByTop[h]
	if !ok {
		log.Warn("server: map event for unknown toplevel")
		return
	}
	out := s.primaryOutput()
	if out == nil {
		v.BeginMap(s.clock(), f32.Point{})
		return
	}
	ua := out.ls.UsableArea
	screenCentre := f32.Point{
		X: float32(ua.Min.X+ua.Max.X) / 2,
		Y: float32(ua.Min.Y+ua.Max.Y) / 2,
	}
	canvasCentre := s.canvas.ToCanvas(screenCentre)
	v.BeginMap(s.clock(), canvasCentre)
}

func (s *Server) onUnmap(h backend.ToplevelHandle) {
	v, ok := s.viewsByTop[h]
	if !ok {
		return
	}
	s.input.OnViewUnmap(v)
	v.EndMap()
	s.views.Destroy(v)
	delete(s.viewsByTop, h)
}

func (s *Server) onCommit(h backend.ToplevelHandle) {
	v, ok := s.viewsByTop[h]
	if !ok {
		return
	}
	v.OnCommit()
}

func (s *Server) onNewLayerSurface(h backend.LayerSurfaceHandle, out backend.OutputHandle) {
	entry, ok := s.outputs[out]
	if !ok {
		entry = s.primaryOutput()
	}
	if entry == nil {
		log.Warn("server: new layer surface with no output available; destroying")
		h.Destroy()
		return
	}
	entry.ls.Add(h)
	entry.ls.Arrange()
}

// onLayerSurfaceCommit re-arranges every output: a layer surface's
// commit can change its desired size, which may shift any output's
// usable area, not just the committing surface's own output.
func (s *Server) onLayerSurfaceCommit(backend.LayerSurfaceHandle) {
	for _, entry := range s.outputs {
		entry.ls.Arrange()
	}
}

func (s *Server) onLayerSurfaceDestroy(h backend.LayerSurfaceHandle) {
	for _, entry := range s.outputs {
		entry.ls.Remove(h)
		entry.ls.Arrange()
	}
}

// renderFrame acquires a render pass and composes one output's frame.
// A failed acquisition is logged and the frame is skipped, relying on
// the output's next frame request to retry.
func (s *Server) renderFrame(out backend.OutputHandle) {
	entry, ok := s.outputs[out]
	if !ok {
		log.Warn("server: frame request for unknown output")
		return
	}

	pass, err := s.be.BeginFrame(out)
	if err != nil {
		log.Warn("server: render-pass acquisition failed", "output", out.Name(), "error", err)
		return
	}

	now := s.clock()
	s.input.Tick(now)
	if err := compose.Frame(pass, now, out, entry.ls, s.canvas, s.views, s.ann, s.sw); err != nil {
		log.Warn("server: frame submit failed", "output", out.Name(), "error", err)
	}
}

// Exec runs command via the shell, logging failure without terminating
// the compositor. The same tolerant handling applies uniformly to every
// Exec action, not just startup commands.
func (s *Server) Exec(command string) {
	if err := runShell(command); err != nil {
		log.Warn("server: exec failed", "command", command, "error", err)
	}
}

// Exit requests event-loop termination; Run returns on its next
// select iteration. Safe to call from any goroutine (see exitCh).
func (s *Server) Exit() {
	select {
	case s.exitCh <- struct{}{}:
	default:
	}
}

// RunStartupCommands runs every configured startup command once, after
// the socket is ready.
func (s *Server) RunStartupCommands() {
	for _, cmd := range s.cfg.Startup {
		s.Exec(cmd)
	}
}

// Close releases the backend.
func (s *Server) Close() error {
	return s.be.Close()
}
