// SPDX-License-Identifier: Unlicense OR MIT

package server

import (
	"image"
	"testing"

	"gioui.org/f32"

	"github.com/ThatOtherAndrew/Infinidesk/internal/backend"
	"github.com/ThatOtherAndrew/Infinidesk/internal/backend/fake"
	"github.com/ThatOtherAndrew/Infinidesk/internal/config"
)

func newTestServer(t *testing.T) (*Server, *fake.Backend) {
	t.Helper()
	out := &fake.Output{NameValue: "TEST-1", Size: image.Pt(1920, 1080), Scale: 1}
	be := fake.NewBackend()
	be.OutputList = []backend.OutputHandle{out}

	s := New(be, &config.Config{Scale: 1, Keybinds: map[config.Chord]config.Action{}})
	s.clock = func() int64 { return 1000 }
	return s, be
}

func TestNewToplevelMapCentersInUsableArea(t *testing.T) {
	s, _ := newTestServer(t)

	top := &fake.Toplevel{W: 800, H: 600}
	s.handleLifecycle(backend.NewToplevelEvent{Handle: top})
	s.handleLifecycle(backend.MapEvent{Handle: top})

	v, ok := s.viewsByTop[top]
	if !ok {
		t.Fatal("expected a view to be tracked for the mapped toplevel")
	}
	want := f32.Point{X: 560, Y: 240}
	if v.Position != want {
		t.Fatalf("position = %v, want %v (map-in should centre the window in the output's usable area)", v.Position, want)
	}
}

func TestUnmapDestroysViewAndCancelsGesture(t *testing.T) {
	s, _ := newTestServer(t)
	top := &fake.Toplevel{W: 100, H: 100}
	s.handleLifecycle(backend.NewToplevelEvent{Handle: top})
	s.handleLifecycle(backend.MapEvent{Handle: top})

	v := s.viewsByTop[top]
	s.input.HandleKey(0, 0, backend.ModSuper, true)
	s.input.HandleButton(0, backend.ButtonLeft, f32.Point{X: 960, Y: 540}, true)
	if !v.Moving() {
		t.Fatal("setup assumption failed: expected the super+drag gesture to enter move mode")
	}

	s.handleLifecycle(backend.UnmapEvent{Handle: top})

	if s.views.Len() != 0 {
		t.Fatal("unmap should remove the view from the z-stack")
	}
	if _, ok := s.viewsByTop[top]; ok {
		t.Fatal("unmap should remove the toplevel->view mapping")
	}
	if v.Moving() {
		t.Fatal("unmap should cancel the move gesture on the grabbed view")
	}
}

func TestFrameRequestRendersThroughBackend(t *testing.T) {
	s, be := newTestServer(t)
	out := be.OutputList[0]

	s.renderFrame(out)

	if len(be.Passes) != 1 {
		t.Fatalf("expected exactly one render pass acquired, got %d", len(be.Passes))
	}
	if be.Passes[0].Submits != 1 {
		t.Fatal("expected the acquired pass to be submitted")
	}
}

func TestFrameRequestSkipsOnAcquisitionFailure(t *testing.T) {
	s, be := newTestServer(t)
	out := be.OutputList[0]
	be.BeginFrameErr = errBoom

	s.renderFrame(out)

	if len(be.Passes) != 0 {
		t.Fatal("no pass should be recorded when acquisition fails")
	}
}

func TestNewLayerSurfaceWithNoOutputIsDestroyed(t *testing.T) {
	be := fake.NewBackend()
	s := New(be, &config.Config{Scale: 1, Keybinds: map[config.Chord]config.Action{}})
	s.clock = func() int64 { return 1000 }

	ls := &fake.LayerSurface{LayerValue: backend.LayerTop}
	s.handleLifecycle(backend.NewLayerSurfaceEvent{Handle: ls, Output: nil})

	if !ls.Destroyed {
		t.Fatal("a new layer surface with no output anywhere should be destroyed, not silently dropped")
	}
}

func TestExitActionStopsEventLoop(t *testing.T) {
	s, _ := newTestServer(t)

	// The backend channels stay open and empty, so only the Exit
	// request can end the loop.
	s.Exit()
	if err := s.Run(); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

type testError string

func (e testError) Error() string { return string(e) }

var errBoom = testError("boom")
