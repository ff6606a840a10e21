// SPDX-License-Identifier: Unlicense OR MIT

package annotate

import (
	"testing"

	"gioui.org/f32"
)

func drawStroke(m *Model, pts ...f32.Point) {
	m.BeginStroke(pts[0])
	for _, p := range pts[1:] {
		m.AddPoint(p)
	}
	m.EndStroke()
}

func TestUndoRedoOrderingScenario(t *testing.T) {
	m := NewModel()
	drawStroke(m, f32.Point{X: 0, Y: 0}, f32.Point{X: 10, Y: 0})  // A
	drawStroke(m, f32.Point{X: 0, Y: 0}, f32.Point{X: 0, Y: 10})  // B
	drawStroke(m, f32.Point{X: 5, Y: 5}, f32.Point{X: 5, Y: 15})  // C

	if len(m.Committed()) != 3 {
		t.Fatalf("expected 3 committed strokes, got %d", len(m.Committed()))
	}

	m.Undo() // committed=[A,B], redo=[C]
	if len(m.Committed()) != 2 || len(m.RedoStack()) != 1 {
		t.Fatalf("after first undo: committed=%d redo=%d, want 2,1", len(m.Committed()), len(m.RedoStack()))
	}

	m.Undo() // committed=[A], redo=[C,B]
	if len(m.Committed()) != 1 || len(m.RedoStack()) != 2 {
		t.Fatalf("after second undo: committed=%d redo=%d, want 1,2", len(m.Committed()), len(m.RedoStack()))
	}

	m.Redo() // committed=[A,B], redo=[C]
	if len(m.Committed()) != 2 || len(m.RedoStack()) != 1 {
		t.Fatalf("after redo: committed=%d redo=%d, want 2,1", len(m.Committed()), len(m.RedoStack()))
	}

	drawStroke(m, f32.Point{X: 1, Y: 1}, f32.Point{X: 2, Y: 9}) // D
	if len(m.Committed()) != 3 {
		t.Fatalf("expected 3 committed strokes after D, got %d", len(m.Committed()))
	}
	if len(m.RedoStack()) != 0 {
		t.Fatalf("redo stack should be cleared after committing a new stroke, got %d", len(m.RedoStack()))
	}
}

func TestUndoThenRedoWithNoInterposedDrawRestoresState(t *testing.T) {
	m := NewModel()
	drawStroke(m, f32.Point{X: 0, Y: 0}, f32.Point{X: 5, Y: 5})
	before := append([]Stroke(nil), m.Committed()...)

	m.Undo()
	m.Redo()

	after := m.Committed()
	if len(before) != len(after) {
		t.Fatalf("committed list changed size: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if len(before[i].Points) != len(after[i].Points) {
			t.Fatalf("stroke %d point count changed", i)
		}
	}
}

func TestStrokeShorterThanTwoPointsIsDiscarded(t *testing.T) {
	m := NewModel()
	m.BeginStroke(f32.Point{X: 0, Y: 0})
	m.EndStroke() // never grew past 1 point
	if len(m.Committed()) != 0 {
		t.Fatalf("single-point stroke should be discarded, got %d committed", len(m.Committed()))
	}
}

func TestAddPointDecimatesBelowMinimumDistance(t *testing.T) {
	m := NewModel()
	m.BeginStroke(f32.Point{X: 0, Y: 0})
	m.AddPoint(f32.Point{X: 1, Y: 0}) // distance 1, below MinDecimationDistance=2
	m.AddPoint(f32.Point{X: 3, Y: 0}) // distance 3 from (0,0), kept
	m.EndStroke()

	if got := len(m.Committed()[0].Points); got != 2 {
		t.Fatalf("expected decimation to drop the close point, got %d points", got)
	}
}

func TestUndoDuringInProgressStrokeDiscardsItInsteadOfCommitted(t *testing.T) {
	m := NewModel()
	drawStroke(m, f32.Point{X: 0, Y: 0}, f32.Point{X: 5, Y: 0}) // committed: [A]
	m.BeginStroke(f32.Point{X: 9, Y: 9})
	m.AddPoint(f32.Point{X: 20, Y: 20})

	m.Undo()

	if len(m.Committed()) != 1 {
		t.Fatalf("undo during a stroke must not touch the committed list, got %d", len(m.Committed()))
	}
	if m.IsDrawing() {
		t.Fatalf("in-progress stroke should have been discarded")
	}
}

func TestBeginningNewStrokeAfterUndoLeavesRedoEmptyOnceEnded(t *testing.T) {
	m := NewModel()
	drawStroke(m, f32.Point{X: 0, Y: 0}, f32.Point{X: 10, Y: 10})
	drawStroke(m, f32.Point{X: 2, Y: 2}, f32.Point{X: 20, Y: 20})
	m.Undo()
	if len(m.RedoStack()) == 0 {
		t.Fatalf("expected a pending redo before the new stroke")
	}

	drawStroke(m, f32.Point{X: 9, Y: 9}, f32.Point{X: 9, Y: 1})
	if len(m.RedoStack()) != 0 {
		t.Fatalf("redo stack should be empty once the new stroke ends, got %d", len(m.RedoStack()))
	}
}

func TestClearIsIdempotentOnEmptyState(t *testing.T) {
	m := NewModel()
	m.Clear() // no-op on an empty model
	if len(m.Committed()) != 0 || len(m.RedoStack()) != 0 {
		t.Fatalf("Clear on empty model should remain empty")
	}
}
