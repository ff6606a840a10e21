// SPDX-License-Identifier: Unlicense OR MIT

// Package annotate implements the freehand annotation layer: strokes in
// canvas space, undo/redo, and color selection.
package annotate

import (
	"image/color"
	"math"

	"gioui.org/f32"

	"github.com/ThatOtherAndrew/Infinidesk/internal/log"
)

// MinDecimationDistance is the minimum canvas-unit distance a new point
// must be from the last kept point to be appended to the current
// stroke.
const MinDecimationDistance = 2

// Stroke is an ordered sequence of canvas-space points plus a color. A
// committed stroke always has at least two points; in-progress strokes
// may have fewer.
type Stroke struct {
	Points []f32.Point
	Color  color.NRGBA
}

// Model owns the committed and redo stroke stacks, the in-progress
// stroke, drawing-mode state, and the current color.
type Model struct {
	DrawingMode bool
	Color       color.NRGBA

	committed []Stroke
	redo      []Stroke

	current   *Stroke
	isDrawing bool
}

// NewModel returns a Model with a default black stroke color.
func NewModel() *Model {
	return &Model{Color: color.NRGBA{A: 0xff}}
}

// Committed returns the committed strokes, head-to-tail in commit
// order. Must not be mutated by the caller.
func (m *Model) Committed() []Stroke { return m.committed }

// RedoStack returns the redo stack, most-recently-undone last. Must not
// be mutated by the caller.
func (m *Model) RedoStack() []Stroke { return m.redo }

// Current returns the in-progress stroke, or nil if none.
func (m *Model) Current() *Stroke { return m.current }

// IsDrawing reports whether a stroke is currently in progress.
func (m *Model) IsDrawing() bool { return m.isDrawing }

// BeginStroke starts a new stroke at p with the model's current color.
func (m *Model) BeginStroke(p f32.Point) {
	m.current = &Stroke{Points: []f32.Point{p}, Color: m.Color}
	m.isDrawing = true
}

// AddPoint appends p to the in-progress stroke only if it is further
// than MinDecimationDistance canvas units from the last kept point
// (the decimation rule that keeps strokes smooth without recording
// every pixel of mouse motion). A call with no stroke in progress
// is ignored.
func (m *Model) AddPoint(p f32.Point) {
	if m.current == nil || len(m.current.Points) == 0 {
		return
	}
	last := m.current.Points[len(m.current.Points)-1]
	d := p.Sub(last)
	dist := math.Hypot(float64(d.X), float64(d.Y))
	if dist <= MinDecimationDistance {
		log.Debug("annotate: point below minimum decimation distance, ignoring", "distance", dist)
		return
	}
	m.current.Points = append(m.current.Points, p)
}

// EndStroke finishes the in-progress stroke. Strokes with fewer than
// two points are discarded; otherwise the stroke is appended to the
// committed list and the redo stack is cleared.
func (m *Model) EndStroke() {
	s := m.current
	m.current = nil
	m.isDrawing = false
	if s == nil || len(s.Points) < 2 {
		if s != nil {
			log.Warn("annotate: stroke too short, discarding", "points", len(s.Points))
		}
		return
	}
	m.committed = append(m.committed, *s)
	m.redo = nil
}

// Undo removes the tail of the committed list and pushes it onto redo.
// If a stroke is currently in progress, it is discarded instead of
// touching the committed list.
func (m *Model) Undo() {
	if m.isDrawing {
		m.current = nil
		m.isDrawing = false
		return
	}
	n := len(m.committed)
	if n == 0 {
		return
	}
	last := m.committed[n-1]
	m.committed = m.committed[:n-1]
	m.redo = append(m.redo, last)
}

// Redo pops the most recently undone stroke and appends it to the
// committed list.
func (m *Model) Redo() {
	n := len(m.redo)
	if n == 0 {
		return
	}
	last := m.redo[n-1]
	m.redo = m.redo[:n-1]
	m.committed = append(m.committed, last)
}

// Clear destroys both the committed list and the redo stack. A no-op on
// an already-empty model.
func (m *Model) Clear() {
	m.committed = nil
	m.redo = nil
	m.current = nil
	m.isDrawing = false
}
