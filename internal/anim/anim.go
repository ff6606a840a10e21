// SPDX-License-Identifier: Unlicense OR MIT

// Package anim implements the monotonic-time-driven interpolation used
// by every animated property in the compositor: view focus borders,
// map-in scale/opacity, and canvas viewport snaps.
package anim

import "github.com/ThatOtherAndrew/Infinidesk/internal/log"

// EaseOutCubic maps t in [0,1] to the cubic ease-out curve 1-(1-t)^3.
// Values outside [0,1] are not clamped; callers clamp t first so the
// curve's monotonicity is visible at the call site.
func EaseOutCubic(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv*inv
}

// Clamp01 clamps t to the closed interval [0,1].
func Clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}

// Progress is a single time-driven animation record: a start timestamp
// and a duration, advanced by calling Tick with the current monotonic
// time. It underlies view focus/map animations and the canvas snap.
type Progress struct {
	Active   bool
	StartMS  int64
	Duration int64 // milliseconds

	// Value is the eased [0,1] progress as of the last Tick.
	Value float64

	// Label names the animation for debug logging only (view focus,
	// view map, canvas snap, ...); Start/Tick log nothing if it is
	// empty.
	Label string
}

// Start begins the animation at nowMS, zeroing progress.
func (p *Progress) Start(nowMS int64, durationMS int64) {
	p.Active = true
	p.StartMS = nowMS
	p.Duration = durationMS
	p.Value = 0
	if p.Label != "" {
		log.Debug("anim: start", "label", p.Label, "start_ms", nowMS, "duration_ms", durationMS)
	}
}

// Done reports whether the animation has reached Value == 1 (or was
// never started).
func (p *Progress) Done() bool {
	return !p.Active || p.Value >= 1
}

// Tick advances the animation to nowMS and reports whether it is still
// running afterwards. Records that are inactive or already complete are
// left untouched.
func (p *Progress) Tick(nowMS int64) bool {
	if !p.Active || p.Value >= 1 {
		return false
	}
	var t float64
	if p.Duration > 0 {
		t = float64(nowMS-p.StartMS) / float64(p.Duration)
	} else {
		t = 1
	}
	t = Clamp01(t)
	p.Value = EaseOutCubic(t)
	if t >= 1 {
		p.Active = false
		if p.Label != "" {
			log.Debug("anim: end", "label", p.Label, "end_ms", nowMS)
		}
	}
	return p.Active
}

// Lerp linearly interpolates between a and b by t in [0,1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpF32 is Lerp for float32 callers (screen/canvas geometry).
func LerpF32(a, b float32, t float64) float32 {
	return a + (b-a)*float32(t)
}

// Any reports whether any of the given progress records is still
// active, letting the composition pipeline request an immediate next
// frame.
func Any(progresses ...*Progress) bool {
	for _, p := range progresses {
		if p != nil && p.Active && p.Value < 1 {
			return true
		}
	}
	return false
}
