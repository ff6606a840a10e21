// SPDX-License-Identifier: Unlicense OR MIT

package layershell

import (
	"image"
	"testing"

	"github.com/ThatOtherAndrew/Infinidesk/internal/backend"
	"github.com/ThatOtherAndrew/Infinidesk/internal/backend/fake"
)

func TestArrangeSubtractsExclusiveZoneFromUsableArea(t *testing.T) {
	out := &fake.Output{Size: image.Pt(1920, 1080)}
	o := NewOutput(out)

	panel := &fake.LayerSurface{
		LayerValue:  backend.LayerTop,
		AnchorValue: backend.AnchorTop | backend.AnchorLeft | backend.AnchorRight,
		DesiredH:    40,
		Exclusive:   40,
	}
	o.Add(panel)
	o.Arrange()

	want := image.Rect(0, 40, 1920, 1080)
	if o.UsableArea != want {
		t.Fatalf("usable area = %v, want %v", o.UsableArea, want)
	}
	if panel.ConfiguredW != 1920 || panel.ConfiguredH != 40 {
		t.Fatalf("panel configured size = %dx%d, want 1920x40", panel.ConfiguredW, panel.ConfiguredH)
	}

	// Invariant: usable_area subset of full_area.
	full := FullArea(out)
	if o.UsableArea.Min.X < full.Min.X || o.UsableArea.Max.X > full.Max.X ||
		o.UsableArea.Min.Y < full.Min.Y || o.UsableArea.Max.Y > full.Max.Y {
		t.Fatalf("usable area %v not a subset of full area %v", o.UsableArea, full)
	}
}

func TestArrangeWithNoExclusiveZoneLeavesUsableAreaEqualToFull(t *testing.T) {
	out := &fake.Output{Size: image.Pt(1280, 720)}
	o := NewOutput(out)
	wallpaper := &fake.LayerSurface{
		LayerValue:  backend.LayerBackground,
		AnchorValue: backend.AnchorTop | backend.AnchorBottom | backend.AnchorLeft | backend.AnchorRight,
		Exclusive:   0,
	}
	o.Add(wallpaper)
	o.Arrange()

	want := image.Rect(0, 0, 1280, 720)
	if o.UsableArea != want {
		t.Fatalf("usable area = %v, want %v", o.UsableArea, want)
	}
}

func TestUnknownLayerIsClampedToTop(t *testing.T) {
	out := &fake.Output{Size: image.Pt(800, 600)}
	o := NewOutput(out)
	bogus := &fake.LayerSurface{LayerValue: backend.Layer(99)}
	o.Add(bogus)

	top := o.Layer(backend.LayerTop)
	if len(top) != 1 || top[0] != bogus {
		t.Fatalf("surface with unknown layer should be clamped into LayerTop")
	}
}

func TestMultipleExclusiveZonesStackOnTheirAnchoredEdges(t *testing.T) {
	out := &fake.Output{Size: image.Pt(1000, 1000)}
	o := NewOutput(out)
	top := &fake.LayerSurface{
		LayerValue:  backend.LayerTop,
		AnchorValue: backend.AnchorTop,
		DesiredH:    30,
		Exclusive:   30,
	}
	left := &fake.LayerSurface{
		LayerValue:  backend.LayerTop,
		AnchorValue: backend.AnchorLeft,
		DesiredW:    50,
		Exclusive:   50,
	}
	o.Add(top)
	o.Add(left)
	o.Arrange()

	want := image.Rect(50, 30, 1000, 1000)
	if o.UsableArea != want {
		t.Fatalf("usable area = %v, want %v", o.UsableArea, want)
	}
}
