// SPDX-License-Identifier: Unlicense OR MIT

package switcher

import (
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font"
)

func TestDrawLabelPaintsGlyphPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 120, 40))
	drawLabel(img, "Terminal", 4, 28, 112, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})

	painted := false
	for _, px := range img.Pix {
		if px != 0 {
			painted = true
			break
		}
	}
	if !painted {
		t.Fatal("expected drawLabel to paint at least one non-zero pixel")
	}
}

func TestDrawLabelEmptyStringIsNoOp(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	drawLabel(img, "", 4, 16, 16, color.NRGBA{A: 0xff})
	for _, px := range img.Pix {
		if px != 0 {
			t.Fatal("empty label should leave the image untouched")
		}
	}
}

func TestTruncateToWidthShortensLongLabels(t *testing.T) {
	f, err := labelFace()
	if err != nil {
		t.Fatalf("labelFace: %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	d := &font.Drawer{Dst: img, Src: image.NewUniform(color.NRGBA{A: 0xff}), Face: f}

	long := "A very long window title that will not fit in the entry"
	got := truncateToWidth(d, long, 100)
	if got == long {
		t.Fatal("expected truncation for a label far wider than maxWidth")
	}
	if len(got) == 0 {
		t.Fatal("truncation should never produce an empty string for non-empty input")
	}
}

func TestTruncateToWidthLeavesShortLabelsUntouched(t *testing.T) {
	f, err := labelFace()
	if err != nil {
		t.Fatalf("labelFace: %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	d := &font.Drawer{Dst: img, Src: image.NewUniform(color.NRGBA{A: 0xff}), Face: f}

	short := "ok"
	if got := truncateToWidth(d, short, 10000); got != short {
		t.Fatalf("short label should be unchanged, got %q", got)
	}
}
