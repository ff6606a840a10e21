// SPDX-License-Identifier: Unlicense OR MIT

package switcher

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// labelFace lazily parses the bundled Go Regular font and builds a
// fixed-size face from it, the same golang.org/x/image/font/sfnt glyph
// path gio's own text/shape package loads glyphs through. Parsing the
// embedded TTF once and caching the resulting face avoids redoing the
// sfnt parse on every dirty overlay rebuild.
var (
	labelFaceOnce sync.Once
	labelFaceVal  font.Face
	labelFaceErr  error
)

func labelFace() (font.Face, error) {
	labelFaceOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			labelFaceErr = err
			return
		}
		labelFaceVal, labelFaceErr = opentype.NewFace(f, &opentype.FaceOptions{
			Size:    13,
			DPI:     96,
			Hinting: font.HintingFull,
		})
	})
	return labelFaceVal, labelFaceErr
}

// drawLabel draws s left-aligned with its baseline at (x, baselineY),
// truncating with an ellipsis if it would otherwise overflow maxWidth.
// A face load failure (malformed embedded font data) is logged nowhere
// and simply skips the label — the overlay panel and entry rectangles
// drawn around it are still a usable, if textless, switcher.
func drawLabel(dst *image.RGBA, s string, x, baselineY, maxWidth int, c color.NRGBA) {
	if s == "" {
		return
	}
	f, err := labelFace()
	if err != nil {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: f,
		Dot:  fixed.P(x, baselineY),
	}
	d.DrawString(truncateToWidth(d, s, maxWidth))
}

// truncateToWidth shortens s, appending an ellipsis, until it fits
// within maxWidth pixels as measured by d's face.
func truncateToWidth(d *font.Drawer, s string, maxWidth int) string {
	if d.MeasureString(s).Ceil() <= maxWidth {
		return s
	}
	const ellipsis = "…"
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + ellipsis
		if d.MeasureString(candidate).Ceil() <= maxWidth {
			return candidate
		}
	}
	return ellipsis
}
