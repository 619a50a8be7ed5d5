package imageproc

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Glyph mask values above this count as ink.
const coverageThreshold = 128

// coverageDrawer renders a string into a two-level alpha mask: fully
// opaque where glyph coverage passes coverageThreshold, transparent
// elsewhere.
type coverageDrawer struct {
	// mask to draw on in place
	Dst  *image.Alpha
	Face font.Face
	// baseline-left of the next glyph
	Dot fixed.Point26_6
	// union of the pixels set so far
	Drawn image.Rectangle
}

func (d *coverageDrawer) DrawString(s string) {
	prevC := rune(-1)
	for _, c := range s {
		if prevC >= 0 {
			d.Dot.X += d.Face.Kern(prevC, c)
		}
		dr, mask, maskp, advance, _ := d.Face.Glyph(d.Dot, c)

		clip := dr.Intersect(d.Dst.Rect)
		for y := clip.Min.Y; y < clip.Max.Y; y++ {
			for x := clip.Min.X; x < clip.Max.X; x++ {
				_, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
				if a>>8 > coverageThreshold {
					d.Dst.SetAlpha(x, y, color.Alpha{A: 0xff})
					d.Drawn = d.Drawn.Union(image.Rect(x, y, x+1, y+1))
				}
			}
		}

		d.Dot.X += advance
		prevC = c
	}
}

// contour returns a mask of the pixels inside area that sit on an ink
// edge of cov: ink next to background or background next to ink.
func contour(cov *image.Alpha, area image.Rectangle) *image.Alpha {
	b := cov.Bounds()
	out := image.NewAlpha(b)
	area = area.Inset(-1).Intersect(b)

	ink := func(x, y int) bool { return cov.AlphaAt(x, y).A != 0 }
	neighbors := [4]image.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			in := ink(x, y)
			for _, n := range neighbors {
				p := image.Pt(x+n.X, y+n.Y)
				// the canvas edge is not an edge of the glyph
				if !p.In(b) {
					continue
				}
				if ink(p.X, p.Y) != in {
					out.SetAlpha(x, y, color.Alpha{A: 0xff})
					break
				}
			}
		}
	}
	return out
}
