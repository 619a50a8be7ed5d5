package imageproc

import "image/color"

var (
	fillColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.Black
)

// DrawOutlinedText applies spec and paints text in white with a black
// outline, baseline-left anchored at (x, y). The canvas must already have
// its final size.
func DrawOutlinedText(c *Canvas, text string, x, y float64, spec FontSpec) error {
	if err := c.SetFont(spec); err != nil {
		return err
	}

	c.SetFillColor(fillColor)
	if err := c.FillText(text, x, y); err != nil {
		return err
	}

	c.SetStrokeColor(outlineColor)
	return c.StrokeText(text, x, y)
}
