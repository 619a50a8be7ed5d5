package imageproc

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// DrawState is the style a canvas draws text with. Creating or resizing a
// canvas starts from the zero state: no font, black fill, black stroke.
type DrawState struct {
	// Font is nil until SetFont is called.
	Font   *FontSpec
	Fill   color.Color
	Stroke color.Color
}

func initialState() DrawState {
	return DrawState{Fill: color.Black, Stroke: color.Black}
}

type TextMetrics struct {
	Width float64
}

// Canvas is a resizable raster surface with a 2D drawing context.
//
// Changing the size throws away the drawing context together with its
// state, so SetFont has to be called again after every Resize.
type Canvas struct {
	dc    *gg.Context
	face  font.Face
	state DrawState
}

func NewCanvas(width, height int) (*Canvas, error) {
	c := &Canvas{}
	if err := c.Resize(width, height); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Canvas) Width() int  { return c.dc.Width() }
func (c *Canvas) Height() int { return c.dc.Height() }

// Resize sets the canvas dimensions, clearing its pixels and draw state.
func (c *Canvas) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	c.dc = gg.NewContext(width, height)
	c.face = nil
	c.state = initialState()
	return nil
}

func (c *Canvas) State() DrawState {
	return c.state
}

func (c *Canvas) SetFont(spec FontSpec) error {
	face, err := makeFace(spec, font.HintingFull)
	if err != nil {
		return err
	}
	c.dc.SetFontFace(face)
	c.face = face
	c.state.Font = &spec
	return nil
}

func (c *Canvas) SetFillColor(col color.Color)   { c.state.Fill = col }
func (c *Canvas) SetStrokeColor(col color.Color) { c.state.Stroke = col }

func (c *Canvas) MeasureText(text string) (TextMetrics, error) {
	if c.state.Font == nil {
		return TextMetrics{}, ErrFontNotSet
	}
	w, _ := c.dc.MeasureString(text)
	return TextMetrics{Width: w}, nil
}

// FillText paints text in the fill color with its baseline starting at (x, y).
func (c *Canvas) FillText(text string, x, y float64) error {
	if c.state.Font == nil {
		return ErrFontNotSet
	}
	c.dc.SetColor(c.state.Fill)
	c.dc.DrawString(text, x, y)
	return nil
}

// StrokeText paints the outline of the glyphs FillText would paint at the
// same anchor, in the stroke color.
func (c *Canvas) StrokeText(text string, x, y float64) error {
	if c.state.Font == nil {
		return ErrFontNotSet
	}
	bounds := image.Rect(0, 0, c.Width(), c.Height())
	d := &coverageDrawer{
		Dst:  image.NewAlpha(bounds),
		Face: c.face,
		Dot:  fixp(x, y),
	}
	d.DrawString(text)
	if d.Drawn.Empty() {
		return nil
	}

	if err := c.dc.SetMask(contour(d.Dst, d.Drawn)); err != nil {
		return err
	}
	c.dc.SetColor(c.state.Stroke)
	c.dc.DrawRectangle(0, 0, float64(c.Width()), float64(c.Height()))
	c.dc.Fill()
	c.dc.ResetClip()
	return nil
}

// DrawImage paints img with its top-left corner at (x, y).
func (c *Canvas) DrawImage(img image.Image, x, y int) {
	c.dc.DrawImage(img, x, y)
}

func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// MeasureText measures text set in spec on a scratch canvas.
func MeasureText(text string, spec FontSpec) (TextMetrics, error) {
	c, err := NewCanvas(1, 1)
	if err != nil {
		return TextMetrics{}, err
	}
	if err := c.SetFont(spec); err != nil {
		return TextMetrics{}, err
	}
	return c.MeasureText(text)
}

func fixp(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x * 64)),
		Y: fixed.Int26_6(math.Round(y * 64)),
	}
}
