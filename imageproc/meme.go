package imageproc

import (
	"fmt"
	"math"
)

const (
	// Caption baseline distance from the bottom edge. Taller captions
	// reach further up; nothing adapts this to the text height.
	captionMargin = 30
	// Smallest x a caption starts at, for images narrower than the text.
	minCaptionX = 5
)

// MakeMeme draws text as a caption on the bottom of rawImage and returns
// the JPEG encoding, which has the source's dimensions.
//
// A nil rawImage means there is nothing to draw on: MakeMeme returns a nil
// buffer and a nil error without doing any work. Bytes that don't decode
// fail with ErrDecode.
func MakeMeme(rawImage []byte, text string) ([]byte, error) {
	if rawImage == nil {
		return nil, nil
	}

	src, err := decode(rawImage)
	if err != nil {
		return nil, err
	}

	canvas, err := NewCanvas(placeholderSize, placeholderSize)
	if err != nil {
		return nil, err
	}
	if err := canvas.SetFont(DefaultFont); err != nil {
		return nil, fmt.Errorf("can't set font: %w", err)
	}
	metrics, err := canvas.MeasureText(text)
	if err != nil {
		return nil, fmt.Errorf("can't measure text: %w", err)
	}

	bounds := src.Bounds()
	if err := canvas.Resize(bounds.Dx(), bounds.Dy()); err != nil {
		return nil, err
	}
	if err := canvas.SetFont(DefaultFont); err != nil {
		return nil, fmt.Errorf("can't set font: %w", err)
	}

	x, y := captionAnchor(canvas.Width(), canvas.Height(), metrics.Width)

	canvas.DrawImage(src, 0, 0)
	if err := DrawOutlinedText(canvas, text, float64(x), float64(y), DefaultFont); err != nil {
		return nil, fmt.Errorf("can't draw caption: %w", err)
	}
	return encode(canvas.Image())
}

// RenderMeme is MakeMeme with the arguments in request order.
func RenderMeme(text string, rawImage []byte) ([]byte, error) {
	return MakeMeme(rawImage, text)
}

// captionAnchor centers the text horizontally, never left of minCaptionX,
// and puts its baseline captionMargin above the bottom edge.
func captionAnchor(width, height int, textWidth float64) (x, y int) {
	x = int(math.Floor((float64(width) - textWidth) / 2))
	x = max(x, minCaptionX)
	return x, height - captionMargin
}
