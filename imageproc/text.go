package imageproc

import (
	"fmt"
	"math"
)

const (
	placeholderSize = 200
	// room on both sides of the text for the outline and margins
	textPadding = 100
	textInset   = 50
)

// RenderTextImage draws text on a blank canvas just wide enough to hold it
// and returns the JPEG encoding. Width is not capped.
func RenderTextImage(text string) ([]byte, error) {
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

	width := int(math.Ceil(metrics.Width)) + textPadding
	if err := canvas.Resize(width, canvas.Height()); err != nil {
		return nil, err
	}
	// the resize dropped the font
	if err := canvas.SetFont(DefaultFont); err != nil {
		return nil, fmt.Errorf("can't set font: %w", err)
	}

	if err := DrawOutlinedText(canvas, text, textInset, textInset, DefaultFont); err != nil {
		return nil, fmt.Errorf("can't draw text: %w", err)
	}
	return encode(canvas.Image())
}
