package imageproc

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// jpegQuality matches what browsers' canvas.toBlob uses by default.
const jpegQuality = 75

func encode(img image.Image) ([]byte, error) {
	outBuf := bytes.NewBuffer(nil)
	err := imaging.Encode(outBuf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return outBuf.Bytes(), nil
}

// decode returns the image in rawImage with its bounds at the origin. A GIF
// frame smaller than the logical screen is placed at its offset on a
// transparent screen-sized image.
func decode(rawImage []byte) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(rawImage))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	src, err := imaging.Decode(bytes.NewReader(rawImage))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty %dx%d image", ErrDecode, cfg.Width, cfg.Height)
	}

	screen := image.Rect(0, 0, cfg.Width, cfg.Height)
	if b := src.Bounds(); b != screen {
		if b.Empty() {
			return nil, fmt.Errorf("%w: empty %dx%d image", ErrDecode, b.Dx(), b.Dy())
		}
		bg := imaging.New(cfg.Width, cfg.Height, color.Transparent)
		src = imaging.Paste(bg, src, b.Min)
	}
	return src, nil
}
