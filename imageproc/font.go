package imageproc

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontSpec describes the face text is drawn with, in the shape of a CSS
// font shorthand ("bold 50px Go").
type FontSpec struct {
	Family string
	Weight string
	// Size in pixels.
	Size float64
}

// DefaultFont is the only style both renderers draw with.
var DefaultFont = FontSpec{Family: "Go", Weight: "bold", Size: 50}

func (s FontSpec) String() string {
	return fmt.Sprintf("%s %gpx %s", s.Weight, s.Size, s.Family)
}

type fontKey struct {
	family string
	weight string
}

func must[T any](value T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("fatal error: %v", err))
	}
	return value
}

// Parsed outlines are read-only and shared; faces are not and are made per canvas.
var fonts = map[fontKey]*sfnt.Font{
	{family: "Go", weight: "bold"}: must(opentype.Parse(gobold.TTF)),
}

func makeFace(spec FontSpec, hinting font.Hinting) (font.Face, error) {
	f, ok := fonts[fontKey{family: spec.Family, weight: spec.Weight}]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFont, spec)
	}
	if spec.Size <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFont, spec)
	}
	// 72 DPI makes one point one pixel.
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size: spec.Size, DPI: 72, Hinting: hinting,
	})
}
