package imageproc

import "errors"

var (
	// ErrDecode is returned when source bytes are not a decodable raster image.
	ErrDecode = errors.New("can't decode image")
	// ErrEncode is returned when the finished canvas can't be encoded.
	ErrEncode = errors.New("can't encode image")

	ErrInvalidSize = errors.New("canvas size must be positive")
	// ErrFontNotSet is returned by text operations on a canvas whose draw
	// state has no font, which is always the case right after a resize.
	ErrFontNotSet  = errors.New("no font set on canvas")
	ErrUnknownFont = errors.New("unknown font")
)
