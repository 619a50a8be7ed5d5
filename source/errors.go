package source

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL is returned for anything but an absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid image url")
	// ErrFetch covers every failure to get image bytes from a valid URL,
	// timeouts included.
	ErrFetch = errors.New("can't fetch image")

	ErrTooLarge        = fmt.Errorf("%w: image too large", ErrFetch)
	ErrUnsupportedType = fmt.Errorf("%w: not an image", ErrFetch)
)
