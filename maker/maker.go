// Package maker turns caption requests into images: it fetches the source
// image a request points at and hands it to imageproc.
package maker

import (
	"context"

	"github.com/k1LoW/errors"
	"github.com/malcolmseyd/mememaker/imageproc"
)

type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

type Request struct {
	// URL of the image to caption. Empty means there is nothing to draw on.
	URL  string
	Text string
}

type Maker struct {
	src Fetcher
}

func New(src Fetcher) *Maker {
	return &Maker{src: src}
}

// Text renders text on a blank canvas.
func (m *Maker) Text(_ context.Context, text string) (_ []byte, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	return imageproc.RenderTextImage(text)
}

// Meme captions the image at req.URL. A request without a URL returns a
// nil image and a nil error; nothing is fetched. Fetch and render errors
// are returned as they are, with a stack trace attached.
func (m *Maker) Meme(ctx context.Context, req Request) (_ []byte, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if req.URL == "" {
		return nil, nil
	}
	rawImage, err := m.src.Fetch(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	return imageproc.RenderMeme(req.Text, rawImage)
}
