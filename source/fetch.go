package source

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/k1LoW/errors"
)

const (
	DefaultTimeout  = 15 * time.Second
	DefaultMaxBytes = 20 << 20

	userAgent = "mememaker/1.0"
)

// Fetcher downloads source images. It is safe for concurrent use and keeps
// no state between calls besides the HTTP client's connection pool.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

type Option func(*Fetcher)

func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.client.Timeout = d }
}

// WithMaxBytes caps the size of a downloaded image. Values below one are
// ignored.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBytes = n
		}
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{Timeout: DefaultTimeout},
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the image at rawURL and returns its bytes undecoded.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (_ []byte, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidURL, rawURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w %q: want an absolute http or https url", ErrInvalidURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidURL, rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "image/*")

	res, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w from %s: %v", ErrFetch, rawURL, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w from %s: status code %d", ErrFetch, rawURL, res.StatusCode)
	}

	// one byte past the limit tells a full body from an oversized one
	limit := f.maxBytes
	if limit < math.MaxInt64 {
		limit++
	}
	b, err := io.ReadAll(io.LimitReader(res.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("%w from %s: %v", ErrFetch, rawURL, err)
	}
	if int64(len(b)) > f.maxBytes {
		return nil, fmt.Errorf("%w: %s is over %d bytes", ErrTooLarge, rawURL, f.maxBytes)
	}

	mtype := mimetype.Detect(b)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, fmt.Errorf("%w: %s is %s", ErrUnsupportedType, rawURL, mtype)
	}
	return b, nil
}

var collapsedScheme = regexp.MustCompile(`^(https?):/+`)

// AssembleURL rebuilds an image URL that arrived as the trailing segments
// of a request path, such as "/https://example.com/cat.jpg". Proxies that
// merge repeated slashes leave "https:/example.com", which is repaired.
func AssembleURL(segment string) string {
	segment = strings.TrimLeft(segment, "/")
	return collapsedScheme.ReplaceAllString(segment, "$1://")
}
