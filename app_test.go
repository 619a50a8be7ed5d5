package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/malcolmseyd/mememaker/imageproc"
	"github.com/malcolmseyd/mememaker/maker"
	"github.com/malcolmseyd/mememaker/source"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// imageServer serves a 100x80 png at /cat.png, a truncated png at
// /broken.png and a web page at /page.html.
func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 100, 80))); err != nil {
		t.Fatal(err)
	}
	cat := buf.Bytes()

	mux := http.NewServeMux()
	mux.HandleFunc("/cat.png", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(cat)
	})
	mux.HandleFunc("/broken.png", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(cat[:40])
	})
	mux.HandleFunc("/page.html", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<!DOCTYPE html><html></html>"))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func testRouter(t *testing.T, r renderer) (*gin.Engine, *bytes.Buffer) {
	t.Helper()
	logs := &bytes.Buffer{}
	return newRouter(r, slog.New(slog.NewTextHandler(logs, nil))), logs
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeJPEG(t *testing.T, rec *httptest.ResponseRecorder) image.Config {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Content-Type = %q, want image/jpeg", ct)
	}
	cfg, format, err := image.DecodeConfig(rec.Body)
	if err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format = %s, want jpeg", format)
	}
	return cfg
}

func TestIndex(t *testing.T) {
	router, _ := testRouter(t, maker.New(source.NewFetcher()))

	rec := get(router, "/")
	if rec.Code != http.StatusOK || rec.Body.String() != "You have reached the Meme Maker" {
		t.Errorf("GET / = %d %q", rec.Code, rec.Body.String())
	}

	rec = get(router, "/healthz")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("GET /healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestText(t *testing.T) {
	router, _ := testRouter(t, maker.New(source.NewFetcher()))
	m, err := imageproc.MeasureText("HI", imageproc.DefaultFont)
	if err != nil {
		t.Fatal(err)
	}

	for _, target := range []string{"/text/HI", "/text?text=HI"} {
		t.Run(target, func(t *testing.T) {
			rec := get(router, target)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			cfg := decodeJPEG(t, rec)
			if float64(cfg.Width) < m.Width+100 || cfg.Height != 200 {
				t.Errorf("size = %dx%d, want at least %vx200", cfg.Width, cfg.Height, m.Width+100)
			}
		})
	}
}

func TestMeme(t *testing.T) {
	ts := imageServer(t)
	router, _ := testRouter(t, maker.New(source.NewFetcher()))
	collapsed := strings.Replace(ts.URL, "http://", "http:/", 1)

	tests := []struct {
		name   string
		target string
	}{
		{"path", "/meme/LOL/" + ts.URL + "/cat.png"},
		{"collapsed slashes", "/meme/LOL/" + collapsed + "/cat.png"},
		{"escaped text", "/meme/so%20meme/" + ts.URL + "/cat.png"},
		{"query", "/meme?text=LOL&url=" + url.QueryEscape(ts.URL+"/cat.png?v=1")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(router, tt.target)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			cfg := decodeJPEG(t, rec)
			if cfg.Width != 100 || cfg.Height != 80 {
				t.Errorf("size = %dx%d, want 100x80", cfg.Width, cfg.Height)
			}
		})
	}
}

func TestMemeErrors(t *testing.T) {
	ts := imageServer(t)
	router, logs := testRouter(t, maker.New(source.NewFetcher()))

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"no url", "/meme/LOL/", http.StatusNoContent},
		{"no url query", "/meme?text=LOL", http.StatusNoContent},
		{"not an http url", "/meme/LOL/ftp://example.com/cat.png", http.StatusBadRequest},
		{"not found", "/meme/LOL/" + ts.URL + "/missing.png", http.StatusUnprocessableEntity},
		{"not an image", "/meme/LOL/" + ts.URL + "/page.html", http.StatusUnprocessableEntity},
		{"undecodable", "/meme/LOL/" + ts.URL + "/broken.png", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(router, tt.target)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want != http.StatusOK && rec.Body.Len() != 0 {
				t.Errorf("got %d body bytes with status %d", rec.Body.Len(), rec.Code)
			}
		})
	}

	for _, want := range []string{
		"status=422",
		"stack=",
		"source.(*Fetcher).Fetch",
		"maker.(*Maker).Meme",
	} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("access log missing %q:\n%s", want, logs.String())
		}
	}
}

type failingRenderer struct{}

func (failingRenderer) Text(context.Context, string) ([]byte, error) {
	return nil, imageproc.ErrEncode
}

func (failingRenderer) Meme(context.Context, maker.Request) ([]byte, error) {
	panic("boom")
}

func TestServerErrors(t *testing.T) {
	router, logs := testRouter(t, failingRenderer{})

	if rec := get(router, "/text/HI"); rec.Code != http.StatusInternalServerError {
		t.Errorf("encode failure status = %d, want 500", rec.Code)
	}
	if rec := get(router, "/meme/LOL/https://example.com/cat.png"); rec.Code != http.StatusInternalServerError {
		t.Errorf("panic status = %d, want 500", rec.Code)
	}
	for _, want := range []string{"level=ERROR", "panic recovered", "can't encode image"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("logs missing %q:\n%s", want, logs.String())
		}
	}
}

func TestRequestID(t *testing.T) {
	router, _ := testRouter(t, maker.New(source.NewFetcher()))

	rec := get(router, "/")
	if _, err := uuid.Parse(rec.Header().Get(requestIDHeader)); err != nil {
		t.Errorf("generated request id %q: %v", rec.Header().Get(requestIDHeader), err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{source.ErrInvalidURL, http.StatusBadRequest},
		{source.ErrFetch, http.StatusUnprocessableEntity},
		{source.ErrTooLarge, http.StatusUnprocessableEntity},
		{imageproc.ErrDecode, http.StatusUnprocessableEntity},
		{imageproc.ErrEncode, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
