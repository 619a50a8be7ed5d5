package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/malcolmseyd/mememaker/imageproc"
	"github.com/malcolmseyd/mememaker/maker"
	"github.com/malcolmseyd/mememaker/source"
)

type renderer interface {
	Text(ctx context.Context, text string) ([]byte, error)
	Meme(ctx context.Context, req maker.Request) ([]byte, error)
}

func newRouter(r renderer, log *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(requestID(), accessLog(log), recovery(log))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "You have reached the Meme Maker")
	})
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/text/:input", func(c *gin.Context) {
		img, err := r.Text(c.Request.Context(), c.Param("input"))
		respond(c, img, err)
	})
	router.GET("/text", func(c *gin.Context) {
		img, err := r.Text(c.Request.Context(), c.Query("text"))
		respond(c, img, err)
	})

	// The image url has slashes of its own, so it is everything after the text.
	router.GET("/meme/:input/*url", func(c *gin.Context) {
		img, err := r.Meme(c.Request.Context(), maker.Request{
			URL:  source.AssembleURL(c.Param("url")),
			Text: c.Param("input"),
		})
		respond(c, img, err)
	})
	router.GET("/meme", func(c *gin.Context) {
		img, err := r.Meme(c.Request.Context(), maker.Request{
			URL:  c.Query("url"),
			Text: c.Query("text"),
		})
		respond(c, img, err)
	})

	return router
}

func respond(c *gin.Context, img []byte, err error) {
	if err != nil {
		_ = c.AbortWithError(statusFor(err), err)
		return
	}
	if img == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, mimetype.Detect(img).String(), img)
}

// A source that can't be fetched in time is treated like one that can't be
// decoded.
func statusFor(err error) int {
	switch {
	case errors.Is(err, source.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, source.ErrFetch), errors.Is(err, imageproc.ErrDecode):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
