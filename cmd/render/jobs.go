package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/malcolmseyd/mememaker/maker"
	"golang.org/x/sync/errgroup"
)

type renderer interface {
	Text(ctx context.Context, text string) ([]byte, error)
	Meme(ctx context.Context, req maker.Request) ([]byte, error)
}

type job struct {
	Name string
	Text string
	// URL is empty for text images.
	URL string
}

func (j job) render(ctx context.Context, r renderer) ([]byte, error) {
	if j.URL == "" {
		return r.Text(ctx, j.Text)
	}
	return r.Meme(ctx, maker.Request{URL: j.URL, Text: j.Text})
}

// outPath keeps the job inside dir whatever its name.
func (j job) outPath(dir string) string {
	sanitizedName := path.Join("/", j.Name)
	return filepath.Join(dir, filepath.FromSlash(sanitizedName)+".jpg")
}

func parseJobs(r io.Reader) ([]job, error) {
	var jobs []job
	seen := map[string]bool{}
	s := bufio.NewScanner(r)
	for n := 1; s.Scan(); n++ {
		line := strings.TrimRight(s.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 || len(fields) > 3 || fields[0] == "" {
			return nil, fmt.Errorf("line %d: want name<TAB>text[<TAB>url]", n)
		}
		j := job{Name: fields[0], Text: fields[1]}
		if len(fields) == 3 {
			j.URL = strings.TrimSpace(fields[2])
		}
		// names that clean to the same path would write the same file
		key := path.Join("/", j.Name)
		if seen[key] {
			return nil, fmt.Errorf("line %d: duplicate name %q", n, j.Name)
		}
		seen[key] = true
		jobs = append(jobs, j)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}

// runBatch renders jobs into dir with up to maxWorkers renders in flight
// and returns how many failed. A failed job doesn't stop the others.
func runBatch(ctx context.Context, r renderer, jobs []job, dir string, maxWorkers int, log *slog.Logger) int {
	var failed atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(maxWorkers, 1))
	for _, j := range jobs {
		g.Go(func() error {
			img, err := j.render(ctx, r)
			if err != nil {
				log.Error("render failed", "job", j.Name, "error", err)
				failed.Add(1)
				return nil
			}
			if img == nil {
				log.Warn("nothing to render", "job", j.Name)
				return nil
			}
			out := j.outPath(dir)
			if err := os.WriteFile(out, img, 0o644); err != nil {
				log.Error("can't write image", "job", j.Name, "path", out, "error", err)
				failed.Add(1)
				return nil
			}
			log.Info("wrote image", "job", j.Name, "path", out)
			return nil
		})
	}
	_ = g.Wait()
	return int(failed.Load())
}
