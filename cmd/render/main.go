package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/malcolmseyd/mememaker/logger"
	"github.com/malcolmseyd/mememaker/maker"
	"github.com/malcolmseyd/mememaker/source"
)

type CLIOptions struct {
	Out        string        `long:"out" short:"o" default:"out.jpg" description:"output file for a single render"`
	URL        string        `long:"url" description:"image to caption; without it the text is drawn on a blank canvas"`
	Batch      string        `long:"batch" description:"job file, one name<TAB>text[<TAB>url] per line"`
	OutDir     string        `long:"outdir" default:"." description:"output directory for batch renders"`
	MaxWorkers int           `long:"maxworkers" default:"4"`
	Timeout    time.Duration `long:"timeout" default:"15s" description:"timeout for downloading a source image"`
	Args       struct {
		Text string `positional-arg-name:"TEXT"`
	} `positional-args:"yes"`
}

func main() {
	var opts CLIOptions
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}
	log, _, err := logger.New(logger.Config{Level: "info", Format: "text"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	m := maker.New(source.NewFetcher(source.WithTimeout(opts.Timeout)))
	ctx := context.Background()

	if opts.Batch == "" {
		j := job{Text: opts.Args.Text, URL: opts.URL}
		img, err := j.render(ctx, m)
		if err != nil {
			log.Error("render failed", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(opts.Out, img, 0o644); err != nil {
			log.Error("can't write image", "path", opts.Out, "error", err)
			os.Exit(1)
		}
		log.Info("wrote image", "path", opts.Out)
		return
	}

	f, err := os.Open(opts.Batch)
	if err != nil {
		log.Error("can't open job file", "error", err)
		os.Exit(1)
	}
	jobs, err := parseJobs(f)
	f.Close()
	if err != nil {
		log.Error("can't read job file", "error", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		log.Error("can't create output directory", "error", err)
		os.Exit(1)
	}

	failed := runBatch(ctx, m, jobs, opts.OutDir, opts.MaxWorkers, log)
	log.Info("batch done", "jobs", len(jobs), "failed", failed)
	if failed > 0 {
		os.Exit(1)
	}
}
