package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	transcripts "github.com/szymon-off/discord-html-transcripts"
	"github.com/szymon-off/discord-html-transcripts/internal/export"
	"github.com/szymon-off/discord-html-transcripts/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput         = errors.New("no input specified")
	ErrReadCSS         = errors.New("failed to read CSS file")
	ErrWriteOutput     = errors.New("failed to write output file")
	ErrCreateOutputDir = errors.New("failed to create output directory")
	ErrRendererInit    = errors.New("failed to initialize renderer")
	ErrRenderFailed    = errors.New("render failed")
)

// RenderResult holds the outcome of a single export.
type RenderResult struct {
	InputPath string
	Outputs   []string // written files, HTML first
	Messages  int
	Bytes     int // total bytes written
	Err       error
	Duration  time.Duration
}

// renderParams groups parameters shared across batch/file rendering.
type renderParams struct {
	css       string
	pdf       *transcripts.PDFOptions // nil = HTML only
	writeHTML bool
	logger    *slog.Logger
}

// renderBatch processes files concurrently using the renderer pool.
func renderBatch(ctx context.Context, pool Pool, files []FileToRender, params *renderParams) []RenderResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]RenderResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r, err := pool.Acquire(ctx)
			if err != nil {
				// Renderer creation failed, mark this worker's share as failed
				for idx := range jobs {
					results[idx] = RenderResult{
						InputPath: files[idx].InputPath,
						Err:       fmt.Errorf("%w: %w", ErrRendererInit, err),
					}
				}
				return
			}
			defer pool.Release(r)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = renderFile(ctx, r, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile loads one export, renders it and writes the requested outputs.
func renderFile(ctx context.Context, r Renderer, f FileToRender, params *renderParams) RenderResult {
	start := time.Now()
	result := RenderResult{InputPath: f.InputPath}
	fail := func(err error) RenderResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	exp, err := export.Load(f.InputPath)
	if err != nil {
		return fail(err)
	}

	messages, err := transcripts.CollectMessages(ctx, exp, transcripts.DefaultFetchLimit)
	if err != nil {
		return fail(fmt.Errorf("reading messages: %w", err))
	}
	result.Messages = len(messages)

	rendered, err := r.Render(ctx, transcripts.Input{
		Messages: messages,
		Channel:  exp.Channel,
		CSS:      params.css,
		PDF:      params.pdf,
	})
	if err != nil {
		return fail(err)
	}

	if err := os.MkdirAll(filepath.Dir(f.HTMLPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: %w", ErrCreateOutputDir, err))
	}

	if params.writeHTML {
		if err := writeOutput(f.HTMLPath, rendered.HTML); err != nil {
			return fail(err)
		}
		result.Outputs = append(result.Outputs, f.HTMLPath)
		result.Bytes += len(rendered.HTML)
	}

	if params.pdf != nil {
		if err := writeOutput(f.PDFPath(), rendered.PDF); err != nil {
			return fail(err)
		}
		result.Outputs = append(result.Outputs, f.PDFPath())
		result.Bytes += len(rendered.PDF)
	}

	result.Duration = time.Since(start)
	params.logger.Debug("rendered export",
		"input", f.InputPath,
		"messages", result.Messages,
		"size", humanize.Bytes(uint64(result.Bytes)),
		"elapsed", result.Duration.Round(time.Millisecond),
	)
	return result
}

// writeOutput replaces path with a rendered document.
func writeOutput(path string, content []byte) error {
	if err := fileutil.WriteFileAtomic(path, content, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed renders.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed renders.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs render results and returns the number of failures.
func printResults(results []RenderResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d messages, %s, %v)\n",
				r.InputPath, strings.Join(r.Outputs, ", "), r.Messages,
				humanize.Bytes(uint64(r.Bytes)), r.Duration.Round(time.Millisecond))
		} else {
			for _, out := range r.Outputs {
				fmt.Fprintf(env.Stdout, "Created %s\n", out)
			}
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
