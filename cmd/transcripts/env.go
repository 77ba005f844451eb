package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	transcripts "github.com/szymon-off/discord-html-transcripts"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer

	// NewPool builds the renderer pool for a batch. Tests swap in fakes.
	NewPool func(size int, opts ...transcripts.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		NewPool: newRendererPool,
	}
}

// newLogger builds the CLI logger on w. Quiet keeps only errors; verbose
// enables debug output from the renderer.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
