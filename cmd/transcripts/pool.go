package main

import (
	"context"

	transcripts "github.com/szymon-off/discord-html-transcripts"
)

// Renderer is the part of transcripts.Renderer the batch needs.
type Renderer interface {
	Render(ctx context.Context, input transcripts.Input) (*transcripts.Result, error)
}

// Compile-time interface implementation check.
var _ Renderer = (*transcripts.Renderer)(nil)

// Pool abstracts renderer pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (Renderer, error)
	Release(Renderer)
	Size() int
	Close() error
}

// poolAdapter exposes a transcripts.RendererPool through the Pool interface.
type poolAdapter struct {
	pool *transcripts.RendererPool
}

// newRendererPool is the production Pool factory.
func newRendererPool(size int, opts ...transcripts.Option) Pool {
	return &poolAdapter{pool: transcripts.NewRendererPool(size, opts...)}
}

func (a *poolAdapter) Acquire(ctx context.Context) (Renderer, error) {
	r, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Release returns r to the underlying pool. Renderers of another type are
// dropped: they were never handed out by this pool.
func (a *poolAdapter) Release(r Renderer) {
	if rr, ok := r.(*transcripts.Renderer); ok {
		a.pool.Release(rr)
	}
}

func (a *poolAdapter) Size() int    { return a.pool.Size() }
func (a *poolAdapter) Close() error { return a.pool.Close() }

var _ Pool = (*poolAdapter)(nil)
