package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	transcripts "github.com/szymon-off/discord-html-transcripts"
)

// testExport is a minimal valid export with one message.
const testExport = `{
  "channel": {"name": "support-42", "guildName": "Example Guild"},
  "messages": [
    {"id": "1001", "createdAt": "2024-03-01T14:03:09Z",
     "author": {"id": "7", "username": "alice"}, "content": "hello **world**"}
  ]
}`

// botOnlyExport has a single bot message, which is skipped by default.
const botOnlyExport = `channel:
  name: alerts
messages:
  - id: "1"
    createdAt: "2024-03-01T10:00:00Z"
    author: {id: "9", username: deploybot, bot: true}
    content: deployed
`

// setupTestDir creates a temp directory with the given file structure.
// Files map relative paths to content. Returns the directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for path, content := range files {
		full := filepath.Join(dir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("creating dir for %s: %v", path, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}

	return dir
}

// fakeRenderer records inputs and returns a fixed result or error.
type fakeRenderer struct {
	mu     sync.Mutex
	err    error
	inputs []transcripts.Input
}

func (f *fakeRenderer) Render(_ context.Context, input transcripts.Input) (*transcripts.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	res := &transcripts.Result{HTML: []byte("<html>" + input.Channel.Name + "</html>")}
	if input.PDF != nil {
		res.PDF = []byte("%PDF-1.7 fake")
	}
	return res, nil
}

func (f *fakeRenderer) calls() []transcripts.Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]transcripts.Input(nil), f.inputs...)
}

// fakePool hands out a shared fakeRenderer and tracks concurrency.
type fakePool struct {
	renderer   Renderer
	size       int
	acquireErr error

	active    atomic.Int32
	maxActive atomic.Int32
	closed    atomic.Bool
	opts      []transcripts.Option
}

func newFakePool(r Renderer, size int) *fakePool {
	return &fakePool{renderer: r, size: size}
}

func (p *fakePool) Acquire(ctx context.Context) (Renderer, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := p.active.Add(1)
	for {
		cur := p.maxActive.Load()
		if n <= cur || p.maxActive.CompareAndSwap(cur, n) {
			break
		}
	}
	return p.renderer, nil
}

func (p *fakePool) Release(Renderer) { p.active.Add(-1) }
func (p *fakePool) Size() int        { return p.size }
func (p *fakePool) Close() error {
	p.closed.Store(true)
	return nil
}

// newTestEnv returns an environment writing to buffers. A nil pool uses the
// real renderer pool, which renders HTML without a browser.
func newTestEnv(pool *fakePool) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:     func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) },
		Stdout:  &stdout,
		Stderr:  &stderr,
		NewPool: newRendererPool,
	}
	if pool != nil {
		env.NewPool = func(size int, opts ...transcripts.Option) Pool {
			pool.opts = opts
			return pool
		}
	}
	return env, &stdout, &stderr
}

// readFile reads a file or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
