package transcripts

import (
	"context"
	"testing"
	"time"

	"golang.org/x/net/html"

	"github.com/szymon-off/discord-html-transcripts/internal/dom"
)

const testSkeleton = `<!DOCTYPE html>
<html><head><title id="transcriptTitle"></title></head>
<body>
<img class="preamble__guild-icon" src="">
<div id="guildname"></div>
<div id="ticketname"></div>
<div id="chatlog"></div>
</body></html>`

var testChannel = Channel{Name: "support-42", GuildName: "Example Guild"}

// at returns a fixed UTC time on 2024-03-01 with the given clock.
func at(h, m, s int) time.Time {
	return time.Date(2024, 3, 1, h, m, s, 0, time.UTC)
}

func testUser(id string) *User {
	return &User{
		ID:          id,
		Username:    "user" + id,
		DisplayName: "User " + id,
		AvatarURL:   "https://cdn.example.com/avatars/" + id + ".png",
	}
}

func testMessage(id string, created time.Time, content string) Message {
	return Message{ID: id, CreatedAt: created, Author: testUser("1"), Content: content}
}

// renderDoc renders with RenderTranscript and parses the result.
func renderDoc(t *testing.T, messages []Message, opts ...Option) *html.Node {
	t.Helper()

	out, err := RenderTranscript(messages, testSkeleton, testChannel, opts...)
	if err != nil {
		t.Fatalf("RenderTranscript() unexpected error: %v", err)
	}
	doc, err := dom.Parse(out)
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	return doc
}

func messageGroups(doc *html.Node) []*html.Node {
	return dom.FindAll(doc, dom.HasClass("chatlog__message-group"))
}

// messageIDs returns data-message-id values in document order.
func messageIDs(doc *html.Node) []string {
	var ids []string
	for _, n := range dom.FindAll(doc, dom.HasClass("chatlog__message")) {
		v, _ := dom.Attr(n, "data-message-id")
		ids = append(ids, v)
	}
	return ids
}

func attr(t *testing.T, n *html.Node, key string) string {
	t.Helper()

	if n == nil {
		t.Fatalf("attr(%q): node is nil", key)
	}
	v, ok := dom.Attr(n, key)
	if !ok {
		t.Fatalf("attr(%q) missing on <%s>", key, n.Data)
	}
	return v
}

func mustByClass(t *testing.T, root *html.Node, class string) *html.Node {
	t.Helper()

	n := dom.ByClass(root, class)
	if n == nil {
		t.Fatalf("no element with class %q", class)
	}
	return n
}

// mockPDFConverter implements pdfConverter for tests.
type mockPDFConverter struct {
	result     []byte
	err        error
	calledHTML string
	calledOpts *pdfOptions
	closed     bool
}

func (m *mockPDFConverter) ToPDF(_ context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	m.calledHTML = htmlContent
	m.calledOpts = opts
	return m.result, m.err
}

func (m *mockPDFConverter) Close() error {
	m.closed = true
	return nil
}

// newTestRenderer builds a Renderer with embedded assets and a mock PDF backend.
func newTestRenderer(t *testing.T, opts ...Option) (*Renderer, *mockPDFConverter) {
	t.Helper()

	r, err := NewRenderer(opts...)
	if err != nil {
		t.Fatalf("NewRenderer() unexpected error: %v", err)
	}
	mock := &mockPDFConverter{result: []byte("%PDF-1.7 test")}
	r.pdfConverter = mock
	return r, mock
}
