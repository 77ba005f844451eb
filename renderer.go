package transcripts

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"golang.org/x/net/html"

	"github.com/szymon-off/discord-html-transcripts/internal/assets"
	"github.com/szymon-off/discord-html-transcripts/internal/dateutil"
	"github.com/szymon-off/discord-html-transcripts/internal/dom"
	"github.com/szymon-off/discord-html-transcripts/internal/fileutil"
	"github.com/szymon-off/discord-html-transcripts/internal/markup"
)

// AssetLoader loads CSS themes and transcript skeletons by name.
// Implementations may read from embedded files, disk, or any other store.
type AssetLoader interface {
	// LoadStyle loads a CSS theme by name (without .css extension).
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML skeleton by name (without .html extension).
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader returns a loader that reads from basePath first and falls
// back to the embedded themes and skeleton. An empty basePath uses only the
// embedded assets.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return resolver, nil
}

// Compile-time interface implementation checks.
var (
	_ AssetLoader  = (*assets.AssetResolver)(nil)
	_ AssetLoader  = (*assets.EmbeddedLoader)(nil)
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// Renderer turns message sets into transcript documents.
// Create with NewRenderer, call Render, and Close when done.
// A Renderer is not safe for concurrent use; use RendererPool for parallel work.
type Renderer struct {
	cfg          rendererConfig
	assetLoader  AssetLoader
	formatter    *markup.Formatter
	layout       string // Go time layout resolved from cfg.timeFormat
	skeleton     string
	documentCSS  string // theme + code highlighting
	pdfConverter pdfConverter
}

// newRenderer applies options and resolves the settings every render path
// needs. It performs no I/O.
func newRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{cfg: defaultConfig()}
	for _, opt := range opts {
		opt(r)
	}

	layout, err := dateutil.ResolveLayout(r.cfg.timeFormat)
	if err != nil {
		return nil, err
	}
	r.layout = layout
	r.formatter = markup.New(r.cfg.highlightStyle)
	return r, nil
}

// NewRenderer creates a Renderer with the default dark theme and skeleton.
// Use options to customize behavior (e.g., WithStyle, WithAssetPath).
// Returns error if assets cannot be loaded or the time format is invalid.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r, err := newRenderer(opts...)
	if err != nil {
		return nil, err
	}

	if r.assetLoader == nil {
		r.assetLoader, err = NewAssetLoader(r.cfg.assetPath)
		if err != nil {
			return nil, err
		}
	}

	templateName := r.cfg.templateName
	if templateName == "" {
		templateName = assets.DefaultTemplateName
	}
	r.skeleton, err = r.assetLoader.LoadTemplate(templateName)
	if err != nil {
		return nil, fmt.Errorf("loading template %q: %w", templateName, err)
	}

	theme, err := r.resolveStyle()
	if err != nil {
		return nil, err
	}
	highlight, err := r.formatter.CSS()
	if err != nil {
		return nil, err
	}
	r.documentCSS = theme + "\n" + highlight

	// Browser launch is deferred to the first PDF export.
	if r.pdfConverter == nil {
		r.pdfConverter = newRodConverter(r.cfg.timeout)
	}

	return r, nil
}

// resolveStyle resolves the style input (name or file path) to CSS content.
func (r *Renderer) resolveStyle() (string, error) {
	input := r.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading style file %q: %w", input, err)
		}
		return string(content), nil
	}

	css, err := r.assetLoader.LoadStyle(input)
	if err != nil {
		return "", fmt.Errorf("loading style %q: %w", input, err)
	}
	return css, nil
}

// Render builds the transcript for input and, when input.PDF is set, prints
// it to PDF. The context is checked between stages and bounds PDF export.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (r *Renderer) Render(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	if err := r.validateInput(input); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	skeleton := input.Skeleton
	if skeleton == "" {
		skeleton = r.skeleton
	}

	css := r.documentCSS + buildPrintCSS()
	if input.PDF != nil {
		css += buildWatermarkCSS(input.PDF.Watermark)
	}
	if input.CSS != "" {
		css += "\n" + input.CSS
	}

	start := time.Now()
	htmlContent, err := r.renderDocument(input.Messages, skeleton, input.Channel, css)
	if err != nil {
		return nil, err
	}
	r.cfg.logger.Debug("rendered transcript",
		"channel", input.Channel.Name,
		"messages", len(input.Messages),
		"bytes", len(htmlContent),
		"elapsed", time.Since(start),
	)

	res := &Result{HTML: []byte(htmlContent)}
	if input.PDF == nil {
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	pdfBytes, err := r.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{Page: input.PDF.Page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	r.cfg.logger.Debug("exported PDF", "bytes", len(pdfBytes), "elapsed", time.Since(start))

	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (r *Renderer) Close() error {
	if r.pdfConverter != nil {
		return r.pdfConverter.Close()
	}
	return nil
}

// validateInput checks that required fields are present and valid.
func (r *Renderer) validateInput(input Input) error {
	if len(input.Messages) == 0 {
		return ErrEmptyInput
	}
	return input.PDF.Validate()
}

// RenderTranscript renders messages into skeleton and returns the document.
// It is a pure function of its arguments: no assets are loaded, no CSS is
// injected, and no I/O is performed. Options that only affect PDF export or
// asset loading are ignored.
func RenderTranscript(messages []Message, skeleton string, channel Channel, opts ...Option) (string, error) {
	r, err := newRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.renderDocument(messages, skeleton, channel, "")
}

// Required skeleton anchors, checked in order.
const (
	anchorGuildIcon = ".preamble__guild-icon"
	anchorTitle     = "#transcriptTitle"
	anchorGuildName = "#guildname"
	anchorChannel   = "#ticketname"
	anchorChatLog   = "#chatlog"
)

// anchors are the skeleton elements the renderer fills in.
type anchors struct {
	guildIcon *html.Node
	title     *html.Node
	guildName *html.Node
	channel   *html.Node
	chatLog   *html.Node
}

// findAnchors locates every required anchor, reporting the first missing one.
func findAnchors(doc *html.Node) (*anchors, error) {
	a := &anchors{}
	lookups := []struct {
		selector string
		dst      **html.Node
		find     func() *html.Node
	}{
		{anchorGuildIcon, &a.guildIcon, func() *html.Node { return dom.ByClass(doc, "preamble__guild-icon") }},
		{anchorTitle, &a.title, func() *html.Node { return dom.ByID(doc, "transcriptTitle") }},
		{anchorGuildName, &a.guildName, func() *html.Node { return dom.ByID(doc, "guildname") }},
		{anchorChannel, &a.channel, func() *html.Node { return dom.ByID(doc, "ticketname") }},
		{anchorChatLog, &a.chatLog, func() *html.Node { return dom.ByID(doc, "chatlog") }},
	}

	for _, l := range lookups {
		n := l.find()
		if n == nil {
			return nil, fmt.Errorf("%w: %s", ErrTemplateMissingElement, l.selector)
		}
		*l.dst = n
	}
	return a, nil
}

// renderDocument is the core pipeline shared by Render and RenderTranscript.
// The skeleton is parsed fresh and the input slice is never reordered.
func (r *Renderer) renderDocument(messages []Message, skeleton string, channel Channel, css string) (string, error) {
	if len(messages) == 0 {
		return "", ErrEmptyInput
	}

	doc, err := dom.Parse(skeleton)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}

	a, err := findAnchors(doc)
	if err != nil {
		return "", err
	}
	r.fillHeader(a, channel)

	for _, msg := range sortMessages(messages) {
		if !r.cfg.includeBotMessages && msg.Author != nil && msg.Author.Bot {
			r.cfg.logger.Debug("skipping bot message", "id", msg.ID, "author", msg.Author.Username)
			continue
		}

		group, err := r.buildMessageGroup(msg)
		if err != nil {
			return "", err
		}
		a.chatLog.AppendChild(group)
	}

	if css != "" {
		injectStyle(doc, css)
	}

	out, err := dom.Render(doc)
	if err != nil {
		return "", fmt.Errorf("serializing document: %w", err)
	}
	return out, nil
}

// fillHeader sets the guild icon, title, guild name and channel name.
func (r *Renderer) fillHeader(a *anchors, channel Channel) {
	icon := channel.GuildIconURL
	if icon == "" {
		icon = r.cfg.guildIconURL
	}
	dom.SetAttr(a.guildIcon, "src", icon)
	dom.SetText(a.title, channel.Name)
	dom.SetText(a.guildName, channel.GuildName)
	dom.SetText(a.channel, channel.Name)
}

// sortMessages returns pointers to messages in ascending CreatedAt order.
// The sort is stable, so equal timestamps keep their input order.
func sortMessages(messages []Message) []*Message {
	sorted := make([]*Message, len(messages))
	for i := range messages {
		sorted[i] = &messages[i]
	}
	slices.SortStableFunc(sorted, func(a, b *Message) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return sorted
}

// formatTime renders t in the configured zone and layout.
func (r *Renderer) formatTime(t time.Time) string {
	return t.In(r.cfg.location).Format(r.layout)
}
