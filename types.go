package transcripts

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"
)

// Message is one chat message. Optional text fields use "" for absent.
type Message struct {
	ID        string
	CreatedAt time.Time
	Author    *User // nil renders the "Bot" placeholder
	Content   string

	Attachments []Attachment
	Embeds      []Embed

	// ReferencedMessage is the message this one replies to, if any.
	ReferencedMessage *Message
}

// User identifies a message author.
type User struct {
	ID          string
	Username    string
	DisplayName string // falls back to Username when empty
	AvatarURL   string // falls back to the renderer's default avatar when empty
	Bot         bool
}

// Attachment is a file uploaded with a message.
type Attachment struct {
	Filename  string
	URL       string
	Size      int64  // bytes
	Extension string // without the dot; derived from Filename when empty
}

// FileExtension returns the extension used for classification. It is never
// lower-cased: classification is case-sensitive.
func (a Attachment) FileExtension() string {
	if a.Extension != "" {
		return a.Extension
	}
	return strings.TrimPrefix(path.Ext(a.Filename), ".")
}

// Embed is a rich content block attached to a message.
type Embed struct {
	Color       *int // 0xRRGGBB; nil renders no color style
	Author      *EmbedAuthor
	Title       string
	URL         string
	Description string
	Fields      []EmbedField
	Thumbnail   *EmbedMedia
	Image       *EmbedMedia
	Footer      *EmbedFooter
	Timestamp   *time.Time
}

// EmbedAuthor is the author line of an embed.
type EmbedAuthor struct {
	Name    string
	URL     string
	IconURL string
}

// EmbedField is a name/value pair inside an embed.
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// EmbedMedia references a thumbnail or image.
type EmbedMedia struct {
	URL string
}

// EmbedFooter is the footer line of an embed.
type EmbedFooter struct {
	Text    string
	IconURL string
}

// Channel holds the metadata shown in the transcript header.
type Channel struct {
	Name         string
	GuildName    string
	GuildIconURL string // falls back to the renderer's fallback icon when empty
}

// Input contains render parameters.
type Input struct {
	Messages []Message // required, non-empty
	Channel  Channel

	// Skeleton overrides the renderer's loaded template for this call.
	Skeleton string

	// CSS is appended after the theme, so it can override it.
	CSS string

	// PDF requests a PDF export alongside the HTML. Nil skips PDF generation.
	PDF *PDFOptions
}

// Result holds the outputs of a render.
type Result struct {
	HTML []byte
	PDF  []byte // nil unless Input.PDF was set
}

// PDFOptions configures PDF export.
type PDFOptions struct {
	Page      *PageSettings // nil = DefaultPageSettings
	Watermark *Watermark    // nil = no watermark
}

// Validate checks page and watermark settings.
func (o *PDFOptions) Validate() error {
	if o == nil {
		return nil
	}
	if err := o.Page.Validate(); err != nil {
		return err
	}
	return o.Watermark.Validate()
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Watermark defaults.
const (
	DefaultWatermarkColor   = "#888888"
	DefaultWatermarkOpacity = 0.1
	DefaultWatermarkAngle   = -45.0
)

// Watermark configures diagonal background text on every printed page.
type Watermark struct {
	Text    string
	Color   string  // hex, "#rgb" or "#rrggbb"; empty = DefaultWatermarkColor
	Opacity float64 // 0 to 1
	Angle   float64 // degrees
}

var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks the watermark color. Returns nil if w is nil.
func (w *Watermark) Validate() error {
	if w == nil || w.Color == "" {
		return nil
	}
	if !hexColorPattern.MatchString(w.Color) {
		return fmt.Errorf("%w: %q (must be #rgb or #rrggbb)", ErrInvalidWatermarkColor, w.Color)
	}
	return nil
}
