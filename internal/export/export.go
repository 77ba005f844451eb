// Package export reads chat exports from JSON or YAML files.
//
// An export holds the channel header and a flat list of messages:
//
//	channel:
//	  name: support-42
//	  guildName: Example Guild
//	messages:
//	  - id: "1001"
//	    createdAt: "2024-03-01T14:03:09Z"
//	    author: {id: "7", username: alice}
//	    content: hello **world**
//	    replyTo: "1000"
//
// JSON is read by the same decoder. Replies name the referenced message by
// id; references to messages outside the export are dropped.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	transcripts "github.com/szymon-off/discord-html-transcripts"
	"github.com/szymon-off/discord-html-transcripts/internal/yamlutil"
)

// Sentinel errors for export parsing.
var (
	ErrInvalidExport    = errors.New("invalid export")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrUnsupportedType  = errors.New("unsupported export file type")
)

// Extensions lists the file extensions Load accepts.
var Extensions = []string{".json", ".yaml", ".yml"}

// Export is a parsed chat export.
type Export struct {
	Channel  transcripts.Channel
	Messages []transcripts.Message
}

// FetchMessages serves the export in pages.
func (e *Export) FetchMessages(ctx context.Context, cursor string, limit int) ([]transcripts.Message, string, error) {
	return transcripts.SliceSource(e.Messages).FetchMessages(ctx, cursor, limit)
}

var _ transcripts.MessageSource = (*Export)(nil)

// IsExportFile reports whether path has a supported extension.
func IsExportFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load reads and parses an export file.
func Load(path string) (*Export, error) {
	if !IsExportFile(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, path)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- export path is user-provided
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}

	e, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return e, nil
}

// Parse decodes a JSON or YAML export.
func Parse(data []byte) (*Export, error) {
	var doc document
	if err := yamlutil.UnmarshalExport(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExport, err)
	}
	return doc.convert()
}

// document mirrors the file layout.
type document struct {
	Channel  channelDoc   `yaml:"channel"`
	Messages []messageDoc `yaml:"messages"`
}

type channelDoc struct {
	Name         string `yaml:"name"`
	GuildName    string `yaml:"guildName"`
	GuildIconURL string `yaml:"guildIconUrl"`
}

type messageDoc struct {
	ID          string          `yaml:"id"`
	CreatedAt   string          `yaml:"createdAt"`
	Author      *userDoc        `yaml:"author"`
	Content     string          `yaml:"content"`
	Attachments []attachmentDoc `yaml:"attachments"`
	Embeds      []embedDoc      `yaml:"embeds"`
	ReplyTo     string          `yaml:"replyTo"`
}

type userDoc struct {
	ID          string `yaml:"id"`
	Username    string `yaml:"username"`
	DisplayName string `yaml:"displayName"`
	AvatarURL   string `yaml:"avatarUrl"`
	Bot         bool   `yaml:"bot"`
}

type attachmentDoc struct {
	Filename  string `yaml:"filename"`
	URL       string `yaml:"url"`
	Size      int64  `yaml:"size"`
	Extension string `yaml:"extension"`
}

type embedDoc struct {
	Color       *int            `yaml:"color"`
	Author      *embedAuthorDoc `yaml:"author"`
	Title       string          `yaml:"title"`
	URL         string          `yaml:"url"`
	Description string          `yaml:"description"`
	Fields      []embedFieldDoc `yaml:"fields"`
	Thumbnail   *mediaDoc       `yaml:"thumbnail"`
	Image       *mediaDoc       `yaml:"image"`
	Footer      *footerDoc      `yaml:"footer"`
	Timestamp   string          `yaml:"timestamp"`
}

type embedAuthorDoc struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	IconURL string `yaml:"iconUrl"`
}

type embedFieldDoc struct {
	Name   string `yaml:"name"`
	Value  string `yaml:"value"`
	Inline bool   `yaml:"inline"`
}

type mediaDoc struct {
	URL string `yaml:"url"`
}

type footerDoc struct {
	Text    string `yaml:"text"`
	IconURL string `yaml:"iconUrl"`
}

func (d *document) convert() (*Export, error) {
	e := &Export{
		Channel: transcripts.Channel{
			Name:         d.Channel.Name,
			GuildName:    d.Channel.GuildName,
			GuildIconURL: d.Channel.GuildIconURL,
		},
		Messages: make([]transcripts.Message, len(d.Messages)),
	}

	index := make(map[string]int, len(d.Messages))
	for i, m := range d.Messages {
		if m.ID == "" {
			return nil, fmt.Errorf("%w: message %d has no id", ErrInvalidExport, i)
		}
		if _, dup := index[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate message id %s", ErrInvalidExport, m.ID)
		}
		index[m.ID] = i

		msg, err := m.convert()
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", m.ID, err)
		}
		e.Messages[i] = msg
	}

	// Replies point into the slice after every message is built. The
	// referenced copy carries no reference of its own.
	for i, m := range d.Messages {
		if m.ReplyTo == "" {
			continue
		}
		j, ok := index[m.ReplyTo]
		if !ok {
			continue
		}
		ref := e.Messages[j]
		ref.ReferencedMessage = nil
		e.Messages[i].ReferencedMessage = &ref
	}

	return e, nil
}

func (m *messageDoc) convert() (transcripts.Message, error) {
	created, err := parseTime("createdAt", m.CreatedAt)
	if err != nil {
		return transcripts.Message{}, err
	}

	msg := transcripts.Message{
		ID:        m.ID,
		CreatedAt: created,
		Content:   m.Content,
	}
	if m.Author != nil {
		msg.Author = &transcripts.User{
			ID:          m.Author.ID,
			Username:    m.Author.Username,
			DisplayName: m.Author.DisplayName,
			AvatarURL:   m.Author.AvatarURL,
			Bot:         m.Author.Bot,
		}
	}
	for _, a := range m.Attachments {
		msg.Attachments = append(msg.Attachments, transcripts.Attachment(a))
	}
	for i, ed := range m.Embeds {
		embed, err := ed.convert()
		if err != nil {
			return transcripts.Message{}, fmt.Errorf("embed %d: %w", i, err)
		}
		msg.Embeds = append(msg.Embeds, embed)
	}
	return msg, nil
}

func (ed *embedDoc) convert() (transcripts.Embed, error) {
	e := transcripts.Embed{
		Color:       ed.Color,
		Title:       ed.Title,
		URL:         ed.URL,
		Description: ed.Description,
	}
	if ed.Author != nil {
		e.Author = &transcripts.EmbedAuthor{Name: ed.Author.Name, URL: ed.Author.URL, IconURL: ed.Author.IconURL}
	}
	for _, f := range ed.Fields {
		e.Fields = append(e.Fields, transcripts.EmbedField(f))
	}
	if ed.Thumbnail != nil {
		e.Thumbnail = &transcripts.EmbedMedia{URL: ed.Thumbnail.URL}
	}
	if ed.Image != nil {
		e.Image = &transcripts.EmbedMedia{URL: ed.Image.URL}
	}
	if ed.Footer != nil {
		e.Footer = &transcripts.EmbedFooter{Text: ed.Footer.Text, IconURL: ed.Footer.IconURL}
	}
	if ed.Timestamp != "" {
		ts, err := parseTime("timestamp", ed.Timestamp)
		if err != nil {
			return transcripts.Embed{}, err
		}
		e.Timestamp = &ts
	}
	return e, nil
}

// parseTime parses an RFC 3339 timestamp; fractional seconds are optional.
func parseTime(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", ErrInvalidTimestamp, field)
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q: %v", ErrInvalidTimestamp, field, value, err)
	}
	return t, nil
}
