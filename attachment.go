package transcripts

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"golang.org/x/net/html"

	"github.com/szymon-off/discord-html-transcripts/internal/dom"
)

// formatSize renders a byte count as a short SI string ("2.0 kB").
func formatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// buildAttachment renders one attachment block according to its media kind.
func (r *Renderer) buildAttachment(a *Attachment) (*html.Node, error) {
	if a.URL == "" {
		return nil, fmt.Errorf("%w: attachment url (%q)", ErrMissingRequiredField, a.Filename)
	}

	block := dom.Elem("div", "chatlog__attachment")
	kind := Classify(a.FileExtension())

	switch kind {
	case MediaImage:
		link := dom.Elem("a", "", "href", a.URL)
		dom.Append(link, dom.Elem("img", "chatlog__attachment-media",
			"src", a.URL,
			"alt", "Image attachment",
			"loading", "lazy",
			"title", mediaTitle(kind, a),
		))
		block.AppendChild(link)
	case MediaVideo, MediaAudio:
		tag := "video"
		if kind == MediaAudio {
			tag = "audio"
		}
		block.AppendChild(dom.Elem(tag, "chatlog__attachment-media",
			"src", a.URL,
			"alt", kind.String()+" attachment",
			"controls", "",
			"title", mediaTitle(kind, a),
		))
	case MediaGeneric:
		block.AppendChild(r.buildGenericAttachment(a))
	default:
		panic(fmt.Sprintf("transcripts: unhandled media kind %d", kind))
	}

	return block, nil
}

// mediaTitle is the hover title of a media attachment: "Image: cat.png (2.0 kB)".
func mediaTitle(kind MediaKind, a *Attachment) string {
	return fmt.Sprintf("%s: %s (%s)", kind, a.Filename, formatSize(a.Size))
}

// buildGenericAttachment renders the file icon, name link and size.
func (r *Renderer) buildGenericAttachment(a *Attachment) *html.Node {
	generic := dom.Elem("div", "chatlog__attachment-generic")

	icon := dom.Elem("svg", "chatlog__attachment-generic-icon")
	icon.AppendChild(dom.Elem("use", "", "xlink:href", "#icon-attachment"))

	name := dom.Elem("div", "chatlog__attachment-generic-name")
	link := dom.Elem("a", "", "href", a.URL)
	dom.SetText(link, a.Filename)
	name.AppendChild(link)

	size := dom.Elem("div", "chatlog__attachment-generic-size")
	dom.SetText(size, formatSize(a.Size))

	return dom.Append(generic, icon, name, size)
}
