package transcripts

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/szymon-off/discord-html-transcripts/internal/dom"
)

// embedSlot is the container an embed sub-block is attached to.
type embedSlot int

const (
	slotRoot      embedSlot = iota // chatlog__embed
	slotText                       // chatlog__embed-text
	slotContent                    // chatlog__embed-content, after the text column
	slotContainer                  // chatlog__embed-content-container, after the content row
)

// embedPart builds one optional sub-block; it returns nil when absent.
type embedPart struct {
	slot  embedSlot
	build func(*Renderer, *Embed) (*html.Node, error)
}

// embedParts lists the sub-blocks in output order.
var embedParts = []embedPart{
	{slotRoot, (*Renderer).embedColorPill},
	{slotText, (*Renderer).embedAuthor},
	{slotText, (*Renderer).embedTitle},
	{slotText, (*Renderer).embedDescription},
	{slotText, (*Renderer).embedFields},
	{slotContent, (*Renderer).embedThumbnail},
	{slotContainer, (*Renderer).embedImage},
	{slotContainer, (*Renderer).embedFooter},
}

// buildEmbed renders one embed:
//
//	chatlog__embed
//	├── color pill
//	└── content-container
//	    ├── content
//	    │   ├── text (author, title, description, fields)
//	    │   └── thumbnail
//	    ├── image
//	    └── footer
func (r *Renderer) buildEmbed(e *Embed) (*html.Node, error) {
	slots := make(map[embedSlot][]*html.Node, 4)
	for _, part := range embedParts {
		n, err := part.build(r, e)
		if err != nil {
			return nil, err
		}
		if n != nil {
			slots[part.slot] = append(slots[part.slot], n)
		}
	}

	text := dom.Append(dom.Elem("div", "chatlog__embed-text"), slots[slotText]...)

	content := dom.Elem("div", "chatlog__embed-content")
	content.AppendChild(text)
	dom.Append(content, slots[slotContent]...)

	container := dom.Elem("div", "chatlog__embed-content-container")
	container.AppendChild(content)
	dom.Append(container, slots[slotContainer]...)

	root := dom.Append(dom.Elem("div", "chatlog__embed"), slots[slotRoot]...)
	root.AppendChild(container)
	return root, nil
}

// markdownBlock is a whitespace-preserving container holding markup.
func markdownBlock(markup string) (*html.Node, error) {
	n := dom.Elem("div", "markdown preserve-whitespace")
	if err := dom.SetInnerHTML(n, markup); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *Renderer) embedColorPill(e *Embed) (*html.Node, error) {
	if e.Color == nil {
		return nil, nil
	}
	return dom.Elem("div", "chatlog__embed-color-pill",
		"style", "background-color: "+colorHex(*e.Color),
	), nil
}

// colorHex formats a 0xRRGGBB value as "#rrggbb".
func colorHex(c int) string {
	return fmt.Sprintf("#%06x", c&0xFFFFFF)
}

// embedAuthor renders only when the author has a name.
func (r *Renderer) embedAuthor(e *Embed) (*html.Node, error) {
	if e.Author == nil || e.Author.Name == "" {
		return nil, nil
	}

	author := dom.Elem("div", "chatlog__embed-author")
	if e.Author.IconURL != "" {
		author.AppendChild(dom.Elem("img", "chatlog__embed-author-icon",
			"src", e.Author.IconURL,
			"alt", "Author icon",
			"loading", "lazy",
		))
	}

	name := dom.Elem("span", "chatlog__embed-author-name")
	if e.Author.URL != "" {
		link := dom.Elem("a", "chatlog__embed-author-name-link", "href", e.Author.URL)
		dom.SetText(link, e.Author.Name)
		name.AppendChild(link)
	} else {
		dom.SetText(name, e.Author.Name)
	}

	author.AppendChild(name)
	return author, nil
}

func (r *Renderer) embedTitle(e *Embed) (*html.Node, error) {
	if e.Title == "" {
		return nil, nil
	}

	body, err := markdownBlock(r.formatter.Format(e.Title))
	if err != nil {
		return nil, err
	}

	title := dom.Elem("div", "chatlog__embed-title")
	if e.URL != "" {
		link := dom.Elem("a", "chatlog__embed-title-link", "href", e.URL)
		link.AppendChild(body)
		title.AppendChild(link)
	} else {
		title.AppendChild(body)
	}
	return title, nil
}

func (r *Renderer) embedDescription(e *Embed) (*html.Node, error) {
	if e.Description == "" {
		return nil, nil
	}

	body, err := markdownBlock(r.formatter.Format(e.Description))
	if err != nil {
		return nil, err
	}
	return dom.Append(dom.Elem("div", "chatlog__embed-description"), body), nil
}

// embedFields renders every field; the name is raw markup in legacy mode
// and formatted in strict mode, the value is always formatted.
func (r *Renderer) embedFields(e *Embed) (*html.Node, error) {
	if len(e.Fields) == 0 {
		return nil, nil
	}

	fields := dom.Elem("div", "chatlog__embed-fields")
	for i, f := range e.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: embed field %d name", ErrMissingRequiredField, i)
		}

		class := "chatlog__embed-field"
		if f.Inline {
			class = "chatlog__embed-field-inline"
		}

		nameMarkup := f.Name
		if r.cfg.fieldNameMode == FieldNamesStrict {
			nameMarkup = r.formatter.Format(f.Name)
		}
		name, err := markdownBlock(nameMarkup)
		if err != nil {
			return nil, err
		}
		value, err := markdownBlock(r.formatter.Format(f.Value))
		if err != nil {
			return nil, err
		}

		dom.Append(fields, dom.Append(dom.Elem("div", class),
			dom.Append(dom.Elem("div", "chatlog__embed-field-name"), name),
			dom.Append(dom.Elem("div", "chatlog__embed-field-value"), value),
		))
	}
	return fields, nil
}

func (r *Renderer) embedThumbnail(e *Embed) (*html.Node, error) {
	if e.Thumbnail == nil {
		return nil, nil
	}
	if e.Thumbnail.URL == "" {
		return nil, fmt.Errorf("%w: embed thumbnail url", ErrMissingRequiredField)
	}

	link := dom.Elem("a", "chatlog__embed-thumbnail-link", "href", e.Thumbnail.URL)
	link.AppendChild(dom.Elem("img", "chatlog__embed-thumbnail",
		"src", e.Thumbnail.URL,
		"alt", "Thumbnail",
		"loading", "lazy",
	))
	return dom.Append(dom.Elem("div", "chatlog__embed-thumbnail-container"), link), nil
}

func (r *Renderer) embedImage(e *Embed) (*html.Node, error) {
	if e.Image == nil {
		return nil, nil
	}
	if e.Image.URL == "" {
		return nil, fmt.Errorf("%w: embed image url", ErrMissingRequiredField)
	}

	link := dom.Elem("a", "chatlog__embed-image-link", "href", e.Image.URL)
	link.AppendChild(dom.Elem("img", "chatlog__embed-image",
		"src", e.Image.URL,
		"alt", "Image",
		"loading", "lazy",
	))
	return dom.Append(dom.Elem("div", "chatlog__embed-image-container"), link), nil
}

// embedFooter renders icon and text; the embed timestamp is appended as
// " • HH:mm:ss" when present.
func (r *Renderer) embedFooter(e *Embed) (*html.Node, error) {
	if e.Footer == nil {
		return nil, nil
	}
	if e.Footer.Text == "" {
		return nil, fmt.Errorf("%w: embed footer text", ErrMissingRequiredField)
	}

	footer := dom.Elem("div", "chatlog__embed-footer")
	if e.Footer.IconURL != "" {
		footer.AppendChild(dom.Elem("img", "chatlog__embed-footer-icon",
			"src", e.Footer.IconURL,
			"alt", "Footer icon",
			"loading", "lazy",
		))
	}

	text := e.Footer.Text
	if e.Timestamp != nil {
		text += " • " + r.formatTime(*e.Timestamp)
	}
	span := dom.Elem("span", "chatlog__embed-footer-text")
	dom.SetText(span, text)

	footer.AppendChild(span)
	return footer, nil
}
