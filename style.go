package transcripts

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/szymon-off/discord-html-transcripts/internal/dom"
)

// defaultFontFamily is the font stack for generated print content.
const defaultFontFamily = "sans-serif"

// watermarkFontSize is the font size for watermark text overlay.
const watermarkFontSize = "8rem"

// injectStyle appends a <style> element with css to the document head.
// The parser always synthesizes a head, so the body is only a fallback.
func injectStyle(doc *html.Node, css string) {
	style := dom.Elem("style", "")
	style.AppendChild(dom.Text(sanitizeCSS(css)))

	if head := dom.ByTag(doc, "head"); head != nil {
		head.AppendChild(style)
		return
	}
	if body := dom.ByTag(doc, "body"); body != nil {
		body.InsertBefore(style, body.FirstChild)
	}
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// buildPrintCSS keeps message groups and embeds whole across page breaks and
// expands media so printed transcripts stay readable.
func buildPrintCSS() string {
	return `
/* Print: keep each message group on one page when possible */
@media print {
  .chatlog__message-group,
  .chatlog__embed,
  .chatlog__attachment,
  .pre--multiline {
    break-inside: avoid;
    page-break-inside: avoid;
  }
  .preamble {
    break-after: avoid;
    page-break-after: avoid;
  }
  .spoiler-text {
    color: inherit;
  }
  .chatlog__attachment-media {
    max-width: 100%;
  }
  video, audio {
    display: none;
  }
}
`
}

// buildWatermarkCSS generates CSS for a diagonal watermark on printed pages.
// The watermark uses position:fixed to repeat on every page.
func buildWatermarkCSS(w *Watermark) string {
	if w == nil || w.Text == "" {
		return ""
	}

	color := w.Color
	if color == "" {
		color = DefaultWatermarkColor
	}
	opacity := w.Opacity
	if opacity <= 0 || opacity > 1 {
		opacity = DefaultWatermarkOpacity
	}
	angle := w.Angle
	if angle == 0 {
		angle = DefaultWatermarkAngle
	}

	return fmt.Sprintf(`
/* Watermark */
@media print {
  body::before {
    content: "%s";
    position: fixed;
    top: 50%%;
    left: 50%%;
    transform: translate(-50%%, -50%%) rotate(%.1fdeg);
    font-size: %s;
    font-weight: bold;
    color: %s;
    opacity: %.2f;
    z-index: -1;
    pointer-events: none;
    white-space: nowrap;
    font-family: %s;
  }
}
`, escapeCSSString(breakURLPattern(w.Text)), angle, watermarkFontSize, color, opacity, defaultFontFamily)
}

// escapeCSSString escapes a string for safe use in a CSS content property.
func escapeCSSString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\A `)
	s = strings.ReplaceAll(s, "\r", "")
	return s
}

// breakURLPattern replaces every dot with ONE DOT LEADER (U+2024) so PDF
// viewers do not turn watermark text like "example.com" into a link.
func breakURLPattern(text string) string {
	return strings.ReplaceAll(text, ".", "\u2024")
}
