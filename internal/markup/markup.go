// Package markup converts chat message text into HTML-safe inline markup.
//
// Supported syntax is a fixed, Discord-style subset:
//
//	**bold**  __underline__  *italic* _italic_  ~~strike~~  ||spoiler||
//	`inline code`  ```lang\ncode block```
//
// Everything else is escaped and passed through verbatim. Newlines are kept as
// literal "\n"; callers place the result in a whitespace-preserving element.
// Format is not idempotent: running it on its own output escapes entities twice.
package markup

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/net/html"
)

// DefaultHighlightStyle is the chroma style used for code block CSS.
const DefaultHighlightStyle = "monokai"

// Code spans are lifted out before escaping and restored at the end, so their
// content never goes through the emphasis rules. Placeholders use Unicode
// Private Use Area characters, which are stripped from the raw input first.
const (
	placeholderStart = "\uE000"
	placeholderEnd   = "\uE001"
)

// Precompiled patterns. Order of application matters and follows the table below.
var (
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	codeBlockPattern  = regexp.MustCompile("(?s)```(?:([A-Za-z0-9_+#-]+)\n)?(.*?)```")
	inlineCodePattern = regexp.MustCompile("`([^`\n]+)`")
	placeholderRef    = regexp.MustCompile(`\x{E000}([0-9]+)\x{E001}`)

	placeholderStripper = strings.NewReplacer(placeholderStart, "", placeholderEnd, "")
)

// emphasis maps one markdown-like token pair to an HTML element. The
// pattern's "body" group is the wrapped text; optional "pre" and "post"
// groups are boundary characters consumed by the match and written back.
type emphasis struct {
	pattern     *regexp.Regexp
	open, close string
}

// wordEdge matches a character that may sit next to an underscore marker:
// anything but a letter, digit or underscore in any script.
const wordEdge = `[^\p{L}\p{N}_]`

// emphases is applied in order to already-escaped text.
var emphases = []emphasis{
	{regexp.MustCompile(`(?s)\*\*\*(?P<body>.+?)\*\*\*`), "<strong><em>", "</em></strong>"},
	{regexp.MustCompile(`(?s)\*\*(?P<body>.+?)\*\*`), "<strong>", "</strong>"},
	{regexp.MustCompile(`(?s)__(?P<body>.+?)__`), "<u>", "</u>"},
	{regexp.MustCompile(`\*(?P<body>[^\s*](?:[^*]*?[^\s*])?)\*`), "<em>", "</em>"},
	{regexp.MustCompile(`(?P<pre>^|` + wordEdge + `)_(?P<body>[^_\n]+?)_(?P<post>$|` + wordEdge + `)`), "<em>", "</em>"},
	{regexp.MustCompile(`(?s)~~(?P<body>.+?)~~`), "<s>", "</s>"},
	{regexp.MustCompile(`(?s)\|\|(?P<body>.+?)\|\|`), `<span class="spoiler-text">`, "</span>"},
}

// Formatter renders message text. The zero value is not usable; use New.
type Formatter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// New creates a Formatter whose code blocks are highlighted with CSS classes
// from the named chroma style. Unknown style names fall back to chroma's default.
func New(styleName string) *Formatter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &Formatter{
		style: style,
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
	}
}

var defaultFormatter = New(DefaultHighlightStyle)

// Format converts raw text using the default formatter.
func Format(raw string) string {
	return defaultFormatter.Format(raw)
}

// Format escapes raw and applies the emphasis rules.
func (f *Formatter) Format(raw string) string {
	if raw == "" {
		return ""
	}

	text := placeholderStripper.Replace(raw)
	text = crlfOrCR.ReplaceAllString(text, "\n")

	var segments []string
	hold := func(rendered string) string {
		segments = append(segments, rendered)
		return placeholderStart + strconv.Itoa(len(segments)-1) + placeholderEnd
	}

	text = codeBlockPattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := codeBlockPattern.FindStringSubmatch(m)
		return hold(f.codeBlock(sub[1], sub[2]))
	})
	text = inlineCodePattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := inlineCodePattern.FindStringSubmatch(m)
		return hold(`<span class="pre pre--inline">` + html.EscapeString(sub[1]) + `</span>`)
	})

	text = emphasize(html.EscapeString(text), emphases, hold)

	var restore func(string) string
	restore = func(s string) string {
		return placeholderRef.ReplaceAllStringFunc(s, func(m string) string {
			idx, err := strconv.Atoi(placeholderRef.FindStringSubmatch(m)[1])
			if err != nil || idx >= len(segments) {
				return ""
			}
			return restore(segments[idx])
		})
	}
	return restore(text)
}

// emphasize applies rules in order. A match's body only sees the rules after
// it, and the finished element is held as a placeholder, so no later rule can
// pair a marker inside an element with one outside it. Each rule reruns until
// nothing matches: boundary groups consume the character a neighboring
// match needs.
func emphasize(text string, rules []emphasis, hold func(string) string) string {
	for i, rule := range rules {
		rest := rules[i+1:]
		for {
			next := rule.pattern.ReplaceAllStringFunc(text, func(m string) string {
				sub := rule.pattern.FindStringSubmatch(m)
				body := emphasize(group(rule.pattern, sub, "body"), rest, hold)
				return group(rule.pattern, sub, "pre") +
					hold(rule.open+body+rule.close) +
					group(rule.pattern, sub, "post")
			})
			if next == text {
				break
			}
			text = next
		}
	}
	return text
}

// group returns the named submatch, or "" when the pattern has no such group.
func group(re *regexp.Regexp, sub []string, name string) string {
	if i := re.SubexpIndex(name); i >= 0 {
		return sub[i]
	}
	return ""
}

// codeBlock renders a fenced block, highlighted when lang names a known lexer.
// Highlighted blocks carry the "chroma" class that scopes the CSS rules.
func (f *Formatter) codeBlock(lang, code string) string {
	code = strings.Trim(code, "\n")

	if lang != "" {
		if highlighted, ok := f.highlight(lang, code); ok {
			return fmt.Sprintf(`<div class="pre pre--multiline chroma language-%s">%s</div>`, html.EscapeString(lang), highlighted)
		}
	}
	return `<div class="pre pre--multiline">` + html.EscapeString(code) + `</div>`
}

func (f *Formatter) highlight(lang, code string) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", false
	}
	var buf bytes.Buffer
	if err := f.formatter.Format(&buf, f.style, iterator); err != nil {
		return "", false
	}
	return buf.String(), true
}

// CSS returns the stylesheet for highlighted code block classes.
func (f *Formatter) CSS() (string, error) {
	var buf bytes.Buffer
	if err := f.formatter.WriteCSS(&buf, f.style); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}
