// Package dom provides a small element-building and query layer over
// golang.org/x/net/html for assembling transcript documents.
//
// Nodes built here are detached until appended; the renderer builds each
// message group bottom-up and attaches it to the chat log in one step.
package dom

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrParse indicates the HTML input could not be parsed.
var ErrParse = errors.New("HTML parse failed")

// Parse parses a complete HTML document.
func Parse(content string) (*html.Node, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return doc, nil
}

// Render serializes a node tree to a string.
func Render(n *html.Node) (string, error) {
	var buf strings.Builder
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Elem creates a detached element with an optional class attribute and
// key/value attribute pairs. A trailing key without value is ignored.
func Elem(tag, class string, attrs ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tag)),
		Data:     tag,
	}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// Text creates a detached text node. Content is escaped on render.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Append attaches children to parent in order. Nil children are skipped.
func Append(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		if c != nil {
			parent.AppendChild(c)
		}
	}
	return parent
}

// SetAttr sets or replaces an attribute.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Attr returns the value of an attribute and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// RemoveChildren detaches every child of n.
func RemoveChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// SetText replaces the children of n with a single text node.
func SetText(n *html.Node, s string) {
	RemoveChildren(n)
	n.AppendChild(Text(s))
}

// SetInnerHTML replaces the children of n with the nodes parsed from markup,
// using n as the fragment context.
func SetInnerHTML(n *html.Node, markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), n)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	RemoveChildren(n)
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// Find returns the first element in document order for which match is true.
func Find(root *html.Node, match func(*html.Node) bool) *html.Node {
	if root.Type == html.ElementNode && match(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := Find(c, match); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every element in document order for which match is true.
func FindAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// ByID returns the first element with the given id.
func ByID(root *html.Node, id string) *html.Node {
	return Find(root, func(n *html.Node) bool {
		v, ok := Attr(n, "id")
		return ok && v == id
	})
}

// ByClass returns the first element whose class list contains class.
func ByClass(root *html.Node, class string) *html.Node {
	return Find(root, HasClass(class))
}

// ByTag returns the first element with the given tag name.
func ByTag(root *html.Node, tag string) *html.Node {
	return Find(root, func(n *html.Node) bool { return n.Data == tag })
}

// HasClass returns a matcher for elements whose class list contains class.
func HasClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, ok := Attr(n, "class")
		if !ok {
			return false
		}
		for _, c := range strings.Fields(v) {
			if c == class {
				return true
			}
		}
		return false
	}
}

// TextContent concatenates the text of n and its descendants.
func TextContent(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}
