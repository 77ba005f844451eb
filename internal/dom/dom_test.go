package dom

import (
	"strings"
	"testing"
)

const testDocument = `<!DOCTYPE html>
<html><head><title id="transcriptTitle">old</title></head>
<body>
<img class="preamble__guild-icon big" src="">
<div id="chatlog"></div>
</body></html>`

func TestParseAndQuery(t *testing.T) {
	t.Parallel()

	doc, err := Parse(testDocument)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		find    func() bool
		wantHit bool
	}{
		{name: "ByID finds chatlog", find: func() bool { return ByID(doc, "chatlog") != nil }, wantHit: true},
		{name: "ByID misses unknown id", find: func() bool { return ByID(doc, "nope") != nil }, wantHit: false},
		{name: "ByClass matches one token of many", find: func() bool { return ByClass(doc, "preamble__guild-icon") != nil }, wantHit: true},
		{name: "ByClass does not match substrings", find: func() bool { return ByClass(doc, "preamble") != nil }, wantHit: false},
		{name: "ByTag finds title", find: func() bool { return ByTag(doc, "title") != nil }, wantHit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.find(); got != tt.wantHit {
				t.Errorf("found = %v, want %v", got, tt.wantHit)
			}
		})
	}
}

func TestElemAndRender(t *testing.T) {
	t.Parallel()

	div := Elem("div", "chatlog__message", "data-message-id", "42", "dangling")
	Append(div, Text("a < b"), nil, Elem("img", "", "src", "x.png"))

	got, err := Render(div)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	want := `<div class="chatlog__message" data-message-id="42">a &lt; b<img src="x.png"/></div>`
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestSetAttr(t *testing.T) {
	t.Parallel()

	n := Elem("img", "", "src", "a.png")
	SetAttr(n, "src", "b.png")
	SetAttr(n, "alt", "Avatar")

	if v, _ := Attr(n, "src"); v != "b.png" {
		t.Errorf("src = %q, want b.png", v)
	}
	if v, ok := Attr(n, "alt"); !ok || v != "Avatar" {
		t.Errorf("alt = %q (present %v), want Avatar", v, ok)
	}
	if len(n.Attr) != 2 {
		t.Errorf("attribute count = %d, want 2", len(n.Attr))
	}
}

func TestSetText_ReplacesChildren(t *testing.T) {
	t.Parallel()

	n := Elem("span", "")
	Append(n, Elem("b", ""), Text("old"))
	SetText(n, "new")

	if got := TextContent(n); got != "new" {
		t.Errorf("TextContent() = %q, want %q", got, "new")
	}
	if n.FirstChild != n.LastChild {
		t.Error("SetText should leave exactly one child")
	}
}

func TestSetInnerHTML(t *testing.T) {
	t.Parallel()

	n := Elem("div", "markdown")
	if err := SetInnerHTML(n, "<em>b</em> and <strong>c</strong>"); err != nil {
		t.Fatalf("SetInnerHTML() unexpected error: %v", err)
	}

	got, err := Render(n)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if want := `<div class="markdown"><em>b</em> and <strong>c</strong></div>`; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestFindAll_DocumentOrder(t *testing.T) {
	t.Parallel()

	root := Elem("div", "")
	for _, id := range []string{"1", "2", "3"} {
		Append(root, Elem("div", "group", "id", id))
	}

	var ids []string
	for _, n := range FindAll(root, HasClass("group")) {
		v, _ := Attr(n, "id")
		ids = append(ids, v)
	}
	if got := strings.Join(ids, ","); got != "1,2,3" {
		t.Errorf("FindAll order = %q, want %q", got, "1,2,3")
	}
}
