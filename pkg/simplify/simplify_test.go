package simplify

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parse(t *testing.T, raw string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("parsing test html: %v", err)
	}
	return doc
}

// paragraphIDs collects the id attributes of all p elements, in order.
func paragraphIDs(doc *html.Node) []string {
	var ids []string
	walk(doc, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			id, _ := attr(n, "id")
			ids = append(ids, id)
		}
	})
	return ids
}

func TestProcessRedirectStub(t *testing.T) {
	doc := parse(t, `<html><head>
		<link rel="mw:PageProp/redirect" href="./Target_Article"/>
	</head><body><p>Redirect stub body.</p></body></html>`)

	err := Process(doc, "en")
	var redirect *RedirectError
	if !errors.As(err, &redirect) {
		t.Fatalf("got %v, want *RedirectError", err)
	}
	if redirect.Target != "Target_Article" {
		t.Errorf("Target = %q, want %q", redirect.Target, "Target_Article")
	}
}

// A tree whose parent/child links are inconsistent makes the rewrite
// phases panic; Process must convert that into an error instead of
// unwinding into the caller's batch loop.
func TestProcessRecoversFromPanic(t *testing.T) {
	doc := &html.Node{Type: html.DocumentNode}
	wrapper := &html.Node{Type: html.ElementNode, Data: "span"}
	doc.AppendChild(wrapper)
	// A child that does not point back at its parent.
	wrapper.FirstChild = &html.Node{Type: html.ElementNode, Data: "b"}

	err := Process(doc, "en")
	var panicked *PanicError
	if !errors.As(err, &panicked) {
		t.Fatalf("got %v, want *PanicError", err)
	}
	if !strings.Contains(panicked.Msg, "RemoveChild") {
		t.Errorf("Msg = %q, want the recovered panic message", panicked.Msg)
	}
}

func TestProcessNoText(t *testing.T) {
	doc := parse(t, `<html><body><table><tr><td>Only an infobox.</td></tr></table></body></html>`)

	if err := Process(doc, "en"); !errors.Is(err, ErrNoText) {
		t.Fatalf("got %v, want ErrNoText", err)
	}
}

// Verify trailing siblings are removed up to same-or-higher headers.
func TestRemoveNamedHeaderSiblings(t *testing.T) {
	doc := parse(t, `
		<h1>Title</h1>
			<p id="p1">Foo bar</p>
		<h2>Section 1</h2>
			<p id="p2">Foo bar</p>
		<h3>Subsection</h3>
			<p id="p3">Foo bar</p>
		<h1>Next Title</h1>
			<p id="p4">Foo bar</p>
		<h2>Section 2</h2>
			<p id="p5">Foo bar</p>
	`)

	removeNamedHeaderSiblings(doc, map[string]struct{}{"Section 1": {}})

	got := paragraphIDs(doc)
	want := []string{"p1", "p4", "p5"}
	if len(got) != len(want) {
		t.Fatalf("paragraphs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("paragraphs = %v, want %v", got, want)
		}
	}
}

func TestProcessSimplifiesArticle(t *testing.T) {
	raw := `<!DOCTYPE html>
	<html><head><base href="//en.wikipedia.org/wiki/"/><title>x</title></head><body>
	<section>
		<p>Some text that includes <a href="./Another_Page">a relative link</a><sup class="reference">[1]</sup>.</p>
		<table class="infobox"><tr><td>Facts</td></tr></table>
		<span typeof="mw:Transclusion" data-mw='{"parts":[{"audio": "x.ogg"}]}'>listen</span>
	</section>
	<section>
		<h2>External links</h2>
		<ul><li><a href="https://example.com">Example</a></li></ul>
	</section>
	</body></html>`

	out, err := ProcessString(raw, "en")
	if err != nil {
		t.Fatalf("ProcessString failed: %v", err)
	}

	for _, want := range []string{"Some text that includes a relative link."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	for _, unwanted := range []string{"<a", "<table", "<section", "<html", "<body", "External links", "Example", "listen", "[1]", "DOCTYPE"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("output still contains %q:\n%s", unwanted, out)
		}
	}
}

func TestExpandKeepsChildren(t *testing.T) {
	doc := parse(t, `<p>Some text with
		<a href="Some_Page"><span id="inner-content">several</span></a>
		<a id="second-link" href="./Another_Page">relative links</a>
	</p>`)

	var inner *html.Node
	for _, a := range collectElements(doc, func(n *html.Node) bool { return n.Data == "a" }) {
		expand(a)
	}
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		if id, _ := attr(n, "id"); id == "inner-content" {
			inner = n
		}
		if n.Data == "a" {
			t.Error("anchor still present after expansion")
		}
	})

	if inner == nil {
		t.Fatal("inner span was dropped with its anchor")
	}

	// Expanding an already-detached node is a no-op.
	detached := &html.Node{Type: html.ElementNode, Data: "a"}
	expand(detached)
}

func TestEmptySectionRemoved(t *testing.T) {
	doc := parse(t, `<body>
		<section><h2>Kept</h2><p>Prose.</p></section>
		<section><h2>Hollow</h2><p>   </p></section>
	</body>`)

	removeEmptySections(doc)

	var headers []string
	walk(doc, func(n *html.Node) {
		if isHeader(n) {
			if text, ok := firstText(n); ok {
				headers = append(headers, text)
			}
		}
	})
	if len(headers) != 1 || headers[0] != "Kept" {
		t.Errorf("headers = %v, want [Kept]", headers)
	}
}

func TestRemoveAttrs(t *testing.T) {
	doc := parse(t, `<p id="p" about="#x" data-mw-foo="y" data-mw="z" title="kept">
		<span class="c" style="s" lang="en">text</span>
	</p>`)

	removeAttrs(doc)

	var p, span *html.Node
	walk(doc, func(n *html.Node) {
		switch {
		case n.Type != html.ElementNode:
		case n.Data == "p":
			p = n
		case n.Data == "span":
			span = n
		}
	})

	if _, ok := attr(p, "title"); !ok {
		t.Error("title attribute should survive")
	}
	for _, key := range []string{"id", "about", "data-mw", "data-mw-foo"} {
		if _, ok := attr(p, key); ok {
			t.Errorf("%s attribute should be stripped", key)
		}
	}
	if len(span.Attr) != 1 || span.Attr[0].Key != "lang" {
		t.Errorf("span attrs = %v, want only lang", span.Attr)
	}
}

func TestDetectLang(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
		ok   bool
	}{
		{
			name: "ProtocolRelative",
			html: `<html><head><base href="//de.wikipedia.org/wiki/"/></head></html>`,
			want: "de",
			ok:   true,
		},
		{
			name: "Absolute",
			html: `<html><head><base href="https://en.wikipedia.org/wiki/"/></head></html>`,
			want: "en",
			ok:   true,
		},
		{
			name: "NoBase",
			html: `<html><head></head><body></body></html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectLang(parse(t, tt.html))
			if ok != tt.ok || got != tt.want {
				t.Errorf("DetectLang = %q, %v; want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestHasText(t *testing.T) {
	if !HasText(parse(t, `<p>words</p>`)) {
		t.Error("document with text reported empty")
	}
	if HasText(parse(t, `<p>   </p><span></span>`)) {
		t.Error("whitespace-only document reported non-empty")
	}
}
