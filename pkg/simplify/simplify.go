// Package simplify reduces Wikipedia Enterprise HTML to text-focused
// markup, similar to what the TextExtracts API produces:
//
//   - images, media, tables, and wrapper elements like divs and sections
//     are removed;
//   - doctype, comments, html, body, head and friends are removed;
//   - only top-level headers, paragraphs, and basic text formatting
//     (b, i, etc.) remain.
//
// The Enterprise HTML follows https://www.mediawiki.org/wiki/Specs/HTML/
// and carries far more structure and attribute data than the TextExtracts
// input, so the reduction is a fixed sequence of structural rewrites.
package simplify

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ProcessString parses, simplifies, and re-serializes one article.
func ProcessString(rawHTML, lang string) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}
	if err := Process(doc, lang); err != nil {
		return "", err
	}

	var b strings.Builder
	if err := html.Render(&b, doc); err != nil {
		return "", fmt.Errorf("rendering html: %w", err)
	}
	return b.String(), nil
}

// Process simplifies a parsed document in place, checking for redirect
// stubs and pages that end up empty. Panics raised by the tree rewrites
// are converted into a *PanicError instead of unwinding into the caller's
// batch loop.
func Process(doc *html.Node, lang string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Msg: fmt.Sprint(r)}
		}
	}()

	if target, ok := DetectRedirect(doc); ok {
		return &RedirectError{Target: target}
	}
	Simplify(doc, lang)
	if !HasText(doc) {
		return ErrNoText
	}
	return nil
}

// Simplify reduces an article to only basic text. The phases are order
// dependent: each runs over the whole tree as left by the previous one.
//
// Unlike Process it performs no recovery; pathological input may panic.
func Simplify(doc *html.Node, lang string) {
	if titles, ok := sectionsToRemove[lang]; ok {
		removeNamedHeaderSiblings(doc, titles)
	}

	removeDenylistElements(doc)

	removeEmptySections(doc)

	expandEmpty(doc)

	removeNonElementNodes(doc)

	removeAttrs(doc)

	finalExpansions(doc)

	removeToplevelWhitespace(doc)
}

// removeNamedHeaderSiblings removes headers whose first text exactly
// matches one of titles, along with all following siblings up to the next
// header of equal or higher level.
//
// Titles must be normalized to Unicode NFC to match Wikipedia's internal
// normalization: https://mediawiki.org/wiki/Unicode_normalization_considerations
func removeNamedHeaderSiblings(doc *html.Node, titles map[string]struct{}) {
	var toRemove []*html.Node

	for _, header := range collectElements(doc, isHeader) {
		title, ok := firstText(header)
		if !ok {
			continue
		}
		if _, ok := titles[title]; !ok {
			continue
		}

		toRemove = append(toRemove, header)
		level := headerLevel(header)
		for sibling := header.NextSibling; sibling != nil; sibling = sibling.NextSibling {
			if isHeader(sibling) && headerLevel(sibling) <= level {
				break
			}
			toRemove = append(toRemove, sibling)
		}
	}

	for _, n := range toRemove {
		detach(n)
	}
}

// removeDenylistElements drops every element matched by the structural
// deny-list unless the allow-list also matches it.
func removeDenylistElements(doc *html.Node) {
	for _, n := range collectElements(doc, func(n *html.Node) bool {
		return denied(n) && !allowed(n)
	}) {
		detach(n)
	}
}

// denied is the deny-list from the Extracts API config `extension.json`
// (https://phabricator.wikimedia.org/diffusion/ETEX/browse/master/extension.json)
// plus media elements and a few Enterprise-specific transclusions.
func denied(n *html.Node) bool {
	switch n.Data {
	case "table", "div", "figure", "script", "input", "style",
		// Media elements.
		"img", "audio", "video", "embed",
		// Remove head altogether.
		"head":
		return true
	}

	if n.Data == "ul" && hasClass(n, "gallery") {
		return true
	}
	if n.Data == "sup" && hasClass(n, "reference") {
		return true
	}
	if n.Data == "ol" && hasClass(n, "references") {
		return true
	}
	for _, class := range []string{"mw-editsection", "error", "nomobile", "noprint", "noexcerpt", "sortkey"} {
		if hasClass(n, class) {
			return true
		}
	}

	if n.Data == "span" {
		// Pronunciation "listen" link/button.
		if typeOf, _ := attr(n, "typeof"); typeOf == "mw:Transclusion" {
			if dataMw, _ := attr(n, "data-mw"); strings.Contains(dataMw, `"audio":`) {
				return true
			}
		}
		// Coordinates transclusion.
		if id, _ := attr(n, "id"); id == "coordinates" {
			return true
		}
	}

	return false
}

// allowed marks elements kept regardless of the deny-list: excerpt blocks
// transcluded from other articles.
func allowed(n *html.Node) bool {
	return n.Data == "div" && (hasClass(n, "excerpt-block") || hasClass(n, "excerpt"))
}

// removeEmptySections deletes a whole section wrapper when its header is
// the only meaningful child.
func removeEmptySections(doc *html.Node) {
	var toRemove []*html.Node

	for _, header := range collectElements(doc, isHeader) {
		parent := header.Parent
		if parent == nil || parent.Type != html.ElementNode || parent.Data != "section" {
			continue
		}

		empty := true
		for sibling := parent.FirstChild; sibling != nil; sibling = sibling.NextSibling {
			if sibling == header || sibling.Type != html.ElementNode {
				continue
			}
			if !isEmptyOrWhitespace(sibling) && !isHeader(sibling) {
				empty = false
				break
			}
		}
		if empty {
			toRemove = append(toRemove, parent)
		}
	}

	for _, n := range toRemove {
		detach(n)
	}
}

// expandEmpty removes elements that contain no visible text, leaving their
// children in place.
func expandEmpty(doc *html.Node) {
	for _, n := range collectElements(doc, isEmptyOrWhitespace) {
		expand(n)
	}
}

// removeNonElementNodes strips comments and doctype nodes anywhere in the
// tree.
func removeNonElementNodes(doc *html.Node) {
	var toRemove []*html.Node
	walk(doc, func(n *html.Node) {
		if n.Type == html.CommentNode || n.Type == html.DoctypeNode {
			toRemove = append(toRemove, n)
		}
	})
	for _, n := range toRemove {
		detach(n)
	}
}

// removeAttrs strips style/class from spans and the MediaWiki metadata
// attributes from every element.
func removeAttrs(doc *html.Node) {
	for _, n := range collectElements(doc, func(*html.Node) bool { return true }) {
		kept := n.Attr[:0]
		for _, a := range n.Attr {
			if n.Data == "span" && (a.Key == "style" || a.Key == "class") {
				continue
			}
			// TODO: To keep ids for linking to headers, only remove ones that start with "mw".
			switch a.Key {
			case "id", "prefix", "typeof", "about", "rel":
				continue
			}
			if strings.HasPrefix(a.Key, "data-mw") {
				continue
			}
			kept = append(kept, a)
		}
		n.Attr = kept
	}
}

// finalExpansions unwraps links, structural wrappers, and spans left bare
// by attribute stripping.
func finalExpansions(doc *html.Node) {
	for _, n := range collectElements(doc, func(n *html.Node) bool {
		if n.Data == "span" && len(n.Attr) == 0 {
			return true
		}
		switch n.Data {
		case "a", "section", "div", "body", "html":
			return true
		}
		return false
	}) {
		expand(n)
	}
}

// removeToplevelWhitespace deletes whitespace-only text nodes directly
// under the document root.
func removeToplevelWhitespace(doc *html.Node) {
	var toRemove []*html.Node
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.TextNode {
			continue
		}
		if strings.TrimSpace(c.Data) == "" {
			toRemove = append(toRemove, c)
		}
	}
	for _, n := range toRemove {
		detach(n)
	}
}
