package simplify

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// walk visits n and every descendant in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// collectElements snapshots all element descendants of n (including n
// itself) so the tree can be mutated while iterating the result.
func collectElements(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	walk(n, func(c *html.Node) {
		if c.Type == html.ElementNode && match(c) {
			out = append(out, c)
		}
	})
	return out
}

// detach unlinks n from its parent. Safe to call on already-detached nodes.
func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// expand removes n but splices its children into its former position.
func expand(n *html.Node) {
	if n.Parent == nil {
		// Already detached.
		return
	}
	for n.FirstChild != nil {
		c := n.FirstChild
		n.RemoveChild(c)
		n.Parent.InsertBefore(c, n)
	}
	n.Parent.RemoveChild(n)
}

// attr returns the value of the named attribute.
func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// hasClass reports whether the class attribute contains the given token.
func hasClass(n *html.Node, class string) bool {
	val, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, token := range strings.Fields(val) {
		if token == class {
			return true
		}
	}
	return false
}

// isHeader matches h1 through h7.
func isHeader(n *html.Node) bool {
	if n.Type != html.ElementNode || len(n.Data) != 2 || n.Data[0] != 'h' {
		return false
	}
	return n.Data[1] >= '1' && n.Data[1] <= '7'
}

// headerLevel returns the numeral of an h1..h7 element. Lower is higher
// in the outline.
func headerLevel(n *html.Node) byte {
	return n.Data[1]
}

// firstText returns the first text node in n's subtree, in document order.
func firstText(n *html.Node) (string, bool) {
	if n.Type == html.TextNode {
		return n.Data, true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if text, ok := firstText(c); ok {
			return text, true
		}
	}
	return "", false
}

// isEmptyOrWhitespace reports whether the subtree under n contains no
// visible text.
func isEmptyOrWhitespace(n *html.Node) bool {
	empty := true
	walk(n, func(c *html.Node) {
		if !empty || c.Type != html.TextNode {
			return
		}
		for _, r := range c.Data {
			if !unicode.IsSpace(r) {
				empty = false
				return
			}
		}
	})
	return empty
}
