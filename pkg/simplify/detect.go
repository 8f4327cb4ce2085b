package simplify

import (
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// DetectRedirect finds the target title of the article if it is a
// redirect stub, marked by a `link rel="mw:PageProp/redirect"` element.
func DetectRedirect(doc *html.Node) (string, bool) {
	var target string
	found := false
	walk(doc, func(n *html.Node) {
		if found || n.Type != html.ElementNode || n.Data != "link" {
			return
		}
		if rel, _ := attr(n, "rel"); rel != "mw:PageProp/redirect" {
			return
		}
		href, _ := attr(n, "href")
		target = strings.TrimPrefix(strings.TrimSpace(href), "./")
		found = true
	})
	return target, found
}

// DetectLang recovers the wikipedia language of a dump from the document's
// `base href` element, for callers that did not otherwise know it.
func DetectLang(doc *html.Node) (string, bool) {
	var base *html.Node
	walk(doc, func(n *html.Node) {
		if base != nil || n.Type != html.ElementNode || n.Data != "base" {
			return
		}
		if _, ok := attr(n, "href"); ok {
			base = n
		}
	})
	if base == nil {
		return "", false
	}

	href, _ := attr(base, "href")
	if strings.HasPrefix(href, "//") {
		href = "http:" + href
	}

	u, err := url.Parse(href)
	if err != nil {
		slog.Debug("Error parsing base lang url", "href", href, "error", err)
		return "", false
	}
	lang, domain, found := strings.Cut(u.Hostname(), ".")
	if !found || lang == "" {
		return "", false
	}
	if domain != "wikipedia.org" {
		slog.Debug("Domain of base lang url is not wikipedia.org", "domain", domain)
	}
	return lang, true
}

// HasText reports whether the document contains any non-whitespace text.
func HasText(doc *html.Node) bool {
	return !isEmptyOrWhitespace(doc)
}
