// Package wm holds the Wikimedia types shared by the filter, matcher, and
// writer layers: normalized article titles, Wikidata QIDs, and the
// Enterprise dump record.
package wm

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Title is a normalized Wikipedia article title that compares equal across
// the three encodings found in the wild:
//   - bare titles: "Spatial Database"
//   - urls: "https://en.wikipedia.org/wiki/Spatial_database#Geodatabase"
//   - OSM-style tags: "en:Spatial Database"
//
// Titles are comparable and usable as map keys.
type Title struct {
	Lang string
	Name string
}

// Title parse errors.
var (
	ErrNoTitle      = errors.New("title cannot be empty or whitespace")
	ErrNoLang       = errors.New("lang cannot be empty or whitespace")
	ErrMissingColon = errors.New("no ':' separating lang and title")
	ErrNoHost       = errors.New("no host in url")
	ErrNoSubdomain  = errors.New("no subdomain in url")
	ErrBadDomain    = errors.New("url base domain is not wikipedia.org")
	ErrBadPath      = errors.New("url base path is not /wiki/")
	ErrShortPath    = errors.New("url path has less than 2 segments")
)

func normalizeTitle(title string) string {
	// TODO: Compare with map generator url creation, ensure covers all cases.
	return strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
}

// NewTitle builds a Title from a bare title and language code.
// Both must be non-empty after trimming.
func NewTitle(title, lang string) (Title, error) {
	title = strings.TrimSpace(title)
	lang = strings.TrimSpace(lang)
	if title == "" {
		return Title{}, ErrNoTitle
	}
	if lang == "" {
		return Title{}, ErrNoLang
	}
	return Title{Lang: lang, Name: normalizeTitle(title)}, nil
}

// ParseTitleFromURL extracts a Title from a wikipedia.org article url, e.g.
// "https://en.wikipedia.org/wiki/Article_Title/More_Title".
// The mobile subdomain is normalized away and any fragment is ignored.
func ParseTitleFromURL(rawURL string) (Title, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return Title{}, fmt.Errorf("cannot parse url: %w", err)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return Title{}, ErrNoHost
	}
	subdomain, host, found := strings.Cut(hostname, ".")
	if !found {
		return Title{}, ErrNoSubdomain
	}
	host = strings.TrimPrefix(host, "m.")
	if host != "wikipedia.org" {
		return Title{}, ErrBadDomain
	}
	lang := subdomain

	// Work on the escaped path so that encoded slashes stay part of the title.
	path := strings.TrimPrefix(u.EscapedPath(), "/")
	root, title, found := strings.Cut(path, "/")
	if !found {
		return Title{}, ErrShortPath
	}
	if root != "wiki" {
		return Title{}, ErrBadPath
	}
	title, err = url.PathUnescape(title)
	if err != nil {
		return Title{}, fmt.Errorf("cannot decode url: %w", err)
	}

	return NewTitle(title, lang)
}

// ParseTitleFromOSMTag extracts a Title from an OSM "wikipedia" tag value.
// The expected form is "lang:Article Title", but bare urls and the
// "lang:url" compound form also occur and are handled.
func ParseTitleFromOSMTag(tag string) (Title, error) {
	tag = strings.TrimSpace(tag)
	lang, title, found := strings.Cut(tag, ":")
	if !found {
		return Title{}, ErrMissingColon
	}

	lang = strings.TrimLeft(lang, " \t\n\r")
	title = strings.TrimLeft(title, " \t\n\r")

	if lang == "http" || lang == "https" {
		return ParseTitleFromURL(tag)
	}

	if strings.HasPrefix(title, "http://") || strings.HasPrefix(title, "https://") {
		return ParseTitleFromURL(title)
	}

	return NewTitle(title, lang)
}

func (t Title) String() string {
	return t.Lang + ":" + t.Name
}

// Dir returns the on-disk directory for this title beneath base:
// "<base>/<lang>.wikipedia.org/wiki/<name>". Names may contain slashes,
// which become subdirectories.
func (t Title) Dir(base string) string {
	return filepath.Join(base, t.Lang+".wikipedia.org", "wiki", t.Name)
}
