package wm

import (
	"errors"
	"fmt"
)

// Page is one deserialized record of a Wikimedia Enterprise HTML dump.
//
// For all available fields, see https://enterprise.wikimedia.com/docs/data-dictionary/.
type Page struct {
	Name         string      `json:"name"`
	DateModified string      `json:"date_modified"`
	InLanguage   Language    `json:"in_language"`
	URL          string      `json:"url"`
	MainEntity   *Entity     `json:"main_entity"`
	ArticleBody  ArticleBody `json:"article_body"`
	Redirects    []Redirect  `json:"redirects"`
}

// Language identifies the wiki the page belongs to, e.g. "en".
type Language struct {
	Identifier string `json:"identifier"`
}

// Entity is a linked Wikidata item.
type Entity struct {
	Identifier string `json:"identifier"`
}

// ArticleBody holds the raw page HTML.
type ArticleBody struct {
	HTML string `json:"html"`
}

// Redirect is an alternate title that forwards to this page.
type Redirect struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// ErrNoMainEntity is returned by Page.Wikidata for pages without a linked
// Wikidata item.
var ErrNoMainEntity = errors.New("page has no main entity")

// Title returns the page's own normalized title.
func (p *Page) Title() (Title, error) {
	return NewTitle(p.Name, p.InLanguage.Identifier)
}

// Wikidata returns the page's QID. It fails with ErrNoMainEntity when the
// record carries no Wikidata item, or a *ParseQidError when the identifier
// is malformed.
func (p *Page) Wikidata() (Qid, error) {
	if p.MainEntity == nil {
		return 0, ErrNoMainEntity
	}
	return ParseQid(p.MainEntity.Identifier)
}

// TitleAttempt is one entry of AllTitles: either a parsed Title or the
// error explaining why that name could not be parsed.
type TitleAttempt struct {
	Title Title
	Err   error
}

// AllTitles returns parse attempts for every name the page is known by:
// the page's own title first, then each redirect in dump order. Callers
// decide whether to log or drop the failed entries.
func (p *Page) AllTitles() []TitleAttempt {
	attempts := make([]TitleAttempt, 0, 1+len(p.Redirects))

	title, err := p.Title()
	if err != nil {
		err = fmt.Errorf("parsing page title %q: %w", p.Name, err)
	}
	attempts = append(attempts, TitleAttempt{Title: title, Err: err})

	for _, redirect := range p.Redirects {
		title, err := NewTitle(redirect.Name, p.InLanguage.Identifier)
		if err != nil {
			err = fmt.Errorf("parsing redirect title %q: %w", redirect.Name, err)
		}
		attempts = append(attempts, TitleAttempt{Title: title, Err: err})
	}

	return attempts
}
