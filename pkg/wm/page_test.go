package wm

import (
	"encoding/json"
	"errors"
	"testing"
)

const pageJSON = `{
	"name": "Spatial database",
	"date_modified": "2023-04-01T00:00:00Z",
	"in_language": {"identifier": "en"},
	"url": "https://en.wikipedia.org/wiki/Spatial_database",
	"main_entity": {"identifier": "Q1234"},
	"article_body": {"html": "<p>text</p>"},
	"redirects": [
		{"url": "https://en.wikipedia.org/wiki/Spatial_db", "name": "Spatial db"},
		{"url": "", "name": "  "}
	]
}`

func TestPageDecode(t *testing.T) {
	var page Page
	if err := json.Unmarshal([]byte(pageJSON), &page); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	title, err := page.Title()
	if err != nil {
		t.Fatalf("Title failed: %v", err)
	}
	if want := (Title{Lang: "en", Name: "Spatial_database"}); title != want {
		t.Errorf("Title = %v, want %v", title, want)
	}

	qid, err := page.Wikidata()
	if err != nil {
		t.Fatalf("Wikidata failed: %v", err)
	}
	if qid != 1234 {
		t.Errorf("Wikidata = %v, want Q1234", qid)
	}
	if page.ArticleBody.HTML != "<p>text</p>" {
		t.Errorf("HTML = %q", page.ArticleBody.HTML)
	}
}

func TestPageWikidataMissing(t *testing.T) {
	page := Page{Name: "X", InLanguage: Language{Identifier: "en"}}
	if _, err := page.Wikidata(); !errors.Is(err, ErrNoMainEntity) {
		t.Errorf("got %v, want ErrNoMainEntity", err)
	}

	page.MainEntity = &Entity{Identifier: "not a qid"}
	var parseErr *ParseQidError
	if _, err := page.Wikidata(); !errors.As(err, &parseErr) {
		t.Errorf("got %v, want *ParseQidError", err)
	}
}

func TestAllTitles(t *testing.T) {
	var page Page
	if err := json.Unmarshal([]byte(pageJSON), &page); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	attempts := page.AllTitles()
	if len(attempts) != 3 {
		t.Fatalf("got %d attempts, want 3", len(attempts))
	}

	// Own title first, then redirects in dump order.
	if attempts[0].Err != nil {
		t.Errorf("own title failed: %v", attempts[0].Err)
	}
	if want := (Title{Lang: "en", Name: "Spatial_database"}); attempts[0].Title != want {
		t.Errorf("attempts[0] = %v, want %v", attempts[0].Title, want)
	}
	if attempts[1].Err != nil {
		t.Errorf("redirect title failed: %v", attempts[1].Err)
	}
	if want := (Title{Lang: "en", Name: "Spatial_db"}); attempts[1].Title != want {
		t.Errorf("attempts[1] = %v, want %v", attempts[1].Title, want)
	}

	// The whitespace-only redirect is reported, not dropped.
	if !errors.Is(attempts[2].Err, ErrNoTitle) {
		t.Errorf("attempts[2].Err = %v, want ErrNoTitle", attempts[2].Err)
	}
}
