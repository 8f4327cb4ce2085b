package wm

import (
	"errors"
	"testing"
)

func TestTitleEquivalence(t *testing.T) {
	want, err := NewTitle("Article Title", "en")
	if err != nil {
		t.Fatalf("NewTitle failed: %v", err)
	}

	tests := []struct {
		name  string
		parse func() (Title, error)
	}{
		{
			name:  "URL",
			parse: func() (Title, error) { return ParseTitleFromURL("https://en.wikipedia.org/wiki/Article_Title#Section") },
		},
		{
			name:  "MobileURL",
			parse: func() (Title, error) { return ParseTitleFromURL("https://en.m.wikipedia.org/wiki/Article_Title#Section") },
		},
		{
			name:  "PercentEncodedURL",
			parse: func() (Title, error) { return ParseTitleFromURL("https://en.wikipedia.org/wiki/Article%20Title") },
		},
		{
			name:  "OSMTag",
			parse: func() (Title, error) { return ParseTitleFromOSMTag("en:Article Title") },
		},
		{
			name:  "OSMTagBareURL",
			parse: func() (Title, error) { return ParseTitleFromOSMTag("https://en.m.wikipedia.org/wiki/Article_Title#Section") },
		},
		{
			name:  "OSMTagWrappedURL",
			parse: func() (Title, error) { return ParseTitleFromOSMTag("de:https://en.m.wikipedia.org/wiki/Article_Title#Section") },
		},
		{
			name:  "SurroundingWhitespace",
			parse: func() (Title, error) { return NewTitle("  Article Title ", " en ") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.parse()
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if got != want {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestParseTitleFromURLErrors(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want error
	}{
		{
			name: "NotAWikiPage",
			url:  "https://en.wikipedia.org/not_a_wiki_page",
			want: ErrShortPath,
		},
		{
			name: "WrongDomain",
			url:  "https://wikidata.org/wiki/Q12345",
			want: ErrBadDomain,
		},
		{
			name: "WrongRootSegment",
			url:  "https://en.wikipedia.org/w/index.php",
			want: ErrBadPath,
		},
		{
			name: "EmptyTitle",
			url:  "https://en.wikipedia.org/wiki/",
			want: ErrNoTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTitleFromURL(tt.url)
			if !errors.Is(err, tt.want) {
				t.Errorf("got error %v, want %v", err, tt.want)
			}
		})
	}
}

// Slashes are part of the title, not a path boundary.
func TestTitleSlashes(t *testing.T) {
	long, err := ParseTitleFromURL("https://de.wikipedia.org/wiki/Breil/Brigels")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	short, err := ParseTitleFromURL("https://de.wikipedia.org/wiki/Breil")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if long == short {
		t.Errorf("titles should differ: %v == %v", long, short)
	}
	if long.Name != "Breil/Brigels" {
		t.Errorf("Name = %q, want %q", long.Name, "Breil/Brigels")
	}
}

func TestNewTitleErrors(t *testing.T) {
	if _, err := NewTitle("", "en"); !errors.Is(err, ErrNoTitle) {
		t.Errorf("empty title: got %v, want ErrNoTitle", err)
	}
	if _, err := NewTitle("  \t ", "en"); !errors.Is(err, ErrNoTitle) {
		t.Errorf("whitespace title: got %v, want ErrNoTitle", err)
	}
	if _, err := NewTitle("Article", ""); !errors.Is(err, ErrNoLang) {
		t.Errorf("empty lang: got %v, want ErrNoLang", err)
	}
	if _, err := ParseTitleFromOSMTag("no colon here"); !errors.Is(err, ErrMissingColon) {
		t.Errorf("missing colon: got %v, want ErrMissingColon", err)
	}
}

func TestTitleDir(t *testing.T) {
	title, err := NewTitle("Article Title", "en")
	if err != nil {
		t.Fatalf("NewTitle failed: %v", err)
	}
	if got, want := title.Dir("/base"), "/base/en.wikipedia.org/wiki/Article_Title"; got != want {
		t.Errorf("Dir = %q, want %q", got, want)
	}
}
