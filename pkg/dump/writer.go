// Package dump runs the batch over a Wikimedia Enterprise HTML dump:
// streaming records, matching them against the filter sets, simplifying
// matched articles, and materializing the output tree.
package dump

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"wikiparser/pkg/wm"
)

// ErrNoUsableTitle reports a page with neither a QID nor any parseable
// title, which leaves no place to write it.
var ErrNoUsableTitle = errors.New("no usable title for page")

// WriteArticle writes the article contents to the page's canonical
// directory and reconciles a symlink for every alias title.
//
// Layout:
//   - contents go to `wikidata/Q<id>/<lang>.html`;
//   - pages without a QID go to `<lang>.wikipedia.org/wiki/<title>/<lang>.html`,
//     keyed by the first alias title or the page's own title;
//   - every other alias becomes a symlink `<lang>.wikipedia.org/wiki/<alias>`
//     pointing at the canonical directory.
func WriteArticle(baseDir string, page *wm.Page, aliases []wm.Title, body string) error {
	dir, err := createArticleDir(baseDir, page, aliases)
	if err != nil {
		return err
	}

	filename := filepath.Join(dir, page.InLanguage.Identifier+".html")
	slog.Debug("Writing article", "file", filename)

	if err := os.WriteFile(filename, []byte(body), 0o644); err != nil {
		return fmt.Errorf("writing html file: %w", err)
	}
	return nil
}

// createArticleDir determines the canonical directory for the page,
// creates it, and creates any necessary symlinks to it.
func createArticleDir(base string, page *wm.Page, aliases []wm.Title) (string, error) {
	links := aliases
	var mainDir string

	if qid, err := page.Wikidata(); err == nil {
		mainDir = qid.Dir(base)
	} else {
		// Prefer the first alias title, fall back to the page's own title.
		slog.Info("Page without wikidata qid", "page", page.Name)
		if len(aliases) > 0 {
			mainDir = aliases[0].Dir(base)
			links = aliases[1:]
		} else {
			title, err := page.Title()
			if err != nil {
				slog.Warn("Unable to parse title", "page", page.Name, "error", err)
				return "", fmt.Errorf("%w: %q", ErrNoUsableTitle, page.Name)
			}
			mainDir = title.Dir(base)
		}
	}

	// A symlink at the canonical location is stale state from an earlier
	// layout; replace it with a real directory.
	if fi, err := os.Lstat(mainDir); err == nil && fi.Mode()&os.ModeSymlink != 0 {
		if err := os.Remove(mainDir); err != nil {
			return "", fmt.Errorf("removing old link for main directory %q: %w", mainDir, err)
		}
	}
	if err := os.MkdirAll(mainDir, 0o755); err != nil {
		return "", fmt.Errorf("creating main directory %q: %w", mainDir, err)
	}

	for _, title := range links {
		linkPath := title.Dir(base)
		if linkPath == mainDir {
			continue
		}
		if err := reconcileLink(linkPath, mainDir); err != nil {
			return "", err
		}
	}

	return mainDir, nil
}

// reconcileLink ensures a symlink at linkPath pointing to mainDir.
//
// Possible states from a previous run:
//   - nothing exists at linkPath
//   - a real directory exists (from an old non-symlink layout)
//   - a symlink exists and points at the correct location
//   - a symlink exists and points elsewhere
//
// Re-running must converge in every case, including concurrently from
// another process sharing the output tree.
func reconcileLink(linkPath, mainDir string) error {
	fi, err := os.Lstat(linkPath)
	switch {
	case err == nil && fi.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(linkPath)
		if err != nil {
			return fmt.Errorf("reading symlink %q: %w", linkPath, err)
		}
		if target == mainDir {
			return nil
		}
		if err := os.Remove(linkPath); err != nil {
			return fmt.Errorf("removing stale symlink %q: %w", linkPath, err)
		}
	case err == nil:
		if err := os.RemoveAll(linkPath); err != nil {
			return fmt.Errorf("removing old directory %q: %w", linkPath, err)
		}
	default:
		// Titles can contain `/`, so ensure necessary subdirs exist.
		if err := os.MkdirAll(filepath.Dir(linkPath), 0o755); err != nil {
			return fmt.Errorf("creating wikipedia directory for %q: %w", linkPath, err)
		}
	}

	if err := os.Symlink(mainDir, linkPath); err != nil {
		return fmt.Errorf("creating symlink from %q to %q: %w", linkPath, mainDir, err)
	}
	return nil
}

// WriteErrorDump saves the original unsimplified HTML of a page whose
// simplification panicked, for offline inspection.
func WriteErrorDump(baseDir string, page *wm.Page) error {
	dir := filepath.Join(baseDir, "errors")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating errors directory: %w", err)
	}
	name := strings.ReplaceAll(page.Name, "/", "%2F") + ".html"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(page.ArticleBody.HTML), 0o644); err != nil {
		return fmt.Errorf("writing error dump: %w", err)
	}
	return nil
}
