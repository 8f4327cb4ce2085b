package dump

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"wikiparser/pkg/simplify"
	"wikiparser/pkg/wm"
)

// PassFilter selects which raw input records are copied to the
// passthrough writer for debugging.
type PassFilter int

const (
	PassNone PassFilter = iota
	// PassMatch copies every record that matched on title or QID.
	PassMatch
	// PassError copies records whose simplification failed.
	PassError
	// PassPanic copies records whose simplification panicked.
	PassPanic
)

// ParsePassFilter parses the --passthrough flag value.
func ParsePassFilter(s string) (PassFilter, error) {
	switch s {
	case "":
		return PassNone, nil
	case "match":
		return PassMatch, nil
	case "error":
		return PassError, nil
	case "panic":
		return PassPanic, nil
	default:
		return PassNone, fmt.Errorf("unknown passthrough filter %q (want match, error, or panic)", s)
	}
}

// Processor consumes one dump stream sequentially: each record is fully
// matched, simplified, and written before the next is read.
type Processor struct {
	Qids   map[wm.Qid]struct{}
	Titles map[wm.Title]struct{}

	// OutputDir is the root of the article tree; "" disables writing.
	OutputDir string
	// NoSimplify writes the original HTML instead of simplifying it.
	NoSimplify bool
	// Passthrough copies selected raw records to the pass writer.
	Passthrough PassFilter
	// NewQids, when non-nil, receives one canonical QID line for every
	// page matched by title but not QID. For appends shared between
	// concurrent processes, it must be a file opened with O_APPEND (see
	// OpenDiscoveryLog); each QID is written with a single Write call
	// well under the 4 KiB pipe-buffer atomicity limit.
	NewQids io.Writer

	// Summary counters.
	Matched int
	Errors  int
}

// OpenDiscoveryLog opens the shared cross-run QID log for atomic appends.
func OpenDiscoveryLog(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

// processString is swappable in tests to exercise the failure branches.
var processString = simplify.ProcessString

// Run reads newline-delimited JSON records from in until EOF. Per-page
// failures are logged and counted; an undecodable record aborts the run,
// since it indicates a corrupt or incompatible dump.
func (p *Processor) Run(in io.Reader, pass io.Writer) error {
	reader := bufio.NewReaderSize(in, 1<<20)

	line := 0
	for {
		line++
		raw, readErr := reader.ReadBytes('\n')
		if readErr != nil && readErr != io.EOF {
			return fmt.Errorf("reading dump: %w", readErr)
		}
		if len(raw) > 0 {
			var page wm.Page
			if err := json.Unmarshal(raw, &page); err != nil {
				return fmt.Errorf("deserializing dump record on line %d: %w", line, err)
			}
			if err := p.processPage(&page, raw, line, pass); err != nil {
				return err
			}
		}
		if readErr == io.EOF {
			return nil
		}
	}
}

// processPage handles one record. Its error return is fatal to the run;
// content-level problems are logged and absorbed here.
func (p *Processor) processPage(page *wm.Page, raw []byte, line int, pass io.Writer) error {
	logger := slog.With(
		"lang", page.InLanguage.Identifier,
		"title", page.Name,
		"line", line,
	)

	qid, qidErr := page.Wikidata()
	if qidErr != nil && !errors.Is(qidErr, wm.ErrNoMainEntity) {
		logger.Warn("Could not parse QID", "error", qidErr)
	}
	hasQid := qidErr == nil

	qidMatch := false
	if hasQid {
		_, qidMatch = p.Qids[qid]
	}

	var matchingTitles []wm.Title
	if len(p.Titles) > 0 {
		for _, attempt := range page.AllTitles() {
			if attempt.Err != nil {
				logger.Warn("Could not parse title", "error", attempt.Err)
				continue
			}
			if _, ok := p.Titles[attempt.Title]; ok {
				matchingTitles = append(matchingTitles, attempt.Title)
			}
		}
	}

	if !qidMatch && len(matchingTitles) == 0 {
		return nil
	}
	p.Matched++

	// A title-only match confirms a QID the filter inputs did not know;
	// append it for reuse by other languages' runs.
	if p.NewQids != nil && hasQid && !qidMatch {
		logger.Debug("Writing new qid", "qid", qid)
		if _, err := p.NewQids.Write([]byte(qid.String() + "\n")); err != nil {
			return fmt.Errorf("writing new QID %s: %w", qid, err)
		}
	}

	if p.Passthrough == PassMatch {
		if _, err := pass.Write(raw); err != nil {
			return fmt.Errorf("writing passthrough record: %w", err)
		}
	}

	body := page.ArticleBody.HTML
	var procErr error
	if !p.NoSimplify {
		body, procErr = processString(body, page.InLanguage.Identifier)
	}

	if procErr != nil {
		var redirect *simplify.RedirectError
		var panicked *simplify.PanicError
		switch {
		case errors.As(procErr, &redirect):
			// A stub, not a failure.
			logger.Info("Skipping redirect stub", "target", redirect.Target)
		case errors.As(procErr, &panicked):
			p.Errors++
			logger.Error("Simplification panicked", "error", procErr)
			if p.OutputDir != "" {
				if err := WriteErrorDump(p.OutputDir, page); err != nil {
					logger.Error("Error saving panicked article", "error", err)
				}
			}
		default:
			p.Errors++
			logger.Error("Error processing article", "error", procErr)
		}

		if p.Passthrough == PassError || (p.Passthrough == PassPanic && errors.As(procErr, &panicked)) {
			if _, err := pass.Write(raw); err != nil {
				return fmt.Errorf("writing passthrough record: %w", err)
			}
		}
		return nil
	}

	if p.OutputDir != "" {
		if err := WriteArticle(p.OutputDir, page, matchingTitles, body); err != nil {
			p.Errors++
			logger.Error("Error writing article", "error", err)
		}
	}
	return nil
}
