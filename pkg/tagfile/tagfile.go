// Package tagfile ingests the filter inputs: TSV files of OSM
// wikidata/wikipedia tags and plain line lists of QIDs or article urls.
package tagfile

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"wikiparser/pkg/osm"
	"wikiparser/pkg/wm"
)

// ErrorKind classifies what part of a TSV row failed to parse.
type ErrorKind int

const (
	BadRow ErrorKind = iota
	BadQid
	BadTitle
)

func (k ErrorKind) String() string {
	switch k {
	case BadRow:
		return "TSV line"
	case BadQid:
		return "QID"
	case BadTitle:
		return "title"
	default:
		return "unknown"
	}
}

// ParseLineError is one failure record for a malformed row or cell of a
// tag file. OSM object context is attached when the source columns
// provide it.
type ParseLineError struct {
	Kind ErrorKind
	Text string
	Line int
	Err  error

	OSMID      *osm.ID
	OSMKind    *osm.Kind
	OSMVersion *osm.Version
}

func (e *ParseLineError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "on line %d", e.Line)
	if e.OSMID != nil {
		if e.OSMKind != nil {
			if url := osm.URL(*e.OSMKind, *e.OSMID); url != "" {
				fmt.Fprintf(&b, " (%s)", url)
			} else {
				fmt.Fprintf(&b, " (%s %d)", e.OSMKind.Oname(), *e.OSMID)
			}
		} else {
			fmt.Fprintf(&b, " (%d)", *e.OSMID)
		}
	}
	fmt.Fprintf(&b, ": %s %q", e.Kind, e.Text)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ParseLineError) Unwrap() error { return e.Err }

// CollectErrors returns a sink that appends each error to dst, for callers
// that want a full diagnostic report.
func CollectErrors(dst *[]ParseLineError) func(ParseLineError) {
	return func(e ParseLineError) {
		*dst = append(*dst, e)
	}
}

// CountErrors returns a sink that only counts.
func CountErrors(dst *int) func(ParseLineError) {
	return func(ParseLineError) {
		*dst++
	}
}

// ParseOSMTagFile reads a TSV file of OSM tags and inserts every parseable
// wikidata QID and wikipedia title into the given sets.
//
// The header row must contain "wikidata" and "wikipedia" columns; the
// optional "@id", "@otype", "@oname", and "@version" columns add OSM
// object context to error records. Malformed rows and cells are reported
// through sink and skipped; only I/O failures abort the read.
func ParseOSMTagFile(r io.Reader, qids map[wm.Qid]struct{}, titles map[wm.Title]struct{}, sink func(ParseLineError)) error {
	rdr := csv.NewReader(r)
	rdr.Comma = '\t'
	rdr.ReuseRecord = true

	header, err := rdr.Read()
	if err != nil {
		return fmt.Errorf("reading TSV header: %w", err)
	}

	qidCol, titleCol := -1, -1
	idCol, otypeCol, onameCol, versionCol := -1, -1, -1, -1
	for column, name := range header {
		switch name {
		case "wikidata":
			qidCol = column
		case "wikipedia":
			titleCol = column
		case "@id":
			idCol = column
		case "@otype":
			otypeCol = column
		case "@oname":
			onameCol = column
		case "@version":
			versionCol = column
		}
	}

	if qidCol < 0 {
		return errors.New("cannot find 'wikidata' column")
	}
	if titleCol < 0 {
		return errors.New("cannot find 'wikipedia' column")
	}

	for {
		row, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				// Not a content-level problem; the file itself is unreadable.
				return fmt.Errorf("reading TSV row: %w", err)
			}
			sink(ParseLineError{
				Kind: BadRow,
				Line: parseErr.Line,
				Err:  parseErr.Err,
			})
			continue
		}

		line, _ := rdr.FieldPos(0)

		metadata := func() (id *osm.ID, kind *osm.Kind, version *osm.Version) {
			if idCol >= 0 && idCol < len(row) {
				if v, err := strconv.ParseInt(strings.TrimSpace(row[idCol]), 10, 64); err == nil {
					id = &v
				}
			}
			// Prefer @otype, fall back to @oname.
			if otypeCol >= 0 && otypeCol < len(row) {
				if v, err := strconv.Atoi(strings.TrimSpace(row[otypeCol])); err == nil {
					if k, ok := osm.KindFromOtype(v); ok {
						kind = &k
					}
				}
			}
			if kind == nil && onameCol >= 0 && onameCol < len(row) {
				if k, ok := osm.KindFromOname(row[onameCol]); ok {
					kind = &k
				}
			}
			if versionCol >= 0 && versionCol < len(row) {
				if v, err := strconv.ParseInt(strings.TrimSpace(row[versionCol]), 10, 32); err == nil {
					v32 := int32(v)
					version = &v32
				}
			}
			return id, kind, version
		}

		if qid := strings.TrimSpace(row[qidCol]); qid != "" {
			parsed, err := wm.ParseQid(qid)
			if err == nil {
				qids[parsed] = struct{}{}
			} else {
				id, kind, version := metadata()
				sink(ParseLineError{
					Kind:       BadQid,
					Text:       qid,
					Line:       line,
					Err:        err,
					OSMID:      id,
					OSMKind:    kind,
					OSMVersion: version,
				})
			}
		}

		if tag := strings.TrimSpace(row[titleCol]); tag != "" {
			parsed, err := wm.ParseTitleFromOSMTag(tag)
			if err == nil {
				titles[parsed] = struct{}{}
			} else {
				id, kind, version := metadata()
				sink(ParseLineError{
					Kind:       BadTitle,
					Text:       tag,
					Line:       line,
					Err:        err,
					OSMID:      id,
					OSMKind:    kind,
					OSMVersion: version,
				})
			}
		}
	}

	return nil
}

// ParseQidFile reads a file with one QID per line into qids. Unparsable
// lines are logged and skipped.
func ParseQidFile(r io.Reader, qids map[wm.Qid]struct{}) error {
	return parseLines(r, func(line string) error {
		qid, err := wm.ParseQid(line)
		if err != nil {
			return err
		}
		qids[qid] = struct{}{}
		return nil
	})
}

// ParseTitleFile reads a file with one wikipedia url or "lang:title" tag
// per line into titles. Unparsable lines are logged and skipped.
func ParseTitleFile(r io.Reader, titles map[wm.Title]struct{}) error {
	return parseLines(r, func(line string) error {
		title, err := wm.ParseTitleFromOSMTag(line)
		if err != nil {
			return err
		}
		titles[title] = struct{}{}
		return nil
	})
}

func parseLines(r io.Reader, parse func(string) error) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if err := parse(text); err != nil {
			slog.Warn("Skipping unparsable filter line", "line", line, "text", text, "error", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading filter file: %w", err)
	}
	return nil
}
