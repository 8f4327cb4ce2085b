package wm

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Qid is a Wikidata QID/Q Number.
//
// See https://www.wikidata.org/wiki/Wikidata:Glossary#QID
type Qid uint32

// ParseQidError reports a string that could not be parsed as a QID.
type ParseQidError struct {
	Text string
	Err  error
}

func (e *ParseQidError) Error() string {
	return fmt.Sprintf("cannot parse QID from %q: %v", e.Text, e.Err)
}

func (e *ParseQidError) Unwrap() error { return e.Err }

// ParseQid parses a QID from its textual form. A leading "Q" or "q" and
// surrounding whitespace are tolerated; the rest must be a non-negative
// integer fitting 32 bits.
func ParseQid(s string) (Qid, error) {
	digits := strings.TrimSpace(s)
	if len(digits) > 0 && (digits[0] == 'Q' || digits[0] == 'q') {
		digits = digits[1:]
	}
	value, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, &ParseQidError{Text: s, Err: err}
	}
	return Qid(value), nil
}

// String returns the canonical form "Q<value>".
func (q Qid) String() string {
	return "Q" + strconv.FormatUint(uint64(q), 10)
}

// Dir returns the on-disk directory for this QID beneath base:
// "<base>/wikidata/Q<value>".
func (q Qid) Dir(base string) string {
	return filepath.Join(base, "wikidata", q.String())
}
