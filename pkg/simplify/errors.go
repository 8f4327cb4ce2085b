package simplify

import (
	"errors"
	"fmt"
)

// ErrNoText reports a page that contains no visible text once simplified,
// e.g. a stub holding nothing but an infobox table.
var ErrNoText = errors.New("page has no text after simplification")

// RedirectError reports a page that is a redirect stub rather than real
// content.
type RedirectError struct {
	Target string
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("page is a redirect stub for %q", e.Target)
}

// PanicError wraps a panic raised while rewriting the tree, so one
// pathological document cannot take down a whole batch run.
type PanicError struct {
	Msg string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panicked while simplifying html: %s", e.Msg)
}
