// Package pages holds the page objects for the Insider One site. Each page
// composes the explicit-wait primitives from internal/browser into
// intention-revealing operations; sequencing across pages is the test's
// responsibility.
package pages

import (
	"fmt"
	"strings"
)

// BlockReport is the immutable result of one page-survey pass: the names of
// the blocks that were missing and a per-block error string for each.
type BlockReport struct {
	missing  []string
	problems []string
}

// NewBlockReport builds a report from parallel missing/problem slices.
func NewBlockReport(missing, problems []string) BlockReport {
	return BlockReport{
		missing:  append([]string(nil), missing...),
		problems: append([]string(nil), problems...),
	}
}

// OK reports whether every surveyed block was present.
func (r BlockReport) OK() bool {
	return len(r.missing) == 0
}

// Missing returns the names of the blocks that were not found.
func (r BlockReport) Missing() []string {
	return append([]string(nil), r.missing...)
}

// Message renders the per-block errors as one readable failure message.
func (r BlockReport) Message() string {
	if r.OK() {
		return "all page blocks present"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d page block(s) missing:\n", len(r.missing))
	for _, problem := range r.problems {
		fmt.Fprintf(&b, "  - %s\n", problem)
	}
	return b.String()
}
