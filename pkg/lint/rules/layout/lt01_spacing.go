package layout

import (
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Spacing collapses runs of whitespace between code on one line.
var Spacing = lint.RuleDef{
	ID:          "LT01",
	Name:        "layout.spacing",
	Group:       "layout",
	Description: "Inappropriate spacing between tokens on a line.",
	Severity:    lint.SeverityWarning,
	Crawl:       lint.OnRawKinds(token.Whitespace),
	Check:       checkSpacing,
	Fixable:     true,
	Rationale: `Extra spaces inside a line are usually left over from editing. A single
space keeps statements compact and diffs small. Indentation at the start of a
line and spacing before a comment are left alone.`,
	BadExample:  "SELECT a,   b FROM   t",
	GoodExample: "SELECT a, b FROM t",
}

func checkSpacing(c *lint.Context) ([]lint.Violation, error) {
	ws := c.Segment.(*segment.Raw)
	if ws.Raw() == " " {
		return nil, nil
	}
	prev, next := c.PrevRaw(), c.NextRaw()
	if !inLine(prev) || !inLine(next) {
		return nil, nil
	}
	return []lint.Violation{
		lint.At(ws, fmt.Sprintf("Expected only single space before %q. Found %q.", next.Raw(), ws.Raw())).
			WithFix("collapse whitespace", fix.ReplaceRaw(ws, " ")),
	}, nil
}

// inLine reports whether r is code on the same line as its neighbour.
func inLine(r *segment.Raw) bool {
	if r == nil {
		return false
	}
	switch r.Kind() {
	case token.Newline, token.Comment, token.Whitespace:
		return false
	}
	return true
}
