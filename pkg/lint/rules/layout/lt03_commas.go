package layout

import (
	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Commas wants no whitespace before a comma and some after it.
var Commas = lint.RuleDef{
	ID:          "LT03",
	Name:        "layout.commas",
	Group:       "layout",
	Description: "Commas should be followed by a single whitespace and not preceded by any.",
	Severity:    lint.SeverityWarning,
	Crawl:       lint.OnRawKinds(token.Comma),
	Check:       checkCommas,
	Fixable:     true,
	BadExample:  "SELECT a ,b FROM t",
	GoodExample: "SELECT a, b FROM t",
}

func checkCommas(c *lint.Context) ([]lint.Violation, error) {
	comma := c.Segment.(*segment.Raw)
	var out []lint.Violation

	// Leading-comma layouts put the comma after indentation; leave those.
	if prev := c.RawAt(-1); prev != nil && prev.Kind() == token.Whitespace {
		if before := c.RawAt(-2); before != nil && before.Kind() != token.Newline {
			out = append(out, lint.At(prev, "Unexpected whitespace before comma.").
				WithFix("remove whitespace before comma", fix.Delete(prev)))
		}
	}

	next := c.NextRaw()
	if next != nil {
		switch next.Kind() {
		case token.Whitespace, token.Newline, token.Comment:
		default:
			out = append(out, lint.At(comma, "Expected single whitespace after comma.").
				WithFix("add space after comma", fix.InsertWhitespace(comma, " ")))
		}
	}
	return out, nil
}
