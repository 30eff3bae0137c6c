package layout

import (
	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// TrailingWhitespace removes whitespace at the end of a line.
var TrailingWhitespace = lint.RuleDef{
	ID:          "LT02",
	Name:        "layout.trailing_whitespace",
	Group:       "layout",
	Description: "Trailing whitespace at the end of a line.",
	Severity:    lint.SeverityWarning,
	Crawl:       lint.OnRawKinds(token.Whitespace),
	Check:       checkTrailingWhitespace,
	Fixable:     true,
}

func checkTrailingWhitespace(c *lint.Context) ([]lint.Violation, error) {
	ws := c.Segment.(*segment.Raw)
	next := c.NextRaw()
	if next != nil && next.Kind() != token.Newline {
		return nil, nil
	}
	return []lint.Violation{
		lint.At(ws, "Unnecessary trailing whitespace.").
			WithFix("remove trailing whitespace", fix.Delete(ws)),
	}, nil
}
