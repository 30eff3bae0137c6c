package convention

import (
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// CountRows recommends COUNT(*) over COUNT(1) and COUNT(0).
var CountRows = lint.RuleDef{
	ID:          "CV04",
	Name:        "convention.count_rows",
	Group:       "convention",
	Description: "Prefer COUNT(*) over COUNT(1) for counting rows.",
	Severity:    lint.SeverityHint,
	Crawl:       lint.OnTypes("function"),
	Check:       checkCountRows,
	Fixable:     true,
	BadExample:  "SELECT COUNT(1) FROM t",
	GoodExample: "SELECT COUNT(*) FROM t",
}

func checkCountRows(c *lint.Context) ([]lint.Violation, error) {
	name := segment.ChildOfType(c.Segment, "function_name")
	if name == nil || len(segment.CodeChildren(name)) != 1 {
		return nil, nil
	}
	if r, ok := segment.CodeChildren(name)[0].(*segment.Raw); !ok || r.Upper() != "COUNT" {
		return nil, nil
	}

	// Code leaves after the name must be exactly ( n ).
	var args []*segment.Raw
	for _, r := range segment.RawLeaves(c.Segment) {
		if r.IsCode() {
			args = append(args, r)
		}
	}
	if len(args) < 4 || args[1].Kind() != token.OpenParen || args[3].Kind() != token.CloseParen {
		return nil, nil
	}
	n := args[2]
	if n.Kind() != token.NumericLiteral || (n.Raw() != "1" && n.Raw() != "0") {
		return nil, nil
	}
	return []lint.Violation{
		lint.At(n, fmt.Sprintf("Use COUNT(*) instead of COUNT(%s) to count rows.", n.Raw())).
			WithFix("count rows with *", fix.Replace(n, segment.NewDetached(token.Star, "*"))),
	}, nil
}
