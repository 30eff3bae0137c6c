package structure

import (
	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// ElseNull flags ELSE NULL, which is what CASE returns anyway.
var ElseNull = lint.RuleDef{
	ID:          "ST01",
	Name:        "structure.else_null",
	Group:       "structure",
	Description: "Do not specify ELSE NULL in a CASE expression; it is redundant.",
	Severity:    lint.SeverityInfo,
	Crawl:       lint.OnTypes("else_clause"),
	Check:       checkElseNull,
	Fixable:     true,
	BadExample:  "SELECT CASE WHEN a THEN 1 ELSE NULL END FROM t",
	GoodExample: "SELECT CASE WHEN a THEN 1 END FROM t",
}

func checkElseNull(c *lint.Context) ([]lint.Violation, error) {
	var code []*segment.Raw
	for _, r := range segment.RawLeaves(c.Segment) {
		if r.IsCode() {
			code = append(code, r)
		}
	}
	if len(code) != 2 || code[1].Upper() != "NULL" {
		return nil, nil
	}

	// Take the whitespace before ELSE with it, stepping over zero-width
	// metas and stopping after one line break.
	edits := []fix.Edit{fix.Delete(c.Segment)}
	for i := c.Index - 1; i >= 0; i-- {
		s := c.Siblings[i]
		if s.IsMeta() {
			continue
		}
		if !s.IsWhitespace() {
			break
		}
		edits = append(edits, fix.Delete(s))
		if r, ok := s.(*segment.Raw); ok && r.Kind() == token.Newline {
			break
		}
	}
	return []lint.Violation{
		lint.At(c.Segment, "Redundant ELSE NULL in a CASE expression.").
			WithFix("remove ELSE NULL", edits...),
	}, nil
}
