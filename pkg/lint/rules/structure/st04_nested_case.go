package structure

import (
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// NestedCase flags CASE expressions nested inside another CASE.
var NestedCase = lint.RuleDef{
	ID:          "ST04",
	Name:        "structure.nested_case",
	Group:       "structure",
	Description: "Nested CASE expressions reduce readability.",
	Severity:    lint.SeverityInfo,
	Crawl:       lint.OnTypes("case_expression"),
	Check:       checkNestedCase,
}

func checkNestedCase(c *lint.Context) ([]lint.Violation, error) {
	if !c.HasAncestor("case_expression") {
		return nil, nil
	}
	return []lint.Violation{
		lint.At(c.Segment, "Nested CASE expressions reduce readability; consider refactoring."),
	}, nil
}
