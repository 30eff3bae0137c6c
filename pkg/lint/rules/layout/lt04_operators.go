package layout

import (
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Operators wants whitespace on both sides of a binary operator.
var Operators = lint.RuleDef{
	ID:          "LT04",
	Name:        "layout.operators",
	Group:       "layout",
	Description: "Binary operators should be surrounded by whitespace.",
	Severity:    lint.SeverityWarning,
	Crawl:       lint.OnRawKinds(token.Comparison, token.Operator, token.Star),
	Check:       checkOperators,
	Fixable:     true,
	BadExample:  "SELECT a+b FROM t WHERE a=1",
	GoodExample: "SELECT a + b FROM t WHERE a = 1",
}

// Casts and member access are written tight.
var tightOperators = map[string]bool{"::": true, ".": true}

func checkOperators(c *lint.Context) ([]lint.Violation, error) {
	op := c.Segment.(*segment.Raw)
	if tightOperators[op.Raw()] || !segment.IsType(c.Parent(), "expression", "set_clause") {
		return nil, nil
	}
	if !isOperand(c.PrevCode()) {
		// Unary: -x, a * -1, NOT -x.
		return nil, nil
	}

	var edits []fix.Edit
	if prev := c.PrevRaw(); prev != nil && !spaced(prev) {
		edits = append(edits, fix.CreateBefore(op, segment.Whitespace(" ")))
	}
	if next := c.NextRaw(); next != nil && !spaced(next) {
		edits = append(edits, fix.InsertWhitespace(op, " "))
	}
	if len(edits) == 0 {
		return nil, nil
	}
	return []lint.Violation{
		lint.At(op, fmt.Sprintf("Expected single whitespace around %q.", op.Raw())).
			WithFix("add space around operator", edits...),
	}, nil
}

func isOperand(s segment.Segment) bool {
	if s == nil {
		return false
	}
	r, ok := s.(*segment.Raw)
	if !ok {
		return true
	}
	switch r.Kind() {
	case token.Operator, token.Comparison, token.Star, token.Keyword:
		return false
	}
	return true
}

func spaced(r *segment.Raw) bool {
	switch r.Kind() {
	case token.Whitespace, token.Newline, token.Comment:
		return true
	}
	return false
}
