package aliasing

import (
	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules/internal/casing"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Aliasing styles.
const (
	aliasExplicit = "explicit"
	aliasImplicit = "implicit"
)

// TableAliasing enforces AS, or its absence, in table aliases.
var TableAliasing = lint.RuleDef{
	ID:          "AL01",
	Name:        "aliasing.table",
	Group:       "aliasing",
	Description: "Implicit or explicit aliasing of tables.",
	Severity:    lint.SeverityWarning,
	Crawl:       lint.OnTypes("alias_expression"),
	Check:       checkTableAliasing,
	Options: []lint.OptionSpec{
		lint.EnumOption("aliasing", aliasExplicit, []string{aliasExplicit, aliasImplicit},
			"Whether table aliases use the AS keyword."),
	},
	Fixable:     true,
	BadExample:  "SELECT o.id FROM orders o",
	GoodExample: "SELECT o.id FROM orders AS o",
}

func checkTableAliasing(c *lint.Context) ([]lint.Violation, error) {
	if !segment.IsType(c.Parent(), "from_expression_element") {
		return nil, nil
	}
	children := c.Segment.Children()
	as := -1
	for i, ch := range children {
		if r, ok := ch.(*segment.Raw); ok && r.Kind() == token.Keyword && r.Upper() == "AS" {
			as = i
			break
		}
		if ch.IsCode() {
			break
		}
	}

	switch lint.GetStringOption(c.Options, "aliasing", aliasExplicit) {
	case aliasImplicit:
		if as < 0 {
			return nil, nil
		}
		edits := []fix.Edit{fix.Delete(children[as])}
		for _, ch := range children[as+1:] {
			if !ch.IsWhitespace() {
				break
			}
			edits = append(edits, fix.Delete(ch))
		}
		return []lint.Violation{
			lint.At(children[as], "Explicit aliasing of tables is not allowed; remove AS.").
				WithFix("remove AS", edits...),
		}, nil

	default:
		if as >= 0 {
			return nil, nil
		}
		name := segment.FirstCode(c.Segment)
		if name == nil {
			return nil, nil
		}
		kw := casing.Match("AS", precedingKeyword(c, name))
		return []lint.Violation{
			lint.At(name, "Implicit aliasing of tables is not allowed; use explicit AS.").
				WithFix("add AS", fix.CreateBefore(name, segment.Keyword(kw), segment.Whitespace(" "))),
		}, nil
	}
}

// precedingKeyword returns the text of the last keyword before r, so an
// inserted keyword can match the surrounding case.
func precedingKeyword(c *lint.Context, r *segment.Raw) string {
	var last string
	for _, leaf := range c.RawLeaves() {
		if leaf.ID() == r.ID() {
			break
		}
		if leaf.Kind() == token.Keyword {
			last = leaf.Raw()
		}
	}
	return last
}
