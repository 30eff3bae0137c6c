package aliasing

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// SelfAlias flags tables aliased to their own name.
var SelfAlias = lint.RuleDef{
	ID:          "AL09",
	Name:        "aliasing.self_alias",
	Group:       "aliasing",
	Description: "Table aliased to its own name is redundant.",
	Severity:    lint.SeverityHint,
	Crawl:       lint.OnTypes("from_expression_element"),
	Check:       checkSelfAlias,
	Fixable:     true,
	BadExample:  "SELECT users.id FROM users AS users",
	GoodExample: "SELECT users.id FROM users",
}

func checkSelfAlias(c *lint.Context) ([]lint.Violation, error) {
	children := c.Segment.Children()
	var table, alias *segment.Raw
	at := -1
	for i, ch := range children {
		switch ch.Type() {
		case "table_expression":
			if ref := segment.ChildOfType(ch, "table_reference"); ref != nil {
				table = segment.LastCode(ref)
			}
		case "alias_expression":
			// The alias name is the first identifier after an optional AS.
			for _, r := range segment.RawLeaves(ch) {
				if r.IsCode() && !(r.Kind() == token.Keyword && r.Upper() == "AS") {
					alias = r
					break
				}
			}
			at = i
		}
	}
	if table == nil || alias == nil || !sameName(table, alias) {
		return nil, nil
	}

	// Drop the alias together with the whitespace separating it.
	edits := []fix.Edit{fix.Delete(children[at])}
	for i := at - 1; i >= 0 && children[i].IsWhitespace(); i-- {
		edits = append(edits, fix.Delete(children[i]))
	}
	return []lint.Violation{
		lint.At(children[at], fmt.Sprintf("Table '%s' is aliased to its own name; this is redundant.", table.Raw())).
			WithFix("remove redundant alias", edits...),
	}, nil
}

// sameName compares unquoted names case-insensitively and quoted names
// exactly.
func sameName(a, b *segment.Raw) bool {
	if a.Kind() == token.QuotedIdentifier || b.Kind() == token.QuotedIdentifier {
		return a.Raw() == b.Raw()
	}
	return strings.EqualFold(a.Raw(), b.Raw())
}
