package ambiguous

import (
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// DistinctWithGroupBy flags DISTINCT used together with GROUP BY.
var DistinctWithGroupBy = lint.RuleDef{
	ID:          "AM01",
	Name:        "ambiguous.distinct",
	Group:       "ambiguous",
	Description: "Using DISTINCT with GROUP BY is redundant.",
	Severity:    lint.SeverityWarning,
	Crawl:       lint.OnTypes("select_statement"),
	Check:       checkDistinctWithGroupBy,
	Rationale:   "GROUP BY already returns one row per group, so DISTINCT adds work without changing the result.",
	BadExample:  "SELECT DISTINCT a FROM t GROUP BY a",
	GoodExample: "SELECT a FROM t GROUP BY a",
}

func checkDistinctWithGroupBy(c *lint.Context) ([]lint.Violation, error) {
	if segment.ChildOfType(c.Segment, "groupby_clause") == nil {
		return nil, nil
	}
	sel := segment.ChildOfType(c.Segment, "select_clause")
	if sel == nil {
		return nil, nil
	}
	mod := segment.ChildOfType(sel, "select_clause_modifier")
	if mod == nil {
		return nil, nil
	}
	if kw := segment.FirstCode(mod); kw == nil || kw.Upper() != "DISTINCT" {
		return nil, nil
	}
	return []lint.Violation{
		lint.At(mod, "Using DISTINCT with GROUP BY is redundant; GROUP BY already produces unique rows."),
	}, nil
}
