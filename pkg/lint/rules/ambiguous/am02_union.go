package ambiguous

import (
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// UnionDistinct flags a bare UNION, whose implicit DISTINCT is easy to miss.
var UnionDistinct = lint.RuleDef{
	ID:          "AM02",
	Name:        "ambiguous.union",
	Group:       "ambiguous",
	Description: "UNION without ALL performs implicit DISTINCT which may be unintended.",
	Severity:    lint.SeverityInfo,
	Crawl:       lint.OnTypes("set_operator"),
	Check:       checkUnionDistinct,
	BadExample:  "SELECT a FROM t UNION SELECT a FROM u",
	GoodExample: "SELECT a FROM t UNION ALL SELECT a FROM u",
}

func checkUnionDistinct(c *lint.Context) ([]lint.Violation, error) {
	code := segment.CodeChildren(c.Segment)
	if len(code) != 1 {
		return nil, nil
	}
	if kw := segment.FirstCode(code[0]); kw == nil || kw.Upper() != "UNION" {
		return nil, nil
	}
	return []lint.Violation{
		lint.At(c.Segment, "UNION without ALL performs implicit DISTINCT; use UNION ALL or UNION DISTINCT to be explicit."),
	}, nil
}
