package convention

import (
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// LeftJoin recommends LEFT JOIN over RIGHT JOIN.
var LeftJoin = lint.RuleDef{
	ID:          "CV08",
	Name:        "convention.left_join",
	Group:       "convention",
	Description: "Prefer LEFT JOIN over RIGHT JOIN for consistency.",
	Severity:    lint.SeverityHint,
	Crawl:       lint.OnTypes("join_type"),
	Check:       checkLeftJoin,
	Rationale: `Reading a chain of joins is easier when the preserved table is always on
the left. A RIGHT JOIN can be rewritten by swapping the tables.`,
}

func checkLeftJoin(c *lint.Context) ([]lint.Violation, error) {
	for _, r := range segment.RawLeaves(c.Segment) {
		if r.Upper() == "RIGHT" {
			return []lint.Violation{
				lint.At(r, "Use LEFT JOIN instead of RIGHT JOIN."),
			}, nil
		}
	}
	return nil, nil
}
