package convention

import (
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules/internal/casing"
	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// PreferCoalesce recommends COALESCE over IFNULL/NVL.
var PreferCoalesce = lint.RuleDef{
	ID:          "CV02",
	Name:        "convention.coalesce",
	Group:       "convention",
	Description: "Use COALESCE instead of IFNULL or NVL.",
	Severity:    lint.SeverityHint,
	Crawl:       lint.OnTypes("function_name"),
	Check:       checkPreferCoalesce,
	Fixable:     true,
	Rationale: `COALESCE is standard SQL and accepts any number of arguments. IFNULL and
NVL are vendor spellings of its two-argument form.`,
	BadExample:  "SELECT IFNULL(a, 0) FROM t",
	GoodExample: "SELECT COALESCE(a, 0) FROM t",
}

func checkPreferCoalesce(c *lint.Context) ([]lint.Violation, error) {
	// Qualified names like util.nvl are user functions.
	code := segment.CodeChildren(c.Segment)
	if len(code) != 1 {
		return nil, nil
	}
	name, ok := code[0].(*segment.Raw)
	if !ok {
		return nil, nil
	}
	switch name.Upper() {
	case "IFNULL", "NVL":
	default:
		return nil, nil
	}

	want := casing.Match("COALESCE", name.Raw())
	return []lint.Violation{
		lint.At(name, fmt.Sprintf("Use 'COALESCE' instead of '%s'.", name.Upper())).
			WithFix("replace with COALESCE", fix.ReplaceRaw(name, want)),
	}, nil
}
