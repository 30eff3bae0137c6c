package capitalisation

import (
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Literals enforces the letter case of NULL, TRUE and FALSE.
var Literals = lint.RuleDef{
	ID:          "CP02",
	Name:        "capitalisation.literals",
	Group:       "capitalisation",
	Description: "Inconsistent capitalisation of boolean and null literals.",
	Severity:    lint.SeverityWarning,
	Crawl:       lint.OnRawKinds(token.Keyword),
	Check:       checkLiterals,
	Options:     []lint.OptionSpec{policyOption()},
	Fixable:     true,
	BadExample:  "SELECT NULL, true FROM t",
	GoodExample: "SELECT NULL, TRUE FROM t",
}

func checkLiterals(c *lint.Context) ([]lint.Violation, error) {
	return checkCase(c, func(_ *lint.Context, r *segment.Raw, _ segment.Segment) bool {
		return isLiteralWord(r)
	}, "Boolean/null literals")
}

func isLiteralWord(r *segment.Raw) bool {
	switch r.Upper() {
	case "NULL", "TRUE", "FALSE":
		return true
	}
	return false
}
