package convention

import (
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Not-equal styles.
const (
	styleConsistent = "consistent"
	styleC          = "c_style"
	styleANSI       = "ansi"
)

var notEqualText = map[string]string{
	styleC:    "!=",
	styleANSI: "<>",
}

// NotEqual enforces one spelling of the not-equal operator.
var NotEqual = lint.RuleDef{
	ID:          "CV01",
	Name:        "convention.not_equal",
	Group:       "convention",
	Description: "Consistent usage of != or <> for the not-equal operator.",
	Severity:    lint.SeverityHint,
	Crawl:       lint.OnRawKinds(token.Comparison),
	Check:       checkNotEqual,
	Options: []lint.OptionSpec{
		lint.EnumOption("preferred_not_equal_style", styleConsistent,
			[]string{styleConsistent, styleC, styleANSI},
			"Spelling to enforce; consistent follows the first not-equal in the file."),
	},
	Fixable:     true,
	BadExample:  "SELECT * FROM t WHERE a <> 1 AND b != 2",
	GoodExample: "SELECT * FROM t WHERE a != 1 AND b != 2",
}

func checkNotEqual(c *lint.Context) ([]lint.Violation, error) {
	op := c.Segment.(*segment.Raw)
	if !isNotEqual(op) {
		return nil, nil
	}

	want := notEqualText[lint.GetStringOption(c.Options, "preferred_not_equal_style", styleConsistent)]
	if want == "" {
		for _, r := range c.RawLeaves() {
			if r.Kind() == token.Comparison && isNotEqual(r) {
				want = r.Raw()
				break
			}
		}
	}
	if op.Raw() == want {
		return nil, nil
	}
	return []lint.Violation{
		lint.At(op, fmt.Sprintf("Use '%s' instead of '%s'.", want, op.Raw())).
			WithFix("rewrite not-equal operator", fix.ReplaceRaw(op, want)),
	}, nil
}

func isNotEqual(r *segment.Raw) bool {
	return r.Raw() == "!=" || r.Raw() == "<>"
}
