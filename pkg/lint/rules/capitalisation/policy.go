package capitalisation

import (
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules/internal/casing"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

const policyKey = "capitalisation_policy"

func policyOption() lint.OptionSpec {
	return lint.EnumOption(policyKey, casing.Consistent, casing.Policies,
		"Letter case to enforce; consistent follows the first word in the file.")
}

// candidate reports whether a keyword leaf with the given parent is checked
// by a rule.
type candidate func(c *lint.Context, r *segment.Raw, parent segment.Segment) bool

// checkCase is shared by CP01 and CP02; what names the words in messages.
func checkCase(c *lint.Context, is candidate, what string) ([]lint.Violation, error) {
	r := c.Segment.(*segment.Raw)
	if !is(c, r, c.Parent()) {
		return nil, nil
	}

	policy := lint.GetStringOption(c.Options, policyKey, casing.Consistent)
	msg := "%s must be %s."
	if policy == casing.Consistent {
		if policy = firstStyle(c, is); policy == "" {
			return nil, nil
		}
		msg = "%s must be consistently %s."
	}

	want := casing.Convert(r.Raw(), policy)
	if want == r.Raw() {
		return nil, nil
	}
	return []lint.Violation{
		lint.At(r, fmt.Sprintf(msg, what, casing.Describe(policy))).
			WithFix(fmt.Sprintf("change %q to %q", r.Raw(), want), fix.ReplaceRaw(r, want)),
	}, nil
}

// firstStyle returns the style of the first candidate in the file that has
// one.
func firstStyle(c *lint.Context, is candidate) string {
	var style string
	segment.Walk(c.Root(), func(s segment.Segment, parents []segment.Segment) bool {
		if style != "" {
			return false
		}
		r, ok := s.(*segment.Raw)
		if !ok || r.Kind() != token.Keyword || len(parents) == 0 {
			return true
		}
		if is(c, r, parents[len(parents)-1]) {
			style = casing.Style(r.Raw())
		}
		return true
	})
	return style
}

func isReserved(c *lint.Context, word string) bool {
	return c.Dialect != nil && c.Dialect.IsReserved(word)
}
