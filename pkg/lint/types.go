package lint

import (
	"slices"

	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition.
// Rules are stateless - all context comes via the Context passed to Check.
type RuleDef struct {
	ID          string       // Unique identifier, e.g., "LT01"
	Name        string       // Human-readable name, e.g., "layout.spacing"
	Group       string       // Category, e.g., "layout", "convention"
	Description string       // Human-readable description
	Severity    Severity     // Default severity
	Crawl       Crawler      // Segments the rule is evaluated at
	Check       CheckFunc    // The check function
	Options     []OptionSpec // Configuration options this rule accepts
	Dialects    []string     // Restrict to specific dialects; nil/empty means all dialects
	Fixable     bool         // Violations may carry fixes

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
}

// CheckFunc evaluates a rule at the segment in c. A returned error, like a
// panic, becomes a rule-internal-error violation.
type CheckFunc func(c *Context) ([]Violation, error)

// =============================================================================
// Crawl predicates
// =============================================================================

// Crawler decides which segments a rule is evaluated at.
type Crawler struct {
	types []string
	kinds []token.Kind
	root  bool
	any   bool
}

// OnTypes matches segments whose type is one of types, e.g. "select_clause"
// or "keyword".
func OnTypes(types ...string) Crawler {
	return Crawler{types: types}
}

// OnRawKinds matches raw leaves of the given kinds.
func OnRawKinds(kinds ...token.Kind) Crawler {
	return Crawler{kinds: kinds}
}

// OnRoot matches only the root of the tree.
func OnRoot() Crawler {
	return Crawler{root: true}
}

// OnAny matches every segment.
func OnAny() Crawler {
	return Crawler{any: true}
}

// Matches reports whether seg, at the given depth, should be evaluated.
func (c Crawler) Matches(seg segment.Segment, depth int) bool {
	switch {
	case c.any:
		return true
	case c.root:
		return depth == 0
	case len(c.kinds) > 0:
		r, ok := seg.(*segment.Raw)
		return ok && slices.Contains(c.kinds, r.Kind())
	default:
		return slices.Contains(c.types, seg.Type())
	}
}

// IsZero reports whether the crawler matches nothing.
func (c Crawler) IsZero() bool {
	return !c.any && !c.root && len(c.kinds) == 0 && len(c.types) == 0
}

// =============================================================================
// Violations
// =============================================================================

// Violation is a reported rule failure.
type Violation struct {
	RuleID   string
	Kind     Kind
	Severity Severity
	Message  string
	Pos      token.Position
	Segment  segment.ID
	Fix      *fix.Fix

	// Fixed is set when the violation's fix was applied.
	Fixed bool
	// Unresolved is set when a fix existed but was not applied.
	Unresolved bool

	DocumentationURL string
}

// At creates a violation at seg.
func At(seg segment.Segment, message string) Violation {
	return Violation{
		Message: message,
		Pos:     seg.Marker().Pos(),
		Segment: seg.ID(),
	}
}

// WithFix attaches a fix built from edits.
func (v Violation) WithFix(description string, edits ...fix.Edit) Violation {
	v.Fix = fix.New(description, edits...)
	return v
}

// Fixable reports whether the violation carries a fix with edits.
func (v Violation) Fixable() bool {
	return v.Fix != nil && len(v.Fix.Edits) > 0
}

// Less orders violations by position, then rule ID.
func (v Violation) Less(o Violation) bool {
	if v.Pos.Line != o.Pos.Line {
		return v.Pos.Line < o.Pos.Line
	}
	if v.Pos.Column != o.Pos.Column {
		return v.Pos.Column < o.Pos.Column
	}
	return v.RuleID < o.RuleID
}
