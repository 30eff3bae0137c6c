// Package lint is the rule engine: rule contracts, the rule registry, rule
// configuration and the Engine that evaluates rules over a segment tree.
//
// # Rules
//
// A rule declares a crawl predicate and a check function. The Engine walks
// the tree once, top-down and depth-first with children in document order,
// and calls every enabled rule whose predicate matches the current segment:
//
//	var TrailingWhitespace = lint.RuleDef{
//		ID:          "LT02",
//		Name:        "layout.trailing_whitespace",
//		Group:       "layout",
//		Description: "Trailing whitespace at the end of a line.",
//		Severity:    lint.SeverityWarning,
//		Crawl:       lint.OnRawKinds(token.Whitespace),
//		Check:       checkTrailingWhitespace,
//		Fixable:     true,
//	}
//
// Rules are independent. A check sees only the tree and its own options, and
// the violations it returns may carry a fix.Fix addressed at segments of the
// tree it was given.
//
// # Registry
//
// Rules live in an explicit Registry. Nothing is registered globally; the
// built-in rule packages expose a Rules slice and rules.Register adds them
// all:
//
//	reg := lint.NewRegistry()
//	rules.Register(reg)
//	r, ok := reg.Get("LT01")
//
// # Configuration
//
// Config selects rules and carries their options:
//
//	cfg := lint.NewConfig()
//	cfg.Disable("AM01")
//	cfg.SetSeverity("CV01", lint.SeverityError)
//	cfg.SetRuleOption("LT05", "max_line_length", 120)
//	err := cfg.Validate(reg) // *OptionError for bad option values
//
// # Errors
//
// A panic or error inside a check never aborts the pass. The Engine turns it
// into a single KindRuleInternalError violation for that rule and segment.
package lint
