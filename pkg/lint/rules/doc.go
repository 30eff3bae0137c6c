// Package rules provides the built-in lint rules.
//
// Rules are organized by category; the ID prefix names the category:
//   - layout: Whitespace and line layout (LT01-LT06)
//   - capitalisation: Letter case of keywords and literals (CP01-CP02)
//   - convention: SQL conventions (CV01-CV08)
//   - aliasing: Table aliasing (AL01, AL09)
//   - ambiguous: Ambiguous SQL constructs (AM01-AM02)
//   - structure: Query structure (ST01, ST04)
//
// Register adds every built-in rule to a registry:
//
//	reg := lint.NewRegistry()
//	if err := rules.Register(reg); err != nil {
//		return err
//	}
//
// Each category package exports its rules as a Rules slice, so a category
// can also be registered on its own with reg.RegisterDefs(layout.Rules...).
package rules
