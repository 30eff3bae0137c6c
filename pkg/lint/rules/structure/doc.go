// Package structure provides lint rules about query structure.
//
// Rules in this package:
//   - ST01: Redundant ELSE NULL in CASE
//   - ST04: Nested CASE expressions
package structure

import "github.com/leapstack-labs/leaplint/pkg/lint"

// Rules lists the rules of this package.
var Rules = []lint.RuleDef{
	ElseNull,
	NestedCase,
}
