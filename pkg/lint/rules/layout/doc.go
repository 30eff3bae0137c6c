// Package layout provides lint rules for whitespace and line layout.
//
// Rules in this package:
//   - LT01: Excess whitespace between tokens on a line
//   - LT02: Trailing whitespace
//   - LT03: Spacing around commas
//   - LT04: Spacing around binary operators
//   - LT05: Line length
//   - LT06: Files end with a single newline
//
// Layout rules work on raw leaves and their document-order neighbours,
// so they see whitespace regardless of which composite absorbed it.
package layout

import "github.com/leapstack-labs/leaplint/pkg/lint"

// Rules lists the rules of this package.
var Rules = []lint.RuleDef{
	Spacing,
	TrailingWhitespace,
	Commas,
	Operators,
	LongLines,
	EndOfFile,
}
