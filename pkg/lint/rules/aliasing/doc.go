// Package aliasing provides lint rules for table and column aliasing.
//
// Rules in this package:
//   - AL01: Explicit or implicit AS for table aliases
//   - AL09: Table aliased to its own name
package aliasing

import "github.com/leapstack-labs/leaplint/pkg/lint"

// Rules lists the rules of this package.
var Rules = []lint.RuleDef{
	TableAliasing,
	SelfAlias,
}
