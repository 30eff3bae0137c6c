// Package capitalisation provides lint rules for the letter case of SQL
// words.
//
// Rules in this package:
//   - CP01: Keywords
//   - CP02: NULL and boolean literals
//
// Both accept a capitalisation_policy of consistent, upper, lower or
// capitalise. Under consistent, the first word with a recognisable case
// sets the policy for the rest of the file.
package capitalisation

import "github.com/leapstack-labs/leaplint/pkg/lint"

// Rules lists the rules of this package.
var Rules = []lint.RuleDef{
	Keywords,
	Literals,
}
