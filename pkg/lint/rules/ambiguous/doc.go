// Package ambiguous provides lint rules detecting ambiguous SQL constructs.
//
// Rules in this package:
//   - AM01: DISTINCT with GROUP BY
//   - AM02: UNION without ALL or DISTINCT
package ambiguous

import "github.com/leapstack-labs/leaplint/pkg/lint"

// Rules lists the rules of this package.
var Rules = []lint.RuleDef{
	DistinctWithGroupBy,
	UnionDistinct,
}
