// Package convention provides lint rules for SQL conventions.
//
// Rules in this package:
//   - CV01: Consistent not-equal operator (!= or <>)
//   - CV02: Prefer COALESCE over IFNULL/NVL
//   - CV03: Statement terminators
//   - CV04: Prefer COUNT(*) over COUNT(1)
//   - CV08: Prefer LEFT JOIN over RIGHT JOIN
package convention

import "github.com/leapstack-labs/leaplint/pkg/lint"

// Rules lists the rules of this package.
var Rules = []lint.RuleDef{
	NotEqual,
	PreferCoalesce,
	Terminator,
	CountRows,
	LeftJoin,
}
