package rules

import (
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules/aliasing"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules/ambiguous"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules/capitalisation"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules/convention"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules/layout"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules/structure"
)

// All returns every built-in rule definition.
func All() []lint.RuleDef {
	var out []lint.RuleDef
	for _, group := range [][]lint.RuleDef{
		layout.Rules,
		capitalisation.Rules,
		convention.Rules,
		aliasing.Rules,
		ambiguous.Rules,
		structure.Rules,
	} {
		out = append(out, group...)
	}
	return out
}

// Register adds every built-in rule to reg.
func Register(reg *lint.Registry) error {
	return reg.RegisterDefs(All()...)
}

// NewRegistry returns a registry holding the built-in rules.
func NewRegistry() *lint.Registry {
	reg := lint.NewRegistry()
	if err := Register(reg); err != nil {
		// The built-in set is static; a failure here is a programming error.
		panic(err)
	}
	return reg
}
