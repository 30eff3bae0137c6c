// Package ruletest runs single lint rules against SQL snippets in tests.
package ruletest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/testutil"
	"github.com/leapstack-labs/leaplint/pkg/dialects"
	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/parser"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/source"
)

// maxPasses bounds Fix; rules under test must settle well before it.
const maxPasses = 10

var registry = dialects.NewRegistry()

// Lint parses sql in the ansi dialect and runs rule with opts.
func Lint(t testing.TB, rule lint.RuleDef, sql string, opts map[string]any) []lint.Violation {
	t.Helper()
	_, vs := run(t, "ansi", rule, sql, opts)
	return vs
}

// LintDialect is Lint for a named dialect.
func LintDialect(t testing.TB, dialectName string, rule lint.RuleDef, sql string, opts map[string]any) []lint.Violation {
	t.Helper()
	_, vs := run(t, dialectName, rule, sql, opts)
	return vs
}

// Fix applies rule's fixes to sql until none remain and returns the result.
// It fails the test if the rule does not settle.
func Fix(t testing.TB, rule lint.RuleDef, sql string, opts map[string]any) string {
	t.Helper()
	for range maxPasses {
		tree, vs := run(t, "ansi", rule, sql, opts)
		var fixes []*fix.Fix
		for _, v := range vs {
			if v.Fixable() {
				fixes = append(fixes, v.Fix)
			}
		}
		if len(fixes) == 0 {
			return sql
		}
		res := fix.Apply(tree, fixes)
		require.NotEmpty(t, res.Applied, "no fix of %s applied to %q", rule.ID, sql)
		sql = res.Source(sql)
	}
	t.Fatalf("rule %s did not settle after %d passes", rule.ID, maxPasses)
	return sql
}

func run(t testing.TB, dialectName string, rule lint.RuleDef, sql string, opts map[string]any) (*segment.Composite, []lint.Violation) {
	t.Helper()
	d, err := registry.Get(dialectName)
	require.NoError(t, err)

	cfg := lint.NewConfig()
	for k, v := range opts {
		cfg.SetRuleOption(rule.ID, k, v)
	}
	engine, err := lint.NewEngine([]lint.Rule{lint.WrapRuleDef(rule)}, cfg, testutil.NewTestLogger(t))
	require.NoError(t, err)

	f := source.NewLiteralFile("test.sql", sql)
	res, err := parser.ParseFile(context.Background(), f, d)
	require.NoError(t, err)

	vs, err := engine.Evaluate(context.Background(), res.Tree, d, f)
	require.NoError(t, err)
	for _, v := range vs {
		require.NotEqual(t, lint.KindRuleInternalError, v.Kind, v.Message)
	}
	return res.Tree, vs
}
