package lint_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/testutil"
	"github.com/leapstack-labs/leaplint/pkg/dialects"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/parser"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

var dialectRegistry = dialects.NewRegistry()

func evaluate(t *testing.T, dialectName, sql string, cfg *lint.Config, defs ...lint.RuleDef) []lint.Violation {
	t.Helper()
	d := dialectRegistry.MustGet(dialectName)
	res, err := parser.ParseString(context.Background(), sql, d)
	require.NoError(t, err)

	rules := make([]lint.Rule, len(defs))
	for i, def := range defs {
		rules[i] = lint.WrapRuleDef(def)
	}
	engine, err := lint.NewEngine(rules, cfg, testutil.NewTestLogger(t))
	require.NoError(t, err)
	vs, err := engine.Evaluate(context.Background(), res.Tree, d, nil)
	require.NoError(t, err)
	return vs
}

var keywordRule = lint.RuleDef{
	ID:       "T01",
	Name:     "test.keywords",
	Group:    "test",
	Severity: lint.SeverityWarning,
	Crawl:    lint.OnRawKinds(token.Keyword),
	Check: func(c *lint.Context) ([]lint.Violation, error) {
		return []lint.Violation{lint.At(c.Segment, c.Segment.Raw())}, nil
	},
}

var clauseRule = lint.RuleDef{
	ID:       "T02",
	Name:     "test.clauses",
	Group:    "test",
	Severity: lint.SeverityInfo,
	Crawl:    lint.OnTypes("select_clause", "from_clause"),
	Check: func(c *lint.Context) ([]lint.Violation, error) {
		return []lint.Violation{{Message: c.Segment.Type()}}, nil
	},
}

func messages(vs []lint.Violation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.RuleID + ":" + v.Message
	}
	return out
}

func TestEvaluateVisitsInTraversalOrder(t *testing.T) {
	vs := evaluate(t, "ansi", "select a from t", nil, keywordRule, clauseRule)

	// A parent is visited before its children, and at one segment rules
	// run in ID order.
	assert.Equal(t, []string{
		"T02:select_clause",
		"T01:select",
		"T02:from_clause",
		"T01:from",
	}, messages(vs))
}

func TestEvaluateFillsViolationDefaults(t *testing.T) {
	vs := evaluate(t, "ansi", "select a\nfrom t", nil, clauseRule)
	require.Len(t, vs, 2)

	from := vs[1]
	assert.Equal(t, "T02", from.RuleID)
	assert.Equal(t, lint.KindLint, from.Kind)
	assert.Equal(t, lint.SeverityInfo, from.Severity)
	assert.Equal(t, 2, from.Pos.Line)
	assert.Equal(t, 1, from.Pos.Column)
	assert.NotZero(t, from.Segment)
	assert.Equal(t, lint.BuildDocURL("T02"), from.DocumentationURL)
}

func TestRuleFailuresAreIsolated(t *testing.T) {
	panicking := lint.RuleDef{
		ID:    "T03",
		Name:  "test.panics",
		Crawl: lint.OnTypes("from_clause"),
		Check: func(*lint.Context) ([]lint.Violation, error) {
			var m map[string]int
			m["boom"]++
			return nil, nil
		},
	}
	failing := lint.RuleDef{
		ID:    "T04",
		Name:  "test.fails",
		Crawl: lint.OnTypes("select_clause"),
		Check: func(*lint.Context) ([]lint.Violation, error) {
			return nil, errors.New("no luck")
		},
	}

	vs := evaluate(t, "ansi", "select a from t", nil, keywordRule, panicking, failing)

	var internal []lint.Violation
	for _, v := range vs {
		if v.Kind == lint.KindRuleInternalError {
			internal = append(internal, v)
		}
	}
	require.Len(t, internal, 2)
	assert.Equal(t, "T04", internal[0].RuleID)
	assert.Contains(t, internal[0].Message, "no luck")
	assert.Equal(t, "T03", internal[1].RuleID)
	assert.Contains(t, internal[1].Message, "panic")

	// The keyword rule still ran everywhere.
	assert.Len(t, vs, 4)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	sql := "select a, b from t join u on t.id = u.id where a = 1"
	first := messages(evaluate(t, "ansi", sql, nil, keywordRule, clauseRule))
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, messages(evaluate(t, "ansi", sql, nil, keywordRule, clauseRule)))
	}
}

func TestConfigSelectsRules(t *testing.T) {
	cfg := lint.NewConfig().Disable("T01").SetSeverity("T02", lint.SeverityError)
	vs := evaluate(t, "ansi", "select a from t", cfg, keywordRule, clauseRule)

	require.Len(t, vs, 2)
	for _, v := range vs {
		assert.Equal(t, "T02", v.RuleID)
		assert.Equal(t, lint.SeverityError, v.Severity)
	}

	only := lint.NewConfig().Enable("test.keywords")
	assert.Len(t, evaluate(t, "ansi", "select a from t", only, keywordRule, clauseRule), 2)
}

func TestDialectRestrictedRules(t *testing.T) {
	def := keywordRule
	def.Dialects = []string{"duckdb"}

	assert.Empty(t, evaluate(t, "ansi", "select 1", nil, def))
	assert.Len(t, evaluate(t, "duckdb", "select 1", nil, def), 1)
}

func TestNoqaSuppressesViolations(t *testing.T) {
	sql := "select a -- noqa\nfrom t -- noqa: T02\nwhere b = 1 -- noqa: LT01"
	vs := evaluate(t, "ansi", sql, nil, keywordRule, clauseRule)

	assert.Equal(t, []string{"T01:from", "T01:where"}, messages(vs))

	cfg := lint.NewConfig()
	cfg.IgnoreNoqa = true
	assert.Len(t, evaluate(t, "ansi", sql, cfg, keywordRule, clauseRule), 5)
}

func TestContextNavigation(t *testing.T) {
	var got []string
	probe := lint.RuleDef{
		ID:    "T05",
		Name:  "test.probe",
		Crawl: lint.OnTypes("comma"),
		Check: func(c *lint.Context) ([]lint.Violation, error) {
			got = append(got,
				c.Parent().Type(),
				c.PrevCode().Raw(),
				c.NextCode().Raw(),
				c.PrevRaw().Raw(),
				c.NextRaw().Raw(),
			)
			assert.Same(t, c.Siblings[c.Index], c.Segment)
			assert.Equal(t, parser.FileType, c.Root().Type())
			assert.True(t, c.HasAncestor("select_statement"))
			return nil, nil
		},
	}
	evaluate(t, "ansi", "select a , b from t", nil, probe)

	assert.Equal(t, []string{"select_clause", "a", "b", " ", " "}, got)
}

func TestEvaluateHonoursCancellation(t *testing.T) {
	d := dialectRegistry.MustGet("ansi")
	res, err := parser.ParseString(context.Background(), "select 1", d)
	require.NoError(t, err)
	engine, err := lint.NewEngine([]lint.Rule{lint.WrapRuleDef(keywordRule)}, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.Evaluate(ctx, res.Tree, d, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewEngineRejectsBadOptions(t *testing.T) {
	def := keywordRule
	def.Options = []lint.OptionSpec{
		lint.EnumOption("policy", "upper", []string{"upper", "lower"}, ""),
	}
	cfg := lint.NewConfig().SetRuleOption("T01", "policy", "blah")

	_, err := lint.NewEngine([]lint.Rule{lint.WrapRuleDef(def)}, cfg, nil)
	var optErr *lint.OptionError
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, "T01", optErr.Rule)
	assert.Equal(t, "policy", optErr.Key)
	assert.ErrorIs(t, err, lint.ErrInvalidOption)
}

func TestViolationFixes(t *testing.T) {
	v := lint.At(segment.Keyword("select"), "upper").WithFix("upper case")
	assert.False(t, v.Fixable(), "a fix with no edits is not applicable")
}
