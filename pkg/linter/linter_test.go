package linter_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/templater"
	"github.com/leapstack-labs/leaplint/internal/testutil"
	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/linter"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/source"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

func newLinter(t *testing.T, opts ...linter.Option) *linter.Linter {
	t.Helper()
	opts = append([]linter.Option{linter.WithLogger(testutil.NewTestLogger(t))}, opts...)
	l, err := linter.New(opts...)
	require.NoError(t, err)
	return l
}

func only(ids ...string) linter.Option {
	return linter.WithConfig(lint.NewConfig().Enable(ids...))
}

func ruleIDs(vs []lint.Violation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.RuleID
	}
	return out
}

func TestFixCollapsesSpacing(t *testing.T) {
	ctx := context.Background()
	l := newLinter(t, only("LT01"))

	res, err := l.FixString(ctx, "select   1 from t", "q.sql")
	require.NoError(t, err)

	assert.Equal(t, "select 1 from t", res.Fixed)
	assert.True(t, res.Converged)
	assert.False(t, res.NonConvergence)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, "LT01", res.Violations[0].RuleID)
	assert.True(t, res.Violations[0].Fixed)
	assert.Equal(t, 1, res.FixedCount())
	assert.Empty(t, res.Remaining())

	again, err := l.LintString(ctx, res.Fixed, "q.sql")
	require.NoError(t, err)
	assert.Empty(t, again.Violations)
}

func TestLintDoesNotChangeText(t *testing.T) {
	l := newLinter(t, only("LT01"))

	res, err := l.LintString(context.Background(), "select   1 from t", "q.sql")
	require.NoError(t, err)
	assert.False(t, res.Changed())
	require.Len(t, res.Violations, 1)
	assert.True(t, res.Violations[0].Fixable())
	assert.False(t, res.Violations[0].Fixed)
	assert.Equal(t, token.Position{Line: 1, Column: 7, Offset: 6}, res.Violations[0].Pos)
}

func TestUnterminatedBracketIsReported(t *testing.T) {
	l := newLinter(t, only("LT01"))

	res, err := l.LintString(context.Background(), "select * from (", "q.sql")
	require.NoError(t, err)
	require.Len(t, res.Violations, 1)

	v := res.Violations[0]
	assert.Equal(t, lint.ParseRuleID, v.RuleID)
	assert.Equal(t, lint.KindParse, v.Kind)
	assert.Equal(t, lint.SeverityError, v.Severity)
	assert.Equal(t, 1, v.Pos.Line)
	assert.Equal(t, 15, v.Pos.Column)
}

func TestParseViolationRespectsNoqa(t *testing.T) {
	l := newLinter(t, only("LT01"))

	res, err := l.LintString(context.Background(), "select * from ( -- noqa\n", "q.sql")
	require.NoError(t, err)
	assert.Empty(t, res.Violations)
}

func TestConflictingFixesResolveOverPasses(t *testing.T) {
	l := newLinter(t, only("LT01", "LT03"))

	res, err := l.FixString(context.Background(), "select a   ,b\n", "q.sql")
	require.NoError(t, err)
	assert.Equal(t, "select a, b\n", res.Fixed)
	assert.True(t, res.Converged)

	// LT01 and LT03 both edit the spaces before the comma. LT01 comes first
	// in traversal, so the LT03 deletion waits for the next pass.
	require.GreaterOrEqual(t, len(res.Passes), 2)
	first := res.Passes[0]
	assert.Equal(t, 2, first.Applied)
	assert.Equal(t, 1, first.Unresolved)
	require.Len(t, first.Skipped, 1)
	assert.Equal(t, fix.SkipConflict, first.Skipped[0].Reason)
	assert.Equal(t, "LT03", first.Skipped[0].RuleID)
	assert.Equal(t, 1, first.Skipped[0].Pos.Line)

	assert.Equal(t, []string{"LT01", "LT03", "LT03"}, ruleIDs(res.Violations))
	assert.Equal(t, 3, res.FixedCount())
}

// flipCase upper-cases lower-case SELECT and lower-cases upper-case SELECT,
// so its fixes never settle.
var flipCase = lint.RuleDef{
	ID:       "X01",
	Name:     "test.flip_case",
	Group:    "test",
	Severity: lint.SeverityWarning,
	Crawl:    lint.OnRawKinds(token.Keyword),
	Fixable:  true,
	Check: func(c *lint.Context) ([]lint.Violation, error) {
		r := c.Segment.(*segment.Raw)
		if r.Upper() != "SELECT" {
			return nil, nil
		}
		next := "select"
		if r.Raw() == "select" {
			next = "SELECT"
		}
		return []lint.Violation{lint.At(r, "flip").WithFix("flip", fix.ReplaceRaw(r, next))}, nil
	},
}

func flipRegistry(t *testing.T) *lint.Registry {
	t.Helper()
	reg := lint.NewRegistry()
	require.NoError(t, reg.RegisterDefs(flipCase))
	return reg
}

func TestNonConvergenceIsReported(t *testing.T) {
	l := newLinter(t, linter.WithRuleRegistry(flipRegistry(t)), linter.WithMaxIterations(3))

	res, err := l.FixString(context.Background(), "select 1\n", "q.sql")
	require.NoError(t, err)

	assert.True(t, res.NonConvergence)
	assert.False(t, res.Converged)
	assert.Len(t, res.Passes, 4)
	// Three flips leave the text upper-cased.
	assert.Equal(t, "SELECT 1\n", res.Fixed)

	remaining := res.Remaining()
	require.Len(t, remaining, 1)
	assert.True(t, remaining[0].Unresolved)

	err = res.NonConvergenceErr()
	require.Error(t, err)
	assert.True(t, errors.Is(err, linter.ErrNonConvergence))
}

// doubleEdit proposes two replacements of the same keyword in one fix, which
// the applier always rejects.
var doubleEdit = lint.RuleDef{
	ID:       "X02",
	Name:     "test.double_edit",
	Group:    "test",
	Severity: lint.SeverityWarning,
	Crawl:    lint.OnRawKinds(token.Keyword),
	Fixable:  true,
	Check: func(c *lint.Context) ([]lint.Violation, error) {
		r := c.Segment.(*segment.Raw)
		if r.Upper() != "SELECT" {
			return nil, nil
		}
		return []lint.Violation{lint.At(r, "twice").WithFix("twice",
			fix.ReplaceRaw(r, "SELECT"), fix.ReplaceRaw(r, "Select"))}, nil
	},
}

func TestBlockedFixesAreNotConverged(t *testing.T) {
	reg := lint.NewRegistry()
	require.NoError(t, reg.RegisterDefs(doubleEdit))
	l := newLinter(t, linter.WithRuleRegistry(reg))

	res, err := l.FixString(context.Background(), "select 1\n", "q.sql")
	require.NoError(t, err)

	assert.Equal(t, "select 1\n", res.Fixed)
	assert.True(t, res.Blocked)
	assert.False(t, res.Converged)
	assert.False(t, res.NonConvergence)
	require.Len(t, res.Passes, 1)
	require.Len(t, res.Passes[0].Skipped, 1)
	skipped := res.Passes[0].Skipped[0]
	assert.Equal(t, "X02", skipped.RuleID)
	assert.Equal(t, fix.SkipInvalid, skipped.Reason)
	assert.Equal(t, 1, skipped.Pos.Line)
	assert.Equal(t, 1, skipped.Pos.Column)

	remaining := res.Remaining()
	require.Len(t, remaining, 1)
	assert.True(t, remaining[0].Unresolved)
}

func TestFixRespectsCancellation(t *testing.T) {
	l := newLinter(t, linter.WithRuleRegistry(flipRegistry(t)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.FixString(ctx, "select 1\n", "q.sql")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = l.LintString(ctx, "select 1\n", "q.sql")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnknownDialect(t *testing.T) {
	_, err := linter.New(linter.WithDialect("nope"))
	require.Error(t, err)
	var cfgErr *dialect.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, dialect.ErrUnknownDialect)
}

func TestOptionsForUnknownRule(t *testing.T) {
	cfg := lint.NewConfig().SetRuleOption("ZZ99", "max_line_length", 10)
	_, err := linter.New(linter.WithConfig(cfg))
	assert.ErrorIs(t, err, lint.ErrUnknownRule)
}

type failingTemplater struct{}

func (failingTemplater) Name() string { return "failing" }

func (failingTemplater) Expand(context.Context, string, string, map[string]any) (*source.File, error) {
	return nil, positionedError{}
}

type positionedError struct{}

func (positionedError) Error() string { return "undefined variable" }

func (positionedError) Position() token.Position {
	return token.Position{Line: 2, Column: 4, Offset: 10}
}

func TestTemplateErrorBecomesViolation(t *testing.T) {
	l := newLinter(t, linter.WithTemplater(failingTemplater{}, nil))

	for _, run := range []func(context.Context, string, string) (*linter.FileResult, error){l.LintString, l.FixString} {
		res, err := run(context.Background(), "select 1\nfrom {{ t }}\n", "q.sql")
		require.NoError(t, err)
		require.Len(t, res.Violations, 1)
		v := res.Violations[0]
		assert.Equal(t, lint.TemplateRuleID, v.RuleID)
		assert.Equal(t, lint.KindTemplate, v.Kind)
		assert.Equal(t, 2, v.Pos.Line)
		assert.Equal(t, 4, v.Pos.Column)
		assert.False(t, res.Changed())
	}
}

type mapCache struct {
	mu     sync.Mutex
	m      map[string][]lint.Violation
	stores int
}

func (c *mapCache) Load(key string) ([]lint.Violation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	vs, ok := c.m[key]
	return vs, ok
}

func (c *mapCache) Store(key string, vs []lint.Violation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m == nil {
		c.m = make(map[string][]lint.Violation)
	}
	c.m[key] = vs
	c.stores++
}

func TestLintUsesCache(t *testing.T) {
	ctx := context.Background()
	cache := &mapCache{}
	l := newLinter(t, only("LT01"), linter.WithCache(cache))

	first, err := l.LintString(ctx, "select   1", "q.sql")
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := l.LintString(ctx, "select   1", "q.sql")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, ruleIDs(first.Violations), ruleIDs(second.Violations))
	assert.Equal(t, 1, cache.stores)

	// A different configuration must not see the first linter's entries.
	other := newLinter(t, only("LT01", "LT02"), linter.WithCache(cache))
	third, err := other.LintString(ctx, "select   1", "q.sql")
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Equal(t, 2, cache.stores)
}

func TestFixLeavesTemplatedTextAlone(t *testing.T) {
	l := newLinter(t, only("LT01"), linter.WithTemplater(templater.New(), map[string]any{"expr": "a   + b"}))

	res, err := l.FixString(context.Background(), "select   {{ expr }} from t\n", "q.sql")
	require.NoError(t, err)

	// The spaces before the tag are literal and get fixed; the ones the
	// tag produced cannot be.
	assert.Equal(t, "select {{ expr }} from t\n", res.Fixed)
	assert.True(t, res.Converged)
	require.Len(t, res.Remaining(), 1)
	assert.True(t, res.Remaining()[0].Unresolved)
	assert.Equal(t, 1, res.FixedCount())
}

func TestParseKeepsText(t *testing.T) {
	l := newLinter(t, linter.WithDialect("duckdb"))

	f, res, err := l.Parse(context.Background(), "select a from t;\n", "q.sql")
	require.NoError(t, err)
	assert.Equal(t, "select a from t;\n", f.RawText)
	assert.Equal(t, "select a from t;\n", res.Tree.Raw())
	assert.False(t, res.HasErrors())
}
