package dialect_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseDefinition() *dialect.Definition {
	return dialect.NewDialect("base").
		Reserved("SELECT", "FROM").
		Unreserved("ROWS").
		Lexer(
			dialect.Pattern("whitespace", token.Whitespace, `[ \t]+`),
			dialect.WordPattern("word", `[A-Za-z_][A-Za-z0-9_]*`),
			dialect.Literal("comma", token.Comma, ","),
		).
		Rule("statement", "statement", grammar.R("select_statement")).
		Rule("select_statement", "select_statement", grammar.Seq(grammar.Kw("SELECT"), grammar.Ident())).
		Rule("literal", "literal", grammar.One(grammar.Tok(token.NumericLiteral))).
		Build()
}

func newRegistry(t *testing.T) *dialect.Registry {
	t.Helper()
	r := dialect.NewRegistry()
	require.NoError(t, r.Register(baseDefinition()))
	return r
}

func TestDefineUnknownParent(t *testing.T) {
	r := newRegistry(t)

	err := r.Define("orphan", "missing")
	require.Error(t, err)

	var cfgErr *dialect.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "orphan", cfgErr.Dialect)
	assert.ErrorIs(t, err, dialect.ErrUnknownParent)
}

func TestDefineDuplicate(t *testing.T) {
	r := newRegistry(t)
	err := r.Define("base", "")
	assert.ErrorIs(t, err, dialect.ErrDuplicateDialect)
}

func TestGetUnknown(t *testing.T) {
	r := newRegistry(t)
	_, err := r.Get("nope")
	assert.ErrorIs(t, err, dialect.ErrUnknownDialect)

	_, err = r.Get("")
	assert.ErrorIs(t, err, dialect.ErrDialectRequired)
}

func TestOverrideCorrectness(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.Define("child", "base"))

	patched := grammar.Seq(grammar.Kw("SELECT"), grammar.Kw("FROM"))
	require.NoError(t, r.Patch("child", "select_statement", dialect.Rule{Type: "select_statement", Grammar: patched}))

	got, err := r.ResolveRule("child", "select_statement")
	require.NoError(t, err)
	assert.Same(t, patched, got.Grammar)

	parentRule, err := r.ResolveRule("base", "statement")
	require.NoError(t, err)
	childRule, err := r.ResolveRule("child", "statement")
	require.NoError(t, err)
	assert.Same(t, parentRule.Grammar, childRule.Grammar, "unpatched rule comes from the parent unchanged")

	baseSelect, err := r.ResolveRule("base", "select_statement")
	require.NoError(t, err)
	assert.NotSame(t, patched, baseSelect.Grammar, "patching the child leaves the parent alone")
}

func TestPatchKeywords(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.Define("child", "base"))
	require.NoError(t, r.PatchKeywords("child", []string{"qualify"}, []string{"from"}))
	require.NoError(t, r.PatchUnreservedKeywords("child", []string{"exclude"}, []string{"rows"}))

	base, err := r.ResolveKeywords("base")
	require.NoError(t, err)
	assert.True(t, base.IsReserved("from"))
	assert.False(t, base.Contains("QUALIFY"))
	assert.True(t, base.Contains("rows"))

	child, err := r.ResolveKeywords("child")
	require.NoError(t, err)
	assert.True(t, child.IsReserved("QUALIFY"))
	assert.False(t, child.IsReserved("FROM"))
	assert.True(t, child.IsReserved("select"))
	assert.True(t, child.Contains("EXCLUDE"))
	assert.False(t, child.Contains("ROWS"))
	assert.Equal(t, []string{"QUALIFY", "SELECT"}, child.SortedReserved())
}

func TestPatchInvalidatesViews(t *testing.T) {
	r := newRegistry(t)
	before := r.MustGet("base")
	require.False(t, before.IsReserved("WHERE"))

	require.NoError(t, r.PatchKeywords("base", []string{"WHERE"}, nil))
	after := r.MustGet("base")
	assert.True(t, after.IsReserved("WHERE"))
	assert.False(t, before.IsReserved("WHERE"), "existing views are snapshots")
}

func TestUndefinedRefIsLazy(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.Patch("base", "broken", dialect.Rule{Grammar: grammar.R("does_not_exist")}))

	// Registration succeeded; the error appears on first lookup.
	d := r.MustGet("base")
	_, err := d.Rule("does_not_exist")
	require.Error(t, err)
	assert.ErrorIs(t, err, dialect.ErrUndefinedRule)
	assert.Contains(t, err.Error(), "does_not_exist")

	err = d.ValidateFrom("broken")
	assert.ErrorIs(t, err, dialect.ErrUndefinedRule)
	assert.NoError(t, d.ValidateFrom("statement"))
}

func TestExtendRule(t *testing.T) {
	r := newRegistry(t)
	child := dialect.Extend("child", "base").
		ExtendRule("literal", grammar.Tok(token.StringLiteral)).
		Build()
	require.NoError(t, r.Register(child))

	rule, err := r.ResolveRule("child", "literal")
	require.NoError(t, err)
	assert.Equal(t, "literal", rule.Type)
	oneOf, ok := rule.Grammar.(*grammar.OneOf)
	require.True(t, ok)
	require.Len(t, oneOf.Options, 2)
	assert.Equal(t, "Token(string_literal)", oneOf.Options[0].String())
	assert.Equal(t, "Token(numeric_literal)", oneOf.Options[1].String())
}

func TestExtendRuleMustBeOneOf(t *testing.T) {
	r := newRegistry(t)
	err := r.Patch("base", "x", dialect.Rule{Grammar: grammar.Kw("X"), Extends: true})
	assert.ErrorIs(t, err, dialect.ErrInvalidRule)
}

func TestLexerInheritance(t *testing.T) {
	r := newRegistry(t)
	child := dialect.Extend("child", "base").
		LexerBefore("word", dialect.Literal("cast", token.Operator, "::")).
		Lexer(dialect.Literal("comma", token.Comma, ";,")).
		RemoveLexer("whitespace").
		Build()
	require.NoError(t, r.Register(child))

	names := func(ms []dialect.LexMatcher) []string {
		out := make([]string, len(ms))
		for i, m := range ms {
			out[i] = m.Name
		}
		return out
	}
	assert.Equal(t, []string{"whitespace", "word", "comma"}, names(r.MustGet("base").LexMatchers()))
	childMatchers := r.MustGet("child").LexMatchers()
	assert.Equal(t, []string{"cast", "word", "comma"}, names(childMatchers))
	assert.Equal(t, ";,", childMatchers[2].Literal)
}

func TestLexMatcherMatch(t *testing.T) {
	word := dialect.WordPattern("word", `[a-z]+`)
	assert.True(t, word.Word)
	assert.Equal(t, 6, word.Match("select 1"))
	assert.Equal(t, 0, word.Match(" select"))

	lit := dialect.Literal("cast", token.Operator, "::")
	assert.Equal(t, 2, lit.Match("::int"))
	assert.Equal(t, 0, lit.Match(":int"))
}

func TestListAndLineage(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.Define("child", "base"))
	require.NoError(t, r.Define("grandchild", "child"))

	assert.Equal(t, []string{"base", "child", "grandchild"}, r.List())
	assert.Equal(t, []string{"grandchild", "child", "base"}, r.MustGet("grandchild").Lineage())
	assert.Equal(t, "child", r.MustGet("grandchild").Parent())
	assert.True(t, r.Has("CHILD"))
	assert.Equal(t, []token.Kind{token.Semicolon}, r.MustGet("grandchild").Delimiters())
}

func TestConcurrentResolution(t *testing.T) {
	r := newRegistry(t)
	d := r.MustGet("base")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.Rule("select_statement")
			assert.NoError(t, err)
			_, err = r.Get("base")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
