package grammar

import (
	"testing"

	"github.com/leapstack-labs/leaplint/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKwSplitsMultiWord(t *testing.T) {
	n := Kw("group by")
	seq, ok := n.(*Sequence)
	require.True(t, ok)
	require.Len(t, seq.Elements, 2)
	assert.Equal(t, "GROUP", seq.Elements[0].String())
	assert.Equal(t, "BY", seq.Elements[1].String())

	single := Kw("select")
	assert.Equal(t, &Keyword{Word: "SELECT"}, single)
}

func TestRefsAndKeywords(t *testing.T) {
	g := Seq(
		Kw("SELECT"),
		Opt(Kw("DISTINCT")),
		CommaList(R("select_target")),
		Opt(R("from_clause")),
		Opt(R("select_target")),
		Parens(R("expression")),
	)

	assert.Equal(t, []string{"select_target", "from_clause", "expression"}, Refs(g))
	assert.Equal(t, []string{"SELECT", "DISTINCT"}, Keywords(g))
}

func TestWalkStops(t *testing.T) {
	g := Seq(Opt(Kw("a")), Kw("b"))
	var seen []string
	Walk(g, func(n Node) bool {
		seen = append(seen, n.String())
		_, isOpt := n.(*Optional)
		return !isOpt
	})
	assert.Equal(t, []string{"Sequence(Optional(A), B)", "Optional(A)", "B"}, seen)
}

func TestConstructors(t *testing.T) {
	r := AnyNumberOf(1, 3, Kw("a"), Kw("b"))
	assert.Equal(t, 1, r.Min)
	assert.Equal(t, 3, r.Max)
	_, isOneOf := r.Node.(*OneOf)
	assert.True(t, isOneOf)

	b := Parens(Kw("a"), Kw("b"))
	assert.Equal(t, token.OpenParen, b.Open)
	assert.Equal(t, token.CloseParen, b.Close)

	d := CommaList(Ident())
	assert.Equal(t, token.Comma, d.Delimiter.(*Symbol).Kind)

	g := GreedySeq([]Node{Kw("where")}, Kw("from"), R("x"))
	assert.Equal(t, GreedyOnceStarted, g.Mode)
	assert.Len(t, g.Terminators, 1)

	assert.Equal(t, `"::"`, Op(token.Operator, "::").String())
	assert.Equal(t, "Token(identifier|numeric_literal)", Tok(token.Identifier, token.NumericLiteral).String())
}
