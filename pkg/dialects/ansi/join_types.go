package ansi

import (
	"github.com/leapstack-labs/leaplint/pkg/dialect"
	g "github.com/leapstack-labs/leaplint/pkg/grammar"
)

// Standard ANSI SQL join type keywords. Dialects extend the join_type rule
// with their own (ASOF, POSITIONAL, ...).
const (
	JoinInner   = "INNER"
	JoinLeft    = "LEFT"
	JoinRight   = "RIGHT"
	JoinFull    = "FULL"
	JoinCross   = "CROSS"
	JoinNatural = "NATURAL"
)

func addJoins(b *dialect.Builder) {
	b.Rule("join_clause", "join_clause", g.Seq(
		g.Opt(g.R("join_type")),
		g.Kw("JOIN"),
		g.Indent,
		g.R("from_expression_element"),
		g.Dedent,
		g.Opt(g.One(g.R("join_on_condition"), g.R("join_using_condition"))),
	))

	b.Rule("join_type", "join_type", g.One(
		g.Kw(JoinInner),
		g.Seq(g.One(g.Kw(JoinLeft), g.Kw(JoinRight), g.Kw(JoinFull)), g.Opt(g.Kw("OUTER"))),
		g.Kw(JoinCross),
		g.Seq(g.Kw(JoinNatural), g.Opt(g.One(g.Kw(JoinInner), g.Seq(g.One(g.Kw(JoinLeft), g.Kw(JoinRight), g.Kw(JoinFull)), g.Opt(g.Kw("OUTER")))))),
	))

	b.Rule("join_on_condition", "join_on_condition", g.Seq(
		g.Kw("ON"),
		g.Indent,
		g.R("expression"),
		g.Dedent,
	))

	b.Rule("join_using_condition", "join_using_condition", g.Seq(
		g.Kw("USING"),
		g.Parens(g.CommaList(g.Ident())),
	))
}
