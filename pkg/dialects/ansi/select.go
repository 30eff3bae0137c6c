package ansi

import (
	"github.com/leapstack-labs/leaplint/pkg/dialect"
	g "github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

func addSelect(b *dialect.Builder) {
	b.Rule("select_statement", "select_statement", g.Seq(
		g.R("select_clause"),
		g.Opt(g.R("from_clause")),
		g.Opt(g.R("where_clause")),
		g.Opt(g.R("groupby_clause")),
		g.Opt(g.R("having_clause")),
		g.Opt(g.R("qualify_clause")),
		g.Opt(g.R("named_window_clause")),
		g.Opt(g.R("orderby_clause")),
		g.Opt(g.R("limit_clause")),
		g.Opt(g.R("offset_clause")),
		g.Opt(g.R("fetch_clause")),
	))

	b.Rule("select_clause", "select_clause", g.GreedySeq(ClauseTerminators(),
		g.Kw("SELECT"),
		g.Opt(g.R("select_clause_modifier")),
		g.Indent,
		g.CommaList(g.R("select_clause_element")),
		g.Dedent,
	))

	b.Rule("select_clause_modifier", "select_clause_modifier", g.One(
		g.Kw("DISTINCT"),
		g.Kw("ALL"),
	))

	b.Rule("select_clause_element", "select_clause_element", g.One(
		g.R("wildcard_expression"),
		g.Seq(g.R("expression"), g.Opt(g.R("alias_expression"))),
	))

	b.Rule("wildcard_expression", "wildcard_expression", g.Seq(
		g.R("wildcard_identifier"),
		g.ZeroOrMore(g.R("star_modifier")),
	))

	b.Rule("wildcard_identifier", "wildcard_identifier", g.Seq(
		g.ZeroOrMore(g.Seq(g.Ident(), g.Sym(token.Dot))),
		g.Sym(token.Star),
	))

	// EXCLUDE / REPLACE and friends are dialect extensions.
	b.Rule("star_modifier", "star_modifier", g.One(g.Never))

	b.Rule("alias_expression", "alias_expression", g.Seq(
		g.Opt(g.Kw("AS")),
		g.Ident(),
		g.Opt(g.R("cte_column_list")),
	))

	b.Rule("from_clause", "from_clause", g.GreedySeq(ClauseTerminators(),
		g.Kw("FROM"),
		g.Indent,
		g.CommaList(g.R("from_expression")),
		g.Dedent,
	))

	b.Rule("from_expression", "from_expression", g.Seq(
		g.R("from_expression_element"),
		g.ZeroOrMore(g.R("join_clause")),
	))

	b.Rule("from_expression_element", "from_expression_element", g.Seq(
		g.R("table_expression"),
		g.Opt(g.R("alias_expression")),
	))

	b.Rule("table_expression", "table_expression", g.One(
		g.R("values_clause"),
		g.R("function"),
		g.R("table_reference"),
		g.Parens(g.R("select_like")),
		g.Parens(g.R("from_expression")),
	))

	b.Rule("where_clause", "where_clause", g.GreedySeq(ClauseTerminators(),
		g.Kw("WHERE"),
		g.Indent,
		g.R("expression"),
		g.Dedent,
	))

	b.Rule("groupby_clause", "groupby_clause", g.GreedySeq(ClauseTerminators(),
		g.Kw("GROUP BY"),
		g.Indent,
		g.CommaList(g.R("grouping_element")),
		g.Dedent,
	))

	b.Rule("grouping_element", "", g.One(
		g.R("expression"),
	))

	b.Rule("having_clause", "having_clause", g.GreedySeq(ClauseTerminators(),
		g.Kw("HAVING"),
		g.Indent,
		g.R("expression"),
		g.Dedent,
	))

	// QUALIFY is not ANSI; dialects that support it override this rule.
	b.Rule("qualify_clause", "qualify_clause", g.Never)

	b.Rule("named_window_clause", "named_window_clause", g.GreedySeq(ClauseTerminators(),
		g.Kw("WINDOW"),
		g.Indent,
		g.CommaList(g.Seq(g.Ident(), g.Kw("AS"), g.Parens(g.R("window_specification")))),
		g.Dedent,
	))

	b.Rule("orderby_clause", "orderby_clause", g.GreedySeq(ClauseTerminators(),
		g.Kw("ORDER BY"),
		g.Indent,
		g.CommaList(g.R("ordering_expression")),
		g.Dedent,
	))

	b.Rule("ordering_expression", "ordering_expression", g.Seq(
		g.R("expression"),
		g.Opt(g.One(g.Kw("ASC"), g.Kw("DESC"))),
		g.Opt(g.Kw("NULLS"), g.One(g.Kw("FIRST"), g.Kw("LAST"))),
	))

	b.Rule("limit_clause", "limit_clause", g.Seq(
		g.Kw("LIMIT"),
		g.Indent,
		g.One(g.Kw("ALL"), g.R("expression")),
		g.Dedent,
	))

	b.Rule("offset_clause", "offset_clause", g.Seq(
		g.Kw("OFFSET"),
		g.R("expression"),
		g.Opt(g.One(g.Kw("ROW"), g.Kw("ROWS"))),
	))

	b.Rule("fetch_clause", "fetch_clause", g.Seq(
		g.Kw("FETCH"),
		g.One(g.Kw("FIRST"), g.Kw("NEXT")),
		g.Opt(g.R("expression")),
		g.One(g.Kw("ROW"), g.Kw("ROWS")),
		g.Kw("ONLY"),
	))
}
