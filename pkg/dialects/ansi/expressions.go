package ansi

import (
	"github.com/leapstack-labs/leaplint/pkg/dialect"
	g "github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Expressions are parsed flat: operands separated by operators, with no
// precedence tree. Lint rules inspect operators and operands in order, which
// is all a flat list needs to support.
func addExpressions(b *dialect.Builder) {
	b.Rule("expression", "expression", g.Seq(
		g.R("expression_term"),
		g.ZeroOrMore(g.One(
			g.R("postfix_predicate"),
			g.Seq(g.R("binary_operator"), g.R("expression_term")),
		)),
	))

	b.Rule("arithmetic_expression", "", g.Seq(
		g.R("expression_term"),
		g.ZeroOrMore(g.Seq(g.One(g.Tok(token.Operator), g.Sym(token.Star)), g.R("expression_term"))),
	))

	b.Rule("expression_term", "", g.Seq(
		g.ZeroOrMore(g.R("unary_operator")),
		g.R("primary_expression"),
		g.ZeroOrMore(g.R("term_suffix")),
	))

	b.Rule("unary_operator", "", g.One(
		g.Kw("NOT"),
		g.Op(token.Operator, "-"),
		g.Op(token.Operator, "+"),
		g.Op(token.Operator, "~"),
	))

	b.Rule("binary_operator", "", g.One(
		g.Tok(token.Comparison),
		g.Tok(token.Operator),
		g.Sym(token.Star),
		g.Kw("AND"),
		g.Kw("OR"),
	))

	b.Rule("like_operator", "", g.One(g.Kw("LIKE")))

	b.Rule("postfix_predicate", "", g.One(
		g.Seq(
			g.Kw("IS"),
			g.Opt(g.Kw("NOT")),
			g.One(
				g.Kw("NULL"),
				g.Kw("TRUE"),
				g.Kw("FALSE"),
				g.Seq(g.Kw("DISTINCT"), g.Kw("FROM"), g.R("expression_term")),
			),
		),
		g.Seq(
			g.Opt(g.Kw("NOT")),
			g.Kw("IN"),
			g.Parens(g.One(g.R("select_like"), g.CommaList(g.R("expression")))),
		),
		g.Seq(
			g.Opt(g.Kw("NOT")),
			g.Kw("BETWEEN"),
			g.R("arithmetic_expression"),
			g.Kw("AND"),
			g.R("arithmetic_expression"),
		),
		g.Seq(
			g.Opt(g.Kw("NOT")),
			g.R("like_operator"),
			g.R("expression_term"),
			g.Opt(g.Kw("ESCAPE"), g.R("expression_term")),
		),
	))

	b.Rule("term_suffix", "", g.One(
		g.R("array_accessor"),
	))

	b.Rule("array_accessor", "array_accessor", g.Square(g.Seq(
		g.R("expression"),
		g.Opt(g.Sym(token.Colon), g.R("expression")),
	)))

	b.Rule("primary_expression", "", g.One(
		g.R("case_expression"),
		g.R("cast_expression"),
		g.R("exists_expression"),
		g.Parens(g.R("select_like")),
		g.Parens(g.CommaList(g.R("expression"))),
		g.R("literal"),
		g.R("function"),
		g.R("column_reference"),
		g.Tok(token.Parameter),
	))

	b.Rule("literal", "literal", g.One(
		g.Tok(token.NumericLiteral),
		g.Tok(token.StringLiteral),
		g.Kw("NULL"),
		g.Kw("TRUE"),
		g.Kw("FALSE"),
		g.Seq(
			g.One(g.Kw("DATE"), g.Kw("TIME"), g.Kw("TIMESTAMP"), g.Kw("INTERVAL")),
			g.Tok(token.StringLiteral),
		),
	))

	b.Rule("column_reference", "column_reference", g.Seq(
		g.Ident(),
		g.ZeroOrMore(g.Seq(g.Sym(token.Dot), g.Ident())),
	))

	b.Rule("table_reference", "table_reference", g.Seq(
		g.Ident(),
		g.ZeroOrMore(g.Seq(g.Sym(token.Dot), g.Ident())),
	))

	b.Rule("case_expression", "case_expression", g.Seq(
		g.Kw("CASE"),
		g.Opt(g.R("expression")),
		g.Indent,
		g.OneOrMore(g.R("when_clause")),
		g.Opt(g.R("else_clause")),
		g.Dedent,
		g.Kw("END"),
	))

	b.Rule("when_clause", "when_clause", g.Seq(
		g.Kw("WHEN"),
		g.Indent,
		g.R("expression"),
		g.Dedent,
		g.Kw("THEN"),
		g.Indent,
		g.R("expression"),
		g.Dedent,
	))

	b.Rule("else_clause", "else_clause", g.Seq(
		g.Kw("ELSE"),
		g.Indent,
		g.R("expression"),
		g.Dedent,
	))

	b.Rule("cast_expression", "cast_expression", g.Seq(
		g.Kw("CAST"),
		g.Parens(g.R("expression"), g.Kw("AS"), g.R("data_type")),
	))

	b.Rule("exists_expression", "exists_expression", g.Seq(
		g.Kw("EXISTS"),
		g.Parens(g.R("select_like")),
	))

	b.Rule("function", "function", g.Seq(
		g.R("function_name"),
		g.Parens(g.Opt(g.R("function_contents"))),
		g.Opt(g.R("filter_clause")),
		g.Opt(g.R("over_clause")),
	))

	b.Rule("function_name", "function_name", g.Seq(
		g.ZeroOrMore(g.Seq(g.Ident(), g.Sym(token.Dot))),
		g.One(g.Ident(), g.Kw(JoinLeft), g.Kw(JoinRight)),
	))

	b.Rule("function_contents", "", g.Seq(
		g.Opt(g.One(g.Kw("DISTINCT"), g.Kw("ALL"))),
		g.One(
			g.Sym(token.Star),
			g.CommaList(g.R("function_argument")),
		),
		g.Opt(g.R("orderby_clause")),
	))

	b.Rule("function_argument", "", g.One(
		g.Seq(g.Ident(), g.Kw("FROM"), g.R("expression")),
		g.R("expression"),
	))

	b.Rule("filter_clause", "filter_clause", g.Seq(
		g.Kw("FILTER"),
		g.Parens(g.Kw("WHERE"), g.R("expression")),
	))

	b.Rule("over_clause", "over_clause", g.Seq(
		g.Kw("OVER"),
		g.One(
			g.Parens(g.Opt(g.R("window_specification"))),
			g.Ident(),
		),
	))

	b.Rule("window_specification", "window_specification", g.Seq(
		g.Opt(g.R("partitionby_clause")),
		g.Opt(g.R("orderby_clause")),
		g.Opt(g.R("frame_clause")),
	))

	b.Rule("partitionby_clause", "partitionby_clause", g.Seq(
		g.Kw("PARTITION BY"),
		g.Indent,
		g.CommaList(g.R("expression")),
		g.Dedent,
	))

	b.Rule("frame_clause", "frame_clause", g.Seq(
		g.One(g.Kw("ROWS"), g.Kw("RANGE"), g.Kw("GROUPS")),
		g.One(
			g.Seq(g.Kw("BETWEEN"), g.R("frame_boundary"), g.Kw("AND"), g.R("frame_boundary")),
			g.R("frame_boundary"),
		),
	))

	b.Rule("frame_boundary", "", g.One(
		g.Seq(g.Kw("UNBOUNDED"), g.One(g.Kw("PRECEDING"), g.Kw("FOLLOWING"))),
		g.Kw("CURRENT ROW"),
		g.Seq(g.R("expression_term"), g.One(g.Kw("PRECEDING"), g.Kw("FOLLOWING"))),
	))

	b.Rule("data_type", "data_type", g.Seq(
		g.Ident(),
		g.Opt(g.One(g.Kw("PRECISION"), g.Kw("VARYING"))),
		g.Opt(g.Parens(g.CommaList(g.Tok(token.NumericLiteral)))),
		g.Opt(g.One(g.Kw("WITH"), g.Kw("WITHOUT")), g.Kw("TIME ZONE")),
		g.ZeroOrMore(g.Square(g.Opt(g.Tok(token.NumericLiteral)))),
	))
}
