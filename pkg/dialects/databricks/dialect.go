// Package databricks provides the Databricks SQL dialect. It extends ANSI
// with QUALIFY, ILIKE / RLIKE / REGEXP, the :: and ?:: cast operators, DIV,
// colon JSON paths and LEFT SEMI / LEFT ANTI joins.
package databricks

import (
	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/dialects/ansi"
	g "github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Name is the registry name of the dialect.
const Name = "databricks"

// Join type constants for Databricks-specific joins.
const (
	JoinSemi = "SEMI"
	JoinAnti = "ANTI"
)

// Definition is the Databricks dialect.
var Definition = dialect.Extend(Name, ansi.Name).
	Reserved("QUALIFY", "ILIKE", "RLIKE", "REGEXP", "DIV", JoinSemi, JoinAnti).
	Lexer(dialect.Pattern("operator", token.Operator, `\?::|::|\|\||[+\-/%^&|~]`)).
	Lexer(dialect.Pattern("comparison_operator", token.Comparison, `<=>|<>|!=|>=|<=|==|=|<|>`)).
	Rule("qualify_clause", "qualify_clause", g.GreedySeq(ansi.ClauseTerminators(),
		g.Kw("QUALIFY"),
		g.Indent,
		g.R("expression"),
		g.Dedent,
	)).
	ExtendRule("like_operator", g.Kw("ILIKE"), g.Kw("RLIKE"), g.Kw("REGEXP")).
	ExtendRule("binary_operator", g.Kw("DIV")).
	ExtendRule("term_suffix",
		g.R("cast_suffix"),
		g.R("semi_structured_accessor"),
	).
	Rule("cast_suffix", "cast_expression", g.Seq(
		g.One(g.Op(token.Operator, "::"), g.Op(token.Operator, "?::")),
		g.R("data_type"),
	)).
	Rule("semi_structured_accessor", "semi_structured_expression", g.Seq(
		g.Sym(token.Colon),
		g.Ident(),
		g.ZeroOrMore(g.One(
			g.Seq(g.Sym(token.Dot), g.Ident()),
			g.R("array_accessor"),
		)),
	)).
	ExtendRule("join_type",
		g.Seq(g.Opt(g.Kw("LEFT")), g.Kw(JoinSemi)),
		g.Seq(g.Opt(g.Kw("LEFT")), g.Kw(JoinAnti)),
	).
	Build()
