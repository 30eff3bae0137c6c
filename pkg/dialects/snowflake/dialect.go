// Package snowflake provides the Snowflake dialect. It extends ANSI with
// QUALIFY, ILIKE / RLIKE, the :: cast operator, semi-structured path access
// (col:field.sub) and SAMPLE clauses.
package snowflake

import (
	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/dialects/ansi"
	g "github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Name is the registry name of the dialect.
const Name = "snowflake"

var snowflakeReservedWords = []string{
	"QUALIFY", "ILIKE", "RLIKE", "REGEXP", "SAMPLE", "TABLESAMPLE",
}

// Definition is the Snowflake dialect.
var Definition = dialect.Extend(Name, ansi.Name).
	Reserved(snowflakeReservedWords...).
	Unreserved("BERNOULLI", "SYSTEM", "BLOCK", "SEED", "REPEATABLE").
	Lexer(dialect.Pattern("operator", token.Operator, `::|\|\||[+\-/%^&|~]`)).
	Rule("qualify_clause", "qualify_clause", g.GreedySeq(ansi.ClauseTerminators(),
		g.Kw("QUALIFY"),
		g.Indent,
		g.R("expression"),
		g.Dedent,
	)).
	ExtendRule("like_operator", g.Kw("ILIKE"), g.Kw("RLIKE"), g.Kw("REGEXP")).
	ExtendRule("term_suffix", g.R("cast_suffix"), g.R("semi_structured_accessor")).
	Rule("cast_suffix", "cast_expression", g.Seq(g.Op(token.Operator, "::"), g.R("data_type"))).
	Rule("semi_structured_accessor", "semi_structured_expression", g.Seq(
		g.Sym(token.Colon),
		g.Ident(),
		g.ZeroOrMore(g.One(
			g.Seq(g.Sym(token.Dot), g.Ident()),
			g.R("array_accessor"),
		)),
	)).
	Rule("from_expression_element", "from_expression_element", g.Seq(
		g.R("table_expression"),
		g.Opt(g.R("sample_expression")),
		g.Opt(g.R("alias_expression")),
	)).
	Rule("sample_expression", "sample_expression", g.Seq(
		g.One(g.Kw("SAMPLE"), g.Kw("TABLESAMPLE")),
		g.Opt(g.One(g.Kw("BERNOULLI"), g.Kw("ROW"), g.Kw("SYSTEM"), g.Kw("BLOCK"))),
		g.Parens(g.Tok(token.NumericLiteral), g.Opt(g.Kw("ROWS"))),
		g.Opt(g.One(g.Kw("SEED"), g.Kw("REPEATABLE")), g.Parens(g.Tok(token.NumericLiteral))),
	)).
	Build()
