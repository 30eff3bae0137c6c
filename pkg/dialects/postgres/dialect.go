// Package postgres provides the PostgreSQL dialect. It extends ANSI with the
// :: cast operator, ILIKE, RETURNING, $n parameters, dollar-quoted strings
// and DISTINCT ON.
package postgres

import (
	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/dialects/ansi"
	g "github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Name is the registry name of the dialect.
const Name = "postgres"

// postgresReservedWords are the PostgreSQL reserved words ANSI leaves out.
var postgresReservedWords = []string{
	"ILIKE", "RETURNING", "LATERAL", "SIMILAR", "ISNULL", "NOTNULL",
}

// Definition is the PostgreSQL dialect.
var Definition = dialect.Extend(Name, ansi.Name).
	Reserved(postgresReservedWords...).
	Unreserved("CONFLICT", "DO", "NOTHING", "TO").
	Lexer(
		dialect.Pattern("operator", token.Operator, `::|\|\||->>|->|[+\-/%^&|~]`),
		dialect.Pattern("comparison_operator", token.Comparison, `<>|!=|>=|<=|=|<|>|!~~\*|!~~|~~\*|~~`),
	).
	LexerBefore("numeric_literal", dialect.Pattern("dollar_quote", token.StringLiteral, `\$\$(?s:.*?)\$\$`)).
	LexerBefore("parameter", dialect.Pattern("dollar_parameter", token.Parameter, `\$[0-9]+`)).
	ExtendRule("term_suffix", g.R("cast_suffix")).
	Rule("cast_suffix", "cast_expression", g.Seq(g.Op(token.Operator, "::"), g.R("data_type"))).
	ExtendRule("like_operator", g.Kw("ILIKE"), g.Seq(g.Kw("SIMILAR"), g.Kw("TO"))).
	ExtendRule("select_clause_modifier", g.Seq(
		g.Kw("DISTINCT"), g.Kw("ON"),
		g.Parens(g.CommaList(g.R("expression"))),
	)).
	ExtendRule("postfix_predicate", g.One(g.Kw("ISNULL"), g.Kw("NOTNULL"))).
	ExtendRule("table_expression", g.Seq(g.Kw("LATERAL"), g.One(g.R("function"), g.Parens(g.R("select_like"))))).
	Rule("returning_clause", "returning_clause", g.Seq(
		g.Kw("RETURNING"),
		g.Indent,
		g.CommaList(g.R("select_clause_element")),
		g.Dedent,
	)).
	Rule("insert_statement", "insert_statement", g.Seq(
		g.Kw("INSERT"),
		g.Kw("INTO"),
		g.R("table_reference"),
		g.Opt(g.Kw("AS"), g.Ident()),
		g.Opt(g.R("bracketed_column_list")),
		g.One(
			g.R("values_clause"),
			g.Kw("DEFAULT VALUES"),
			g.R("select_like"),
		),
		g.Opt(g.R("on_conflict_clause")),
		g.Opt(g.R("returning_clause")),
	)).
	Rule("on_conflict_clause", "on_conflict_clause", g.Seq(
		g.Kw("ON"), g.Kw("CONFLICT"),
		g.Opt(g.R("bracketed_column_list")),
		g.Kw("DO"),
		g.One(
			g.Kw("NOTHING"),
			g.Seq(g.Kw("UPDATE"), g.R("set_clause_list"), g.Opt(g.R("where_clause"))),
		),
	)).
	Build()
