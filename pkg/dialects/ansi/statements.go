package ansi

import (
	"github.com/leapstack-labs/leaplint/pkg/dialect"
	g "github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// ClauseTerminators are the keywords that end a clause. A greedy clause that
// fails part-way wraps everything up to the next terminator as unparsable
// and lets the enclosing statement continue from there.
func ClauseTerminators() []g.Node {
	return []g.Node{
		g.Kw("FROM"),
		g.Kw("WHERE"),
		g.Kw("GROUP BY"),
		g.Kw("HAVING"),
		g.Kw("QUALIFY"),
		g.Kw("WINDOW"),
		g.Kw("ORDER BY"),
		g.Kw("LIMIT"),
		g.Kw("OFFSET"),
		g.Kw("FETCH"),
		g.Kw("UNION"),
		g.Kw("EXCEPT"),
		g.Kw("INTERSECT"),
		g.Kw("RETURNING"),
		g.Kw("ON CONFLICT"),
		g.Kw("ROWS"),
		g.Kw("RANGE"),
		g.Kw("GROUPS"),
	}
}

func addStatements(b *dialect.Builder) {
	b.Rule("statement", "statement", g.One(
		g.R("with_compound_statement"),
		g.R("set_expression"),
		g.R("select_statement"),
		g.R("insert_statement"),
		g.R("update_statement"),
		g.R("delete_statement"),
		g.R("create_table_statement"),
		g.R("create_view_statement"),
		g.R("drop_statement"),
	))

	// Anything that can stand where a query is expected.
	b.Rule("select_like", "", g.One(
		g.R("with_compound_statement"),
		g.R("set_expression"),
		g.R("select_statement"),
	))

	b.Rule("with_compound_statement", "with_compound_statement", g.Seq(
		g.Kw("WITH"),
		g.Opt(g.Kw("RECURSIVE")),
		g.Indent,
		g.CommaList(g.R("common_table_expression")),
		g.Dedent,
		g.One(
			g.R("set_expression"),
			g.R("select_statement"),
			g.R("insert_statement"),
			g.R("update_statement"),
			g.R("delete_statement"),
		),
	))

	b.Rule("common_table_expression", "common_table_expression", g.Seq(
		g.Ident(),
		g.Opt(g.R("cte_column_list")),
		g.Kw("AS"),
		g.Parens(g.Indent, g.R("select_like"), g.Dedent),
	))

	b.Rule("cte_column_list", "cte_column_list", g.Parens(g.CommaList(g.Ident())))

	b.Rule("set_operator", "set_operator", g.Seq(
		g.One(g.Kw("UNION"), g.Kw("INTERSECT"), g.Kw("EXCEPT")),
		g.Opt(g.One(g.Kw("ALL"), g.Kw("DISTINCT"))),
	))

	b.Rule("set_operand", "", g.One(
		g.Parens(g.R("select_like")),
		g.R("select_statement"),
	))

	b.Rule("set_expression", "set_expression", g.Seq(
		g.R("set_operand"),
		g.OneOrMore(g.Seq(g.R("set_operator"), g.R("set_operand"))),
		g.Opt(g.R("orderby_clause")),
		g.Opt(g.R("limit_clause")),
	))

	b.Rule("insert_statement", "insert_statement", g.Seq(
		g.Kw("INSERT"),
		g.Kw("INTO"),
		g.R("table_reference"),
		g.Opt(g.R("bracketed_column_list")),
		g.One(
			g.R("values_clause"),
			g.Kw("DEFAULT VALUES"),
			g.R("select_like"),
		),
		g.Opt(g.R("returning_clause")),
	))

	b.Rule("bracketed_column_list", "", g.Parens(g.CommaList(g.R("column_reference"))))

	b.Rule("values_clause", "values_clause", g.Seq(
		g.One(g.Kw("VALUES"), g.Kw("VALUE")),
		g.Indent,
		g.CommaList(g.Parens(g.CommaList(g.R("expression")))),
		g.Dedent,
	))

	b.Rule("update_statement", "update_statement", g.Seq(
		g.Kw("UPDATE"),
		g.R("table_reference"),
		g.Opt(g.R("alias_expression")),
		g.R("set_clause_list"),
		g.Opt(g.R("from_clause")),
		g.Opt(g.R("where_clause")),
		g.Opt(g.R("returning_clause")),
	))

	b.Rule("set_clause_list", "set_clause_list", g.Seq(
		g.Kw("SET"),
		g.Indent,
		g.CommaList(g.R("set_clause")),
		g.Dedent,
	))

	b.Rule("set_clause", "set_clause", g.Seq(
		g.R("column_reference"),
		g.Op(token.Comparison, "="),
		g.R("expression"),
	))

	b.Rule("delete_statement", "delete_statement", g.Seq(
		g.Kw("DELETE"),
		g.Kw("FROM"),
		g.R("table_reference"),
		g.Opt(g.R("alias_expression")),
		g.Opt(g.R("where_clause")),
		g.Opt(g.R("returning_clause")),
	))

	// Only dialects with RETURNING define it.
	b.Rule("returning_clause", "returning_clause", g.Never)
}
