package ansi

import (
	"github.com/leapstack-labs/leaplint/pkg/dialect"
	g "github.com/leapstack-labs/leaplint/pkg/grammar"
)

func addDDL(b *dialect.Builder) {
	b.Rule("create_table_statement", "create_table_statement", g.Seq(
		g.Kw("CREATE"),
		g.Opt(g.Kw("OR REPLACE")),
		g.Opt(g.One(g.Kw("TEMPORARY"), g.Kw("TEMP"))),
		g.Kw("TABLE"),
		g.Opt(g.Kw("IF NOT EXISTS")),
		g.R("table_reference"),
		g.One(
			g.Seq(g.Opt(g.R("bracketed_column_list")), g.Kw("AS"), g.R("select_like")),
			g.Parens(g.Indent, g.CommaList(g.One(g.R("table_constraint"), g.R("column_definition"))), g.Dedent),
		),
	))

	b.Rule("create_view_statement", "create_view_statement", g.Seq(
		g.Kw("CREATE"),
		g.Opt(g.Kw("OR REPLACE")),
		g.Opt(g.One(g.Kw("TEMPORARY"), g.Kw("TEMP"))),
		g.Kw("VIEW"),
		g.Opt(g.Kw("IF NOT EXISTS")),
		g.R("table_reference"),
		g.Opt(g.R("bracketed_column_list")),
		g.Kw("AS"),
		g.R("select_like"),
	))

	b.Rule("column_definition", "column_definition", g.Seq(
		g.Ident(),
		g.R("data_type"),
		g.ZeroOrMore(g.R("column_constraint")),
	))

	b.Rule("column_constraint", "column_constraint", g.Seq(
		g.Opt(g.Kw("CONSTRAINT"), g.Ident()),
		g.One(
			g.Kw("NOT NULL"),
			g.Kw("NULL"),
			g.Kw("PRIMARY KEY"),
			g.Kw("UNIQUE"),
			g.Seq(g.Kw("DEFAULT"), g.R("expression_term")),
			g.Seq(g.Kw("CHECK"), g.Parens(g.R("expression"))),
			g.Seq(g.Kw("REFERENCES"), g.R("table_reference"), g.Opt(g.R("bracketed_column_list"))),
		),
	))

	b.Rule("table_constraint", "table_constraint", g.Seq(
		g.Opt(g.Kw("CONSTRAINT"), g.Ident()),
		g.One(
			g.Seq(g.Kw("PRIMARY KEY"), g.R("bracketed_column_list")),
			g.Seq(g.Kw("UNIQUE"), g.R("bracketed_column_list")),
			g.Seq(
				g.Kw("FOREIGN KEY"),
				g.R("bracketed_column_list"),
				g.Kw("REFERENCES"),
				g.R("table_reference"),
				g.Opt(g.R("bracketed_column_list")),
			),
			g.Seq(g.Kw("CHECK"), g.Parens(g.R("expression"))),
		),
	))

	b.Rule("drop_statement", "drop_statement", g.Seq(
		g.Kw("DROP"),
		g.One(g.Kw("TABLE"), g.Kw("VIEW"), g.Kw("SCHEMA")),
		g.Opt(g.Kw("IF EXISTS")),
		g.CommaList(g.R("table_reference")),
		g.Opt(g.One(g.Kw("CASCADE"), g.Kw("RESTRICT"))),
	))
}
