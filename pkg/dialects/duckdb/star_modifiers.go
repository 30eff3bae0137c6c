package duckdb

import (
	g "github.com/leapstack-labs/leaplint/pkg/grammar"
)

// Star modifier keywords: * EXCLUDE (a), * REPLACE (x AS a), * RENAME (a AS b).
const (
	ModifierExclude = "EXCLUDE"
	ModifierReplace = "REPLACE"
	ModifierRename  = "RENAME"
)

var starModifiers = []g.Node{
	g.Seq(
		g.Kw(ModifierExclude),
		g.One(
			g.Parens(g.CommaList(g.R("column_reference"))),
			g.R("column_reference"),
		),
	),
	g.Seq(
		g.Kw(ModifierReplace),
		g.Parens(g.CommaList(g.Seq(g.R("expression"), g.Kw("AS"), g.Ident()))),
	),
	g.Seq(
		g.Kw(ModifierRename),
		g.Parens(g.CommaList(g.Seq(g.R("column_reference"), g.Kw("AS"), g.Ident()))),
	),
}
