// Package duckdb provides the DuckDB dialect. It extends PostgreSQL with
// QUALIFY, star modifiers, GROUP BY ALL, the // operator and DuckDB's extra
// join types.
package duckdb

import (
	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/dialects/ansi"
	"github.com/leapstack-labs/leaplint/pkg/dialects/postgres"
	g "github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Name is the registry name of the dialect.
const Name = "duckdb"

// Definition is the DuckDB dialect.
var Definition = dialect.Extend(Name, postgres.Name).
	Reserved("QUALIFY", JoinSemi, JoinAnti, JoinAsof, JoinPositional).
	Unreserved(ModifierRename, "COLUMNS").
	Lexer(dialect.Pattern("operator", token.Operator, `::|//|\|\||->>|->|[+\-/%^&|~]`)).
	Rule("qualify_clause", "qualify_clause", g.GreedySeq(ansi.ClauseTerminators(),
		g.Kw("QUALIFY"),
		g.Indent,
		g.R("expression"),
		g.Dedent,
	)).
	ExtendRule("star_modifier", starModifiers...).
	ExtendRule("join_type", joinTypes...).
	ExtendRule("grouping_element", g.Kw("ALL")).
	Build()
