package duckdb

import (
	g "github.com/leapstack-labs/leaplint/pkg/grammar"
)

// DuckDB-specific join type keywords.
const (
	JoinSemi       = "SEMI"       // rows from left that have matches in right
	JoinAnti       = "ANTI"       // rows from left that have NO matches in right
	JoinAsof       = "ASOF"       // temporal join matching the closest value
	JoinPositional = "POSITIONAL" // joins by row position, no condition
)

// joinTypes are prepended to the inherited join_type alternatives.
var joinTypes = []g.Node{
	g.Kw(JoinSemi),
	g.Kw(JoinAnti),
	g.Seq(g.Kw(JoinAsof), g.Opt(g.Kw("LEFT"))),
	g.Kw(JoinPositional),
}
