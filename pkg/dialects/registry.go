// Package dialects wires the built-in dialects into a registry.
package dialects

import (
	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/dialects/ansi"
	"github.com/leapstack-labs/leaplint/pkg/dialects/databricks"
	"github.com/leapstack-labs/leaplint/pkg/dialects/duckdb"
	"github.com/leapstack-labs/leaplint/pkg/dialects/postgres"
	"github.com/leapstack-labs/leaplint/pkg/dialects/snowflake"
)

// Default is the dialect used when none is configured.
const Default = ansi.Name

// Builtin lists the built-in definitions, parents before children.
func Builtin() []*dialect.Definition {
	return []*dialect.Definition{
		ansi.Definition,
		postgres.Definition,
		duckdb.Definition,
		snowflake.Definition,
		databricks.Definition,
	}
}

// NewRegistry returns a registry holding every built-in dialect.
func NewRegistry() *dialect.Registry {
	r := dialect.NewRegistry()
	for _, def := range Builtin() {
		if err := r.Register(def); err != nil {
			// Built-in definitions are static; a failure here is a programming error.
			panic(err)
		}
	}
	return r
}
