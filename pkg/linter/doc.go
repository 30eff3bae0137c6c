// Package linter ties templating, parsing, rule evaluation and fixing into
// a per-file pipeline and runs it over many files.
//
// # Usage
//
//	l, err := linter.New(
//		linter.WithDialect("duckdb"),
//		linter.WithConfig(cfg),
//		linter.WithLogger(logger),
//	)
//	res, err := l.FixString(ctx, "select   1 from t\n", "query.sql")
//	fmt.Print(res.Fixed)
//
// # Fixing
//
// FixString runs passes until no fixable violation remains or the pass
// limit is hit. Each pass parses the current text afresh, evaluates the
// rules, applies the non-conflicting fixes in traversal order and writes the
// patches back into the raw, untemplated source. Fixes that lost a conflict
// are simply proposed again by the next pass. A file that still has fixable
// violations at the limit is reported as non-converged and its remaining
// violations are marked unresolved.
//
// # Many files
//
// LintPaths expands directories into .sql files and runs them through a
// Runner: sequentially for one worker, through a bounded errgroup otherwise.
// Results come back in path order whatever the scheduling.
package linter
