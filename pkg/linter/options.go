package linter

import (
	"log/slog"

	"github.com/spf13/afero"

	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/source"
)

// DefaultMaxIterations bounds the fix loop when no limit is configured.
const DefaultMaxIterations = 10

// Option configures a Linter.
type Option func(*Linter)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linter) { l.logger = logger }
}

// WithConfig sets the rule configuration.
func WithConfig(cfg *lint.Config) Option {
	return func(l *Linter) { l.config = cfg }
}

// WithDialect selects the dialect by registry name.
func WithDialect(name string) Option {
	return func(l *Linter) { l.dialectName = name }
}

// WithDialectRegistry replaces the built-in dialect registry.
func WithDialectRegistry(reg *dialect.Registry) Option {
	return func(l *Linter) { l.dialects = reg }
}

// WithRuleRegistry replaces the built-in rule registry.
func WithRuleRegistry(reg *lint.Registry) Option {
	return func(l *Linter) { l.rules = reg }
}

// WithTemplater sets the templater and the variables passed to it.
func WithTemplater(t source.Templater, vars map[string]any) Option {
	return func(l *Linter) {
		l.templater = t
		l.vars = vars
	}
}

// WithFS sets the filesystem LintPaths reads from and writes fixes to.
func WithFS(fs afero.Fs) Option {
	return func(l *Linter) { l.fs = fs }
}

// WithMaxIterations bounds the number of fix passes per file.
func WithMaxIterations(n int) Option {
	return func(l *Linter) { l.maxIterations = n }
}

// WithWorkers sets how many files are processed at once. Zero or less
// means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(l *Linter) { l.workers = n }
}

// WithWriteFixes makes LintPaths write fixed text back to the filesystem.
func WithWriteFixes(write bool) Option {
	return func(l *Linter) { l.writeFixes = write }
}

// WithCache sets a cache for lint-only results.
func WithCache(c Cache) Option {
	return func(l *Linter) { l.cache = c }
}
