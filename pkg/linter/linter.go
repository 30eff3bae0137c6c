package linter

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/spf13/afero"

	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/dialects"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules"
	"github.com/leapstack-labs/leaplint/pkg/parser"
	"github.com/leapstack-labs/leaplint/pkg/source"
)

// Cache stores lint-only results keyed by content and configuration.
// Implementations must be safe for concurrent use.
type Cache interface {
	Load(key string) ([]lint.Violation, bool)
	Store(key string, vs []lint.Violation)
}

// Linter lints and fixes SQL. It is read-only after New and safe for
// concurrent use.
type Linter struct {
	dialects      *dialect.Registry
	rules         *lint.Registry
	config        *lint.Config
	dialectName   string
	templater     source.Templater
	vars          map[string]any
	logger        *slog.Logger
	fs            afero.Fs
	maxIterations int
	workers       int
	writeFixes    bool
	cache         Cache

	dialect     *dialect.Dialect
	engine      *lint.Engine
	fingerprint string
}

// New builds a Linter. Unknown dialects, dialect grammar mistakes and
// improper rule configuration are reported here.
func New(opts ...Option) (*Linter, error) {
	l := &Linter{
		dialectName:   dialects.Default,
		templater:     source.RawTemplater{},
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.dialects == nil {
		l.dialects = dialects.NewRegistry()
	}
	if l.rules == nil {
		l.rules = rules.NewRegistry()
	}
	if l.config == nil {
		l.config = lint.NewConfig()
	}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if l.fs == nil {
		l.fs = afero.NewOsFs()
	}
	if l.maxIterations < 1 {
		l.maxIterations = DefaultMaxIterations
	}
	if l.workers < 1 {
		l.workers = runtime.GOMAXPROCS(0)
	}

	d, err := l.dialects.Get(l.dialectName)
	if err != nil {
		return nil, err
	}
	if err := d.ValidateFrom(parser.StatementRule); err != nil {
		return nil, err
	}
	l.dialect = d

	if err := l.config.Validate(l.rules); err != nil {
		return nil, err
	}
	engine, err := lint.NewEngine(l.config.Select(l.rules), l.config, l.logger)
	if err != nil {
		return nil, err
	}
	l.engine = engine

	if l.fingerprint, err = l.computeFingerprint(); err != nil {
		return nil, fmt.Errorf("fingerprint configuration: %w", err)
	}
	return l, nil
}

// Dialect returns the dialect files are parsed with.
func (l *Linter) Dialect() *dialect.Dialect { return l.dialect }

// Rules returns the enabled rules in evaluation order.
func (l *Linter) Rules() []lint.Rule { return l.engine.Rules() }

// computeFingerprint identifies everything besides file content that
// influences a lint result.
func (l *Linter) computeFingerprint() (string, error) {
	ids := make([]string, 0, len(l.engine.Rules()))
	for _, r := range l.engine.Rules() {
		ids = append(ids, r.ID())
	}
	b, err := json.Marshal(struct {
		Dialect   string
		Templater string
		Vars      map[string]any
		Rules     []string
		Config    *lint.Config
	}{l.dialect.Name(), l.templater.Name(), l.vars, ids, l.config})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

func (l *Linter) cacheKey(path, text string) string {
	h := sha256.New()
	for _, part := range []string{l.fingerprint, path, text} {
		_, _ = fmt.Fprintf(h, "%d:%s", len(part), part)
	}
	return hex.EncodeToString(h.Sum(nil))
}
