package lint

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sort"

	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/source"
)

// Engine runs lint rules against a segment tree.
// An Engine is read-only after construction and safe for concurrent use.
type Engine struct {
	rules   []Rule
	options map[string]map[string]any
	config  *Config
	logger  *slog.Logger
}

// NewEngine creates an engine for the rules enabled by config. Rule options
// are resolved here, so a bad option value fails construction with an
// *OptionError rather than a later evaluation.
func NewEngine(rules []Rule, config *Config, logger *slog.Logger) (*Engine, error) {
	if config == nil {
		config = NewConfig()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := &Engine{
		options: make(map[string]map[string]any),
		config:  config,
		logger:  logger,
	}
	for _, r := range rules {
		if !config.IsEnabled(r) {
			continue
		}
		opts, err := ResolveOptions(r.ID(), r.Options(), config.GetRuleOptions(r.ID()))
		if err != nil {
			return nil, err
		}
		e.options[r.ID()] = opts
		e.rules = append(e.rules, r)
	}
	sort.SliceStable(e.rules, func(i, j int) bool { return e.rules[i].ID() < e.rules[j].ID() })
	return e, nil
}

// Rules returns the enabled rules in evaluation order.
func (e *Engine) Rules() []Rule {
	return slices.Clone(e.rules)
}

// Evaluate crawls tree once, top-down and depth-first with children in
// document order. At each segment the matching rules run in ID order, so the
// result is ordered by traversal, then rule. That order is the priority
// order for fixes.
func (e *Engine) Evaluate(ctx context.Context, tree *segment.Composite, d *dialect.Dialect, f *source.File) ([]Violation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rules []Rule
	for _, r := range e.rules {
		if d == nil || AppliesTo(r, d.Name()) {
			rules = append(rules, r)
		}
	}
	if len(rules) == 0 || tree == nil {
		return nil, nil
	}

	leaves := newLeafIndex(tree)
	var out []Violation
	var parents []segment.Segment

	var visit func(seg segment.Segment, siblings []segment.Segment, index int)
	visit = func(seg segment.Segment, siblings []segment.Segment, index int) {
		var snapshot []segment.Segment
		cloned := false
		for _, r := range rules {
			if !r.Crawler().Matches(seg, len(parents)) {
				continue
			}
			if !cloned {
				snapshot, cloned = slices.Clone(parents), true
			}
			out = append(out, e.run(r, &Context{
				RuleID:   r.ID(),
				Segment:  seg,
				Parents:  snapshot,
				Siblings: siblings,
				Index:    index,
				Dialect:  d,
				File:     f,
				Options:  e.options[r.ID()],
				leaves:   leaves,
			})...)
		}

		children := seg.Children()
		if len(children) == 0 {
			return
		}
		parents = append(parents, seg)
		for i, ch := range children {
			visit(ch, children, i)
		}
		parents = parents[:len(parents)-1]
	}
	visit(tree, []segment.Segment{tree}, 0)

	if !e.config.IgnoreNoqa {
		out = ParseNoqa(tree).Filter(out)
	}
	e.logger.Debug("rules evaluated", "rules", len(rules), "violations", len(out))
	return out, nil
}

// run evaluates one rule at one segment, turning a panic or error into a
// single rule-internal-error violation.
func (e *Engine) run(r Rule, c *Context) (vs []Violation) {
	defer func() {
		if p := recover(); p != nil {
			vs = []Violation{e.internalError(r, c.Segment, fmt.Errorf("panic: %v", p))}
		}
	}()

	got, err := r.Check(c)
	if err != nil {
		return []Violation{e.internalError(r, c.Segment, err)}
	}
	sev := e.config.GetSeverity(r.ID(), r.DefaultSeverity())
	for i := range got {
		v := &got[i]
		v.RuleID = r.ID()
		v.Kind = KindLint
		v.Severity = sev
		v.DocumentationURL = BuildDocURL(r.ID())
		if v.Segment == 0 {
			v.Segment = c.Segment.ID()
		}
		if !v.Pos.IsValid() {
			v.Pos = c.Segment.Marker().Pos()
		}
	}
	return got
}

func (e *Engine) internalError(r Rule, seg segment.Segment, err error) Violation {
	e.logger.Warn("rule failed",
		"rule", r.ID(),
		"segment", seg.Type(),
		"pos", seg.Marker().Pos().String(),
		"error", err)
	return Violation{
		RuleID:   r.ID(),
		Kind:     KindRuleInternalError,
		Severity: SeverityError,
		Message:  fmt.Sprintf("rule %s failed on %s: %v", r.ID(), seg.Type(), err),
		Pos:      seg.Marker().Pos(),
		Segment:  seg.ID(),
	}
}
