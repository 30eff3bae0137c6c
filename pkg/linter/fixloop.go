package linter

import (
	"context"
	"errors"

	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/parser"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/source"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// snapshot is one template, parse and evaluate pass over a text.
type snapshot struct {
	file       *source.File
	tree       *segment.Composite
	violations []lint.Violation
	// templateFailed is set when the text could not be templated; there is
	// no tree and nothing can be fixed.
	templateFailed bool
}

// positioned is implemented by errors that know where in the source they
// occurred.
type positioned interface {
	Position() token.Position
}

func (l *Linter) evaluate(ctx context.Context, path, text string) (*snapshot, error) {
	f, err := l.templater.Expand(ctx, path, text, l.vars)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		v := lint.Violation{
			RuleID:   lint.TemplateRuleID,
			Kind:     lint.KindTemplate,
			Severity: lint.SeverityError,
			Message:  err.Error(),
			Pos:      token.Position{Line: 1, Column: 1},
		}
		var p positioned
		if errors.As(err, &p) {
			v.Pos = p.Position()
		}
		l.logger.Debug("templating failed", "path", path, "error", err)
		return &snapshot{violations: []lint.Violation{v}, templateFailed: true}, nil
	}

	res, err := parser.ParseFile(ctx, f, l.dialect)
	if err != nil {
		return nil, err
	}
	vs, err := l.engine.Evaluate(ctx, res.Tree, l.dialect, f)
	if err != nil {
		return nil, err
	}

	var prs []lint.Violation
	for _, e := range res.Errors {
		prs = append(prs, lint.Violation{
			RuleID:   lint.ParseRuleID,
			Kind:     lint.KindParse,
			Severity: lint.SeverityError,
			Message:  e.Message,
			Pos:      e.Pos,
			Segment:  e.Segment.ID(),
		})
	}
	if !l.config.IgnoreNoqa {
		prs = lint.ParseNoqa(res.Tree).Filter(prs)
	}
	return &snapshot{file: f, tree: res.Tree, violations: append(vs, prs...)}, nil
}

// LintString lints text once. path is used for messages, templating and
// the cache key; it need not exist.
func (l *Linter) LintString(ctx context.Context, text, path string) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := &FileResult{Path: path, Source: text, Fixed: text, Converged: true}

	var key string
	if l.cache != nil {
		key = l.cacheKey(path, text)
		if vs, ok := l.cache.Load(key); ok {
			res.Violations, res.Cached = vs, true
			return res, nil
		}
	}

	snap, err := l.evaluate(ctx, path, text)
	if err != nil {
		return nil, err
	}
	res.Violations = snap.violations
	sortViolations(res.Violations)
	res.Passes = []PassReport{{Index: 0, Violations: len(res.Violations)}}

	if l.cache != nil {
		l.cache.Store(key, res.Violations)
	}
	return res, nil
}

// FixString lints text and applies fixes until the text settles or the
// pass limit is reached. Violations fixed along the way are reported with
// Fixed set, positioned in the text of the pass that fixed them.
func (l *Linter) FixString(ctx context.Context, text, path string) (*FileResult, error) {
	res := &FileResult{Path: path, Source: text, Fixed: text}
	var fixed []lint.Violation

	for pass := 0; ; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		snap, err := l.evaluate(ctx, path, res.Fixed)
		if err != nil {
			return nil, err
		}

		var fixes []*fix.Fix
		var owners []int
		for i, v := range snap.violations {
			if v.Fixable() {
				fixes = append(fixes, v.Fix)
				owners = append(owners, i)
			}
		}

		if len(fixes) == 0 || snap.templateFailed {
			res.Converged = true
			res.Passes = append(res.Passes, PassReport{Index: pass, Violations: len(snap.violations)})
			res.Violations = append(fixed, snap.violations...)
			break
		}
		if pass == l.maxIterations {
			res.NonConvergence = true
			res.Passes = append(res.Passes, PassReport{Index: pass, Violations: len(snap.violations), Unresolved: len(fixes)})
			res.Violations = append(fixed, markUnresolved(snap.violations)...)
			l.logger.Warn("fixes did not converge", "path", path, "passes", pass, "fixable", len(fixes))
			break
		}

		applied := fix.Apply(snap.tree, fixes)
		res.Passes = append(res.Passes, PassReport{
			Index:      pass,
			Violations: len(snap.violations),
			Applied:    len(applied.Applied),
			Unresolved: len(applied.Skipped),
			Skipped:    skippedFixes(snap.violations, owners, applied.Skipped),
		})
		l.logger.Debug("fix pass",
			"path", path,
			"pass", pass,
			"violations", len(snap.violations),
			"applied", len(applied.Applied),
			"skipped", len(applied.Skipped))

		if !applied.Changed() {
			// Every fix was skipped (templated, stale or invalid), so another
			// pass would propose the same fixes again.
			res.Blocked = true
			l.logger.Debug("fixes blocked", "path", path, "pass", pass, "fixable", len(fixes))
			res.Violations = append(fixed, markUnresolved(snap.violations)...)
			break
		}
		for _, i := range applied.Applied {
			v := snap.violations[owners[i]]
			v.Fixed = true
			fixed = append(fixed, v)
		}
		res.Fixed = applied.Source(snap.file.RawText)
	}

	sortViolations(res.Violations)
	return res, nil
}

// skippedFixes maps skipped fix indexes back to the violations that
// proposed them.
func skippedFixes(vs []lint.Violation, owners []int, skipped []fix.Skipped) []SkippedFix {
	out := make([]SkippedFix, 0, len(skipped))
	for _, s := range skipped {
		v := vs[owners[s.Index]]
		out = append(out, SkippedFix{RuleID: v.RuleID, Pos: v.Pos, Reason: s.Reason})
	}
	return out
}

func markUnresolved(vs []lint.Violation) []lint.Violation {
	for i := range vs {
		if vs[i].Fixable() {
			vs[i].Unresolved = true
		}
	}
	return vs
}

// Parse templates and parses text without evaluating rules.
func (l *Linter) Parse(ctx context.Context, text, path string) (*source.File, *parser.Result, error) {
	f, err := l.templater.Expand(ctx, path, text, l.vars)
	if err != nil {
		return nil, nil, err
	}
	res, err := parser.ParseFile(ctx, f, l.dialect)
	if err != nil {
		return nil, nil, err
	}
	return f, res, nil
}
