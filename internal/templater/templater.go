// Package templater expands templated SQL before it is linted.
//
// Templates use three tags:
//
//	{{ expr }}                   a Starlark expression, replaced by its value
//	{* if cond *} ... {* endif *} conditionals, with elif and else
//	{* for x in items *} ... {* endfor *}
//	{# comment #}                removed
//
// Expansion records which raw ranges produced which templated text, so
// violations are reported at raw positions and fixes never edit text a tag
// produced. Literal text in the chosen branch of an if block is fixable;
// loop bodies are not, since they are repeated.
package templater

import (
	"context"
	"strings"

	starctx "github.com/leapstack-labs/leaplint/internal/starlark"
	"github.com/leapstack-labs/leaplint/pkg/source"
)

// Name is the templater's name in configuration.
const Name = "starlark"

// Templater implements source.Templater.
type Templater struct {
	envOpts []starctx.EnvOption
}

var _ source.Templater = (*Templater)(nil)

// New returns a templater. opts configure the Starlark environment.
func New(opts ...starctx.EnvOption) *Templater {
	return &Templater{envOpts: opts}
}

// Name implements source.Templater.
func (t *Templater) Name() string { return Name }

// Expand implements source.Templater. Failures are returned as *Error.
func (t *Templater) Expand(ctx context.Context, path, raw string, vars map[string]any) (*source.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !hasTags(raw) {
		return source.NewLiteralFile(path, raw), nil
	}

	toks, err := newLexer(raw).tokenize()
	if err != nil {
		return nil, err
	}
	nodes, err := parse(toks)
	if err != nil {
		return nil, err
	}

	env, err := starctx.NewEnv(vars, t.envOpts...)
	if err != nil {
		return nil, &Error{Kind: KindRender, Pos: toks[0].Pos, Msg: "invalid template variables", Err: err}
	}
	r := &renderer{ctx: ctx, env: env, path: path}
	if err := r.render(nodes, nil); err != nil {
		return nil, err
	}
	return source.NewFile(path, raw, r.out.String(), r.slices)
}

func hasTags(s string) bool {
	for _, d := range tagDelims {
		if strings.Contains(s, d.open) {
			return true
		}
	}
	return false
}
