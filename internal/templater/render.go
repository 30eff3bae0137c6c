package templater

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"go.starlark.net/starlark"

	starctx "github.com/leapstack-labs/leaplint/internal/starlark"
	"github.com/leapstack-labs/leaplint/pkg/source"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// renderer writes templated text and records which raw range produced
// each run of it. Inside loop bodies it only writes text: the loop as a
// whole becomes one templated slice, since its body is repeated.
type renderer struct {
	ctx    context.Context
	env    *starctx.Env
	path   string
	flat   bool
	out    strings.Builder
	slices []source.Slice
}

func (r *renderer) emit(kind source.SliceKind, rawStart, rawEnd int, text string) {
	if r.flat {
		r.out.WriteString(text)
		return
	}
	if rawStart == rawEnd && text == "" {
		return
	}
	start := r.out.Len()
	r.out.WriteString(text)
	r.slices = append(r.slices, source.Slice{
		Kind:           kind,
		RawStart:       rawStart,
		RawEnd:         rawEnd,
		TemplatedStart: start,
		TemplatedEnd:   r.out.Len(),
	})
}

// output picks the slice kind for text a tag produced.
func output(text string) source.SliceKind {
	if text == "" {
		return source.SliceComment
	}
	return source.SliceTemplated
}

func (r *renderer) render(nodes []node, locals starlark.StringDict) error {
	for _, n := range nodes {
		if err := r.ctx.Err(); err != nil {
			return err
		}
		start, end := n.rawSpan()
		switch n := n.(type) {
		case *textNode:
			r.emit(source.SliceLiteral, start, end, n.Text)
		case *commentNode:
			r.emit(source.SliceComment, start, end, "")
		case *exprNode:
			text, err := r.env.EvalString(r.ctx, n.Expr, r.path, n.Pos.Line, locals)
			if err != nil {
				return r.evalError(err, n.Pos, n.Expr)
			}
			r.emit(output(text), start, end, text)
		case *ifBlock:
			if err := r.renderIf(n, locals); err != nil {
				return err
			}
		case *forBlock:
			text, err := r.renderFor(n, locals)
			if err != nil {
				return err
			}
			r.emit(output(text), start, end, text)
		default:
			panic(fmt.Sprintf("templater: unexpected node %T", n))
		}
	}
	return nil
}

func (r *renderer) renderIf(b *ifBlock, locals starlark.StringDict) error {
	chosen := -1
	for i, br := range b.Branches {
		if br.IsElse {
			chosen = i
			break
		}
		v, err := r.env.Eval(r.ctx, br.Cond, r.path, br.Pos.Line, locals)
		if err != nil {
			return r.evalError(err, br.Pos, br.Cond)
		}
		if v.Truth() {
			chosen = i
			break
		}
	}

	for i, br := range b.Branches {
		bodyEnd := b.EndTag.Start
		if i+1 < len(b.Branches) {
			bodyEnd = b.Branches[i+1].Tag.Start
		}
		if i != chosen {
			r.emit(source.SliceComment, br.Tag.Start, bodyEnd, "")
			continue
		}
		r.emit(source.SliceComment, br.Tag.Start, br.Tag.End, "")
		if err := r.render(br.Body, locals); err != nil {
			return err
		}
	}
	r.emit(source.SliceComment, b.EndTag.Start, b.EndTag.End, "")
	return nil
}

func (r *renderer) renderFor(b *forBlock, locals starlark.StringDict) (string, error) {
	items, err := r.env.EvalIterable(r.ctx, b.Iter, r.path, b.Pos.Line, locals)
	if err != nil {
		return "", r.evalError(err, b.Pos, b.Iter)
	}

	body := &renderer{ctx: r.ctx, env: r.env, path: r.path, flat: true}
	for _, item := range items {
		scope := make(starlark.StringDict, len(locals)+len(b.Vars))
		maps.Copy(scope, locals)
		if err := bind(scope, b.Vars, item); err != nil {
			return "", &Error{Kind: KindRender, Pos: b.Pos, Msg: err.Error()}
		}
		if err := body.render(b.Body, scope); err != nil {
			return "", err
		}
	}
	return body.out.String(), nil
}

// bind assigns a loop item to the loop variables, unpacking when there is
// more than one.
func bind(scope starlark.StringDict, vars []string, item starlark.Value) error {
	if len(vars) == 1 {
		scope[vars[0]] = item
		return nil
	}
	seq, ok := item.(starlark.Indexable)
	if !ok {
		return fmt.Errorf("cannot unpack %s into %d variables", item.Type(), len(vars))
	}
	if seq.Len() != len(vars) {
		return fmt.Errorf("cannot unpack %d values into %d variables", seq.Len(), len(vars))
	}
	for i, name := range vars {
		scope[name] = seq.Index(i)
	}
	return nil
}

func (r *renderer) evalError(err error, pos token.Position, expr string) error {
	if ctxErr := r.ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return &Error{Kind: KindRender, Pos: pos, Msg: fmt.Sprintf("cannot evaluate %q", expr), Err: err}
}
