package starlark

import (
	"context"
	"fmt"
	"maps"
	"sort"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Env holds the globals templates are evaluated against. It is frozen
// after NewEnv and safe for concurrent use.
type Env struct {
	globals starlark.StringDict
	pool    *ThreadPool
}

// EnvOption configures an Env.
type EnvOption func(*envOptions)

type envOptions struct {
	lookupEnv func(string) (string, bool)
}

// WithLookupEnv replaces os.LookupEnv for env_var().
func WithLookupEnv(fn func(string) (string, bool)) EnvOption {
	return func(o *envOptions) { o.lookupEnv = fn }
}

// NewEnv converts vars to Starlark and adds the builtins. Variables are
// reachable as bare names and through var(); names that are not Starlark
// identifiers only through var().
func NewEnv(vars map[string]any, opts ...EnvOption) (*Env, error) {
	var o envOptions
	for _, opt := range opts {
		opt(&o)
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	dict := starlark.NewDict(len(vars))
	globals := make(starlark.StringDict, len(vars)+len(builtinNames))
	for _, name := range names {
		if builtinNames[name] {
			return nil, fmt.Errorf("variable %q conflicts with builtin", name)
		}
		v, err := GoToStarlark(vars[name])
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		if err := dict.SetKey(starlark.String(name), v); err != nil {
			return nil, err
		}
		globals[name] = v
	}
	maps.Copy(globals, Predeclared(dict, o.lookupEnv))
	globals.Freeze()

	return &Env{globals: globals, pool: NewThreadPool(0)}, nil
}

// Eval evaluates one expression. locals shadow globals; they are how loop
// variables reach the loop body. Cancelling ctx interrupts evaluation.
func (e *Env) Eval(ctx context.Context, expr, filename string, line int, locals starlark.StringDict) (starlark.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	thread := e.pool.Get(filename)
	stop := context.AfterFunc(ctx, func() { thread.Cancel(context.Cause(ctx).Error()) })
	defer func() {
		// stop reports false once the cancel func has run.
		e.pool.Put(thread, !stop())
	}()

	env := e.globals
	if len(locals) > 0 {
		env = make(starlark.StringDict, len(e.globals)+len(locals))
		maps.Copy(env, e.globals)
		maps.Copy(env, locals)
	}

	v, err := starlark.EvalOptions(&syntax.FileOptions{}, thread, filename, expr, env)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &EvalError{File: filename, Line: line, Expr: expr, Err: err}
	}
	return v, nil
}

// EvalString evaluates expr and renders the result as text.
func (e *Env) EvalString(ctx context.Context, expr, filename string, line int, locals starlark.StringDict) (string, error) {
	v, err := e.Eval(ctx, expr, filename, line, locals)
	if err != nil {
		return "", err
	}
	return ToText(v), nil
}

// EvalIterable evaluates expr and collects the values it iterates over.
func (e *Env) EvalIterable(ctx context.Context, expr, filename string, line int, locals starlark.StringDict) ([]starlark.Value, error) {
	v, err := e.Eval(ctx, expr, filename, line, locals)
	if err != nil {
		return nil, err
	}
	iterable, ok := v.(starlark.Iterable)
	if !ok {
		return nil, &EvalError{File: filename, Line: line, Expr: expr, Err: fmt.Errorf("%s is not iterable", v.Type())}
	}
	iter := iterable.Iterate()
	defer iter.Done()

	var out []starlark.Value
	var item starlark.Value
	for iter.Next(&item) {
		out = append(out, item)
	}
	return out, nil
}

// EvalError is a failed expression evaluation.
type EvalError struct {
	File string
	Line int
	Expr string
	Err  error
}

func (e *EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: error evaluating %q: %v", e.File, e.Line, e.Expr, e.Err)
	}
	return fmt.Sprintf("%s: error evaluating %q: %v", e.File, e.Expr, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }
