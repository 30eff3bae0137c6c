package starlark

import (
	"fmt"
	"os"

	"go.starlark.net/starlark"
)

// builtinNames may not be used as variable names.
var builtinNames = map[string]bool{
	"var":     true,
	"env_var": true,
}

// Predeclared returns the builtins available to every template:
//
//	var(name, default=None)      looks up a template variable
//	env_var(name, default=None)  looks up a process environment variable
//
// Unlike a bare name, var() does not fail when the variable is undefined
// and a default is given.
func Predeclared(vars *starlark.Dict, lookupEnv func(string) (string, bool)) starlark.StringDict {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	return starlark.StringDict{
		"var":     starlark.NewBuiltin("var", varBuiltin(vars)),
		"env_var": starlark.NewBuiltin("env_var", envVarBuiltin(lookupEnv)),
	}
}

type builtinFunc = func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error)

func varBuiltin(vars *starlark.Dict) builtinFunc {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var name string
		var def starlark.Value
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name, "default?", &def); err != nil {
			return nil, err
		}
		if v, found, _ := vars.Get(starlark.String(name)); found {
			return v, nil
		}
		if def == nil {
			return nil, fmt.Errorf("%s: undefined variable %q", b.Name(), name)
		}
		return def, nil
	}
}

func envVarBuiltin(lookupEnv func(string) (string, bool)) builtinFunc {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var name string
		var def starlark.Value
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name, "default?", &def); err != nil {
			return nil, err
		}
		if v, ok := lookupEnv(name); ok {
			return starlark.String(v), nil
		}
		if def == nil {
			return nil, fmt.Errorf("%s: environment variable %q is not set", b.Name(), name)
		}
		return def, nil
	}
}
