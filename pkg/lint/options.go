package lint

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// OptionType enumerates the value types a rule option may take.
type OptionType uint8

// Option types.
const (
	OptionInt OptionType = iota + 1
	OptionBool
	OptionString
	OptionEnum
	OptionStringList
)

func (t OptionType) String() string {
	switch t {
	case OptionInt:
		return "int"
	case OptionBool:
		return "bool"
	case OptionString:
		return "string"
	case OptionEnum:
		return "enum"
	case OptionStringList:
		return "string_list"
	default:
		return "unknown"
	}
}

// MarshalText encodes the type by name.
func (t OptionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// OptionSpec declares one configuration option of a rule.
type OptionSpec struct {
	Key         string     `json:"key" yaml:"key"`
	Type        OptionType `json:"type" yaml:"type"`
	Default     any        `json:"default" yaml:"default"`
	Values      []string   `json:"values,omitempty" yaml:"values,omitempty"` // OptionEnum only
	Min         *int       `json:"min,omitempty" yaml:"min,omitempty"`       // OptionInt only
	Max         *int       `json:"max,omitempty" yaml:"max,omitempty"`       // OptionInt only
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
}

// IntOption declares an int option bounded by [lo, hi].
func IntOption(key string, def, lo, hi int, description string) OptionSpec {
	return OptionSpec{Key: key, Type: OptionInt, Default: def, Min: &lo, Max: &hi, Description: description}
}

// BoolOption declares a bool option.
func BoolOption(key string, def bool, description string) OptionSpec {
	return OptionSpec{Key: key, Type: OptionBool, Default: def, Description: description}
}

// EnumOption declares an option restricted to values.
func EnumOption(key, def string, values []string, description string) OptionSpec {
	return OptionSpec{Key: key, Type: OptionEnum, Default: def, Values: values, Description: description}
}

// Normalize coerces v to the option's Go type and validates it. Values from
// YAML, TOML, JSON or the environment arrive loosely typed: "80", 80.0 and
// int64(80) all normalize to 80.
func (s OptionSpec) Normalize(v any) (any, error) {
	switch s.Type {
	case OptionInt:
		var n int
		if err := mapstructure.WeakDecode(v, &n); err != nil {
			return nil, fmt.Errorf("expected int: %w", err)
		}
		if s.Min != nil && n < *s.Min {
			return nil, fmt.Errorf("%d is below the minimum %d", n, *s.Min)
		}
		if s.Max != nil && n > *s.Max {
			return nil, fmt.Errorf("%d is above the maximum %d", n, *s.Max)
		}
		return n, nil
	case OptionBool:
		var b bool
		if err := mapstructure.WeakDecode(v, &b); err != nil {
			return nil, fmt.Errorf("expected bool: %w", err)
		}
		return b, nil
	case OptionString, OptionEnum:
		str, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		if s.Type == OptionEnum && !slices.Contains(s.Values, str) {
			return nil, fmt.Errorf("%q is not one of %s", str, strings.Join(s.Values, ", "))
		}
		return str, nil
	case OptionStringList:
		if str, ok := v.(string); ok {
			return splitList(str), nil
		}
		var out []string
		if err := mapstructure.WeakDecode(v, &out); err != nil {
			return nil, fmt.Errorf("expected list of strings: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("option %q has no type", s.Key)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// validate checks that the spec itself is well formed.
func (s OptionSpec) validate() error {
	if s.Key == "" {
		return errors.New("option has no key")
	}
	if s.Type == OptionEnum && len(s.Values) == 0 {
		return fmt.Errorf("enum option %q has no values", s.Key)
	}
	if _, err := s.Normalize(s.Default); err != nil {
		return fmt.Errorf("default of option %q: %w", s.Key, err)
	}
	return nil
}

// Sentinel errors wrapped by OptionError.
var (
	ErrUnknownRule   = errors.New("unknown rule")
	ErrUnknownOption = errors.New("unknown option")
	ErrInvalidOption = errors.New("invalid option value")
)

// OptionError reports improper rule configuration.
type OptionError struct {
	Rule  string
	Key   string
	Value any
	Err   error
}

func (e *OptionError) Error() string {
	switch {
	case e.Key == "":
		return fmt.Sprintf("rule %s: %v", e.Rule, e.Err)
	case e.Value == nil:
		return fmt.Sprintf("rule %s: option %s: %v", e.Rule, e.Key, e.Err)
	default:
		return fmt.Sprintf("rule %s: option %s=%v: %v", e.Rule, e.Key, e.Value, e.Err)
	}
}

func (e *OptionError) Unwrap() error {
	return e.Err
}

// ResolveOptions merges configured values over the spec defaults and
// normalizes them. Unknown keys and invalid values yield an *OptionError.
func ResolveOptions(ruleID string, specs []OptionSpec, configured map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(specs))
	for _, s := range specs {
		v, _ := s.Normalize(s.Default)
		out[s.Key] = v
	}
	for key, raw := range configured {
		i := slices.IndexFunc(specs, func(s OptionSpec) bool { return s.Key == key })
		if i < 0 {
			return nil, &OptionError{Rule: ruleID, Key: key, Err: ErrUnknownOption}
		}
		v, err := specs[i].Normalize(raw)
		if err != nil {
			return nil, &OptionError{Rule: ruleID, Key: key, Value: raw, Err: fmt.Errorf("%w: %w", ErrInvalidOption, err)}
		}
		out[key] = v
	}
	return out, nil
}

// DecodeOptions decodes resolved options into a struct tagged with
// `mapstructure:"key"`.
func DecodeOptions(opts map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(opts)
}

// GetOption extracts a typed option with a default value.
func GetOption[T any](opts map[string]any, key string, defaultVal T) T {
	if opts == nil {
		return defaultVal
	}
	v, ok := opts[key]
	if !ok {
		return defaultVal
	}
	if typed, ok := v.(T); ok {
		return typed
	}
	return defaultVal
}

// GetIntOption extracts an int option, handling float64 from JSON.
func GetIntOption(opts map[string]any, key string, defaultVal int) int {
	if opts == nil {
		return defaultVal
	}
	v, ok := opts[key]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case int64:
		return int(n)
	default:
		return defaultVal
	}
}

// GetStringOption extracts a string option.
func GetStringOption(opts map[string]any, key string, defaultVal string) string {
	return GetOption(opts, key, defaultVal)
}

// GetBoolOption extracts a bool option.
func GetBoolOption(opts map[string]any, key string, defaultVal bool) bool {
	return GetOption(opts, key, defaultVal)
}
