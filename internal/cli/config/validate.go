package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// OutputModes are the accepted values of the output setting.
var OutputModes = []string{"auto", "text", "plain", "json", "yaml"}

// Validate checks values the linter itself does not validate.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxIterations < 1 {
		errs = append(errs, fmt.Errorf("max_iterations must be at least 1, got %d", c.MaxIterations))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if !slices.Contains(OutputModes, c.Output) {
		errs = append(errs, fmt.Errorf("unknown output %q (want one of %s)", c.Output, strings.Join(OutputModes, ", ")))
	}
	for _, id := range slices.Sorted(maps.Keys(c.Severity)) {
		if _, ok := lint.ParseSeverity(c.Severity[id]); !ok {
			errs = append(errs, fmt.Errorf("severity of %s: unknown level %q", id, c.Severity[id]))
		}
	}
	return errors.Join(errs...)
}

// LintConfig converts the rule settings into a lint.Config. Rule IDs are
// matched case-insensitively.
func (c *Config) LintConfig() *lint.Config {
	lc := lint.NewConfig()
	lc.Enable(c.Rules...)
	for _, sel := range c.ExcludeRules {
		lc.Disable(canonicalRule(sel))
	}
	for id, level := range c.Severity {
		if sev, ok := lint.ParseSeverity(level); ok {
			lc.SetSeverity(canonicalRule(id), sev)
		}
	}
	for id, opts := range c.RuleOptions {
		for key, v := range opts {
			lc.SetRuleOption(canonicalRule(id), key, v)
		}
	}
	lc.IgnoreNoqa = c.IgnoreNoqa
	return lc
}

// canonicalRule upper-cases rule IDs such as lt01 and leaves names and
// groups alone.
func canonicalRule(sel string) string {
	if len(sel) != 4 {
		return sel
	}
	for i, r := range sel {
		letter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		digit := r >= '0' && r <= '9'
		if (i < 2 && !letter) || (i >= 2 && !digit) {
			return sel
		}
	}
	return strings.ToUpper(sel)
}
