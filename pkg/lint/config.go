package lint

import (
	"errors"
	"slices"
	"sort"
	"strings"
)

// Config controls which rules are enabled, their severity and options.
// It is the resolved form of the user's configuration.
type Config struct {
	// EnabledRules is an allow-list of rule IDs, names or groups. Empty
	// means every rule.
	EnabledRules []string

	// DisabledRules contains rule IDs to skip
	DisabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]Severity

	// RuleOptions holds per-rule option values keyed by rule ID.
	RuleOptions map[string]map[string]any

	// IgnoreNoqa evaluates rules even on lines with noqa comments.
	IgnoreNoqa bool
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]Severity),
		RuleOptions:       make(map[string]map[string]any),
	}
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[ruleID]
}

// IsEnabled reports whether r passes the allow-list and is not disabled.
// Allow-list entries match a rule's ID, name or group; "all" matches every
// rule.
func (c *Config) IsEnabled(r Rule) bool {
	if c == nil {
		return true
	}
	if c.DisabledRules[r.ID()] || c.DisabledRules[r.Name()] || c.DisabledRules[r.Group()] {
		return false
	}
	if len(c.EnabledRules) == 0 {
		return true
	}
	return slices.ContainsFunc(c.EnabledRules, func(sel string) bool {
		return sel == "all" || strings.EqualFold(sel, r.ID()) || sel == r.Name() || sel == r.Group()
	})
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(ruleID string, defaultSeverity Severity) Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[ruleID]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// Enable restricts evaluation to the given rules, groups or names.
func (c *Config) Enable(selectors ...string) *Config {
	c.EnabledRules = append(c.EnabledRules, selectors...)
	return c
}

// Disable disables a rule by ID.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[ruleID] = true
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(ruleID string, severity Severity) *Config {
	c.SeverityOverrides[ruleID] = severity
	return c
}

// SetRuleOption sets one option of a rule.
func (c *Config) SetRuleOption(ruleID, key string, value any) *Config {
	if c.RuleOptions[ruleID] == nil {
		c.RuleOptions[ruleID] = make(map[string]any)
	}
	c.RuleOptions[ruleID][key] = value
	return c
}

// GetRuleOptions returns the configured (unresolved) options of a rule.
func (c *Config) GetRuleOptions(ruleID string) map[string]any {
	if c == nil {
		return nil
	}
	return c.RuleOptions[ruleID]
}

// Validate checks rule options against the rules in reg. Every problem is
// reported as an *OptionError, joined in rule ID order.
func (c *Config) Validate(reg *Registry) error {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.RuleOptions))
	for id := range c.RuleOptions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var errs []error
	for _, id := range ids {
		r, ok := reg.Get(id)
		if !ok {
			errs = append(errs, &OptionError{Rule: id, Err: ErrUnknownRule})
			continue
		}
		if _, err := ResolveOptions(id, r.Options(), c.RuleOptions[id]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Select returns the rules of reg enabled by c, sorted by ID.
func (c *Config) Select(reg *Registry) []Rule {
	var out []Rule
	for _, r := range reg.All() {
		if c.IsEnabled(r) {
			out = append(out, r)
		}
	}
	return out
}
