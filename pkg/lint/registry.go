package lint

import (
	"fmt"
	"slices"
	"sort"
	"sync"
)

// Registry stores lint rules. It is an explicit object: build one at
// startup, register built-in and plugin rules, then share it read-only.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule // keyed by ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Register adds rules. Duplicate IDs, rules without a crawl predicate and
// malformed option specs are rejected; nothing is registered on error.
func (r *Registry) Register(rules ...Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(rules))
	for _, rule := range rules {
		id := rule.ID()
		switch {
		case id == "":
			return fmt.Errorf("rule %q has no ID", rule.Name())
		case id == ParseRuleID || id == TemplateRuleID:
			return fmt.Errorf("rule ID %s is reserved", id)
		case seen[id] || r.rules[id] != nil:
			return fmt.Errorf("rule %s already registered", id)
		case rule.Crawler().IsZero():
			return fmt.Errorf("rule %s has no crawl predicate", id)
		}
		if def, ok := rule.(*wrappedRuleDef); ok && def.def.Check == nil {
			return fmt.Errorf("rule %s has no check function", id)
		}
		for _, spec := range rule.Options() {
			if err := spec.validate(); err != nil {
				return fmt.Errorf("rule %s: %w", id, err)
			}
		}
		seen[id] = true
	}
	for _, rule := range rules {
		r.rules[rule.ID()] = rule
	}
	return nil
}

// RegisterDefs wraps and registers rule definitions.
func (r *Registry) RegisterDefs(defs ...RuleDef) error {
	rules := make([]Rule, len(defs))
	for i, d := range defs {
		rules[i] = WrapRuleDef(d)
	}
	return r.Register(rules...)
}

// Get returns a rule by its ID.
func (r *Registry) Get(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	return rule, ok
}

// All returns all registered rules sorted by ID.
func (r *Registry) All() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID() < rules[j].ID() })
	return rules
}

// ByGroup returns all rules in a specific group.
func (r *Registry) ByGroup(group string) []Rule {
	var rules []Rule
	for _, rule := range r.All() {
		if rule.Group() == group {
			rules = append(rules, rule)
		}
	}
	return rules
}

// ByDialect returns rules applicable to a specific dialect.
// Rules with empty/nil Dialects are included (they apply to all dialects).
func (r *Registry) ByDialect(dialectName string) []Rule {
	var rules []Rule
	for _, rule := range r.All() {
		if AppliesTo(rule, dialectName) {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Groups returns the sorted distinct rule groups.
func (r *Registry) Groups() []string {
	var groups []string
	for _, rule := range r.All() {
		if !slices.Contains(groups, rule.Group()) {
			groups = append(groups, rule.Group())
		}
	}
	sort.Strings(groups)
	return groups
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// AppliesTo reports whether rule runs under the named dialect.
func AppliesTo(rule Rule, dialectName string) bool {
	ds := rule.Dialects()
	return len(ds) == 0 || slices.Contains(ds, dialectName)
}
