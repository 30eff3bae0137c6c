package dialect

import (
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Registry holds dialect definitions. Build one at startup, register the
// dialects the process needs, then share it read-only.
type Registry struct {
	mu    sync.RWMutex
	defs  map[string]*Definition
	views map[string]*Dialect
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs:  make(map[string]*Definition),
		views: make(map[string]*Dialect),
	}
}

// Define registers an empty dialect inheriting from parent ("" for a root).
func (r *Registry) Define(name, parent string) error {
	return r.Register(newDefinition(name, parent))
}

// Register adds a complete definition. The parent must already be defined.
func (r *Registry) Register(def *Definition) error {
	if def == nil || def.Name == "" {
		return ErrDialectRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.Name]; exists {
		return configErr(def.Name, "", ErrDuplicateDialect, "")
	}
	if def.Parent != "" {
		if _, ok := r.defs[def.Parent]; !ok {
			return configErr(def.Name, "", ErrUnknownParent, def.Parent)
		}
	}
	for name, rule := range def.rules {
		if err := checkRule(def.Name, name, rule); err != nil {
			return err
		}
	}
	r.defs[def.Name] = def.clone()
	return nil
}

func checkRule(dialect, name string, rule Rule) error {
	if rule.Grammar == nil {
		return configErr(dialect, name, ErrInvalidRule, "nil grammar")
	}
	if rule.Extends {
		if _, ok := rule.Grammar.(*grammar.OneOf); !ok {
			return configErr(dialect, name, ErrInvalidRule, "only OneOf rules can extend")
		}
	}
	return nil
}

// Patch overrides or adds one grammar rule of a defined dialect.
func (r *Registry) Patch(dialectName, ruleName string, rule Rule) error {
	if err := checkRule(dialectName, ruleName, rule); err != nil {
		return err
	}
	return r.mutate(dialectName, func(d *Definition) {
		d.rules[ruleName] = rule
	})
}

// PatchKeywords adds and removes reserved keywords.
func (r *Registry) PatchKeywords(dialectName string, add, remove []string) error {
	return r.mutate(dialectName, func(d *Definition) {
		d.reservedAdd = append(d.reservedAdd, upper(add)...)
		d.reservedRemove = append(d.reservedRemove, upper(remove)...)
	})
}

// PatchUnreservedKeywords adds and removes unreserved keywords.
func (r *Registry) PatchUnreservedKeywords(dialectName string, add, remove []string) error {
	return r.mutate(dialectName, func(d *Definition) {
		d.unreservedAdd = append(d.unreservedAdd, upper(add)...)
		d.unreservedRemove = append(d.unreservedRemove, upper(remove)...)
	})
}

// PatchLexer adds matchers, replacing any with the same name.
func (r *Registry) PatchLexer(dialectName string, matchers ...LexMatcher) error {
	return r.mutate(dialectName, func(d *Definition) {
		for _, m := range matchers {
			d.lexOps = append(d.lexOps, lexOp{kind: lexPatch, matcher: m})
		}
	})
}

// InsertLexerBefore inserts a matcher ahead of an inherited one.
func (r *Registry) InsertLexerBefore(dialectName, before string, m LexMatcher) error {
	return r.mutate(dialectName, func(d *Definition) {
		d.lexOps = append(d.lexOps, lexOp{kind: lexInsertBefore, before: before, matcher: m})
	})
}

// mutate applies fn to a definition and drops cached views, since a change
// to any dialect may affect its descendants.
func (r *Registry) mutate(name string, fn func(*Definition)) error {
	name = strings.ToLower(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.defs[name]
	if !ok {
		return configErr(name, "", ErrUnknownDialect, "")
	}
	fn(d)
	r.views = make(map[string]*Dialect)
	return nil
}

// chain returns the definitions from name up to the root. Caller holds mu.
func (r *Registry) chain(name string) ([]*Definition, error) {
	var out []*Definition
	seen := map[string]bool{}
	for cur := strings.ToLower(name); cur != ""; {
		d, ok := r.defs[cur]
		if !ok {
			if len(out) == 0 {
				return nil, configErr(cur, "", ErrUnknownDialect, "")
			}
			return nil, configErr(out[len(out)-1].Name, "", ErrUnknownParent, cur)
		}
		if seen[cur] {
			return nil, configErr(cur, "", ErrUnknownParent, "inheritance cycle")
		}
		seen[cur] = true
		out = append(out, d)
		cur = d.Parent
	}
	return out, nil
}

// ResolveRule finds a rule by walking from the dialect to the root.
func (r *Registry) ResolveRule(dialectName, ruleName string) (Rule, error) {
	d, err := r.Get(dialectName)
	if err != nil {
		return Rule{}, err
	}
	return d.Rule(ruleName)
}

// ResolveKeywords computes the dialect's effective keyword sets.
func (r *Registry) ResolveKeywords(dialectName string) (Keywords, error) {
	d, err := r.Get(dialectName)
	if err != nil {
		return Keywords{}, err
	}
	return d.Keywords(), nil
}

// Get returns the resolved, immutable view of a dialect.
func (r *Registry) Get(name string) (*Dialect, error) {
	if name == "" {
		return nil, ErrDialectRequired
	}
	name = strings.ToLower(name)

	r.mu.RLock()
	v, ok := r.views[name]
	r.mu.RUnlock()
	if ok {
		return v, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.views[name]; ok {
		return v, nil
	}
	chain, err := r.chain(name)
	if err != nil {
		return nil, err
	}
	v = newView(chain)
	r.views[name] = v
	return v, nil
}

// MustGet is Get for dialects known to be registered.
func (r *Registry) MustGet(name string) *Dialect {
	d, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return d
}

// List returns all registered dialect names (sorted).
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a dialect is defined.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.defs[strings.ToLower(name)]
	return ok
}

// Validate resolves every rule reachable from root in every dialect, so
// dangling references surface before any user input is parsed.
func (r *Registry) Validate(root string) error {
	for _, name := range r.List() {
		d, err := r.Get(name)
		if err != nil {
			return err
		}
		if err := d.ValidateFrom(root); err != nil {
			return err
		}
	}
	return nil
}

// ---------- resolution helpers ----------

func resolveKeywords(chain []*Definition) Keywords {
	kw := Keywords{
		Reserved:   make(map[string]struct{}),
		Unreserved: make(map[string]struct{}),
	}
	// Apply from the root down so descendants override ancestors.
	for i := len(chain) - 1; i >= 0; i-- {
		d := chain[i]
		for _, w := range d.reservedAdd {
			kw.Reserved[w] = struct{}{}
			delete(kw.Unreserved, w)
		}
		for _, w := range d.reservedRemove {
			delete(kw.Reserved, w)
		}
		for _, w := range d.unreservedAdd {
			if _, reserved := kw.Reserved[w]; !reserved {
				kw.Unreserved[w] = struct{}{}
			}
		}
		for _, w := range d.unreservedRemove {
			delete(kw.Unreserved, w)
		}
	}
	return kw
}

func resolveLexer(chain []*Definition) []LexMatcher {
	var out []LexMatcher
	index := func(name string) int {
		for i, m := range out {
			if m.Name == name {
				return i
			}
		}
		return -1
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for _, op := range chain[i].lexOps {
			switch op.kind {
			case lexPatch:
				if j := index(op.matcher.Name); j >= 0 {
					out[j] = op.matcher
				} else {
					out = append(out, op.matcher)
				}
			case lexInsertBefore:
				j := index(op.before)
				if j < 0 {
					out = append(out, op.matcher)
					continue
				}
				out = append(out[:j], append([]LexMatcher{op.matcher}, out[j:]...)...)
			case lexRemove:
				if j := index(op.matcher.Name); j >= 0 {
					out = append(out[:j], out[j+1:]...)
				}
			}
		}
	}
	return out
}

func resolveDelimiters(chain []*Definition) []token.Kind {
	for _, d := range chain {
		if len(d.delimiters) > 0 {
			return d.delimiters
		}
	}
	return []token.Kind{token.Semicolon}
}
