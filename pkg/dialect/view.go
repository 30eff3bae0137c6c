package dialect

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Keywords are a dialect's effective keyword sets, upper-cased.
type Keywords struct {
	Reserved   map[string]struct{}
	Unreserved map[string]struct{}
}

// IsReserved reports whether word is a reserved keyword.
func (k Keywords) IsReserved(word string) bool {
	_, ok := k.Reserved[strings.ToUpper(word)]
	return ok
}

// Contains reports whether word is any keyword.
func (k Keywords) Contains(word string) bool {
	w := strings.ToUpper(word)
	if _, ok := k.Reserved[w]; ok {
		return true
	}
	_, ok := k.Unreserved[w]
	return ok
}

// SortedReserved returns the reserved keywords in order.
func (k Keywords) SortedReserved() []string {
	return sortedKeys(k.Reserved)
}

// SortedUnreserved returns the unreserved keywords in order.
func (k Keywords) SortedUnreserved() []string {
	return sortedKeys(k.Unreserved)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for w := range m {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Dialect is the resolved view of a registered dialect. It is immutable and
// safe for concurrent use; rules are resolved lazily and cached.
type Dialect struct {
	name       string
	parent     string
	levels     []level
	keywords   Keywords
	lexer      []LexMatcher
	delimiters []token.Kind

	resolved sync.Map // rule name -> Rule
}

// level is a snapshot of one definition's rules.
type level struct {
	name  string
	rules map[string]Rule
}

func newView(chain []*Definition) *Dialect {
	levels := make([]level, len(chain))
	for i, d := range chain {
		rules := make(map[string]Rule, len(d.rules))
		for k, v := range d.rules {
			rules[k] = v
		}
		levels[i] = level{name: d.Name, rules: rules}
	}
	return &Dialect{
		name:       chain[0].Name,
		parent:     chain[0].Parent,
		levels:     levels,
		keywords:   resolveKeywords(chain),
		lexer:      resolveLexer(chain),
		delimiters: resolveDelimiters(chain),
	}
}

// Name returns the dialect name.
func (d *Dialect) Name() string { return d.name }

// Parent returns the parent dialect name, "" for a root dialect.
func (d *Dialect) Parent() string { return d.parent }

// Lineage returns the dialect names from this dialect up to the root.
func (d *Dialect) Lineage() []string {
	out := make([]string, len(d.levels))
	for i, l := range d.levels {
		out[i] = l.name
	}
	return out
}

// Keywords returns the effective keyword sets.
func (d *Dialect) Keywords() Keywords { return d.keywords }

// IsReserved reports whether word is reserved in this dialect.
func (d *Dialect) IsReserved(word string) bool { return d.keywords.IsReserved(word) }

// IsKeyword reports whether word is reserved or unreserved in this dialect.
func (d *Dialect) IsKeyword(word string) bool { return d.keywords.Contains(word) }

// LexMatchers returns the ordered lexer matchers.
func (d *Dialect) LexMatchers() []LexMatcher { return d.lexer }

// Delimiters returns the statement delimiter kinds.
func (d *Dialect) Delimiters() []token.Kind { return d.delimiters }

// IsDelimiter reports whether k delimits statements.
func (d *Dialect) IsDelimiter(k token.Kind) bool {
	for _, x := range d.delimiters {
		if x == k {
			return true
		}
	}
	return false
}

// Rule resolves a grammar rule, most-derived definition first. An undefined
// rule is a *ConfigurationError; it is reported at first use so rules may
// reference each other in any order.
func (d *Dialect) Rule(name string) (Rule, error) {
	if r, ok := d.resolved.Load(name); ok {
		return r.(Rule), nil
	}
	r, err := d.resolveFrom(0, name)
	if err != nil {
		return Rule{}, err
	}
	d.resolved.Store(name, r)
	return r, nil
}

func (d *Dialect) resolveFrom(start int, name string) (Rule, error) {
	for i := start; i < len(d.levels); i++ {
		r, ok := d.levels[i].rules[name]
		if !ok {
			continue
		}
		if !r.Extends {
			return r, nil
		}
		base, err := d.resolveFrom(i+1, name)
		if errors.Is(err, ErrUndefinedRule) {
			// nothing to extend
			return Rule{Type: r.Type, Grammar: r.Grammar}, nil
		}
		if err != nil {
			return Rule{}, err
		}
		return Rule{Type: firstNonEmpty(r.Type, base.Type), Grammar: mergeOneOf(r.Grammar, base.Grammar)}, nil
	}
	return Rule{}, configErr(d.name, name, ErrUndefinedRule, "searched "+strings.Join(d.Lineage(), " -> "))
}

func mergeOneOf(ext, base grammar.Node) grammar.Node {
	options := append([]grammar.Node(nil), ext.(*grammar.OneOf).Options...)
	if b, ok := base.(*grammar.OneOf); ok {
		options = append(options, b.Options...)
	} else {
		options = append(options, base)
	}
	return grammar.One(options...)
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// RuleNames returns every rule name visible in this dialect, sorted.
func (d *Dialect) RuleNames() []string {
	seen := map[string]struct{}{}
	for _, l := range d.levels {
		for name := range l.rules {
			seen[name] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// ValidateFrom resolves root and every rule transitively referenced from it.
func (d *Dialect) ValidateFrom(root string) error {
	visited := map[string]bool{}
	queue := []string{root}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if visited[name] {
			continue
		}
		visited[name] = true
		r, err := d.Rule(name)
		if err != nil {
			return err
		}
		queue = append(queue, grammar.Refs(r.Grammar)...)
	}
	return nil
}
