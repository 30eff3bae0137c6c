// Package dialect provides the dialect registry: named grammar and keyword
// definitions composed by inheritance.
//
// A dialect stores only its differences from its parent. Looking up a rule or
// the keyword sets walks the parent chain, and the most-derived definition
// wins. Resolution is plain data, so a dialect can be tested in isolation by
// building a Registry with just the dialects a test needs.
package dialect

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Rule is a named grammar rule.
type Rule struct {
	// Type names the composite segment produced when the rule matches. Empty
	// makes the rule transparent: its children are spliced into the caller.
	Type    string
	Grammar grammar.Node
	// Extends prepends this rule's alternatives to the parent's instead of
	// replacing them. Only valid when Grammar is a *grammar.OneOf.
	Extends bool
}

// LexMatcher recognises one kind of raw segment.
type LexMatcher struct {
	Name string
	Kind token.Kind
	// Literal, when set, is matched exactly and Pattern is ignored.
	Literal string
	Pattern *regexp.Regexp
	// Word marks matchers whose output is classified against the keyword
	// sets: keywords become token.Keyword, the rest keep Kind.
	Word bool
}

// Match returns the length of the match at the start of s, or 0.
func (m LexMatcher) Match(s string) int {
	if m.Literal != "" {
		if strings.HasPrefix(s, m.Literal) {
			return len(m.Literal)
		}
		return 0
	}
	if m.Pattern == nil {
		return 0
	}
	loc := m.Pattern.FindStringIndex(s)
	if loc == nil || loc[0] != 0 {
		return 0
	}
	return loc[1]
}

// Literal builds a matcher for fixed text.
func Literal(name string, kind token.Kind, text string) LexMatcher {
	return LexMatcher{Name: name, Kind: kind, Literal: text}
}

// Pattern builds a matcher for a regular expression. The expression is
// anchored at the current lexer offset.
func Pattern(name string, kind token.Kind, expr string) LexMatcher {
	return LexMatcher{Name: name, Kind: kind, Pattern: regexp.MustCompile(`^(?:` + expr + `)`)}
}

// WordPattern is Pattern for identifier-like words subject to keyword lookup.
func WordPattern(name string, expr string) LexMatcher {
	m := Pattern(name, token.Identifier, expr)
	m.Word = true
	return m
}

// ---------- Definition ----------

type lexOpKind uint8

const (
	lexPatch lexOpKind = iota
	lexInsertBefore
	lexRemove
)

type lexOp struct {
	kind    lexOpKind
	before  string
	matcher LexMatcher
}

// Definition is one dialect's difference from its parent.
type Definition struct {
	Name   string
	Parent string

	rules            map[string]Rule
	reservedAdd      []string
	reservedRemove   []string
	unreservedAdd    []string
	unreservedRemove []string
	lexOps           []lexOp
	delimiters       []token.Kind
}

func newDefinition(name, parent string) *Definition {
	return &Definition{
		Name:   strings.ToLower(name),
		Parent: strings.ToLower(parent),
		rules:  make(map[string]Rule),
	}
}

// clone copies the definition so the registry owns its state.
func (d *Definition) clone() *Definition {
	out := newDefinition(d.Name, d.Parent)
	for k, v := range d.rules {
		out.rules[k] = v
	}
	out.reservedAdd = append([]string(nil), d.reservedAdd...)
	out.reservedRemove = append([]string(nil), d.reservedRemove...)
	out.unreservedAdd = append([]string(nil), d.unreservedAdd...)
	out.unreservedRemove = append([]string(nil), d.unreservedRemove...)
	out.lexOps = append([]lexOp(nil), d.lexOps...)
	out.delimiters = append([]token.Kind(nil), d.delimiters...)
	return out
}

// ---------- Builder ----------

// Builder assembles a Definition fluently.
type Builder struct {
	def *Definition
}

// NewDialect starts a root dialect definition.
func NewDialect(name string) *Builder {
	return &Builder{def: newDefinition(name, "")}
}

// Extend starts a dialect inheriting from parent.
func Extend(name, parent string) *Builder {
	return &Builder{def: newDefinition(name, parent)}
}

// Reserved adds reserved keywords.
func (b *Builder) Reserved(words ...string) *Builder {
	b.def.reservedAdd = append(b.def.reservedAdd, upper(words)...)
	return b
}

// Unreserved adds unreserved keywords.
func (b *Builder) Unreserved(words ...string) *Builder {
	b.def.unreservedAdd = append(b.def.unreservedAdd, upper(words)...)
	return b
}

// RemoveReserved drops inherited reserved keywords.
func (b *Builder) RemoveReserved(words ...string) *Builder {
	b.def.reservedRemove = append(b.def.reservedRemove, upper(words)...)
	return b
}

// RemoveUnreserved drops inherited unreserved keywords.
func (b *Builder) RemoveUnreserved(words ...string) *Builder {
	b.def.unreservedRemove = append(b.def.unreservedRemove, upper(words)...)
	return b
}

// Rule defines or overrides a grammar rule.
func (b *Builder) Rule(name, typ string, g grammar.Node) *Builder {
	b.def.rules[name] = Rule{Type: typ, Grammar: g}
	return b
}

// ExtendRule prepends alternatives to an inherited OneOf rule.
func (b *Builder) ExtendRule(name string, options ...grammar.Node) *Builder {
	b.def.rules[name] = Rule{Grammar: grammar.One(options...), Extends: true}
	return b
}

// Lexer adds or replaces (by name) lexer matchers, in order.
func (b *Builder) Lexer(matchers ...LexMatcher) *Builder {
	for _, m := range matchers {
		b.def.lexOps = append(b.def.lexOps, lexOp{kind: lexPatch, matcher: m})
	}
	return b
}

// LexerBefore inserts a matcher ahead of an inherited one.
func (b *Builder) LexerBefore(before string, m LexMatcher) *Builder {
	b.def.lexOps = append(b.def.lexOps, lexOp{kind: lexInsertBefore, before: before, matcher: m})
	return b
}

// RemoveLexer drops an inherited matcher.
func (b *Builder) RemoveLexer(name string) *Builder {
	b.def.lexOps = append(b.def.lexOps, lexOp{kind: lexRemove, matcher: LexMatcher{Name: name}})
	return b
}

// Delimiters sets the statement delimiter kinds. Parse recovery resumes after
// these at bracket depth zero.
func (b *Builder) Delimiters(kinds ...token.Kind) *Builder {
	b.def.delimiters = kinds
	return b
}

// Build returns the definition.
func (b *Builder) Build() *Definition {
	return b.def
}

func upper(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToUpper(w)
	}
	return out
}
