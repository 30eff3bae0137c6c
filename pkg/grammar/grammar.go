// Package grammar describes how token sequences form SQL constructs.
//
// Grammar nodes are plain data: a closed set of variants that the parser
// dispatches on with a type switch. They hold no parse state, so one grammar
// graph is shared by every parse of every dialect that inherits it.
package grammar

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Node is a grammar node. The set of implementations is closed.
type Node interface {
	fmt.Stringer
	node()
}

// Mode controls how a Sequence reacts to a failing element.
type Mode uint8

const (
	// Strict sequences fail as a whole when any required element fails.
	Strict Mode = iota
	// GreedyOnceStarted sequences succeed once their first element matched:
	// a failing tail is wrapped as unparsable up to the next terminator.
	GreedyOnceStarted
)

// Sequence matches its elements in order.
type Sequence struct {
	Elements    []Node
	Mode        Mode
	Terminators []Node
}

// OneOf tries alternatives in order; the first match wins.
type OneOf struct {
	Options []Node
}

// Optional matches its node or nothing.
type Optional struct {
	Node Node
}

// Repeat matches Node between Min and Max times, greedily. Max 0 is unbounded.
type Repeat struct {
	Node Node
	Min  int
	Max  int
}

// Bracketed matches Open, the inner node, then the Close that pairs with Open.
type Bracketed struct {
	Node  Node
	Open  token.Kind
	Close token.Kind
}

// Delimited matches a list of Node separated by Delimiter.
type Delimited struct {
	Node          Node
	Delimiter     Node
	Min           int
	AllowTrailing bool
}

// Ref names a rule resolved through the active dialect.
type Ref struct {
	Name string
}

// Anything consumes every segment up to a terminator at bracket depth zero.
type Anything struct {
	Terminators []Node
}

// Keyword matches a keyword segment with the given text, case-insensitively.
type Keyword struct {
	Word string
}

// Symbol matches a raw segment of Kind, optionally with exact Text.
type Symbol struct {
	Kind token.Kind
	Text string
}

// Identifier matches identifiers, quoted identifiers and unreserved keywords.
type Identifier struct{}

// TypedToken matches any raw segment of one of the kinds.
type TypedToken struct {
	Kinds []token.Kind
}

// Nothing never matches. Dialects use it to switch a rule off.
type Nothing struct{}

// Meta emits a zero-width Indent or Dedent segment.
type Meta struct {
	Kind segment.MetaKind
}

func (*Sequence) node()   {}
func (*OneOf) node()      {}
func (*Optional) node()   {}
func (*Repeat) node()     {}
func (*Bracketed) node()  {}
func (*Delimited) node()  {}
func (*Ref) node()        {}
func (*Anything) node()   {}
func (*Keyword) node()    {}
func (*Symbol) node()     {}
func (*Identifier) node() {}
func (*TypedToken) node() {}
func (*Nothing) node()    {}
func (*Meta) node()       {}

// ---------- String ----------

func join(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}

func (s *Sequence) String() string  { return "Sequence(" + join(s.Elements) + ")" }
func (o *OneOf) String() string     { return "OneOf(" + join(o.Options) + ")" }
func (o *Optional) String() string  { return "Optional(" + o.Node.String() + ")" }
func (b *Bracketed) String() string { return "Bracketed(" + b.Node.String() + ")" }
func (d *Delimited) String() string { return "Delimited(" + d.Node.String() + ")" }
func (r *Ref) String() string       { return "Ref(" + r.Name + ")" }
func (*Anything) String() string    { return "Anything()" }
func (k *Keyword) String() string   { return strings.ToUpper(k.Word) }
func (*Identifier) String() string  { return "Identifier()" }
func (*Nothing) String() string     { return "Nothing()" }
func (m *Meta) String() string      { return m.Kind.String() }

func (r *Repeat) String() string {
	return fmt.Sprintf("Repeat[%d,%d](%s)", r.Min, r.Max, r.Node)
}

func (s *Symbol) String() string {
	if s.Text != "" {
		return fmt.Sprintf("%q", s.Text)
	}
	return s.Kind.String()
}

func (t *TypedToken) String() string {
	parts := make([]string, len(t.Kinds))
	for i, k := range t.Kinds {
		parts[i] = k.String()
	}
	return "Token(" + strings.Join(parts, "|") + ")"
}

// ---------- Traversal ----------

// Walk calls fn for n and every node reachable from it without following
// Refs. It stops descending where fn returns false.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch v := n.(type) {
	case *Sequence:
		for _, e := range v.Elements {
			Walk(e, fn)
		}
		for _, e := range v.Terminators {
			Walk(e, fn)
		}
	case *OneOf:
		for _, e := range v.Options {
			Walk(e, fn)
		}
	case *Optional:
		Walk(v.Node, fn)
	case *Repeat:
		Walk(v.Node, fn)
	case *Bracketed:
		Walk(v.Node, fn)
	case *Delimited:
		Walk(v.Node, fn)
		Walk(v.Delimiter, fn)
	case *Anything:
		for _, e := range v.Terminators {
			Walk(e, fn)
		}
	case *Ref, *Keyword, *Symbol, *Identifier, *TypedToken, *Nothing, *Meta:
	default:
		panic(fmt.Sprintf("grammar: unknown node %T", n))
	}
}

// Refs returns the rule names referenced directly by n, in first-seen order.
func Refs(n Node) []string {
	seen := map[string]bool{}
	var out []string
	Walk(n, func(x Node) bool {
		if r, ok := x.(*Ref); ok && !seen[r.Name] {
			seen[r.Name] = true
			out = append(out, r.Name)
		}
		return true
	})
	return out
}

// Keywords returns the keyword words used by n, upper-cased.
func Keywords(n Node) []string {
	seen := map[string]bool{}
	var out []string
	Walk(n, func(x Node) bool {
		if k, ok := x.(*Keyword); ok {
			w := strings.ToUpper(k.Word)
			if !seen[w] {
				seen[w] = true
				out = append(out, w)
			}
		}
		return true
	})
	return out
}
