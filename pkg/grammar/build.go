package grammar

import (
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Seq builds a strict Sequence.
func Seq(elements ...Node) *Sequence {
	return &Sequence{Elements: elements}
}

// GreedySeq builds a Sequence that recovers once its first element matched.
func GreedySeq(terminators []Node, elements ...Node) *Sequence {
	return &Sequence{Elements: elements, Mode: GreedyOnceStarted, Terminators: terminators}
}

// One builds an ordered choice.
func One(options ...Node) *OneOf {
	return &OneOf{Options: options}
}

// Opt makes n optional. Several nodes are wrapped in a Sequence.
func Opt(n ...Node) *Optional {
	if len(n) == 1 {
		return &Optional{Node: n[0]}
	}
	return &Optional{Node: Seq(n...)}
}

// ZeroOrMore repeats n any number of times.
func ZeroOrMore(n Node) *Repeat {
	return &Repeat{Node: n}
}

// OneOrMore repeats n at least once.
func OneOrMore(n Node) *Repeat {
	return &Repeat{Node: n, Min: 1}
}

// AnyNumberOf matches any of options repeatedly, between lo and hi times.
func AnyNumberOf(lo, hi int, options ...Node) *Repeat {
	var n Node
	if len(options) == 1 {
		n = options[0]
	} else {
		n = One(options...)
	}
	return &Repeat{Node: n, Min: lo, Max: hi}
}

// Parens wraps n in round brackets. Several nodes are wrapped in a Sequence.
func Parens(n ...Node) *Bracketed {
	var inner Node
	if len(n) == 1 {
		inner = n[0]
	} else {
		inner = Seq(n...)
	}
	return &Bracketed{Node: inner, Open: token.OpenParen, Close: token.CloseParen}
}

// Square wraps n in square brackets.
func Square(n Node) *Bracketed {
	return &Bracketed{Node: n, Open: token.OpenBracket, Close: token.CloseBracket}
}

// CommaList is a comma-delimited list with at least one element.
func CommaList(n Node) *Delimited {
	return &Delimited{Node: n, Delimiter: Sym(token.Comma), Min: 1}
}

// R references a dialect rule.
func R(name string) *Ref {
	return &Ref{Name: name}
}

// Kw matches one keyword, or a sequence of keywords for multi-word forms
// like "GROUP BY".
func Kw(words ...string) Node {
	if len(words) == 1 {
		fields := strings.Fields(words[0])
		if len(fields) == 1 {
			return &Keyword{Word: strings.ToUpper(fields[0])}
		}
		words = fields
	}
	elems := make([]Node, len(words))
	for i, w := range words {
		elems[i] = &Keyword{Word: strings.ToUpper(w)}
	}
	return Seq(elems...)
}

// Sym matches a raw kind.
func Sym(kind token.Kind) *Symbol {
	return &Symbol{Kind: kind}
}

// Op matches a raw segment of kind with exact text.
func Op(kind token.Kind, text string) *Symbol {
	return &Symbol{Kind: kind, Text: text}
}

// Ident matches an identifier.
func Ident() *Identifier {
	return &Identifier{}
}

// Tok matches any raw segment of the kinds.
func Tok(kinds ...token.Kind) *TypedToken {
	return &TypedToken{Kinds: kinds}
}

// Indent and Dedent emit layout markers.
var (
	Indent Node = &Meta{Kind: segment.Indent}
	Dedent Node = &Meta{Kind: segment.Dedent}
)

// Never matches nothing.
var Never Node = &Nothing{}
