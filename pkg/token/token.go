// Package token defines the raw segment kinds produced by the lexer and the
// source positions they carry.
//
// Kinds are deliberately coarse. The lexer decides only what a run of
// characters is (a word, a number, a quote, some whitespace); what it means is
// decided by the dialect grammar, so the same kind list serves every dialect.
package token

// Kind classifies a raw segment.
type Kind uint8

const (
	// Invalid is the zero Kind and is never produced by the lexer.
	Invalid Kind = iota

	Keyword          // select, from, qualify (dialect dependent)
	Identifier       // customers, t1
	QuotedIdentifier // "Customers", `t1`
	NumericLiteral   // 42, 4.2e1
	StringLiteral    // 'abc', $$abc$$
	Operator         // + - / || ::
	Comparison       // = != <> < > <= >=
	Comma            // ,
	Dot              // .
	OpenParen        // (
	CloseParen       // )
	OpenBracket      // [
	CloseBracket     // ]
	Semicolon        // ;
	Star             // *
	Colon            // :
	Parameter        // ?, $1, :name
	Whitespace       // spaces and tabs
	Newline          // \n, \r\n
	Comment          // -- line, /* block */
	Unparsable       // a character no lexer matcher accepts

	maxKind
)

var kindNames = [maxKind]string{
	Invalid:          "invalid",
	Keyword:          "keyword",
	Identifier:       "identifier",
	QuotedIdentifier: "quoted_identifier",
	NumericLiteral:   "numeric_literal",
	StringLiteral:    "string_literal",
	Operator:         "operator",
	Comparison:       "comparison_operator",
	Comma:            "comma",
	Dot:              "dot",
	OpenParen:        "start_bracket",
	CloseParen:       "end_bracket",
	OpenBracket:      "start_square_bracket",
	CloseBracket:     "end_square_bracket",
	Semicolon:        "statement_terminator",
	Star:             "star",
	Colon:            "colon",
	Parameter:        "parameter",
	Whitespace:       "whitespace",
	Newline:          "newline",
	Comment:          "comment",
	Unparsable:       "unparsable",
}

// String returns the segment type name used for raw segments of this kind.
func (k Kind) String() string {
	if k < maxKind {
		return kindNames[k]
	}
	return "unknown"
}

// KindFromString is the inverse of String. Used by config and plugin code that
// names kinds textually.
func KindFromString(s string) (Kind, bool) {
	for k := Invalid + 1; k < maxKind; k++ {
		if kindNames[k] == s {
			return k, true
		}
	}
	return Invalid, false
}

// IsCode reports whether segments of this kind carry meaning for the grammar.
// Whitespace, newlines and comments are non-code and are skipped by matchers.
func (k Kind) IsCode() bool {
	switch k {
	case Whitespace, Newline, Comment:
		return false
	default:
		return k != Invalid
	}
}

// IsWhitespace reports whether k is whitespace or a newline.
func (k Kind) IsWhitespace() bool {
	return k == Whitespace || k == Newline
}

// IsLiteral reports whether k is a literal value.
func (k Kind) IsLiteral() bool {
	return k == NumericLiteral || k == StringLiteral
}

// IsOpen reports whether k opens a bracket pair.
func (k Kind) IsOpen() bool {
	return k == OpenParen || k == OpenBracket
}

// IsClose reports whether k closes a bracket pair.
func (k Kind) IsClose() bool {
	return k == CloseParen || k == CloseBracket
}

// Closer returns the closing kind for an opening bracket kind.
func (k Kind) Closer() Kind {
	switch k {
	case OpenParen:
		return CloseParen
	case OpenBracket:
		return CloseBracket
	default:
		return Invalid
	}
}
