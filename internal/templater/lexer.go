package templater

import (
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/leaplint/pkg/token"
)

// tokenType identifies a template token.
type tokenType int

const (
	tokenText    tokenType = iota // literal SQL
	tokenExpr                     // {{ expr }}
	tokenStmt                     // {* stmt *}
	tokenComment                  // {# comment #}
	tokenEOF
)

func (t tokenType) String() string {
	switch t {
	case tokenText:
		return "TEXT"
	case tokenExpr:
		return "EXPR"
	case tokenStmt:
		return "STMT"
	case tokenComment:
		return "COMMENT"
	case tokenEOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

type delims struct {
	open, close string
	kind        tokenType
	what        string
}

var tagDelims = []delims{
	{"{{", "}}", tokenExpr, "expression"},
	{"{*", "*}", tokenStmt, "statement"},
	{"{#", "#}", tokenComment, "comment"},
}

// lexToken is one template token. Start and End are raw byte offsets of
// the whole token, delimiters included; Value is the trimmed tag body or
// the literal text.
type lexToken struct {
	Type  tokenType
	Value string
	Start int
	End   int
	Pos   token.Position
}

// lexer splits raw template source into text and tags.
type lexer struct {
	input string
	pos   int
	line  int
	col   int
	start token.Position
}

func newLexer(input string) *lexer {
	return &lexer{input: input, line: 1, col: 1}
}

// tokenize returns every token, ending with tokenEOF.
func (l *lexer) tokenize() ([]lexToken, error) {
	var tokens []lexToken
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == tokenEOF {
			return tokens, nil
		}
	}
}

func (l *lexer) next() (lexToken, error) {
	l.mark()
	if l.pos >= len(l.input) {
		return l.emit(tokenEOF, l.pos, ""), nil
	}
	for _, d := range tagDelims {
		if strings.HasPrefix(l.input[l.pos:], d.open) {
			return l.scanTag(d)
		}
	}
	return l.scanText(), nil
}

func (l *lexer) atTag() bool {
	for _, d := range tagDelims {
		if strings.HasPrefix(l.input[l.pos:], d.open) {
			return true
		}
	}
	return false
}

func (l *lexer) scanText() lexToken {
	start := l.pos
	for l.pos < len(l.input) && !l.atTag() {
		l.advance()
	}
	return l.emit(tokenText, start, l.input[start:l.pos])
}

// scanTag reads one tag. Braces are counted inside expressions so dict
// literals can contain "}}".
func (l *lexer) scanTag(d delims) (lexToken, error) {
	start := l.pos
	l.advanceN(len(d.open))
	bodyStart := l.pos
	depth := 0

	for l.pos < len(l.input) {
		if depth == 0 && strings.HasPrefix(l.input[l.pos:], d.close) {
			body := strings.TrimSpace(l.input[bodyStart:l.pos])
			l.advanceN(len(d.close))
			return l.emit(d.kind, start, body), nil
		}
		if d.kind == tokenExpr {
			switch l.peek() {
			case '{':
				depth++
			case '}':
				if depth > 0 {
					depth--
				}
			}
		}
		l.advance()
	}
	return lexToken{}, newError(KindSyntax, l.start, "unclosed %s: missing '%s'", d.what, d.close)
}

func (l *lexer) emit(t tokenType, start int, value string) lexToken {
	return lexToken{Type: t, Value: value, Start: start, End: l.pos, Pos: l.start}
}

func (l *lexer) mark() {
	l.start = token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

func (l *lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

// advanceN skips n bytes of ASCII delimiter.
func (l *lexer) advanceN(n int) {
	l.pos += n
	l.col += n
}
