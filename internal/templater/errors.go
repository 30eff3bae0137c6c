package templater

import (
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/token"
)

// ErrorKind says which stage of templating failed.
type ErrorKind int

// Error kinds.
const (
	// KindSyntax: an unclosed tag or a malformed statement.
	KindSyntax ErrorKind = iota
	// KindBlock: a block statement without its counterpart.
	KindBlock
	// KindRender: an expression failed to evaluate.
	KindRender
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindBlock:
		return "block"
	case KindRender:
		return "render"
	default:
		return "unknown"
	}
}

// Error is a templating failure at a raw source position.
type Error struct {
	Kind ErrorKind
	Pos  token.Position
	Msg  string
	Err  error
}

func newError(kind ErrorKind, pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("template %s error at %d:%d: %s", e.Kind, e.Pos.Line, e.Pos.Column, e.Msg)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Position returns where in the raw source the error occurred.
func (e *Error) Position() token.Position { return e.Pos }

func unmatched(pos token.Position, kind stmtKind) *Error {
	var msg string
	switch kind {
	case stmtFor:
		msg = "unclosed 'for' block (missing 'endfor')"
	case stmtIf:
		msg = "unclosed 'if' block (missing 'endif')"
	case stmtEndFor:
		msg = "'endfor' without matching 'for'"
	case stmtEndIf:
		msg = "'endif' without matching 'if'"
	case stmtElse:
		msg = "'else' without matching 'if'"
	case stmtElif:
		msg = "'elif' without matching 'if'"
	default:
		msg = fmt.Sprintf("unmatched block: %s", kind)
	}
	return &Error{Kind: KindBlock, Pos: pos, Msg: msg}
}
