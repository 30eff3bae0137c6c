package templater

import "github.com/leapstack-labs/leaplint/pkg/token"

// node is a parsed template construct. Every node knows the raw byte range
// it was parsed from; rendering turns those ranges into source slices.
type node interface {
	rawSpan() (start, end int)
}

type span struct {
	Start, End int
}

func (s span) rawSpan() (int, int) { return s.Start, s.End }

// textNode is literal SQL.
type textNode struct {
	span
	Text string
}

// exprNode is a {{ expr }} tag.
type exprNode struct {
	span
	Expr string
	Pos  token.Position
}

// commentNode is a {# ... #} tag. It produces no output.
type commentNode struct {
	span
}

// forBlock is {* for x in items *} ... {* endfor *}.
type forBlock struct {
	span
	Vars []string
	Iter string
	Body []node
	Pos  token.Position
}

// ifBlock is {* if *} ... [{* elif *} ...] [{* else *} ...] {* endif *}.
type ifBlock struct {
	span
	Branches []branch
	// EndTag is the raw range of {* endif *}.
	EndTag span
}

// branch is one arm of an if block. Tag is the raw range of the statement
// that opens it. Else branches have no condition.
type branch struct {
	Tag    span
	Cond   string
	IsElse bool
	Body   []node
	Pos    token.Position
}

// stmtKind identifies a {* statement *}.
type stmtKind int

const (
	stmtUnknown stmtKind = iota
	stmtFor
	stmtEndFor
	stmtIf
	stmtElif
	stmtElse
	stmtEndIf
)

func (k stmtKind) String() string {
	switch k {
	case stmtFor:
		return "for"
	case stmtEndFor:
		return "endfor"
	case stmtIf:
		return "if"
	case stmtElif:
		return "elif"
	case stmtElse:
		return "else"
	case stmtEndIf:
		return "endif"
	default:
		return "unknown"
	}
}
