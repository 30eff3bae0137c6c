package parser

import (
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// ParseError describes a span of input the grammar could not match. Parsing
// does not stop at a ParseError; the span is kept in the tree as an
// "unparsable" composite.
type ParseError struct {
	Pos     token.Position
	Message string
	Segment *segment.Composite
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// UnparsableType is the segment type of unmatched spans.
const UnparsableType = "unparsable"

func newParseError(u *segment.Composite) *ParseError {
	pos := u.Marker().Pos()
	if first := segment.FirstCode(u); first != nil {
		pos = first.Marker().Pos()
	}
	return &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf("found unparsable section: %q", preview(u.Raw())),
		Segment: u,
	}
}

func preview(s string) string {
	const limit = 40
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
