package token

import "strings"

// CommentKind distinguishes line vs block comments.
type CommentKind int

// Comment kinds.
const (
	LineComment  CommentKind = iota // -- comment
	BlockComment                    // /* comment */
)

// CommentText is a SQL comment with its position.
type CommentText struct {
	Kind CommentKind
	Text string // includes delimiters (-- or /* */)
	Span Span
}

// NewComment classifies raw comment text.
func NewComment(text string, span Span) CommentText {
	kind := LineComment
	if strings.HasPrefix(text, "/*") {
		kind = BlockComment
	}
	return CommentText{Kind: kind, Text: text, Span: span}
}

// IsLineComment returns true if this is a line comment.
func (c *CommentText) IsLineComment() bool {
	return c.Kind == LineComment
}

// IsBlockComment returns true if this is a block comment.
func (c *CommentText) IsBlockComment() bool {
	return c.Kind == BlockComment
}

// Body returns the comment text without delimiters, trimmed.
func (c *CommentText) Body() string {
	t := c.Text
	switch c.Kind {
	case BlockComment:
		t = strings.TrimPrefix(t, "/*")
		t = strings.TrimSuffix(t, "*/")
	default:
		t = strings.TrimPrefix(t, "--")
		t = strings.TrimPrefix(t, "#")
	}
	return strings.TrimSpace(t)
}
