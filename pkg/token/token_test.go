package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	for k := Invalid + 1; k < maxKind; k++ {
		name := k.String()
		assert.NotEmpty(t, name, "kind %d has no name", k)

		back, ok := KindFromString(name)
		assert.True(t, ok)
		assert.Equal(t, k, back)
	}
	assert.Equal(t, "unknown", Kind(250).String())
}

func TestKindIsCode(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{Keyword, true},
		{Identifier, true},
		{Comma, true},
		{Unparsable, true},
		{Whitespace, false},
		{Newline, false},
		{Comment, false},
		{Invalid, false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.IsCode())
		})
	}
}

func TestBrackets(t *testing.T) {
	assert.Equal(t, CloseParen, OpenParen.Closer())
	assert.Equal(t, CloseBracket, OpenBracket.Closer())
	assert.Equal(t, Invalid, Comma.Closer())
	assert.True(t, OpenParen.IsOpen())
	assert.True(t, CloseBracket.IsClose())
}

func TestCommentBody(t *testing.T) {
	c := NewComment("-- noqa: LT01", Span{})
	assert.True(t, c.IsLineComment())
	assert.Equal(t, "noqa: LT01", c.Body())

	b := NewComment("/* hello */", Span{})
	assert.True(t, b.IsBlockComment())
	assert.Equal(t, "hello", b.Body())
}
