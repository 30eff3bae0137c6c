package casing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyle(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"SELECT", Upper},
		{"select", Lower},
		{"Select", Capitalise},
		{"SeLeCt", ""},
		{"A", Upper},
		{"<>", ""},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, Style(tt.word))
		})
	}
}

func TestConvert(t *testing.T) {
	assert.Equal(t, "GROUP", Convert("group", Upper))
	assert.Equal(t, "group", Convert("GROUP", Lower))
	assert.Equal(t, "Group", Convert("gROUP", Capitalise))
	assert.Equal(t, "gROUP", Convert("gROUP", Consistent))
}

func TestMatch(t *testing.T) {
	assert.Equal(t, "coalesce", Match("COALESCE", "ifnull"))
	assert.Equal(t, "Coalesce", Match("COALESCE", "Nvl"))
	assert.Equal(t, "COALESCE", Match("COALESCE", "IfNuLl"))
}
