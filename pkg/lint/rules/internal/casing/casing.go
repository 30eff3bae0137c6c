// Package casing classifies and converts the letter case of SQL words.
package casing

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Policies a word's case can follow.
const (
	Consistent = "consistent"
	Upper      = "upper"
	Lower      = "lower"
	Capitalise = "capitalise"
)

// Policies lists the values of a capitalisation_policy option.
var Policies = []string{Consistent, Upper, Lower, Capitalise}

// Style returns the policy word already follows, or "" when it follows none
// or has no letters. Upper wins over Capitalise for single letters.
func Style(word string) string {
	up := Convert(word, Upper)
	low := Convert(word, Lower)
	switch {
	case up == low:
		return ""
	case word == up:
		return Upper
	case word == low:
		return Lower
	case word == Convert(word, Capitalise):
		return Capitalise
	default:
		return ""
	}
}

// Convert rewrites word to follow policy. Consistent and unknown policies
// leave it unchanged.
func Convert(word, policy string) string {
	// Casers keep state, so each call gets its own.
	switch policy {
	case Upper:
		return cases.Upper(language.Und).String(word)
	case Lower:
		return cases.Lower(language.Und).String(word)
	case Capitalise:
		return cases.Title(language.Und).String(word)
	default:
		return word
	}
}

// Describe names a policy for messages, e.g. "upper case".
func Describe(policy string) string {
	switch policy {
	case Upper:
		return "upper case"
	case Lower:
		return "lower case"
	case Capitalise:
		return "capitalised"
	default:
		return policy
	}
}

// Match converts word to the style of example, or returns word unchanged
// when example has no style.
func Match(word, example string) string {
	if s := Style(example); s != "" {
		return Convert(word, s)
	}
	return word
}
