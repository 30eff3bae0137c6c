// Package lexer splits templated SQL into raw segments using a dialect's
// matcher table.
//
// Lexing never fails. Text no matcher accepts becomes a one-character
// unparsable segment, so the leaves always concatenate back to the input.
package lexer

import (
	"unicode/utf8"

	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/source"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Lex tokenizes f.TemplatedText with the dialect's matchers.
//
// At each offset the longest match wins; ties go to the matcher declared
// first. Word matches are classified against the keyword sets, so the same
// text can be a keyword in one dialect and an identifier in another.
// Template constructs with no output are emitted as placeholder metas at the
// offset where they sat.
func Lex(f *source.File, d *dialect.Dialect) []segment.Segment {
	text := f.TemplatedText
	matchers := d.LexMatchers()
	placeholders := commentSlices(f)

	out := make([]segment.Segment, 0, len(text)/3+len(placeholders))
	pos := 0
	for pos < len(text) {
		out, placeholders = flushPlaceholders(out, placeholders, f, pos)

		best, bestLen := -1, 0
		for i, m := range matchers {
			if n := m.Match(text[pos:]); n > bestLen {
				best, bestLen = i, n
			}
		}

		if best < 0 {
			_, size := utf8.DecodeRuneInString(text[pos:])
			out = append(out, segment.NewRaw(token.Unparsable, text[pos:pos+size], segment.NewMarker(f, pos, pos+size)))
			pos += size
			continue
		}

		m := matchers[best]
		word := text[pos : pos+bestLen]
		kind := m.Kind
		if m.Word && d.IsKeyword(word) {
			kind = token.Keyword
		}
		out = append(out, segment.NewRaw(kind, word, segment.NewMarker(f, pos, pos+bestLen)))
		pos += bestLen
	}
	out, _ = flushPlaceholders(out, placeholders, f, len(text)+1)
	return out
}

// String lexes a literal (untemplated) string.
func String(sql string, d *dialect.Dialect) []segment.Segment {
	return Lex(source.NewLiteralFile("", sql), d)
}

func commentSlices(f *source.File) []source.Slice {
	var out []source.Slice
	for _, s := range f.Slices {
		if s.Kind == source.SliceComment {
			out = append(out, s)
		}
	}
	return out
}

// flushPlaceholders emits placeholders for comment slices at or before pos.
func flushPlaceholders(out []segment.Segment, pending []source.Slice, f *source.File, pos int) ([]segment.Segment, []source.Slice) {
	for len(pending) > 0 && pending[0].TemplatedStart <= pos {
		s := pending[0]
		pending = pending[1:]
		marker := segment.PositionMarker{
			Source: token.Span{
				Start: f.RawPosition(s.RawStart),
				End:   f.RawPosition(s.RawEnd),
			},
			Templated: f.TemplatedSpan(s.TemplatedStart, s.TemplatedStart),
			File:      f,
		}
		out = append(out, segment.NewPlaceholder(marker, f.RawText[s.RawStart:s.RawEnd], "comment"))
	}
	return out, pending
}
