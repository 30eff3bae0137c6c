// Package source holds the mapping between raw source text and the templated
// text the lexer sees.
//
// A File is produced by a Templater. For plain SQL it is the identity mapping;
// for templated SQL it records which templated byte ranges came from literal
// source and which were produced by template tags.
package source

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/leapstack-labs/leaplint/pkg/token"
)

// SliceKind describes where a run of templated text came from.
type SliceKind uint8

// Slice kinds.
const (
	SliceLiteral   SliceKind = iota // copied verbatim from the raw source
	SliceTemplated                  // produced by evaluating a template tag
	SliceComment                    // template construct with no output
)

func (k SliceKind) String() string {
	switch k {
	case SliceLiteral:
		return "literal"
	case SliceTemplated:
		return "templated"
	case SliceComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Slice maps a raw byte range to the templated byte range it produced.
type Slice struct {
	Kind           SliceKind
	RawStart       int
	RawEnd         int
	TemplatedStart int
	TemplatedEnd   int
}

// File is one source file after templating.
type File struct {
	Path          string
	RawText       string
	TemplatedText string
	Slices        []Slice

	rawLines       []int
	templatedLines []int
}

// NewLiteralFile returns a File whose templated text is the raw text.
func NewLiteralFile(path, text string) *File {
	f := &File{
		Path:          path,
		RawText:       text,
		TemplatedText: text,
	}
	if text != "" {
		f.Slices = []Slice{{
			Kind:         SliceLiteral,
			RawEnd:       len(text),
			TemplatedEnd: len(text),
		}}
	}
	f.index()
	return f
}

// NewFile builds a File from templater output. Slices must be ordered and
// cover both texts without gaps.
func NewFile(path, raw, templated string, slices []Slice) (*File, error) {
	rawPos, tmplPos := 0, 0
	for i, s := range slices {
		if s.RawStart != rawPos || s.TemplatedStart != tmplPos {
			return nil, fmt.Errorf("slice %d of %s is not contiguous (raw %d, templated %d)", i, path, s.RawStart, s.TemplatedStart)
		}
		if s.RawEnd < s.RawStart || s.TemplatedEnd < s.TemplatedStart {
			return nil, fmt.Errorf("slice %d of %s has a negative length", i, path)
		}
		if s.Kind == SliceLiteral && raw[s.RawStart:s.RawEnd] != templated[s.TemplatedStart:s.TemplatedEnd] {
			return nil, fmt.Errorf("literal slice %d of %s differs between raw and templated text", i, path)
		}
		rawPos, tmplPos = s.RawEnd, s.TemplatedEnd
	}
	if rawPos != len(raw) || tmplPos != len(templated) {
		return nil, fmt.Errorf("slices of %s do not cover the whole file", path)
	}
	f := &File{
		Path:          path,
		RawText:       raw,
		TemplatedText: templated,
		Slices:        slices,
	}
	f.index()
	return f, nil
}

func (f *File) index() {
	f.rawLines = lineStarts(f.RawText)
	f.templatedLines = lineStarts(f.TemplatedText)
}

func lineStarts(s string) []int {
	starts := []int{0}
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// IsTemplated reports whether any template tag contributed to the file.
func (f *File) IsTemplated() bool {
	for _, s := range f.Slices {
		if s.Kind != SliceLiteral {
			return true
		}
	}
	return false
}

// sliceAt returns the index of the non-empty slice whose templated range
// contains off, or -1.
func (f *File) sliceAt(off int) int {
	i := sort.Search(len(f.Slices), func(i int) bool {
		return f.Slices[i].TemplatedEnd > off
	})
	for ; i < len(f.Slices); i++ {
		s := f.Slices[i]
		if s.TemplatedStart > off {
			return -1
		}
		if s.TemplatedEnd > s.TemplatedStart {
			return i
		}
	}
	return -1
}

// ToRaw maps a templated offset to raw source. Inside a literal slice the
// mapping is exact and start == end; inside a templated slice the whole raw
// range of the tag is returned.
func (f *File) ToRaw(templatedOffset int) (start, end int) {
	if templatedOffset >= len(f.TemplatedText) {
		return len(f.RawText), len(f.RawText)
	}
	i := f.sliceAt(templatedOffset)
	if i < 0 {
		return len(f.RawText), len(f.RawText)
	}
	s := f.Slices[i]
	if s.Kind == SliceLiteral {
		r := s.RawStart + templatedOffset - s.TemplatedStart
		return r, r
	}
	return s.RawStart, s.RawEnd
}

// RawRange maps a templated range to the raw range that produced it.
func (f *File) RawRange(tStart, tEnd int) (int, int) {
	rs, _ := f.ToRaw(tStart)
	if tEnd <= tStart {
		return rs, rs
	}
	a, b := f.ToRaw(tEnd - 1)
	if a == b {
		return rs, a + 1
	}
	return rs, b
}

// IsLiteral reports whether every byte of the templated range came from
// literal source. A zero-width range is literal when the slice it sits in
// (or the end of the file) is literal.
func (f *File) IsLiteral(tStart, tEnd int) bool {
	if tEnd <= tStart {
		if tStart >= len(f.TemplatedText) {
			return true
		}
		i := f.sliceAt(tStart)
		return i < 0 || f.Slices[i].Kind == SliceLiteral
	}
	for _, s := range f.Slices {
		if s.TemplatedEnd <= tStart || s.TemplatedStart >= tEnd {
			continue
		}
		if s.Kind != SliceLiteral {
			return false
		}
	}
	return true
}

// SliceFor returns the slice containing a templated offset.
func (f *File) SliceFor(templatedOffset int) (Slice, bool) {
	i := f.sliceAt(templatedOffset)
	if i < 0 {
		return Slice{}, false
	}
	return f.Slices[i], true
}

// RawPosition returns the line/column of a raw offset.
func (f *File) RawPosition(offset int) token.Position {
	return position(f.RawText, f.rawLines, offset)
}

// TemplatedPosition returns the line/column of a templated offset.
func (f *File) TemplatedPosition(offset int) token.Position {
	return position(f.TemplatedText, f.templatedLines, offset)
}

func position(text string, lines []int, offset int) token.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	line := sort.Search(len(lines), func(i int) bool { return lines[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return token.Position{
		Line:   line + 1,
		Column: utf8.RuneCountInString(text[lines[line]:offset]) + 1,
		Offset: offset,
	}
}

// RawSpan returns the positioned raw span for a templated range.
func (f *File) RawSpan(tStart, tEnd int) token.Span {
	rs, re := f.RawRange(tStart, tEnd)
	return token.Span{Start: f.RawPosition(rs), End: f.RawPosition(re)}
}

// TemplatedSpan returns the positioned templated span for a range.
func (f *File) TemplatedSpan(tStart, tEnd int) token.Span {
	return token.Span{Start: f.TemplatedPosition(tStart), End: f.TemplatedPosition(tEnd)}
}

// Line returns the raw source text of a 1-based line without its newline.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.rawLines) {
		return ""
	}
	start := f.rawLines[n-1]
	end := len(f.RawText)
	if n < len(f.rawLines) {
		end = f.rawLines[n] - 1
	}
	if end > start && f.RawText[end-1] == '\r' {
		end--
	}
	return f.RawText[start:end]
}

// LineCount returns the number of raw lines.
func (f *File) LineCount() int {
	return len(f.rawLines)
}
