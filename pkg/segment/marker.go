package segment

import (
	"github.com/leapstack-labs/leaplint/pkg/source"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// PositionMarker locates a segment in both the raw source and the templated
// text. Raw ranges are monotonically non-decreasing in document order;
// templated ranges may jump when templating reorders or repeats text.
type PositionMarker struct {
	Source    token.Span
	Templated token.Span
	File      *source.File
}

// NewMarker builds a marker for the templated range [start, end) of f.
func NewMarker(f *source.File, start, end int) PositionMarker {
	return PositionMarker{
		Source:    f.RawSpan(start, end),
		Templated: f.TemplatedSpan(start, end),
		File:      f,
	}
}

// IsValid reports whether the marker was produced from a file. Segments
// created by fixes carry no marker until the next parse.
func (m PositionMarker) IsValid() bool {
	return m.File != nil
}

// Line returns the 1-based raw source line.
func (m PositionMarker) Line() int {
	return m.Source.Start.Line
}

// Column returns the 1-based raw source column.
func (m PositionMarker) Column() int {
	return m.Source.Start.Column
}

// Pos returns the raw start position.
func (m PositionMarker) Pos() token.Position {
	return m.Source.Start
}

// IsLiteral reports whether the segment was copied verbatim from the source.
func (m PositionMarker) IsLiteral() bool {
	if m.File == nil {
		return true
	}
	return m.File.IsLiteral(m.Templated.Start.Offset, m.Templated.End.Offset)
}

// Join returns a marker spanning a and b. Invalid markers are ignored.
func Join(a, b PositionMarker) PositionMarker {
	switch {
	case !a.IsValid():
		return b
	case !b.IsValid():
		return a
	}
	out := a
	if b.Source.End.Offset > out.Source.End.Offset {
		out.Source.End = b.Source.End
	}
	if b.Templated.End.Offset > out.Templated.End.Offset {
		out.Templated.End = b.Templated.End
	}
	return out
}

// Start returns a zero-width marker at the start of m.
func (m PositionMarker) Start() PositionMarker {
	m.Source.End = m.Source.Start
	m.Templated.End = m.Templated.Start
	return m
}

// End returns a zero-width marker at the end of m.
func (m PositionMarker) End() PositionMarker {
	m.Source.Start = m.Source.End
	m.Templated.Start = m.Templated.End
	return m
}
