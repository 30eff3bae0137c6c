// Package segment defines the lossless parse tree.
//
// Every byte of the templated text lives in exactly one leaf. Composite
// segments group leaves under the name of the grammar rule that matched
// them. Segments are immutable: edits produce a new tree, and unchanged
// subtrees may be shared between the old and new tree.
package segment

import (
	"strings"
	"sync/atomic"

	"github.com/leapstack-labs/leaplint/pkg/token"
)

// ID identifies a segment within a process. Fixes address segments by ID.
type ID uint64

var lastID atomic.Uint64

func nextID() ID {
	return ID(lastID.Add(1))
}

// Segment is a node of the parse tree: *Raw, *Composite or *Meta.
type Segment interface {
	ID() ID
	// Type names the segment: the raw kind for leaves, the grammar rule for
	// composites.
	Type() string
	// Raw returns the exact text covered by the segment.
	Raw() string
	Children() []Segment
	Marker() PositionMarker
	IsCode() bool
	IsWhitespace() bool
	IsMeta() bool

	sealed()
}

// ---------- Raw ----------

// Raw is a leaf token.
type Raw struct {
	id     ID
	kind   token.Kind
	text   string
	marker PositionMarker
}

// NewRaw creates a positioned leaf.
func NewRaw(kind token.Kind, text string, marker PositionMarker) *Raw {
	return &Raw{id: nextID(), kind: kind, text: text, marker: marker}
}

// NewDetached creates a leaf with no position, used by fixes.
func NewDetached(kind token.Kind, text string) *Raw {
	return &Raw{id: nextID(), kind: kind, text: text}
}

// Whitespace returns a detached whitespace leaf.
func Whitespace(text string) *Raw {
	return NewDetached(token.Whitespace, text)
}

// Newline returns a detached newline leaf.
func Newline() *Raw {
	return NewDetached(token.Newline, "\n")
}

// Keyword returns a detached keyword leaf.
func Keyword(text string) *Raw {
	return NewDetached(token.Keyword, text)
}

func (r *Raw) ID() ID                 { return r.id }
func (r *Raw) Type() string           { return r.kind.String() }
func (r *Raw) Raw() string            { return r.text }
func (r *Raw) Children() []Segment    { return nil }
func (r *Raw) Marker() PositionMarker { return r.marker }
func (r *Raw) IsCode() bool           { return r.kind.IsCode() }
func (r *Raw) IsWhitespace() bool     { return r.kind.IsWhitespace() }
func (r *Raw) IsMeta() bool           { return false }
func (r *Raw) sealed()                {}

// Kind returns the lexical kind.
func (r *Raw) Kind() token.Kind { return r.kind }

// Upper returns the text upper-cased, for keyword comparison.
func (r *Raw) Upper() string { return strings.ToUpper(r.text) }

// WithText returns a detached copy of r with different text.
func (r *Raw) WithText(text string) *Raw {
	return NewDetached(r.kind, text)
}

// ---------- Composite ----------

// Composite groups child segments under a grammar rule name.
type Composite struct {
	id       ID
	typ      string
	children []Segment
	marker   PositionMarker
}

// NewComposite creates a composite owning a copy of children.
func NewComposite(typ string, children []Segment) *Composite {
	owned := make([]Segment, len(children))
	copy(owned, children)
	c := &Composite{id: nextID(), typ: typ, children: owned}
	for _, ch := range owned {
		c.marker = Join(c.marker, ch.Marker())
	}
	return c
}

func (c *Composite) ID() ID                 { return c.id }
func (c *Composite) Type() string           { return c.typ }
func (c *Composite) Children() []Segment    { return c.children }
func (c *Composite) Marker() PositionMarker { return c.marker }
func (c *Composite) IsMeta() bool           { return false }
func (c *Composite) sealed()                {}

func (c *Composite) Raw() string {
	var b strings.Builder
	for _, ch := range c.children {
		b.WriteString(ch.Raw())
	}
	return b.String()
}

// IsCode is true when any descendant is code.
func (c *Composite) IsCode() bool {
	for _, ch := range c.children {
		if ch.IsCode() {
			return true
		}
	}
	return false
}

// IsWhitespace is true when every child is whitespace.
func (c *Composite) IsWhitespace() bool {
	for _, ch := range c.children {
		if !ch.IsWhitespace() {
			return false
		}
	}
	return len(c.children) > 0
}

// WithChildren returns a new composite of the same type.
func (c *Composite) WithChildren(children []Segment) *Composite {
	return NewComposite(c.typ, children)
}

// ---------- Meta ----------

// MetaKind enumerates zero-width meta segments.
type MetaKind uint8

// Meta kinds.
const (
	Indent      MetaKind = iota + 1 // start of an indented block
	Dedent                          // end of an indented block
	Placeholder                     // template construct with no output
)

func (k MetaKind) String() string {
	switch k {
	case Indent:
		return "indent"
	case Dedent:
		return "dedent"
	case Placeholder:
		return "placeholder"
	default:
		return "meta"
	}
}

// Meta is a zero-width segment. It never holds templated text, so it does
// not affect Raw() or the lossless property. A Placeholder keeps the raw
// template source it stands in for.
type Meta struct {
	id        ID
	kind      MetaKind
	marker    PositionMarker
	source    string
	blockType string
}

// NewMeta creates an indent or dedent marker.
func NewMeta(kind MetaKind, marker PositionMarker) *Meta {
	return &Meta{id: nextID(), kind: kind, marker: marker}
}

// NewPlaceholder creates a placeholder for a template construct.
func NewPlaceholder(marker PositionMarker, source, blockType string) *Meta {
	return &Meta{id: nextID(), kind: Placeholder, marker: marker, source: source, blockType: blockType}
}

func (m *Meta) ID() ID                 { return m.id }
func (m *Meta) Type() string           { return m.kind.String() }
func (m *Meta) Raw() string            { return "" }
func (m *Meta) Children() []Segment    { return nil }
func (m *Meta) Marker() PositionMarker { return m.marker }
func (m *Meta) IsCode() bool           { return false }
func (m *Meta) IsWhitespace() bool     { return false }
func (m *Meta) IsMeta() bool           { return true }
func (m *Meta) sealed()                {}

// Kind returns the meta kind.
func (m *Meta) Kind() MetaKind { return m.kind }

// Source returns the template source of a placeholder.
func (m *Meta) Source() string { return m.source }

// BlockType returns the template block type of a placeholder.
func (m *Meta) BlockType() string { return m.blockType }

// IndentValue is +1 for Indent, -1 for Dedent and 0 otherwise.
func (m *Meta) IndentValue() int {
	switch m.kind {
	case Indent:
		return 1
	case Dedent:
		return -1
	default:
		return 0
	}
}
