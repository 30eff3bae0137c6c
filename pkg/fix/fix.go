// Package fix applies segment-level edits to a parse tree.
//
// A Fix is only valid against the tree snapshot its anchors were taken from.
// Applying fixes never mutates that tree: Apply builds a new tree and shares
// every subtree no edit touched. It also records the equivalent patches in raw
// source coordinates, which is how fixed text is written back when the file
// was templated.
package fix

import (
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// EditKind says what an edit does relative to its anchor.
type EditKind uint8

// Edit kinds.
const (
	EditCreateBefore EditKind = iota + 1
	EditCreateAfter
	EditReplace
	EditDelete
)

func (k EditKind) String() string {
	switch k {
	case EditCreateBefore:
		return "create_before"
	case EditCreateAfter:
		return "create_after"
	case EditReplace:
		return "replace"
	case EditDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Edit is one change anchored on an existing segment.
type Edit struct {
	Kind     EditKind
	Anchor   segment.ID
	Segments []segment.Segment
}

// Fix is an ordered list of edits that must be applied together.
type Fix struct {
	Description string
	Edits       []Edit
}

// New creates a fix from edits.
func New(description string, edits ...Edit) *Fix {
	return &Fix{Description: description, Edits: edits}
}

// CreateBefore inserts segs immediately before anchor.
func CreateBefore(anchor segment.Segment, segs ...segment.Segment) Edit {
	return Edit{Kind: EditCreateBefore, Anchor: anchor.ID(), Segments: segs}
}

// CreateAfter inserts segs immediately after anchor.
func CreateAfter(anchor segment.Segment, segs ...segment.Segment) Edit {
	return Edit{Kind: EditCreateAfter, Anchor: anchor.ID(), Segments: segs}
}

// Replace swaps anchor for segs.
func Replace(anchor segment.Segment, segs ...segment.Segment) Edit {
	return Edit{Kind: EditReplace, Anchor: anchor.ID(), Segments: segs}
}

// Delete removes anchor.
func Delete(anchor segment.Segment) Edit {
	return Edit{Kind: EditDelete, Anchor: anchor.ID()}
}

// ReplaceRaw replaces a leaf with a leaf of the same kind and new text.
func ReplaceRaw(anchor *segment.Raw, text string) Edit {
	return Replace(anchor, anchor.WithText(text))
}

// InsertWhitespace is CreateAfter with a single whitespace leaf.
func InsertWhitespace(after segment.Segment, text string) Edit {
	return CreateAfter(after, segment.NewDetached(token.Whitespace, text))
}

// Text returns the text the edit writes.
func (e Edit) Text() string {
	var n int
	for _, s := range e.Segments {
		n += len(s.Raw())
	}
	buf := make([]byte, 0, n)
	for _, s := range e.Segments {
		buf = append(buf, s.Raw()...)
	}
	return string(buf)
}

// Anchors returns the distinct anchor IDs of the fix in edit order.
func (f *Fix) Anchors() []segment.ID {
	if f == nil {
		return nil
	}
	seen := make(map[segment.ID]bool, len(f.Edits))
	out := make([]segment.ID, 0, len(f.Edits))
	for _, e := range f.Edits {
		if !seen[e.Anchor] {
			seen[e.Anchor] = true
			out = append(out, e.Anchor)
		}
	}
	return out
}
