package segment

import (
	"fmt"
	"slices"
	"strings"
)

// WalkFunc is called for every segment in document order. parents holds the
// ancestors from the root down to the direct parent; it must not be retained.
// Returning false skips the segment's children.
type WalkFunc func(seg Segment, parents []Segment) bool

// Walk traverses the tree depth-first, top-down, children in document order.
func Walk(root Segment, fn WalkFunc) {
	var parents []Segment
	var visit func(Segment)
	visit = func(s Segment) {
		if !fn(s, parents) {
			return
		}
		children := s.Children()
		if len(children) == 0 {
			return
		}
		parents = append(parents, s)
		for _, ch := range children {
			visit(ch)
		}
		parents = parents[:len(parents)-1]
	}
	visit(root)
}

// Leaves returns raw and meta leaves in document order.
func Leaves(root Segment) []Segment {
	var out []Segment
	Walk(root, func(s Segment, _ []Segment) bool {
		if len(s.Children()) == 0 {
			if _, ok := s.(*Composite); !ok {
				out = append(out, s)
			}
		}
		return true
	})
	return out
}

// RawLeaves returns only the raw leaves in document order.
func RawLeaves(root Segment) []*Raw {
	var out []*Raw
	Walk(root, func(s Segment, _ []Segment) bool {
		if r, ok := s.(*Raw); ok {
			out = append(out, r)
		}
		return true
	})
	return out
}

// Find returns the segment with the given ID and its ancestors.
func Find(root Segment, id ID) (Segment, []Segment, bool) {
	var found Segment
	var path []Segment
	Walk(root, func(s Segment, parents []Segment) bool {
		if found != nil {
			return false
		}
		if s.ID() == id {
			found = s
			path = slices.Clone(parents)
			return false
		}
		return true
	})
	return found, path, found != nil
}

// FindAll returns every descendant (including root) whose type is one of types.
func FindAll(root Segment, types ...string) []Segment {
	var out []Segment
	Walk(root, func(s Segment, _ []Segment) bool {
		if IsType(s, types...) {
			out = append(out, s)
		}
		return true
	})
	return out
}

// IsType reports whether seg has one of the given types.
func IsType(seg Segment, types ...string) bool {
	if seg == nil {
		return false
	}
	return slices.Contains(types, seg.Type())
}

// FirstCode returns the first code leaf under seg.
func FirstCode(seg Segment) *Raw {
	for _, r := range RawLeaves(seg) {
		if r.IsCode() {
			return r
		}
	}
	return nil
}

// LastCode returns the last code leaf under seg.
func LastCode(seg Segment) *Raw {
	leaves := RawLeaves(seg)
	for i := len(leaves) - 1; i >= 0; i-- {
		if leaves[i].IsCode() {
			return leaves[i]
		}
	}
	return nil
}

// CodeChildren returns the direct children that are code.
func CodeChildren(seg Segment) []Segment {
	var out []Segment
	for _, ch := range seg.Children() {
		if ch.IsCode() {
			out = append(out, ch)
		}
	}
	return out
}

// ChildOfType returns the first direct child with one of the types.
func ChildOfType(seg Segment, types ...string) Segment {
	for _, ch := range seg.Children() {
		if IsType(ch, types...) {
			return ch
		}
	}
	return nil
}

// Dump renders the tree one segment per line, indented by depth. Composite
// lines show the type; leaf lines also show position and quoted text. IDs are
// omitted so dumps of two parses of the same text compare equal.
func Dump(root Segment) string {
	var b strings.Builder
	Walk(root, func(s Segment, parents []Segment) bool {
		indent := strings.Repeat("    ", len(parents))
		m := s.Marker()
		loc := "-"
		if m.IsValid() {
			loc = fmt.Sprintf("%d:%d", m.Line(), m.Column())
		}
		switch v := s.(type) {
		case *Composite:
			fmt.Fprintf(&b, "%-8s|%s%s:\n", loc, indent, v.Type())
		case *Meta:
			fmt.Fprintf(&b, "%-8s|%s[META] %s:\n", loc, indent, v.Type())
		default:
			fmt.Fprintf(&b, "%-8s|%s%s: %q\n", loc, indent, s.Type(), s.Raw())
		}
		return true
	})
	return b.String()
}

// Record is a serialisable view of a segment tree.
type Record struct {
	Type     string   `json:"type" yaml:"type"`
	Raw      string   `json:"raw,omitempty" yaml:"raw,omitempty"`
	Line     int      `json:"line,omitempty" yaml:"line,omitempty"`
	Column   int      `json:"column,omitempty" yaml:"column,omitempty"`
	Children []Record `json:"children,omitempty" yaml:"children,omitempty"`
}

// ToRecord converts a tree to records. Non-code leaves are dropped when
// codeOnly is set.
func ToRecord(seg Segment, codeOnly bool) Record {
	rec := Record{Type: seg.Type()}
	if m := seg.Marker(); m.IsValid() {
		rec.Line, rec.Column = m.Line(), m.Column()
	}
	children := seg.Children()
	if _, ok := seg.(*Composite); !ok {
		rec.Raw = seg.Raw()
		return rec
	}
	for _, ch := range children {
		if codeOnly && !ch.IsCode() {
			continue
		}
		rec.Children = append(rec.Children, ToRecord(ch, codeOnly))
	}
	return rec
}
