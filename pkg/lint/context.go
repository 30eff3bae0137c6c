package lint

import (
	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/source"
)

// Context is what a rule sees when it is evaluated at one segment.
// It is only valid for the duration of the Check call.
type Context struct {
	RuleID  string
	Segment segment.Segment
	// Parents holds the ancestors from the root down to the direct parent.
	Parents []segment.Segment
	// Siblings are the children of the direct parent, Segment included.
	Siblings []segment.Segment
	// Index is the position of Segment in Siblings.
	Index   int
	Dialect *dialect.Dialect
	File    *source.File
	Options map[string]any

	leaves *leafIndex
}

// Root returns the root of the tree.
func (c *Context) Root() segment.Segment {
	if len(c.Parents) == 0 {
		return c.Segment
	}
	return c.Parents[0]
}

// Parent returns the direct parent, or nil at the root.
func (c *Context) Parent() segment.Segment {
	if len(c.Parents) == 0 {
		return nil
	}
	return c.Parents[len(c.Parents)-1]
}

// Prev returns the previous sibling.
func (c *Context) Prev() segment.Segment {
	if c.Index <= 0 {
		return nil
	}
	return c.Siblings[c.Index-1]
}

// Next returns the next sibling.
func (c *Context) Next() segment.Segment {
	if c.Index+1 >= len(c.Siblings) {
		return nil
	}
	return c.Siblings[c.Index+1]
}

// PrevCode returns the nearest preceding sibling that is code.
func (c *Context) PrevCode() segment.Segment {
	for i := c.Index - 1; i >= 0; i-- {
		if c.Siblings[i].IsCode() {
			return c.Siblings[i]
		}
	}
	return nil
}

// NextCode returns the nearest following sibling that is code.
func (c *Context) NextCode() segment.Segment {
	for i := c.Index + 1; i < len(c.Siblings); i++ {
		if c.Siblings[i].IsCode() {
			return c.Siblings[i]
		}
	}
	return nil
}

// HasAncestor reports whether any ancestor has one of the types.
func (c *Context) HasAncestor(types ...string) bool {
	for _, p := range c.Parents {
		if segment.IsType(p, types...) {
			return true
		}
	}
	return false
}

// PrevRaw returns the raw leaf before the current leaf in document order,
// ignoring tree structure. It is nil when Segment is not a raw leaf.
func (c *Context) PrevRaw() *segment.Raw {
	return c.leaves.at(c.Segment, -1)
}

// NextRaw returns the raw leaf after the current leaf in document order.
func (c *Context) NextRaw() *segment.Raw {
	return c.leaves.at(c.Segment, 1)
}

// RawAt returns the raw leaf delta positions from the current leaf in
// document order, or nil.
func (c *Context) RawAt(delta int) *segment.Raw {
	return c.leaves.at(c.Segment, delta)
}

// RawLeaves returns every raw leaf of the tree in document order.
func (c *Context) RawLeaves() []*segment.Raw {
	if c.leaves == nil {
		return nil
	}
	return c.leaves.list
}

// leafIndex gives rules document-order neighbours of raw leaves.
type leafIndex struct {
	list []*segment.Raw
	pos  map[segment.ID]int
}

func newLeafIndex(root segment.Segment) *leafIndex {
	list := segment.RawLeaves(root)
	pos := make(map[segment.ID]int, len(list))
	for i, r := range list {
		pos[r.ID()] = i
	}
	return &leafIndex{list: list, pos: pos}
}

func (l *leafIndex) at(seg segment.Segment, delta int) *segment.Raw {
	if l == nil {
		return nil
	}
	i, ok := l.pos[seg.ID()]
	if !ok {
		return nil
	}
	j := i + delta
	if j < 0 || j >= len(l.list) {
		return nil
	}
	return l.list[j]
}
