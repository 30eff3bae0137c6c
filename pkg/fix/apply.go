package fix

import (
	"slices"
	"sort"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// SkipReason explains why a fix was not applied.
type SkipReason string

// Skip reasons.
const (
	// SkipConflict: an earlier fix already edits an overlapping span.
	SkipConflict SkipReason = "conflict"
	// SkipStale: an anchor is not part of this tree snapshot.
	SkipStale SkipReason = "stale"
	// SkipTemplated: an edit would touch text produced by the templater.
	SkipTemplated SkipReason = "templated"
	// SkipEmpty: the fix has no edits.
	SkipEmpty SkipReason = "empty"
	// SkipInvalid: the fix's own edits overlap, or it edits the root.
	SkipInvalid SkipReason = "invalid"
)

// Skipped records a fix that was not applied.
type Skipped struct {
	Index  int
	Reason SkipReason
}

// Patch is an applied edit in raw source coordinates.
type Patch struct {
	Start, End int
	Text       string
}

// Result is the outcome of Apply.
type Result struct {
	// Tree is the rebuilt tree. It is the input tree when nothing applied.
	Tree    *segment.Composite
	Applied []int
	Skipped []Skipped
	Patches []Patch
}

// Changed reports whether any fix was applied.
func (r *Result) Changed() bool {
	return len(r.Applied) > 0
}

// SkipReasonOf returns the reason fix i was skipped, or "" if it applied.
func (r *Result) SkipReasonOf(i int) SkipReason {
	for _, s := range r.Skipped {
		if s.Index == i {
			return s.Reason
		}
	}
	return ""
}

// Source applies the patches to the raw text the tree was parsed from.
func (r *Result) Source(raw string) string {
	if len(r.Patches) == 0 {
		return raw
	}
	var b strings.Builder
	b.Grow(len(raw))
	cursor := 0
	for _, p := range r.Patches {
		if p.Start > cursor {
			b.WriteString(raw[cursor:p.Start])
		}
		b.WriteString(p.Text)
		cursor = max(cursor, p.End)
	}
	b.WriteString(raw[cursor:])
	return b.String()
}

// footprint is the templated range an edit occupies. Inserts are zero width.
type footprint struct {
	start, end int
}

func (f footprint) empty() bool { return f.start == f.end }

// conflicts treats spans as half-open. A zero-width insert conflicts with a
// span that contains its offset and with another insert at the same offset.
func (f footprint) conflicts(o footprint) bool {
	switch {
	case f.empty() && o.empty():
		return f.start == o.start
	case f.empty():
		return o.start <= f.start && f.start < o.end
	case o.empty():
		return f.start <= o.start && o.start < f.end
	default:
		return f.start < o.end && o.start < f.end
	}
}

// Apply applies fixes to root in slice order. The caller orders fixes by
// priority: a fix overlapping one accepted earlier is skipped.
func Apply(root *segment.Composite, fixes []*Fix) *Result {
	res := &Result{Tree: root}
	if root == nil || len(fixes) == 0 {
		return res
	}

	index := make(map[segment.ID]segment.Segment)
	segment.Walk(root, func(s segment.Segment, _ []segment.Segment) bool {
		index[s.ID()] = s
		return true
	})

	var accepted []footprint
	byAnchor := make(map[segment.ID][]Edit)

	for i, f := range fixes {
		if f == nil || len(f.Edits) == 0 {
			res.Skipped = append(res.Skipped, Skipped{Index: i, Reason: SkipEmpty})
			continue
		}
		prints, patches, reason := plan(root, index, f)
		if reason == "" {
			for _, p := range prints {
				if slices.ContainsFunc(accepted, p.conflicts) {
					reason = SkipConflict
					break
				}
			}
		}
		if reason != "" {
			res.Skipped = append(res.Skipped, Skipped{Index: i, Reason: reason})
			continue
		}
		accepted = append(accepted, prints...)
		for _, e := range f.Edits {
			byAnchor[e.Anchor] = append(byAnchor[e.Anchor], e)
		}
		res.Patches = append(res.Patches, patches...)
		res.Applied = append(res.Applied, i)
	}

	if len(res.Applied) == 0 {
		return res
	}

	sort.SliceStable(res.Patches, func(i, j int) bool {
		a, b := res.Patches[i], res.Patches[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		// An insert goes before a replacement starting at the same offset.
		return a.Start == a.End && b.Start != b.End
	})

	dirty := make(map[segment.ID]bool)
	segment.Walk(root, func(s segment.Segment, parents []segment.Segment) bool {
		if _, ok := byAnchor[s.ID()]; ok {
			for _, p := range parents {
				dirty[p.ID()] = true
			}
		}
		return true
	})
	res.Tree = rebuild(root, byAnchor, dirty)
	return res
}

// plan validates a fix against the tree and computes its footprints and raw
// patches.
func plan(root *segment.Composite, index map[segment.ID]segment.Segment, f *Fix) ([]footprint, []Patch, SkipReason) {
	prints := make([]footprint, 0, len(f.Edits))
	patches := make([]Patch, 0, len(f.Edits))
	for _, e := range f.Edits {
		if e.Anchor == root.ID() {
			return nil, nil, SkipInvalid
		}
		seg, ok := index[e.Anchor]
		if !ok {
			return nil, nil, SkipStale
		}
		m := seg.Marker()
		if !m.IsValid() {
			return nil, nil, SkipStale
		}
		if meta, ok := seg.(*segment.Meta); ok && meta.Kind() == segment.Placeholder {
			return nil, nil, SkipTemplated
		}
		if !m.IsLiteral() {
			return nil, nil, SkipTemplated
		}

		ts, te := m.Templated.Start.Offset, m.Templated.End.Offset
		rs, re := m.Source.Start.Offset, m.Source.End.Offset
		text := e.Text()
		var fp footprint
		var p Patch
		switch e.Kind {
		case EditCreateBefore:
			fp, p = footprint{ts, ts}, Patch{rs, rs, text}
		case EditCreateAfter:
			fp, p = footprint{te, te}, Patch{re, re, text}
		case EditReplace, EditDelete:
			fp, p = footprint{ts, te}, Patch{rs, re, text}
		default:
			return nil, nil, SkipInvalid
		}
		for _, other := range prints {
			if !fp.empty() && !other.empty() && fp.conflicts(other) {
				return nil, nil, SkipInvalid
			}
		}
		prints = append(prints, fp)
		patches = append(patches, p)
	}
	return prints, patches, ""
}

func rebuild(c *segment.Composite, edits map[segment.ID][]Edit, dirty map[segment.ID]bool) *segment.Composite {
	if !dirty[c.ID()] {
		return c
	}
	out := make([]segment.Segment, 0, len(c.Children())+2)
	for _, ch := range c.Children() {
		keep := true
		var replacement, after []segment.Segment
		for _, e := range edits[ch.ID()] {
			switch e.Kind {
			case EditCreateBefore:
				out = append(out, e.Segments...)
			case EditCreateAfter:
				after = append(after, e.Segments...)
			case EditReplace:
				keep = false
				replacement = append(replacement, e.Segments...)
			case EditDelete:
				keep = false
			}
		}
		switch {
		case !keep:
			out = append(out, replacement...)
		case dirty[ch.ID()]:
			out = append(out, rebuild(ch.(*segment.Composite), edits, dirty))
		default:
			out = append(out, ch)
		}
		out = append(out, after...)
	}
	return c.WithChildren(out)
}
