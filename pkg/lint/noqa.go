package lint

import (
	"slices"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Noqa holds inline suppressions: "-- noqa" silences every rule on its line,
// "-- noqa: LT01,CP01" only the listed ones.
type Noqa struct {
	lines map[int][]string // nil list = every rule
}

// ParseNoqa collects noqa comments from a tree.
func ParseNoqa(root segment.Segment) Noqa {
	n := Noqa{lines: make(map[int][]string)}
	for _, r := range segment.RawLeaves(root) {
		if r.Kind() != token.Comment {
			continue
		}
		c := token.NewComment(r.Raw(), r.Marker().Source)
		body := c.Body()
		if len(body) < 4 || !strings.EqualFold(body[:4], "noqa") {
			continue
		}
		rest := strings.TrimSpace(body[4:])
		line := r.Marker().Line()
		if !strings.HasPrefix(rest, ":") {
			if rest == "" {
				n.lines[line] = nil
			}
			continue
		}
		var ids []string
		for _, id := range strings.Split(rest[1:], ",") {
			if id = strings.ToUpper(strings.TrimSpace(id)); id != "" {
				ids = append(ids, id)
			}
		}
		if prev, ok := n.lines[line]; !ok || prev != nil {
			n.lines[line] = append(prev, ids...)
		}
	}
	return n
}

// Suppresses reports whether v sits on a line with a matching noqa.
func (n Noqa) Suppresses(v Violation) bool {
	ids, ok := n.lines[v.Pos.Line]
	if !ok {
		return false
	}
	return ids == nil || slices.Contains(ids, v.RuleID)
}

// Filter drops suppressed violations.
func (n Noqa) Filter(vs []Violation) []Violation {
	if len(n.lines) == 0 {
		return vs
	}
	out := vs[:0:0]
	for _, v := range vs {
		if !n.Suppresses(v) {
			out = append(out, v)
		}
	}
	return out
}
