package segment

import (
	"testing"

	"github.com/leapstack-labs/leaplint/pkg/source"
	"github.com/leapstack-labs/leaplint/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTree makes "select 1" by hand: statement(keyword, ws, literal).
func buildTree(t *testing.T) (*Composite, *source.File) {
	t.Helper()
	f := source.NewLiteralFile("t.sql", "select 1")
	kw := NewRaw(token.Keyword, "select", NewMarker(f, 0, 6))
	ws := NewRaw(token.Whitespace, " ", NewMarker(f, 6, 7))
	lit := NewRaw(token.NumericLiteral, "1", NewMarker(f, 7, 8))
	stmt := NewComposite("select_statement", []Segment{kw, ws, lit})
	root := NewComposite("file", []Segment{stmt})
	return root, f
}

func TestCompositeRawAndMarker(t *testing.T) {
	root, _ := buildTree(t)

	assert.Equal(t, "select 1", root.Raw())
	assert.True(t, root.IsCode())
	assert.Equal(t, 1, root.Marker().Line())
	assert.Equal(t, 1, root.Marker().Column())
	assert.Equal(t, 8, root.Marker().Source.End.Offset)
}

func TestIDsAreUnique(t *testing.T) {
	root, _ := buildTree(t)
	seen := map[ID]bool{}
	Walk(root, func(s Segment, _ []Segment) bool {
		assert.False(t, seen[s.ID()], "duplicate id %d", s.ID())
		seen[s.ID()] = true
		return true
	})
	assert.Len(t, seen, 5)
}

func TestWalkOrderAndParents(t *testing.T) {
	root, _ := buildTree(t)

	var types []string
	var depths []int
	Walk(root, func(s Segment, parents []Segment) bool {
		types = append(types, s.Type())
		depths = append(depths, len(parents))
		return true
	})
	assert.Equal(t, []string{"file", "select_statement", "keyword", "whitespace", "numeric_literal"}, types)
	assert.Equal(t, []int{0, 1, 2, 2, 2}, depths)
}

func TestFind(t *testing.T) {
	root, _ := buildTree(t)
	lit := FindAll(root, "numeric_literal")
	require.Len(t, lit, 1)

	found, parents, ok := Find(root, lit[0].ID())
	require.True(t, ok)
	assert.Equal(t, "1", found.Raw())
	require.Len(t, parents, 2)
	assert.Equal(t, "select_statement", parents[1].Type())

	_, _, ok = Find(root, ID(0))
	assert.False(t, ok)
}

func TestLeavesIncludeMeta(t *testing.T) {
	f := source.NewLiteralFile("m.sql", "x")
	ind := NewMeta(Indent, NewMarker(f, 0, 0))
	x := NewRaw(token.Identifier, "x", NewMarker(f, 0, 1))
	ded := NewMeta(Dedent, NewMarker(f, 1, 1))
	root := NewComposite("file", []Segment{ind, x, ded})

	leaves := Leaves(root)
	require.Len(t, leaves, 3)
	assert.True(t, leaves[0].IsMeta())
	assert.Equal(t, 1, leaves[0].(*Meta).IndentValue())
	assert.Equal(t, -1, leaves[2].(*Meta).IndentValue())
	assert.Equal(t, "x", root.Raw())
	assert.Len(t, RawLeaves(root), 1)
}

func TestDumpIsStable(t *testing.T) {
	a, _ := buildTree(t)
	b, _ := buildTree(t)
	assert.Equal(t, Dump(a), Dump(b))
	assert.Contains(t, Dump(a), `keyword: "select"`)
}

func TestToRecord(t *testing.T) {
	root, _ := buildTree(t)
	rec := ToRecord(root, true)
	require.Len(t, rec.Children, 1)
	stmt := rec.Children[0]
	assert.Equal(t, "select_statement", stmt.Type)
	require.Len(t, stmt.Children, 2)
	assert.Equal(t, "select", stmt.Children[0].Raw)
}

func TestFirstAndLastCode(t *testing.T) {
	root, _ := buildTree(t)
	assert.Equal(t, "select", FirstCode(root).Raw())
	assert.Equal(t, "1", LastCode(root).Raw())
}

func TestDetachedSegments(t *testing.T) {
	ws := Whitespace("  ")
	assert.False(t, ws.Marker().IsValid())
	assert.True(t, ws.IsWhitespace())
	assert.True(t, ws.Marker().IsLiteral())

	kw := Keyword("select")
	up := kw.WithText("SELECT")
	assert.NotEqual(t, kw.ID(), up.ID())
	assert.Equal(t, token.Keyword, up.Kind())
}
