package layout

import (
	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// EndOfFile wants exactly one newline at the end of a file.
var EndOfFile = lint.RuleDef{
	ID:          "LT06",
	Name:        "layout.end_of_file",
	Group:       "layout",
	Description: "Files must end with a single trailing newline.",
	Severity:    lint.SeverityWarning,
	Crawl:       lint.OnRoot(),
	Check:       checkEndOfFile,
	Fixable:     true,
}

func checkEndOfFile(c *lint.Context) ([]lint.Violation, error) {
	leaves := c.RawLeaves()
	if segment.FirstCode(c.Root()) == nil || len(leaves) == 0 {
		return nil, nil
	}

	// tail is the run of whitespace and newlines closing the file.
	tail := len(leaves)
	for tail > 0 && leaves[tail-1].IsWhitespace() {
		tail--
	}
	first := -1
	for i := tail; i < len(leaves); i++ {
		if leaves[i].Kind() == token.Newline {
			first = i
			break
		}
	}

	last := leaves[len(leaves)-1]
	if first < 0 {
		return []lint.Violation{
			lint.At(last, "Files must end with a single trailing newline.").
				WithFix("add final newline", fix.CreateAfter(last, segment.Newline())),
		}, nil
	}
	if first == len(leaves)-1 {
		return nil, nil
	}

	var edits []fix.Edit
	for _, r := range leaves[first+1:] {
		edits = append(edits, fix.Delete(r))
	}
	return []lint.Violation{
		lint.At(leaves[first+1], "Files must end with a single trailing newline.").
			WithFix("remove extra trailing newlines", edits...),
	}, nil
}
