package output

import (
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/parser"
	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// ParseErrorRecord is an unparsable span.
type ParseErrorRecord struct {
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Message string `json:"message" yaml:"message"`
}

// TreeRecord is the machine-readable form of a parsed file.
type TreeRecord struct {
	Path    string             `json:"path" yaml:"path"`
	Dialect string             `json:"dialect" yaml:"dialect"`
	Tree    segment.Record     `json:"tree" yaml:"tree"`
	Errors  []ParseErrorRecord `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Tree renders a parse result. codeOnly drops whitespace, newlines and
// comments from the output.
func (r *Renderer) Tree(path, dialect string, res *parser.Result, codeOnly bool) error {
	if r.IsStructured() {
		rec := TreeRecord{Path: path, Dialect: dialect, Tree: segment.ToRecord(res.Tree, codeOnly)}
		for _, e := range res.Errors {
			rec.Errors = append(rec.Errors, ParseErrorRecord{Line: e.Pos.Line, Column: e.Pos.Column, Message: e.Message})
		}
		return r.Encode(rec)
	}

	st := r.styles
	for _, line := range strings.SplitAfter(segment.Dump(res.Tree), "\n") {
		if line == "" {
			continue
		}
		if codeOnly && isNonCodeLine(line) {
			continue
		}
		if strings.Contains(line, "unparsable") {
			line = st.Error.Render(strings.TrimSuffix(line, "\n")) + "\n"
		}
		r.Printf("%s", line)
	}
	for _, e := range res.Errors {
		r.Warn("%s:%d:%d: %s", path, e.Pos.Line, e.Pos.Column, e.Message)
	}
	return nil
}

func isNonCodeLine(line string) bool {
	_, rest, ok := strings.Cut(line, "|")
	if !ok {
		return false
	}
	rest = strings.TrimSpace(rest)
	for _, prefix := range []string{"whitespace:", "newline:", "comment:", "[META]"} {
		if strings.HasPrefix(rest, prefix) {
			return true
		}
	}
	return false
}
