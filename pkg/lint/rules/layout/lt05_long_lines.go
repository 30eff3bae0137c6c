package layout

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// LongLines flags lines longer than max_line_length characters.
var LongLines = lint.RuleDef{
	ID:          "LT05",
	Name:        "layout.long_lines",
	Group:       "layout",
	Description: "Line is too long.",
	Severity:    lint.SeverityWarning,
	Crawl:       lint.OnRoot(),
	Check:       checkLongLines,
	Options: []lint.OptionSpec{
		lint.IntOption("max_line_length", 80, 1, 10000, "Maximum line length in characters."),
		lint.BoolOption("ignore_comment_lines", false, "Skip lines that hold only a comment."),
	},
}

type longLinesOptions struct {
	MaxLineLength      int  `mapstructure:"max_line_length"`
	IgnoreCommentLines bool `mapstructure:"ignore_comment_lines"`
}

func checkLongLines(c *lint.Context) ([]lint.Violation, error) {
	var opts longLinesOptions
	if err := lint.DecodeOptions(c.Options, &opts); err != nil {
		return nil, err
	}

	// Measured on the raw source: that is the text the user edits.
	text := c.Root().Raw()
	if c.File != nil {
		text = c.File.RawText
	}

	var out []lint.Violation
	offset := 0
	for i, line := range strings.Split(text, "\n") {
		lineStart := offset
		offset += len(line) + 1
		line = strings.TrimSuffix(line, "\r")

		n := utf8.RuneCountInString(line)
		if n <= opts.MaxLineLength {
			continue
		}
		if opts.IgnoreCommentLines && isCommentLine(line) {
			continue
		}
		v := lint.At(c.Root(), fmt.Sprintf("Line is too long (%d > %d).", n, opts.MaxLineLength))
		v.Pos = token.Position{
			Line:   i + 1,
			Column: opts.MaxLineLength + 1,
			Offset: lineStart + runeOffset(line, opts.MaxLineLength),
		}
		out = append(out, v)
	}
	return out, nil
}

func isCommentLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "--") || strings.HasPrefix(t, "/*")
}

// runeOffset returns the byte offset of the n-th rune of s.
func runeOffset(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}
