package convention

import (
	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Terminator places statement terminators directly after their statement
// and can require one after the last statement.
var Terminator = lint.RuleDef{
	ID:          "CV03",
	Name:        "convention.terminator",
	Group:       "convention",
	Description: "Statements must be terminated directly, without preceding whitespace.",
	Severity:    lint.SeverityWarning,
	Crawl:       lint.OnRoot(),
	Check:       checkTerminator,
	Options: []lint.OptionSpec{
		lint.BoolOption("require_final_semicolon", false, "Require a semicolon after the last statement."),
	},
	Fixable:     true,
	BadExample:  "SELECT a FROM t ;",
	GoodExample: "SELECT a FROM t;",
}

func checkTerminator(c *lint.Context) ([]lint.Violation, error) {
	leaves := c.RawLeaves()
	var out []lint.Violation

	for i, r := range leaves {
		if r.Kind() != token.Semicolon {
			continue
		}
		j := i - 1
		for j >= 0 && leaves[j].IsWhitespace() {
			j--
		}
		// A comment or an empty statement before the terminator stays put.
		if j == i-1 || j < 0 || !leaves[j].IsCode() || leaves[j].Kind() == token.Semicolon {
			continue
		}
		var edits []fix.Edit
		for _, ws := range leaves[j+1 : i] {
			edits = append(edits, fix.Delete(ws))
		}
		out = append(out, lint.At(leaves[j+1], "Statement terminator should not be preceded by whitespace.").
			WithFix("move terminator to the end of the statement", edits...))
	}

	if lint.GetBoolOption(c.Options, "require_final_semicolon", false) {
		if last := segment.LastCode(c.Root()); last != nil && last.Kind() != token.Semicolon {
			out = append(out, lint.At(last, "Final statement is not terminated with a semicolon.").
				WithFix("add final semicolon", fix.CreateAfter(last, segment.NewDetached(token.Semicolon, ";"))))
		}
	}
	return out, nil
}
