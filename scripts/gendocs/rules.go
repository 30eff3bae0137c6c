package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules"
)

// groupDescriptions provides human-readable descriptions for rule groups.
var groupDescriptions = map[string]string{
	"aliasing":       "Rules about alias usage and naming conventions.",
	"ambiguous":      "Rules about ambiguous SQL constructs that may cause confusion or errors.",
	"capitalisation": "Rules about the case of keywords and literals.",
	"convention":     "Rules about SQL coding conventions and style consistency.",
	"layout":         "Rules about whitespace, commas, line length and file endings.",
	"structure":      "Rules about SQL query structure and organization.",
}

// generateRuleDocs writes an index and one page per rule. Page names match
// the documentation URLs reported with violations.
func generateRuleDocs(outDir string) error {
	log.Printf("Generating rule docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	reg := rules.NewRegistry()
	if err := generateRuleIndex(outDir, reg); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	for _, r := range reg.All() {
		info := lint.GetRuleInfo(r)
		if err := generateRulePage(outDir, info); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", info.ID, err)
		}
		log.Printf("  Generated %s.md", lint.DocPage(info.ID))
	}
	return nil
}

// generateRuleIndex generates the rules overview page.
func generateRuleIndex(outDir string, reg *lint.Registry) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Rules", "Lint rules for leaplint")
	w.GeneratedMarker()

	w.Header(1, "Rules")
	w.Paragraph(fmt.Sprintf("leaplint ships **%d rules** in %d groups. Rules marked fixable are corrected by %s.",
		reg.Count(), len(reg.Groups()), InlineCode("leaplint fix")))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode("error"), "Critical issue that should be fixed"},
			{InlineCode("warning"), "Potential issue that should be reviewed"},
			{InlineCode("info"), "Informational feedback"},
			{InlineCode("hint"), "Suggestion for improvement"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph("Rules are selected and tuned in `.leaplint.yaml`:")
	w.CodeBlock("yaml", `rules: [layout, CP01]      # IDs, names or groups; empty runs all
exclude_rules: [LT05]
severity:
  CP01: error              # override severity
rule_options:
  CP01:
    capitalisation_policy: lower`)
	w.Paragraph("A violation on a line ending in `-- noqa` is suppressed; `-- noqa: LT01,CP01` suppresses only the listed rules.")

	for _, group := range reg.Groups() {
		w.Line(fmt.Sprintf("## %s {#%s}", capitalizeFirst(group), group))
		w.Newline()
		if desc, ok := groupDescriptions[group]; ok {
			w.Paragraph(desc)
		}

		var rows [][]string
		for _, r := range reg.ByGroup(group) {
			fixable := ""
			if r.Fixable() {
				fixable = "yes"
			}
			rows = append(rows, []string{
				fmt.Sprintf("[%s](%s)", r.ID(), lint.DocPage(r.ID())),
				InlineCode(r.Name()),
				r.DefaultSeverity().String(),
				fixable,
				cleanDescription(r.Description()),
			})
		}
		w.Table([]string{"ID", "Name", "Severity", "Fixable", "Description"}, rows)
	}

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// generateRulePage writes the documentation page of one rule.
func generateRulePage(outDir string, info lint.RuleInfo) error {
	w := NewMarkdownWriter()

	w.Frontmatter(info.ID+" "+info.Name, cleanDescription(info.Description))
	w.GeneratedMarker()

	w.Header(1, fmt.Sprintf("%s - %s", info.ID, info.Name))
	w.Line(fmt.Sprintf("**Group:** %s  ", info.Group))
	w.Line(fmt.Sprintf("**Severity:** %s  ", InlineCode(info.DefaultSeverity.String())))
	fixable := "no"
	if info.Fixable {
		fixable = "yes"
	}
	w.Line(fmt.Sprintf("**Fixable:** %s", fixable))
	w.Newline()

	w.Paragraph(cleanDescription(info.Description))

	if info.Rationale != "" {
		w.Header(2, "Why This Matters")
		w.Paragraph(info.Rationale)
	}
	if info.BadExample != "" {
		w.Header(2, "Bad")
		w.CodeBlock("sql", info.BadExample)
	}
	if info.GoodExample != "" {
		w.Header(2, "Good")
		w.CodeBlock("sql", info.GoodExample)
	}

	if len(info.Options) > 0 {
		w.Header(2, "Options")
		var rows [][]string
		for _, o := range info.Options {
			rows = append(rows, []string{
				InlineCode(o.Key),
				o.Type.String(),
				InlineCode(fmt.Sprint(o.Default)),
				optionRange(o),
				cleanDescription(o.Description),
			})
		}
		w.Table([]string{"Option", "Type", "Default", "Values", "Description"}, rows)
	}

	if len(info.Dialects) > 0 {
		w.Line(fmt.Sprintf("**Dialects:** %s", strings.Join(info.Dialects, ", ")))
		w.Newline()
	}

	return os.WriteFile(filepath.Join(outDir, lint.DocPage(info.ID)+".md"), w.Bytes(), 0600)
}

func optionRange(o lint.OptionSpec) string {
	switch {
	case len(o.Values) > 0:
		return strings.Join(o.Values, ", ")
	case o.Min != nil && o.Max != nil:
		return fmt.Sprintf("%d to %d", *o.Min, *o.Max)
	case o.Min != nil:
		return fmt.Sprintf(">= %d", *o.Min)
	case o.Max != nil:
		return fmt.Sprintf("<= %d", *o.Max)
	}
	return ""
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
