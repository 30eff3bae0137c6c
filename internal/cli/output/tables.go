package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// DialectInfo describes a registered dialect.
type DialectInfo struct {
	Name     string   `json:"name" yaml:"name"`
	Parent   string   `json:"parent,omitempty" yaml:"parent,omitempty"`
	Lineage  []string `json:"lineage" yaml:"lineage"`
	Reserved int      `json:"reserved_keywords" yaml:"reserved_keywords"`
	Default  bool     `json:"default,omitempty" yaml:"default,omitempty"`
}

func (r *Renderer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	if r.mode == ModeText && r.isTTY {
		t.SetStyle(table.StyleRounded)
		t.Style().Format.Header = text.FormatDefault
	}
	return t
}

// flush renders t as a box table on terminals and markdown otherwise.
func (r *Renderer) flush(t table.Writer) {
	if r.mode == ModeText && r.isTTY {
		t.Render()
		return
	}
	t.RenderMarkdown()
}

// Rules renders a rule listing.
func (r *Renderer) Rules(infos []lint.RuleInfo) error {
	if r.IsStructured() {
		return r.Encode(infos)
	}
	t := r.newTable()
	t.AppendHeader(table.Row{"ID", "Name", "Group", "Severity", "Fix", "Description"})
	for _, info := range infos {
		fixable := ""
		if info.Fixable {
			fixable = "yes"
		}
		t.AppendRow(table.Row{info.ID, info.Name, info.Group, info.DefaultSeverity, fixable, info.Description})
	}
	r.flush(t)
	return nil
}

// Rule renders one rule with its documentation and options.
func (r *Renderer) Rule(info lint.RuleInfo) error {
	if r.IsStructured() {
		return r.Encode(info)
	}
	st := r.styles
	r.Printf("%s %s\n", st.RuleID.Render(info.ID), st.Header.Render(info.Name))
	r.Printf("%s\n\n", info.Description)
	r.Printf("Group:    %s\n", info.Group)
	r.Printf("Severity: %s\n", st.Severity(info.DefaultSeverity).Render(info.DefaultSeverity.String()))
	r.Printf("Fixable:  %t\n", info.Fixable)
	if len(info.Dialects) > 0 {
		r.Printf("Dialects: %s\n", strings.Join(info.Dialects, ", "))
	}
	if info.Rationale != "" {
		r.Printf("\n%s\n%s\n", st.Header.Render("Rationale"), info.Rationale)
	}
	if info.BadExample != "" {
		r.Printf("\n%s\n%s\n", st.Header.Render("Anti-pattern"), indent(info.BadExample))
	}
	if info.GoodExample != "" {
		r.Printf("\n%s\n%s\n", st.Header.Render("Best practice"), indent(info.GoodExample))
	}
	if len(info.Options) > 0 {
		r.Println()
		t := r.newTable()
		t.AppendHeader(table.Row{"Option", "Type", "Default", "Description"})
		for _, o := range info.Options {
			t.AppendRow(table.Row{o.Key, o.Type, fmt.Sprint(o.Default), o.Description})
		}
		r.flush(t)
	}
	r.Printf("\n%s %s\n", st.Muted.Render("Docs:"), info.DocURL)
	return nil
}

// Dialects renders the dialect listing.
func (r *Renderer) Dialects(infos []DialectInfo) error {
	if r.IsStructured() {
		return r.Encode(infos)
	}
	t := r.newTable()
	t.AppendHeader(table.Row{"Dialect", "Extends", "Reserved keywords", ""})
	for _, d := range infos {
		mark := ""
		if d.Default {
			mark = "default"
		}
		t.AppendRow(table.Row{d.Name, strings.Join(d.Lineage[min(1, len(d.Lineage)):], " > "), d.Reserved, mark})
	}
	r.flush(t)
	return nil
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
