package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/pkg/lint"
)

func def(id, group string, dialects ...string) lint.RuleDef {
	return lint.RuleDef{
		ID:       id,
		Name:     group + "." + id,
		Group:    group,
		Crawl:    lint.OnRoot(),
		Check:    func(*lint.Context) ([]lint.Violation, error) { return nil, nil },
		Dialects: dialects,
	}
}

func TestRegistryQueries(t *testing.T) {
	reg := lint.NewRegistry()
	require.NoError(t, reg.RegisterDefs(
		def("LT02", "layout"),
		def("CP01", "capitalisation"),
		def("LT01", "layout"),
		def("DD01", "duck", "duckdb"),
	))

	ids := func(rules []lint.Rule) []string {
		out := make([]string, len(rules))
		for i, r := range rules {
			out[i] = r.ID()
		}
		return out
	}

	assert.Equal(t, 4, reg.Count())
	assert.Equal(t, []string{"CP01", "DD01", "LT01", "LT02"}, ids(reg.All()))
	assert.Equal(t, []string{"LT01", "LT02"}, ids(reg.ByGroup("layout")))
	assert.Equal(t, []string{"CP01", "LT01", "LT02"}, ids(reg.ByDialect("ansi")))
	assert.Equal(t, []string{"CP01", "DD01", "LT01", "LT02"}, ids(reg.ByDialect("duckdb")))
	assert.Equal(t, []string{"capitalisation", "duck", "layout"}, reg.Groups())

	r, ok := reg.Get("LT01")
	require.True(t, ok)
	assert.Equal(t, "layout.LT01", r.Name())
	_, ok = reg.Get("XX99")
	assert.False(t, ok)
}

func TestRegistryRejectsBadRules(t *testing.T) {
	noCrawl := def("X01", "x")
	noCrawl.Crawl = lint.Crawler{}

	noCheck := def("X02", "x")
	noCheck.Check = nil

	badDefault := def("X03", "x")
	badDefault.Options = []lint.OptionSpec{lint.EnumOption("mode", "sideways", []string{"up", "down"}, "")}

	tests := []struct {
		name string
		defs []lint.RuleDef
	}{
		{"duplicate in batch", []lint.RuleDef{def("X00", "x"), def("X00", "x")}},
		{"no crawl predicate", []lint.RuleDef{noCrawl}},
		{"no check", []lint.RuleDef{noCheck}},
		{"bad option default", []lint.RuleDef{badDefault}},
		{"reserved id", []lint.RuleDef{def(lint.ParseRuleID, "x")}},
		{"empty id", []lint.RuleDef{def("", "x")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := lint.NewRegistry()
			assert.Error(t, reg.RegisterDefs(tt.defs...))
			assert.Zero(t, reg.Count(), "nothing is registered on error")
		})
	}

	reg := lint.NewRegistry()
	require.NoError(t, reg.RegisterDefs(def("X00", "x")))
	assert.Error(t, reg.RegisterDefs(def("X00", "x")), "already registered")
}

func TestGetRuleInfo(t *testing.T) {
	d := def("LT05", "layout")
	d.Description = "Line is too long."
	d.Rationale = "Long lines are hard to read."
	d.Fixable = false
	d.Options = []lint.OptionSpec{lint.IntOption("max_line_length", 80, 1, 1000, "")}

	info := lint.GetRuleInfo(lint.WrapRuleDef(d))
	assert.Equal(t, "LT05", info.ID)
	assert.Equal(t, "layout", info.Group)
	assert.Equal(t, "Long lines are hard to read.", info.Rationale)
	assert.Equal(t, "https://leaplint.dev/docs/rules/lt05", info.DocURL)
	require.Len(t, info.Options, 1)
	assert.Equal(t, "max_line_length", info.Options[0].Key)
}
