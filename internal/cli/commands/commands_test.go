package commands

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/cli/config"
	"github.com/leapstack-labs/leaplint/internal/templater"
	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/linter"
)

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewLintCommand(), "lint [paths...]", []string{"severity", "quiet", "watch", "stdin-filename"}},
		{NewFixCommand(), "fix [paths...]", []string{"check", "quiet", "stdin-filename"}},
		{NewParseCommand(), "parse <path>", []string{"code-only", "stdin-filename"}},
		{NewRulesCommand(), "rules [rule-id]", []string{"group", "enabled"}},
		{NewDialectsCommand(), "dialects", nil},
		{NewCacheCommand(), "cache", nil},
		{NewVersionCommand("1.0.0", "abc", "today"), "version", nil},
	}
	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short)
			assert.NotEmpty(t, tt.cmd.Long)
			for _, name := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(name), "flag %s", name)
			}
		})
	}
}

func TestLintFlagDefaults(t *testing.T) {
	cmd := NewLintCommand()
	assert.Equal(t, "hint", cmd.Flags().Lookup("severity").DefValue)
	assert.Equal(t, "stdin.sql", cmd.Flags().Lookup("stdin-filename").DefValue)
	assert.Equal(t, "q", cmd.Flags().Lookup("quiet").Shorthand)
	assert.Equal(t, "w", cmd.Flags().Lookup("watch").Shorthand)
	assert.NotEmpty(t, cmd.Example)
}

func TestCacheSubcommands(t *testing.T) {
	var names []string
	for _, c := range NewCacheCommand().Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"dir", "clear"}, names)
}

func TestNewTemplater(t *testing.T) {
	for _, name := range []string{"", "raw", "RAW"} {
		tpl, err := newTemplater(name)
		require.NoError(t, err)
		assert.Equal(t, "raw", tpl.Name())
	}

	tpl, err := newTemplater(templater.Name)
	require.NoError(t, err)
	assert.Equal(t, templater.Name, tpl.Name())

	_, err = newTemplater("jinja")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "raw, starlark")
}

func TestCacheDirOverride(t *testing.T) {
	cfg := config.Default()
	cfg.CacheDir = "/tmp/leaplint-cache"
	dir, err := cacheDir(cfg)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/leaplint-cache", dir)
}

func TestStdinArgs(t *testing.T) {
	assert.True(t, isStdin([]string{"-"}))
	assert.False(t, isStdin([]string{"-", "models"}))
	assert.False(t, isStdin(nil))
	assert.Equal(t, []string{"."}, pathsOrDefault(nil))
	assert.Equal(t, []string{"a.sql"}, pathsOrDefault([]string{"a.sql"}))
}

func TestRunStdinLintsText(t *testing.T) {
	l, err := linter.New(linter.WithConfig(&lint.Config{EnabledRules: []string{"LT01"}}))
	require.NoError(t, err)

	rep, err := runStdin(t.Context(), strings.NewReader("select   1\n"), l, "q.sql", false)
	require.NoError(t, err)
	require.Len(t, rep.Files, 1)
	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, "q.sql", rep.Files[0].Path)
	require.Len(t, rep.Files[0].Violations, 1)

	rep, err = runStdin(t.Context(), strings.NewReader("select   1\n"), l, "q.sql", true)
	require.NoError(t, err)
	assert.Equal(t, "select 1\n", rep.Files[0].Fixed)
}

func TestFailed(t *testing.T) {
	warning := lint.Violation{RuleID: "LT01", Kind: lint.KindLint, Severity: lint.SeverityWarning}
	parse := lint.Violation{RuleID: lint.ParseRuleID, Kind: lint.KindParse, Severity: lint.SeverityHint}
	fixed := warning
	fixed.Fix = &fix.Fix{}
	fixed.Fixed = true

	report := func(files ...*linter.FileResult) *linter.Report {
		return &linter.Report{Files: files}
	}

	tests := []struct {
		name      string
		rep       *linter.Report
		threshold lint.Severity
		want      bool
	}{
		{"clean", report(&linter.FileResult{Path: "a.sql"}), lint.SeverityHint, false},
		{"warning", report(&linter.FileResult{Violations: []lint.Violation{warning}}), lint.SeverityHint, true},
		{"below threshold", report(&linter.FileResult{Violations: []lint.Violation{warning}}), lint.SeverityError, false},
		{"parse ignores threshold", report(&linter.FileResult{Violations: []lint.Violation{parse}}), lint.SeverityError, true},
		{"fixed", report(&linter.FileResult{Violations: []lint.Violation{fixed}}), lint.SeverityHint, false},
		{"file error", report(&linter.FileResult{Err: errors.New("boom")}), lint.SeverityHint, true},
		{"non-convergence", report(&linter.FileResult{NonConvergence: true}), lint.SeverityHint, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failed(tt.rep, tt.threshold))
		})
	}
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 file", plural(1, "file"))
	assert.Equal(t, "0 files", plural(0, "file"))
	assert.Equal(t, "3 files", plural(3, "file"))
}
