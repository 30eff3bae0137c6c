package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/cli/testutil"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("dialect", "", "")
	fs.StringToString("var", nil, "")
	fs.StringSlice("rules", nil, "")
	fs.Int("workers", 0, "")
	fs.Int("max-iterations", 0, "")
	fs.Bool("no-cache", false, "")
	fs.String("format", "", "")
	fs.Bool("quiet", false, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", t.TempDir(), nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDialect, cfg.Dialect)
	assert.Equal(t, DefaultTemplater, cfg.Templater)
	assert.Equal(t, DefaultMaxIterations, cfg.MaxIterations)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.True(t, cfg.Cache)
	assert.Empty(t, cfg.Rules)
	assert.Empty(t, cfg.Files)
}

func TestLoadNestedFiles(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, filepath.Join(root, ".leaplint.yaml"), `
dialect: duckdb
rules: [layout]
max_iterations: 5
vars:
  schema: raw
rule_options:
  LT05:
    max_line_length: 100
`)
	testutil.WriteFile(t, filepath.Join(root, "models", ".leaplint.toml"), `
dialect = "postgres"

[vars]
env = "dev"

[severity]
LT05 = "error"
`)

	cfg, err := Load("", filepath.Join(root, "models"), nil)
	require.NoError(t, err)

	// The nearer file wins; everything else is inherited.
	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, []string{"layout"}, cfg.Rules)
	assert.Equal(t, 5, cfg.MaxIterations)
	assert.Equal(t, map[string]any{"schema": "raw", "env": "dev"}, cfg.Vars)
	assert.Equal(t, map[string]string{"LT05": "error"}, cfg.Severity)
	assert.EqualValues(t, 100, cfg.RuleOptions["LT05"]["max_line_length"])
	require.Len(t, cfg.Files, 2)
	assert.Equal(t, ".leaplint.yaml", filepath.Base(cfg.Files[0]))
	assert.Equal(t, ".leaplint.toml", filepath.Base(cfg.Files[1]))
}

func TestLoadExplicitFileSkipsSearch(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, filepath.Join(root, ".leaplint.yaml"), "dialect: duckdb\n")
	explicit := filepath.Join(t.TempDir(), "custom.toml")
	testutil.WriteFile(t, explicit, "workers = 2\n")

	cfg, err := Load(explicit, root, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultDialect, cfg.Dialect)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, []string{explicit}, cfg.Files)
}

func TestLoadPrecedence(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, filepath.Join(root, ".leaplint.yml"), "dialect: duckdb\nworkers: 8\nmax_iterations: 4\n")
	t.Setenv("LEAPLINT_WORKERS", "3")
	t.Setenv("LEAPLINT_RULES", "LT01,LT02")
	t.Setenv("LEAPLINT_DIALECT", "postgres")

	flags := newFlags(t, "--dialect", "snowflake", "--var", "a=b", "--no-cache", "--format", "json", "--quiet")
	cfg, err := Load("", root, flags)
	require.NoError(t, err)

	assert.Equal(t, "snowflake", cfg.Dialect, "flag beats env and file")
	assert.Equal(t, 3, cfg.Workers, "env beats file")
	assert.Equal(t, 4, cfg.MaxIterations, "unset flags do not override")
	assert.Equal(t, []string{"LT01", "LT02"}, cfg.Rules)
	assert.Equal(t, map[string]any{"a": "b"}, cfg.Vars)
	assert.False(t, cfg.Cache)
	assert.Equal(t, "json", cfg.Output)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errSub  string
	}{
		{"iterations", "max_iterations: 0\n", "max_iterations"},
		{"workers", "workers: -1\n", "workers"},
		{"output", "output: html\n", "unknown output"},
		{"severity", "severity:\n  LT01: fatal\n", "unknown level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			testutil.WriteFile(t, filepath.Join(dir, ".leaplint.yaml"), tt.content)
			_, err := Load("", dir, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSub)
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, ".leaplint.toml"), "dialect = \n")
	_, err := Load("", dir, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".leaplint.toml")
}

func TestLintConfig(t *testing.T) {
	cfg := Default()
	cfg.Rules = []string{"lt01", "capitalisation"}
	cfg.ExcludeRules = []string{"cp02"}
	cfg.Severity = map[string]string{"lt01": "error"}
	cfg.RuleOptions = map[string]map[string]any{"cp01": {"capitalisation_policy": "lower"}}
	cfg.IgnoreNoqa = true

	lc := cfg.LintConfig()
	assert.Equal(t, []string{"lt01", "capitalisation"}, lc.EnabledRules)
	assert.True(t, lc.IsDisabled("CP02"))
	assert.Equal(t, lint.SeverityError, lc.GetSeverity("LT01", lint.SeverityWarning))
	assert.Equal(t, "lower", lc.GetRuleOptions("CP01")["capitalisation_policy"])
	assert.True(t, lc.IgnoreNoqa)
}

func TestCanonicalRule(t *testing.T) {
	assert.Equal(t, "LT01", canonicalRule("lt01"))
	assert.Equal(t, "layout", canonicalRule("layout"))
	assert.Equal(t, "layout.spacing", canonicalRule("layout.spacing"))
	assert.Equal(t, "ab1c", canonicalRule("ab1c"))
}

func TestTOMLParser(t *testing.T) {
	m, err := TOMLParser().Unmarshal([]byte("dialect = \"duckdb\"\n[rule_options.LT05]\nmax_line_length = 90\n"))
	require.NoError(t, err)
	assert.Equal(t, "duckdb", m["dialect"])
	opts := m["rule_options"].(map[string]any)["LT05"].(map[string]any)
	assert.EqualValues(t, 90, opts["max_line_length"])
}

func TestContextFallbacks(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, Default(), FromContext(ctx))
	assert.NotNil(t, GetLogger(ctx))

	cfg := &Config{Dialect: "duckdb"}
	assert.Same(t, cfg, FromContext(WithConfig(ctx, cfg)))
}
