package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/pkg/lint"
)

var testSpecs = []lint.OptionSpec{
	lint.IntOption("max_line_length", 80, 1, 1000, "Maximum line length."),
	lint.BoolOption("ignore_comment_lines", false, "Skip comment-only lines."),
	lint.EnumOption("capitalisation_policy", "consistent", []string{"consistent", "upper", "lower"}, ""),
	{Key: "blocked_words", Type: lint.OptionStringList, Default: []string{}},
}

func TestResolveOptionsAppliesDefaults(t *testing.T) {
	opts, err := lint.ResolveOptions("R01", testSpecs, nil)
	require.NoError(t, err)
	assert.Equal(t, 80, opts["max_line_length"])
	assert.Equal(t, false, opts["ignore_comment_lines"])
	assert.Equal(t, "consistent", opts["capitalisation_policy"])
}

func TestResolveOptionsCoercesLooseValues(t *testing.T) {
	opts, err := lint.ResolveOptions("R01", testSpecs, map[string]any{
		"max_line_length":      "120",
		"ignore_comment_lines": "true",
		"blocked_words":        "foo, bar",
	})
	require.NoError(t, err)
	assert.Equal(t, 120, opts["max_line_length"])
	assert.Equal(t, true, opts["ignore_comment_lines"])
	assert.Equal(t, []string{"foo", "bar"}, opts["blocked_words"])

	opts, err = lint.ResolveOptions("R01", testSpecs, map[string]any{"max_line_length": 100.0})
	require.NoError(t, err)
	assert.Equal(t, 100, opts["max_line_length"])
}

func TestResolveOptionsRejectsImproperConfig(t *testing.T) {
	tests := []struct {
		name    string
		opts    map[string]any
		wantErr error
	}{
		{"enum value", map[string]any{"capitalisation_policy": "blah"}, lint.ErrInvalidOption},
		{"below min", map[string]any{"max_line_length": 0}, lint.ErrInvalidOption},
		{"not an int", map[string]any{"max_line_length": "wide"}, lint.ErrInvalidOption},
		{"wrong type", map[string]any{"capitalisation_policy": 3}, lint.ErrInvalidOption},
		{"unknown key", map[string]any{"indent_width": 4}, lint.ErrUnknownOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lint.ResolveOptions("R01", testSpecs, tt.opts)
			var optErr *lint.OptionError
			require.ErrorAs(t, err, &optErr)
			assert.Equal(t, "R01", optErr.Rule)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecodeOptions(t *testing.T) {
	opts, err := lint.ResolveOptions("R01", testSpecs, map[string]any{"max_line_length": 100})
	require.NoError(t, err)

	var decoded struct {
		MaxLineLength      int    `mapstructure:"max_line_length"`
		IgnoreCommentLines bool   `mapstructure:"ignore_comment_lines"`
		Policy             string `mapstructure:"capitalisation_policy"`
	}
	require.NoError(t, lint.DecodeOptions(opts, &decoded))
	assert.Equal(t, 100, decoded.MaxLineLength)
	assert.False(t, decoded.IgnoreCommentLines)
	assert.Equal(t, "consistent", decoded.Policy)
}

func TestGetOptionHelpers(t *testing.T) {
	opts := map[string]any{"n": 3.0, "s": "x", "b": true}
	assert.Equal(t, 3, lint.GetIntOption(opts, "n", 1))
	assert.Equal(t, 1, lint.GetIntOption(opts, "missing", 1))
	assert.Equal(t, "x", lint.GetStringOption(opts, "s", ""))
	assert.Equal(t, "d", lint.GetStringOption(opts, "n", "d"))
	assert.True(t, lint.GetBoolOption(opts, "b", false))
	assert.False(t, lint.GetBoolOption(nil, "b", false))
}

func TestConfigValidate(t *testing.T) {
	reg := lint.NewRegistry()
	d := def("CP01", "capitalisation")
	d.Options = testSpecs
	require.NoError(t, reg.RegisterDefs(d))

	ok := lint.NewConfig().SetRuleOption("CP01", "capitalisation_policy", "upper")
	assert.NoError(t, ok.Validate(reg))

	bad := lint.NewConfig().
		SetRuleOption("CP01", "capitalisation_policy", "blah").
		SetRuleOption("ZZ99", "x", 1)
	err := bad.Validate(reg)
	require.Error(t, err)
	assert.ErrorIs(t, err, lint.ErrInvalidOption)
	assert.ErrorIs(t, err, lint.ErrUnknownRule)
}

func TestParseSeverity(t *testing.T) {
	sev, ok := lint.ParseSeverity("ERROR")
	assert.True(t, ok)
	assert.Equal(t, lint.SeverityError, sev)

	_, ok = lint.ParseSeverity("fatal")
	assert.False(t, ok)

	var s lint.Severity
	require.NoError(t, s.UnmarshalText([]byte("hint")))
	assert.Equal(t, lint.SeverityHint, s)
	text, err := lint.SeverityInfo.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "info", string(text))
}
