package capitalisation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/pkg/lint/rules/capitalisation"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules/ruletest"
)

func TestCP01_Keywords(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		policy string
		count  int
		fixed  string
	}{
		{"consistent upper", "SELECT a FROM t", "", 0, "SELECT a FROM t"},
		{"consistent follows first", "SELECT a from t", "", 1, "SELECT a FROM t"},
		{"consistent lower first", "select a FROM t WHERE b", "", 2, "select a from t where b"},
		{"upper", "select a from t", "upper", 2, "SELECT a FROM t"},
		{"lower", "SELECT a FROM t", "lower", 2, "select a from t"},
		{"capitalise", "select a FROM t", "capitalise", 2, "Select a From t"},
		{"column named date", "SELECT date FROM t", "", 0, "SELECT date FROM t"},
		{"function names ignored", "SELECT left(a, 1) FROM t", "upper", 0, "SELECT left(a, 1) FROM t"},
		{"null left to CP02", "SELECT null FROM t", "", 0, "SELECT null FROM t"},
		{"alias keyword", "SELECT a as b FROM t", "", 1, "SELECT a AS b FROM t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts map[string]any
			if tt.policy != "" {
				opts = map[string]any{"capitalisation_policy": tt.policy}
			}
			assert.Len(t, ruletest.Lint(t, capitalisation.Keywords, tt.sql, opts), tt.count)
			assert.Equal(t, tt.fixed, ruletest.Fix(t, capitalisation.Keywords, tt.sql, opts))
		})
	}
}

func TestCP01_Messages(t *testing.T) {
	vs := ruletest.Lint(t, capitalisation.Keywords, "SELECT a from t", nil)
	require.Len(t, vs, 1)
	assert.Equal(t, "Keywords must be consistently upper case.", vs[0].Message)
	assert.Equal(t, 10, vs[0].Pos.Column)

	vs = ruletest.Lint(t, capitalisation.Keywords, "SELECT a from t", map[string]any{"capitalisation_policy": "lower"})
	require.Len(t, vs, 1)
	assert.Equal(t, "Keywords must be lower case.", vs[0].Message)
}

func TestCP01_MixedCaseOnly(t *testing.T) {
	// No keyword has a recognisable case, so consistent has nothing to follow.
	assert.Empty(t, ruletest.Lint(t, capitalisation.Keywords, "SeLeCt a FrOm t", nil))
}

func TestCP02_Literals(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		policy string
		count  int
		fixed  string
	}{
		{"consistent", "SELECT NULL, TRUE FROM t", "", 0, "SELECT NULL, TRUE FROM t"},
		{"inconsistent", "SELECT NULL, true FROM t", "", 1, "SELECT NULL, TRUE FROM t"},
		{"keywords do not set the style", "SELECT null, TRUE FROM t", "", 1, "SELECT null, true FROM t"},
		{"upper", "select null, false from t", "upper", 2, "select NULL, FALSE from t"},
		{"is null", "select a from t where a is Null", "lower", 1, "select a from t where a is null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts map[string]any
			if tt.policy != "" {
				opts = map[string]any{"capitalisation_policy": tt.policy}
			}
			assert.Len(t, ruletest.Lint(t, capitalisation.Literals, tt.sql, opts), tt.count)
			assert.Equal(t, tt.fixed, ruletest.Fix(t, capitalisation.Literals, tt.sql, opts))
		})
	}
}

func TestPolicyIsValidated(t *testing.T) {
	for _, r := range capitalisation.Rules {
		require.Len(t, r.Options, 1)
		assert.Equal(t, "capitalisation_policy", r.Options[0].Key)
		_, err := r.Options[0].Normalize("shouting")
		assert.Error(t, err)
	}
}
