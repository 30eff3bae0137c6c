package rules_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules"
)

func TestRegisterBuiltins(t *testing.T) {
	reg := lint.NewRegistry()
	require.NoError(t, rules.Register(reg))
	assert.Equal(t, len(rules.All()), reg.Count())

	for _, id := range []string{
		"LT01", "LT02", "LT03", "LT04", "LT05", "LT06",
		"CP01", "CP02", "CV01", "CV02", "CV03", "AL01", "AM01", "ST01",
	} {
		_, ok := reg.Get(id)
		assert.True(t, ok, "missing %s", id)
	}

	// Registering twice is a duplicate.
	assert.Error(t, rules.Register(reg))
}

func TestBuiltinMetadata(t *testing.T) {
	idPattern := regexp.MustCompile(`^[A-Z]{2}[0-9]{2}$`)
	names := make(map[string]bool)
	for _, r := range rules.NewRegistry().All() {
		info := lint.GetRuleInfo(r)
		assert.Regexp(t, idPattern, info.ID)
		assert.NotEmpty(t, info.Description, info.ID)
		assert.Contains(t, info.Name, info.Group+".", info.ID)
		assert.False(t, names[info.Name], "duplicate name %s", info.Name)
		names[info.Name] = true
	}
}

func TestGroups(t *testing.T) {
	reg := rules.NewRegistry()
	assert.Equal(t, []string{"aliasing", "ambiguous", "capitalisation", "convention", "layout", "structure"}, reg.Groups())
	assert.Len(t, reg.ByGroup("layout"), 6)
}
