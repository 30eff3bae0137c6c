package aliasing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/pkg/lint/rules/aliasing"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules/ruletest"
)

func TestAL01_TableAliasing(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		aliasing string
		count    int
		fixed    string
	}{
		{"explicit ok", "SELECT o.id FROM orders AS o", "explicit", 0, "SELECT o.id FROM orders AS o"},
		{"implicit flagged", "SELECT o.id FROM orders o", "explicit", 1, "SELECT o.id FROM orders AS o"},
		{"keyword case followed", "select o.id from orders o", "explicit", 1, "select o.id from orders as o"},
		{"join alias", "SELECT 1 FROM a AS x JOIN b y ON x.id = y.id", "explicit", 1, "SELECT 1 FROM a AS x JOIN b AS y ON x.id = y.id"},
		{"no alias", "SELECT id FROM orders", "explicit", 0, "SELECT id FROM orders"},
		{"column alias ignored", "SELECT id total FROM orders AS o", "explicit", 0, "SELECT id total FROM orders AS o"},
		{"implicit ok", "SELECT o.id FROM orders o", "implicit", 0, "SELECT o.id FROM orders o"},
		{"explicit flagged", "SELECT o.id FROM orders AS o", "implicit", 1, "SELECT o.id FROM orders o"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := map[string]any{"aliasing": tt.aliasing}
			assert.Len(t, ruletest.Lint(t, aliasing.TableAliasing, tt.sql, opts), tt.count)
			assert.Equal(t, tt.fixed, ruletest.Fix(t, aliasing.TableAliasing, tt.sql, opts))
		})
	}
}

func TestAL01_Message(t *testing.T) {
	vs := ruletest.Lint(t, aliasing.TableAliasing, "SELECT o.id FROM orders o", nil)
	require.Len(t, vs, 1)
	assert.Equal(t, "Implicit aliasing of tables is not allowed; use explicit AS.", vs[0].Message)
	assert.Equal(t, 25, vs[0].Pos.Column)
}

func TestAL09_SelfAlias(t *testing.T) {
	tests := []struct {
		name  string
		sql   string
		count int
		fixed string
	}{
		{"different alias", "SELECT u.id FROM users AS u", 0, "SELECT u.id FROM users AS u"},
		{"self alias", "SELECT users.id FROM users AS users", 1, "SELECT users.id FROM users"},
		{"implicit self alias", "SELECT id FROM users USERS", 1, "SELECT id FROM users"},
		{"qualified table", "SELECT id FROM app.users users", 1, "SELECT id FROM app.users"},
		{"quoted differs", `SELECT id FROM users AS "Users"`, 0, `SELECT id FROM users AS "Users"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, ruletest.Lint(t, aliasing.SelfAlias, tt.sql, nil), tt.count)
			assert.Equal(t, tt.fixed, ruletest.Fix(t, aliasing.SelfAlias, tt.sql, nil))
		})
	}
}
