package main

import (
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules"
)

func TestRulePagesMatchDocURLs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateRuleDocs(dir))

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)

	for _, r := range rules.NewRegistry().All() {
		page := path.Base(lint.BuildDocURL(r.ID()))
		assert.FileExists(t, filepath.Join(dir, page+".md"), r.ID())
		assert.Contains(t, string(index), "("+page+")", r.ID())
	}
}
