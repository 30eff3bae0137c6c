package commands

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/cli/config"
	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/internal/cli/testutil"
	ttestutil "github.com/leapstack-labs/leaplint/internal/testutil"
)

func TestWatchPathsRerunsOnSQLChange(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "a.sql"), "select 1\n")

	tr := testutil.NewTestRenderer(output.ModePlain, false)
	cc := &CommandContext{Cfg: config.Default(), Logger: ttestutil.NewTestLogger(t), Renderer: tr.Renderer}

	var runs atomic.Int32
	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- watchPaths(ctx, cc, []string{dir}, func(context.Context) error {
			runs.Add(1)
			return ErrViolations
		})
	}()

	require.Eventually(t, func() bool { return runs.Load() == 1 }, 5*time.Second, 10*time.Millisecond)

	// Non-SQL files are ignored; SQL writes trigger a run.
	testutil.WriteFile(t, filepath.Join(dir, "notes.txt"), "x")
	testutil.WriteFile(t, filepath.Join(dir, "a.sql"), "select 2\n")
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
	assert.Contains(t, tr.ErrorOutput(), "Watching for changes.")
}

func TestWatchTreeSkipsHiddenDirectories(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "models", "a.sql"), "select 1\n")
	testutil.WriteFile(t, filepath.Join(dir, ".git", "x.sql"), "select 1\n")

	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	require.NoError(t, watchTree(w, dir))
	assert.ElementsMatch(t, []string{dir, filepath.Join(dir, "models")}, w.WatchList())

	require.Error(t, watchTree(w, filepath.Join(dir, "missing")))
}
