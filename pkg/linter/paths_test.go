package linter_test

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/testutil"
	"github.com/leapstack-labs/leaplint/pkg/linter"
	"github.com/leapstack-labs/leaplint/pkg/source"
)

func memFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, text := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(text), 0o600))
	}
	return fs
}

func paths(r *linter.Report) []string {
	out := make([]string, len(r.Files))
	for i, f := range r.Files {
		out[i] = f.Path
	}
	return out
}

func TestLintPathsExpandsDirectories(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/models/b.sql":         "select 1\n",
		"/models/a.sql":         "select   1\n",
		"/models/nested/c.SQL":  "select 1\n",
		"/models/readme.md":     "not sql",
		"/models/.hidden/d.sql": "select   1\n",
		"/extra.txt":            "select 1\n",
	})

	for _, workers := range []int{1, 4} {
		l := newLinter(t, only("LT01"), linter.WithFS(fs), linter.WithWorkers(workers))
		report, err := l.LintPaths(context.Background(), []string{"/models", "/extra.txt", "/models/a.sql"}, false)
		require.NoError(t, err)

		assert.NotEmpty(t, report.RunID)
		assert.Equal(t, []string{"/extra.txt", "/models/a.sql", "/models/b.sql", "/models/nested/c.SQL"}, paths(report))

		stats := report.Stats()
		assert.Equal(t, 4, stats.Files)
		assert.Equal(t, 1, stats.Violations)
		assert.Equal(t, 1, stats.Warnings)
		assert.True(t, report.HasFailures())
	}
}

func TestLintPathsReportsMissingFiles(t *testing.T) {
	fs := memFS(t, map[string]string{"/a.sql": "select 1\n"})
	l := newLinter(t, only("LT01"), linter.WithFS(fs))

	report, err := l.LintPaths(context.Background(), []string{"/a.sql", "/missing.sql"}, false)
	require.NoError(t, err)
	require.Len(t, report.Files, 2)
	assert.NoError(t, report.Files[0].Err)
	assert.Error(t, report.Files[1].Err)
	assert.Equal(t, 1, report.Stats().FileErrors)
}

func TestLintPathsWritesFixes(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/a.sql": "select   1\n",
		"/b.sql": "select 1\n",
	})

	l := newLinter(t, only("LT01"), linter.WithFS(fs), linter.WithWriteFixes(true), linter.WithWorkers(2))
	report, err := l.LintPaths(context.Background(), []string{"/"}, true)
	require.NoError(t, err)
	require.Len(t, report.Files, 2)
	assert.True(t, report.Files[0].Changed())
	assert.False(t, report.Files[1].Changed())
	assert.Equal(t, 1, report.Stats().Fixed)
	assert.False(t, report.HasFailures())

	b, err := afero.ReadFile(fs, "/a.sql")
	require.NoError(t, err)
	assert.Equal(t, "select 1\n", string(b))

	info, err := fs.Stat("/a.sql")
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())
}

func TestFixWithoutWriteLeavesFiles(t *testing.T) {
	fs := memFS(t, map[string]string{"/a.sql": "select   1\n"})
	l := newLinter(t, only("LT01"), linter.WithFS(fs))

	report, err := l.LintPaths(context.Background(), []string{"/a.sql"}, true)
	require.NoError(t, err)
	assert.Equal(t, "select 1\n", report.Files[0].Fixed)

	b, err := afero.ReadFile(fs, "/a.sql")
	require.NoError(t, err)
	assert.Equal(t, "select   1\n", string(b))
}

// panickyTemplater panics on files whose text mentions "boom".
type panickyTemplater struct{}

func (panickyTemplater) Name() string { return "panicky" }

func (panickyTemplater) Expand(_ context.Context, path, raw string, _ map[string]any) (*source.File, error) {
	if strings.Contains(raw, "boom") {
		panic("templater exploded")
	}
	return source.NewLiteralFile(path, raw), nil
}

func TestLintPathsIsolatesPanics(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/a.sql": "select boom\n",
		"/b.sql": "select   1\n",
	})
	logger, logs := testutil.NewCaptureLogger(t)
	l := newLinter(t, only("LT01"), linter.WithFS(fs), linter.WithTemplater(panickyTemplater{}, nil),
		linter.WithWorkers(2), linter.WithLogger(logger))

	report, err := l.LintPaths(context.Background(), []string{"/"}, false)
	require.NoError(t, err)
	require.Len(t, report.Files, 2)

	require.Error(t, report.Files[0].Err)
	assert.Contains(t, report.Files[0].Err.Error(), "templater exploded")
	assert.NoError(t, report.Files[1].Err)
	assert.Len(t, report.Files[1].Violations, 1)
	assert.True(t, logs.Contains("panic while processing file"))
	assert.True(t, logs.Contains("path=/a.sql"))
}

func TestLintPathsCancelled(t *testing.T) {
	fs := memFS(t, map[string]string{"/a.sql": "select 1\n", "/b.sql": "select 1\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		l := newLinter(t, linter.WithFS(fs), linter.WithWorkers(workers))
		_, err := l.LintPaths(ctx, []string{"/"}, false)
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestRunnersVisitEveryIndex(t *testing.T) {
	for _, r := range []linter.Runner{linter.SequentialRunner{}, linter.ParallelRunner{Workers: 3}} {
		seen := make([]bool, 10)
		err := r.Run(context.Background(), len(seen), func(_ context.Context, i int) error {
			seen[i] = true
			return nil
		})
		require.NoError(t, err)
		for i, ok := range seen {
			assert.True(t, ok, "index %d", i)
		}
	}
}
