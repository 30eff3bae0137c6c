package linter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// SQLExtension is the extension collected when a directory is expanded.
const SQLExtension = ".sql"

// target is one expanded input: a file to process, or a path that could
// not be expanded.
type target struct {
	path string
	err  error
}

// expand turns paths into a sorted, de-duplicated list of files.
// Directories are walked for .sql files, skipping hidden directories.
// Files named explicitly are kept whatever their extension.
func (l *Linter) expand(paths []string) []target {
	seen := make(map[string]bool)
	var out []target
	add := func(t target) {
		if seen[t.path] {
			return
		}
		seen[t.path] = true
		out = append(out, t)
	}

	for _, p := range paths {
		p = filepath.Clean(p)
		info, err := l.fs.Stat(p)
		if err != nil {
			add(target{path: p, err: err})
			continue
		}
		if !info.IsDir() {
			add(target{path: p})
			continue
		}
		err = afero.Walk(l.fs, p, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				add(target{path: path, err: err})
				return nil
			}
			if info.IsDir() {
				if path != p && strings.HasPrefix(info.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.EqualFold(filepath.Ext(path), SQLExtension) {
				add(target{path: path})
			}
			return nil
		})
		if err != nil {
			add(target{path: p, err: err})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].path < out[j].path })
	return out
}

// LintPaths lints, or with fix set fixes, every file under paths. Failures
// confined to one file are reported on its FileResult; the returned error is
// reserved for cancellation.
func (l *Linter) LintPaths(ctx context.Context, paths []string, fix bool) (*Report, error) {
	report := &Report{RunID: uuid.NewString(), Started: time.Now()}
	targets := l.expand(paths)
	report.Files = make([]*FileResult, len(targets))

	l.logger.Info("linting files",
		"run_id", report.RunID,
		"files", len(targets),
		"fix", fix,
		"dialect", l.dialect.Name(),
		"workers", l.workers)

	err := l.runner().Run(ctx, len(targets), func(ctx context.Context, i int) error {
		res, err := l.processFile(ctx, targets[i], fix)
		if err != nil {
			return err
		}
		report.Files[i] = res
		return nil
	})
	report.Duration = time.Since(report.Started)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// processFile returns an error only for cancellation. Everything else,
// including a panic inside a rule or the parser, ends up in FileResult.Err.
func (l *Linter) processFile(ctx context.Context, t target, fixing bool) (res *FileResult, err error) {
	if t.err != nil {
		return &FileResult{Path: t.path, Err: t.err}, nil
	}

	defer func() {
		if r := recover(); r != nil {
			l.logger.Warn("panic while processing file",
				"path", t.path,
				"panic", r,
				"stack", string(debug.Stack()))
			res, err = &FileResult{Path: t.path, Err: fmt.Errorf("internal error: %v", r)}, nil
		}
	}()

	b, err := afero.ReadFile(l.fs, t.path)
	if err != nil {
		return &FileResult{Path: t.path, Err: err}, nil
	}
	text := string(b)

	if fixing {
		res, err = l.FixString(ctx, text, t.path)
	} else {
		res, err = l.LintString(ctx, text, t.path)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return &FileResult{Path: t.path, Source: text, Fixed: text, Err: err}, nil
	}

	if fixing && l.writeFixes && res.Changed() {
		if werr := l.writeBack(t.path, res.Fixed); werr != nil {
			res.Err = fmt.Errorf("write fixes: %w", werr)
		} else {
			l.logger.Debug("wrote fixes", "path", t.path, "fixed", res.FixedCount())
		}
	}
	return res, nil
}

func (l *Linter) writeBack(path, text string) error {
	mode := os.FileMode(0o644)
	if info, err := l.fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return afero.WriteFile(l.fs, path, []byte(text), mode)
}
