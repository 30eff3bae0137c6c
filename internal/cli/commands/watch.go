package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/leaplint/pkg/linter"
)

// watchDebounce collapses bursts of events, e.g. an editor's
// write-rename-chmod sequence, into one run.
const watchDebounce = 150 * time.Millisecond

// watchPaths runs run once, then again after every change to a .sql file
// under paths, until ctx is done.
func watchPaths(ctx context.Context, cc *CommandContext, paths []string, run func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, p := range paths {
		if err := watchTree(watcher, p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}

	if err := run(ctx); err != nil && !errors.Is(err, ErrViolations) {
		return err
	}
	cc.Renderer.Status("Watching for changes. Press Ctrl+C to stop.")

	trigger := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name); err != nil {
						cc.Logger.Warn("cannot watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if !strings.EqualFold(filepath.Ext(event.Name), linter.SQLExtension) {
				continue
			}
			cc.Logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case <-trigger:
			cc.Renderer.Status("Change detected, re-linting...")
			if err := run(ctx); err != nil && !errors.Is(err, ErrViolations) {
				if ctx.Err() != nil {
					return nil
				}
				cc.Logger.Warn("lint run failed", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cc.Logger.Warn("watcher error", "error", err)
		}
	}
}

// watchTree adds dir and its non-hidden subdirectories to the watcher. A
// file is watched through its directory, since editors often replace files
// instead of writing them.
func watchTree(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(path))
	}
	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if p != path && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}
