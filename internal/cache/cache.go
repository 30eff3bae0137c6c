// Package cache persists lint results between runs, keyed by a digest of
// the file content and the linter configuration.
package cache

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Bump when Entry or Payload change shape.
const schemaVersion uint16 = 1

// DefaultDirName is the directory name used under the user cache dir.
const DefaultDirName = "leaplint"

// Entry is one cached violation. Fixes are not stored: a violation
// restored from the cache remembers that it was fixable and the fix
// description, but fixing always re-evaluates the file.
type Entry struct {
	RuleID         string
	Kind           uint8
	Severity       int
	Message        string
	Line           int
	Column         int
	Offset         int
	Segment        uint64
	Fixable        bool
	FixDescription string
	DocURL         string
}

// Payload is the on-disk format of one cache file.
type Payload struct {
	Schema  uint16
	Entries []Entry
}

// DiskCache stores payloads as msgpack files, one per key. It is safe for
// concurrent use. Read and write failures are logged and treated as misses.
type DiskCache struct {
	mu     sync.RWMutex
	fs     afero.Fs
	dir    string
	logger *slog.Logger
}

// New returns a cache rooted at dir on fs.
func New(fs afero.Fs, dir string, logger *slog.Logger) (*DiskCache, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{fs: fs, dir: dir, logger: logger}, nil
}

// DefaultDir returns $XDG_CACHE_HOME/leaplint, or ~/.cache/leaplint.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, DefaultDirName), nil
}

func (c *DiskCache) pathFor(key string) string {
	// Two-character fan-out keeps directories small.
	if len(key) > 2 {
		return filepath.Join(c.dir, key[:2], key+".mp")
	}
	return filepath.Join(c.dir, key+".mp")
}

// Load implements linter.Cache.
func (c *DiskCache) Load(key string) ([]lint.Violation, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, err := afero.ReadFile(c.fs, c.pathFor(key))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.logger.Debug("cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var p Payload
	if err := msgpack.Unmarshal(b, &p); err != nil {
		c.logger.Debug("cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	if p.Schema != schemaVersion {
		return nil, false
	}
	return toViolations(p.Entries), true
}

// Store implements linter.Cache.
func (c *DiskCache) Store(key string, vs []lint.Violation) {
	if c == nil {
		return
	}
	if err := c.put(key, &Payload{Schema: schemaVersion, Entries: toEntries(vs)}); err != nil {
		c.logger.Debug("cache write failed", "key", key, "error", err)
	}
}

func (c *DiskCache) put(key string, p *Payload) error {
	b, err := msgpack.Marshal(p)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.pathFor(key)
	if err := c.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := afero.TempFile(c.fs, filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		_ = c.fs.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = c.fs.Remove(tmp)
		return err
	}
	return c.fs.Rename(tmp, path)
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.fs.RemoveAll(c.dir); err != nil {
		return err
	}
	return c.fs.MkdirAll(c.dir, 0o755)
}

func toEntries(vs []lint.Violation) []Entry {
	out := make([]Entry, len(vs))
	for i, v := range vs {
		e := Entry{
			RuleID:   v.RuleID,
			Kind:     uint8(v.Kind),
			Severity: int(v.Severity),
			Message:  v.Message,
			Line:     v.Pos.Line,
			Column:   v.Pos.Column,
			Offset:   v.Pos.Offset,
			Segment:  uint64(v.Segment),
			DocURL:   v.DocumentationURL,
		}
		if v.Fix != nil {
			e.Fixable = true
			e.FixDescription = v.Fix.Description
		}
		out[i] = e
	}
	return out
}

func toViolations(es []Entry) []lint.Violation {
	out := make([]lint.Violation, len(es))
	for i, e := range es {
		v := lint.Violation{
			RuleID:           e.RuleID,
			Kind:             lint.Kind(e.Kind),
			Severity:         lint.Severity(e.Severity),
			Message:          e.Message,
			Pos:              token.Position{Line: e.Line, Column: e.Column, Offset: e.Offset},
			Segment:          segment.ID(e.Segment),
			DocumentationURL: e.DocURL,
		}
		if e.Fixable {
			v.Fix = &fix.Fix{Description: e.FixDescription}
		}
		out[i] = v
	}
	return out
}
