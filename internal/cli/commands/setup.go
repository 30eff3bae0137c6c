// Package commands implements the leaplint subcommands.
package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplint/internal/cache"
	"github.com/leapstack-labs/leaplint/internal/cli/config"
	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/internal/templater"
	"github.com/leapstack-labs/leaplint/pkg/linter"
	"github.com/leapstack-labs/leaplint/pkg/source"
)

// ErrViolations is returned when a run leaves violations or file errors
// behind, so the process exits non-zero.
var ErrViolations = errors.New("lint violations found")

// StdinPath is the path argument that reads SQL from standard input.
const StdinPath = "-"

// Templaters lists the accepted templater names.
var Templaters = []string{source.RawTemplater{}.Name(), templater.Name}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext reads the config and logger the root command stored in
// the context and builds a renderer for the configured output.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output)),
	}
}

// NewLinter builds a linter from the configuration.
func (c *CommandContext) NewLinter(extra ...linter.Option) (*linter.Linter, error) {
	tpl, err := newTemplater(c.Cfg.Templater)
	if err != nil {
		return nil, err
	}
	opts := []linter.Option{
		linter.WithLogger(c.Logger),
		linter.WithConfig(c.Cfg.LintConfig()),
		linter.WithDialect(c.Cfg.Dialect),
		linter.WithTemplater(tpl, c.Cfg.Vars),
		linter.WithMaxIterations(c.Cfg.MaxIterations),
		linter.WithWorkers(c.Cfg.Workers),
	}
	if c.Cfg.Cache {
		dc, err := openCache(c.Cfg, c.Logger)
		if err != nil {
			c.Logger.Warn("lint cache disabled", "error", err)
		} else {
			opts = append(opts, linter.WithCache(dc))
		}
	}
	return linter.New(append(opts, extra...)...)
}

func newTemplater(name string) (source.Templater, error) {
	switch strings.ToLower(name) {
	case "", source.RawTemplater{}.Name():
		return source.RawTemplater{}, nil
	case templater.Name:
		return templater.New(), nil
	default:
		return nil, fmt.Errorf("unknown templater %q (want one of %s)", name, strings.Join(Templaters, ", "))
	}
}

func cacheDir(cfg *config.Config) (string, error) {
	if cfg.CacheDir != "" {
		return cfg.CacheDir, nil
	}
	return cache.DefaultDir()
}

func openCache(cfg *config.Config, logger *slog.Logger) (*cache.DiskCache, error) {
	dir, err := cacheDir(cfg)
	if err != nil {
		return nil, err
	}
	return cache.New(afero.NewOsFs(), dir, logger)
}

// pathsOrDefault returns args, or the working directory when empty.
func pathsOrDefault(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

func isStdin(args []string) bool {
	return len(args) == 1 && args[0] == StdinPath
}
