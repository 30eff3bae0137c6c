package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/linter"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Severity      string // Minimum severity: error, warning, info, hint
	Quiet         bool   // Only show files with something to report
	Watch         bool   // Re-lint when SQL files change
	StdinFilename string // Path reported for SQL read from stdin
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Report lint violations in SQL files",
		Long: `Lint SQL files and report rule violations.

Directories are searched recursively for .sql files; hidden directories are
skipped. Use - to read a single file from standard input.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Plain text
  - JSON/YAML: Machine-readable format`,
		Example: `  # Lint the current directory
  leaplint lint

  # Lint with the duckdb dialect and only layout rules
  leaplint lint models/ --dialect duckdb --rules layout

  # Lint from stdin
  cat query.sql | leaplint lint -

  # Re-lint on every change
  leaplint lint models/ --watch

  # Machine-readable output
  leaplint lint --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity to report: error, warning, info, hint")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Only show files with violations")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch paths and re-lint on change")
	cmd.Flags().StringVar(&opts.StdinFilename, "stdin-filename", "stdin.sql", "Path reported for SQL read from stdin")

	_ = cmd.RegisterFlagCompletionFunc("severity", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"error", "warning", "info", "hint"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	threshold, ok := lint.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("unknown severity %q", opts.Severity)
	}
	cc := NewCommandContext(cmd)
	l, err := cc.NewLinter()
	if err != nil {
		return err
	}
	ropts := output.ReportOptions{MinSeverity: threshold, Quiet: opts.Quiet}

	if isStdin(args) {
		rep, err := runStdin(cmd.Context(), cmd.InOrStdin(), l, opts.StdinFilename, false)
		if err != nil {
			return err
		}
		return finish(cc.Renderer, rep, ropts)
	}

	paths := pathsOrDefault(args)
	run := func(ctx context.Context) error {
		rep, err := l.LintPaths(ctx, paths, false)
		if err != nil {
			return err
		}
		return finish(cc.Renderer, rep, ropts)
	}
	if opts.Watch {
		return watchPaths(cmd.Context(), cc, paths, run)
	}
	return run(cmd.Context())
}

// runStdin lints or fixes text read from r as a one-file report.
func runStdin(ctx context.Context, r io.Reader, l *linter.Linter, path string, fixing bool) (*linter.Report, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	rep := &linter.Report{RunID: uuid.NewString(), Started: time.Now()}
	var res *linter.FileResult
	if fixing {
		res, err = l.FixString(ctx, string(b), path)
	} else {
		res, err = l.LintString(ctx, string(b), path)
	}
	if err != nil {
		return nil, err
	}
	rep.Files = []*linter.FileResult{res}
	rep.Duration = time.Since(rep.Started)
	return rep, nil
}

// finish renders rep and turns failures into ErrViolations.
func finish(r *output.Renderer, rep *linter.Report, opts output.ReportOptions) error {
	if err := r.Report(rep, opts); err != nil {
		return err
	}
	if failed(rep, opts.MinSeverity) {
		return ErrViolations
	}
	return nil
}

// failed reports whether rep has a file error, a non-converged file or an
// unfixed violation at or above threshold.
func failed(rep *linter.Report, threshold lint.Severity) bool {
	for _, f := range rep.Files {
		if f.Err != nil || f.NonConvergence {
			return true
		}
		for _, v := range f.Remaining() {
			if v.Kind != lint.KindLint || v.Severity <= threshold {
				return true
			}
		}
	}
	return false
}
