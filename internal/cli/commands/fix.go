package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/linter"
)

// FixOptions holds options for the fix command.
type FixOptions struct {
	Check         bool // Report what would change without writing
	Quiet         bool
	StdinFilename string
}

// NewFixCommand creates the fix command.
func NewFixCommand() *cobra.Command {
	opts := &FixOptions{}
	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Fix lint violations in SQL files",
		Long: `Apply fixes for fixable violations and write the result back.

Fixing runs in passes: each pass lints the current text and applies every
fix that does not conflict with an earlier one, until nothing changes or
--max-iterations passes have run. Text produced by template tags is never
edited.

With - the SQL is read from standard input and the fixed SQL is written to
standard output.`,
		Example: `  # Fix all SQL under models/
  leaplint fix models/

  # Show what would change, exit non-zero if anything would
  leaplint fix --check

  # Fix stdin to stdout
  leaplint fix - < query.sql > fixed.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Check, "check", false, "Report fixes without writing files; exit non-zero if any file would change")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Only show files with violations or changes")
	cmd.Flags().StringVar(&opts.StdinFilename, "stdin-filename", "stdin.sql", "Path reported for SQL read from stdin")

	return cmd
}

func runFix(cmd *cobra.Command, args []string, opts *FixOptions) error {
	cc := NewCommandContext(cmd)
	l, err := cc.NewLinter(linter.WithWriteFixes(!opts.Check))
	if err != nil {
		return err
	}
	ropts := output.ReportOptions{MinSeverity: lint.SeverityHint, Fixing: true, Quiet: opts.Quiet}

	if isStdin(args) {
		rep, err := runStdin(cmd.Context(), cmd.InOrStdin(), l, opts.StdinFilename, true)
		if err != nil {
			return err
		}
		if cc.Renderer.IsStructured() || opts.Check {
			return finishFix(cc.Renderer, rep, ropts, opts.Check)
		}
		res := rep.Files[0]
		cc.Renderer.Printf("%s", res.Fixed)
		for _, v := range res.Remaining() {
			cc.Renderer.Warn("%s:%d:%d: %s %s", res.Path, v.Pos.Line, v.Pos.Column, v.RuleID, v.Message)
		}
		if err := res.NonConvergenceErr(); err != nil {
			cc.Renderer.Warn("%v", err)
		}
		if failed(rep, lint.SeverityHint) {
			return ErrViolations
		}
		return nil
	}

	rep, err := l.LintPaths(cmd.Context(), pathsOrDefault(args), true)
	if err != nil {
		return err
	}
	return finishFix(cc.Renderer, rep, ropts, opts.Check)
}

func finishFix(r *output.Renderer, rep *linter.Report, opts output.ReportOptions, check bool) error {
	if err := r.Report(rep, opts); err != nil {
		return err
	}
	if check {
		var changed int
		for _, f := range rep.Files {
			if f.Changed() {
				changed++
			}
		}
		if changed > 0 {
			if !r.IsStructured() {
				r.Status("%s would be changed", plural(changed, "file"))
			}
			return fmt.Errorf("%w: %s would be changed", ErrViolations, plural(changed, "file"))
		}
	}
	if failed(rep, opts.MinSeverity) {
		return ErrViolations
	}
	return nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
