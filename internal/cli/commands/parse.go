package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// ErrUnparsable is returned when part of the input could not be parsed.
var ErrUnparsable = errors.New("input contains unparsable sections")

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	CodeOnly      bool
	StdinFilename string
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}
	cmd := &cobra.Command{
		Use:   "parse <path>",
		Short: "Print the parse tree of a SQL file",
		Long: `Template and parse a SQL file and print its segment tree.

Each line shows the raw source position, the segment type and, for leaves,
the exact text. Unparsable sections are highlighted and reported. Use - to
read from standard input.`,
		Example: `  # Show the tree
  leaplint parse models/orders.sql

  # Tree without whitespace, as YAML
  echo "select 1" | leaplint parse - --code-only --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.CodeOnly, "code-only", false, "Omit whitespace, newlines and comments")
	cmd.Flags().StringVar(&opts.StdinFilename, "stdin-filename", "stdin.sql", "Path reported for SQL read from stdin")

	return cmd
}

func runParse(cmd *cobra.Command, path string, opts *ParseOptions) error {
	cc := NewCommandContext(cmd)
	l, err := cc.NewLinter()
	if err != nil {
		return err
	}

	var b []byte
	if path == StdinPath {
		path = opts.StdinFilename
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	_, res, err := l.Parse(cmd.Context(), string(b), path)
	if err != nil {
		return err
	}
	if err := cc.Renderer.Tree(path, l.Dialect().Name(), res, opts.CodeOnly); err != nil {
		return err
	}
	if res.HasErrors() {
		return fmt.Errorf("%w: %d found", ErrUnparsable, len(res.Errors))
	}
	return nil
}
