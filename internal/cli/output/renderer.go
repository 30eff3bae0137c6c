// Package output renders command results for terminals, pipes and machines.
//
// Output adapts to the environment:
//   - Terminal: styled text with colors
//   - Piped/Scripted: the same text without escape codes
//   - JSON / YAML: machine-readable records
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// OutputMode selects how results are rendered.
type OutputMode string

// Output modes.
const (
	ModeAuto  OutputMode = "auto"
	ModeText  OutputMode = "text"
	ModePlain OutputMode = "plain"
	ModeJSON  OutputMode = "json"
	ModeYAML  OutputMode = "yaml"
)

// Mode converts a configured value to an OutputMode. Empty and unknown
// values are treated as auto.
func Mode(s string) OutputMode {
	switch m := OutputMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeText, ModePlain, ModeJSON, ModeYAML:
		return m
	default:
		return ModeAuto
	}
}

// Renderer writes command output.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	if mode == ModeAuto || mode == "" {
		mode = ModePlain
		if isTTY {
			mode = ModeText
		}
	}
	styled := mode == ModeText && isTTY && !termenv.EnvNoColor()
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		styles: NewStyles(out, styled),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Mode returns the effective mode; never ModeAuto.
func (r *Renderer) Mode() OutputMode { return r.mode }

// IsStructured reports whether output is JSON or YAML.
func (r *Renderer) IsStructured() bool {
	return r.mode == ModeJSON || r.mode == ModeYAML
}

// Styles returns the styles in use.
func (r *Renderer) Styles() *Styles { return r.styles }

// Out returns the output writer.
func (r *Renderer) Out() io.Writer { return r.out }

// Println writes a line to the output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to the output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Warn writes a warning to the error output.
func (r *Renderer) Warn(format string, a ...any) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("warning:"), fmt.Sprintf(format, a...))
}

// Status writes a progress message to the error output, so it never
// mixes with structured output.
func (r *Renderer) Status(format string, a ...any) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Muted.Render(fmt.Sprintf(format, a...)))
}

// Encode writes v as JSON or YAML according to the mode; JSON otherwise.
func (r *Renderer) Encode(v any) error {
	if r.mode == ModeYAML {
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
