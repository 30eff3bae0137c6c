package output

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/linter"
)

// ViolationRecord is the machine-readable form of a violation.
type ViolationRecord struct {
	Rule       string `json:"rule" yaml:"rule"`
	Kind       string `json:"kind" yaml:"kind"`
	Severity   string `json:"severity" yaml:"severity"`
	Line       int    `json:"line" yaml:"line"`
	Column     int    `json:"column" yaml:"column"`
	Message    string `json:"message" yaml:"message"`
	Fixable    bool   `json:"fixable" yaml:"fixable"`
	Fixed      bool   `json:"fixed" yaml:"fixed"`
	Unresolved bool   `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
	DocURL     string `json:"doc_url,omitempty" yaml:"doc_url,omitempty"`
}

// FileRecord is the machine-readable form of one file's result.
type FileRecord struct {
	Path           string            `json:"path" yaml:"path"`
	Violations     []ViolationRecord `json:"violations" yaml:"violations"`
	Changed        bool              `json:"changed" yaml:"changed"`
	Passes         int               `json:"passes" yaml:"passes"`
	NonConvergence bool              `json:"non_convergence,omitempty" yaml:"non_convergence,omitempty"`
	Blocked        bool              `json:"blocked,omitempty" yaml:"blocked,omitempty"`
	Cached         bool              `json:"cached,omitempty" yaml:"cached,omitempty"`
	Error          string            `json:"error,omitempty" yaml:"error,omitempty"`
}

// SummaryRecord totals a report.
type SummaryRecord struct {
	Files          int `json:"files" yaml:"files"`
	Violations     int `json:"violations" yaml:"violations"`
	Fixed          int `json:"fixed" yaml:"fixed"`
	Errors         int `json:"errors" yaml:"errors"`
	Warnings       int `json:"warnings" yaml:"warnings"`
	FileErrors     int `json:"file_errors" yaml:"file_errors"`
	NonConvergence int `json:"non_convergence" yaml:"non_convergence"`
}

// ReportRecord is the machine-readable form of a run.
type ReportRecord struct {
	RunID      string        `json:"run_id" yaml:"run_id"`
	DurationMS int64         `json:"duration_ms" yaml:"duration_ms"`
	Files      []FileRecord  `json:"files" yaml:"files"`
	Summary    SummaryRecord `json:"summary" yaml:"summary"`
}

// NewViolationRecord converts a violation.
func NewViolationRecord(v lint.Violation) ViolationRecord {
	return ViolationRecord{
		Rule:       v.RuleID,
		Kind:       v.Kind.String(),
		Severity:   v.Severity.String(),
		Line:       v.Pos.Line,
		Column:     v.Pos.Column,
		Message:    v.Message,
		Fixable:    v.Fix != nil,
		Fixed:      v.Fixed,
		Unresolved: v.Unresolved,
		DocURL:     v.DocumentationURL,
	}
}

// NewFileRecord converts a file result.
func NewFileRecord(f *linter.FileResult) FileRecord {
	rec := FileRecord{
		Path:           f.Path,
		Violations:     make([]ViolationRecord, 0, len(f.Violations)),
		Changed:        f.Changed(),
		Passes:         len(f.Passes),
		NonConvergence: f.NonConvergence,
		Blocked:        f.Blocked,
		Cached:         f.Cached,
	}
	for _, v := range f.Violations {
		rec.Violations = append(rec.Violations, NewViolationRecord(v))
	}
	if f.Err != nil {
		rec.Error = f.Err.Error()
	}
	return rec
}

// NewReportRecord converts a report.
func NewReportRecord(rep *linter.Report) ReportRecord {
	s := rep.Stats()
	rec := ReportRecord{
		RunID:      rep.RunID,
		DurationMS: rep.Duration.Milliseconds(),
		Files:      make([]FileRecord, 0, len(rep.Files)),
		Summary: SummaryRecord{
			Files:          s.Files,
			Violations:     s.Violations,
			Fixed:          s.Fixed,
			Errors:         s.Errors,
			Warnings:       s.Warnings,
			FileErrors:     s.FileErrors,
			NonConvergence: s.NonConvergence,
		},
	}
	for _, f := range rep.Files {
		rec.Files = append(rec.Files, NewFileRecord(f))
	}
	return rec
}

// ReportOptions tune text rendering of a report.
type ReportOptions struct {
	// MinSeverity hides violations less severe than it. Parse and template
	// violations are always shown.
	MinSeverity lint.Severity
	// Fixing labels the summary for a fix run.
	Fixing bool
	// Quiet omits files without anything to report.
	Quiet bool
}

// Report renders a lint or fix report.
func (r *Renderer) Report(rep *linter.Report, opts ReportOptions) error {
	if r.IsStructured() {
		return r.Encode(NewReportRecord(rep))
	}

	st := r.styles
	for _, f := range rep.Files {
		shown := visible(f.Violations, opts.MinSeverity)
		if opts.Quiet && len(shown) == 0 && f.Err == nil && !f.NonConvergence && !f.Changed() {
			continue
		}

		status := st.Success.Render("PASS")
		switch {
		case f.Err != nil:
			status = st.Error.Render("ERROR")
		case len(f.Remaining()) > 0 || f.NonConvergence:
			status = st.Error.Render("FAIL")
		case f.Changed():
			status = st.Fixed.Render("FIXED")
		}
		r.Printf("== [%s] %s\n", st.Path.Render(f.Path), status)

		if f.Err != nil {
			r.Printf("   %s\n", st.Error.Render(f.Err.Error()))
		}
		for _, v := range shown {
			r.Println(r.violationLine(v))
		}
		if f.NonConvergence {
			r.Printf("   %s\n", st.Warning.Render(fmt.Sprintf("fixes did not settle after %d passes", len(f.Passes))))
		}
		if f.Blocked {
			r.Printf("   %s\n", st.Warning.Render("remaining fixes could not be applied"))
		}
	}
	r.summary(rep, opts)
	return nil
}

func visible(vs []lint.Violation, threshold lint.Severity) []lint.Violation {
	var out []lint.Violation
	for _, v := range vs {
		if v.Kind != lint.KindLint || v.Severity <= threshold {
			out = append(out, v)
		}
	}
	return out
}

func (r *Renderer) violationLine(v lint.Violation) string {
	st := r.styles
	pos := st.Position.Render(fmt.Sprintf("L:%4d | P:%4d", v.Pos.Line, v.Pos.Column))
	line := fmt.Sprintf("%s | %s | %s %s",
		pos,
		st.RuleID.Render(v.RuleID),
		st.Severity(v.Severity).Render(fmt.Sprintf("%-7s", v.Severity)),
		v.Message,
	)
	switch {
	case v.Fixed:
		line += " " + st.Fixed.Render("[fixed]")
	case v.Unresolved:
		line += " " + st.Muted.Render("[unresolved]")
	case v.Fix != nil:
		line += " " + st.Muted.Render("[fixable]")
	}
	return line
}

func (r *Renderer) summary(rep *linter.Report, opts ReportOptions) {
	st := r.styles
	s := rep.Stats()

	parts := []string{plural(s.Files, "file")}
	remaining := s.Violations - s.Fixed
	if remaining == 0 {
		parts = append(parts, st.Success.Render("no violations"))
	} else {
		parts = append(parts, fmt.Sprintf("%s (%d errors, %d warnings)", plural(remaining, "violation"), s.Errors, s.Warnings))
	}
	if opts.Fixing {
		parts = append(parts, st.Fixed.Render(fmt.Sprintf("%d fixed", s.Fixed)))
	}
	if s.FileErrors > 0 {
		parts = append(parts, st.Error.Render(plural(s.FileErrors, "unreadable file")))
	}
	if s.NonConvergence > 0 {
		parts = append(parts, st.Warning.Render(fmt.Sprintf("%d not converged", s.NonConvergence)))
	}
	r.Printf("%s %s\n", st.Header.Render("Summary:"), strings.Join(parts, ", "))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
