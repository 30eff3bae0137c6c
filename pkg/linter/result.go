package linter

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// ErrNonConvergence is reported when fixing a file does not settle within
// the pass limit.
var ErrNonConvergence = errors.New("fixes did not converge")

// PassReport summarises one pass of the fix loop.
type PassReport struct {
	Index      int
	Violations int
	Applied    int
	Unresolved int
	Skipped    []SkippedFix
}

// SkippedFix names the violation whose fix was held back in a pass.
type SkippedFix struct {
	RuleID string
	Pos    token.Position
	Reason fix.SkipReason
}

// FileResult is the outcome of linting or fixing one file.
type FileResult struct {
	Path string
	// Source is the text as read; Fixed is the text after fixing. They are
	// equal when linting, or when nothing was fixed.
	Source     string
	Fixed      string
	Violations []lint.Violation
	Passes     []PassReport
	// Converged is set when the last pass found no fixable violations.
	Converged bool
	// Blocked is set when fixable violations remained but every fix of the
	// last pass was skipped, so another pass could not make progress.
	Blocked bool
	// NonConvergence is set when fixable violations remained at the limit.
	NonConvergence bool
	// Cached is set when the violations came from the cache.
	Cached bool
	// Err is a file-level failure: unreadable file, dialect error, or an
	// internal panic.
	Err error
}

// Changed reports whether fixing altered the text.
func (r *FileResult) Changed() bool {
	return r.Fixed != r.Source
}

// NonConvergenceErr returns an error wrapping ErrNonConvergence when the
// fix loop hit its limit, or nil.
func (r *FileResult) NonConvergenceErr() error {
	if !r.NonConvergence {
		return nil
	}
	return fmt.Errorf("%s: %w after %d passes", r.Path, ErrNonConvergence, len(r.Passes))
}

// Remaining returns the violations that were not fixed.
func (r *FileResult) Remaining() []lint.Violation {
	var out []lint.Violation
	for _, v := range r.Violations {
		if !v.Fixed {
			out = append(out, v)
		}
	}
	return out
}

// FixedCount returns how many violations were fixed.
func (r *FileResult) FixedCount() int {
	return len(r.Violations) - len(r.Remaining())
}

func sortViolations(vs []lint.Violation) {
	sort.SliceStable(vs, func(i, j int) bool { return vs[i].Less(vs[j]) })
}

// Report is the outcome of LintPaths.
type Report struct {
	RunID    string
	Started  time.Time
	Duration time.Duration
	// Files are in path order.
	Files []*FileResult
}

// Stats are totals over a report.
type Stats struct {
	Files          int
	Violations     int
	Fixed          int
	Errors         int
	Warnings       int
	FileErrors     int
	NonConvergence int
}

// Stats totals the report.
func (r *Report) Stats() Stats {
	var s Stats
	for _, f := range r.Files {
		s.Files++
		if f.Err != nil {
			s.FileErrors++
		}
		if f.NonConvergence {
			s.NonConvergence++
		}
		for _, v := range f.Violations {
			s.Violations++
			if v.Fixed {
				s.Fixed++
				continue
			}
			switch v.Severity {
			case lint.SeverityError:
				s.Errors++
			case lint.SeverityWarning:
				s.Warnings++
			}
		}
	}
	return s
}

// HasFailures reports whether any file has an unfixed violation, a
// file-level error or did not converge.
func (r *Report) HasFailures() bool {
	for _, f := range r.Files {
		if f.Err != nil || f.NonConvergence || len(f.Remaining()) > 0 {
			return true
		}
	}
	return false
}
