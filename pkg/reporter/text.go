package reporter

import (
	"fmt"
	"io"

	"github.com/yaklabco/marklint/pkg/runner"
)

// TextReporter prints one line per violation:
//
//	path:line:col MD013/line-length Expected: 80; Actual: 102
type TextReporter struct {
	opts Options
}

// Report renders every file's violations in discovery order.
func (r *TextReporter) Report(w io.Writer, result *runner.Result) error {
	for i := range result.Files {
		file := &result.Files[i]

		if file.Err != nil {
			if _, err := fmt.Fprintf(w, "%s: %v\n", file.Path, file.Err); err != nil {
				return err
			}
			continue
		}
		if file.Result == nil {
			continue
		}

		for _, v := range file.Result.Violations {
			rule := r.opts.FormatRule(v.RuleID, v.Alias)
			if _, err := fmt.Fprintf(w, "%s:%d:%d %s %s\n",
				file.Path, v.StartLine, v.StartColumn, rule, v.Message); err != nil {
				return err
			}
		}
	}

	if r.opts.Summary {
		if _, err := fmt.Fprintf(w, "%d violation(s) in %d file(s)\n",
			result.TotalViolations(), result.FilesWithIssues()); err != nil {
			return err
		}
	}
	return nil
}
