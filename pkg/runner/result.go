package runner

import (
	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
)

// FileResult is the outcome of linting one file.
type FileResult struct {
	// Path is the file that was linted.
	Path string

	// Result holds the violation stream; nil when the file could not be
	// read.
	Result *lint.Result

	// Err records a read failure for this file.
	Err error
}

// Result aggregates a whole run. Files appear in discovery order
// regardless of which worker finished first.
type Result struct {
	Files []FileResult
}

// TotalViolations counts violations across all files.
func (r *Result) TotalViolations() int {
	total := 0
	for i := range r.Files {
		if r.Files[i].Result != nil {
			total += len(r.Files[i].Result.Violations)
		}
	}
	return total
}

// ErrorCount counts error-severity violations across all files.
func (r *Result) ErrorCount() int {
	total := 0
	for i := range r.Files {
		if r.Files[i].Result != nil {
			total += r.Files[i].Result.ErrorCount()
		}
	}
	return total
}

// FilesWithIssues counts files that produced at least one violation.
func (r *Result) FilesWithIssues() int {
	count := 0
	for i := range r.Files {
		if r.Files[i].Result != nil && r.Files[i].Result.HasIssues() {
			count++
		}
	}
	return count
}

// HasErrors reports whether any file failed to read or produced an
// error-severity violation.
func (r *Result) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].Err != nil {
			return true
		}
		if r.Files[i].Result == nil {
			continue
		}
		for _, v := range r.Files[i].Result.Violations {
			if v.Severity == config.SeverityError {
				return true
			}
		}
	}
	return false
}
