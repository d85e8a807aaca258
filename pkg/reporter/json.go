package reporter

import (
	"encoding/json"
	"io"

	"github.com/yaklabco/marklint/pkg/runner"
)

// JSONOutput is the top-level JSON document.
type JSONOutput struct {
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult holds one file's violations.
type JSONFileResult struct {
	Path       string          `json:"path"`
	Error      string          `json:"error,omitempty"`
	Violations []JSONViolation `json:"violations"`
}

// JSONViolation mirrors the engine's violation record.
type JSONViolation struct {
	RuleID      string `json:"rule_id"`
	Alias       string `json:"alias"`
	Severity    string `json:"severity"`
	StartLine   int    `json:"start_line"`
	StartColumn int    `json:"start_column"`
	EndLine     int    `json:"end_line"`
	EndColumn   int    `json:"end_column"`
	Message     string `json:"message"`
	Context     string `json:"context,omitempty"`
}

// JSONSummary aggregates counts for the run.
type JSONSummary struct {
	Files           int `json:"files"`
	FilesWithIssues int `json:"files_with_issues"`
	Violations      int `json:"violations"`
	Errors          int `json:"errors"`
}

// JSONReporter renders the full result as one JSON document.
type JSONReporter struct {
	opts Options
}

// Report writes indented JSON.
func (r *JSONReporter) Report(w io.Writer, result *runner.Result) error {
	out := JSONOutput{
		Files: make([]JSONFileResult, 0, len(result.Files)),
		Summary: JSONSummary{
			Files:           len(result.Files),
			FilesWithIssues: result.FilesWithIssues(),
			Violations:      result.TotalViolations(),
			Errors:          result.ErrorCount(),
		},
	}

	for i := range result.Files {
		file := &result.Files[i]
		jsonFile := JSONFileResult{Path: file.Path, Violations: []JSONViolation{}}

		if file.Err != nil {
			jsonFile.Error = file.Err.Error()
		}
		if file.Result != nil {
			for _, v := range file.Result.Violations {
				jsonFile.Violations = append(jsonFile.Violations, JSONViolation{
					RuleID:      v.RuleID,
					Alias:       v.Alias,
					Severity:    string(v.Severity),
					StartLine:   v.StartLine,
					StartColumn: v.StartColumn,
					EndLine:     v.EndLine,
					EndColumn:   v.EndColumn,
					Message:     v.Message,
					Context:     v.Context,
				})
			}
		}

		out.Files = append(out.Files, jsonFile)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
