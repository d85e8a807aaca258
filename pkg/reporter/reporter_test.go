package reporter_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
	"github.com/yaklabco/marklint/pkg/reporter"
	"github.com/yaklabco/marklint/pkg/runner"
)

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileResult{
			{
				Path: "docs/a.md",
				Result: &lint.Result{
					Violations: []lint.Violation{
						{
							RuleID: "MD013", Alias: "line-length",
							Severity: config.SeverityError,
							Message:  "Expected: 80; Actual: 102",
							StartLine: 3, StartColumn: 81, EndLine: 3, EndColumn: 103,
						},
					},
				},
			},
			{Path: "docs/b.md", Result: &lint.Result{}},
			{Path: "docs/c.md", Err: errors.New("read failed")},
		},
	}
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	rep, err := reporter.New(reporter.FormatText, reporter.Options{RuleFormat: "both", Summary: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, rep.Report(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "docs/a.md:3:81 MD013/line-length Expected: 80; Actual: 102")
	assert.Contains(t, out, "docs/c.md: read failed")
	assert.Contains(t, out, "1 violation(s) in 1 file(s)")
}

func TestTextReporterIDOnly(t *testing.T) {
	t.Parallel()

	rep, err := reporter.New(reporter.FormatText, reporter.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, rep.Report(&buf, sampleResult()))
	assert.Contains(t, buf.String(), " MD013 ")
	assert.NotContains(t, buf.String(), "MD013/line-length")
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	rep, err := reporter.New(reporter.FormatJSON, reporter.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, rep.Report(&buf, sampleResult()))

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, 3, out.Summary.Files)
	assert.Equal(t, 1, out.Summary.Violations)
	assert.Equal(t, 1, out.Summary.Errors)
	require.Len(t, out.Files, 3)
	require.Len(t, out.Files[0].Violations, 1)
	assert.Equal(t, "MD013", out.Files[0].Violations[0].RuleID)
	assert.Equal(t, "error", out.Files[0].Violations[0].Severity)
	assert.Equal(t, "read failed", out.Files[2].Error)
}

func TestUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New("yaml", reporter.Options{})
	require.Error(t, err)
}
