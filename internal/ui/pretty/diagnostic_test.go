package pretty

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
	"github.com/yaklabco/marklint/pkg/runner"
)

func TestRenderPlain(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileResult{
			{
				Path: "a.md",
				Result: &lint.Result{
					Violations: []lint.Violation{
						{
							RuleID: "MD001", Alias: "heading-increment",
							Severity: config.SeverityError,
							Message:  "Expected: h2; Actual: h4",
							StartLine: 2, StartColumn: 1, EndLine: 2, EndColumn: 5,
						},
					},
				},
			},
			{Path: "clean.md", Result: &lint.Result{}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(false).Render(&buf, result))

	out := buf.String()
	assert.Contains(t, out, "a.md")
	assert.Contains(t, out, "2:1 error MD001/heading-increment Expected: h2; Actual: h4")
	assert.NotContains(t, out, "clean.md")
	assert.Contains(t, out, "1 violation(s) in 1 of 2 file(s)")
}

func TestSeverityStyle(t *testing.T) {
	t.Parallel()

	styles := NewStyles(true)
	assert.Equal(t, styles.Error, styles.SeverityStyle(config.SeverityError))
	assert.Equal(t, styles.Warning, styles.SeverityStyle(config.SeverityWarning))
}
