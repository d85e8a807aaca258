// Package lint provides the linting engine for marklint: the rule
// contract, the registry, the per-document analysis context, and the
// single-pass traversal driver.
package lint

import (
	"cmp"
	"slices"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/mdast"
)

// Violation is a single located, rule-attributed finding.
type Violation struct {
	// RuleID is the identifier of the rule that produced this violation
	// (e.g. "MD013"), or a synthetic identifier such as "configuration".
	RuleID string

	// Alias is the rule's kebab-case name (e.g. "line-length").
	Alias string

	// Severity is the resolved severity; never "off".
	Severity config.Severity

	// Message is the human-readable description of the issue. For
	// parameterised rules it names the offending value.
	Message string

	// Context is an optional short excerpt from the source.
	Context string

	// StartLine/StartColumn and EndLine/EndColumn are 1-based character
	// positions; the span is inclusive-exclusive and never empty.
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Position returns the violation's span as a SourcePosition.
func (v *Violation) Position() mdast.SourcePosition {
	return mdast.SourcePosition{
		StartLine:   v.StartLine,
		StartColumn: v.StartColumn,
		EndLine:     v.EndLine,
		EndColumn:   v.EndColumn,
	}
}

// SortViolations orders violations by (line, column, rule ID).
func SortViolations(violations []Violation) {
	slices.SortStableFunc(violations, func(a, b Violation) int {
		if c := cmp.Compare(a.StartLine, b.StartLine); c != 0 {
			return c
		}
		if c := cmp.Compare(a.StartColumn, b.StartColumn); c != 0 {
			return c
		}
		return cmp.Compare(a.RuleID, b.RuleID)
	})
}

// clampViolation forces a violation's span inside the document and makes
// the end at least the start. The sink applies it to every record before
// delivery.
func clampViolation(v *Violation, file *mdast.FileSnapshot) {
	lineCount := file.LineCount()
	if lineCount == 0 {
		lineCount = 1
	}

	if v.StartLine < 1 {
		v.StartLine = 1
	}
	if v.StartLine > lineCount {
		v.StartLine = lineCount
	}
	if v.StartColumn < 1 {
		v.StartColumn = 1
	}
	if v.EndLine < v.StartLine {
		v.EndLine = v.StartLine
	}
	if v.EndLine > lineCount {
		v.EndLine = lineCount
	}
	if v.EndLine == v.StartLine && v.EndColumn <= v.StartColumn {
		v.EndColumn = v.StartColumn + 1
	}
	if v.EndColumn < 1 {
		v.EndColumn = 1
	}
}
