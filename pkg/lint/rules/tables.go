package rules

import (
	"bytes"
	"fmt"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
	"github.com/yaklabco/marklint/pkg/mdast"
)

// MD055 table-pipe-style

var md055Meta = &lint.Metadata{
	ID:              "MD055",
	Alias:           "table-pipe-style",
	Description:     "Table pipe style",
	Tags:            []string{"table"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeTable},
	DefaultSeverity: config.SeverityError,
}

func pipeStyleOf(line []byte) string {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return ""
	}
	leading := trimmed[0] == '|'
	trailing := trimmed[len(trimmed)-1] == '|'
	switch {
	case leading && trailing:
		return "leading_and_trailing"
	case leading:
		return "leading_only"
	case trailing:
		return "trailing_only"
	default:
		return "no_leading_or_trailing"
	}
}

type tablePipeStyle struct {
	lint.BaseLinter
	style    string
	observed string
}

func newTablePipeStyle(ctx *lint.Context) (lint.Linter, error) {
	r := &tablePipeStyle{BaseLinter: lint.NewBaseLinter(md055Meta, ctx)}
	style, err := r.OptionEnum("style", "consistent",
		"consistent", "leading_and_trailing", "leading_only", "trailing_only", "no_leading_or_trailing")
	if err != nil {
		return nil, err
	}
	r.style = style
	return r, nil
}

func (r *tablePipeStyle) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeTable {
		return
	}

	file := r.Ctx.File
	for line := n.StartLine(); line <= n.EndLine() && line >= 1; line++ {
		actual := pipeStyleOf(file.LineContent(line))
		if actual == "" {
			continue
		}

		expected := r.style
		if expected == "consistent" {
			if r.observed == "" {
				r.observed = actual
				continue
			}
			expected = r.observed
		}

		if actual != expected {
			r.ReportLine(line, 1, 1, fmt.Sprintf("Expected: %s; Actual: %s", expected, actual))
		}
	}
}

// MD056 table-column-count

var md056Meta = &lint.Metadata{
	ID:              "MD056",
	Alias:           "table-column-count",
	Description:     "Table column count",
	Tags:            []string{"table"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeTable},
	DefaultSeverity: config.SeverityError,
}

type tableColumnCount struct {
	lint.BaseLinter
}

func newTableColumnCount(ctx *lint.Context) (lint.Linter, error) {
	return &tableColumnCount{BaseLinter: lint.NewBaseLinter(md056Meta, ctx)}, nil
}

func cellCount(row *mdast.Node) int {
	count := 0
	for c := row.FirstChild; c != nil; c = c.Next {
		if c.Kind == mdast.NodeTableCell {
			count++
		}
	}
	return count
}

func (r *tableColumnCount) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeTable {
		return
	}

	header := n.FirstChild
	if header == nil || header.Kind != mdast.NodeTableHeader {
		return
	}
	expected := cellCount(header)

	for row := header.Next; row != nil; row = row.Next {
		if row.Kind != mdast.NodeTableRow {
			continue
		}
		// GFM parsers normalise rows to the header width; the written
		// cell count comes from the raw line.
		actual := writtenCellCount(r.Ctx.File.LineContent(row.StartLine()))
		if actual == 0 {
			actual = cellCount(row)
		}
		if actual != expected {
			r.ReportNode(row, fmt.Sprintf("Expected: %d; Actual: %d", expected, actual))
		}
	}
}

// writtenCellCount counts the cells of a table row as written, honouring
// escaped pipes.
func writtenCellCount(line []byte) int {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return 0
	}

	pipes := 0
	escaped := false
	for _, ch := range trimmed {
		switch {
		case escaped:
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '|':
			pipes++
		}
	}
	if pipes == 0 {
		return 0
	}

	cells := pipes + 1
	if trimmed[0] == '|' {
		cells--
	}
	if trimmed[len(trimmed)-1] == '|' && len(trimmed) > 1 {
		cells--
	}
	return cells
}

// MD058 blanks-around-tables

var md058Meta = &lint.Metadata{
	ID:              "MD058",
	Alias:           "blanks-around-tables",
	Description:     "Tables should be surrounded by blank lines",
	Tags:            []string{"table", "blank_lines"},
	Type:            lint.TypeHybrid,
	Kinds:           []mdast.NodeKind{mdast.NodeTable},
	DefaultSeverity: config.SeverityError,
}

type blanksAroundTables struct {
	lint.BaseLinter
}

func newBlanksAroundTables(ctx *lint.Context) (lint.Linter, error) {
	return &blanksAroundTables{BaseLinter: lint.NewBaseLinter(md058Meta, ctx)}, nil
}

func (r *blanksAroundTables) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeTable {
		return
	}

	file := r.Ctx.File
	startLine, endLine := n.StartLine(), n.EndLine()
	if startLine == 0 {
		return
	}

	if startLine > 1 && !file.IsBlankLine(startLine-1) && !afterFrontMatter(r.Ctx, startLine) {
		r.ReportLine(startLine, 1, 1, "Tables should be surrounded by blank lines")
	}
	if endLine < file.LineCount() && !file.IsBlankLine(endLine+1) {
		r.ReportLine(endLine, 1, 1, "Tables should be surrounded by blank lines")
	}
}

//nolint:gochecknoinits // Metadata.New is set post-declaration to avoid an init cycle.
func init() {
	md055Meta.New = newTablePipeStyle
	md056Meta.New = newTableColumnCount
	md058Meta.New = newBlanksAroundTables
}
