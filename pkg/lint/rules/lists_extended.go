package rules

import (
	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
	"github.com/yaklabco/marklint/pkg/mdast"
)

// MD032 blanks-around-lists

var md032Meta = &lint.Metadata{
	ID:              "MD032",
	Alias:           "blanks-around-lists",
	Description:     "Lists should be surrounded by blank lines",
	Tags:            []string{"bullet", "ul", "ol", "blank_lines"},
	Type:            lint.TypeHybrid,
	Kinds:           []mdast.NodeKind{mdast.NodeList},
	DefaultSeverity: config.SeverityError,
}

type blanksAroundLists struct {
	lint.BaseLinter
}

func newBlanksAroundLists(ctx *lint.Context) (lint.Linter, error) {
	return &blanksAroundLists{BaseLinter: lint.NewBaseLinter(md032Meta, ctx)}, nil
}

func (r *blanksAroundLists) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeList {
		return
	}
	// Nested lists live inside their item's flow; only top-level lists
	// need surrounding blanks.
	if n.Ancestor(mdast.NodeListItem) != nil {
		return
	}

	file := r.Ctx.File
	startLine := n.StartLine()
	endLine := n.EndLine()
	if startLine == 0 {
		return
	}

	if startLine > 1 && !file.IsBlankLine(startLine-1) && !afterFrontMatter(r.Ctx, startLine) {
		r.ReportLine(startLine, 1, 1, "Lists should be surrounded by blank lines")
	}

	if endLine < file.LineCount() && !file.IsBlankLine(endLine+1) {
		r.ReportLine(endLine, 1, 1, "Lists should be surrounded by blank lines")
	}
}

// afterFrontMatter reports whether a line directly follows the
// front-matter block.
func afterFrontMatter(ctx *lint.Context, line int) bool {
	fm := ctx.FrontMatter()
	return fm != nil && line == fm.EndLine+1
}

//nolint:gochecknoinits // Metadata.New is set post-declaration to avoid an init cycle.
func init() {
	md032Meta.New = newBlanksAroundLists
}
