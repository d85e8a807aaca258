package rules

import (
	"bytes"
	"regexp"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
)

// MD027 no-multiple-space-blockquote

var md027Meta = &lint.Metadata{
	ID:              "MD027",
	Alias:           "no-multiple-space-blockquote",
	Description:     "Multiple spaces after blockquote symbol",
	Tags:            []string{"blockquote", "whitespace", "indentation"},
	Type:            lint.TypeLine,
	DefaultSeverity: config.SeverityError,
}

// blockquoteSpacesPattern finds a '>' followed by two or more spaces and
// then content.
var blockquoteSpacesPattern = regexp.MustCompile(`>([ \t]{2,})\S`)

// listMarkerStartPattern recognises list-item content after the quote
// marker.
var listMarkerStartPattern = regexp.MustCompile(`^([-+*]|\d{1,9}[.)])[ \t]`)

type noMultipleSpaceBlockquote struct {
	lint.BaseLinter
	listItems bool
}

func newNoMultipleSpaceBlockquote(ctx *lint.Context) (lint.Linter, error) {
	r := &noMultipleSpaceBlockquote{BaseLinter: lint.NewBaseLinter(md027Meta, ctx)}
	r.listItems = r.OptionBool("list_items", true)
	return r, nil
}

func (r *noMultipleSpaceBlockquote) OnLine(line lint.Line) {
	if line.InCode || line.InFrontMatter {
		return
	}
	if !r.Ctx.LineFlagsAt(line.Number).Has(lint.LineInBlockquote) {
		return
	}

	loc := blockquoteSpacesPattern.FindSubmatchIndex(line.Text)
	if loc == nil {
		return
	}

	content := line.Text[loc[3]:]
	if !r.listItems && listMarkerStartPattern.Match(content) {
		return
	}

	col := lint.ColumnOfOffset(line.Text, loc[2])
	r.ReportLine(line.Number, col, loc[3]-loc[2], "Multiple spaces after blockquote symbol")
}

// MD028 no-blanks-blockquote

var md028Meta = &lint.Metadata{
	ID:              "MD028",
	Alias:           "no-blanks-blockquote",
	Description:     "Blank line inside blockquote",
	Tags:            []string{"blockquote", "whitespace"},
	Type:            lint.TypeLine,
	DefaultSeverity: config.SeverityError,
}

type noBlanksBlockquote struct {
	lint.BaseLinter
	prevQuote  bool
	blankLines []int
}

func newNoBlanksBlockquote(ctx *lint.Context) (lint.Linter, error) {
	return &noBlanksBlockquote{BaseLinter: lint.NewBaseLinter(md028Meta, ctx)}, nil
}

func (r *noBlanksBlockquote) OnLine(line lint.Line) {
	if line.Blank {
		if r.prevQuote {
			r.blankLines = append(r.blankLines, line.Number)
		}
		return
	}

	isQuote := !line.InCode && !line.InFrontMatter &&
		bytes.HasPrefix(bytes.TrimLeft(line.Text, " "), []byte(">"))

	// A quote resuming after blank lines means the blanks split two
	// blockquotes; each separating blank line is reported.
	if isQuote && len(r.blankLines) > 0 {
		for _, blank := range r.blankLines {
			r.ReportLine(blank, 1, 1, "Blank line inside blockquote")
		}
	}

	r.blankLines = r.blankLines[:0]
	r.prevQuote = isQuote
}

//nolint:gochecknoinits // Metadata.New is set post-declaration to avoid an init cycle.
func init() {
	md027Meta.New = newNoMultipleSpaceBlockquote
	md028Meta.New = newNoBlanksBlockquote
}
