package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
	"github.com/yaklabco/marklint/pkg/mdast"
)

// MD001 heading-increment

var md001Meta = &lint.Metadata{
	ID:              "MD001",
	Alias:           "heading-increment",
	Description:     "Heading levels should only increment by one level at a time",
	Tags:            []string{"headings"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeHeading},
	DefaultSeverity: config.SeverityError,
}

type headingIncrement struct {
	lint.BaseLinter
	prevLevel int
}

func newHeadingIncrement(ctx *lint.Context) (lint.Linter, error) {
	return &headingIncrement{BaseLinter: lint.NewBaseLinter(md001Meta, ctx)}, nil
}

func (r *headingIncrement) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeHeading {
		return
	}

	level := lint.HeadingLevel(n)
	if level == 0 {
		return
	}

	if r.prevLevel > 0 && level > r.prevLevel+1 {
		r.ReportNode(n, fmt.Sprintf("Expected: h%d; Actual: h%d", r.prevLevel+1, level))
	}
	r.prevLevel = level
}

// MD003 heading-style

var md003Meta = &lint.Metadata{
	ID:              "MD003",
	Alias:           "heading-style",
	Description:     "Heading style should be consistent",
	Tags:            []string{"headings"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeHeading},
	DefaultSeverity: config.SeverityError,
}

type headingStyle struct {
	lint.BaseLinter
	style    string
	observed string // first style seen, for "consistent"
}

func newHeadingStyle(ctx *lint.Context) (lint.Linter, error) {
	r := &headingStyle{BaseLinter: lint.NewBaseLinter(md003Meta, ctx)}

	style, err := r.OptionEnum("style", "consistent",
		"consistent", "atx", "atx_closed", "setext", "setext_with_atx", "setext_with_atx_closed")
	if err != nil {
		return nil, err
	}
	r.style = style
	return r, nil
}

func (r *headingStyle) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeHeading {
		return
	}

	actual := lint.HeadingStyleOf(n).String()
	level := lint.HeadingLevel(n)

	expected := r.style
	if expected == "consistent" {
		if r.observed == "" {
			r.observed = actual
			return
		}
		expected = r.observed
	}

	var ok bool
	switch expected {
	case "atx", "atx_closed", "setext":
		ok = actual == expected
	case "setext_with_atx":
		if level > 2 {
			ok = actual == "setext" || actual == "atx"
		} else {
			ok = actual == "setext"
		}
	case "setext_with_atx_closed":
		if level > 2 {
			ok = actual == "setext" || actual == "atx_closed"
		} else {
			ok = actual == "setext"
		}
	}

	if !ok {
		r.ReportNode(n, fmt.Sprintf("Expected: %s; Actual: %s", expected, actual))
	}
}

// MD018 no-missing-space-atx

var md018Meta = &lint.Metadata{
	ID:              "MD018",
	Alias:           "no-missing-space-atx",
	Description:     "No space after hash on atx style heading",
	Tags:            []string{"headings", "atx", "spaces"},
	Type:            lint.TypeLine,
	DefaultSeverity: config.SeverityError,
}

var missingSpaceATXPattern = regexp.MustCompile(`^#{1,6}[^#\s]`)

type noMissingSpaceATX struct {
	lint.BaseLinter
}

func newNoMissingSpaceATX(ctx *lint.Context) (lint.Linter, error) {
	return &noMissingSpaceATX{BaseLinter: lint.NewBaseLinter(md018Meta, ctx)}, nil
}

func (r *noMissingSpaceATX) OnLine(line lint.Line) {
	if line.InCode || line.InHTML || line.InFrontMatter {
		return
	}
	if !missingSpaceATXPattern.Match(line.Text) {
		return
	}
	// Closed-ATX lines without spaces belong to MD020.
	if closedATXCandidatePattern.Match(line.Text) {
		return
	}
	r.ReportLine(line.Number, 1, hashRunLen(line.Text)+1, "No space after hash on atx style heading")
}

func hashRunLen(text []byte) int {
	n := 0
	for n < len(text) && text[n] == '#' {
		n++
	}
	return n
}

// MD019 no-multiple-space-atx

var md019Meta = &lint.Metadata{
	ID:              "MD019",
	Alias:           "no-multiple-space-atx",
	Description:     "Multiple spaces after hash on atx style heading",
	Tags:            []string{"headings", "atx", "spaces"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeHeading},
	DefaultSeverity: config.SeverityError,
}

var multipleSpaceATXPattern = regexp.MustCompile(`^\s*#{1,6}[ \t][ \t]+\S`)

type noMultipleSpaceATX struct {
	lint.BaseLinter
}

func newNoMultipleSpaceATX(ctx *lint.Context) (lint.Linter, error) {
	return &noMultipleSpaceATX{BaseLinter: lint.NewBaseLinter(md019Meta, ctx)}, nil
}

func (r *noMultipleSpaceATX) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeHeading || lint.HeadingStyleOf(n) != mdast.HeadingATX {
		return
	}

	text := n.Text()
	if multipleSpaceATXPattern.Match(text) {
		r.ReportNode(n, "Multiple spaces after hash on atx style heading")
	}
}

// MD020 no-missing-space-closed-atx

var md020Meta = &lint.Metadata{
	ID:              "MD020",
	Alias:           "no-missing-space-closed-atx",
	Description:     "No space inside hashes on closed atx style heading",
	Tags:            []string{"headings", "atx_closed", "spaces"},
	Type:            lint.TypeLine,
	DefaultSeverity: config.SeverityError,
}

var (
	closedATXCandidatePattern = regexp.MustCompile(`^\s{0,3}#{1,6}.*#+\s*$`)
	closedATXMissingOpen      = regexp.MustCompile(`^\s{0,3}#{1,6}[^#\s]`)
	closedATXMissingClose     = regexp.MustCompile(`[^#\s]#+\s*$`)
)

type noMissingSpaceClosedATX struct {
	lint.BaseLinter
}

func newNoMissingSpaceClosedATX(ctx *lint.Context) (lint.Linter, error) {
	return &noMissingSpaceClosedATX{BaseLinter: lint.NewBaseLinter(md020Meta, ctx)}, nil
}

func (r *noMissingSpaceClosedATX) OnLine(line lint.Line) {
	if line.InCode || line.InHTML || line.InFrontMatter {
		return
	}

	text := line.Text
	if !closedATXCandidatePattern.Match(text) {
		return
	}
	// All-hash lines ("###") are open ATX headings with no text.
	if len(strings.Trim(string(text), "# \t")) == 0 {
		return
	}

	if closedATXMissingOpen.Match(text) || closedATXMissingClose.Match(text) {
		r.ReportLine(line.Number, 1, 1, "No space inside hashes on closed atx style heading")
	}
}

// MD021 no-multiple-space-closed-atx

var md021Meta = &lint.Metadata{
	ID:              "MD021",
	Alias:           "no-multiple-space-closed-atx",
	Description:     "Multiple spaces inside hashes on closed atx style heading",
	Tags:            []string{"headings", "atx_closed", "spaces"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeHeading},
	DefaultSeverity: config.SeverityError,
}

var (
	closedATXMultiOpen  = regexp.MustCompile(`^\s*#{1,6}[ \t]{2,}`)
	closedATXMultiClose = regexp.MustCompile(`[ \t]{2,}#+\s*$`)
)

type noMultipleSpaceClosedATX struct {
	lint.BaseLinter
}

func newNoMultipleSpaceClosedATX(ctx *lint.Context) (lint.Linter, error) {
	return &noMultipleSpaceClosedATX{BaseLinter: lint.NewBaseLinter(md021Meta, ctx)}, nil
}

func (r *noMultipleSpaceClosedATX) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeHeading || lint.HeadingStyleOf(n) != mdast.HeadingATXClosed {
		return
	}

	text := n.Text()
	if closedATXMultiOpen.Match(text) || closedATXMultiClose.Match(text) {
		r.ReportNode(n, "Multiple spaces inside hashes on closed atx style heading")
	}
}

// MD023 heading-start-left

var md023Meta = &lint.Metadata{
	ID:              "MD023",
	Alias:           "heading-start-left",
	Description:     "Headings must start at the beginning of the line",
	Tags:            []string{"headings", "spaces"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeHeading},
	DefaultSeverity: config.SeverityError,
}

type headingStartLeft struct {
	lint.BaseLinter
}

func newHeadingStartLeft(ctx *lint.Context) (lint.Linter, error) {
	return &headingStartLeft{BaseLinter: lint.NewBaseLinter(md023Meta, ctx)}, nil
}

func (r *headingStartLeft) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeHeading {
		return
	}
	// The blockquote marker's own indent is allowed.
	if n.Ancestor(mdast.NodeBlockquote) != nil {
		return
	}

	pos := n.SourcePosition()
	if pos.IsValid() && pos.StartColumn > 1 {
		r.ReportNode(n, "Headings must start at the beginning of the line")
	}
}

//nolint:gochecknoinits // Metadata.New is set post-declaration to avoid an init cycle.
func init() {
	md001Meta.New = newHeadingIncrement
	md003Meta.New = newHeadingStyle
	md018Meta.New = newNoMissingSpaceATX
	md019Meta.New = newNoMultipleSpaceATX
	md020Meta.New = newNoMissingSpaceClosedATX
	md021Meta.New = newNoMultipleSpaceClosedATX
	md023Meta.New = newHeadingStartLeft
}
