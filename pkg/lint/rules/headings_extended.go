package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
	"github.com/yaklabco/marklint/pkg/mdast"
)

// MD022 blanks-around-headings

var md022Meta = &lint.Metadata{
	ID:              "MD022",
	Alias:           "blanks-around-headings",
	Description:     "Headings should be surrounded by blank lines",
	Tags:            []string{"headings", "blank_lines"},
	Type:            lint.TypeHybrid,
	Kinds:           []mdast.NodeKind{mdast.NodeHeading},
	DefaultSeverity: config.SeverityError,
}

type blanksAroundHeadings struct {
	lint.BaseLinter
	linesAbove []int
	linesBelow []int
}

func newBlanksAroundHeadings(ctx *lint.Context) (lint.Linter, error) {
	r := &blanksAroundHeadings{BaseLinter: lint.NewBaseLinter(md022Meta, ctx)}
	r.linesAbove = r.OptionIntSlice("lines_above", []int{1})
	r.linesBelow = r.OptionIntSlice("lines_below", []int{1})
	return r, nil
}

// expectedFor picks the per-level requirement: a single-element list applies
// to every level, a longer list is indexed by level.
func expectedFor(values []int, level int) int {
	if len(values) == 0 {
		return 1
	}
	if len(values) == 1 {
		return values[0]
	}
	idx := level - 1
	if idx >= len(values) {
		idx = len(values) - 1
	}
	return values[idx]
}

func (r *blanksAroundHeadings) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeHeading {
		return
	}

	file := r.Ctx.File
	level := lint.HeadingLevel(n)
	startLine := n.StartLine()
	endLine := n.EndLine()
	if startLine == 0 {
		return
	}

	wantAbove := expectedFor(r.linesAbove, level)
	if wantAbove >= 0 {
		actual := lint.CountBlankLinesBefore(file, startLine)
		if actual < wantAbove && !r.atDocumentStart(startLine-actual) {
			r.ReportNode(n, fmt.Sprintf("Expected: %d; Actual: %d; Above", wantAbove, actual))
		}
	}

	wantBelow := expectedFor(r.linesBelow, level)
	if wantBelow >= 0 {
		actual := lint.CountBlankLinesAfter(file, endLine)
		if actual < wantBelow && endLine+actual < file.LineCount() {
			r.ReportNode(n, fmt.Sprintf("Expected: %d; Actual: %d; Below", wantBelow, actual))
		}
	}
}

// atDocumentStart reports whether a line is the first content line of the
// logical document (line 1, or the line after front-matter).
func (r *blanksAroundHeadings) atDocumentStart(line int) bool {
	if line == 1 {
		return true
	}
	if fm := r.Ctx.FrontMatter(); fm != nil && line == fm.EndLine+1 {
		return true
	}
	return false
}

// MD024 no-duplicate-heading

var md024Meta = &lint.Metadata{
	ID:              "MD024",
	Alias:           "no-duplicate-heading",
	Description:     "Multiple headings with the same content",
	Tags:            []string{"headings"},
	Type:            lint.TypeDocument,
	Kinds:           []mdast.NodeKind{mdast.NodeHeading},
	DefaultSeverity: config.SeverityError,
}

type headingRecord struct {
	node  *mdast.Node
	text  string
	level int
}

type noDuplicateHeading struct {
	lint.BaseLinter
	siblingsOnly          bool
	allowDifferentNesting bool
	headings              []headingRecord
}

func newNoDuplicateHeading(ctx *lint.Context) (lint.Linter, error) {
	r := &noDuplicateHeading{BaseLinter: lint.NewBaseLinter(md024Meta, ctx)}
	r.siblingsOnly = r.OptionBool("siblings_only", false)
	r.allowDifferentNesting = r.OptionBool("allow_different_nesting", false)
	return r, nil
}

func (r *noDuplicateHeading) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeHeading {
		return
	}
	r.headings = append(r.headings, headingRecord{
		node:  n,
		text:  lint.HeadingText(n),
		level: lint.HeadingLevel(n),
	})
}

func (r *noDuplicateHeading) Finalize() []lint.Violation {
	seen := make(map[string]bool)

	// Sibling scope: index of the nearest previous heading with a lower
	// level. When siblings_only and allow_different_nesting are both set,
	// the sibling scope wins.
	parentOf := make([]int, len(r.headings))
	stack := []int{-1}
	for i, h := range r.headings {
		for len(stack) > 1 && r.headings[stack[len(stack)-1]].level >= h.level {
			stack = stack[:len(stack)-1]
		}
		parentOf[i] = stack[len(stack)-1]
		stack = append(stack, i)
	}

	for i, h := range r.headings {
		var key string
		switch {
		case r.siblingsOnly:
			key = fmt.Sprintf("%d\x00%s", parentOf[i], h.text)
		case r.allowDifferentNesting:
			key = fmt.Sprintf("%d\x00%s", h.level, h.text)
		default:
			key = h.text
		}

		if seen[key] {
			r.ReportNode(h.node, "Multiple headings with the same content")
			continue
		}
		seen[key] = true
	}

	return r.BaseLinter.Finalize()
}

// MD025 single-h1

var md025Meta = &lint.Metadata{
	ID:              "MD025",
	Alias:           "single-h1",
	Description:     "Multiple top-level headings in the same document",
	Tags:            []string{"headings"},
	Type:            lint.TypeDocument,
	Kinds:           []mdast.NodeKind{mdast.NodeHeading},
	DefaultSeverity: config.SeverityError,
}

const defaultFrontMatterTitle = `^\s*title\s*[:=]`

type singleH1 struct {
	lint.BaseLinter
	level         int
	titlePattern  *regexp.Regexp
	seenTopLevel  bool
	frontMatTitle bool
}

func newSingleH1(ctx *lint.Context) (lint.Linter, error) {
	r := &singleH1{BaseLinter: lint.NewBaseLinter(md025Meta, ctx)}
	r.level = r.OptionInt("level", 1)

	pattern := r.OptionString("front_matter_title", defaultFrontMatterTitle)
	if pattern != "" {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid front_matter_title pattern: %w", err)
		}
		r.titlePattern = compiled
	}

	r.frontMatTitle = frontMatterMatches(ctx.FrontMatter(), r.titlePattern)
	return r, nil
}

// frontMatterMatches reports whether any front-matter line matches the
// title pattern.
func frontMatterMatches(fm *mdast.FrontMatter, pattern *regexp.Regexp) bool {
	if fm == nil || pattern == nil {
		return false
	}
	for _, line := range fm.RawLines {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

func (r *singleH1) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeHeading || lint.HeadingLevel(n) != r.level {
		return
	}

	// A front-matter title acts as the document's top-level heading.
	if r.frontMatTitle {
		r.ReportNode(n, "Multiple top-level headings in the same document")
		return
	}

	if r.seenTopLevel {
		r.ReportNode(n, "Multiple top-level headings in the same document")
		return
	}
	r.seenTopLevel = true
}

// MD026 no-trailing-punctuation

var md026Meta = &lint.Metadata{
	ID:              "MD026",
	Alias:           "no-trailing-punctuation",
	Description:     "Trailing punctuation in heading",
	Tags:            []string{"headings"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeHeading},
	DefaultSeverity: config.SeverityError,
}

const defaultHeadingPunctuation = ".,;:!。，；：！"

// trailingEntityPattern matches an HTML entity at the end of heading text.
var trailingEntityPattern = regexp.MustCompile(`&(?:[a-zA-Z][a-zA-Z0-9]*|#\d+|#[xX][0-9a-fA-F]+);$`)

type noTrailingPunctuation struct {
	lint.BaseLinter
	punctuation string
}

func newNoTrailingPunctuation(ctx *lint.Context) (lint.Linter, error) {
	r := &noTrailingPunctuation{BaseLinter: lint.NewBaseLinter(md026Meta, ctx)}
	r.punctuation = r.OptionString("punctuation", defaultHeadingPunctuation)
	return r, nil
}

func (r *noTrailingPunctuation) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeHeading || r.punctuation == "" {
		return
	}

	text := lint.HeadingText(n)
	// Trailing HTML entities do not count as punctuation.
	text = trailingEntityPattern.ReplaceAllString(text, "")
	if text == "" {
		return
	}

	runes := []rune(text)
	last := runes[len(runes)-1]
	if strings.ContainsRune(r.punctuation, last) {
		r.ReportNode(n, fmt.Sprintf("Punctuation: '%c'", last))
	}
}

//nolint:gochecknoinits // Metadata.New is set post-declaration to avoid an init cycle.
func init() {
	md022Meta.New = newBlanksAroundHeadings
	md024Meta.New = newNoDuplicateHeading
	md025Meta.New = newSingleH1
	md026Meta.New = newNoTrailingPunctuation
}
