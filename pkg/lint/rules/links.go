package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
	"github.com/yaklabco/marklint/pkg/mdast"
)

// MD011 no-reversed-links

var md011Meta = &lint.Metadata{
	ID:              "MD011",
	Alias:           "no-reversed-links",
	Description:     "Reversed link syntax",
	Tags:            []string{"links"},
	Type:            lint.TypeLine,
	DefaultSeverity: config.SeverityError,
}

// reversedLinkPattern matches "(text)[url]".
var reversedLinkPattern = regexp.MustCompile(`\(([^()]+)\)\[([^\]^][^\]]*)\]`)

type noReversedLinks struct {
	lint.BaseLinter
}

func newNoReversedLinks(ctx *lint.Context) (lint.Linter, error) {
	return &noReversedLinks{BaseLinter: lint.NewBaseLinter(md011Meta, ctx)}, nil
}

func (r *noReversedLinks) OnLine(line lint.Line) {
	if line.InCode || line.InHTML || line.InFrontMatter {
		return
	}

	for _, loc := range reversedLinkPattern.FindAllSubmatchIndex(line.Text, -1) {
		col := lint.ColumnOfOffset(line.Text, loc[0])
		if r.Ctx.IsMaskedAt(line.Number, col, lint.MaskCodeSpan, lint.MaskHTML) {
			continue
		}
		// Footnote references ("[^1]") are not reversed links; the
		// pattern already excludes a leading caret in the bracket part.
		width := lint.ColumnOfOffset(line.Text, loc[1]) - col
		r.ReportLine(line.Number, col, width, "Reversed link syntax")
	}
}

// MD034 no-bare-urls

var md034Meta = &lint.Metadata{
	ID:              "MD034",
	Alias:           "no-bare-urls",
	Description:     "Bare URL used",
	Tags:            []string{"links", "url"},
	Type:            lint.TypeLine,
	DefaultSeverity: config.SeverityError,
}

var bareURLPattern = regexp.MustCompile(
	`(?:https?|ftp)://[^\s<>\[\]()"']+[^\s<>\[\]()"'.,;:!?]|[\w.+-]+@[\w-]+\.[\w.-]+`)

type noBareURLs struct {
	lint.BaseLinter
}

func newNoBareURLs(ctx *lint.Context) (lint.Linter, error) {
	return &noBareURLs{BaseLinter: lint.NewBaseLinter(md034Meta, ctx)}, nil
}

func (r *noBareURLs) OnLine(line lint.Line) {
	if line.InCode || line.InHTML || line.InFrontMatter {
		return
	}

	for _, loc := range bareURLPattern.FindAllIndex(line.Text, -1) {
		start, end := loc[0], loc[1]

		// Angle-bracketed autolinks are already correct.
		if start > 0 && line.Text[start-1] == '<' {
			continue
		}

		col := lint.ColumnOfOffset(line.Text, start)
		// URLs inside code spans, HTML attributes, or link syntax are fine.
		if r.Ctx.IsMaskedAt(line.Number, col, lint.MaskCodeSpan, lint.MaskHTML, lint.MaskLink) {
			continue
		}

		width := lint.ColumnOfOffset(line.Text, end) - col
		r.ReportLine(line.Number, col, width, "Bare URL used")
	}
}

// MD039 no-space-in-links

var md039Meta = &lint.Metadata{
	ID:              "MD039",
	Alias:           "no-space-in-links",
	Description:     "Spaces inside link text",
	Tags:            []string{"whitespace", "links"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeLink},
	DefaultSeverity: config.SeverityError,
}

type noSpaceInLinks struct {
	lint.BaseLinter
}

func newNoSpaceInLinks(ctx *lint.Context) (lint.Linter, error) {
	return &noSpaceInLinks{BaseLinter: lint.NewBaseLinter(md039Meta, ctx)}, nil
}

func (r *noSpaceInLinks) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeLink {
		return
	}
	if n.Inline != nil && n.Inline.Link != nil &&
		n.Inline.Link.ReferenceStyle == mdast.RefStyleAutolink {
		return
	}

	text := lint.NodeText(n)
	if text == "" {
		return
	}
	if strings.TrimSpace(text) != text {
		r.ReportNode(n, "Spaces inside link text")
	}
}

// MD042 no-empty-links

var md042Meta = &lint.Metadata{
	ID:              "MD042",
	Alias:           "no-empty-links",
	Description:     "No empty links",
	Tags:            []string{"links"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeLink},
	DefaultSeverity: config.SeverityError,
}

type noEmptyLinks struct {
	lint.BaseLinter
}

func newNoEmptyLinks(ctx *lint.Context) (lint.Linter, error) {
	return &noEmptyLinks{BaseLinter: lint.NewBaseLinter(md042Meta, ctx)}, nil
}

func (r *noEmptyLinks) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeLink || n.Inline == nil || n.Inline.Link == nil {
		return
	}
	link := n.Inline.Link
	if link.ReferenceStyle == mdast.RefStyleAutolink {
		return
	}

	dest := strings.TrimSpace(link.Destination)
	if dest != "" && dest != "#" {
		return
	}
	// A link carrying only a title still navigates somewhere meaningful.
	if link.HasTitle && link.Title != "" {
		return
	}

	r.ReportNode(n, "No empty links")
}

// MD045 no-alt-text

var md045Meta = &lint.Metadata{
	ID:              "MD045",
	Alias:           "no-alt-text",
	Description:     "Images should have alternate text (alt text)",
	Tags:            []string{"accessibility", "images"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeImage, mdast.NodeHTMLInline, mdast.NodeHTMLBlock},
	DefaultSeverity: config.SeverityError,
}

var (
	imgTagPattern    = regexp.MustCompile(`(?i)<img\b[^>]*>`)
	altAttrPattern   = regexp.MustCompile(`(?i)\balt\s*=`)
	ariaHiddenStrict = regexp.MustCompile(`(?i)\baria-hidden\s*=\s*["']?true["']?`)
)

type noAltText struct {
	lint.BaseLinter
}

func newNoAltText(ctx *lint.Context) (lint.Linter, error) {
	return &noAltText{BaseLinter: lint.NewBaseLinter(md045Meta, ctx)}, nil
}

func (r *noAltText) OnNode(n *mdast.Node) {
	switch n.Kind {
	case mdast.NodeImage:
		if strings.TrimSpace(lint.NodeText(n)) == "" {
			r.ReportNode(n, "Images should have alternate text (alt text)")
		}
	case mdast.NodeHTMLInline, mdast.NodeHTMLBlock:
		content := n.Text()
		for _, tag := range imgTagPattern.FindAll(content, -1) {
			// alt="" is deliberate; aria-hidden removes it from the
			// accessibility tree.
			if altAttrPattern.Match(tag) || ariaHiddenStrict.Match(tag) {
				continue
			}
			r.ReportNode(n, "Images should have alternate text (alt text)")
			return
		}
	}
}

// MD059 descriptive-link-text

var md059Meta = &lint.Metadata{
	ID:              "MD059",
	Alias:           "descriptive-link-text",
	Description:     "Link text should be descriptive",
	Tags:            []string{"accessibility", "links"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeLink},
	DefaultSeverity: config.SeverityError,
}

//nolint:gochecknoglobals // Read-only default option value.
var defaultProhibitedTexts = []string{"click here", "here", "link", "more"}

type descriptiveLinkText struct {
	lint.BaseLinter
	prohibited map[string]bool
}

func newDescriptiveLinkText(ctx *lint.Context) (lint.Linter, error) {
	r := &descriptiveLinkText{BaseLinter: lint.NewBaseLinter(md059Meta, ctx)}
	r.prohibited = make(map[string]bool)
	for _, text := range r.OptionStringSlice("prohibited_texts", defaultProhibitedTexts) {
		r.prohibited[strings.ToLower(strings.TrimSpace(text))] = true
	}
	return r, nil
}

func (r *descriptiveLinkText) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeLink {
		return
	}
	if n.Inline != nil && n.Inline.Link != nil &&
		n.Inline.Link.ReferenceStyle == mdast.RefStyleAutolink {
		return
	}

	// Code spans are stripped from the comparison text.
	var buf strings.Builder
	//nolint:errcheck // visitor never returns error
	mdast.Walk(n, func(d *mdast.Node) error {
		if d.Kind == mdast.NodeText && d.Inline != nil && d.Ancestor(mdast.NodeCodeSpan) == nil {
			buf.Write(d.Inline.Text)
		}
		return nil
	})

	text := strings.ToLower(strings.TrimSpace(buf.String()))
	if r.prohibited[text] {
		r.ReportNode(n, fmt.Sprintf("Link text should be descriptive; Actual: %q", buf.String()))
	}
}

//nolint:gochecknoinits // Metadata.New is set post-declaration to avoid an init cycle.
func init() {
	md011Meta.New = newNoReversedLinks
	md034Meta.New = newNoBareURLs
	md039Meta.New = newNoSpaceInLinks
	md042Meta.New = newNoEmptyLinks
	md045Meta.New = newNoAltText
	md059Meta.New = newDescriptiveLinkText
}
