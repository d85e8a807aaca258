package rules

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
	"github.com/yaklabco/marklint/pkg/mdast"
)

// MD036 no-emphasis-as-heading

var md036Meta = &lint.Metadata{
	ID:              "MD036",
	Alias:           "no-emphasis-as-heading",
	Description:     "Emphasis used instead of a heading",
	Tags:            []string{"headings", "emphasis"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeParagraph},
	DefaultSeverity: config.SeverityError,
}

const defaultEmphasisPunctuation = ".,;:!?。，；：！？"

type noEmphasisAsHeading struct {
	lint.BaseLinter
	punctuation string
}

func newNoEmphasisAsHeading(ctx *lint.Context) (lint.Linter, error) {
	r := &noEmphasisAsHeading{BaseLinter: lint.NewBaseLinter(md036Meta, ctx)}
	r.punctuation = r.OptionString("punctuation", defaultEmphasisPunctuation)
	return r, nil
}

func (r *noEmphasisAsHeading) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeParagraph {
		return
	}

	// The paragraph must consist solely of one emphasis or strong span.
	child := n.FirstChild
	if child == nil || child.Next != nil {
		return
	}
	if child.Kind != mdast.NodeEmphasis && child.Kind != mdast.NodeStrong {
		return
	}

	// Multi-line spans are prose, not would-be headings.
	pos := n.SourcePosition()
	if !pos.IsValid() || !pos.IsSingleLine() {
		return
	}

	// Links styled for attention are not headings either.
	if mdast.FindFirst(child, func(d *mdast.Node) bool { return d.Kind == mdast.NodeLink }) != nil {
		return
	}

	text := strings.TrimSpace(lint.NodeText(child))
	if text == "" {
		return
	}
	last, _ := utf8.DecodeLastRuneInString(text)
	if strings.ContainsRune(r.punctuation, last) {
		return
	}

	r.ReportNode(n, "Emphasis used instead of a heading")
}

// MD037 no-space-in-emphasis

var md037Meta = &lint.Metadata{
	ID:              "MD037",
	Alias:           "no-space-in-emphasis",
	Description:     "Spaces inside emphasis markers",
	Tags:            []string{"whitespace", "emphasis"},
	Type:            lint.TypeLine,
	DefaultSeverity: config.SeverityError,
}

type noSpaceInEmphasis struct {
	lint.BaseLinter
}

func newNoSpaceInEmphasis(ctx *lint.Context) (lint.Linter, error) {
	return &noSpaceInEmphasis{BaseLinter: lint.NewBaseLinter(md037Meta, ctx)}, nil
}

// markerRun is a run of emphasis delimiter characters on one line.
type markerRun struct {
	start int // byte offset in line
	end   int
	char  byte
}

func (r *noSpaceInEmphasis) OnLine(line lint.Line) {
	if line.InCode || line.InHTML || line.InFrontMatter || line.Blank {
		return
	}

	runs := findMarkerRuns(line.Text)
	if len(runs) < 2 {
		return
	}

	// A leading bullet is a list marker, not emphasis.
	if trimmed := strings.TrimLeft(string(line.Text), " \t"); strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "+ ") || strings.HasPrefix(trimmed, "- ") {
		if len(runs) > 0 && runs[0].end-runs[0].start == 1 {
			runs = runs[1:]
		}
	}

	for i := 0; i+1 < len(runs); i++ {
		open, closer := runs[i], runs[i+1]
		if open.char != closer.char {
			continue
		}
		if r.Ctx.IsMaskedAt(line.Number, lint.ColumnOfOffset(line.Text, open.start), lint.MaskCodeSpan, lint.MaskHTML) {
			continue
		}

		inner := line.Text[open.end:closer.start]
		if len(inner) == 0 {
			continue
		}
		content := strings.TrimSpace(string(inner))
		if content == "" {
			continue
		}

		spaceAfterOpen := inner[0] == ' ' || inner[0] == '\t'
		spaceBeforeClose := inner[len(inner)-1] == ' ' || inner[len(inner)-1] == '\t'
		if !spaceAfterOpen && !spaceBeforeClose {
			i++ // well-formed pair; skip past its closer
			continue
		}

		col := lint.ColumnOfOffset(line.Text, open.start)
		width := lint.ColumnOfOffset(line.Text, closer.end) - col
		r.ReportLine(line.Number, col, width, "Spaces inside emphasis markers")
		i++
	}
}

// findMarkerRuns locates '*' and '_' runs of length 1-3 usable as
// emphasis delimiters.
func findMarkerRuns(text []byte) []markerRun {
	var runs []markerRun
	for i := 0; i < len(text); {
		ch := text[i]
		if ch != '*' && ch != '_' {
			i++
			continue
		}
		j := i
		for j < len(text) && text[j] == ch {
			j++
		}
		if j-i <= 3 {
			runs = append(runs, markerRun{start: i, end: j, char: ch})
		}
		i = j
	}
	return runs
}

// MD049 emphasis-style

var md049Meta = &lint.Metadata{
	ID:              "MD049",
	Alias:           "emphasis-style",
	Description:     "Emphasis style",
	Tags:            []string{"emphasis"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeEmphasis},
	DefaultSeverity: config.SeverityError,
}

func markerName(marker byte) string {
	if marker == '_' {
		return "underscore"
	}
	return "asterisk"
}

// intraword reports whether an emphasis span is surrounded by word
// characters (so underscore syntax could not express it).
func intraword(n *mdast.Node, content []byte) bool {
	span := n.Span
	if span.IsEmpty() {
		return false
	}
	if span.Start > 0 {
		prev, _ := utf8.DecodeLastRune(content[:span.Start])
		if unicode.IsLetter(prev) || unicode.IsDigit(prev) {
			return true
		}
	}
	if span.End < len(content) {
		next, _ := utf8.DecodeRune(content[span.End:])
		if unicode.IsLetter(next) || unicode.IsDigit(next) {
			return true
		}
	}
	return false
}

type emphasisStyle struct {
	lint.BaseLinter
	kind     mdast.NodeKind
	style    string
	observed string
}

func newEmphasisStyle(ctx *lint.Context) (lint.Linter, error) {
	r := &emphasisStyle{
		BaseLinter: lint.NewBaseLinter(md049Meta, ctx),
		kind:       mdast.NodeEmphasis,
	}
	style, err := r.OptionEnum("style", "consistent", "consistent", "asterisk", "underscore")
	if err != nil {
		return nil, err
	}
	r.style = style
	return r, nil
}

func (r *emphasisStyle) OnNode(n *mdast.Node) {
	if n.Kind != r.kind || n.Inline == nil || n.Inline.EmphasisMarker == 0 {
		return
	}

	actual := markerName(n.Inline.EmphasisMarker)

	expected := r.style
	if expected == "consistent" {
		if r.observed == "" {
			r.observed = actual
			return
		}
		expected = r.observed
	}

	if actual == expected {
		return
	}

	// Intra-word asterisk emphasis cannot be written with underscores.
	if expected == "underscore" && actual == "asterisk" && intraword(n, r.Ctx.File.Content) {
		return
	}

	r.ReportNode(n, fmt.Sprintf("Expected: %s; Actual: %s", expected, actual))
}

// MD050 strong-style

var md050Meta = &lint.Metadata{
	ID:              "MD050",
	Alias:           "strong-style",
	Description:     "Strong style",
	Tags:            []string{"emphasis"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeStrong},
	DefaultSeverity: config.SeverityError,
}

func newStrongStyle(ctx *lint.Context) (lint.Linter, error) {
	r := &emphasisStyle{
		BaseLinter: lint.NewBaseLinter(md050Meta, ctx),
		kind:       mdast.NodeStrong,
	}
	style, err := r.OptionEnum("style", "consistent", "consistent", "asterisk", "underscore")
	if err != nil {
		return nil, err
	}
	r.style = style
	return r, nil
}

//nolint:gochecknoinits // Metadata.New is set post-declaration to avoid an init cycle.
func init() {
	md036Meta.New = newNoEmphasisAsHeading
	md037Meta.New = newNoSpaceInEmphasis
	md049Meta.New = newEmphasisStyle
	md050Meta.New = newStrongStyle
}
