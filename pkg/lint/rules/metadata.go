package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
	"github.com/yaklabco/marklint/pkg/mdast"
)

// MD041 first-line-heading

var md041Meta = &lint.Metadata{
	ID:              "MD041",
	Alias:           "first-line-heading",
	Description:     "First line in a file should be a top-level heading",
	Tags:            []string{"headings"},
	Type:            lint.TypeDocument,
	Kinds:           []mdast.NodeKind{mdast.NodeHeading},
	DefaultSeverity: config.SeverityError,
}

type firstLineHeading struct {
	lint.BaseLinter
	level         int
	allowPreamble bool
	satisfied     bool
}

func newFirstLineHeading(ctx *lint.Context) (lint.Linter, error) {
	r := &firstLineHeading{BaseLinter: lint.NewBaseLinter(md041Meta, ctx)}
	r.level = r.OptionInt("level", 1)
	r.allowPreamble = r.OptionBool("allow_preamble", false)

	pattern := r.OptionString("front_matter_title", defaultFrontMatterTitle)
	if pattern != "" {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid front_matter_title pattern: %w", err)
		}
		r.satisfied = frontMatterMatches(ctx.FrontMatter(), compiled)
	}
	return r, nil
}

func (r *firstLineHeading) Finalize() []lint.Violation {
	if r.satisfied {
		return nil
	}

	root := r.Ctx.Root()
	if root == nil || root.FirstChild == nil {
		return nil
	}

	var firstBlock *mdast.Node
	var firstHeading *mdast.Node
	for child := root.FirstChild; child != nil; child = child.Next {
		if child.Kind == mdast.NodeFrontMatter {
			continue
		}
		// HTML comments do not count as content.
		if child.Kind == mdast.NodeHTMLBlock && strings.HasPrefix(string(child.Text()), "<!--") {
			continue
		}
		if firstBlock == nil {
			firstBlock = child
		}
		if child.Kind == mdast.NodeHeading {
			firstHeading = child
			break
		}
		if !r.allowPreamble {
			break
		}
	}

	if firstBlock == nil {
		return nil
	}

	ok := firstHeading != nil &&
		lint.HeadingLevel(firstHeading) == r.level &&
		(r.allowPreamble || firstHeading == firstBlock)
	if !ok {
		target := firstBlock
		r.Report(mdast.SourcePosition{
			StartLine:   target.StartLine(),
			StartColumn: 1,
			EndLine:     target.StartLine(),
			EndColumn:   2,
		}, "First line in a file should be a top-level heading")
	}

	return r.BaseLinter.Finalize()
}

// MD043 required-headings

var md043Meta = &lint.Metadata{
	ID:              "MD043",
	Alias:           "required-headings",
	Description:     "Required heading structure",
	Tags:            []string{"headings"},
	Type:            lint.TypeDocument,
	Kinds:           []mdast.NodeKind{mdast.NodeHeading},
	DefaultSeverity: config.SeverityError,
}

type requiredHeadings struct {
	lint.BaseLinter
	required  []string
	matchCase bool
	headings  []*mdast.Node
}

func newRequiredHeadings(ctx *lint.Context) (lint.Linter, error) {
	r := &requiredHeadings{BaseLinter: lint.NewBaseLinter(md043Meta, ctx)}
	r.required = r.OptionStringSlice("headings", nil)
	r.matchCase = r.OptionBool("match_case", false)
	return r, nil
}

func (r *requiredHeadings) OnNode(n *mdast.Node) {
	if n.Kind == mdast.NodeHeading {
		r.headings = append(r.headings, n)
	}
}

func (r *requiredHeadings) Finalize() []lint.Violation {
	// An empty requirement list disables the rule.
	if len(r.required) == 0 {
		return nil
	}

	actual := make([]string, len(r.headings))
	for i, h := range r.headings {
		actual[i] = lint.HeadingText(h)
	}

	if failIdx, ok := matchHeadingSequence(r.required, actual, r.matchCase); !ok {
		if failIdx < len(r.headings) {
			r.ReportNode(r.headings[failIdx], "Required heading structure")
		} else {
			line := r.Ctx.File.LineCount()
			if line < 1 {
				line = 1
			}
			r.ReportLine(line, 1, 1, "Required heading structure")
		}
	}

	return r.BaseLinter.Finalize()
}

// matchHeadingSequence matches the document's headings against the
// required sequence. Tokens: "*" matches zero or more headings, "+" one or
// more, "?" exactly one; anything else matches one heading literally.
// On failure it returns the index of the first heading that could not be
// matched (len(actual) when headings ran out).
func matchHeadingSequence(required, actual []string, matchCase bool) (int, bool) {
	equals := func(req, act string) bool {
		if matchCase {
			return req == act
		}
		return strings.EqualFold(req, act)
	}

	var match func(ri, ai int) (int, bool)
	match = func(ri, ai int) (int, bool) {
		if ri == len(required) {
			if ai == len(actual) {
				return 0, true
			}
			return ai, false
		}

		token := required[ri]
		switch token {
		case "*":
			best := ai
			for skip := 0; ai+skip <= len(actual); skip++ {
				if fail, ok := match(ri+1, ai+skip); ok {
					return 0, true
				} else if fail > best {
					best = fail
				}
			}
			return best, false
		case "+":
			if ai >= len(actual) {
				return len(actual), false
			}
			best := ai + 1
			for skip := 1; ai+skip <= len(actual); skip++ {
				if fail, ok := match(ri+1, ai+skip); ok {
					return 0, true
				} else if fail > best {
					best = fail
				}
			}
			return best, false
		case "?":
			if ai >= len(actual) {
				return len(actual), false
			}
			return match(ri+1, ai+1)
		default:
			if ai >= len(actual) {
				return len(actual), false
			}
			if !equals(token, actual[ai]) {
				return ai, false
			}
			return match(ri+1, ai+1)
		}
	}

	return match(0, 0)
}

// MD044 proper-names

var md044Meta = &lint.Metadata{
	ID:              "MD044",
	Alias:           "proper-names",
	Description:     "Proper names should have the correct capitalization",
	Tags:            []string{"spelling"},
	Type:            lint.TypeSpecial,
	DefaultSeverity: config.SeverityError,
}

type properName struct {
	name    string
	pattern *regexp.Regexp
}

type properNames struct {
	lint.BaseLinter
	names        []properName
	codeBlocks   bool
	htmlElements bool
}

func newProperNames(ctx *lint.Context) (lint.Linter, error) {
	r := &properNames{BaseLinter: lint.NewBaseLinter(md044Meta, ctx)}
	r.codeBlocks = r.OptionBool("code_blocks", true)
	r.htmlElements = r.OptionBool("html_elements", true)

	for _, name := range r.OptionStringSlice("names", nil) {
		if name == "" {
			continue
		}
		pattern, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(name))
		if err != nil {
			return nil, fmt.Errorf("invalid proper name %q: %w", name, err)
		}
		r.names = append(r.names, properName{name: name, pattern: pattern})
	}
	return r, nil
}

func (r *properNames) OnLine(line lint.Line) {
	if len(r.names) == 0 || line.Blank || line.InFrontMatter {
		return
	}
	if line.InCode && !r.codeBlocks {
		return
	}
	if line.InHTML && !r.htmlElements {
		return
	}

	for _, pn := range r.names {
		for _, loc := range pn.pattern.FindAllIndex(line.Text, -1) {
			found := string(line.Text[loc[0]:loc[1]])
			if found == pn.name {
				continue
			}
			if !wordBoundary(line.Text, loc[0], loc[1]) {
				continue
			}

			col := lint.ColumnOfOffset(line.Text, loc[0])
			if !r.codeBlocks && r.Ctx.IsMaskedAt(line.Number, col, lint.MaskCodeSpan) {
				continue
			}
			if !r.htmlElements && r.Ctx.IsMaskedAt(line.Number, col, lint.MaskHTML) {
				continue
			}

			width := lint.ColumnOfOffset(line.Text, loc[1]) - col
			r.ReportLine(line.Number, col, width,
				fmt.Sprintf("Expected: %s; Actual: %s", pn.name, found))
		}
	}
}

// wordBoundary checks that a match is a whole word, Unicode-aware.
func wordBoundary(text []byte, start, end int) bool {
	if start > 0 {
		prev, _ := utf8.DecodeLastRune(text[:start])
		if unicode.IsLetter(prev) || unicode.IsDigit(prev) {
			return false
		}
	}
	if end < len(text) {
		next, _ := utf8.DecodeRune(text[end:])
		if unicode.IsLetter(next) || unicode.IsDigit(next) {
			return false
		}
	}
	return true
}

//nolint:gochecknoinits // Metadata.New is set post-declaration to avoid an init cycle.
func init() {
	md041Meta.New = newFirstLineHeading
	md043Meta.New = newRequiredHeadings
	md044Meta.New = newProperNames
}
