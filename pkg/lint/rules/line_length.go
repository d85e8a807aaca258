package rules

import (
	"bytes"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
)

// MD013 line-length

var md013Meta = &lint.Metadata{
	ID:              "MD013",
	Alias:           "line-length",
	Description:     "Line length",
	Tags:            []string{"line_length"},
	Type:            lint.TypeLine,
	DefaultSeverity: config.SeverityError,
}

// linkOnlyLinePattern matches lines whose content is a single link or image
// with at most trivial surrounding text.
var linkOnlyLinePattern = regexp.MustCompile(`^\s*!?\[[^\]]*\]\([^)]*\)\s*$|^\s*!?\[[^\]]*\]\[[^\]]*\]\s*$|^\s*<\S+>\s*$`)

// refDefLinePattern matches a link/image reference definition line.
var refDefLinePattern = regexp.MustCompile(`^\s{0,3}\[[^\]]+\]:`)

type lineLength struct {
	lint.BaseLinter
	lineLength    int
	headingLength int
	codeLength    int
	checkHeadings bool
	checkCode     bool
	checkTables   bool
	strict        bool
	stern         bool
}

func newLineLength(ctx *lint.Context) (lint.Linter, error) {
	r := &lineLength{BaseLinter: lint.NewBaseLinter(md013Meta, ctx)}
	r.lineLength = r.OptionInt("line_length", 80)
	r.headingLength = r.OptionInt("heading_line_length", r.lineLength)
	r.codeLength = r.OptionInt("code_block_line_length", r.lineLength)
	r.checkHeadings = r.OptionBool("headings", true)
	r.checkCode = r.OptionBool("code_blocks", true)
	r.checkTables = r.OptionBool("tables", true)
	r.strict = r.OptionBool("strict", false)
	r.stern = r.OptionBool("stern", false)
	return r, nil
}

func (r *lineLength) OnLine(line lint.Line) {
	if line.InFrontMatter {
		return
	}

	flags := r.Ctx.LineFlagsAt(line.Number)
	limit := r.lineLength
	switch {
	case line.InCode:
		if !r.checkCode {
			return
		}
		limit = r.codeLength
	case flags.Has(lint.LineInTable):
		if !r.checkTables {
			return
		}
	case flags.Has(lint.LineInHeading):
		if !r.checkHeadings {
			return
		}
		limit = r.headingLength
	}

	length := utf8.RuneCount(line.Text)
	if length <= limit {
		return
	}

	if !r.strict && r.exempt(line.Text, limit) {
		return
	}

	r.ReportLine(line.Number, limit+1, length-limit,
		fmt.Sprintf("Expected: %d; Actual: %d", limit, length))
}

// exempt applies the non-strict escape hatches: unbreakable reference
// definitions, single-link lines, and lines with no break opportunity
// beyond the limit.
func (r *lineLength) exempt(text []byte, limit int) bool {
	// (a) Reference definitions cannot be wrapped.
	if refDefLinePattern.Match(text) {
		return true
	}

	// (b) A line holding only a single link or image.
	if linkOnlyLinePattern.Match(text) {
		return true
	}

	// (c) No break opportunity beyond the limit. The exemption covers an
	// unbreakable token at the end of an otherwise breakable line; a line
	// that is one unbroken token still violates. Stern mode shares the
	// same space test.
	beyond := runesFrom(text, limit)
	if bytes.ContainsAny(beyond, " \t") {
		return false
	}
	head := text[:len(text)-len(beyond)]
	return bytes.ContainsAny(head, " \t")
}

// runesFrom returns the bytes of text starting at rune index n.
func runesFrom(text []byte, n int) []byte {
	count := 0
	for i := 0; i < len(text); {
		if count == n {
			return text[i:]
		}
		_, size := utf8.DecodeRune(text[i:])
		i += size
		count++
	}
	return nil
}

//nolint:gochecknoinits // Metadata.New is set post-declaration to avoid an init cycle.
func init() {
	md013Meta.New = newLineLength
}
