package rules

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/langdetect"
	"github.com/yaklabco/marklint/pkg/lint"
	"github.com/yaklabco/marklint/pkg/mdast"
)

// MD009 no-trailing-spaces

var md009Meta = &lint.Metadata{
	ID:              "MD009",
	Alias:           "no-trailing-spaces",
	Description:     "Trailing spaces",
	Tags:            []string{"whitespace"},
	Type:            lint.TypeLine,
	DefaultSeverity: config.SeverityError,
}

type noTrailingSpaces struct {
	lint.BaseLinter
	brSpaces           int
	strict             bool
	listItemEmptyLines bool
}

func newNoTrailingSpaces(ctx *lint.Context) (lint.Linter, error) {
	r := &noTrailingSpaces{BaseLinter: lint.NewBaseLinter(md009Meta, ctx)}
	r.brSpaces = r.OptionInt("br_spaces", 2)
	r.strict = r.OptionBool("strict", false)
	r.listItemEmptyLines = r.OptionBool("list_item_empty_lines", false)
	return r, nil
}

func (r *noTrailingSpaces) OnLine(line lint.Line) {
	if line.InCode || line.InFrontMatter {
		return
	}

	text := line.Text
	trimmed := bytes.TrimRight(text, " \t")
	trailing := len(text) - len(trimmed)
	if trailing == 0 {
		return
	}

	// Empty continuation lines inside list items.
	if len(trimmed) == 0 {
		if r.listItemEmptyLines && r.Ctx.LineFlagsAt(line.Number).Has(lint.LineInList) {
			return
		}
	}

	// A run of exactly br_spaces spaces is a hard line break.
	onlySpaces := bytes.IndexByte(text[len(trimmed):], '\t') < 0
	if !r.strict && len(trimmed) > 0 && onlySpaces && trailing == r.brSpaces && r.brSpaces >= 2 {
		return
	}

	col := utf8.RuneCount(trimmed) + 1
	expected := "0"
	if !r.strict && r.brSpaces >= 2 {
		expected = fmt.Sprintf("0 or %d", r.brSpaces)
	}
	r.ReportLine(line.Number, col, trailing,
		fmt.Sprintf("Expected: %s; Actual: %d", expected, trailing))
}

// MD010 no-hard-tabs

var md010Meta = &lint.Metadata{
	ID:              "MD010",
	Alias:           "no-hard-tabs",
	Description:     "Hard tabs",
	Tags:            []string{"whitespace", "hard_tab"},
	Type:            lint.TypeLine,
	DefaultSeverity: config.SeverityError,
}

type noHardTabs struct {
	lint.BaseLinter
	codeBlocks   bool
	spacesPerTab int

	// exemptLines covers fenced blocks whose language is ignored.
	exemptLines map[int]bool
}

func newNoHardTabs(ctx *lint.Context) (lint.Linter, error) {
	r := &noHardTabs{BaseLinter: lint.NewBaseLinter(md010Meta, ctx)}
	r.codeBlocks = r.OptionBool("code_blocks", true)
	r.spacesPerTab = r.OptionInt("spaces_per_tab", 1)

	ignored := r.OptionStringSlice("ignore_code_languages", nil)
	if len(ignored) > 0 {
		r.exemptLines = make(map[int]bool)
		for _, block := range ctx.NodesOfKind(mdast.NodeCodeBlock) {
			if !lint.IsFencedCodeBlock(block) {
				continue
			}
			lang := block.Block.CodeBlock.Language
			for _, ig := range ignored {
				if langdetect.Same(lang, ig) {
					for line := block.StartLine(); line <= block.EndLine(); line++ {
						r.exemptLines[line] = true
					}
					break
				}
			}
		}
	}
	return r, nil
}

func (r *noHardTabs) OnLine(line lint.Line) {
	if line.InFrontMatter {
		return
	}
	if line.InCode {
		if !r.codeBlocks || r.exemptLines[line.Number] {
			return
		}
	}

	idx := bytes.IndexByte(line.Text, '\t')
	if idx < 0 {
		return
	}

	col := expandedColumn(line.Text, idx, r.spacesPerTab)
	r.ReportLine(line.Number, col, 1, fmt.Sprintf("Column: %d", col))
}

// expandedColumn returns the 1-based character column of byte offset idx,
// counting each earlier tab as width wide.
func expandedColumn(text []byte, idx, width int) int {
	col := 1
	for _, ch := range string(text[:idx]) {
		if ch == '\t' {
			col += width
		} else {
			col++
		}
	}
	return col
}

// MD012 no-multiple-blanks

var md012Meta = &lint.Metadata{
	ID:              "MD012",
	Alias:           "no-multiple-blanks",
	Description:     "Multiple consecutive blank lines",
	Tags:            []string{"whitespace", "blank_lines"},
	Type:            lint.TypeLine,
	DefaultSeverity: config.SeverityError,
}

type noMultipleBlanks struct {
	lint.BaseLinter
	maximum  int
	blankRun int
	lastLine int
}

func newNoMultipleBlanks(ctx *lint.Context) (lint.Linter, error) {
	r := &noMultipleBlanks{BaseLinter: lint.NewBaseLinter(md012Meta, ctx)}
	r.maximum = r.OptionInt("maximum", 1)
	return r, nil
}

func (r *noMultipleBlanks) OnLine(line lint.Line) {
	r.lastLine = line.Number

	if line.Blank && !line.InCode && !line.InFrontMatter {
		r.blankRun++
		return
	}
	r.flush(line.Number - 1)
}

func (r *noMultipleBlanks) flush(endLine int) {
	if r.blankRun > r.maximum {
		r.ReportLine(endLine, 1, 1,
			fmt.Sprintf("Expected: %d; Actual: %d", r.maximum, r.blankRun))
	}
	r.blankRun = 0
}

func (r *noMultipleBlanks) Finalize() []lint.Violation {
	r.flush(r.lastLine)
	return r.BaseLinter.Finalize()
}

// MD047 single-trailing-newline

var md047Meta = &lint.Metadata{
	ID:              "MD047",
	Alias:           "single-trailing-newline",
	Description:     "Files should end with a single newline character",
	Tags:            []string{"blank_lines"},
	Type:            lint.TypeLine,
	DefaultSeverity: config.SeverityError,
}

type singleTrailingNewline struct {
	lint.BaseLinter
}

func newSingleTrailingNewline(ctx *lint.Context) (lint.Linter, error) {
	return &singleTrailingNewline{BaseLinter: lint.NewBaseLinter(md047Meta, ctx)}, nil
}

func (r *singleTrailingNewline) Finalize() []lint.Violation {
	content := r.Ctx.File.Content
	if len(content) == 0 {
		return nil
	}

	newlines := 0
	for i := len(content) - 1; i >= 0; {
		if content[i] != '\n' {
			break
		}
		newlines++
		i--
		if i >= 0 && content[i] == '\r' {
			i--
		}
	}

	if newlines == 1 {
		return nil
	}

	lastLine := r.Ctx.File.LineCount()
	text := r.Ctx.File.LineContent(lastLine)
	col := utf8.RuneCount(text) + 1
	r.ReportLine(lastLine, col, 1, "Files should end with a single newline character")
	return r.BaseLinter.Finalize()
}

//nolint:gochecknoinits // Metadata.New is set post-declaration to avoid an init cycle.
func init() {
	md009Meta.New = newNoTrailingSpaces
	md010Meta.New = newNoHardTabs
	md012Meta.New = newNoMultipleBlanks
	md047Meta.New = newSingleTrailingNewline
}
