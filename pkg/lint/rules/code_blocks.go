package rules

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/langdetect"
	"github.com/yaklabco/marklint/pkg/lint"
	"github.com/yaklabco/marklint/pkg/mdast"
)

// MD014 commands-show-output

var md014Meta = &lint.Metadata{
	ID:              "MD014",
	Alias:           "commands-show-output",
	Description:     "Dollar signs used before commands without showing output",
	Tags:            []string{"code"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeCodeBlock},
	DefaultSeverity: config.SeverityError,
}

type commandsShowOutput struct {
	lint.BaseLinter
}

func newCommandsShowOutput(ctx *lint.Context) (lint.Linter, error) {
	return &commandsShowOutput{BaseLinter: lint.NewBaseLinter(md014Meta, ctx)}, nil
}

func (r *commandsShowOutput) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeCodeBlock {
		return
	}
	if lint.IsFencedCodeBlock(n) && !langdetect.IsShell(n.Block.CodeBlock.Language) {
		return
	}

	file := r.Ctx.File
	start, end := n.StartLine(), n.EndLine()
	if lint.IsFencedCodeBlock(n) {
		// Skip the fence lines.
		start++
		end--
	}

	sawCommand := false
	for line := start; line <= end && line >= 1; line++ {
		text := bytes.TrimSpace(file.LineContent(line))
		if len(text) == 0 {
			continue
		}
		if !bytes.HasPrefix(text, []byte("$ ")) && !bytes.Equal(text, []byte("$")) {
			// A line without the prompt is command output; the dollar
			// signs are meaningful.
			return
		}
		sawCommand = true
	}

	if sawCommand {
		r.ReportNode(n, "Dollar signs used before commands without showing output")
	}
}

// MD031 blanks-around-fences

var md031Meta = &lint.Metadata{
	ID:              "MD031",
	Alias:           "blanks-around-fences",
	Description:     "Fenced code blocks should be surrounded by blank lines",
	Tags:            []string{"code", "blank_lines"},
	Type:            lint.TypeHybrid,
	Kinds:           []mdast.NodeKind{mdast.NodeCodeBlock},
	DefaultSeverity: config.SeverityError,
}

type blanksAroundFences struct {
	lint.BaseLinter
	listItems bool
}

func newBlanksAroundFences(ctx *lint.Context) (lint.Linter, error) {
	r := &blanksAroundFences{BaseLinter: lint.NewBaseLinter(md031Meta, ctx)}
	r.listItems = r.OptionBool("list_items", true)
	return r, nil
}

func (r *blanksAroundFences) OnNode(n *mdast.Node) {
	if !lint.IsFencedCodeBlock(n) {
		return
	}
	if !r.listItems && n.Ancestor(mdast.NodeListItem) != nil {
		return
	}

	file := r.Ctx.File
	startLine, endLine := n.StartLine(), n.EndLine()
	if startLine == 0 {
		return
	}

	if startLine > 1 && !file.IsBlankLine(startLine-1) && !afterFrontMatter(r.Ctx, startLine) {
		r.ReportLine(startLine, 1, 1, "Fenced code blocks should be surrounded by blank lines")
	}
	if endLine < file.LineCount() && !file.IsBlankLine(endLine+1) {
		r.ReportLine(endLine, 1, 1, "Fenced code blocks should be surrounded by blank lines")
	}
}

// MD038 no-space-in-code

var md038Meta = &lint.Metadata{
	ID:              "MD038",
	Alias:           "no-space-in-code",
	Description:     "Spaces inside code span elements",
	Tags:            []string{"whitespace", "code"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeCodeSpan},
	DefaultSeverity: config.SeverityError,
}

type noSpaceInCode struct {
	lint.BaseLinter
}

func newNoSpaceInCode(ctx *lint.Context) (lint.Linter, error) {
	return &noSpaceInCode{BaseLinter: lint.NewBaseLinter(md038Meta, ctx)}, nil
}

func (r *noSpaceInCode) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeCodeSpan || n.Inline == nil {
		return
	}

	content := string(n.Inline.Text)
	if content == "" || strings.TrimSpace(content) == "" {
		// Whitespace-only spans render as-is.
		return
	}

	leading := len(content) - len(strings.TrimLeft(content, " "))
	trailing := len(content) - len(strings.TrimRight(content, " "))
	hasEdgeTab := strings.HasPrefix(content, "\t") || strings.HasSuffix(content, "\t")

	// One space on each side is the escape needed to render a backtick.
	balancedSingle := leading == 1 && trailing == 1

	if hasEdgeTab || (!balancedSingle && (leading > 0 || trailing > 0)) {
		r.ReportNode(n, "Spaces inside code span elements")
	}
}

// MD040 fenced-code-language

var md040Meta = &lint.Metadata{
	ID:              "MD040",
	Alias:           "fenced-code-language",
	Description:     "Fenced code blocks should have a language specified",
	Tags:            []string{"code", "language"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeCodeBlock},
	DefaultSeverity: config.SeverityError,
}

type fencedCodeLanguage struct {
	lint.BaseLinter
	allowed      []string
	languageOnly bool
}

func newFencedCodeLanguage(ctx *lint.Context) (lint.Linter, error) {
	r := &fencedCodeLanguage{BaseLinter: lint.NewBaseLinter(md040Meta, ctx)}
	r.allowed = r.OptionStringSlice("allowed_languages", nil)
	r.languageOnly = r.OptionBool("language_only", false)
	return r, nil
}

func (r *fencedCodeLanguage) OnNode(n *mdast.Node) {
	if !lint.IsFencedCodeBlock(n) {
		return
	}
	attrs := n.Block.CodeBlock

	if attrs.Language == "" {
		r.ReportNode(n, "Fenced code blocks should have a language specified")
		return
	}

	if len(r.allowed) > 0 {
		found := false
		for _, lang := range r.allowed {
			if langdetect.Same(attrs.Language, lang) {
				found = true
				break
			}
		}
		if !found {
			r.ReportNode(n, fmt.Sprintf("\"%s\" is not allowed", attrs.Language))
			return
		}
	}

	if r.languageOnly && strings.TrimSpace(attrs.Info) != attrs.Language {
		r.ReportNode(n, fmt.Sprintf("Info string contains more than language: \"%s\"", attrs.Info))
	}
}

// MD046 code-block-style

var md046Meta = &lint.Metadata{
	ID:              "MD046",
	Alias:           "code-block-style",
	Description:     "Code block style",
	Tags:            []string{"code"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeCodeBlock},
	DefaultSeverity: config.SeverityError,
}

type codeBlockStyle struct {
	lint.BaseLinter
	style    string
	observed string
}

func newCodeBlockStyle(ctx *lint.Context) (lint.Linter, error) {
	r := &codeBlockStyle{BaseLinter: lint.NewBaseLinter(md046Meta, ctx)}
	style, err := r.OptionEnum("style", "consistent", "consistent", "fenced", "indented")
	if err != nil {
		return nil, err
	}
	r.style = style
	return r, nil
}

func (r *codeBlockStyle) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeCodeBlock {
		return
	}

	actual := "fenced"
	if lint.IsIndentedCodeBlock(n) {
		actual = "indented"
	}

	expected := r.style
	if expected == "consistent" {
		if r.observed == "" {
			r.observed = actual
			return
		}
		expected = r.observed
	}

	if actual != expected {
		r.ReportNode(n, fmt.Sprintf("Expected: %s; Actual: %s", expected, actual))
	}
}

// MD048 code-fence-style

var md048Meta = &lint.Metadata{
	ID:              "MD048",
	Alias:           "code-fence-style",
	Description:     "Code fence style",
	Tags:            []string{"code"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeCodeBlock},
	DefaultSeverity: config.SeverityError,
}

func fenceName(ch byte) string {
	if ch == '~' {
		return "tilde"
	}
	return "backtick"
}

type codeFenceStyle struct {
	lint.BaseLinter
	style    string
	observed string
}

func newCodeFenceStyle(ctx *lint.Context) (lint.Linter, error) {
	r := &codeFenceStyle{BaseLinter: lint.NewBaseLinter(md048Meta, ctx)}
	style, err := r.OptionEnum("style", "consistent", "consistent", "backtick", "tilde")
	if err != nil {
		return nil, err
	}
	r.style = style
	return r, nil
}

func (r *codeFenceStyle) OnNode(n *mdast.Node) {
	if !lint.IsFencedCodeBlock(n) {
		return
	}

	actual := fenceName(n.Block.CodeBlock.FenceChar)

	expected := r.style
	if expected == "consistent" {
		if r.observed == "" {
			r.observed = actual
			return
		}
		expected = r.observed
	}

	if actual != expected {
		r.ReportNode(n, fmt.Sprintf("Expected: %s; Actual: %s", expected, actual))
	}
}

//nolint:gochecknoinits // Metadata.New is set post-declaration to avoid an init cycle.
func init() {
	md014Meta.New = newCommandsShowOutput
	md031Meta.New = newBlanksAroundFences
	md038Meta.New = newNoSpaceInCode
	md040Meta.New = newFencedCodeLanguage
	md046Meta.New = newCodeBlockStyle
	md048Meta.New = newCodeFenceStyle
}
