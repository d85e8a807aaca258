package refs

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yaklabco/marklint/pkg/mdast"
)

// Collect walks the AST once and builds the reference Context: heading and
// HTML anchors, link/image usages with their written styles, and reference
// definitions.
func Collect(root *mdast.Node, file *mdast.FileSnapshot) *Context {
	ctx := NewContext(file)
	if root == nil || file == nil {
		return ctx
	}

	coll := &collector{ctx: ctx}
	//nolint:errcheck // visitor never returns error
	mdast.Walk(root, coll.visit)
	coll.scanUnparsedReferences()
	coll.resolve()

	return ctx
}

type collector struct {
	ctx *Context

	// covered spans already belong to parsed usages or definitions;
	// skipped spans (code, inline HTML) cannot contain references.
	covered []mdast.SourceRange
	skipped []mdast.SourceRange
}

func (c *collector) visit(node *mdast.Node) error {
	switch node.Kind {
	case mdast.NodeHeading:
		c.collectHeadingAnchor(node)
	case mdast.NodeLink:
		c.collectUsage(node, false)
		c.covered = append(c.covered, node.Span)
	case mdast.NodeImage:
		c.collectUsage(node, true)
		c.covered = append(c.covered, node.Span)
	case mdast.NodeHTMLBlock, mdast.NodeHTMLInline:
		c.collectHTMLAnchors(node)
		c.skipped = append(c.skipped, node.Span)
	case mdast.NodeLinkRefDef:
		c.collectDefinition(node)
		c.covered = append(c.covered, node.Span)
	case mdast.NodeCodeBlock, mdast.NodeCodeSpan, mdast.NodeFrontMatter:
		c.skipped = append(c.skipped, node.Span)
	}
	return nil
}

func (c *collector) collectHeadingAnchor(node *mdast.Node) {
	text := headingText(node)
	if text == "" {
		return
	}
	c.ctx.Anchors.AddFromHeading(text, node.SourcePosition())
}

// headingText renders a heading the way the slug generator sees it:
// inline markup dropped, code-span contents kept, whitespace collapsed.
func headingText(node *mdast.Node) string {
	var buf bytes.Buffer
	var visit func(n *mdast.Node)
	visit = func(n *mdast.Node) {
		switch n.Kind {
		case mdast.NodeText:
			if n.Inline != nil {
				buf.Write(n.Inline.Text)
			}
		case mdast.NodeCodeSpan:
			if n.Inline != nil {
				buf.Write(n.Inline.Text)
			}
			return
		case mdast.NodeSoftBreak, mdast.NodeHardBreak:
			buf.WriteByte(' ')
		}
		for child := n.FirstChild; child != nil; child = child.Next {
			visit(child)
		}
	}
	for child := node.FirstChild; child != nil; child = child.Next {
		visit(child)
	}
	return strings.Join(strings.Fields(buf.String()), " ")
}

func (c *collector) collectUsage(node *mdast.Node, isImage bool) {
	if node.Inline == nil || node.Inline.Link == nil {
		return
	}

	link := node.Inline.Link
	usage := &ReferenceUsage{
		IsImage:     isImage,
		Text:        linkText(node),
		Destination: link.Destination,
		Fragment:    ExtractFragment(link.Destination),
		Position:    node.SourcePosition(),
		Node:        node,
	}

	usage.Style, usage.Label = detectStyle(node, usage.Text)
	usage.NormalizedLabel = NormalizeLabel(usage.Label)

	c.ctx.Usages = append(c.ctx.Usages, usage)
}

func linkText(node *mdast.Node) string {
	var buf bytes.Buffer
	//nolint:errcheck // visitor never returns error
	mdast.Walk(node, func(n *mdast.Node) error {
		if n.Kind == mdast.NodeText && n.Inline != nil {
			buf.Write(n.Inline.Text)
		}
		return nil
	})
	return buf.String()
}

// detectStyle classifies how the link is written by inspecting its span.
func detectStyle(node *mdast.Node, text string) (mdast.ReferenceStyle, string) {
	if node.Inline.Link.ReferenceStyle == mdast.RefStyleAutolink {
		return mdast.RefStyleAutolink, ""
	}

	src := node.Text()
	if len(src) == 0 {
		return mdast.RefStyleInline, ""
	}
	if src[0] == '<' {
		return mdast.RefStyleAutolink, ""
	}

	// Skip the "![" / "[" opener and find the matching close bracket.
	open := 0
	if src[0] == '!' {
		open = 1
	}
	if open >= len(src) || src[open] != '[' {
		return mdast.RefStyleInline, ""
	}
	closeIdx := matchBracket(src, open)
	if closeIdx < 0 {
		return mdast.RefStyleInline, ""
	}

	rest := src[closeIdx+1:]
	switch {
	case len(rest) == 0:
		return mdast.RefStyleShortcut, text
	case rest[0] == '(':
		return mdast.RefStyleInline, ""
	case bytes.HasPrefix(rest, []byte("[]")):
		return mdast.RefStyleCollapsed, text
	case rest[0] == '[':
		end := bytes.IndexByte(rest, ']')
		if end < 0 {
			return mdast.RefStyleShortcut, text
		}
		return mdast.RefStyleFull, string(rest[1:end])
	default:
		return mdast.RefStyleShortcut, text
	}
}

// matchBracket returns the index of the ']' matching the '[' at open.
func matchBracket(src []byte, open int) int {
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// htmlAttrPattern matches HTML attributes like id="value" or id='value'.
var htmlAttrPattern = regexp.MustCompile(`(?i)\b(id|name)\s*=\s*["']([^"']+)["']`)

func (c *collector) collectHTMLAnchors(node *mdast.Node) {
	content := node.Text()
	if len(content) == 0 {
		return
	}

	pos := node.SourcePosition()
	for _, match := range htmlAttrPattern.FindAllSubmatch(content, -1) {
		source := AnchorFromHTMLID
		if strings.EqualFold(string(match[1]), "name") {
			source = AnchorFromHTMLName
		}
		c.ctx.Anchors.Add(&Anchor{
			ID:       string(match[2]),
			Source:   source,
			Position: pos,
		})
	}
}

func (c *collector) collectDefinition(node *mdast.Node) {
	label, _ := node.Ext["label"].(string)
	dest, _ := node.Ext["destination"].(string)
	if label == "" {
		return
	}

	normalized := NormalizeLabel(label)
	pos := node.SourcePosition()

	def := &ReferenceDefinition{
		Label:           label,
		NormalizedLabel: normalized,
		Destination:     dest,
		LineNumber:      pos.StartLine,
		Position:        pos,
	}

	if _, exists := c.ctx.Definitions[normalized]; exists {
		def.IsDuplicate = true
	} else {
		c.ctx.Definitions[normalized] = def
	}

	c.ctx.AllDefinitions = append(c.ctx.AllDefinitions, def)
}

// refUsePattern matches reference-style link/image syntax in raw text:
// [text][label], [label][], or bare [label].
var refUsePattern = regexp.MustCompile(`(!?)\[([^\[\]]+)\](?:\[([^\[\]]*)\])?`)

// scanUnparsedReferences recovers reference-style usages whose labels have
// no definition: the parser leaves those as literal text, but rules like
// MD052 exist precisely to report them.
func (c *collector) scanUnparsedReferences() {
	file := c.ctx.File
	if file == nil {
		return
	}

	for _, loc := range refUsePattern.FindAllSubmatchIndex(file.Content, -1) {
		span := mdast.SourceRange{Start: loc[0], End: loc[1]}
		if c.overlapsAny(span, c.covered) || c.overlapsAny(span, c.skipped) {
			continue
		}
		// Inline syntax is the parser's business.
		if loc[1] < len(file.Content) && file.Content[loc[1]] == '(' {
			continue
		}

		text := string(file.Content[loc[4]:loc[5]])
		usage := &ReferenceUsage{
			IsImage:   loc[3] > loc[2],
			Text:      text,
			Synthetic: true,
		}

		switch {
		case loc[6] < 0:
			usage.Style = mdast.RefStyleShortcut
			usage.Label = text
		case loc[6] == loc[7]:
			usage.Style = mdast.RefStyleCollapsed
			usage.Label = text
		default:
			usage.Style = mdast.RefStyleFull
			usage.Label = string(file.Content[loc[6]:loc[7]])
		}
		usage.NormalizedLabel = NormalizeLabel(usage.Label)

		startLine, startCol := file.PositionAt(loc[0])
		endLine, endCol := file.PositionAt(loc[1])
		usage.Position = mdast.SourcePosition{
			StartLine:   startLine,
			StartColumn: startCol,
			EndLine:     endLine,
			EndColumn:   endCol,
		}

		c.ctx.Usages = append(c.ctx.Usages, usage)
	}
}

func (c *collector) overlapsAny(span mdast.SourceRange, ranges []mdast.SourceRange) bool {
	for _, r := range ranges {
		if span.Overlaps(r) {
			return true
		}
	}
	return false
}

// resolve links usages to their definitions and updates usage counts.
func (c *collector) resolve() {
	for _, usage := range c.ctx.Usages {
		if usage.NormalizedLabel == "" {
			continue
		}
		if def := c.ctx.Definitions[usage.NormalizedLabel]; def != nil {
			usage.ResolvedDefinition = def
			def.UsageCount++
		}
	}
}
