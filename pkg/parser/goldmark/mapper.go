package goldmark

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/marklint/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree.
//
// goldmark segments index the parsed body, which starts after any
// front-matter block; base shifts them back onto the full content.
type mapper struct {
	content []byte
	base    int
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte, base int) *mapper {
	return &mapper{content: content, base: base}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	doc.Span = mdast.SourceRange{Start: 0, End: len(m.content)}
	m.mapChildren(gmDoc, doc)
	return doc
}

// mapChildren recursively maps all children of a goldmark node.
// Text nodes are handled here because a trailing line break produces a
// sibling break node in addition to the text itself.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			m.appendText(parent, t)
			continue
		}
		if mdNode := m.mapNode(child); mdNode != nil {
			mdast.AppendChild(parent, mdNode)
		}
	}
}

// appendText adds a text node and, when the segment ends a line, the
// corresponding soft or hard break node.
func (m *mapper) appendText(parent *mdast.Node, t *ast.Text) {
	node := mdast.NewNode(mdast.NodeText)
	node.Span = mdast.SourceRange{Start: t.Segment.Start + m.base, End: t.Segment.Stop + m.base}
	node.Inline = &mdast.InlineAttrs{Text: t.Segment.Value(m.content[m.base:])}
	mdast.AppendChild(parent, node)

	switch {
	case t.HardLineBreak():
		mdast.AppendChild(parent, mdast.NewNode(mdast.NodeHardBreak))
	case t.SoftLineBreak():
		mdast.AppendChild(parent, mdast.NewNode(mdast.NodeSoftBreak))
	}
}

// mapNode converts a single goldmark node to an mdast.Node.
// The span recorded here is an anchor (the union of the node's own text
// segments); fixSpans later extends it to cover the full construct.
func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	var node *mdast.Node

	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		node = mdast.NewNode(mdast.NodeHeading)
		node.Block = &mdast.BlockAttrs{HeadingLevel: gmn.Level}
		node.Span = m.linesSpan(gmn)
		m.mapChildren(gmNode, node)

	case *ast.Paragraph:
		node = mdast.NewNode(mdast.NodeParagraph)
		node.Span = m.linesSpan(gmn)
		m.mapChildren(gmNode, node)

	case *ast.TextBlock:
		// Tight list items hold their content in text blocks.
		node = mdast.NewNode(mdast.NodeParagraph)
		node.Span = m.linesSpan(gmn)
		node.Ext = map[string]any{"tight": true}
		m.mapChildren(gmNode, node)

	case *ast.List:
		node = m.mapList(gmn)

	case *ast.ListItem:
		node = mdast.NewNode(mdast.NodeListItem)
		node.Block = &mdast.BlockAttrs{ListItem: &mdast.ListItemAttrs{}}
		m.mapChildren(gmNode, node)

	case *ast.Blockquote:
		node = mdast.NewNode(mdast.NodeBlockquote)
		m.mapChildren(gmNode, node)

	case *ast.FencedCodeBlock:
		node = m.mapFencedCodeBlock(gmn)

	case *ast.CodeBlock:
		node = mdast.NewNode(mdast.NodeCodeBlock)
		node.Block = &mdast.BlockAttrs{CodeBlock: &mdast.CodeBlockAttrs{Indented: true}}
		node.Span = m.linesSpan(gmn)

	case *ast.ThematicBreak:
		node = mdast.NewNode(mdast.NodeThematicBreak)

	case *ast.HTMLBlock:
		node = mdast.NewNode(mdast.NodeHTMLBlock)
		node.Span = m.htmlBlockSpan(gmn)

	// Inline-level nodes. Text is normally consumed by mapChildren; this
	// arm covers text reached outside a mapped container.
	case *ast.Text:
		node = mdast.NewNode(mdast.NodeText)
		node.Span = mdast.SourceRange{Start: gmn.Segment.Start + m.base, End: gmn.Segment.Stop + m.base}
		node.Inline = &mdast.InlineAttrs{Text: gmn.Segment.Value(m.content[m.base:])}

	case *ast.String:
		node = mdast.NewNode(mdast.NodeText)
		node.Inline = &mdast.InlineAttrs{Text: gmn.Value}

	case *ast.Emphasis:
		node = m.mapEmphasis(gmn)

	case *ast.CodeSpan:
		node = m.mapCodeSpan(gmn)

	case *ast.Link:
		node = m.mapLinkOrImage(gmNode, mdast.NodeLink, string(gmn.Destination), gmn.Title)

	case *ast.Image:
		node = m.mapLinkOrImage(gmNode, mdast.NodeImage, string(gmn.Destination), gmn.Title)

	case *ast.AutoLink:
		node = m.mapAutoLink(gmn)

	case *ast.RawHTML:
		node = mdast.NewNode(mdast.NodeHTMLInline)
		node.Span = m.segmentsSpan(gmn)

	// GFM extension nodes.
	case *east.Table:
		node = mdast.NewNode(mdast.NodeTable)
		node.Ext = map[string]any{"alignments": gmn.Alignments}
		m.mapChildren(gmNode, node)

	case *east.TableHeader:
		node = mdast.NewNode(mdast.NodeTableHeader)
		m.mapChildren(gmNode, node)

	case *east.TableRow:
		node = mdast.NewNode(mdast.NodeTableRow)
		m.mapChildren(gmNode, node)

	case *east.TableCell:
		node = mdast.NewNode(mdast.NodeTableCell)
		node.Span = m.linesSpan(gmn)
		m.mapChildren(gmNode, node)

	case *east.TaskCheckBox:
		node = mdast.NewNode(mdast.NodeText)
		node.Ext = map[string]any{"taskCheckbox": true, "checked": gmn.IsChecked}

	default:
		node = mdast.NewNode(mdast.NodeRaw)
		m.mapChildren(gmNode, node)
	}

	return node
}

// mapList converts a goldmark List to an mdast node.
func (m *mapper) mapList(list *ast.List) *mdast.Node {
	node := mdast.NewNode(mdast.NodeList)

	attrs := &mdast.ListAttrs{
		Ordered:     list.IsOrdered(),
		StartNumber: list.Start,
		Tight:       list.IsTight,
	}
	if list.IsOrdered() {
		attrs.Delimiter = list.Marker
	} else {
		attrs.BulletMarker = list.Marker
	}

	node.Block = &mdast.BlockAttrs{List: attrs}
	m.mapChildren(list, node)
	return node
}

// mapFencedCodeBlock converts a goldmark FencedCodeBlock to an mdast node.
// The fence character and length are recovered from the source in fixSpans.
func (m *mapper) mapFencedCodeBlock(cb *ast.FencedCodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)

	attrs := &mdast.CodeBlockAttrs{}
	span := m.linesSpan(cb)

	if cb.Info != nil {
		attrs.Info = string(cb.Info.Value(m.content[m.base:]))
		attrs.Language = firstField(attrs.Info)
		infoSpan := mdast.SourceRange{
			Start: cb.Info.Segment.Start + m.base,
			End:   cb.Info.Segment.Stop + m.base,
		}
		span = unionSpan(span, infoSpan)
	}

	node.Block = &mdast.BlockAttrs{CodeBlock: attrs}
	node.Span = span
	return node
}

// mapEmphasis converts a goldmark Emphasis node.
func (m *mapper) mapEmphasis(em *ast.Emphasis) *mdast.Node {
	var node *mdast.Node
	if em.Level == 2 {
		node = mdast.NewNode(mdast.NodeStrong)
	} else {
		node = mdast.NewNode(mdast.NodeEmphasis)
	}
	node.Inline = &mdast.InlineAttrs{EmphasisLevel: em.Level}
	m.mapChildren(em, node)
	return node
}

// mapCodeSpan converts a goldmark CodeSpan; the inner text keeps its
// whitespace verbatim.
func (m *mapper) mapCodeSpan(cs *ast.CodeSpan) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeSpan)

	var text []byte
	span := mdast.SourceRange{}
	for child := cs.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			text = append(text, t.Segment.Value(m.content[m.base:])...)
			seg := mdast.SourceRange{Start: t.Segment.Start + m.base, End: t.Segment.Stop + m.base}
			span = unionSpan(span, seg)
		}
	}

	node.Inline = &mdast.InlineAttrs{Text: text}
	node.Span = span
	return node
}

// mapLinkOrImage converts goldmark Link and Image nodes.
// goldmark resolves reference-style links during parsing; the refs package
// recovers the written style from the source.
func (m *mapper) mapLinkOrImage(gmNode ast.Node, kind mdast.NodeKind, dest string, title []byte) *mdast.Node {
	node := mdast.NewNode(kind)
	node.Inline = &mdast.InlineAttrs{
		Link: &mdast.LinkAttrs{
			Destination:    dest,
			Title:          string(title),
			HasTitle:       title != nil,
			ReferenceStyle: mdast.RefStyleInline,
		},
	}
	m.mapChildren(gmNode, node)
	return node
}

// mapAutoLink converts a goldmark AutoLink; its span is recovered from the
// source in fixSpans (goldmark keeps no segment for the angle brackets).
func (m *mapper) mapAutoLink(al *ast.AutoLink) *mdast.Node {
	node := mdast.NewNode(mdast.NodeLink)

	label := string(al.Label(m.content[m.base:]))
	node.Inline = &mdast.InlineAttrs{
		Link: &mdast.LinkAttrs{
			Destination:    string(al.URL(m.content[m.base:])),
			ReferenceStyle: mdast.RefStyleAutolink,
		},
	}
	node.Ext = map[string]any{"autolinkLabel": label}

	textNode := mdast.NewNode(mdast.NodeText)
	textNode.Inline = &mdast.InlineAttrs{Text: []byte(label)}
	mdast.AppendChild(node, textNode)

	return node
}

// linesSpan returns the union of a block node's line segments.
func (m *mapper) linesSpan(gmNode ast.Node) mdast.SourceRange {
	lines := gmNode.Lines()
	if lines == nil || lines.Len() == 0 {
		return mdast.SourceRange{}
	}
	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	return mdast.SourceRange{Start: first.Start + m.base, End: last.Stop + m.base}
}

// htmlBlockSpan covers an HTML block's lines plus its closure line.
func (m *mapper) htmlBlockSpan(hb *ast.HTMLBlock) mdast.SourceRange {
	span := m.linesSpan(hb)
	if hb.HasClosure() {
		closure := mdast.SourceRange{
			Start: hb.ClosureLine.Start + m.base,
			End:   hb.ClosureLine.Stop + m.base,
		}
		span = unionSpan(span, closure)
	}
	return span
}

// segmentsSpan returns the union of a RawHTML node's segments.
func (m *mapper) segmentsSpan(raw *ast.RawHTML) mdast.SourceRange {
	span := mdast.SourceRange{}
	for i := 0; i < raw.Segments.Len(); i++ {
		seg := raw.Segments.At(i)
		span = unionSpan(span, mdast.SourceRange{Start: seg.Start + m.base, End: seg.Stop + m.base})
	}
	return span
}

// unionSpan merges two spans, ignoring empty ones.
func unionSpan(a, b mdast.SourceRange) mdast.SourceRange {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	out := a
	if b.Start < out.Start {
		out.Start = b.Start
	}
	if b.End > out.End {
		out.End = b.End
	}
	return out
}

// firstField returns the first whitespace-separated word of an info string.
func firstField(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
