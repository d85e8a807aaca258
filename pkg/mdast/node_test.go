package mdast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildSmallTree() (*Node, *Node, *Node, *Node) {
	doc := NewDocument()
	heading := NewNode(NodeHeading)
	heading.Block = &BlockAttrs{HeadingLevel: 1}
	para := NewNode(NodeParagraph)
	text := NewNode(NodeText)

	AppendChild(doc, heading)
	AppendChild(doc, para)
	AppendChild(para, text)
	return doc, heading, para, text
}

func TestAppendChild(t *testing.T) {
	t.Parallel()

	doc, heading, para, text := buildSmallTree()

	assert.Equal(t, heading, doc.FirstChild)
	assert.Equal(t, para, doc.LastChild)
	assert.Equal(t, para, heading.Next)
	assert.Equal(t, heading, para.Prev)
	assert.Equal(t, doc, para.Parent)
	assert.Equal(t, para, text.Parent)
	assert.Equal(t, 2, doc.ChildCount())
}

func TestRemoveChild(t *testing.T) {
	t.Parallel()

	doc, heading, para, _ := buildSmallTree()
	RemoveChild(doc, heading)

	assert.Equal(t, para, doc.FirstChild)
	assert.Equal(t, para, doc.LastChild)
	assert.Nil(t, heading.Parent)
	assert.Nil(t, para.Prev)
}

func TestAncestor(t *testing.T) {
	t.Parallel()

	doc, _, para, text := buildSmallTree()
	assert.Equal(t, para, text.Ancestor(NodeParagraph))
	assert.Equal(t, doc, text.Ancestor(NodeDocument))
	assert.Nil(t, text.Ancestor(NodeBlockquote))
}

func TestBlockInlineClassification(t *testing.T) {
	t.Parallel()

	assert.True(t, NewNode(NodeHeading).IsBlock())
	assert.True(t, NewNode(NodeFrontMatter).IsBlock())
	assert.True(t, NewNode(NodeTableRow).IsBlock())
	assert.False(t, NewNode(NodeText).IsBlock())
	assert.True(t, NewNode(NodeCodeSpan).IsInline())
	assert.False(t, NewNode(NodeCodeBlock).IsInline())
}

func TestFindByKind(t *testing.T) {
	t.Parallel()

	doc, heading, _, text := buildSmallTree()

	headings := FindByKind(doc, NodeHeading)
	assert.Equal(t, []*Node{heading}, headings)

	texts := FindByKind(doc, NodeText)
	assert.Equal(t, []*Node{text}, texts)

	assert.Empty(t, FindByKind(doc, NodeTable))
}

func TestFindFirst(t *testing.T) {
	t.Parallel()

	doc, _, para, _ := buildSmallTree()
	found := FindFirst(doc, func(n *Node) bool { return n.Kind == NodeParagraph })
	assert.Equal(t, para, found)

	assert.Nil(t, FindFirst(doc, func(n *Node) bool { return n.Kind == NodeImage }))
}

func TestSourcePositionUnmapped(t *testing.T) {
	t.Parallel()

	n := NewNode(NodeParagraph)
	assert.False(t, n.SourcePosition().IsValid())
	assert.Nil(t, n.Text())
}

func TestNodeText(t *testing.T) {
	t.Parallel()

	f := NewFileSnapshot("test.md", []byte("# Title\n"))
	n := NewNode(NodeHeading)
	n.File = f
	n.Span = SourceRange{Start: 0, End: 7}

	assert.Equal(t, []byte("# Title"), n.Text())

	pos := n.SourcePosition()
	assert.Equal(t, 1, pos.StartLine)
	assert.Equal(t, 1, pos.StartColumn)
	assert.Equal(t, 8, pos.EndColumn)
}
