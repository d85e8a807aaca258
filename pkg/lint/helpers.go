package lint

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/marklint/pkg/mdast"
)

// Node accessor helpers shared by rule implementations.

// HeadingLevel returns the heading level for a heading node, or 0.
func HeadingLevel(n *mdast.Node) int {
	if n == nil || n.Kind != mdast.NodeHeading || n.Block == nil {
		return 0
	}
	return n.Block.HeadingLevel
}

// HeadingStyleOf returns the written style of a heading node.
func HeadingStyleOf(n *mdast.Node) mdast.HeadingStyle {
	if n == nil || n.Block == nil {
		return mdast.HeadingATX
	}
	return n.Block.HeadingStyle
}

// HeadingText returns a heading's rendered text: markers stripped,
// emphasis and link markup removed, whitespace collapsed. Code-span
// contents are preserved verbatim.
func HeadingText(n *mdast.Node) string {
	if n == nil || n.Kind != mdast.NodeHeading {
		return ""
	}

	var buf bytes.Buffer
	var visit func(node *mdast.Node)
	visit = func(node *mdast.Node) {
		switch node.Kind {
		case mdast.NodeText:
			if node.Inline != nil {
				buf.Write(node.Inline.Text)
			}
		case mdast.NodeCodeSpan:
			// Code-span contents are preserved verbatim, children skipped.
			if node.Inline != nil {
				buf.Write(node.Inline.Text)
			}
			return
		case mdast.NodeSoftBreak, mdast.NodeHardBreak:
			buf.WriteByte(' ')
		}
		for c := node.FirstChild; c != nil; c = c.Next {
			visit(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.Next {
		visit(c)
	}

	return CollapseWhitespace(buf.String())
}

// NodeText extracts the plain text content of a node's descendants.
func NodeText(n *mdast.Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	//nolint:errcheck // visitor never returns error
	mdast.Walk(n, func(node *mdast.Node) error {
		if node.Kind == mdast.NodeText && node.Inline != nil {
			buf.Write(node.Inline.Text)
		}
		return nil
	})
	return buf.String()
}

// CollapseWhitespace trims a string and collapses internal whitespace runs
// to single spaces.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IsOrderedList returns true if the node is an ordered list.
func IsOrderedList(n *mdast.Node) bool {
	return n != nil && n.Kind == mdast.NodeList && n.Block != nil &&
		n.Block.List != nil && n.Block.List.Ordered
}

// ListItems returns the direct list-item children of a list node.
func ListItems(list *mdast.Node) []*mdast.Node {
	if list == nil || list.Kind != mdast.NodeList {
		return nil
	}
	var items []*mdast.Node
	for child := list.FirstChild; child != nil; child = child.Next {
		if child.Kind == mdast.NodeListItem {
			items = append(items, child)
		}
	}
	return items
}

// ListNestingLevel returns how many list items enclose the given list node.
func ListNestingLevel(list *mdast.Node) int {
	level := 0
	for p := list.Parent; p != nil; p = p.Parent {
		if p.Kind == mdast.NodeListItem {
			level++
		}
	}
	return level
}

// IsFencedCodeBlock returns true for fenced (not indented) code blocks.
func IsFencedCodeBlock(n *mdast.Node) bool {
	return n != nil && n.Kind == mdast.NodeCodeBlock && n.Block != nil &&
		n.Block.CodeBlock != nil && !n.Block.CodeBlock.Indented
}

// IsIndentedCodeBlock returns true for indented code blocks.
func IsIndentedCodeBlock(n *mdast.Node) bool {
	return n != nil && n.Kind == mdast.NodeCodeBlock && n.Block != nil &&
		n.Block.CodeBlock != nil && n.Block.CodeBlock.Indented
}

// LinkDestination returns the destination URL for a link or image.
func LinkDestination(n *mdast.Node) string {
	if n == nil || n.Inline == nil || n.Inline.Link == nil {
		return ""
	}
	return n.Inline.Link.Destination
}

// ExtractHTMLTagName extracts the element name from raw HTML content.
// Returns empty string if no valid tag is found.
func ExtractHTMLTagName(content []byte) string {
	content = bytes.TrimSpace(content)
	if len(content) < 2 || content[0] != '<' {
		return ""
	}

	idx := 1
	if idx < len(content) && content[idx] == '/' {
		idx++
	}

	start := idx
	for idx < len(content) {
		ch := content[idx]
		isNameChar := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') || ch == '-'
		if !isNameChar {
			break
		}
		idx++
	}

	if idx == start {
		return ""
	}

	return string(bytes.ToLower(content[start:idx]))
}

// CountBlankLinesBefore counts consecutive blank lines before a 1-based line.
func CountBlankLinesBefore(file *mdast.FileSnapshot, line int) int {
	count := 0
	for ln := line - 1; ln >= 1; ln-- {
		if !file.IsBlankLine(ln) {
			break
		}
		count++
	}
	return count
}

// CountBlankLinesAfter counts consecutive blank lines after a 1-based line.
func CountBlankLinesAfter(file *mdast.FileSnapshot, line int) int {
	count := 0
	for ln := line + 1; ln <= file.LineCount(); ln++ {
		if !file.IsBlankLine(ln) {
			break
		}
		count++
	}
	return count
}

// ColumnOfOffset converts a byte offset within a line's text to a 1-based
// character column.
func ColumnOfOffset(lineText []byte, byteOffset int) int {
	if byteOffset > len(lineText) {
		byteOffset = len(lineText)
	}
	return utf8.RuneCount(lineText[:byteOffset]) + 1
}
