package goldmark

import (
	"bytes"
	"regexp"

	"github.com/yaklabco/marklint/pkg/mdast"
)

// fixSpans repairs the spans goldmark does not anchor directly: container
// blocks, fences, thematic breaks, list markers, emphasis delimiters, and
// autolink angle brackets. After this pass every node's span covers the
// full construct as written in the source.
func fixSpans(root *mdast.Node, content []byte) {
	f := &fixer{
		content: content,
		lines:   mdast.BuildLines(content),
	}
	f.fix(root)
}

type fixer struct {
	content []byte
	lines   []mdast.LineInfo

	// cursor is the byte offset just past the last positioned construct,
	// in document order. Anchor-less leaves scan forward from here.
	cursor int
}

func (f *fixer) fix(n *mdast.Node) {
	switch n.Kind {
	case mdast.NodeDocument:
		for c := n.FirstChild; c != nil; c = c.Next {
			f.fix(c)
		}
		n.Span = mdast.SourceRange{Start: 0, End: len(f.content)}
		return

	case mdast.NodeFrontMatter:
		// Span was set during detection.

	case mdast.NodeHeading:
		f.fixHeading(n)

	case mdast.NodeParagraph, mdast.NodeTableCell, mdast.NodeRaw:
		anchor := n.Span
		f.fixChildren(n)
		n.Span = unionSpan(anchor, childrenUnion(n))

	case mdast.NodeCodeBlock:
		f.fixCodeBlock(n)

	case mdast.NodeThematicBreak:
		f.fixThematicBreak(n)

	case mdast.NodeHTMLBlock:
		n.Span = f.extendToLineBounds(n.Span)

	case mdast.NodeList:
		f.fixChildren(n)
		n.Span = childrenUnion(n)

	case mdast.NodeListItem:
		f.fixListItem(n)

	case mdast.NodeBlockquote:
		f.fixBlockquote(n)

	case mdast.NodeTable, mdast.NodeTableHeader:
		f.fixChildren(n)
		n.Span = f.extendToLineBounds(childrenUnion(n))
		if n.Kind == mdast.NodeTable {
			f.includeDelimiterRow(n)
		}

	case mdast.NodeTableRow:
		f.fixChildren(n)
		n.Span = f.extendToLineBounds(childrenUnion(n))

	case mdast.NodeEmphasis, mdast.NodeStrong:
		f.fixEmphasis(n)

	case mdast.NodeCodeSpan:
		f.fixCodeSpan(n)

	case mdast.NodeLink, mdast.NodeImage:
		f.fixLinkOrImage(n)

	case mdast.NodeText, mdast.NodeHTMLInline, mdast.NodeSoftBreak, mdast.NodeHardBreak:
		// Segment spans from the mapper are already exact.
	}

	if !n.Span.IsEmpty() && n.Span.End > f.cursor {
		f.cursor = n.Span.End
	}
}

func (f *fixer) fixChildren(n *mdast.Node) {
	for c := n.FirstChild; c != nil; c = c.Next {
		f.fix(c)
	}
}

func childrenUnion(n *mdast.Node) mdast.SourceRange {
	span := mdast.SourceRange{}
	for c := n.FirstChild; c != nil; c = c.Next {
		span = unionSpan(span, c.Span)
	}
	return span
}

// Line table helpers. The fixer cannot use FileSnapshot methods because
// File back-references are set after span repair.

func (f *fixer) lineIndexAt(offset int) int {
	if offset < 0 || len(f.lines) == 0 {
		return -1
	}
	if offset >= len(f.content) {
		return len(f.lines) - 1
	}
	lo, hi := 0, len(f.lines)
	for lo < hi {
		mid := (lo + hi) / 2
		if f.lines[mid].EndOffset > offset {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	if lo >= len(f.lines) {
		return len(f.lines) - 1
	}
	return lo
}

func (f *fixer) lineText(idx int) []byte {
	if idx < 0 || idx >= len(f.lines) {
		return nil
	}
	li := f.lines[idx]
	return f.content[li.StartOffset:li.NewlineStart]
}

// trimmedLineEnd returns the offset just past the last non-whitespace byte
// of the line, or the line start for blank lines.
func (f *fixer) trimmedLineEnd(idx int) int {
	li := f.lines[idx]
	text := f.content[li.StartOffset:li.NewlineStart]
	trimmed := bytes.TrimRight(text, " \t")
	return li.StartOffset + len(trimmed)
}

func indentWidth(line []byte) int {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}

// extendToLineBounds widens a span to full-line granularity: from the first
// line's indent end backwards to its start, to the last line's trimmed end.
func (f *fixer) extendToLineBounds(span mdast.SourceRange) mdast.SourceRange {
	if span.IsEmpty() {
		return span
	}
	first := f.lineIndexAt(span.Start)
	last := f.lineIndexAt(span.End - 1)
	if first < 0 || last < 0 {
		return span
	}
	start := f.lines[first].StartOffset + indentWidth(f.lineText(first))
	if start > span.Start {
		start = span.Start
	}
	end := f.trimmedLineEnd(last)
	if end < span.End {
		end = span.End
	}
	return mdast.SourceRange{Start: start, End: end}
}

// scanLineFrom finds the first line at or after the cursor whose text
// satisfies match, returning its index or -1.
func (f *fixer) scanLineFrom(match func(line []byte) bool) int {
	start := f.lineIndexAt(f.cursor)
	if start < 0 {
		start = 0
	}
	// Skip the cursor's line when the cursor is already past its content.
	if start < len(f.lines) && f.trimmedLineEnd(start) <= f.cursor && f.cursor > f.lines[start].StartOffset {
		start++
	}
	for idx := start; idx < len(f.lines); idx++ {
		if match(f.lineText(idx)) {
			return idx
		}
	}
	return -1
}

var (
	atxPattern       = regexp.MustCompile(`^ {0,3}#{1,6}([ \t].*)?$|^ {0,3}#{1,6}$`)
	hrPattern        = regexp.MustCompile(`^ {0,3}(\*[ \t]*\*[ \t]*\*[* \t]*|-[ \t]*-[ \t]*-[- \t]*|_[ \t]*_[ \t]*_[_ \t]*)$`)
	fencePattern     = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")
	markerPattern    = regexp.MustCompile(`([-+*]|\d{1,9}[.)])([ \t]*)$`)
	delimRowPattern  = regexp.MustCompile(`^\s*\|?\s*:?-+:?\s*(\|\s*:?-+:?\s*)*\|?\s*$`)
	closedATXPattern = regexp.MustCompile(`[ \t]#+[ \t]*$|^ {0,3}#{1,6}[ \t]*#+[ \t]*$`)
)

func (f *fixer) fixHeading(n *mdast.Node) {
	anchor := n.Span
	f.fixChildren(n)
	anchor = unionSpan(anchor, childrenUnion(n))

	if anchor.IsEmpty() {
		// A bare "#" heading has no text segments; locate it by pattern.
		idx := f.scanLineFrom(func(line []byte) bool { return atxPattern.Match(line) })
		if idx < 0 {
			return
		}
		li := f.lines[idx]
		n.Span = mdast.SourceRange{
			Start: li.StartOffset + indentWidth(f.lineText(idx)),
			End:   f.trimmedLineEnd(idx),
		}
		f.applyHeadingStyle(n)
		return
	}

	firstIdx := f.lineIndexAt(anchor.Start)
	lastIdx := f.lineIndexAt(anchor.End - 1)

	start := f.lines[firstIdx].StartOffset + indentWidth(f.lineText(firstIdx))
	if start > anchor.Start {
		start = anchor.Start
	}
	end := f.trimmedLineEnd(lastIdx)

	// Setext headings include their underline.
	firstLine := f.lineText(firstIdx)
	rest := bytes.TrimLeft(firstLine, " \t")
	if len(rest) == 0 || rest[0] != '#' {
		if lastIdx+1 < len(f.lines) {
			end = f.trimmedLineEnd(lastIdx + 1)
		}
	}

	n.Span = mdast.SourceRange{Start: start, End: end}
	f.applyHeadingStyle(n)
}

// applyHeadingStyle records whether the heading is ATX, closed ATX, or setext.
func (f *fixer) applyHeadingStyle(n *mdast.Node) {
	if n.Block == nil || n.Span.IsEmpty() {
		return
	}
	idx := f.lineIndexAt(n.Span.Start)
	line := bytes.TrimLeft(f.lineText(idx), " \t")
	switch {
	case len(line) == 0 || line[0] != '#':
		n.Block.HeadingStyle = mdast.HeadingSetext
	case closedATXPattern.Match(f.lineText(idx)):
		n.Block.HeadingStyle = mdast.HeadingATXClosed
	default:
		n.Block.HeadingStyle = mdast.HeadingATX
	}
}

func (f *fixer) fixCodeBlock(n *mdast.Node) {
	attrs := n.Block.CodeBlock

	if attrs.Indented {
		if n.Span.IsEmpty() {
			return
		}
		first := f.lineIndexAt(n.Span.Start)
		last := f.lineIndexAt(n.Span.End - 1)
		n.Span = mdast.SourceRange{
			Start: f.lines[first].StartOffset,
			End:   f.trimmedLineEnd(last),
		}
		return
	}

	var openIdx int
	if n.Span.IsEmpty() {
		openIdx = f.scanLineFrom(func(line []byte) bool { return fencePattern.Match(line) })
		if openIdx < 0 {
			return
		}
	} else {
		openIdx = f.lineIndexAt(n.Span.Start)
		if !fencePattern.Match(f.lineText(openIdx)) && openIdx > 0 {
			openIdx--
		}
	}

	openLine := f.lineText(openIdx)
	ind := indentWidth(openLine)
	fence := openLine[ind:]
	if len(fence) == 0 || (fence[0] != '`' && fence[0] != '~') {
		return
	}
	attrs.FenceChar = fence[0]
	length := 0
	for length < len(fence) && fence[length] == attrs.FenceChar {
		length++
	}
	attrs.FenceLength = length

	start := f.lines[openIdx].StartOffset + ind

	// Find the closing fence: same character, at least as long, nothing
	// else on the line.
	lastContent := openIdx
	if !n.Span.IsEmpty() {
		lastContent = f.lineIndexAt(n.Span.End - 1)
	}
	end := f.trimmedLineEnd(lastContent)
	for idx := lastContent + 1; idx < len(f.lines); idx++ {
		line := bytes.TrimRight(f.lineText(idx), " \t")
		trimmed := bytes.TrimLeft(line, " ")
		if len(trimmed) >= attrs.FenceLength && trimmed[0] == attrs.FenceChar &&
			len(bytes.Trim(trimmed, string(attrs.FenceChar))) == 0 {
			end = f.lines[idx].StartOffset + len(line)
			break
		}
	}

	n.Span = mdast.SourceRange{Start: start, End: end}
}

func (f *fixer) fixThematicBreak(n *mdast.Node) {
	idx := f.scanLineFrom(func(line []byte) bool { return hrPattern.Match(line) })
	if idx < 0 {
		return
	}
	li := f.lines[idx]
	n.Span = mdast.SourceRange{
		Start: li.StartOffset + indentWidth(f.lineText(idx)),
		End:   f.trimmedLineEnd(idx),
	}
}

func (f *fixer) fixListItem(n *mdast.Node) {
	markerScanStart := f.cursor
	f.fixChildren(n)
	span := childrenUnion(n)

	if span.IsEmpty() {
		// Empty item ("-" on its own line): locate the marker line.
		f.cursor = markerScanStart
		idx := f.scanLineFrom(func(line []byte) bool {
			trimmed := bytes.TrimRight(line, " \t")
			return markerPattern.MatchString(string(trimmed))
		})
		if idx < 0 {
			return
		}
		line := bytes.TrimRight(f.lineText(idx), " \t")
		loc := markerPattern.FindSubmatchIndex(line)
		if loc == nil {
			return
		}
		f.setItemMarker(n, idx, loc[2], loc[3], f.lines[idx].NewlineStart)
		n.Span = mdast.SourceRange{
			Start: f.lines[idx].StartOffset + loc[2],
			End:   f.trimmedLineEnd(idx),
		}
		return
	}

	idx := f.lineIndexAt(span.Start)
	li := f.lines[idx]
	prefix := f.content[li.StartOffset:span.Start]
	loc := markerPattern.FindSubmatchIndex(prefix)
	if loc == nil {
		n.Span = span
		return
	}

	f.setItemMarker(n, idx, loc[2], loc[3], span.Start)
	n.Span = mdast.SourceRange{Start: li.StartOffset + loc[2], End: span.End}
}

// setItemMarker fills ListItemAttrs from the marker found on line idx.
// markerStart/markerEnd are offsets within the line; contentStart is the
// absolute offset of the item's first content byte.
func (f *fixer) setItemMarker(n *mdast.Node, idx, markerStart, markerEnd, contentStart int) {
	li := f.lines[idx]
	line := f.lineText(idx)
	attrs := n.Block.ListItem
	attrs.Marker = string(line[markerStart:markerEnd])
	attrs.MarkerColumn = markerStart + 1
	padding := contentStart - (li.StartOffset + markerEnd)
	if padding < 0 {
		padding = 0
	}
	attrs.PaddingAfterMarker = padding
}

func (f *fixer) fixBlockquote(n *mdast.Node) {
	f.fixChildren(n)
	span := childrenUnion(n)

	if span.IsEmpty() {
		idx := f.scanLineFrom(func(line []byte) bool {
			return bytes.HasPrefix(bytes.TrimLeft(line, " "), []byte(">"))
		})
		if idx < 0 {
			return
		}
		li := f.lines[idx]
		n.Span = mdast.SourceRange{
			Start: li.StartOffset + indentWidth(f.lineText(idx)),
			End:   f.trimmedLineEnd(idx),
		}
		return
	}

	idx := f.lineIndexAt(span.Start)
	li := f.lines[idx]
	prefix := f.content[li.StartOffset:span.Start]
	if gt := bytes.LastIndexByte(prefix, '>'); gt >= 0 {
		span.Start = li.StartOffset + gt
	}
	n.Span = span
}

// includeDelimiterRow extends a table's span over the |---|---| line
// between the header and the body.
func (f *fixer) includeDelimiterRow(n *mdast.Node) {
	if n.Span.IsEmpty() {
		return
	}
	header := n.FirstChild
	if header == nil || header.Kind != mdast.NodeTableHeader || header.Span.IsEmpty() {
		return
	}
	idx := f.lineIndexAt(header.Span.End-1) + 1
	if idx < len(f.lines) && delimRowPattern.Match(f.lineText(idx)) {
		end := f.trimmedLineEnd(idx)
		if end > n.Span.End {
			n.Span = mdast.SourceRange{Start: n.Span.Start, End: end}
		}
	}
}

func (f *fixer) fixEmphasis(n *mdast.Node) {
	f.fixChildren(n)
	span := childrenUnion(n)
	if span.IsEmpty() {
		return
	}

	level := 1
	if n.Kind == mdast.NodeStrong {
		level = 2
	}

	start, end := span.Start, span.End
	for i := 0; i < level; i++ {
		if start > 0 && (f.content[start-1] == '*' || f.content[start-1] == '_') {
			start--
		}
		if end < len(f.content) && (f.content[end] == '*' || f.content[end] == '_') {
			end++
		}
	}

	n.Span = mdast.SourceRange{Start: start, End: end}
	if n.Inline != nil && start < len(f.content) {
		n.Inline.EmphasisMarker = f.content[start]
	}
}

func (f *fixer) fixCodeSpan(n *mdast.Node) {
	span := n.Span
	if span.IsEmpty() {
		return
	}

	start, end := span.Start, span.End
	// goldmark drops one space from each side of the content when both
	// sides have one; the content is otherwise bounded by backticks. Put
	// the dropped bytes back so the inner text stays verbatim.
	if start > 0 && end < len(f.content) && f.content[start-1] != '`' && f.content[end] != '`' {
		start--
		end++
		if n.Inline != nil {
			text := append([]byte{f.content[start]}, n.Inline.Text...)
			n.Inline.Text = append(text, f.content[end-1])
		}
	}
	for start > 0 && f.content[start-1] == '`' {
		start--
	}
	for end < len(f.content) && f.content[end] == '`' {
		end++
	}
	n.Span = mdast.SourceRange{Start: start, End: end}
}

func (f *fixer) fixLinkOrImage(n *mdast.Node) {
	if n.Inline != nil && n.Inline.Link != nil && n.Inline.Link.ReferenceStyle == mdast.RefStyleAutolink {
		f.fixAutolink(n)
		return
	}

	f.fixChildren(n)
	span := childrenUnion(n)
	if span.IsEmpty() {
		// Empty link text: scan for the opening bracket.
		n.Span = span
		return
	}

	start := span.Start
	if start > 0 && f.content[start-1] == '[' {
		start--
		if n.Kind == mdast.NodeImage && start > 0 && f.content[start-1] == '!' {
			start--
		}
	}

	end := span.End
	if end < len(f.content) && f.content[end] == ']' {
		end++
		if end < len(f.content) {
			switch f.content[end] {
			case '(':
				if close := findBalanced(f.content, end, '(', ')'); close > 0 {
					end = close
				}
			case '[':
				if close := bytes.IndexByte(f.content[end:], ']'); close >= 0 {
					end += close + 1
				}
			}
		}
	}

	n.Span = mdast.SourceRange{Start: start, End: end}
}

func (f *fixer) fixAutolink(n *mdast.Node) {
	label := ""
	if v, ok := n.Ext["autolinkLabel"].(string); ok {
		label = v
	}
	if label == "" {
		return
	}

	needle := []byte("<" + label + ">")
	idx := bytes.Index(f.content[f.cursor:], needle)
	if idx < 0 {
		idx = bytes.Index(f.content, needle)
		if idx < 0 {
			return
		}
		n.Span = mdast.SourceRange{Start: idx, End: idx + len(needle)}
		return
	}
	start := f.cursor + idx
	n.Span = mdast.SourceRange{Start: start, End: start + len(needle)}

	if n.FirstChild != nil {
		n.FirstChild.Span = mdast.SourceRange{Start: start + 1, End: start + len(needle) - 1}
	}
}

// findBalanced returns the offset just past the closer matching the opener
// at content[open], or -1.
func findBalanced(content []byte, open int, opener, closer byte) int {
	depth := 0
	for i := open; i < len(content); i++ {
		switch content[i] {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i + 1
			}
		case '\n':
			// Destinations do not span lines.
			if depth > 0 && opener == '(' {
				return -1
			}
		}
	}
	return -1
}
