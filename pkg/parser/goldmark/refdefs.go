package goldmark

import (
	"regexp"

	"github.com/yaklabco/marklint/pkg/mdast"
)

// refDefPattern matches a link reference definition line:
// [label]: destination "optional title".
var refDefPattern = regexp.MustCompile(
	`^ {0,3}\[([^\]]+)\]:\s*(\S+)(?:\s+"([^"]*)"|\s+'([^']*)'|\s+\(([^)]*)\))?\s*$`,
)

// insertRefDefs adds NodeLinkRefDef nodes for reference definition lines.
// goldmark consumes definitions during parsing without emitting nodes, so
// they are recovered from the source and spliced into the document's
// children in position order.
func insertRefDefs(snapshot *mdast.FileSnapshot) {
	if snapshot.Root == nil {
		return
	}

	skip := make(map[int]bool)
	_ = mdast.Walk(snapshot.Root, func(n *mdast.Node) error {
		switch n.Kind {
		case mdast.NodeCodeBlock, mdast.NodeHTMLBlock, mdast.NodeFrontMatter:
			if n.Span.IsEmpty() {
				return nil
			}
			first := lineIndex(snapshot, n.Span.Start)
			last := lineIndex(snapshot, n.Span.End-1)
			for idx := first; idx <= last && idx >= 0; idx++ {
				skip[idx] = true
			}
		}
		return nil
	})

	for idx, li := range snapshot.Lines {
		if skip[idx] {
			continue
		}
		line := snapshot.Content[li.StartOffset:li.NewlineStart]
		m := refDefPattern.FindSubmatchIndex(line)
		if m == nil {
			continue
		}

		node := mdast.NewNode(mdast.NodeLinkRefDef)
		node.Span = mdast.SourceRange{
			Start: li.StartOffset + indentWidth(line),
			End:   li.StartOffset + trimmedLen(line),
		}
		node.Ext = map[string]any{
			"label":       string(line[m[2]:m[3]]),
			"destination": string(line[m[4]:m[5]]),
		}
		spliceChild(snapshot.Root, node)
	}
}

func lineIndex(snapshot *mdast.FileSnapshot, offset int) int {
	lo, hi := 0, len(snapshot.Lines)
	for lo < hi {
		mid := (lo + hi) / 2
		if snapshot.Lines[mid].EndOffset > offset {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	if lo >= len(snapshot.Lines) {
		return len(snapshot.Lines) - 1
	}
	return lo
}

func trimmedLen(line []byte) int {
	end := len(line)
	for end > 0 && (line[end-1] == ' ' || line[end-1] == '\t') {
		end--
	}
	return end
}

// spliceChild inserts node among the document's children, ordered by span.
func spliceChild(doc *mdast.Node, node *mdast.Node) {
	for c := doc.FirstChild; c != nil; c = c.Next {
		if !c.Span.IsEmpty() && c.Span.Start > node.Span.Start {
			before := c
			node.Parent = doc
			node.Prev = before.Prev
			node.Next = before
			if before.Prev != nil {
				before.Prev.Next = node
			} else {
				doc.FirstChild = node
			}
			before.Prev = node
			return
		}
	}
	mdast.AppendChild(doc, node)
}
