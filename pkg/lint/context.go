package lint

import (
	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint/refs"
	"github.com/yaklabco/marklint/pkg/mdast"
)

// LineFlags is a bitmask of block contexts a physical line belongs to.
type LineFlags uint8

const (
	// LineInCode marks lines inside fenced or indented code blocks.
	LineInCode LineFlags = 1 << iota

	// LineInHTML marks lines inside HTML blocks.
	LineInHTML

	// LineInFrontMatter marks lines of a leading metadata block.
	LineInFrontMatter

	// LineInTable marks lines inside GFM tables.
	LineInTable

	// LineInHeading marks heading lines (including setext underlines).
	LineInHeading

	// LineInList marks lines inside list items.
	LineInList

	// LineInBlockquote marks lines inside blockquotes.
	LineInBlockquote
)

// Has returns true if all given flags are set.
func (f LineFlags) Has(mask LineFlags) bool {
	return f&mask == mask
}

// Context is the per-document analysis context shared by all rule
// instances of one lint run.
//
// A Context is single-use: it is built at the start of a document's run,
// read-only for rules once traversal starts, and discarded afterwards.
// Its caches are populated at most once per node kind; populating is
// idempotent.
type Context struct {
	// File is the parsed document snapshot.
	File *mdast.FileSnapshot

	// Config is the configuration view for this run.
	Config *config.Config

	kinds     map[mdast.NodeKind][]*mdast.Node
	lineFlags []LineFlags
	masks     map[int][]InlineMask
	refCtx    *refs.Context
}

// InlineMaskKind classifies an inline masked range.
type InlineMaskKind uint8

const (
	// MaskCodeSpan covers inline code spans.
	MaskCodeSpan InlineMaskKind = iota

	// MaskHTML covers raw inline HTML.
	MaskHTML

	// MaskLink covers links and images, including their destinations.
	MaskLink
)

// InlineMask is a masked character-column range on a single line.
type InlineMask struct {
	Kind InlineMaskKind

	// StartColumn and EndColumn are 1-based character columns,
	// inclusive-exclusive.
	StartColumn int
	EndColumn   int
}

// NewContext builds the analysis context for a parsed document.
func NewContext(file *mdast.FileSnapshot, cfg *config.Config) *Context {
	ctx := &Context{
		File:   file,
		Config: cfg,
		kinds:  make(map[mdast.NodeKind][]*mdast.Node),
	}
	ctx.buildLineFlags()
	return ctx
}

// Path returns the document's file path.
func (c *Context) Path() string {
	return c.File.Path
}

// Root returns the document root node.
func (c *Context) Root() *mdast.Node {
	return c.File.Root
}

// FrontMatter returns the document's front-matter block, or nil.
func (c *Context) FrontMatter() *mdast.FrontMatter {
	return c.File.FrontMatter
}

// NodesOfKind returns the document-order list of nodes of a kind.
// The cache is populated on first request and reused; callers must not
// mutate the returned slice.
func (c *Context) NodesOfKind(kind mdast.NodeKind) []*mdast.Node {
	if nodes, ok := c.kinds[kind]; ok {
		return nodes
	}
	nodes := mdast.FindByKind(c.File.Root, kind)
	c.kinds[kind] = nodes
	return nodes
}

// LineFlagsAt returns the block-context flags for a 1-based line.
func (c *Context) LineFlagsAt(line int) LineFlags {
	if line < 1 || line > len(c.lineFlags) {
		return 0
	}
	return c.lineFlags[line-1]
}

// buildLineFlags walks the tree once and classifies every physical line.
func (c *Context) buildLineFlags() {
	c.lineFlags = make([]LineFlags, c.File.LineCount())

	mark := func(n *mdast.Node, flag LineFlags) {
		if n.Span.IsEmpty() {
			return
		}
		start := n.StartLine()
		end := n.EndLine()
		for line := start; line >= 1 && line <= end && line <= len(c.lineFlags); line++ {
			c.lineFlags[line-1] |= flag
		}
	}

	//nolint:errcheck // visitor never returns error
	mdast.Walk(c.File.Root, func(n *mdast.Node) error {
		switch n.Kind {
		case mdast.NodeCodeBlock:
			mark(n, LineInCode)
		case mdast.NodeHTMLBlock:
			mark(n, LineInHTML)
		case mdast.NodeFrontMatter:
			mark(n, LineInFrontMatter)
		case mdast.NodeTable:
			mark(n, LineInTable)
		case mdast.NodeHeading:
			mark(n, LineInHeading)
		case mdast.NodeListItem:
			mark(n, LineInList)
		case mdast.NodeBlockquote:
			mark(n, LineInBlockquote)
		}
		return nil
	})
}

// MasksOnLine returns the inline masked ranges (code spans, raw HTML,
// links) on a 1-based line, built lazily from the tree. Text-matching
// rules use these to avoid false positives inside spans.
func (c *Context) MasksOnLine(line int) []InlineMask {
	if c.masks == nil {
		c.buildInlineMasks()
	}
	return c.masks[line]
}

// IsMaskedAt returns true if the 1-based column on a line falls inside a
// masked range of one of the given kinds.
func (c *Context) IsMaskedAt(line, col int, kinds ...InlineMaskKind) bool {
	for _, m := range c.MasksOnLine(line) {
		if col < m.StartColumn || col >= m.EndColumn {
			continue
		}
		for _, k := range kinds {
			if m.Kind == k {
				return true
			}
		}
	}
	return false
}

func (c *Context) buildInlineMasks() {
	c.masks = make(map[int][]InlineMask)

	add := func(n *mdast.Node, kind InlineMaskKind) {
		if n.Span.IsEmpty() {
			return
		}
		startLine, startCol := c.File.PositionAt(n.Span.Start)
		endLine, endCol := c.File.PositionAt(n.Span.End)
		if startLine == 0 {
			return
		}
		for line := startLine; line <= endLine; line++ {
			mask := InlineMask{Kind: kind, StartColumn: 1, EndColumn: 1 << 20}
			if line == startLine {
				mask.StartColumn = startCol
			}
			if line == endLine {
				mask.EndColumn = endCol
			}
			c.masks[line] = append(c.masks[line], mask)
		}
	}

	//nolint:errcheck // visitor never returns error
	mdast.Walk(c.File.Root, func(n *mdast.Node) error {
		switch n.Kind {
		case mdast.NodeCodeSpan:
			add(n, MaskCodeSpan)
		case mdast.NodeHTMLInline:
			add(n, MaskHTML)
		case mdast.NodeLink, mdast.NodeImage:
			add(n, MaskLink)
		}
		return nil
	})
}

// Refs returns the document's reference context (link/image usages,
// reference definitions, anchors), built lazily on first request.
func (c *Context) Refs() *refs.Context {
	if c.refCtx == nil {
		c.refCtx = refs.Collect(c.File.Root, c.File)
	}
	return c.refCtx
}

// SeverityFor resolves a rule's severity from the configuration view.
func (c *Context) SeverityFor(meta *Metadata) config.Severity {
	return c.Config.RuleSeverity(meta.Alias, meta.DefaultSeverity)
}

// option returns the raw configured value for a rule option, or nil.
func (c *Context) option(alias, key string) any {
	settings := c.Config.RuleSettings(alias)
	if settings == nil {
		return nil
	}
	return settings[key]
}
