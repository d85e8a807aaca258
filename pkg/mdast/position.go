package mdast

// SourceRange represents a byte range in the source content.
type SourceRange struct {
	// Start is the byte index where the range begins (inclusive).
	Start int

	// End is the byte index where the range ends (exclusive).
	End int
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r SourceRange) IsEmpty() bool {
	return r.Start >= r.End
}

// Contains returns true if the given offset is within this range.
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Overlaps returns true if the two ranges share at least one byte.
func (r SourceRange) Overlaps(other SourceRange) bool {
	return r.Start < other.End && other.Start < r.End
}

// Position represents a 1-based line and character column in a file.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// SourcePosition represents a range in terms of line/column positions.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Start returns the start position.
func (sp SourcePosition) Start() Position {
	return Position{Line: sp.StartLine, Column: sp.StartColumn}
}

// End returns the end position.
func (sp SourcePosition) End() Position {
	return Position{Line: sp.EndLine, Column: sp.EndColumn}
}

// IsValid returns true if both start and end positions are valid.
func (sp SourcePosition) IsValid() bool {
	return sp.StartLine > 0 && sp.StartColumn > 0 &&
		sp.EndLine > 0 && sp.EndColumn > 0
}

// IsSingleLine returns true if start and end are on the same line.
func (sp SourcePosition) IsSingleLine() bool {
	return sp.StartLine == sp.EndLine
}

// SourcePosition returns the line/column range for this node.
// Returns an invalid position if the node has no associated file or span.
func (n *Node) SourcePosition() SourcePosition {
	if n.File == nil || n.Span.IsEmpty() {
		return SourcePosition{}
	}

	startLine, startCol := n.File.PositionAt(n.Span.Start)
	endLine, endCol := n.File.PositionAt(n.Span.End)

	return SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}

// StartLine returns the 1-based line the node starts on, or 0.
func (n *Node) StartLine() int {
	if n.File == nil {
		return 0
	}
	line, _ := n.File.PositionAt(n.Span.Start)
	return line
}

// EndLine returns the 1-based line containing the node's last byte, or 0.
func (n *Node) EndLine() int {
	if n.File == nil {
		return 0
	}
	if n.Span.IsEmpty() {
		return n.StartLine()
	}
	line, _ := n.File.PositionAt(n.Span.End - 1)
	return line
}

// Text returns the source text for this node.
// Returns nil if the node has no associated file.
func (n *Node) Text() []byte {
	if n.File == nil {
		return nil
	}

	if n.Span.Start < 0 || n.Span.End > len(n.File.Content) || n.Span.IsEmpty() {
		return nil
	}

	return n.File.Content[n.Span.Start:n.Span.End]
}
