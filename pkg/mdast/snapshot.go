// Package mdast provides the core Markdown AST representation for marklint.
// It defines an immutable view of a Markdown document: the raw content, a
// line table, the front-matter block (if any), and the node tree produced
// by a parser.
package mdast

// FileSnapshot is an immutable view of a Markdown document.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	// It is diagnostic only; no I/O is performed against it.
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// FrontMatter is the leading metadata block, or nil.
	FrontMatter *FrontMatter

	// Root is the AST root node (Document).
	Root *Node
}

// NewFileSnapshot creates a FileSnapshot from content. It builds the line
// index and detects front-matter but does not parse (that requires a parser).
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:        path,
		Content:     content,
		Lines:       BuildLines(content),
		FrontMatter: DetectFrontMatter(content),
	}
}

// SetFile sets the File back-reference on every node of the tree.
func SetFile(root *Node, file *FileSnapshot) {
	_ = Walk(root, func(n *Node) error {
		n.File = file
		return nil
	})
}
