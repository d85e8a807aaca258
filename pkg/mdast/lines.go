package mdast

import (
	"bytes"
	"sort"
	"unicode/utf8"
)

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewlineLen returns the byte length of the line's terminator (0, 1, or 2).
func (li LineInfo) NewlineLen() int {
	return li.EndOffset - li.NewlineStart
}

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			// Check for CRLF.
			newlineStart := idx
			if idx > 0 && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}

			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	// Handle last line (may not have trailing newline).
	if lineStart < len(content) {
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}

	return lines
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// LineIndexAt returns the 0-based index of the line containing offset,
// or -1 if the offset is out of range.
func (f *FileSnapshot) LineIndexAt(offset int) int {
	if offset < 0 || len(f.Lines) == 0 {
		return -1
	}
	if offset >= len(f.Content) {
		return len(f.Lines) - 1
	}
	idx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	if idx >= len(f.Lines) {
		return len(f.Lines) - 1
	}
	return idx
}

// PositionAt converts a byte offset to a 1-based line number and a 1-based
// character column. Columns count Unicode code points, not bytes; a
// multi-byte character occupies one column.
// Returns (0, 0) if the offset is out of range.
func (f *FileSnapshot) PositionAt(offset int) (line, col int) {
	idx := f.LineIndexAt(offset)
	if idx < 0 {
		return 0, 0
	}
	info := f.Lines[idx]
	if offset < info.StartOffset {
		return 0, 0
	}
	end := offset
	if end > len(f.Content) {
		end = len(f.Content)
	}
	return idx + 1, utf8.RuneCount(f.Content[info.StartOffset:end]) + 1
}

// Offset converts a 1-based line number and 1-based byte column to a byte
// offset. Returns (0, false) if out of range.
func (f *FileSnapshot) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(f.Lines) {
		return 0, false
	}

	info := f.Lines[line-1]
	if col < 1 {
		return 0, false
	}

	offset := info.StartOffset + col - 1

	// Allow column to point to end of line (for cursor positioning).
	if offset > info.EndOffset {
		return 0, false
	}

	return offset, true
}

// LineContent returns the content of a 1-based line number, excluding the
// newline. Returns nil if the line number is out of range.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}

	info := f.Lines[line-1]
	return f.Content[info.StartOffset:info.NewlineStart]
}

// IsBlankLine returns true if the 1-based line contains only whitespace.
func (f *FileSnapshot) IsBlankLine(line int) bool {
	return len(bytes.TrimSpace(f.LineContent(line))) == 0
}
