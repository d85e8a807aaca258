package mdast

import (
	"bytes"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FrontMatterKind distinguishes the delimiter syntax of a metadata block.
type FrontMatterKind uint8

const (
	// FrontMatterYAML is a block delimited by "---" lines.
	FrontMatterYAML FrontMatterKind = iota

	// FrontMatterTOML is a block delimited by "+++" lines.
	FrontMatterTOML
)

// FrontMatter describes a leading metadata block.
//
// The block's own lines are part of the document and keep their 1-based
// numbering; rules that address "the first line" of the logical document
// skip past EndLine.
type FrontMatter struct {
	// Kind is the delimiter syntax.
	Kind FrontMatterKind

	// Span is the byte range of the whole block, including both delimiter
	// lines and the closing delimiter's newline.
	Span SourceRange

	// StartLine and EndLine are the 1-based lines of the delimiters.
	StartLine int
	EndLine   int

	// Keys lists the block's top-level keys, when it decodes cleanly.
	Keys []string

	// RawLines holds the lines between the delimiters, verbatim.
	RawLines []string
}

// HasKey returns true if the block has the given top-level key.
func (fm *FrontMatter) HasKey(key string) bool {
	if fm == nil {
		return false
	}
	for _, k := range fm.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// DetectFrontMatter recognises a YAML ("---") or TOML ("+++") metadata
// block at the very start of content. Returns nil if there is none or the
// block is unterminated.
func DetectFrontMatter(content []byte) *FrontMatter {
	var delim []byte
	var kind FrontMatterKind

	switch {
	case hasDelimiterLine(content, []byte("---")):
		delim, kind = []byte("---"), FrontMatterYAML
	case hasDelimiterLine(content, []byte("+++")):
		delim, kind = []byte("+++"), FrontMatterTOML
	default:
		return nil
	}

	// Scan for the closing delimiter line.
	lineStart := len(delim)
	if lineStart < len(content) && content[lineStart] == '\r' {
		lineStart++
	}
	lineStart++ // past the opening newline
	if lineStart > len(content) {
		return nil
	}

	fm := &FrontMatter{Kind: kind, StartLine: 1}
	lineNum := 1
	for lineStart <= len(content) {
		lineNum++
		lineEnd := bytes.IndexByte(content[lineStart:], '\n')
		var text []byte
		var next int
		if lineEnd < 0 {
			text = content[lineStart:]
			next = len(content) + 1
		} else {
			text = content[lineStart : lineStart+lineEnd]
			next = lineStart + lineEnd + 1
		}
		trimmed := bytes.TrimRight(text, "\r")

		if bytes.Equal(trimmed, delim) {
			fm.EndLine = lineNum
			end := next
			if end > len(content) {
				end = len(content)
			}
			fm.Span = SourceRange{Start: 0, End: end}
			fm.Keys = parseFrontMatterKeys(kind, fm.RawLines)
			return fm
		}

		fm.RawLines = append(fm.RawLines, string(trimmed))
		lineStart = next
	}

	// Unterminated block: not front-matter.
	return nil
}

// hasDelimiterLine reports whether content begins with exactly the given
// delimiter followed by a line ending.
func hasDelimiterLine(content, delim []byte) bool {
	if !bytes.HasPrefix(content, delim) {
		return false
	}
	rest := content[len(delim):]
	if len(rest) == 0 {
		return false
	}
	if rest[0] == '\n' {
		return true
	}
	return len(rest) >= 2 && rest[0] == '\r' && rest[1] == '\n'
}

// parseFrontMatterKeys decodes the block body far enough to list its
// top-level keys. A body that fails to decode yields no keys; rules fall
// back to matching RawLines.
func parseFrontMatterKeys(kind FrontMatterKind, rawLines []string) []string {
	if len(rawLines) == 0 {
		return nil
	}

	body := []byte(joinLines(rawLines))
	values := make(map[string]any)

	switch kind {
	case FrontMatterYAML:
		if err := yaml.Unmarshal(body, &values); err != nil {
			return nil
		}
	case FrontMatterTOML:
		if err := toml.Unmarshal(body, &values); err != nil {
			return nil
		}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	return keys
}

func joinLines(lines []string) string {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.String()
}
