// Package goldmark produces mdast trees using the goldmark library.
package goldmark

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/marklint/pkg/mdast"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// ErrNotUTF8 is returned when the input is not valid UTF-8.
var ErrNotUTF8 = fmt.Errorf("content is not valid UTF-8")

// Parser implements lint.Parser using goldmark.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "gfm".
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse converts raw Markdown bytes into a fully-populated FileSnapshot.
//
// The method:
//  1. Validates UTF-8 and checks for context cancellation.
//  2. Builds a FileSnapshot shell with path, content, lines, front-matter.
//  3. Parses the content after the front-matter block with goldmark.
//  4. Maps the goldmark AST into an mdast tree with absolute byte spans.
//  5. Repairs block/inline spans that goldmark does not anchor.
//  6. Inserts link reference definition nodes recognised from the source.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	if !utf8.Valid(content) {
		return nil, ErrNotUTF8
	}

	snapshot := mdast.NewFileSnapshot(path, copyContent(content))

	// The front-matter block is carved out before parsing; all spans are
	// shifted back so they index the full content.
	base := 0
	if fm := snapshot.FrontMatter; fm != nil {
		base = fm.Span.End
	}
	body := snapshot.Content[base:]

	reader := text.NewReader(body)
	gmDoc := p.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	m := newMapper(snapshot.Content, base)
	snapshot.Root = m.mapDocument(gmDoc)

	if fm := snapshot.FrontMatter; fm != nil {
		fmNode := mdast.NewNode(mdast.NodeFrontMatter)
		fmNode.Span = fm.Span
		mdast.PrependChild(snapshot.Root, fmNode)
	}

	fixSpans(snapshot.Root, snapshot.Content)
	insertRefDefs(snapshot)
	mdast.SetFile(snapshot.Root, snapshot)

	return snapshot, nil
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to GFM.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorGFM
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.Table, extension.TaskList))
	}

	return goldmark.New(opts...)
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
