// Package refs provides reference link/image tracking for linting.
// It collects reference definitions, link/image usages, and document
// anchors to support the cross-referential rules (MD051-MD054, MD059)
// without walking the tree twice.
package refs

import (
	"strings"

	"github.com/yaklabco/marklint/pkg/mdast"
)

// ReferenceDefinition represents a link/image reference definition
// (e.g., [label]: https://example.com "Optional Title").
type ReferenceDefinition struct {
	// Label is the reference label as written in the source.
	Label string

	// NormalizedLabel is the lowercase, whitespace-collapsed label.
	NormalizedLabel string

	// Destination is the URL/path.
	Destination string

	// LineNumber is the definition's 1-based line.
	LineNumber int

	// Position in source.
	Position mdast.SourcePosition

	// IsDuplicate indicates this is a duplicate definition (not the first).
	IsDuplicate bool

	// UsageCount tracks how many times this definition is referenced.
	UsageCount int
}

// ReferenceUsage represents a link or image in the document.
type ReferenceUsage struct {
	// Style indicates how the reference is written.
	Style mdast.ReferenceStyle

	// IsImage is true for images, false for links.
	IsImage bool

	// Text is the link text or image alt text.
	Text string

	// Label is the reference label for full/collapsed/shortcut styles.
	Label string

	// NormalizedLabel for matching against definitions.
	NormalizedLabel string

	// Destination is the resolved URL.
	Destination string

	// Fragment is the URL fragment (e.g. "#heading-name"), including the
	// leading '#'. Empty when the destination has none.
	Fragment string

	// Position in source.
	Position mdast.SourcePosition

	// Node is the original AST node; nil for synthetic usages.
	Node *mdast.Node

	// Synthetic marks usages recovered from raw text because their label
	// has no definition and the parser left them unlinked.
	Synthetic bool

	// ResolvedDefinition points to the matching definition, if any.
	ResolvedDefinition *ReferenceDefinition
}

// Context holds all reference-related data for one document.
// It is built once and shared across the reference-tracking rules.
type Context struct {
	// Definitions maps normalized labels to their first definitions.
	Definitions map[string]*ReferenceDefinition

	// AllDefinitions includes every definition, duplicates included,
	// in source order.
	AllDefinitions []*ReferenceDefinition

	// Usages is all link/image usages in document order.
	Usages []*ReferenceUsage

	// Anchors is the map of valid fragment targets.
	Anchors *AnchorMap

	// File is the source document snapshot.
	File *mdast.FileSnapshot
}

// NewContext creates an empty Context.
func NewContext(file *mdast.FileSnapshot) *Context {
	return &Context{
		Definitions: make(map[string]*ReferenceDefinition),
		Anchors:     NewAnchorMap(),
		File:        file,
	}
}

// ResolveLabel finds the definition for a label, normalising it first.
func (c *Context) ResolveLabel(label string) *ReferenceDefinition {
	return c.Definitions[NormalizeLabel(label)]
}

// UnusedDefinitions returns first definitions with zero usage count.
func (c *Context) UnusedDefinitions() []*ReferenceDefinition {
	var unused []*ReferenceDefinition
	for _, def := range c.AllDefinitions {
		if !def.IsDuplicate && def.UsageCount == 0 {
			unused = append(unused, def)
		}
	}
	return unused
}

// DuplicateDefinitions returns all duplicate definitions.
func (c *Context) DuplicateDefinitions() []*ReferenceDefinition {
	var dups []*ReferenceDefinition
	for _, def := range c.AllDefinitions {
		if def.IsDuplicate {
			dups = append(dups, def)
		}
	}
	return dups
}

// NormalizeLabel normalizes a reference label for matching.
// Per CommonMark: case-insensitive, whitespace runs collapsed.
func NormalizeLabel(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), " ")
}

// IsGitHubLineReference checks for GitHub's line/column fragment syntax:
// L20, L19C5, or L19C5-L21C11.
func IsGitHubLineReference(id string) bool {
	if len(id) < 2 || (id[0] != 'L' && id[0] != 'l') {
		return false
	}

	sawDigit := false
	for i := 1; i < len(id); i++ {
		ch := id[i]
		switch {
		case ch >= '0' && ch <= '9':
			sawDigit = true
		case ch == 'C' || ch == 'c' || ch == '-' || ch == 'L' || ch == 'l':
			// Separators of the range form.
		default:
			return false
		}
	}
	return sawDigit
}

// ExtractFragment extracts the fragment from a URL, including the '#'.
// Returns empty string if there is none.
func ExtractFragment(url string) string {
	idx := strings.Index(url, "#")
	if idx == -1 {
		return ""
	}
	return url[idx:]
}
