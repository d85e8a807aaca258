package refs

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/yaklabco/marklint/pkg/mdast"
)

// AnchorSource indicates the origin of an anchor.
type AnchorSource int

const (
	// AnchorFromHeading is generated from a Markdown heading.
	AnchorFromHeading AnchorSource = iota

	// AnchorFromHTMLID is from an HTML element's id attribute.
	AnchorFromHTMLID

	// AnchorFromHTMLName is from an HTML anchor's name attribute.
	AnchorFromHTMLName
)

// Anchor represents a valid link target within the document.
type Anchor struct {
	// ID is the anchor identifier (e.g., "heading-name").
	ID string

	// Source indicates how the anchor was generated.
	Source AnchorSource

	// Position of the anchor source (heading, HTML element).
	Position mdast.SourcePosition

	// Text is the original text (for headings).
	Text string
}

// AnchorMap provides anchor lookup with duplicate-suffix generation.
type AnchorMap struct {
	// anchors maps anchor IDs to their definitions.
	anchors map[string][]*Anchor

	// anchorLower maps lowercase IDs for case-insensitive lookup.
	anchorLower map[string]string

	// seenCounts tracks how many times each base slug has been generated,
	// for the -1, -2 duplicate suffixes.
	seenCounts map[string]int
}

// NewAnchorMap creates an empty AnchorMap.
func NewAnchorMap() *AnchorMap {
	return &AnchorMap{
		anchors:     make(map[string][]*Anchor),
		anchorLower: make(map[string]string),
		seenCounts:  make(map[string]int),
	}
}

// Add adds an anchor to the map.
func (m *AnchorMap) Add(anchor *Anchor) {
	m.anchors[anchor.ID] = append(m.anchors[anchor.ID], anchor)
	m.anchorLower[strings.ToLower(anchor.ID)] = anchor.ID
}

// AddFromHeading generates a slug from heading text and adds it.
// Returns the generated anchor ID.
func (m *AnchorMap) AddFromHeading(text string, pos mdast.SourcePosition) string {
	id := m.GenerateSlug(text)
	m.Add(&Anchor{
		ID:       id,
		Source:   AnchorFromHeading,
		Position: pos,
		Text:     text,
	})
	return id
}

// GenerateSlug converts heading text to its GitHub-style anchor, applying
// the -1, -2 duplicate suffixes in generation order.
func (m *AnchorMap) GenerateSlug(text string) string {
	base := SlugBase(text)

	count := m.seenCounts[base]
	m.seenCounts[base] = count + 1

	if count == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(count)
}

// SlugBase converts heading text to a GitHub-style anchor base:
// lowercase, runs of non-alphanumeric characters replaced with a single
// hyphen, leading and trailing hyphens stripped.
func SlugBase(text string) string {
	var buf strings.Builder
	buf.Grow(len(text))

	prevHyphen := false
	for _, ch := range strings.ToLower(text) {
		if unicode.IsLetter(ch) || unicode.IsNumber(ch) {
			buf.WriteRune(ch)
			prevHyphen = false
			continue
		}
		if !prevHyphen {
			buf.WriteByte('-')
			prevHyphen = true
		}
	}

	return strings.Trim(buf.String(), "-")
}

// Has returns true if the anchor ID exists.
func (m *AnchorMap) Has(id string) bool {
	_, ok := m.anchors[id]
	return ok
}

// HasIgnoreCase returns true if the anchor ID exists, ignoring case.
func (m *AnchorMap) HasIgnoreCase(id string) bool {
	_, ok := m.anchorLower[strings.ToLower(id)]
	return ok
}

// Lookup returns the first anchor with the given ID, or nil.
func (m *AnchorMap) Lookup(id string) *Anchor {
	anchors := m.anchors[id]
	if len(anchors) == 0 {
		return nil
	}
	return anchors[0]
}

// All returns all anchors in the map.
func (m *AnchorMap) All() []*Anchor {
	total := 0
	for _, anchors := range m.anchors {
		total += len(anchors)
	}
	all := make([]*Anchor, 0, total)
	for _, anchors := range m.anchors {
		all = append(all, anchors...)
	}
	return all
}

// Count returns the number of unique anchor IDs.
func (m *AnchorMap) Count() int {
	return len(m.anchors)
}

// ValidFragment checks whether a fragment (with or without its leading
// '#') resolves against the document's anchors or one of the always-valid
// targets.
func (c *Context) ValidFragment(fragment string, ignoreCase bool) bool {
	id := strings.TrimPrefix(fragment, "#")
	if id == "" {
		return true
	}

	// "#top" is always valid per the HTML standard.
	if strings.EqualFold(id, "top") {
		return true
	}

	if IsGitHubLineReference(id) {
		return true
	}

	if ignoreCase {
		return c.Anchors.HasIgnoreCase(id)
	}
	return c.Anchors.Has(id)
}
