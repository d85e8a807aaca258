package mdast

// HeadingStyle identifies how a heading is written in the source.
type HeadingStyle uint8

const (
	// HeadingATX is an open ATX heading (# Heading).
	HeadingATX HeadingStyle = iota

	// HeadingATXClosed is an ATX heading with trailing hashes (# Heading #).
	HeadingATXClosed

	// HeadingSetext is a setext heading (underlined with = or -).
	HeadingSetext
)

// String returns the style name as used in configuration values.
func (s HeadingStyle) String() string {
	switch s {
	case HeadingATXClosed:
		return "atx_closed"
	case HeadingSetext:
		return "setext"
	default:
		return "atx"
	}
}

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// HeadingLevel is the heading level (1-6) for NodeHeading.
	HeadingLevel int

	// HeadingStyle records how a NodeHeading is written.
	HeadingStyle HeadingStyle

	// List holds list-specific attributes for NodeList.
	List *ListAttrs

	// ListItem holds item-specific attributes for NodeListItem.
	ListItem *ListItemAttrs

	// CodeBlock holds code block attributes for NodeCodeBlock.
	CodeBlock *CodeBlockAttrs
}

// ListAttrs holds attributes for list nodes.
type ListAttrs struct {
	// Ordered is true for ordered lists (1., 2., etc.).
	Ordered bool

	// BulletMarker is the bullet character used ('-', '+', '*').
	// Zero for ordered lists.
	BulletMarker byte

	// StartNumber is the starting number for ordered lists.
	StartNumber int

	// Delimiter is the delimiter for ordered lists ('.' or ')').
	Delimiter byte

	// Tight is true if this is a tight list (no blank lines between items).
	Tight bool
}

// ListItemAttrs holds attributes for list item nodes.
type ListItemAttrs struct {
	// Marker is the raw marker text ("-", "*", "+", "3.", "12)").
	Marker string

	// MarkerColumn is the 1-based column of the marker's first character.
	MarkerColumn int

	// PaddingAfterMarker is the number of spaces between the marker and
	// the item's content on the marker line.
	PaddingAfterMarker int
}

// CodeBlockAttrs holds attributes for code block nodes.
type CodeBlockAttrs struct {
	// FenceChar is the fence character ('`' or '~'). Zero when Indented.
	FenceChar byte

	// FenceLength is the number of fence characters in the opening fence.
	FenceLength int

	// Info is the full info string of the opening fence.
	Info string

	// Language is the first word of the info string.
	Language string

	// Indented is true for indented code blocks (vs fenced).
	Indented bool
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Text holds the text content for NodeText and NodeCodeSpan.
	Text []byte

	// Link holds link attributes for NodeLink and NodeImage.
	Link *LinkAttrs

	// EmphasisLevel indicates emphasis strength (1 for emphasis, 2 for strong).
	EmphasisLevel int

	// EmphasisMarker is the delimiter character ('*' or '_') for emphasis
	// and strong nodes.
	EmphasisMarker byte
}

// ReferenceStyle indicates the syntax style of a link or image reference.
type ReferenceStyle uint8

const (
	// RefStyleInline represents inline links: [text](url) or ![alt](url).
	RefStyleInline ReferenceStyle = iota

	// RefStyleFull represents full reference links: [text][label].
	RefStyleFull

	// RefStyleCollapsed represents collapsed reference links: [label][].
	RefStyleCollapsed

	// RefStyleShortcut represents shortcut reference links: [label].
	RefStyleShortcut

	// RefStyleAutolink represents autolinks: <https://example.com>.
	RefStyleAutolink
)

// String returns a human-readable name for the reference style.
func (s ReferenceStyle) String() string {
	switch s {
	case RefStyleInline:
		return "inline"
	case RefStyleFull:
		return "full"
	case RefStyleCollapsed:
		return "collapsed"
	case RefStyleShortcut:
		return "shortcut"
	case RefStyleAutolink:
		return "autolink"
	default:
		return "unknown"
	}
}

// LinkAttrs holds attributes for link and image nodes.
type LinkAttrs struct {
	// Destination is the link URL.
	Destination string

	// Title is the optional link title.
	Title string

	// HasTitle distinguishes an empty title from a missing one.
	HasTitle bool

	// ReferenceLabel is the label for reference-style links.
	// Empty for inline links and autolinks.
	ReferenceLabel string

	// ReferenceStyle indicates the syntax style used.
	ReferenceStyle ReferenceStyle
}
