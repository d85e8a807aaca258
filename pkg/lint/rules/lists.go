package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
	"github.com/yaklabco/marklint/pkg/mdast"
)

// MD004 ul-style

var md004Meta = &lint.Metadata{
	ID:              "MD004",
	Alias:           "ul-style",
	Description:     "Unordered list style",
	Tags:            []string{"bullet", "ul"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeList, mdast.NodeListItem},
	DefaultSeverity: config.SeverityError,
}

func bulletName(marker byte) string {
	switch marker {
	case '*':
		return "asterisk"
	case '-':
		return "dash"
	case '+':
		return "plus"
	default:
		return "unknown"
	}
}

type ulStyle struct {
	lint.BaseLinter
	style string

	// expected is the document-wide marker for the simple styles, or the
	// per-nesting-level marker for "sublist".
	expected      byte
	levelExpected map[int]byte
}

func newULStyle(ctx *lint.Context) (lint.Linter, error) {
	r := &ulStyle{
		BaseLinter:    lint.NewBaseLinter(md004Meta, ctx),
		levelExpected: make(map[int]byte),
	}

	style, err := r.OptionEnum("style", "consistent",
		"consistent", "asterisk", "dash", "plus", "sublist")
	if err != nil {
		return nil, err
	}
	r.style = style

	switch style {
	case "asterisk":
		r.expected = '*'
	case "dash":
		r.expected = '-'
	case "plus":
		r.expected = '+'
	}
	return r, nil
}

func (r *ulStyle) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeListItem {
		return
	}
	list := n.Parent
	if list == nil || lint.IsOrderedList(list) || n.Block == nil || n.Block.ListItem == nil {
		return
	}
	marker := n.Block.ListItem.Marker
	if marker == "" {
		return
	}
	actual := marker[0]

	if r.style == "sublist" {
		level := lint.ListNestingLevel(list)
		expected, ok := r.levelExpected[level]
		if !ok {
			// Each nesting level must also differ from its parent's marker.
			if parent, has := r.levelExpected[level-1]; has && parent == actual {
				r.ReportNode(n, fmt.Sprintf(
					"Expected: not %s for nested list; Actual: %s", bulletName(parent), bulletName(actual)))
			}
			r.levelExpected[level] = actual
			return
		}
		if actual != expected {
			r.ReportNode(n, fmt.Sprintf("Expected: %s; Actual: %s", bulletName(expected), bulletName(actual)))
		}
		return
	}

	if r.expected == 0 {
		r.expected = actual
		return
	}
	if actual != r.expected {
		r.ReportNode(n, fmt.Sprintf("Expected: %s; Actual: %s", bulletName(r.expected), bulletName(actual)))
	}
}

// MD005 list-indent

var md005Meta = &lint.Metadata{
	ID:              "MD005",
	Alias:           "list-indent",
	Description:     "Inconsistent indentation for list items at the same level",
	Tags:            []string{"bullet", "ul", "indentation"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeList},
	DefaultSeverity: config.SeverityError,
}

type listIndent struct {
	lint.BaseLinter
}

func newListIndent(ctx *lint.Context) (lint.Linter, error) {
	return &listIndent{BaseLinter: lint.NewBaseLinter(md005Meta, ctx)}, nil
}

func (r *listIndent) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeList {
		return
	}

	items := lint.ListItems(n)
	if len(items) < 2 {
		return
	}

	first := items[0].Block.ListItem
	if first == nil {
		return
	}

	if lint.IsOrderedList(n) {
		r.checkOrdered(items)
		return
	}

	for _, item := range items[1:] {
		attrs := item.Block.ListItem
		if attrs == nil {
			continue
		}
		if attrs.MarkerColumn != first.MarkerColumn {
			r.ReportNode(item, fmt.Sprintf(
				"Expected: %d; Actual: %d", first.MarkerColumn-1, attrs.MarkerColumn-1))
		}
	}
}

// checkOrdered allows either all-left-aligned markers or all-right-aligned
// markers (numbers aligned on the delimiter).
func (r *listIndent) checkOrdered(items []*mdast.Node) {
	first := items[0].Block.ListItem

	leftAligned := true
	rightAligned := true
	firstEnd := first.MarkerColumn + len(first.Marker)
	for _, item := range items[1:] {
		attrs := item.Block.ListItem
		if attrs == nil {
			continue
		}
		if attrs.MarkerColumn != first.MarkerColumn {
			leftAligned = false
		}
		if attrs.MarkerColumn+len(attrs.Marker) != firstEnd {
			rightAligned = false
		}
	}

	if leftAligned || rightAligned {
		return
	}

	for _, item := range items[1:] {
		attrs := item.Block.ListItem
		if attrs == nil || attrs.MarkerColumn == first.MarkerColumn {
			continue
		}
		r.ReportNode(item, fmt.Sprintf(
			"Expected: %d; Actual: %d", first.MarkerColumn-1, attrs.MarkerColumn-1))
	}
}

// MD007 ul-indent

var md007Meta = &lint.Metadata{
	ID:              "MD007",
	Alias:           "ul-indent",
	Description:     "Unordered list indentation",
	Tags:            []string{"bullet", "ul", "indentation"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeListItem},
	DefaultSeverity: config.SeverityError,
}

type ulIndent struct {
	lint.BaseLinter
	indent        int
	startIndented bool
	startIndent   int
}

func newULIndent(ctx *lint.Context) (lint.Linter, error) {
	r := &ulIndent{BaseLinter: lint.NewBaseLinter(md007Meta, ctx)}
	r.indent = r.OptionInt("indent", 2)
	r.startIndented = r.OptionBool("start_indented", false)
	r.startIndent = r.OptionInt("start_indent", 2)
	return r, nil
}

func (r *ulIndent) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeListItem {
		return
	}
	list := n.Parent
	if list == nil || lint.IsOrderedList(list) || n.Block == nil || n.Block.ListItem == nil {
		return
	}
	// The blockquote marker's indent is its own concern.
	if n.Ancestor(mdast.NodeBlockquote) != nil {
		return
	}

	level := unorderedNestingLevel(list)
	expected := level * r.indent
	if r.startIndented {
		expected = r.startIndent + level*r.indent
	}

	actual := n.Block.ListItem.MarkerColumn - 1
	if actual != expected {
		r.ReportNode(n, fmt.Sprintf("Expected: %d; Actual: %d", expected, actual))
	}
}

// unorderedNestingLevel counts enclosing unordered lists above a list node.
func unorderedNestingLevel(list *mdast.Node) int {
	level := 0
	for p := list.Parent; p != nil; p = p.Parent {
		if p.Kind == mdast.NodeList && !lint.IsOrderedList(p) {
			level++
		}
	}
	return level
}

// MD029 ol-prefix

var md029Meta = &lint.Metadata{
	ID:              "MD029",
	Alias:           "ol-prefix",
	Description:     "Ordered list item prefix",
	Tags:            []string{"ol"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeList},
	DefaultSeverity: config.SeverityError,
}

type olPrefix struct {
	lint.BaseLinter
	style string
}

func newOLPrefix(ctx *lint.Context) (lint.Linter, error) {
	r := &olPrefix{BaseLinter: lint.NewBaseLinter(md029Meta, ctx)}
	style, err := r.OptionEnum("style", "one_or_ordered", "one", "ordered", "one_or_ordered", "zero")
	if err != nil {
		return nil, err
	}
	r.style = style
	return r, nil
}

func (r *olPrefix) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeList || !lint.IsOrderedList(n) {
		return
	}

	items := lint.ListItems(n)
	numbers := make([]int, 0, len(items))
	for _, item := range items {
		if item.Block == nil || item.Block.ListItem == nil {
			return
		}
		marker := item.Block.ListItem.Marker
		digits := strings.TrimRight(marker, ".)")
		value, err := strconv.Atoi(digits)
		if err != nil {
			return
		}
		numbers = append(numbers, value)
	}
	if len(numbers) == 0 {
		return
	}

	style := r.style
	if style == "one_or_ordered" {
		style = "one"
		if len(numbers) > 1 && numbers[1] == numbers[0]+1 {
			style = "ordered"
		}
	}

	for i, actual := range numbers {
		var expected int
		switch style {
		case "one":
			expected = 1
		case "zero":
			expected = 0
		case "ordered":
			expected = numbers[0] + i
		}
		if actual != expected {
			r.ReportNode(items[i], fmt.Sprintf("Expected: %d; Actual: %d; Style: %s", expected, actual, styleSample(style)))
		}
	}
}

// styleSample renders the marker sequence shorthand used in messages.
func styleSample(style string) string {
	switch style {
	case "one":
		return "1/1/1"
	case "zero":
		return "0/0/0"
	default:
		return "1/2/3"
	}
}

// MD030 list-marker-space

var md030Meta = &lint.Metadata{
	ID:              "MD030",
	Alias:           "list-marker-space",
	Description:     "Spaces after list markers",
	Tags:            []string{"ol", "ul", "whitespace"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeListItem},
	DefaultSeverity: config.SeverityError,
}

type listMarkerSpace struct {
	lint.BaseLinter
	ulSingle int
	olSingle int
	ulMulti  int
	olMulti  int
}

func newListMarkerSpace(ctx *lint.Context) (lint.Linter, error) {
	r := &listMarkerSpace{BaseLinter: lint.NewBaseLinter(md030Meta, ctx)}
	r.ulSingle = r.OptionInt("ul_single", 1)
	r.olSingle = r.OptionInt("ol_single", 1)
	r.ulMulti = r.OptionInt("ul_multi", 1)
	r.olMulti = r.OptionInt("ol_multi", 1)
	return r, nil
}

func (r *listMarkerSpace) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeListItem || n.Block == nil || n.Block.ListItem == nil {
		return
	}
	attrs := n.Block.ListItem
	if attrs.Marker == "" || attrs.PaddingAfterMarker == 0 {
		// Empty items have nothing after the marker.
		return
	}

	ordered := lint.IsOrderedList(n.Parent)
	single := n.ChildCount() <= 1

	var expected int
	switch {
	case ordered && single:
		expected = r.olSingle
	case ordered:
		expected = r.olMulti
	case single:
		expected = r.ulSingle
	default:
		expected = r.ulMulti
	}

	if attrs.PaddingAfterMarker != expected {
		r.ReportNode(n, fmt.Sprintf("Expected: %d; Actual: %d", expected, attrs.PaddingAfterMarker))
	}
}

//nolint:gochecknoinits // Metadata.New is set post-declaration to avoid an init cycle.
func init() {
	md004Meta.New = newULStyle
	md005Meta.New = newListIndent
	md007Meta.New = newULIndent
	md029Meta.New = newOLPrefix
	md030Meta.New = newListMarkerSpace
}
