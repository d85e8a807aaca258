package rules

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
	"github.com/yaklabco/marklint/pkg/lint/refs"
	"github.com/yaklabco/marklint/pkg/mdast"
)

// MD051 link-fragments

var md051Meta = &lint.Metadata{
	ID:              "MD051",
	Alias:           "link-fragments",
	Description:     "Link fragments should be valid",
	Tags:            []string{"links"},
	Type:            lint.TypeDocument,
	Kinds:           []mdast.NodeKind{mdast.NodeLink, mdast.NodeHeading},
	DefaultSeverity: config.SeverityError,
}

type linkFragments struct {
	lint.BaseLinter
	ignoreCase     bool
	ignoredPattern *regexp.Regexp
}

func newLinkFragments(ctx *lint.Context) (lint.Linter, error) {
	r := &linkFragments{BaseLinter: lint.NewBaseLinter(md051Meta, ctx)}
	r.ignoreCase = r.OptionBool("ignore_case", false)

	if pattern := r.OptionString("ignored_pattern", ""); pattern != "" {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid ignored_pattern: %w", err)
		}
		r.ignoredPattern = compiled
	}
	return r, nil
}

func (r *linkFragments) Finalize() []lint.Violation {
	refCtx := r.Ctx.Refs()

	for _, usage := range refCtx.Usages {
		// Only same-document fragments are checkable.
		if usage.IsImage || !strings.HasPrefix(usage.Destination, "#") {
			continue
		}
		fragment := usage.Destination

		if r.ignoredPattern != nil && r.ignoredPattern.MatchString(strings.TrimPrefix(fragment, "#")) {
			continue
		}
		if refCtx.ValidFragment(fragment, r.ignoreCase) {
			continue
		}

		r.Report(r.fragmentPosition(usage, fragment), "Link fragments should be valid")
	}

	return r.BaseLinter.Finalize()
}

// fragmentPosition locates the fragment text within the link's source so
// the violation points at the "#..." rather than the whole link.
func (r *linkFragments) fragmentPosition(usage *refs.ReferenceUsage, fragment string) mdast.SourcePosition {
	node := usage.Node
	pos := usage.Position
	if node == nil || node.Span.IsEmpty() {
		return pos
	}

	src := node.Text()
	idx := bytes.LastIndex(src, []byte(fragment))
	if idx < 0 {
		return pos
	}

	file := r.Ctx.File
	startLine, startCol := file.PositionAt(node.Span.Start + idx)
	endLine, endCol := file.PositionAt(node.Span.Start + idx + len(fragment))
	return mdast.SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}

// MD052 reference-links-images

var md052Meta = &lint.Metadata{
	ID:              "MD052",
	Alias:           "reference-links-images",
	Description:     "Reference links and images should use a label that is defined",
	Tags:            []string{"links", "images"},
	Type:            lint.TypeDocument,
	Kinds:           []mdast.NodeKind{mdast.NodeLink, mdast.NodeImage, mdast.NodeLinkRefDef},
	DefaultSeverity: config.SeverityError,
}

type referenceLinksImages struct {
	lint.BaseLinter
	shortcutSyntax bool
	ignoredLabels  map[string]bool
}

func newReferenceLinksImages(ctx *lint.Context) (lint.Linter, error) {
	r := &referenceLinksImages{BaseLinter: lint.NewBaseLinter(md052Meta, ctx)}
	r.shortcutSyntax = r.OptionBool("shortcut_syntax", false)
	r.ignoredLabels = make(map[string]bool)
	for _, label := range r.OptionStringSlice("ignored_labels", []string{"x"}) {
		r.ignoredLabels[refs.NormalizeLabel(label)] = true
	}
	return r, nil
}

func (r *referenceLinksImages) Finalize() []lint.Violation {
	refCtx := r.Ctx.Refs()

	for _, usage := range refCtx.Usages {
		switch usage.Style {
		case mdast.RefStyleFull, mdast.RefStyleCollapsed:
			// Always checked.
		case mdast.RefStyleShortcut:
			if !r.shortcutSyntax {
				continue
			}
		default:
			continue
		}

		if usage.NormalizedLabel == "" || r.ignoredLabels[usage.NormalizedLabel] {
			continue
		}
		if usage.ResolvedDefinition != nil {
			continue
		}

		r.Report(usage.Position, fmt.Sprintf("Missing link or image reference definition: \"%s\"", usage.Label))
	}

	return r.BaseLinter.Finalize()
}

// MD053 link-image-reference-definitions

var md053Meta = &lint.Metadata{
	ID:              "MD053",
	Alias:           "link-image-reference-definitions",
	Description:     "Link and image reference definitions should be needed",
	Tags:            []string{"links", "images"},
	Type:            lint.TypeDocument,
	Kinds:           []mdast.NodeKind{mdast.NodeLink, mdast.NodeImage, mdast.NodeLinkRefDef},
	DefaultSeverity: config.SeverityError,
}

type linkImageReferenceDefinitions struct {
	lint.BaseLinter
	ignoredDefinitions map[string]bool
}

func newLinkImageReferenceDefinitions(ctx *lint.Context) (lint.Linter, error) {
	r := &linkImageReferenceDefinitions{BaseLinter: lint.NewBaseLinter(md053Meta, ctx)}
	r.ignoredDefinitions = make(map[string]bool)
	for _, label := range r.OptionStringSlice("ignored_definitions", []string{"//"}) {
		r.ignoredDefinitions[refs.NormalizeLabel(label)] = true
	}
	return r, nil
}

func (r *linkImageReferenceDefinitions) Finalize() []lint.Violation {
	refCtx := r.Ctx.Refs()

	for _, def := range refCtx.AllDefinitions {
		if r.ignoredDefinitions[def.NormalizedLabel] {
			continue
		}
		switch {
		case def.IsDuplicate:
			r.Report(def.Position, fmt.Sprintf("Duplicate link or image reference definition: \"%s\"", def.Label))
		case def.UsageCount == 0:
			r.Report(def.Position, fmt.Sprintf("Unused link or image reference definition: \"%s\"", def.Label))
		}
	}

	return r.BaseLinter.Finalize()
}

// MD054 link-image-style

var md054Meta = &lint.Metadata{
	ID:              "MD054",
	Alias:           "link-image-style",
	Description:     "Link and image style",
	Tags:            []string{"links", "images"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeLink, mdast.NodeImage},
	DefaultSeverity: config.SeverityError,
}

type linkImageStyle struct {
	lint.BaseLinter
	autolink  bool
	inline    bool
	full      bool
	collapsed bool
	shortcut  bool
	urlInline bool
}

func newLinkImageStyle(ctx *lint.Context) (lint.Linter, error) {
	r := &linkImageStyle{BaseLinter: lint.NewBaseLinter(md054Meta, ctx)}
	r.autolink = r.OptionBool("autolink", true)
	r.inline = r.OptionBool("inline", true)
	r.full = r.OptionBool("full", true)
	r.collapsed = r.OptionBool("collapsed", true)
	r.shortcut = r.OptionBool("shortcut", true)
	r.urlInline = r.OptionBool("url_inline", true)
	return r, nil
}

func (r *linkImageStyle) Finalize() []lint.Violation {
	for _, usage := range r.Ctx.Refs().Usages {
		// Unresolved references are not links; MD052 owns those.
		if usage.Synthetic {
			continue
		}
		kind := "link"
		if usage.IsImage {
			kind = "image"
		}

		var allowed bool
		style := usage.Style.String()
		switch usage.Style {
		case mdast.RefStyleAutolink:
			allowed = r.autolink
		case mdast.RefStyleInline:
			allowed = r.inline
			// url_inline governs inline links whose text is the URL itself.
			if allowed && !r.urlInline && !usage.IsImage &&
				strings.TrimSpace(usage.Text) == usage.Destination {
				allowed = false
				style = "url_inline"
			}
		case mdast.RefStyleFull:
			allowed = r.full
		case mdast.RefStyleCollapsed:
			allowed = r.collapsed
		case mdast.RefStyleShortcut:
			allowed = r.shortcut
		default:
			allowed = true
		}

		if !allowed {
			r.Report(usage.Position, fmt.Sprintf("Style not allowed for %s: %s", kind, style))
		}
	}

	return r.BaseLinter.Finalize()
}

//nolint:gochecknoinits // Metadata.New is set post-declaration to avoid an init cycle.
func init() {
	md051Meta.New = newLinkFragments
	md052Meta.New = newReferenceLinksImages
	md053Meta.New = newLinkImageReferenceDefinitions
	md054Meta.New = newLinkImageStyle
}
