package rules

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
	"github.com/yaklabco/marklint/pkg/mdast"
)

// MD033 no-inline-html

var md033Meta = &lint.Metadata{
	ID:              "MD033",
	Alias:           "no-inline-html",
	Description:     "Inline HTML",
	Tags:            []string{"html"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeHTMLInline, mdast.NodeHTMLBlock},
	DefaultSeverity: config.SeverityError,
}

type noInlineHTML struct {
	lint.BaseLinter
	allowed map[string]bool
}

func newNoInlineHTML(ctx *lint.Context) (lint.Linter, error) {
	r := &noInlineHTML{BaseLinter: lint.NewBaseLinter(md033Meta, ctx)}
	r.allowed = make(map[string]bool)
	for _, element := range r.OptionStringSlice("allowed_elements", nil) {
		r.allowed[strings.ToLower(element)] = true
	}
	return r, nil
}

func (r *noInlineHTML) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeHTMLInline && n.Kind != mdast.NodeHTMLBlock {
		return
	}

	content := bytes.TrimSpace(n.Text())
	if len(content) == 0 {
		return
	}
	// Comments and closing tags are not elements of their own.
	if bytes.HasPrefix(content, []byte("<!--")) || bytes.HasPrefix(content, []byte("</")) {
		return
	}

	tag := lint.ExtractHTMLTagName(content)
	if tag == "" || r.allowed[tag] {
		return
	}

	r.ReportNode(n, fmt.Sprintf("Element: %s", tag))
}

//nolint:gochecknoinits // Metadata.New is set post-declaration to avoid an init cycle.
func init() {
	md033Meta.New = newNoInlineHTML
}
