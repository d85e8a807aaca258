package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
	"github.com/yaklabco/marklint/pkg/mdast"
)

// MD035 hr-style

var md035Meta = &lint.Metadata{
	ID:              "MD035",
	Alias:           "hr-style",
	Description:     "Horizontal rule style",
	Tags:            []string{"hr"},
	Type:            lint.TypeToken,
	Kinds:           []mdast.NodeKind{mdast.NodeThematicBreak},
	DefaultSeverity: config.SeverityError,
}

type hrStyle struct {
	lint.BaseLinter
	expected string // literal rule text, or empty until observed
}

func newHRStyle(ctx *lint.Context) (lint.Linter, error) {
	r := &hrStyle{BaseLinter: lint.NewBaseLinter(md035Meta, ctx)}
	if style := r.OptionString("style", "consistent"); style != "consistent" {
		r.expected = style
	}
	return r, nil
}

func (r *hrStyle) OnNode(n *mdast.Node) {
	if n.Kind != mdast.NodeThematicBreak {
		return
	}

	actual := strings.TrimSpace(string(n.Text()))
	if actual == "" {
		return
	}

	if r.expected == "" {
		r.expected = actual
		return
	}

	if actual != r.expected {
		r.ReportNode(n, fmt.Sprintf("Expected: %s; Actual: %s", r.expected, actual))
	}
}

//nolint:gochecknoinits // Metadata.New is set post-declaration to avoid an init cycle.
func init() {
	md035Meta.New = newHRStyle
}
