package lint

import (
	"fmt"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/mdast"
)

// RuleType classifies how a rule consumes the document.
type RuleType uint8

const (
	// TypeToken rules react to specific syntax-tree node kinds.
	TypeToken RuleType = iota

	// TypeLine rules scan raw text lines, optionally consulting the tree
	// to mask out code and HTML blocks.
	TypeLine

	// TypeDocument rules accumulate state during traversal and emit on
	// finalise.
	TypeDocument

	// TypeHybrid rules react to nodes and to their surrounding blank lines.
	TypeHybrid

	// TypeSpecial rules fit none of the other models (e.g. proper-names
	// dictionary matching).
	TypeSpecial
)

// String returns the rule type's name.
func (t RuleType) String() string {
	switch t {
	case TypeToken:
		return "token"
	case TypeLine:
		return "line"
	case TypeDocument:
		return "document"
	case TypeHybrid:
		return "hybrid"
	case TypeSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// Metadata is the static description of a rule. One instance exists per
// rule for the lifetime of the process; it never changes at runtime.
type Metadata struct {
	// ID is the stable identifier (e.g. "MD013").
	ID string

	// Alias is the kebab-case name (e.g. "line-length").
	Alias string

	// Description is a one-line summary of what the rule checks.
	Description string

	// Tags categorise the rule (e.g. "headings", "code", "links").
	Tags []string

	// Type is the rule's execution model.
	Type RuleType

	// Kinds lists the node kinds the rule reacts to; empty for pure line
	// rules. It is descriptive: the context's node caches fill lazily on
	// first request.
	Kinds []mdast.NodeKind

	// DefaultSeverity applies when configuration does not name the rule.
	DefaultSeverity config.Severity

	// New constructs a per-document linter instance. It returns an error
	// when the rule's configured options are invalid (unknown enum value,
	// malformed regex); the driver then disables the rule for the run and
	// appends a "configuration" diagnostic.
	New func(*Context) (Linter, error)
}

// Linter is a per-document rule instance. Instances are single-use: they
// are created at the start of a document's lint run, fed during exactly one
// traversal, drained by Finalize, and discarded.
type Linter interface {
	// Finalize is called once after traversal and returns the rule's
	// accumulated violations in source order.
	Finalize() []Violation
}

// NodeLinter is implemented by rules that react to syntax-tree nodes.
// OnNode is called for every node in pre-order; implementations filter by
// kind.
type NodeLinter interface {
	Linter
	OnNode(n *mdast.Node)
}

// LineLinter is implemented by rules that react to physical lines.
// OnLine is called once per line, in order, interleaved with node visits.
type LineLinter interface {
	Linter
	OnLine(line Line)
}

// Line is a single physical line delivered to LineLinters.
type Line struct {
	// Number is the 1-based line number.
	Number int

	// Text is the line's content without its newline.
	Text []byte

	// InCode is true inside fenced or indented code blocks.
	InCode bool

	// InHTML is true inside HTML blocks.
	InHTML bool

	// InFrontMatter is true inside a leading metadata block.
	InFrontMatter bool

	// Blank is true when the line contains only whitespace.
	Blank bool
}

// BaseLinter carries the shared per-document state of a rule instance: its
// metadata, the analysis context, and the violation buffer drained by
// Finalize. Rule implementations embed it and call the Report helpers.
type BaseLinter struct {
	Meta *Metadata
	Ctx  *Context

	violations []Violation
}

// NewBaseLinter creates the embedded core for a rule instance.
func NewBaseLinter(meta *Metadata, ctx *Context) BaseLinter {
	return BaseLinter{Meta: meta, Ctx: ctx}
}

// Finalize returns the accumulated violations.
func (b *BaseLinter) Finalize() []Violation {
	return b.violations
}

// Report appends a violation covering the given position.
func (b *BaseLinter) Report(pos mdast.SourcePosition, message string) {
	b.violations = append(b.violations, Violation{
		RuleID:      b.Meta.ID,
		Alias:       b.Meta.Alias,
		Severity:    b.Ctx.SeverityFor(b.Meta),
		Message:     message,
		StartLine:   pos.StartLine,
		StartColumn: pos.StartColumn,
		EndLine:     pos.EndLine,
		EndColumn:   pos.EndColumn,
	})
}

// ReportWithContext appends a violation with a quoted source excerpt.
func (b *BaseLinter) ReportWithContext(pos mdast.SourcePosition, message, context string) {
	b.Report(pos, message)
	b.violations[len(b.violations)-1].Context = context
}

// ReportNode appends a violation covering a node's source position.
func (b *BaseLinter) ReportNode(n *mdast.Node, message string) {
	b.Report(n.SourcePosition(), message)
}

// ReportLine appends a violation spanning cols [col, col+width) on a line.
func (b *BaseLinter) ReportLine(line, col, width int, message string) {
	if width < 1 {
		width = 1
	}
	b.Report(mdast.SourcePosition{
		StartLine:   line,
		StartColumn: col,
		EndLine:     line,
		EndColumn:   col + width,
	}, message)
}

// Option helpers resolve a rule's configured options against defaults.

// OptionInt returns an integer option, or the default.
func (b *BaseLinter) OptionInt(key string, def int) int {
	v := b.Ctx.option(b.Meta.Alias, key)
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	default:
		return def
	}
}

// OptionBool returns a boolean option, or the default.
func (b *BaseLinter) OptionBool(key string, def bool) bool {
	if v, ok := b.Ctx.option(b.Meta.Alias, key).(bool); ok {
		return v
	}
	return def
}

// OptionString returns a string option, or the default.
func (b *BaseLinter) OptionString(key string, def string) string {
	if v, ok := b.Ctx.option(b.Meta.Alias, key).(string); ok {
		return v
	}
	return def
}

// OptionStringSlice returns a string list option, or the default.
func (b *BaseLinter) OptionStringSlice(key string, def []string) []string {
	switch v := b.Ctx.option(b.Meta.Alias, key).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) > 0 || len(v) == 0 {
			return out
		}
		return def
	default:
		return def
	}
}

// OptionIntSlice returns an integer list option, or the default. A bare
// integer is accepted as a single-element list.
func (b *BaseLinter) OptionIntSlice(key string, def []int) []int {
	switch v := b.Ctx.option(b.Meta.Alias, key).(type) {
	case []int:
		return v
	case int:
		return []int{v}
	case int64:
		return []int{int(v)}
	case []any:
		out := make([]int, 0, len(v))
		for _, item := range v {
			switch n := item.(type) {
			case int:
				out = append(out, n)
			case int64:
				out = append(out, int(n))
			case float64:
				out = append(out, int(n))
			}
		}
		if len(out) > 0 {
			return out
		}
		return def
	default:
		return def
	}
}

// OptionEnum returns a string option constrained to the allowed values.
// An unknown value yields an error; the driver disables the rule and
// reports a configuration diagnostic.
func (b *BaseLinter) OptionEnum(key, def string, allowed ...string) (string, error) {
	v, ok := b.Ctx.option(b.Meta.Alias, key).(string)
	if !ok {
		return def, nil
	}
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return def, fmt.Errorf("invalid value %q for option %q of rule %s", v, key, b.Meta.Alias)
}
