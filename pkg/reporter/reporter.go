// Package reporter renders violation streams for consumption by humans
// and tools. The engine itself does not prescribe a serialisation; these
// renderers consume runner results.
package reporter

import (
	"fmt"
	"io"

	"github.com/yaklabco/marklint/pkg/runner"
)

// Reporter renders a run's results to a writer.
type Reporter interface {
	Report(w io.Writer, result *runner.Result) error
}

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// New returns the reporter for a format.
func New(format Format, opts Options) (Reporter, error) {
	switch format {
	case FormatText, "":
		return &TextReporter{opts: opts}, nil
	case FormatJSON:
		return &JSONReporter{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Options adjusts rendering across reporters.
type Options struct {
	// RuleFormat controls how the rule is identified: "id" (MD013),
	// "alias" (line-length), or "both".
	RuleFormat string

	// Summary appends a totals line (text reporter only).
	Summary bool
}

// FormatRule renders a rule identity per the configured RuleFormat.
func (o Options) FormatRule(id, alias string) string {
	switch o.RuleFormat {
	case "alias":
		return alias
	case "both":
		return id + "/" + alias
	default:
		return id
	}
}
