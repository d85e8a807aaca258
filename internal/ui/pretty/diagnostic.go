package pretty

import (
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/marklint/pkg/runner"
)

// Renderer writes grouped, styled violation listings.
type Renderer struct {
	styles Styles
}

// NewRenderer creates a Renderer; color selects styled or plain output.
func NewRenderer(color bool) *Renderer {
	return &Renderer{styles: NewStyles(color)}
}

// Render writes the run's violations grouped by file, followed by a
// summary line.
func (r *Renderer) Render(w io.Writer, result *runner.Result) error {
	for i := range result.Files {
		file := &result.Files[i]

		if file.Err != nil {
			if _, err := fmt.Fprintf(w, "%s\n  %s\n",
				r.styles.Path.Render(file.Path),
				r.styles.Error.Render(file.Err.Error())); err != nil {
				return err
			}
			continue
		}
		if file.Result == nil || !file.Result.HasIssues() {
			continue
		}

		if _, err := fmt.Fprintln(w, r.styles.Path.Render(file.Path)); err != nil {
			return err
		}

		for _, v := range file.Result.Violations {
			location := fmt.Sprintf("%d:%d", v.StartLine, v.StartColumn)
			line := strings.Join([]string{
				"  " + r.styles.Location.Render(location),
				r.styles.SeverityStyle(v.Severity).Render(string(v.Severity)),
				r.styles.Rule.Render(v.RuleID + "/" + v.Alias),
				r.styles.Message.Render(v.Message),
			}, " ")
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}

	summary := fmt.Sprintf("%d violation(s) in %d of %d file(s)",
		result.TotalViolations(), result.FilesWithIssues(), len(result.Files))
	_, err := fmt.Fprintln(w, r.styles.Summary.Render(summary))
	return err
}
