package lint

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/mdast"
)

// Synthetic rule identifiers for diagnostics the engine itself produces.
const (
	// ConfigurationRuleID attributes diagnostics about invalid rule
	// options.
	ConfigurationRuleID = "configuration"

	// inputRuleID attributes the synthetic violation for undecodable
	// input.
	inputRuleID = "input"

	// parseRuleID attributes the synthetic violation for a failed parse.
	parseRuleID = "parse"
)

// Result contains the outcome of linting a single document.
type Result struct {
	// Snapshot is the parsed document; nil when parsing failed.
	Snapshot *mdast.FileSnapshot

	// Violations is the ordered violation stream.
	Violations []Violation

	// RuleErrors records rules that failed during the run, keyed by rule
	// ID. A failed rule's partial violations are discarded.
	RuleErrors map[string]error
}

// HasIssues returns true if any violations were produced.
func (r *Result) HasIssues() bool {
	return len(r.Violations) > 0
}

// ErrorCount returns the number of violations with severity "error".
func (r *Result) ErrorCount() int {
	count := 0
	for i := range r.Violations {
		if r.Violations[i].Severity == config.SeverityError {
			count++
		}
	}
	return count
}

// Parser turns raw bytes into a FileSnapshot. Implemented by
// pkg/parser/goldmark.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)
}

// Engine coordinates parsing and the single-pass rule dispatch for one
// document at a time. It holds no per-document state; one Engine may lint
// many documents, and the runner shares a single Engine across its worker
// goroutines.
type Engine struct {
	// Parser produces the syntax tree.
	Parser Parser

	// Registry holds the rule table.
	Registry *Registry
}

// NewEngine creates an Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{Parser: parser, Registry: registry}
}

// LintFile lints a single document and returns its violation stream.
//
// Input and parse failures abort the run with one synthetic violation at
// line 1, column 1 (and a nil error): the engine never aborts the calling
// process. A context cancellation aborts the run with an error and no
// violations.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*Result, error) {
	result := &Result{RuleErrors: make(map[string]error)}

	if !utf8.Valid(content) {
		result.Violations = []Violation{syntheticViolation(inputRuleID, "File is not valid UTF-8")}
		return result, nil
	}

	snapshot, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		if ctx.Err() != nil {
			return result, fmt.Errorf("lint cancelled: %w", ctx.Err())
		}
		result.Violations = []Violation{
			syntheticViolation(parseRuleID, fmt.Sprintf("Parsing failed: %v", err)),
		}
		return result, nil //nolint:nilerr // parse failure is reported as a violation
	}
	result.Snapshot = snapshot

	run := newRun(e.Registry, snapshot, cfg)

	if err := run.traverse(ctx); err != nil {
		return result, err
	}

	result.Violations = run.finish()
	for id, ruleErr := range run.failed {
		result.RuleErrors[id] = ruleErr
	}
	return result, nil
}

// syntheticViolation builds the single-record stream for aborted runs.
func syntheticViolation(ruleID, message string) Violation {
	return Violation{
		RuleID:      ruleID,
		Alias:       ruleID,
		Severity:    config.SeverityError,
		Message:     message,
		StartLine:   1,
		StartColumn: 1,
		EndLine:     1,
		EndColumn:   2,
	}
}

// ruleEntry pairs an instantiated rule with its metadata for dispatch.
type ruleEntry struct {
	meta   *Metadata
	linter Linter
	node   NodeLinter // nil unless the rule reacts to nodes
	line   LineLinter // nil unless the rule reacts to lines
}

// run is the state of one document's traversal.
type run struct {
	lintCtx  *Context
	snapshot *mdast.FileSnapshot

	entries []*ruleEntry
	nodes   []*ruleEntry
	lines   []*ruleEntry

	// nextLine is the next 1-based line to deliver to line rules.
	nextLine int

	// failed maps rule IDs to the error that disabled them mid-run.
	failed map[string]error

	// configDiags collects diagnostics for invalid rule options.
	configDiags []Violation
}

func newRun(registry *Registry, snapshot *mdast.FileSnapshot, cfg *config.Config) *run {
	r := &run{
		lintCtx:  NewContext(snapshot, cfg),
		snapshot: snapshot,
		nextLine: 1,
		failed:   make(map[string]error),
	}

	for _, meta := range registry.Rules() {
		if cfg.RuleSeverity(meta.Alias, meta.DefaultSeverity) == config.SeverityOff {
			continue
		}

		linter, err := meta.New(r.lintCtx)
		if err != nil {
			r.configDiags = append(r.configDiags, Violation{
				RuleID:      ConfigurationRuleID,
				Alias:       ConfigurationRuleID,
				Severity:    config.SeverityWarning,
				Message:     fmt.Sprintf("Invalid configuration for %s/%s: %v", meta.ID, meta.Alias, err),
				StartLine:   1,
				StartColumn: 1,
				EndLine:     1,
				EndColumn:   2,
			})
			continue
		}

		entry := &ruleEntry{meta: meta, linter: linter}
		if nl, ok := linter.(NodeLinter); ok {
			entry.node = nl
			r.nodes = append(r.nodes, entry)
		}
		if ll, ok := linter.(LineLinter); ok {
			entry.line = ll
			r.lines = append(r.lines, entry)
		}
		r.entries = append(r.entries, entry)
	}

	return r
}

// traverse performs the single pre-order walk, interleaving line visits so
// that every line N is delivered before any node starting on a later line.
// Cooperative cancellation is checked between line visits and between
// top-level nodes.
func (r *run) traverse(ctx context.Context) error {
	root := r.snapshot.Root
	if root == nil {
		return r.pumpLines(ctx, r.snapshot.LineCount())
	}

	err := mdast.Walk(root, func(n *mdast.Node) error {
		if n.Kind == mdast.NodeDocument {
			return nil
		}

		if n.Parent == root {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("lint cancelled: %w", err)
			}
		}

		if startLine := n.StartLine(); startLine > 0 {
			if err := r.pumpLines(ctx, startLine-1); err != nil {
				return err
			}
		}

		r.dispatchNode(n)
		return nil
	})
	if err != nil {
		return err
	}

	return r.pumpLines(ctx, r.snapshot.LineCount())
}

// pumpLines delivers lines up to and including the given 1-based line.
func (r *run) pumpLines(ctx context.Context, through int) error {
	for ; r.nextLine <= through; r.nextLine++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("lint cancelled: %w", err)
		}

		flags := r.lintCtx.LineFlagsAt(r.nextLine)
		line := Line{
			Number:        r.nextLine,
			Text:          r.snapshot.LineContent(r.nextLine),
			InCode:        flags.Has(LineInCode),
			InHTML:        flags.Has(LineInHTML),
			InFrontMatter: flags.Has(LineInFrontMatter),
			Blank:         r.snapshot.IsBlankLine(r.nextLine),
		}

		for _, entry := range r.lines {
			if _, down := r.failed[entry.meta.ID]; down {
				continue
			}
			r.safeDispatch(entry, func() { entry.line.OnLine(line) })
		}
	}
	return nil
}

func (r *run) dispatchNode(n *mdast.Node) {
	for _, entry := range r.nodes {
		if _, down := r.failed[entry.meta.ID]; down {
			continue
		}
		r.safeDispatch(entry, func() { entry.node.OnNode(n) })
	}
}

// safeDispatch confines a rule panic to that rule: the rule is disabled
// for the rest of the run and the others continue.
func (r *run) safeDispatch(entry *ruleEntry, call func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.failed[entry.meta.ID] = fmt.Errorf("rule %s panicked: %v", entry.meta.ID, rec)
		}
	}()
	call()
}

// finish finalises every surviving rule, drops the output of failed ones,
// applies the sink's bounds check, and orders the stream.
func (r *run) finish() []Violation {
	var violations []Violation

	for _, entry := range r.entries {
		if _, down := r.failed[entry.meta.ID]; down {
			continue
		}

		var finalized []Violation
		r.safeDispatch(entry, func() { finalized = entry.linter.Finalize() })
		if _, down := r.failed[entry.meta.ID]; down {
			continue
		}

		for i := range finalized {
			// Defensive: a rule must never emit for an off severity.
			if finalized[i].Severity == config.SeverityOff {
				continue
			}
			clampViolation(&finalized[i], r.snapshot)
			violations = append(violations, finalized[i])
		}
	}

	violations = append(violations, r.configDiags...)

	for id, err := range r.failed {
		diag := syntheticViolation(id, fmt.Sprintf("Rule failed: %v", err))
		diag.Severity = config.SeverityWarning
		violations = append(violations, diag)
	}

	SortViolations(violations)
	return violations
}
