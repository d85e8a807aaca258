package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
	_ "github.com/yaklabco/marklint/pkg/lint/rules" // register built-in rules
	goldmarkparser "github.com/yaklabco/marklint/pkg/parser/goldmark"
)

// lintDoc runs the engine with only the named rules enabled at error
// severity, applying any per-rule option overrides.
func lintDoc(t *testing.T, content string, aliases []string, settings map[string]map[string]any) []lint.Violation {
	t.Helper()

	cfg := config.New()
	cfg.SetSeverity(config.DefaultKey, config.SeverityOff)
	for _, alias := range aliases {
		cfg.SetSeverity(alias, config.SeverityError)
	}
	for alias, options := range settings {
		for key, value := range options {
			cfg.SetOption(alias, key, value)
		}
	}

	engine := lint.NewEngine(goldmarkparser.New(goldmarkparser.FlavorGFM), lint.DefaultRegistry)
	result, err := engine.LintFile(context.Background(), "test.md", []byte(content), cfg)
	require.NoError(t, err)
	require.Empty(t, result.RuleErrors)
	return result.Violations
}

// lintRule runs a single rule with default options.
func lintRule(t *testing.T, content, alias string) []lint.Violation {
	t.Helper()
	return lintDoc(t, content, []string{alias}, nil)
}

// lintRuleWith runs a single rule with option overrides.
func lintRuleWith(t *testing.T, content, alias string, options map[string]any) []lint.Violation {
	t.Helper()
	return lintDoc(t, content, []string{alias}, map[string]map[string]any{alias: options})
}

// startLines extracts each violation's starting line.
func startLines(violations []lint.Violation) []int {
	lines := make([]int, len(violations))
	for i, v := range violations {
		lines[i] = v.StartLine
	}
	return lines
}
