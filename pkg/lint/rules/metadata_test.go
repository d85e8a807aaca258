package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMD041(t *testing.T) {
	t.Parallel()

	t.Run("first block not heading", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "some text\n\n# Heading\n", "first-line-heading")
		require.Len(t, violations, 1)
		assert.Equal(t, 1, violations[0].StartLine)
	})

	t.Run("heading first ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "# Heading\n\ntext\n", "first-line-heading"))
	})

	t.Run("wrong level flagged", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "## Heading\n", "first-line-heading")
		require.Len(t, violations, 1)
	})

	t.Run("front matter title satisfies", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "---\ntitle: X\n---\ntext\n", "first-line-heading"))
	})

	t.Run("html comment skipped", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "<!-- lead comment -->\n# Heading\n", "first-line-heading"))
	})

	t.Run("allow_preamble", func(t *testing.T) {
		t.Parallel()
		content := "intro paragraph\n\n# Heading\n"
		assert.Empty(t, lintRuleWith(t, content, "first-line-heading",
			map[string]any{"allow_preamble": true}))
	})

	t.Run("level option", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRuleWith(t, "## Heading\n", "first-line-heading",
			map[string]any{"level": 2}))
	})

	t.Run("empty file exempt", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "", "first-line-heading"))
	})
}

func TestMD044(t *testing.T) {
	t.Parallel()

	names := map[string]any{"names": []any{"GitHub", "JavaScript"}}

	t.Run("wrong capitalization flagged", func(t *testing.T) {
		t.Parallel()
		violations := lintRuleWith(t, "We use github actions\n", "proper-names", names)
		require.Len(t, violations, 1)
		assert.Equal(t, 8, violations[0].StartColumn)
		assert.Contains(t, violations[0].Message, "Expected: GitHub; Actual: github")
	})

	t.Run("correct capitalization ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRuleWith(t, "We use GitHub actions\n", "proper-names", names))
	})

	t.Run("word boundary respected", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRuleWith(t, "see mygithubthing\n", "proper-names", names))
	})

	t.Run("code_blocks false skips code", func(t *testing.T) {
		t.Parallel()
		content := "```\ngithub\n```\n"
		require.NotEmpty(t, lintRuleWith(t, content, "proper-names", names))

		withFlag := map[string]any{"names": []any{"GitHub"}, "code_blocks": false}
		assert.Empty(t, lintRuleWith(t, content, "proper-names", withFlag))
	})

	t.Run("no names disables", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "github javascript\n", "proper-names"))
	})
}
