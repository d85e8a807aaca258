package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMD036(t *testing.T) {
	t.Parallel()

	t.Run("bold paragraph flagged", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "**Section title**\n\ntext\n", "no-emphasis-as-heading")
		require.Len(t, violations, 1)
		assert.Equal(t, 1, violations[0].StartLine)
	})

	t.Run("emphasis paragraph flagged", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "*Important*\n", "no-emphasis-as-heading")
		require.Len(t, violations, 1)
	})

	t.Run("trailing punctuation exempt", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "**Read this carefully!**\n", "no-emphasis-as-heading"))
	})

	t.Run("emphasis within text ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "Some **bold** words\n", "no-emphasis-as-heading"))
	})

	t.Run("link inside exempt", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "**[docs](https://example.com)**\n", "no-emphasis-as-heading"))
	})
}

func TestMD037(t *testing.T) {
	t.Parallel()

	t.Run("space after opener", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "some * text* here\n", "no-space-in-emphasis")
		require.Len(t, violations, 1)
		assert.Equal(t, 6, violations[0].StartColumn)
	})

	t.Run("space before closer", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "some **text ** here\n", "no-space-in-emphasis")
		require.Len(t, violations, 1)
	})

	t.Run("proper emphasis ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "some *text* and **more** here\n", "no-space-in-emphasis"))
	})

	t.Run("code span ignored", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "run `a * b * c` now\n", "no-space-in-emphasis"))
	})

	t.Run("code block ignored", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "```\na * b * c\n```\n", "no-space-in-emphasis"))
	})
}

func TestMD049(t *testing.T) {
	t.Parallel()

	t.Run("consistent adopts first", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "*one* and _two_\n", "emphasis-style")
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Message, "Expected: asterisk; Actual: underscore")
	})

	t.Run("asterisk enforced", func(t *testing.T) {
		t.Parallel()
		violations := lintRuleWith(t, "_one_\n", "emphasis-style",
			map[string]any{"style": "asterisk"})
		require.Len(t, violations, 1)
	})

	t.Run("intraword asterisk exempt from underscore style", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRuleWith(t, "in*tra*word\n", "emphasis-style",
			map[string]any{"style": "underscore"}))
	})

	t.Run("strong not affected", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "*one* and **two**\n", "emphasis-style"))
	})
}

func TestMD050(t *testing.T) {
	t.Parallel()

	t.Run("consistent adopts first", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "**one** and __two__\n", "strong-style")
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Message, "Expected: asterisk; Actual: underscore")
	})

	t.Run("underscore enforced", func(t *testing.T) {
		t.Parallel()
		violations := lintRuleWith(t, "**one**\n", "strong-style",
			map[string]any{"style": "underscore"})
		require.Len(t, violations, 1)
	})
}
