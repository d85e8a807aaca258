package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMD027(t *testing.T) {
	t.Parallel()

	t.Run("double space flagged", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, ">  text\n", "no-multiple-space-blockquote")
		require.Len(t, violations, 1)
		assert.Equal(t, 1, violations[0].StartLine)
		assert.Equal(t, 2, violations[0].StartColumn)
	})

	t.Run("single space ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "> text\n", "no-multiple-space-blockquote"))
	})

	t.Run("nested quote", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "> >  text\n", "no-multiple-space-blockquote")
		require.Len(t, violations, 1)
	})

	t.Run("list_items false exempts items", func(t *testing.T) {
		t.Parallel()
		content := ">  - item\n"
		require.NotEmpty(t, lintRule(t, content, "no-multiple-space-blockquote"))
		assert.Empty(t, lintRuleWith(t, content, "no-multiple-space-blockquote",
			map[string]any{"list_items": false}))
	})
}

func TestMD028(t *testing.T) {
	t.Parallel()

	t.Run("blank between quotes", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "> one\n\n> two\n", "no-blanks-blockquote")
		require.Len(t, violations, 1)
		assert.Equal(t, 2, violations[0].StartLine)
	})

	t.Run("each blank reported", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "> one\n\n\n> two\n", "no-blanks-blockquote")
		assert.Equal(t, []int{2, 3}, startLines(violations))
	})

	t.Run("quote then paragraph ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "> one\n\ntext\n", "no-blanks-blockquote"))
	})

	t.Run("continuous quote ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "> one\n> two\n", "no-blanks-blockquote"))
	})
}
