package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMD004(t *testing.T) {
	t.Parallel()

	t.Run("consistent adopts first", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "* one\n* two\n\ntext\n\n- three\n", "ul-style")
		require.Len(t, violations, 1)
		assert.Equal(t, 6, violations[0].StartLine)
		assert.Contains(t, violations[0].Message, "Expected: asterisk; Actual: dash")
	})

	t.Run("dash enforced", func(t *testing.T) {
		t.Parallel()
		violations := lintRuleWith(t, "* one\n", "ul-style", map[string]any{"style": "dash"})
		require.Len(t, violations, 1)
	})

	t.Run("sublist levels differ", func(t *testing.T) {
		t.Parallel()
		content := "- top\n  - nested\n"
		violations := lintRuleWith(t, content, "ul-style", map[string]any{"style": "sublist"})
		require.Len(t, violations, 1)
		assert.Equal(t, 2, violations[0].StartLine)
	})

	t.Run("sublist ok", func(t *testing.T) {
		t.Parallel()
		content := "- top\n  * nested\n  * nested2\n- top2\n"
		assert.Empty(t, lintRuleWith(t, content, "ul-style", map[string]any{"style": "sublist"}))
	})

	t.Run("ordered lists ignored", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "1. one\n2. two\n", "ul-style"))
	})
}

func TestMD005(t *testing.T) {
	t.Parallel()

	t.Run("misaligned sibling", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "- one\n - two\n", "list-indent")
		require.Len(t, violations, 1)
		assert.Equal(t, 2, violations[0].StartLine)
		assert.Contains(t, violations[0].Message, "Expected: 0; Actual: 1")
	})

	t.Run("aligned ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "- one\n- two\n- three\n", "list-indent"))
	})

	t.Run("ordered right alignment ok", func(t *testing.T) {
		t.Parallel()
		content := " 8. eight\n 9. nine\n10. ten\n"
		assert.Empty(t, lintRule(t, content, "list-indent"))
	})
}

func TestMD007(t *testing.T) {
	t.Parallel()

	t.Run("wrong nested indent", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "- top\n   - nested\n", "ul-indent")
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Message, "Expected: 2; Actual: 3")
	})

	t.Run("default two spaces ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "- top\n  - nested\n    - deeper\n", "ul-indent"))
	})

	t.Run("indent option", func(t *testing.T) {
		t.Parallel()
		content := "- top\n    - nested\n"
		assert.Empty(t, lintRuleWith(t, content, "ul-indent", map[string]any{"indent": 4}))
	})

	t.Run("start_indented", func(t *testing.T) {
		t.Parallel()
		violations := lintRuleWith(t, "- top\n", "ul-indent",
			map[string]any{"start_indented": true, "start_indent": 2})
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Message, "Expected: 2; Actual: 0")
	})
}

func TestMD029(t *testing.T) {
	t.Parallel()

	t.Run("one_or_ordered accepts both", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "1. a\n1. b\n1. c\n", "ol-prefix"))
		assert.Empty(t, lintRule(t, "1. a\n2. b\n3. c\n", "ol-prefix"))
	})

	t.Run("broken ordering flagged", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "1. a\n2. b\n5. c\n", "ol-prefix")
		require.Len(t, violations, 1)
		assert.Equal(t, 3, violations[0].StartLine)
		assert.Contains(t, violations[0].Message, "Expected: 3; Actual: 5")
	})

	t.Run("style one", func(t *testing.T) {
		t.Parallel()
		violations := lintRuleWith(t, "1. a\n2. b\n", "ol-prefix", map[string]any{"style": "one"})
		require.Len(t, violations, 1)
		assert.Equal(t, 2, violations[0].StartLine)
	})

	t.Run("style zero", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRuleWith(t, "0. a\n0. b\n", "ol-prefix", map[string]any{"style": "zero"}))
	})
}

func TestMD030(t *testing.T) {
	t.Parallel()

	t.Run("double space flagged", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "-  item\n", "list-marker-space")
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Message, "Expected: 1; Actual: 2")
	})

	t.Run("single space ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "- item\n1. item\n", "list-marker-space"))
	})

	t.Run("ul_single option", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRuleWith(t, "-  item\n", "list-marker-space",
			map[string]any{"ul_single": 2}))
	})
}

func TestMD032(t *testing.T) {
	t.Parallel()

	t.Run("missing blank above", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "text\n- one\n- two\n", "blanks-around-lists")
		require.Len(t, violations, 1)
		assert.Equal(t, 2, violations[0].StartLine)
	})

	t.Run("missing blank below", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "- one\n- two\n# Head\n", "blanks-around-lists")
		require.Len(t, violations, 1)
		assert.Equal(t, 2, violations[0].StartLine)
	})

	t.Run("document boundaries ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "- one\n- two\n", "blanks-around-lists"))
	})

	t.Run("nested lists exempt", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "- one\n  - nested\n- two\n", "blanks-around-lists"))
	})
}
