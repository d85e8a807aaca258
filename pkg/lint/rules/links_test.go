package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMD011(t *testing.T) {
	t.Parallel()

	t.Run("reversed link flagged", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "(text)[https://example.com]\n", "no-reversed-links")
		require.Len(t, violations, 1)
		assert.Equal(t, 1, violations[0].StartColumn)
	})

	t.Run("proper link ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "[text](https://example.com)\n", "no-reversed-links"))
	})

	t.Run("footnote exempt", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "Some claim (see note)[^1]\n", "no-reversed-links"))
	})

	t.Run("code span exempt", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "call `(f)[x]` here\n", "no-reversed-links"))
	})
}

func TestMD034(t *testing.T) {
	t.Parallel()

	t.Run("bare url flagged", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "Visit https://example.com today\n", "no-bare-urls")
		require.Len(t, violations, 1)
		assert.Equal(t, 7, violations[0].StartColumn)
	})

	t.Run("bare email flagged", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "Mail someone@example.com now\n", "no-bare-urls")
		require.Len(t, violations, 1)
	})

	t.Run("autolink ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "Visit <https://example.com> today\n", "no-bare-urls"))
	})

	t.Run("link destination ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "[site](https://example.com)\n", "no-bare-urls"))
	})

	t.Run("code span ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "use `https://example.com` here\n", "no-bare-urls"))
	})

	t.Run("code block ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "```\nhttps://example.com\n```\n", "no-bare-urls"))
	})
}

func TestMD039(t *testing.T) {
	t.Parallel()

	t.Run("spaces in text flagged", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "[ text ](https://example.com)\n", "no-space-in-links")
		require.Len(t, violations, 1)
	})

	t.Run("clean text ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "[text](https://example.com)\n", "no-space-in-links"))
	})

	t.Run("images exempt", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "![ alt ](img.png)\n", "no-space-in-links"))
	})
}

func TestMD042(t *testing.T) {
	t.Parallel()

	t.Run("empty destination", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "[text]()\n", "no-empty-links")
		require.Len(t, violations, 1)
	})

	t.Run("hash destination", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "[text](#)\n", "no-empty-links")
		require.Len(t, violations, 1)
	})

	t.Run("real destination ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "[text](https://example.com)\n", "no-empty-links"))
	})

	t.Run("fragment destination ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "[text](#section)\n", "no-empty-links"))
	})
}

func TestMD045(t *testing.T) {
	t.Parallel()

	t.Run("missing alt flagged", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "![](img.png)\n", "no-alt-text")
		require.Len(t, violations, 1)
	})

	t.Run("alt present ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "![description](img.png)\n", "no-alt-text"))
	})

	t.Run("html img without alt flagged", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "<img src=\"x.png\">\n", "no-alt-text")
		require.Len(t, violations, 1)
	})

	t.Run("html img empty alt ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "<img src=\"x.png\" alt=\"\">\n", "no-alt-text"))
	})

	t.Run("aria-hidden ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "<img src=\"x.png\" aria-hidden=\"true\">\n", "no-alt-text"))
	})
}

func TestMD059(t *testing.T) {
	t.Parallel()

	t.Run("prohibited text flagged", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "[click here](https://example.com)\n", "descriptive-link-text")
		require.Len(t, violations, 1)
	})

	t.Run("case insensitive", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "[Click Here](https://example.com)\n", "descriptive-link-text")
		require.Len(t, violations, 1)
	})

	t.Run("descriptive text ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "[the install guide](https://example.com)\n", "descriptive-link-text"))
	})

	t.Run("custom prohibited list", func(t *testing.T) {
		t.Parallel()
		violations := lintRuleWith(t, "[details](https://example.com)\n", "descriptive-link-text",
			map[string]any{"prohibited_texts": []any{"details"}})
		require.Len(t, violations, 1)
	})
}
