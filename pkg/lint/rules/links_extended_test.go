package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMD051(t *testing.T) {
	t.Parallel()

	t.Run("unknown fragment flagged", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "# Hello World\n[a](#hello-world)\n[b](#nope)\n", "link-fragments")
		require.Len(t, violations, 1)
		assert.Equal(t, 3, violations[0].StartLine)
		assert.Equal(t, 5, violations[0].StartColumn)
	})

	t.Run("html anchor ok", func(t *testing.T) {
		t.Parallel()
		content := "<a id=\"target\"></a>\n\n[x](#target)\n"
		assert.Empty(t, lintRule(t, content, "link-fragments"))
	})

	t.Run("top and line refs ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "[a](#top)\n[b](#L10)\n[c](#L19C5-L21C11)\n", "link-fragments"))
	})

	t.Run("duplicate heading suffixes", func(t *testing.T) {
		t.Parallel()
		content := "# Same\n\n## Same\n\n[a](#same)\n[b](#same-1)\n[c](#same-2)\n"
		violations := lintRule(t, content, "link-fragments")
		require.Len(t, violations, 1)
		assert.Equal(t, 7, violations[0].StartLine)
	})

	t.Run("ignore_case", func(t *testing.T) {
		t.Parallel()
		content := "# Hello\n[a](#HELLO)\n"
		require.NotEmpty(t, lintRule(t, content, "link-fragments"))
		assert.Empty(t, lintRuleWith(t, content, "link-fragments",
			map[string]any{"ignore_case": true}))
	})

	t.Run("ignored_pattern", func(t *testing.T) {
		t.Parallel()
		content := "[a](#figure-1)\n"
		assert.Empty(t, lintRuleWith(t, content, "link-fragments",
			map[string]any{"ignored_pattern": `^figure-\d+$`}))
	})

	t.Run("external links ignored", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "[a](https://example.com#whatever)\n", "link-fragments"))
	})
}

func TestMD052(t *testing.T) {
	t.Parallel()

	t.Run("undefined label flagged", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "[text][missing]\n", "reference-links-images")
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Message, "missing")
	})

	t.Run("defined label ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "[text][label]\n\n[label]: https://x\n", "reference-links-images"))
	})

	t.Run("shortcut unchecked by default", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "[undefined shortcut]\n", "reference-links-images"))
	})

	t.Run("shortcut_syntax", func(t *testing.T) {
		t.Parallel()
		violations := lintRuleWith(t, "[undefined shortcut]\n", "reference-links-images",
			map[string]any{"shortcut_syntax": true})
		require.Len(t, violations, 1)
	})

	t.Run("ignored_labels", func(t *testing.T) {
		t.Parallel()
		// Task-list style "[x]" is ignored by default.
		assert.Empty(t, lintRuleWith(t, "[text][x]\n", "reference-links-images", nil))
	})
}

func TestMD053(t *testing.T) {
	t.Parallel()

	t.Run("unused definition flagged", func(t *testing.T) {
		t.Parallel()
		content := "[a][used]\n\n[used]: http://x\n[extra]: http://y\n"
		violations := lintRule(t, content, "link-image-reference-definitions")
		require.Len(t, violations, 1)
		assert.Equal(t, 4, violations[0].StartLine)
		assert.Contains(t, violations[0].Message, "extra")
	})

	t.Run("duplicate definition flagged", func(t *testing.T) {
		t.Parallel()
		content := "[a][dup]\n\n[dup]: http://x\n[dup]: http://y\n"
		violations := lintRule(t, content, "link-image-reference-definitions")
		require.Len(t, violations, 1)
		assert.Equal(t, 4, violations[0].StartLine)
		assert.Contains(t, violations[0].Message, "Duplicate")
	})

	t.Run("ignored_definitions default", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "[//]: # (comment trick)\n", "link-image-reference-definitions"))
	})
}

func TestMD054(t *testing.T) {
	t.Parallel()

	t.Run("all styles allowed by default", func(t *testing.T) {
		t.Parallel()
		content := "[inline](http://x)\n<https://auto>\n[full][l]\n\n[l]: http://y\n"
		assert.Empty(t, lintRule(t, content, "link-image-style"))
	})

	t.Run("inline disabled", func(t *testing.T) {
		t.Parallel()
		violations := lintRuleWith(t, "[inline](http://x)\n", "link-image-style",
			map[string]any{"inline": false})
		require.Len(t, violations, 1)
	})

	t.Run("autolink disabled", func(t *testing.T) {
		t.Parallel()
		violations := lintRuleWith(t, "<https://auto.example>\n", "link-image-style",
			map[string]any{"autolink": false})
		require.Len(t, violations, 1)
	})

	t.Run("url_inline disabled", func(t *testing.T) {
		t.Parallel()
		content := "[https://example.com](https://example.com)\n"
		violations := lintRuleWith(t, content, "link-image-style",
			map[string]any{"url_inline": false})
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Message, "url_inline")

		// Text differing from the destination stays allowed.
		assert.Empty(t, lintRuleWith(t, "[docs](https://example.com)\n", "link-image-style",
			map[string]any{"url_inline": false}))
	})
}
