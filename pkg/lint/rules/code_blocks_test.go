package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMD014(t *testing.T) {
	t.Parallel()

	t.Run("all prompts flagged", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "```bash\n$ ls\n$ pwd\n```\n", "commands-show-output")
		require.Len(t, violations, 1)
		assert.Equal(t, "MD014", violations[0].RuleID)
	})

	t.Run("output present exempt", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "```bash\n$ ls\nfile.txt\n```\n", "commands-show-output"))
	})

	t.Run("non-shell fence exempt", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "```go\n$ odd but not shell\n```\n", "commands-show-output"))
	})

	t.Run("no prompts exempt", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "```sh\nls\npwd\n```\n", "commands-show-output"))
	})
}

func TestMD031(t *testing.T) {
	t.Parallel()

	t.Run("missing blanks", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "text\n```\ncode\n```\ntext\n", "blanks-around-fences")
		assert.Equal(t, []int{2, 4}, startLines(violations))
	})

	t.Run("surrounded ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "text\n\n```\ncode\n```\n\ntext\n", "blanks-around-fences"))
	})

	t.Run("document boundaries ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "```\ncode\n```\n", "blanks-around-fences"))
	})

	t.Run("list_items false exempts", func(t *testing.T) {
		t.Parallel()
		content := "- item\n  ```\n  code\n  ```\n- next\n"
		require.NotEmpty(t, lintRule(t, content, "blanks-around-fences"))
		assert.Empty(t, lintRuleWith(t, content, "blanks-around-fences",
			map[string]any{"list_items": false}))
	})
}

func TestMD038(t *testing.T) {
	t.Parallel()

	t.Run("leading space flagged", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "a ` code` b\n", "no-space-in-code")
		require.Len(t, violations, 1)
	})

	t.Run("double spaces flagged", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "a `  code  ` b\n", "no-space-in-code")
		require.Len(t, violations, 1)
	})

	t.Run("balanced single space ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "a ` `` ` b\n", "no-space-in-code"))
	})

	t.Run("plain span ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "a `code` b\n", "no-space-in-code"))
	})
}

func TestMD040(t *testing.T) {
	t.Parallel()

	t.Run("missing language", func(t *testing.T) {
		t.Parallel()
		violations := lintRule(t, "```\ncode\n```\n", "fenced-code-language")
		require.Len(t, violations, 1)
		assert.Equal(t, 1, violations[0].StartLine)
	})

	t.Run("language present ok", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "```go\ncode\n```\n", "fenced-code-language"))
	})

	t.Run("allowed_languages", func(t *testing.T) {
		t.Parallel()
		violations := lintRuleWith(t, "```rust\ncode\n```\n", "fenced-code-language",
			map[string]any{"allowed_languages": []any{"go", "python"}})
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Message, "\"rust\" is not allowed")
	})

	t.Run("language_only", func(t *testing.T) {
		t.Parallel()
		violations := lintRuleWith(t, "```go linenos\ncode\n```\n", "fenced-code-language",
			map[string]any{"language_only": true})
		require.Len(t, violations, 1)
	})

	t.Run("indented blocks exempt", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, lintRule(t, "text\n\n    indented code\n", "fenced-code-language"))
	})
}

func TestMD046(t *testing.T) {
	t.Parallel()

	t.Run("consistent adopts first", func(t *testing.T) {
		t.Parallel()
		content := "```\nfenced\n```\n\ntext\n\n    indented\n"
		violations := lintRule(t, content, "code-block-style")
		require.Len(t, violations, 1)
		assert.Equal(t, 7, violations[0].StartLine)
		assert.Contains(t, violations[0].Message, "Expected: fenced; Actual: indented")
	})

	t.Run("fenced enforced", func(t *testing.T) {
		t.Parallel()
		violations := lintRuleWith(t, "text\n\n    indented\n", "code-block-style",
			map[string]any{"style": "fenced"})
		require.Len(t, violations, 1)
	})
}

func TestMD048(t *testing.T) {
	t.Parallel()

	t.Run("consistent adopts first", func(t *testing.T) {
		t.Parallel()
		content := "```\na\n```\n\n~~~\nb\n~~~\n"
		violations := lintRule(t, content, "code-fence-style")
		require.Len(t, violations, 1)
		assert.Equal(t, 5, violations[0].StartLine)
		assert.Contains(t, violations[0].Message, "Expected: backtick; Actual: tilde")
	})

	t.Run("tilde enforced", func(t *testing.T) {
		t.Parallel()
		violations := lintRuleWith(t, "```\na\n```\n", "code-fence-style",
			map[string]any{"style": "tilde"})
		require.Len(t, violations, 1)
	})
}
