package refs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marklint/pkg/lint/refs"
	"github.com/yaklabco/marklint/pkg/mdast"
	goldmarkparser "github.com/yaklabco/marklint/pkg/parser/goldmark"
)

func collect(t *testing.T, content string) *refs.Context {
	t.Helper()
	snapshot, err := goldmarkparser.New(goldmarkparser.FlavorGFM).
		Parse(context.Background(), "test.md", []byte(content))
	require.NoError(t, err)
	return refs.Collect(snapshot.Root, snapshot)
}

func TestSlugBase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{text: "Hello World", want: "hello-world"},
		{text: "Hello, World!", want: "hello-world"},
		{text: "  Spaces  everywhere  ", want: "spaces-everywhere"},
		{text: "CAPS and 123", want: "caps-and-123"},
		{text: "---", want: ""},
		{text: "C'est déjà l'été", want: "c-est-déjà-l-été"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, refs.SlugBase(tt.text))
		})
	}
}

func TestGenerateSlugDuplicates(t *testing.T) {
	t.Parallel()

	m := refs.NewAnchorMap()
	assert.Equal(t, "title", m.GenerateSlug("Title"))
	assert.Equal(t, "title-1", m.GenerateSlug("Title"))
	assert.Equal(t, "title-2", m.GenerateSlug("Title"))
}

func TestHeadingAnchors(t *testing.T) {
	t.Parallel()

	ctx := collect(t, "# Hello World\n\n## Hello World\n")
	assert.True(t, ctx.Anchors.Has("hello-world"))
	assert.True(t, ctx.Anchors.Has("hello-world-1"))
	assert.False(t, ctx.Anchors.Has("hello-world-2"))
}

func TestHTMLAnchors(t *testing.T) {
	t.Parallel()

	ctx := collect(t, "<a id=\"target\" name=\"named\"></a>\n\ntext\n")
	assert.True(t, ctx.Anchors.Has("target"))
	assert.True(t, ctx.Anchors.Has("named"))
}

func TestValidFragment(t *testing.T) {
	t.Parallel()

	ctx := collect(t, "# Hello World\n")

	assert.True(t, ctx.ValidFragment("#hello-world", false))
	assert.True(t, ctx.ValidFragment("#top", false))
	assert.True(t, ctx.ValidFragment("#L10", false))
	assert.True(t, ctx.ValidFragment("#L19C5-L21C11", false))
	assert.False(t, ctx.ValidFragment("#nope", false))
	assert.False(t, ctx.ValidFragment("#Hello-World", false))
	assert.True(t, ctx.ValidFragment("#Hello-World", true))
}

func TestUsageStyles(t *testing.T) {
	t.Parallel()

	content := "[inline](http://x)\n" +
		"[full][label]\n" +
		"[collapsed][]\n" +
		"<https://auto.example>\n" +
		"\n" +
		"[label]: http://y\n" +
		"[collapsed]: http://z\n"
	ctx := collect(t, content)

	styles := make(map[mdast.ReferenceStyle]int)
	for _, usage := range ctx.Usages {
		styles[usage.Style]++
	}

	assert.Equal(t, 1, styles[mdast.RefStyleInline])
	assert.Equal(t, 1, styles[mdast.RefStyleFull])
	assert.Equal(t, 1, styles[mdast.RefStyleCollapsed])
	assert.Equal(t, 1, styles[mdast.RefStyleAutolink])
}

func TestDefinitionsAndUsageCounts(t *testing.T) {
	t.Parallel()

	content := "[a][used]\n\n[used]: http://x\n[extra]: http://y\n"
	ctx := collect(t, content)

	require.Len(t, ctx.AllDefinitions, 2)

	used := ctx.ResolveLabel("used")
	require.NotNil(t, used)
	assert.Equal(t, 1, used.UsageCount)

	unused := ctx.UnusedDefinitions()
	require.Len(t, unused, 1)
	assert.Equal(t, "extra", unused[0].Label)
	assert.Equal(t, 4, unused[0].LineNumber)
}

func TestDuplicateDefinitions(t *testing.T) {
	t.Parallel()

	ctx := collect(t, "[dup]: http://x\n[dup]: http://y\n")
	dups := ctx.DuplicateDefinitions()
	require.Len(t, dups, 1)
	assert.Equal(t, 2, dups[0].LineNumber)
}

func TestNormalizeLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "some label", refs.NormalizeLabel("  Some\t LABEL "))
}

func TestIsGitHubLineReference(t *testing.T) {
	t.Parallel()

	assert.True(t, refs.IsGitHubLineReference("L20"))
	assert.True(t, refs.IsGitHubLineReference("L19C5-L21C11"))
	assert.False(t, refs.IsGitHubLineReference("Label"))
	assert.False(t, refs.IsGitHubLineReference("L"))
	assert.False(t, refs.IsGitHubLineReference("x20"))
}
