package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
	_ "github.com/yaklabco/marklint/pkg/lint/rules" // register built-in rules
	goldmarkparser "github.com/yaklabco/marklint/pkg/parser/goldmark"
	"github.com/yaklabco/marklint/pkg/runner"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newRunner(cfg *config.Config) *runner.Runner {
	engine := lint.NewEngine(goldmarkparser.New(goldmarkparser.FlavorGFM), lint.DefaultRegistry)
	return runner.New(engine, cfg)
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	one := writeFile(t, dir, "one.md", "# One\n")
	two := writeFile(t, dir, "sub/two.markdown", "# Two\n")
	writeFile(t, dir, "ignored.txt", "not markdown\n")
	writeFile(t, dir, ".hidden/three.md", "# Hidden\n")

	files, err := runner.Discover(runner.Options{Paths: []string{"."}, WorkDir: dir})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{one, two}, files)
}

func TestDiscoverExplicitFileAnyExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	txt := writeFile(t, dir, "notes.txt", "# heading\n")

	files, err := runner.Discover(runner.Options{Paths: []string{"notes.txt"}, WorkDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{txt}, files)
}

func TestDiscoverGlob(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.md", "# A\n")
	writeFile(t, dir, "b.txt", "b\n")

	files, err := runner.Discover(runner.Options{Paths: []string{"*.md"}, WorkDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{a}, files)
}

func TestDiscoverMissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(runner.Options{Paths: []string{"nope.md"}, WorkDir: t.TempDir()})
	require.Error(t, err)
}

func TestRunKeepsDiscoveryOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := writeFile(t, dir, "a.md", "# A\n### Skip\n")
	second := writeFile(t, dir, "b.md", "# B\n")

	cfg := config.New()
	cfg.SetSeverity(config.DefaultKey, config.SeverityOff)
	cfg.SetSeverity("heading-increment", config.SeverityError)

	result, err := newRunner(cfg).Run(context.Background(), runner.Options{
		Paths:   []string{"a.md", "b.md"},
		WorkDir: dir,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	assert.Equal(t, first, result.Files[0].Path)
	assert.Equal(t, second, result.Files[1].Path)
	assert.Len(t, result.Files[0].Result.Violations, 1)
	assert.Empty(t, result.Files[1].Result.Violations)

	assert.Equal(t, 1, result.TotalViolations())
	assert.Equal(t, 1, result.FilesWithIssues())
	assert.True(t, result.HasErrors())
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.md", "# A\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(config.New()).Run(ctx, runner.Options{Paths: []string{"a.md"}, WorkDir: dir})
	require.Error(t, err)
}
